package bleadvert

import "errors"

// This file implements 16-bit and 128-bit UUIDs as defined in the Bluetooth
// specification.

// UUID is a single UUID as used in the Bluetooth stack. It is represented as a
// [4]uint32 instead of a [16]byte for efficiency.
type UUID [4]uint32

var errInvalidUUID = errors.New("bleadvert: failed to parse UUID")

// New16BitUUID returns a new 128-bit UUID based on a 16-bit UUID.
//
// Note: only use registered UUIDs. See
// https://www.bluetooth.com/specifications/gatt/services/ for a list.
func New16BitUUID(shortUUID uint16) UUID {
	// https://stackoverflow.com/questions/36212020/how-can-i-convert-a-bluetooth-16-bit-service-uuid-into-a-128-bit-uuid
	var uuid UUID
	uuid[0] = 0x5F9B34FB
	uuid[1] = 0x80000080
	uuid[2] = 0x00001000
	uuid[3] = uint32(shortUUID)
	return uuid
}

// New32BitUUID returns a new 128-bit UUID based on a 32-bit UUID.
func New32BitUUID(shortUUID uint32) UUID {
	var uuid UUID
	uuid[0] = 0x5F9B34FB
	uuid[1] = 0x80000080
	uuid[2] = 0x00001000
	uuid[3] = shortUUID
	return uuid
}

// Is16Bit returns whether this UUID is a 16-bit BLE UUID.
func (uuid UUID) Is16Bit() bool {
	return uuid.Is32Bit() && uuid[3] == uint32(uint16(uuid[3]))
}

// Is32Bit returns whether this UUID is a 32-bit BLE UUID.
func (uuid UUID) Is32Bit() bool {
	return uuid[0] == 0x5F9B34FB && uuid[1] == 0x80000080 && uuid[2] == 0x00001000
}

// Get16Bit returns the 16-bit version of this UUID. The result is only valid
// if Is16Bit reports true.
func (uuid UUID) Get16Bit() uint16 {
	return uint16(uuid[3])
}

// ParseUUID parses the given UUID, which must be in
// 00001234-0000-1000-8000-00805f9b34fb format.
func ParseUUID(s string) (uuid UUID, err error) {
	uuidIndex := 31
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '-' {
			continue
		}
		var nibble byte
		if c >= '0' && c <= '9' {
			nibble = c - '0' + 0x0
		} else if c >= 'a' && c <= 'f' {
			nibble = c - 'a' + 0xa
		} else if c >= 'A' && c <= 'F' {
			nibble = c - 'A' + 0xa
		} else {
			err = errInvalidUUID
			return
		}
		if uuidIndex < 0 {
			err = errInvalidUUID
			return
		}
		uuid[uuidIndex/8] |= uint32(nibble) << ((uuidIndex % 8) * 4)
		uuidIndex--
	}
	if uuidIndex != -1 {
		err = errInvalidUUID
	}
	return
}

// ParseServiceUUID parses a UUID string as it appears in advertisements and
// configuration: a 16-bit ("180d") or 32-bit ("0000180d") short form, or a
// full 128-bit UUID.
func ParseServiceUUID(s string) (UUID, error) {
	switch len(s) {
	case 4:
		uuid, err := ParseUUID("0000" + s + "-0000-1000-8000-00805f9b34fb")
		if err != nil {
			return UUID{}, err
		}
		return uuid, nil
	case 8:
		uuid, err := ParseUUID(s + "-0000-1000-8000-00805f9b34fb")
		if err != nil {
			return UUID{}, err
		}
		return uuid, nil
	default:
		return ParseUUID(s)
	}
}

const hexDigit = "0123456789abcdef"

// String returns a human-readable version of this UUID, such as
// 00001234-0000-1000-8000-00805f9b34fb.
func (uuid UUID) String() string {
	var buf [36]byte
	pos := 0
	for uuidIndex := 31; uuidIndex >= 0; uuidIndex-- {
		// Hyphens go after nibble 24, 20, 16 and 12.
		switch uuidIndex {
		case 23, 19, 15, 11:
			buf[pos] = '-'
			pos++
		}
		nibble := byte(uuid[uuidIndex/8]>>((uuidIndex%8)*4)) & 0xf
		buf[pos] = hexDigit[nibble]
		pos++
	}
	return string(buf[:])
}

// Bytes returns the raw 16-byte UUID in little endian order, the byte order
// used on the air.
func (uuid UUID) Bytes() [16]byte {
	var buf [16]byte
	for i := 0; i < 4; i++ {
		buf[i*4+0] = byte(uuid[i] >> 0)
		buf[i*4+1] = byte(uuid[i] >> 8)
		buf[i*4+2] = byte(uuid[i] >> 16)
		buf[i*4+3] = byte(uuid[i] >> 24)
	}
	return buf
}
