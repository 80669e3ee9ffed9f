package bleadvert

import "errors"

// MAC represents a Bluetooth MAC address, in little endian format.
type MAC [6]byte

var errInvalidMAC = errors.New("bleadvert: failed to parse MAC address")

// ParseMAC parses the given MAC address, which must be in 11:22:33:AA:BB:CC
// format. If it cannot be parsed, an error is returned.
func ParseMAC(s string) (mac MAC, err error) {
	macIndex := 11
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == ':' {
			continue
		}
		var nibble byte
		if c >= '0' && c <= '9' {
			nibble = c - '0' + 0x0
		} else if c >= 'A' && c <= 'F' {
			nibble = c - 'A' + 0xA
		} else {
			err = errInvalidMAC
			return
		}
		if macIndex < 0 {
			err = errInvalidMAC
			return
		}
		if macIndex%2 == 0 {
			mac[macIndex/2] |= nibble
		} else {
			mac[macIndex/2] |= nibble << 4
		}
		macIndex--
	}
	if macIndex != -1 {
		err = errInvalidMAC
	}
	return
}

// String returns a human-readable version of this MAC address, such as
// 11:22:33:AA:BB:CC.
func (mac MAC) String() string {
	var buf [17]byte
	pos := 0
	for i := 5; i >= 0; i-- {
		if i != 5 {
			buf[pos] = ':'
			pos++
		}
		buf[pos] = upperHexDigit[mac[i]>>4]
		buf[pos+1] = upperHexDigit[mac[i]&0xf]
		pos += 2
	}
	return string(buf[:])
}

const upperHexDigit = "0123456789ABCDEF"
