package bleadvert

// AdvertisementType is the kind of advertising packet BlueZ should emit.
type AdvertisementType string

const (
	// AdvertisementTypeBroadcast is a non-connectable advertisement, the
	// usual choice for a beacon.
	AdvertisementTypeBroadcast AdvertisementType = "broadcast"

	// AdvertisementTypePeripheral is a connectable advertisement.
	AdvertisementTypePeripheral AdvertisementType = "peripheral"
)

// AdvertisementOptions configures an advertisement instance.
type AdvertisementOptions struct {
	// Type of the advertisement. Defaults to broadcast.
	Type AdvertisementType

	// LocalName is the name broadcast in the advertisement. When set, the
	// adapter alias is updated to match so scan responses agree with it.
	LocalName string

	// ServiceUUIDs to broadcast.
	ServiceUUIDs []UUID

	// ManufacturerData carries vendor-specific payloads, keyed by the
	// company identifier assigned by the Bluetooth SIG.
	ManufacturerData []ManufacturerDataElement

	// ServiceData carries service-specific payloads.
	ServiceData []ServiceDataElement

	// Timeout is the number of seconds after which BlueZ releases the
	// advertisement. Zero keeps it registered until Stop.
	Timeout uint16

	// Duration is the rotation slot in seconds when several advertisement
	// instances share the adapter.
	Duration uint16

	// Discoverable makes the adapter generally discoverable while the
	// advertisement is active.
	Discoverable bool
}

// ManufacturerDataElement is a single manufacturer data field in an
// advertisement packet.
type ManufacturerDataElement struct {
	// CompanyID is the company ID assigned by the Bluetooth SIG. 0xFFFF is
	// reserved for testing.
	CompanyID uint16

	// Data is the raw payload, at most 27 bytes on BLE 4.x.
	Data []byte
}

// ServiceDataElement is a single service data field in an advertisement
// packet.
type ServiceDataElement struct {
	// UUID of the service this data belongs to.
	UUID UUID

	// Data is the raw payload.
	Data []byte
}

// MACAddress contains a Bluetooth MAC address.
type MACAddress struct {
	MAC
}
