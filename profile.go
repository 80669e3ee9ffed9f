package bleadvert

import (
	"encoding/hex"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Profile is an advertisement description as stored on disk. Payloads are
// hex strings so profiles stay editable by hand:
//
//	local_name: sensor-7
//	type: broadcast
//	service_uuids: ["180d", "0000feaa-0000-1000-8000-00805f9b34fb"]
//	manufacturer_data:
//	  0x0123: "0102030405"
type Profile struct {
	LocalName        string            `yaml:"local_name"`
	Type             string            `yaml:"type"`
	ServiceUUIDs     []string          `yaml:"service_uuids"`
	ManufacturerData map[uint16]string `yaml:"manufacturer_data"`
	ServiceData      map[string]string `yaml:"service_data"`
	Timeout          uint16            `yaml:"timeout"`
	Duration         uint16            `yaml:"duration"`
	Discoverable     bool              `yaml:"discoverable"`
}

// LoadProfile reads and parses an advertisement profile from a YAML file.
func LoadProfile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseProfile(data)
}

// ParseProfile parses an advertisement profile from YAML.
func ParseProfile(data []byte) (*Profile, error) {
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("bleadvert: parse profile: %w", err)
	}
	return &p, nil
}

// Options converts the profile into advertisement options, validating each
// field. Elements parsed from maps come out in key order so the result is
// deterministic.
func (p *Profile) Options() (AdvertisementOptions, error) {
	options := AdvertisementOptions{
		LocalName:    p.LocalName,
		Timeout:      p.Timeout,
		Duration:     p.Duration,
		Discoverable: p.Discoverable,
	}

	switch p.Type {
	case "":
		// Configure falls back to broadcast.
	case string(AdvertisementTypeBroadcast), string(AdvertisementTypePeripheral):
		options.Type = AdvertisementType(p.Type)
	default:
		return options, fmt.Errorf("bleadvert: profile: unknown advertisement type %q", p.Type)
	}

	for _, s := range p.ServiceUUIDs {
		uuid, err := ParseServiceUUID(s)
		if err != nil {
			return options, fmt.Errorf("bleadvert: profile: service UUID %q: %w", s, err)
		}
		options.ServiceUUIDs = append(options.ServiceUUIDs, uuid)
	}

	companies := make([]uint16, 0, len(p.ManufacturerData))
	for id := range p.ManufacturerData {
		companies = append(companies, id)
	}
	sort.Slice(companies, func(i, j int) bool { return companies[i] < companies[j] })
	for _, id := range companies {
		data, err := hex.DecodeString(p.ManufacturerData[id])
		if err != nil {
			return options, fmt.Errorf("bleadvert: profile: manufacturer data for company %#04x: %w", id, err)
		}
		options.ManufacturerData = append(options.ManufacturerData, ManufacturerDataElement{
			CompanyID: id,
			Data:      data,
		})
	}

	uuids := make([]string, 0, len(p.ServiceData))
	for uuid := range p.ServiceData {
		uuids = append(uuids, uuid)
	}
	sort.Strings(uuids)
	for _, s := range uuids {
		uuid, err := ParseServiceUUID(s)
		if err != nil {
			return options, fmt.Errorf("bleadvert: profile: service data UUID %q: %w", s, err)
		}
		data, err := hex.DecodeString(p.ServiceData[s])
		if err != nil {
			return options, fmt.Errorf("bleadvert: profile: service data for %q: %w", s, err)
		}
		options.ServiceData = append(options.ServiceData, ServiceDataElement{
			UUID: uuid,
			Data: data,
		})
	}

	return options, nil
}
