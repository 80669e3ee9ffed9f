package bleadvert

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testProfile = `
local_name: sensor-7
type: peripheral
service_uuids:
  - "180d"
  - "6ba1b218-15a8-461f-9fa8-5dcae273eafd"
manufacturer_data:
  0x0123: "0102030405"
service_data:
  "180f": "64"
timeout: 60
duration: 2
discoverable: true
`

func TestProfileOptions(t *testing.T) {
	p, err := ParseProfile([]byte(testProfile))
	if err != nil {
		t.Fatalf("expected nil but got %v", err)
	}
	options, err := p.Options()
	if err != nil {
		t.Fatalf("expected nil but got %v", err)
	}

	if options.LocalName != "sensor-7" {
		t.Errorf("unexpected local name %q", options.LocalName)
	}
	if options.Type != AdvertisementTypePeripheral {
		t.Errorf("unexpected type %q", options.Type)
	}
	if len(options.ServiceUUIDs) != 2 || options.ServiceUUIDs[0] != New16BitUUID(0x180D) {
		t.Errorf("unexpected service UUIDs: %v", options.ServiceUUIDs)
	}
	if len(options.ManufacturerData) != 1 {
		t.Fatalf("unexpected manufacturer data: %v", options.ManufacturerData)
	}
	if options.ManufacturerData[0].CompanyID != 0x0123 {
		t.Errorf("unexpected company ID %#04x", options.ManufacturerData[0].CompanyID)
	}
	if !bytes.Equal(options.ManufacturerData[0].Data, []byte{1, 2, 3, 4, 5}) {
		t.Errorf("unexpected manufacturer payload: %v", options.ManufacturerData[0].Data)
	}
	if len(options.ServiceData) != 1 || options.ServiceData[0].UUID != New16BitUUID(0x180F) {
		t.Errorf("unexpected service data: %v", options.ServiceData)
	}
	if options.Timeout != 60 || options.Duration != 2 {
		t.Errorf("unexpected timeout/duration: %d/%d", options.Timeout, options.Duration)
	}
	if !options.Discoverable {
		t.Errorf("expected discoverable")
	}
}

func TestProfileBadType(t *testing.T) {
	p := &Profile{Type: "beacon"}
	if _, err := p.Options(); err == nil || !strings.Contains(err.Error(), "unknown advertisement type") {
		t.Errorf("expected an unknown type error but got %v", err)
	}
}

func TestProfileBadHex(t *testing.T) {
	p := &Profile{ManufacturerData: map[uint16]string{0x0123: "zz"}}
	if _, err := p.Options(); err == nil || !strings.Contains(err.Error(), "manufacturer data") {
		t.Errorf("expected a manufacturer data error but got %v", err)
	}
}

func TestProfileBadUUID(t *testing.T) {
	p := &Profile{ServiceUUIDs: []string{"nope"}}
	if _, err := p.Options(); err == nil || !strings.Contains(err.Error(), "service UUID") {
		t.Errorf("expected a service UUID error but got %v", err)
	}
}

func TestLoadProfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yaml")
	if err := os.WriteFile(path, []byte(testProfile), 0644); err != nil {
		t.Fatal(err)
	}
	p, err := LoadProfile(path)
	if err != nil {
		t.Fatalf("expected nil but got %v", err)
	}
	if p.LocalName != "sensor-7" {
		t.Errorf("unexpected local name %q", p.LocalName)
	}

	if _, err := LoadProfile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Errorf("expected an error for a missing file")
	}
}
