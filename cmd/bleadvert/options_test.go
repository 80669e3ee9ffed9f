package main

import (
	"bytes"
	"testing"

	"github.com/bleadvert/bleadvert"
)

func TestParseManufacturerSpec(t *testing.T) {
	type testCase struct {
		raw     string
		company uint16
		payload []byte
	}
	tests := []testCase{
		{
			raw:     "0123:0102030405",
			company: 0x0123,
			payload: []byte{1, 2, 3, 4, 5},
		},
		{
			raw:     "0x004c:10",
			company: 0x004C,
			payload: []byte{0x10},
		},
		{
			raw:     "ffff:",
			company: 0xFFFF,
			payload: []byte{},
		},
	}
	for _, tc := range tests {
		element, err := parseManufacturerSpec(tc.raw)
		if err != nil {
			t.Errorf("parseManufacturerSpec(%q): unexpected error: %v", tc.raw, err)
			continue
		}
		if element.CompanyID != tc.company {
			t.Errorf("parseManufacturerSpec(%q): expected company %#04x but got %#04x", tc.raw, tc.company, element.CompanyID)
		}
		if !bytes.Equal(element.Data, tc.payload) {
			t.Errorf("parseManufacturerSpec(%q): unexpected payload %v", tc.raw, element.Data)
		}
	}
}

func TestParseManufacturerSpecInvalid(t *testing.T) {
	for _, raw := range []string{
		"",            // no separator
		"0123",        // no separator
		"12345:00",    // company ID out of range
		"zz:00",       // company ID not hex
		"0123:0102z3", // payload not hex
	} {
		if _, err := parseManufacturerSpec(raw); err == nil {
			t.Errorf("parseManufacturerSpec(%q): expected an error", raw)
		}
	}
}

func TestParseServiceDataSpec(t *testing.T) {
	element, err := parseServiceDataSpec("180f:64")
	if err != nil {
		t.Fatalf("expected nil but got %v", err)
	}
	if element.UUID != bleadvert.New16BitUUID(0x180F) {
		t.Errorf("unexpected UUID %s", element.UUID.String())
	}
	if !bytes.Equal(element.Data, []byte{0x64}) {
		t.Errorf("unexpected payload %v", element.Data)
	}

	if _, err := parseServiceDataSpec("180f"); err == nil {
		t.Errorf("expected an error without a separator")
	}
	if _, err := parseServiceDataSpec("nope:64"); err == nil {
		t.Errorf("expected an error for a bad UUID")
	}
}

func TestParseType(t *testing.T) {
	if advType, err := parseType("broadcast"); err != nil || advType != bleadvert.AdvertisementTypeBroadcast {
		t.Errorf("parseType(broadcast): got %q, %v", advType, err)
	}
	if advType, err := parseType("peripheral"); err != nil || advType != bleadvert.AdvertisementTypePeripheral {
		t.Errorf("parseType(peripheral): got %q, %v", advType, err)
	}
	if _, err := parseType("beacon"); err == nil {
		t.Errorf("parseType(beacon): expected an error")
	}
}
