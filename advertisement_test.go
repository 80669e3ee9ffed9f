package bleadvert

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/godbus/dbus/v5"
)

func TestAdvertisementProperties(t *testing.T) {
	options := AdvertisementOptions{
		LocalName:    "TestAdvertisement",
		ServiceUUIDs: []UUID{New16BitUUID(0xABCD)},
		ManufacturerData: []ManufacturerDataElement{
			{CompanyID: 0x0123, Data: []byte{1, 2, 3, 4, 5}},
		},
		ServiceData: []ServiceDataElement{
			{UUID: New16BitUUID(0x180D), Data: []byte{0x42}},
		},
		Timeout: 30,
	}
	spec := advertisementProperties(options)
	props := spec[advertisementInterface]
	if props == nil {
		t.Fatal("missing LEAdvertisement1 interface in property spec")
	}

	if got := props["Type"].Value; got != "broadcast" {
		t.Errorf("expected type broadcast but got %v", got)
	}
	uuids := props["ServiceUUIDs"].Value.([]string)
	if len(uuids) != 1 || uuids[0] != "0000abcd-0000-1000-8000-00805f9b34fb" {
		t.Errorf("unexpected service UUIDs: %v", uuids)
	}
	manufacturerData := props["ManufacturerData"].Value.(map[uint16]any)
	if !bytes.Equal(manufacturerData[0x0123].([]byte), []byte{1, 2, 3, 4, 5}) {
		t.Errorf("unexpected manufacturer data: %v", manufacturerData)
	}
	serviceData := props["ServiceData"].Value.(map[string]any)
	if _, ok := serviceData["0000180d-0000-1000-8000-00805f9b34fb"]; !ok {
		t.Errorf("unexpected service data: %v", serviceData)
	}
	if !props["ServiceData"].Writable {
		t.Errorf("expected ServiceData to be writable")
	}
	if got := props["LocalName"].Value; got != "TestAdvertisement" {
		t.Errorf("expected local name TestAdvertisement but got %v", got)
	}
	if got := props["Timeout"].Value; got != uint16(30) {
		t.Errorf("expected timeout 30 but got %v", got)
	}
}

func TestAdvertisementPropertiesDefaultType(t *testing.T) {
	spec := advertisementProperties(AdvertisementOptions{})
	if got := spec[advertisementInterface]["Type"].Value; got != "broadcast" {
		t.Errorf("expected the type to default to broadcast but got %v", got)
	}

	spec = advertisementProperties(AdvertisementOptions{Type: AdvertisementTypePeripheral})
	if got := spec[advertisementInterface]["Type"].Value; got != "peripheral" {
		t.Errorf("expected type peripheral but got %v", got)
	}
}

func TestRegisterError(t *testing.T) {
	if err := registerError(dbus.Error{Name: "org.bluez.Error.AlreadyExists"}); err != ErrAdvertisementAlreadyStarted {
		t.Errorf("expected ErrAdvertisementAlreadyStarted but got %v", err)
	}
	if err := registerError(dbus.Error{Name: "org.bluez.Error.NotPermitted"}); err == nil || !strings.Contains(err.Error(), "instance limit") {
		t.Errorf("expected an instance limit error but got %v", err)
	}
	if err := registerError(dbus.Error{Name: "org.bluez.Error.InvalidLength"}); err == nil || !strings.Contains(err.Error(), "too long") {
		t.Errorf("expected a payload length error but got %v", err)
	}
	if err := registerError(errors.New("socket closed")); err == nil || !strings.Contains(err.Error(), "could not start advertisement") {
		t.Errorf("expected a wrapped error but got %v", err)
	}
}

func TestRelease(t *testing.T) {
	released := false
	adv := &Advertisement{
		path:    dbus.ObjectPath("/org/bleadvert/advertisement1"),
		started: true,
	}
	adv.SetReleaseHandler(func() { released = true })

	if err := (*advertisementRelease)(adv).Release(); err != nil {
		t.Fatalf("expected nil but got %v", err)
	}
	if adv.Active() {
		t.Errorf("expected the advertisement to be stopped after Release")
	}
	if !released {
		t.Errorf("expected the release handler to run")
	}

	// A second Release must not fire the handler again.
	released = false
	if err := (*advertisementRelease)(adv).Release(); err != nil {
		t.Fatalf("expected nil but got %v", err)
	}
	if released {
		t.Errorf("expected the release handler to run only once")
	}
}
