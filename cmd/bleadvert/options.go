package main

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/bleadvert/bleadvert"
)

// assembleOptions builds the advertisement options from the profile named by
// --config, if any, and the command line flags. Flags the user set explicitly
// override the profile; flag defaults only apply when no profile is given.
func assembleOptions(c *cli.Context) (bleadvert.AdvertisementOptions, error) {
	var options bleadvert.AdvertisementOptions

	fromProfile := c.String("config") != ""
	if fromProfile {
		profile, err := bleadvert.LoadProfile(c.String("config"))
		if err != nil {
			return options, err
		}
		options, err = profile.Options()
		if err != nil {
			return options, err
		}
	}

	if !fromProfile || c.IsSet("name") {
		options.LocalName = c.String("name")
	}
	if !fromProfile || c.IsSet("type") {
		advType, err := parseType(c.String("type"))
		if err != nil {
			return options, err
		}
		options.Type = advType
	}
	if !fromProfile || c.IsSet("service-uuid") {
		options.ServiceUUIDs = nil
		for _, s := range c.StringSlice("service-uuid") {
			uuid, err := bleadvert.ParseServiceUUID(s)
			if err != nil {
				return options, fmt.Errorf("service UUID %q: %w", s, err)
			}
			options.ServiceUUIDs = append(options.ServiceUUIDs, uuid)
		}
	}
	if !fromProfile || c.IsSet("manufacturer") {
		options.ManufacturerData = nil
		for _, s := range c.StringSlice("manufacturer") {
			element, err := parseManufacturerSpec(s)
			if err != nil {
				return options, err
			}
			options.ManufacturerData = append(options.ManufacturerData, element)
		}
	}
	if !fromProfile || c.IsSet("service-data") {
		options.ServiceData = nil
		for _, s := range c.StringSlice("service-data") {
			element, err := parseServiceDataSpec(s)
			if err != nil {
				return options, err
			}
			options.ServiceData = append(options.ServiceData, element)
		}
	}
	if !fromProfile || c.IsSet("timeout") {
		timeout, err := seconds(c, "timeout")
		if err != nil {
			return options, err
		}
		options.Timeout = timeout
	}
	if !fromProfile || c.IsSet("duration") {
		duration, err := seconds(c, "duration")
		if err != nil {
			return options, err
		}
		options.Duration = duration
	}
	if !fromProfile || c.IsSet("discoverable") {
		options.Discoverable = c.Bool("discoverable")
	}

	return options, nil
}

func parseType(s string) (bleadvert.AdvertisementType, error) {
	switch s {
	case "broadcast":
		return bleadvert.AdvertisementTypeBroadcast, nil
	case "peripheral":
		return bleadvert.AdvertisementTypePeripheral, nil
	default:
		return "", fmt.Errorf("unknown advertisement type %q (want broadcast or peripheral)", s)
	}
}

// parseManufacturerSpec parses a "<company-id>:<payload-hex>" flag value,
// such as "0123:0102030405". The company ID is hexadecimal, with or without
// an 0x prefix.
func parseManufacturerSpec(s string) (bleadvert.ManufacturerDataElement, error) {
	idPart, payloadPart, ok := strings.Cut(s, ":")
	if !ok {
		return bleadvert.ManufacturerDataElement{}, fmt.Errorf("manufacturer data %q: want <company-id>:<payload-hex>", s)
	}
	companyID, err := strconv.ParseUint(strings.TrimPrefix(idPart, "0x"), 16, 16)
	if err != nil {
		return bleadvert.ManufacturerDataElement{}, fmt.Errorf("manufacturer data %q: bad company ID: %w", s, err)
	}
	data, err := hex.DecodeString(payloadPart)
	if err != nil {
		return bleadvert.ManufacturerDataElement{}, fmt.Errorf("manufacturer data %q: bad payload: %w", s, err)
	}
	return bleadvert.ManufacturerDataElement{
		CompanyID: uint16(companyID),
		Data:      data,
	}, nil
}

// parseServiceDataSpec parses a "<uuid>:<payload-hex>" flag value.
func parseServiceDataSpec(s string) (bleadvert.ServiceDataElement, error) {
	uuidPart, payloadPart, ok := strings.Cut(s, ":")
	if !ok {
		return bleadvert.ServiceDataElement{}, fmt.Errorf("service data %q: want <uuid>:<payload-hex>", s)
	}
	uuid, err := bleadvert.ParseServiceUUID(uuidPart)
	if err != nil {
		return bleadvert.ServiceDataElement{}, fmt.Errorf("service data %q: %w", s, err)
	}
	data, err := hex.DecodeString(payloadPart)
	if err != nil {
		return bleadvert.ServiceDataElement{}, fmt.Errorf("service data %q: bad payload: %w", s, err)
	}
	return bleadvert.ServiceDataElement{
		UUID: uuid,
		Data: data,
	}, nil
}

func seconds(c *cli.Context, name string) (uint16, error) {
	v := c.Uint(name)
	if v > 1<<16-1 {
		return 0, fmt.Errorf("%s %d is out of range (max %d seconds)", name, v, 1<<16-1)
	}
	return uint16(v), nil
}
