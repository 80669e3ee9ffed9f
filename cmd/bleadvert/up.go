package main

import (
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/bleadvert/bleadvert"
)

var upCommand = &cli.Command{
	Name:  "up",
	Usage: "register the advertisement and broadcast until interrupted",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "adapter",
			Aliases: []string{"i"},
			Usage:   "adapter ID such as hci0 (default: first advertising-capable adapter)",
		},
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "advertisement profile (YAML)",
		},
		&cli.StringFlag{
			Name:    "name",
			Aliases: []string{"n"},
			Value:   "TestAdvertisement",
			Usage:   "local name to broadcast",
		},
		&cli.StringSliceFlag{
			Name:    "service-uuid",
			Aliases: []string{"u"},
			Value:   cli.NewStringSlice("abcd"),
			Usage:   "service UUID to broadcast (repeatable)",
		},
		&cli.StringSliceFlag{
			Name:    "manufacturer",
			Aliases: []string{"m"},
			Value:   cli.NewStringSlice("0123:0102030405"),
			Usage:   "manufacturer data as <company-id>:<payload-hex> (repeatable)",
		},
		&cli.StringSliceFlag{
			Name:  "service-data",
			Usage: "service data as <uuid>:<payload-hex> (repeatable)",
		},
		&cli.StringFlag{
			Name:  "type",
			Value: "broadcast",
			Usage: "advertisement type: broadcast or peripheral",
		},
		&cli.UintFlag{
			Name:  "timeout",
			Usage: "seconds after which BlueZ drops the advertisement (0 = forever)",
		},
		&cli.UintFlag{
			Name:  "duration",
			Usage: "rotation slot in seconds when several advertisements share the adapter",
		},
		&cli.BoolFlag{
			Name:  "discoverable",
			Usage: "make the adapter discoverable while advertising",
		},
		&cli.BoolFlag{
			Name:  "power-on",
			Usage: "power the adapter if it is off",
		},
	},
	Action: up,
}

func up(c *cli.Context) error {
	options, err := assembleOptions(c)
	if err != nil {
		return err
	}

	adapter := bleadvert.NewAdapter(c.String("adapter"))
	if err := adapter.Enable(); err != nil {
		return err
	}
	defer adapter.Disable()

	if c.Bool("power-on") {
		if err := adapter.PowerOn(); err != nil {
			return err
		}
	}

	if address, err := adapter.Address(); err == nil {
		log.WithFields(log.Fields{
			"adapter": adapter.ID(),
			"address": address.String(),
		}).Info("adapter ready")
	} else {
		log.WithError(err).Debug("adapter address unavailable")
	}

	adapter.SetStateChangeHandler(func(state bleadvert.AdapterState) {
		log.WithField("state", state).Warn("adapter state changed")
	})

	adv := adapter.DefaultAdvertisement()
	released := make(chan struct{})
	adv.SetReleaseHandler(func() {
		close(released)
	})
	if err := adv.Configure(options); err != nil {
		return err
	}
	if err := adv.Start(); err != nil {
		return err
	}
	log.WithFields(log.Fields{
		"path": adv.Path(),
		"name": options.LocalName,
		"type": options.Type,
	}).Info("advertising")

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	select {
	case s := <-sig:
		log.WithField("signal", s).Info("shutting down")
		if err := adv.Stop(); err != nil && err != bleadvert.ErrAdvertisementNotStarted {
			return err
		}
	case <-released:
		// BlueZ already dropped the registration, nothing to unregister.
		log.Info("advertisement released by BlueZ")
	}
	return nil
}
