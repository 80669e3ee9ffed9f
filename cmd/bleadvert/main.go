// Command bleadvert broadcasts a BLE advertisement through the BlueZ daemon.
//
// With no arguments it registers a test advertisement on the first
// advertising-capable adapter and keeps broadcasting until interrupted.
package main

import (
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "bleadvert",
		Usage: "broadcast BLE advertisements through BlueZ",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "debug",
				Aliases: []string{"d"},
				Usage:   "enable debug logging",
			},
		},
		Before: func(c *cli.Context) error {
			log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
			if c.Bool("debug") {
				log.SetLevel(log.DebugLevel)
			}
			return nil
		},
		Commands: []*cli.Command{
			upCommand,
			adaptersCommand,
		},
		DefaultCommand: "up",
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
