package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/urfave/cli/v2"

	"github.com/bleadvert/bleadvert"
)

var adaptersCommand = &cli.Command{
	Name:  "adapters",
	Usage: "list Bluetooth adapters known to BlueZ",
	Action: func(c *cli.Context) error {
		infos, err := bleadvert.ListAdapters()
		if err != nil {
			return err
		}
		if len(infos) == 0 {
			return cli.Exit("no Bluetooth adapters found", 1)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tADDRESS\tALIAS\tPOWERED\tADVERTISING\tINSTANCES\tMAXLEN")
		for _, info := range infos {
			instances, maxLen := "-", "-"
			if info.Advertising {
				instances = fmt.Sprintf("%d/%d", info.ActiveInstances, info.SupportedInstances)
				if info.MaxAdvLen > 0 {
					maxLen = fmt.Sprintf("%d", info.MaxAdvLen)
				}
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%t\t%t\t%s\t%s\n",
				info.ID, info.Address, info.Alias, info.Powered, info.Advertising, instances, maxLen)
		}
		return w.Flush()
	},
}
