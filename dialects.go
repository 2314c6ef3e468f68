package main

import (
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v2"

	lualex "github.com/vyPal/PicoLua/lib/lexer"
)

func init() {
	commands = append(commands, &cli.Command{
		Name:     "dialects",
		Usage:    "List the dialect extensions and the version each arrived in",
		Category: "inspect",
		Flags:    []cli.Flag{dialectFlag()},
		Action:   dialects,
	})
}

func dialects(c *cli.Context) error {
	version, err := dialect(c)
	if err != nil {
		return err
	}

	table := tablewriter.NewWriter(c.App.Writer)
	table.SetHeader([]string{"Feature", "Since", "Enabled"})
	for _, f := range lualex.Features() {
		enabled := "no"
		if version.Has(f) {
			enabled = "yes"
		}
		table.Append([]string{f.String(), strconv.Itoa(int(f.Since())), enabled})
	}
	table.Render()
	return nil
}
