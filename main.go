package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"
)

var commands []*cli.Command

func newApp() *cli.App {
	return &cli.App{
		Name:                   "picolua",
		Usage:                  "Lex, parse and check PICO-8 Lua sources",
		EnableBashCompletion:   true,
		UseShortOptionHandling: true,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Print additional status lines",
			},
		},
		Commands: commands,
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("Error: %s", err))
		os.Exit(1)
	}
}

func verbosef(c *cli.Context, format string, args ...interface{}) {
	if c.Bool("verbose") {
		color.New(color.FgGreen).Fprintf(c.App.ErrWriter, format+"\n", args...)
	}
}
