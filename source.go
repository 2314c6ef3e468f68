package main

import (
	"errors"
	"io"
	"os"

	"github.com/alecthomas/participle/v2"
	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	lualex "github.com/vyPal/PicoLua/lib/lexer"
)

func dialectFlag() cli.Flag {
	return &cli.IntFlag{
		Name:    "dialect",
		Aliases: []string{"V"},
		Usage:   "The PICO-8 dialect version, 0 for plain Lua",
		Value:   int(lualex.DefaultVersion),
	}
}

func sourceFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "input-str",
		Aliases: []string{"s"},
		Usage:   "Read the source from a string instead of a file",
	}
}

// readSource returns the -s string or the contents of the first argument.
func readSource(c *cli.Context) (string, string, error) {
	if c.IsSet("input-str") {
		return "<string>", c.String("input-str"), nil
	}

	filename := c.Args().First()
	if filename == "" {
		return "", "", cli.Exit(color.RedString("Error: No file specified"), 1)
	}

	src, err := os.ReadFile(filename)
	if err != nil {
		return "", "", cli.Exit(color.RedString("Error reading file: %s", err), 1)
	}
	return filename, string(src), nil
}

func dialect(c *cli.Context) (lualex.Version, error) {
	v := c.Int("dialect")
	if v < 0 {
		return 0, cli.Exit(color.RedString("Error: dialect version must not be negative"), 1)
	}
	return lualex.Version(v), nil
}

// diagnostic prints a lex or parse error as file:line:col: message.
func diagnostic(w io.Writer, filename string, err error) {
	var perr participle.Error
	if errors.As(err, &perr) {
		pos := perr.Position()
		color.New(color.FgRed).Fprintf(w, "%s:%d:%d: %s\n", filename, pos.Line, pos.Column, perr.Message())
		return
	}
	color.New(color.FgRed).Fprintf(w, "%s: %s\n", filename, err)
}

func sourceError(c *cli.Context, filename string, err error) error {
	diagnostic(c.App.ErrWriter, filename, err)
	return cli.Exit(color.RedString("%s failed to parse", filename), 1)
}
