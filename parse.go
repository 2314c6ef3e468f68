package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/davecgh/go-spew/spew"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/vyPal/PicoLua/lib/analyzer"
	lualex "github.com/vyPal/PicoLua/lib/lexer"
	"github.com/vyPal/PicoLua/lib/parser"
	"github.com/vyPal/PicoLua/lib/project"
)

func init() {
	commands = append(commands, &cli.Command{
		Name:      "tokens",
		Usage:     "Print the token stream of a file",
		Category:  "inspect",
		ArgsUsage: "<file>",
		Flags:     []cli.Flag{sourceFlag(), dialectFlag()},
		Action:    tokens,
	}, &cli.Command{
		Name:      "parse",
		Usage:     "Parse a file and dump the syntax tree",
		Category:  "inspect",
		ArgsUsage: "<file>",
		Flags: []cli.Flag{
			sourceFlag(),
			dialectFlag(),
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format: json, yaml or spew",
				Value:   "json",
			},
		},
		Action: parse,
	}, &cli.Command{
		Name:  "check",
		Usage: "Parse and analyze files, or the current project when none are given",
		Description: "Reports syntax errors in red and analyzer warnings in yellow." +
			"\nExits with status 1 if any file fails to parse.",
		Category:  "inspect",
		ArgsUsage: "[files...]",
		Flags: []cli.Flag{
			dialectFlag(),
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "The path to the project config file",
			},
		},
		Action: check,
	})
}

func tokens(c *cli.Context) error {
	filename, src, err := readSource(c)
	if err != nil {
		return err
	}
	version, err := dialect(c)
	if err != nil {
		return err
	}

	toks, err := lualex.Lex(filename, src, version)
	if err != nil {
		return sourceError(c, filename, err)
	}

	table := tablewriter.NewWriter(c.App.Writer)
	table.SetHeader([]string{"Line", "Col", "Type", "Value"})
	table.SetAutoWrapText(false)
	for _, tok := range toks {
		table.Append([]string{
			strconv.Itoa(tok.Pos.Line),
			strconv.Itoa(tok.Pos.Column),
			tok.Type.String(),
			strconv.Quote(tok.Value),
		})
	}
	table.Render()

	verbosef(c, "%d tokens", len(toks))
	return nil
}

func parse(c *cli.Context) error {
	filename, src, err := readSource(c)
	if err != nil {
		return err
	}
	version, err := dialect(c)
	if err != nil {
		return err
	}

	chunk, err := parser.ParseString(filename, src, version)
	if err != nil {
		return sourceError(c, filename, err)
	}

	w := c.App.Writer
	switch c.String("format") {
	case "json":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(chunk); err != nil {
			return cli.Exit(color.RedString("Error encoding AST: %s", err), 1)
		}
	case "yaml":
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(chunk); err != nil {
			return cli.Exit(color.RedString("Error encoding AST: %s", err), 1)
		}
		if err := encoder.Close(); err != nil {
			return cli.Exit(color.RedString("Error encoding AST: %s", err), 1)
		}
	case "spew":
		cfg := spew.ConfigState{
			Indent:                  "  ",
			DisablePointerAddresses: true,
			DisableCapacities:       true,
			DisableMethods:          true,
		}
		cfg.Fdump(w, chunk)
	default:
		return cli.Exit(color.RedString("Error: unknown format %q", c.String("format")), 1)
	}
	return nil
}

func check(c *cli.Context) error {
	files := c.Args().Slice()
	version, err := dialect(c)
	if err != nil {
		return err
	}

	if len(files) == 0 {
		conf, path, err := loadConf(c)
		if err != nil {
			return err
		}
		verbosef(c, "Using config %s", path)
		files = conf.Sources(filepath.Dir(path))
		if !c.IsSet("dialect") {
			version = conf.LuaVersion()
		}
		if len(files) == 0 {
			return cli.Exit(color.RedString("Error: %s lists no source files", path), 1)
		}
	}

	failed := 0
	for _, filename := range files {
		src, err := os.ReadFile(filename)
		if err != nil {
			color.New(color.FgRed).Fprintf(c.App.ErrWriter, "%s: %s\n", filename, err)
			failed++
			continue
		}

		chunk, err := parser.ParseString(filename, string(src), version)
		if err != nil {
			diagnostic(c.App.ErrWriter, filename, err)
			failed++
			continue
		}

		prog, err := analyzer.Analyze(chunk)
		if err != nil {
			return cli.Exit(color.RedString("Error analyzing %s: %s", filename, err), 1)
		}
		for _, w := range prog.Warnings {
			color.New(color.FgYellow).Fprintf(c.App.ErrWriter, "%s:%d:%d: warning: %s\n",
				filename, w.Token.Pos.Line, w.Token.Pos.Column, w.Msg)
		}
		verbosef(c, "%s: %d statements, %d globals", filename, len(chunk.Stats), len(prog.Globals))
	}

	if failed > 0 {
		return cli.Exit(color.RedString("%d of %d files failed to parse", failed, len(files)), 1)
	}
	fmt.Fprintln(c.App.Writer, color.GreenString("%d files OK", len(files)))
	return nil
}

// loadConf reads the -c config, or finds one in the working directory.
func loadConf(c *cli.Context) (project.Conf, string, error) {
	if path := c.String("config"); path != "" {
		conf, err := project.Load(path)
		if err != nil {
			return project.Conf{}, "", cli.Exit(color.RedString("Error loading config: %s", err), 1)
		}
		return conf, path, nil
	}

	conf, path, err := project.Find(".")
	if err != nil {
		return project.Conf{}, "", cli.Exit(color.RedString("Error loading config: %s", err), 1)
	}
	return conf, path, nil
}
