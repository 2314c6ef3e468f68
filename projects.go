package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/vyPal/PicoLua/lib/project"
	"github.com/vyPal/PicoLua/util"
)

const mainTemplate = `function _init()
  x, y = 64, 64
end

function _update()
  if (btn(0)) x -= 1
  if (btn(1)) x += 1
  if (btn(2)) y -= 1
  if (btn(3)) y += 1
end

function _draw()
  cls()
  print("hello world", x - 22, y, 7)
end
`

func init() {
	commands = append(commands, &cli.Command{
		Name:      "init",
		Usage:     "Initialize a new PICO-8 project",
		Category:  "project",
		ArgsUsage: "[dir]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "name",
				Aliases: []string{"n"},
				Usage:   "The name of the project",
			},
			&cli.IntFlag{
				Name:    "dialect",
				Aliases: []string{"V"},
				Usage:   "The dialect version the project targets",
			},
			&cli.StringFlag{
				Name:    "main",
				Aliases: []string{"m"},
				Usage:   "The main file of the project",
			},
			&cli.StringFlag{
				Name:    "author",
				Aliases: []string{"a"},
				Usage:   "The author of the project",
			},
			&cli.StringFlag{
				Name:    "license",
				Aliases: []string{"l"},
				Usage:   "The license of the project",
			},
			&cli.BoolFlag{
				Name:  "toml",
				Usage: "Write p8conf.toml instead of p8conf.yaml",
			},
			&cli.BoolFlag{
				Name:    "interactive",
				Aliases: []string{"i"},
				Usage:   "Prompt for every field",
			},
		},
		Action: initProject,
	}, &cli.Command{
		Name:     "info",
		Usage:    "Displays information about the current project",
		Category: "project",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "The path to the project config file",
			},
		},
		Action: info,
	})
}

func initProject(c *cli.Context) error {
	rootDir := c.Args().First()
	if rootDir == "" {
		rootDir = "."
	}

	if _, err := os.Stat(rootDir); os.IsNotExist(err) {
		if err := os.MkdirAll(rootDir, 0755); err != nil {
			return cli.Exit(color.RedString("Error creating directory: %s", err), 1)
		}
		verbosef(c, "Created directory: %s", rootDir)
	}

	conf := project.Conf{}
	name := filepath.Base(rootDir)
	if c.IsSet("name") {
		name = c.String("name")
	}
	conf.CreateDefault(name)

	if c.Bool("interactive") {
		conf.Name = util.PromptString("Project name", conf.Name)
		conf.Description = util.PromptString("Project description", conf.Description)
		conf.Version = util.PromptString("Project version", conf.Version)
		conf.Main = util.PromptString("Main file", conf.Main)
		conf.Author = util.PromptString("Author", conf.Author)
		conf.License = util.PromptString("License", conf.License)
	}
	if c.IsSet("dialect") {
		conf.Dialect = c.Int("dialect")
	}
	if c.IsSet("main") {
		conf.Main = c.String("main")
		conf.SourceDir = filepath.Dir(conf.Main)
	}
	if c.IsSet("author") {
		conf.Author = c.String("author")
	}
	if c.IsSet("license") {
		conf.License = c.String("license")
	}

	if err := conf.Validate(); err != nil {
		return cli.Exit(color.RedString("Error: %s", err), 1)
	}

	mainPath := filepath.Join(rootDir, conf.Main)
	if _, err := os.Stat(mainPath); os.IsNotExist(err) {
		if err := os.MkdirAll(filepath.Dir(mainPath), 0755); err != nil {
			return cli.Exit(color.RedString("Error creating directory: %s", err), 1)
		}
		if err := os.WriteFile(mainPath, []byte(mainTemplate), 0644); err != nil {
			return cli.Exit(color.RedString("Error creating main file: %s", err), 1)
		}
		fmt.Fprintln(c.App.Writer, "Created file:", mainPath)
	}

	confName := project.FileNames[0]
	if c.Bool("toml") {
		confName = project.FileNames[2]
	}
	confPath := filepath.Join(rootDir, confName)
	saved, err := conf.Save(confPath, false)
	if err != nil {
		return cli.Exit(color.RedString("Error saving config: %s", err), 1)
	}
	if !saved {
		color.Yellow("Kept existing %s", confPath)
		return nil
	}
	fmt.Fprintln(c.App.Writer, "Created file:", confPath)

	fmt.Fprintln(c.App.Writer, "----------------------------------------")
	fmt.Fprintln(c.App.Writer, "Project initialized successfully!")
	fmt.Fprintln(c.App.Writer, "Run 'cd", rootDir, "&& picolua check' to check the project.")
	fmt.Fprintln(c.App.Writer, "----------------------------------------")

	return nil
}

func info(c *cli.Context) error {
	conf, path, err := loadConf(c)
	if err != nil {
		return err
	}
	verbosef(c, "Using config %s", path)

	w := c.App.Writer
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintln(w, "                  Project Details                 ")
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "Name        : %s\n", conf.Name)
	fmt.Fprintf(w, "Description : %s\n", conf.Description)
	fmt.Fprintf(w, "Version     : %s\n", conf.Version)
	fmt.Fprintf(w, "Dialect     : %d\n", conf.Dialect)
	fmt.Fprintf(w, "Main File   : %s\n", conf.Main)
	for _, inc := range conf.Include {
		fmt.Fprintf(w, "Include     : %s\n", inc)
	}
	fmt.Fprintf(w, "Author      : %s\n", conf.Author)
	fmt.Fprintf(w, "License     : %s\n", conf.License)
	fmt.Fprintln(w, "--------------------------------------------------")

	return nil
}
