package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	lualex "github.com/vyPal/PicoLua/lib/lexer"
	"github.com/vyPal/PicoLua/util"
)

// FileNames are the config names Find looks for, in order.
var FileNames = []string{"p8conf.yaml", "p8conf.yml", "p8conf.toml"}

type Format int

const (
	FormatYAML Format = iota
	FormatTOML
)

func (f Format) String() string {
	switch f {
	case FormatYAML:
		return "yaml"
	case FormatTOML:
		return "toml"
	default:
		return fmt.Sprintf("format(%d)", int(f))
	}
}

func detectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return 0, fmt.Errorf("%s: unknown config format", path)
	}
}

type Conf struct {
	Name        string   `yaml:"name" toml:"name"`
	Description string   `yaml:"description" toml:"description"`
	Version     string   `yaml:"version" toml:"version"`
	Dialect     int      `yaml:"dialect" toml:"dialect"`
	Main        string   `yaml:"main" toml:"main"`
	SourceDir   string   `yaml:"source" toml:"source"`
	Include     []string `yaml:"include,omitempty" toml:"include,omitempty"`
	Author      string   `yaml:"author" toml:"author"`
	License     string   `yaml:"license" toml:"license"`
}

func (c *Conf) CreateDefault(name string) {
	if name == "." || name == "" {
		name = "NewProject"
	}
	c.Name = name
	c.Description = "A new PICO-8 cartridge"
	c.Version = "1.0.0"
	c.Dialect = int(lualex.DefaultVersion)
	c.Main = "src/main.lua"
	c.SourceDir = "src"
	c.Author = "Anonymous"
	c.License = "MIT"
}

// LuaVersion is the dialect the project's sources are parsed with. A zero
// dialect in the file is plain Lua.
func (c Conf) LuaVersion() lualex.Version {
	return lualex.Version(c.Dialect)
}

// Validate checks the fields a parser cannot default: the version, when
// present, must be a semver and the dialect must not be negative.
func (c Conf) Validate() error {
	if c.Version != "" {
		if _, err := util.ParseSemver(c.Version); err != nil {
			return err
		}
	}
	if c.Dialect < 0 {
		return fmt.Errorf("invalid dialect %d", c.Dialect)
	}
	return nil
}

// Sources lists the main file followed by the includes, relative to dir.
func (c Conf) Sources(dir string) []string {
	var files []string
	if c.Main != "" {
		files = append(files, filepath.Join(dir, c.Main))
	}
	for _, inc := range c.Include {
		files = append(files, filepath.Join(dir, inc))
	}
	return files
}

// Save writes the config in the format named by the path's extension. An
// existing file is only replaced when overwrite is set or the user agrees;
// a declined prompt leaves it alone and returns false.
func (c *Conf) Save(path string, overwrite bool) (bool, error) {
	format, err := detectFormat(path)
	if err != nil {
		return false, err
	}

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		if !overwrite && !util.PromptYN(path+" already exists. Overwrite?", false) {
			return false, nil
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return false, fmt.Errorf("%s: %w", path, err)
	}
	defer file.Close()

	switch format {
	case FormatTOML:
		err = toml.NewEncoder(file).Encode(c)
	default:
		enc := yaml.NewEncoder(file)
		enc.SetIndent(2)
		err = enc.Encode(c)
		if err == nil {
			err = enc.Close()
		}
	}
	if err != nil {
		return false, fmt.Errorf("%s: %w", path, err)
	}

	return true, nil
}

func Load(path string) (Conf, error) {
	var conf Conf

	format, err := detectFormat(path)
	if err != nil {
		return Conf{}, err
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return Conf{}, fmt.Errorf("%s: %w", path, err)
	}

	switch format {
	case FormatTOML:
		err = toml.Unmarshal(content, &conf)
	default:
		err = yaml.Unmarshal(content, &conf)
	}
	if err != nil {
		return Conf{}, fmt.Errorf("%s: %s parse error: %w", path, format, err)
	}
	if err := conf.Validate(); err != nil {
		return Conf{}, fmt.Errorf("%s: %w", path, err)
	}

	return conf, nil
}

// ErrNotFound is returned by Find when dir holds no config file.
var ErrNotFound = errors.New("no project config found")

// Find loads the first config file present in dir and returns its path.
func Find(dir string) (Conf, string, error) {
	for _, name := range FileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		conf, err := Load(path)
		return conf, path, err
	}
	return Conf{}, "", fmt.Errorf("%s: %w", dir, ErrNotFound)
}
