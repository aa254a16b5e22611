package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

const defaultConfigName = "converter.toml"

// Config holds settings from converter.toml and the command line.
type Config struct {
	Paths    Paths    `toml:"paths"`
	Progress Progress `toml:"progress"`
	Logging  Logging  `toml:"logging"`
}

type Paths struct {
	Input   string `toml:"input"`
	Output  string `toml:"output"`
	FFmpeg  string `toml:"ffmpeg"`
	FFprobe string `toml:"ffprobe"`
}

type Progress struct {
	Width int `toml:"width"`
}

type Logging struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// DefaultConfig returns the settings used when no config file exists.
func DefaultConfig() Config {
	return Config{
		Paths: Paths{
			Input:   "input",
			Output:  "output",
			FFmpeg:  executableName("ffmpeg"),
			FFprobe: executableName("ffprobe"),
		},
		Progress: Progress{Width: defaultBarWidth},
		Logging:  Logging{Level: "info"},
	}
}

// LoadConfig reads path over the defaults. An empty path means
// converter.toml in baseDir, which may be absent; an explicit path must exist.
func LoadConfig(path, baseDir string) (Config, error) {
	cfg := DefaultConfig()

	explicit := path != ""
	if !explicit {
		path = filepath.Join(baseDir, defaultConfigName)
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && !explicit:
	default:
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	cfg.normalize(baseDir)
	return cfg, nil
}

// normalize fills blanks with defaults and makes relative paths absolute
// against baseDir.
func (c *Config) normalize(baseDir string) {
	def := DefaultConfig()
	fill := func(v *string, d string) {
		*v = strings.TrimSpace(*v)
		if *v == "" {
			*v = d
		}
		if !filepath.IsAbs(*v) {
			*v = filepath.Join(baseDir, *v)
		}
	}
	fill(&c.Paths.Input, def.Paths.Input)
	fill(&c.Paths.Output, def.Paths.Output)
	fill(&c.Paths.FFmpeg, def.Paths.FFmpeg)
	fill(&c.Paths.FFprobe, def.Paths.FFprobe)

	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = def.Logging.Level
	}
	if c.Logging.File = strings.TrimSpace(c.Logging.File); c.Logging.File != "" && !filepath.IsAbs(c.Logging.File) {
		c.Logging.File = filepath.Join(baseDir, c.Logging.File)
	}
	if c.Progress.Width == 0 {
		c.Progress.Width = def.Progress.Width
	}
}

// Validate checks the values a run depends on.
func (c *Config) Validate() error {
	if c.Progress.Width < 10 || c.Progress.Width > 200 {
		return fmt.Errorf("progress.width must be between 10 and 200, got %d", c.Progress.Width)
	}
	if _, err := parseLevel(c.Logging.Level); err != nil {
		return err
	}
	if filepath.Clean(c.Paths.Input) == filepath.Clean(c.Paths.Output) {
		return fmt.Errorf("input and output folders must differ: %s", c.Paths.Input)
	}
	return nil
}
