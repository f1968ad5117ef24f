// Package config loads the optional codedoc.yaml project file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/dhamidi/codedoc/markdown"
	"gopkg.in/yaml.v3"
)

// DefaultFile is the project file looked up in the working directory.
const DefaultFile = "codedoc.yaml"

type Config struct {
	Title     string   `yaml:"title"`
	Author    string   `yaml:"author"`
	Copyright string   `yaml:"copyright"`
	Version   string   `yaml:"version"`
	Body      string   `yaml:"body"`
	XML       string   `yaml:"xml"`
	Sources   []string `yaml:"sources"`
	Verbosity int      `yaml:"verbosity"`
}

// Load reads path, then applies CODEDOC_TITLE, CODEDOC_AUTHOR and
// CODEDOC_VERBOSITY from the environment. A missing file is not an error.
func Load(path string) (Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return cfg, fmt.Errorf("read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.Title = envOr("CODEDOC_TITLE", cfg.Title)
	cfg.Author = envOr("CODEDOC_AUTHOR", cfg.Author)
	cfg.Verbosity = envInt("CODEDOC_VERBOSITY", cfg.Verbosity)
	return cfg, nil
}

// ApplyDefaults fills empty document fields from the body's front matter
// and then from fixed defaults.
func (c *Config) ApplyDefaults(body *markdown.Document) {
	for _, f := range []struct {
		field    *string
		key      string
		fallback string
	}{
		{&c.Title, "title", "Documentation"},
		{&c.Author, "author", "Unknown"},
		{&c.Copyright, "copyright", "Unknown"},
		{&c.Version, "version", "0.0"},
	} {
		if *f.field == "" {
			*f.field = body.Meta(f.key)
		}
		if *f.field == "" {
			*f.field = f.fallback
		}
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
