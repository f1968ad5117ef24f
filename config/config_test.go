package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dhamidi/codedoc/markdown"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), DefaultFile)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `title: Mini-XML
author: Michael R Sweet
section: Programming
xml: mxml.xml
sources:
  - mxml-node.c
  - mxml.h
verbosity: 1
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Mini-XML", cfg.Title)
	assert.Equal(t, "mxml.xml", cfg.XML)
	assert.Equal(t, []string{"mxml-node.c", "mxml.h"}, cfg.Sources)
	assert.Equal(t, 1, cfg.Verbosity)
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "none.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Config{}, cfg)
}

func TestLoadInvalid(t *testing.T) {
	_, err := Load(writeConfig(t, "sources: [unterminated\n"))
	assert.Error(t, err)
}

func TestEnvironmentOverrides(t *testing.T) {
	path := writeConfig(t, "title: From File\nauthor: File Author\nverbosity: 1\n")
	t.Setenv("CODEDOC_TITLE", "From Env")
	t.Setenv("CODEDOC_VERBOSITY", "3")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "From Env", cfg.Title)
	assert.Equal(t, "File Author", cfg.Author)
	assert.Equal(t, 3, cfg.Verbosity)
}

func TestApplyDefaults(t *testing.T) {
	body, err := markdown.Load([]byte("---\nauthor: Body Author\nversion: 2.1\n---\n# Intro\n"))
	require.NoError(t, err)

	cfg := Config{Title: "Configured"}
	cfg.ApplyDefaults(body)
	assert.Equal(t, "Configured", cfg.Title)
	assert.Equal(t, "Body Author", cfg.Author)
	assert.Equal(t, "Unknown", cfg.Copyright)
	assert.Equal(t, "2.1", cfg.Version)

	var bare Config
	bare.ApplyDefaults(nil)
	assert.Equal(t, Config{Title: "Documentation", Author: "Unknown", Copyright: "Unknown", Version: "0.0"}, bare)
}
