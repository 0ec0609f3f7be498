// Copyright 2026 The Admisi Authors
// SPDX-License-Identifier: MIT

package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// EnvConfigDir points admisi at a per-user config directory directly,
// ahead of the XDG lookup. Shared lab machines set it per account.
const EnvConfigDir = "ADMISI_CONFIG_DIR"

// GlobalConfigDir is where the per-user config.yaml lives. Lookup order:
// $ADMISI_CONFIG_DIR, $XDG_CONFIG_HOME/admisi, ~/.config/admisi.
func GlobalConfigDir() string {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return dir
	}
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, _ := os.UserHomeDir()
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "admisi")
}

func GlobalConfigPath() string {
	return filepath.Join(GlobalConfigDir(), "config.yaml")
}

// LoadGlobal reads the per-user config. No file yields an empty Config.
func LoadGlobal() (*Config, error) {
	cfg, err := LoadFile(GlobalConfigPath())
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return &Config{}, nil
	case err != nil:
		return nil, err
	}
	return cfg, nil
}
