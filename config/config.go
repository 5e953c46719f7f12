// Copyright (c) 2024 The BitFS developers
// Use of this source code is governed by the Open BSV License v5
// that can be found in the LICENSE file.

// Package config loads and validates content store configuration.
//
// The file format is TOML:
//
//	store_dir = "/var/lib/serialdb"
//	create_store_dir = true
//	max_file_size = "512MB"
//	detect_extension = false
//	log_level = "info"
//	log_format = "text"
//
// Unset keys keep their defaults; unknown keys are ignored.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/docker/go-units"
	"github.com/pelletier/go-toml/v2"
)

// Environment variables that override file values.
const (
	EnvStoreDir    = "SERIALDB_STORE_DIR"
	EnvMaxFileSize = "SERIALDB_MAX_FILE_SIZE"
	EnvLogLevel    = "SERIALDB_LOG_LEVEL"
	EnvLogFormat   = "SERIALDB_LOG_FORMAT"
)

// Config describes one content store and its logging.
type Config struct {
	StoreDir        string `toml:"store_dir"`
	CreateStoreDir  bool   `toml:"create_store_dir"`
	MaxFileSize     string `toml:"max_file_size"`
	DetectExtension bool   `toml:"detect_extension"`
	LogLevel        string `toml:"log_level"`
	LogFormat       string `toml:"log_format"`
}

// configHeader is written at the top of every saved configuration file.
const configHeader = "# serialdb configuration\n\n"

// DefaultDataDir returns ~/.serialdb, or a relative .serialdb when the home
// directory cannot be determined.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".serialdb"
	}
	return filepath.Join(home, ".serialdb")
}

// ConfigPath returns the configuration file location inside dataDir.
func ConfigPath(dataDir string) string {
	return filepath.Join(dataDir, "config.toml")
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() Config {
	return Config{
		StoreDir:  filepath.Join(DefaultDataDir(), "store"),
		LogLevel:  "info",
		LogFormat: "text",
	}
}

// MaxFileSizeBytes returns the parsed max_file_size, or 0 (unlimited) when
// it is empty or invalid. Call ValidateConfig first to reject bad values.
func (c Config) MaxFileSizeBytes() int64 {
	if c.MaxFileSize == "" {
		return 0
	}
	n, err := units.FromHumanSize(c.MaxFileSize)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// LoadConfig reads the TOML file at path over DefaultConfig and then applies
// environment overrides. The result is not validated.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("%w: %s: %w", ErrInvalidConfigFile, path, err)
	}

	ApplyEnv(&cfg)
	return cfg, nil
}

// ApplyEnv overrides cfg fields from the SERIALDB_* environment variables that are set.
func ApplyEnv(cfg *Config) {
	if v := os.Getenv(EnvStoreDir); v != "" {
		cfg.StoreDir = v
	}
	if v := os.Getenv(EnvMaxFileSize); v != "" {
		cfg.MaxFileSize = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		cfg.LogFormat = v
	}
}

// SaveConfig writes cfg to path as TOML, creating parent directories.
func SaveConfig(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("config: create directory: %w", err)
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("config: encode: %w", err)
	}

	data = append([]byte(configHeader), data...)
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}
