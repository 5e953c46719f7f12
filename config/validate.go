// Copyright (c) 2024 The BitFS developers
// Use of this source code is governed by the Open BSV License v5
// that can be found in the LICENSE file.

package config

import (
	"fmt"
	"strings"

	"github.com/docker/go-units"
)

// validLogLevels lists the accepted log level strings.
var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// validLogFormats lists the accepted log format strings.
var validLogFormats = map[string]bool{
	"text": true,
	"json": true,
}

// ValidateConfig checks that all configuration values are within acceptable
// ranges and returns the first error encountered, or nil if valid.
func ValidateConfig(cfg Config) error {
	if strings.TrimSpace(cfg.StoreDir) == "" {
		return ErrEmptyStoreDir
	}

	if err := validateSize(cfg.MaxFileSize); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidMaxFileSize, err)
	}

	if !validLogLevels[strings.ToLower(cfg.LogLevel)] {
		return ErrInvalidLogLevel
	}

	if !validLogFormats[strings.ToLower(cfg.LogFormat)] {
		return ErrInvalidLogFormat
	}

	return nil
}

// validateSize checks that s is empty or a positive size such as "512MB".
func validateSize(s string) error {
	if s == "" {
		return nil
	}
	n, err := units.FromHumanSize(s)
	if err != nil {
		return err
	}
	if n <= 0 {
		return fmt.Errorf("size %q must be positive", s)
	}
	return nil
}
