// Copyright (c) 2024 The BitFS developers
// Use of this source code is governed by the Open BSV License v5
// that can be found in the LICENSE file.

package config

import "errors"

var (
	// ErrEmptyStoreDir indicates the store directory path is empty.
	ErrEmptyStoreDir = errors.New("config: store directory must not be empty")

	// ErrInvalidMaxFileSize indicates max_file_size is not a positive human-readable size.
	ErrInvalidMaxFileSize = errors.New("config: invalid max file size (e.g. \"512MB\", or empty for no limit)")

	// ErrInvalidLogLevel indicates the log level is not recognized.
	ErrInvalidLogLevel = errors.New("config: invalid log level (must be \"debug\", \"info\", \"warn\", or \"error\")")

	// ErrInvalidLogFormat indicates the log format is not recognized.
	ErrInvalidLogFormat = errors.New("config: invalid log format (must be \"text\" or \"json\")")

	// ErrConfigNotFound indicates the configuration file does not exist.
	ErrConfigNotFound = errors.New("config: configuration file not found")

	// ErrInvalidConfigFile indicates the configuration file is not valid TOML.
	ErrInvalidConfigFile = errors.New("config: invalid configuration file")
)
