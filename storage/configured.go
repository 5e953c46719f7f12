package storage

import (
	"io"

	"github.com/bitfsorg/serialdb-go/config"
	"github.com/bitfsorg/serialdb-go/logging"
)

// OpenConfigured validates cfg and opens the store it describes, logging to logOut
// (stderr when nil) at the configured level and format.
func OpenConfigured(cfg config.Config, logOut io.Writer) (*FileStore, error) {
	if err := config.ValidateConfig(cfg); err != nil {
		return nil, err
	}

	return NewFileStore(cfg.StoreDir, &Options{
		Logger:          logging.New(cfg.LogLevel, cfg.LogFormat, logOut),
		CreateRoot:      cfg.CreateStoreDir,
		MaxFileSize:     cfg.MaxFileSizeBytes(),
		DetectExtension: cfg.DetectExtension,
	})
}
