package storage

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates the source or candidate file does not exist or is not a regular file.
	ErrNotFound = errors.New("storage: file not found")

	// ErrInvalidKey indicates a key that cannot name an entry in the store root.
	ErrInvalidKey = errors.New("storage: invalid key")

	// ErrIntegrity indicates a stored file whose hash differs from the hash in its key.
	ErrIntegrity = errors.New("storage: hash mismatch")

	// ErrIOFailure indicates a file read/write error.
	ErrIOFailure = errors.New("storage: I/O failure")

	// ErrInvalidBaseDir indicates the store root is empty, missing or not a directory.
	ErrInvalidBaseDir = errors.New("storage: invalid base directory")

	// ErrRootNotWritable indicates the process cannot create files in the store root.
	ErrRootNotWritable = errors.New("storage: base directory is not writable")

	// ErrFileTooLarge indicates a file exceeds the store's configured maximum size.
	ErrFileTooLarge = errors.New("storage: file exceeds maximum size")
)

// IntegrityError reports a resolved entry whose content no longer matches its key.
// It matches ErrIntegrity with errors.Is.
type IntegrityError struct {
	Path     string // resolved entry path
	Found    string // hash of the bytes currently at Path
	Expected string // hash portion of the key
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("storage: hash mismatch: %q has hash %s; expected %s", e.Path, e.Found, e.Expected)
}

// Unwrap returns ErrIntegrity.
func (e *IntegrityError) Unwrap() error {
	return ErrIntegrity
}
