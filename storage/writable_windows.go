//go:build windows

package storage

import (
	"fmt"
	"os"
)

// Windows has no access(2); probe by creating and removing a temporary file.

// checkWritable reports whether the process may create entries in dir.
func checkWritable(dir string) error {
	f, err := os.CreateTemp(dir, tempPattern)
	if err != nil {
		return fmt.Errorf("probe %s: %w", dir, err)
	}
	name := f.Name()
	_ = f.Close()
	_ = os.Remove(name)
	return nil
}
