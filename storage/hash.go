package storage

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"io"
	"os"
)

// HashFile returns the lowercase hex MD5 of the whole file at path.
// A missing path or a directory yields ErrNotFound.
func HashFile(path string) (string, error) {
	f, err := openSource(path)
	if err != nil {
		return "", err
	}
	defer func() { _ = f.Close() }()

	sum, _, err := digest(f, nil, 0)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrIOFailure, path, err)
	}
	return sum, nil
}

// openSource opens path for reading. Anything that is not an existing
// regular-ish file (missing, directory) is reported as ErrNotFound.
func openSource(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("%w: %w", ErrIOFailure, err)
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("%w: %w", ErrIOFailure, err)
	}
	if info.IsDir() {
		_ = f.Close()
		return nil, fmt.Errorf("%w: %s is a directory", ErrNotFound, path)
	}

	return f, nil
}

// digest reads r to EOF, mirroring the bytes to w when w is non-nil, and
// returns the hex MD5 and byte count. When limit is positive, more than limit
// bytes yields ErrFileTooLarge.
func digest(r io.Reader, w io.Writer, limit int64) (string, int64, error) {
	h := md5.New()
	var dst io.Writer = h
	if w != nil {
		dst = io.MultiWriter(h, w)
	}

	src := r
	if limit > 0 {
		src = io.LimitReader(r, limit+1)
	}

	n, err := io.Copy(dst, src)
	if err != nil {
		return "", n, err
	}
	if limit > 0 && n > limit {
		return "", n, fmt.Errorf("%w: more than %d bytes", ErrFileTooLarge, limit)
	}

	return hex.EncodeToString(h.Sum(nil)), n, nil
}
