package storage

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/docker/go-units"

	"github.com/bitfsorg/serialdb-go/logging"
)

// tempPattern names in-flight copies. Keys start with a hex digit, so a
// temporary file can never be mistaken for an entry.
const tempPattern = ".tmp-*"

// Options tunes a FileStore. The zero value is a store over an existing
// directory with no size limit, no extension sniffing and no logging.
type Options struct {
	// Logger receives debug events for saves and resolves. Nil discards.
	Logger *slog.Logger

	// CreateRoot creates the root directory (and parents) if missing.
	CreateRoot bool

	// MaxFileSize rejects files larger than this many bytes. Zero or negative means unlimited.
	MaxFileSize int64

	// DetectExtension sniffs an extension from the file's magic bytes when
	// the source filename has none. Explicit extensions are never replaced.
	DetectExtension bool
}

// FileStore implements Store on a single flat directory.
// Entries are stored at: {root}/{hex(md5(content))}{ext}
type FileStore struct {
	root      string
	log       *slog.Logger
	maxSize   int64
	detectExt bool
}

// NewFileStore creates a content store rooted at root.
// The root must be an existing, writable directory unless opts.CreateRoot is set,
// in which case it is created first.
func NewFileStore(root string, opts *Options) (*FileStore, error) {
	if root == "" {
		return nil, ErrInvalidBaseDir
	}
	if opts == nil {
		opts = &Options{}
	}

	if opts.CreateRoot {
		if err := os.MkdirAll(root, 0700); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrIOFailure, err)
		}
	}

	info, err := os.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s does not exist", ErrInvalidBaseDir, root)
		}
		return nil, fmt.Errorf("%w: %w", ErrIOFailure, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrInvalidBaseDir, root)
	}
	if err := checkWritable(root); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRootNotWritable, err)
	}

	log := opts.Logger
	if log == nil {
		log = logging.Discard()
	}

	return &FileStore{
		root:      root,
		log:       log.With("store", root),
		maxSize:   opts.MaxFileSize,
		detectExt: opts.DetectExtension,
	}, nil
}

// Root returns the store's root directory.
func (fs *FileStore) Root() string {
	return fs.root
}

// Hash returns the lowercase hex MD5 of the file at path, honouring the
// store's size limit.
func (fs *FileStore) Hash(path string) (string, error) {
	f, err := openSource(path)
	if err != nil {
		return "", err
	}
	defer func() { _ = f.Close() }()

	sum, _, err := fs.digest(path, f, nil)
	return sum, err
}

// Key returns hash+extension for src, where the extension is src's own
// (e.g. ".png"), or "" if it has none.
func (fs *FileStore) Key(src string) (string, error) {
	return fs.key(src, "", false)
}

// KeyWithExt returns hash+ext for src. ext must carry its own leading dot if one is wanted.
func (fs *FileStore) KeyWithExt(src, ext string) (string, error) {
	return fs.key(src, ext, true)
}

func (fs *FileStore) key(src, ext string, explicit bool) (string, error) {
	f, err := openSource(src)
	if err != nil {
		return "", err
	}
	defer func() { _ = f.Close() }()

	br := bufio.NewReader(f)
	if !explicit {
		if ext, err = fs.deriveExt(src, br); err != nil {
			return "", err
		}
	}

	sum, _, err := fs.digest(src, br, nil)
	if err != nil {
		return "", err
	}
	return sum + ext, nil
}

// Path returns {root}/{key}. Without verify the path is returned as is, even
// if nothing exists there. With verify the entry is rehashed and compared
// with the part of key before its extension.
func (fs *FileStore) Path(key string, verify bool) (string, error) {
	if err := validateKey(key); err != nil {
		return "", err
	}

	path := filepath.Join(fs.root, key)
	if !verify {
		return path, nil
	}

	expected, _ := SplitExt(key)
	found, err := fs.Hash(path)
	if err != nil {
		return "", err
	}
	if found != expected {
		fs.log.Warn("entry failed verification", "key", key, "found", found)
		return "", &IntegrityError{Path: path, Found: found, Expected: expected}
	}

	fs.log.Debug("resolved entry", "key", key)
	return path, nil
}

// Resolve returns the verified path for key.
func (fs *FileStore) Resolve(key string) (string, error) {
	return fs.Path(key, true)
}

// Save copies src into the store under its key and returns the key.
// An existing entry with the same key is replaced.
func (fs *FileStore) Save(src string) (string, error) {
	return fs.save(src, "", false)
}

// SaveWithExt is Save with an explicit extension (see KeyWithExt).
func (fs *FileStore) SaveWithExt(src, ext string) (string, error) {
	return fs.save(src, ext, true)
}

// save hashes and copies src in one pass into a temporary file inside the
// root, then renames it onto the entry path. A failed save never leaves a
// partial entry behind.
func (fs *FileStore) save(src, ext string, explicit bool) (string, error) {
	f, err := openSource(src)
	if err != nil {
		return "", err
	}
	defer func() { _ = f.Close() }()

	br := bufio.NewReader(f)
	if !explicit {
		if ext, err = fs.deriveExt(src, br); err != nil {
			return "", err
		}
	}

	tmp, err := os.CreateTemp(fs.root, tempPattern)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrIOFailure, err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	sum, n, err := fs.digest(src, br, tmp)
	if err != nil {
		return "", err
	}
	if err := tmp.Sync(); err != nil {
		return "", fmt.Errorf("%w: %w", ErrIOFailure, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("%w: %w", ErrIOFailure, err)
	}

	key := sum + ext
	dst, err := fs.Path(key, false)
	if err != nil {
		return "", err
	}
	if err := os.Rename(tmp.Name(), dst); err != nil {
		return "", fmt.Errorf("%w: %w", ErrIOFailure, err)
	}
	committed = true

	fs.log.Debug("saved entry", "key", key, "source", src, "size", units.HumanSize(float64(n)))
	return key, nil
}

// deriveExt returns src's own extension, falling back to a sniffed one when
// detection is enabled.
func (fs *FileStore) deriveExt(src string, br *bufio.Reader) (string, error) {
	_, ext := SplitExt(src)
	if ext != "" || !fs.detectExt {
		return ext, nil
	}

	ext, err := sniffExt(br)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrIOFailure, src, err)
	}
	return ext, nil
}

// digest hashes r (copying to w when non-nil) under the store's size limit.
func (fs *FileStore) digest(path string, r io.Reader, w io.Writer) (string, int64, error) {
	sum, n, err := digest(r, w, fs.maxSize)
	if err == nil {
		return sum, n, nil
	}
	if errors.Is(err, ErrFileTooLarge) {
		return "", n, fmt.Errorf("%w (%s, limit %s)", err, path, units.HumanSize(float64(fs.maxSize)))
	}
	return "", n, fmt.Errorf("%w: %s: %w", ErrIOFailure, path, err)
}

// validateKey rejects keys that cannot name a file directly inside the root.
func validateKey(key string) error {
	if key == "" {
		return fmt.Errorf("%w: empty key", ErrInvalidKey)
	}
	if key == "." || key == ".." || strings.ContainsRune(key, '/') || strings.ContainsRune(key, filepath.Separator) {
		return fmt.Errorf("%w: %q is not a plain file name", ErrInvalidKey, key)
	}
	return nil
}
