// Package storage keeps whole files in a flat directory named by their MD5 content hash.
package storage

// HashHexSize is the length of the hash portion of a key (hex-encoded MD5 = 32 chars).
const HashHexSize = 32

// Store provides content-addressed storage for whole files.
// Keys are hex(MD5(content)) followed by an extension, e.g. "5d41402abc4b2a76b9719d911017c592.txt".
// The key is the entry's filename inside the store root; there is no separate index.
type Store interface {
	// Hash returns the lowercase hex MD5 of the file at path.
	Hash(path string) (string, error)

	// Key returns the key for src, deriving the extension from src's filename.
	Key(src string) (string, error)

	// KeyWithExt returns the key for src using ext verbatim as the extension.
	KeyWithExt(src, ext string) (string, error)

	// Path returns the entry path for key. With verify set the entry's hash
	// is recomputed and compared with the key.
	Path(key string, verify bool) (string, error)

	// Resolve is Path with verification.
	Resolve(key string) (string, error)

	// Save copies src into the store and returns its key.
	Save(src string) (string, error)

	// SaveWithExt copies src into the store under a key with extension ext.
	SaveWithExt(src, ext string) (string, error)
}

var _ Store = (*FileStore)(nil)
