package storage

import (
	"path/filepath"
	"strings"
)

// SplitExt splits p into root and extension at the last dot of its final
// path element, so that root+ext == p. The extension keeps its leading dot.
// Leading dots of the final element do not start an extension, so
// ".bashrc" has no extension while "a.tar.gz" has ".gz".
func SplitExt(p string) (root, ext string) {
	sep := strings.LastIndexByte(p, '/')
	if filepath.Separator != '/' {
		if i := strings.LastIndexByte(p, filepath.Separator); i > sep {
			sep = i
		}
	}

	dot := strings.LastIndexByte(p, '.')
	if dot <= sep {
		return p, ""
	}
	for i := sep + 1; i < dot; i++ {
		if p[i] != '.' {
			return p[:dot], p[dot:]
		}
	}
	return p, ""
}
