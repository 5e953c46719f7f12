package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitExt(t *testing.T) {
	tests := []struct {
		in       string
		wantRoot string
		wantExt  string
	}{
		{"foo.png", "foo", ".png"},
		{"foo", "foo", ""},
		{"", "", ""},
		{"a.tar.gz", "a.tar", ".gz"},
		{".bashrc", ".bashrc", ""},
		{"..x", "..x", ""},
		{"a..b", "a.", ".b"},
		{"odd.", "odd", "."},
		{"/tmp/dir.d/file", "/tmp/dir.d/file", ""},
		{"/tmp/dir.d/file.urdf", "/tmp/dir.d/file", ".urdf"},
		{"/tmp/dir/.hidden", "/tmp/dir/.hidden", ""},
		{"/tmp/dir/.hidden.txt", "/tmp/dir/.hidden", ".txt"},
		{helloMD5 + ".txt", helloMD5, ".txt"},
		{helloMD5, helloMD5, ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			root, ext := SplitExt(tt.in)
			assert.Equal(t, tt.wantRoot, root)
			assert.Equal(t, tt.wantExt, ext)
			assert.Equal(t, tt.in, root+ext)
		})
	}
}
