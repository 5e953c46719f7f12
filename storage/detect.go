package storage

import (
	"bufio"
	"errors"
	"io"

	"github.com/h2non/filetype"
)

// sniffLen is the number of leading bytes filetype needs to recognise a type.
const sniffLen = 262

// sniffExt returns the extension (with leading dot) matching the magic bytes
// buffered at the head of br, or "" when the type is unknown. The bytes stay
// in br for the subsequent hash pass.
func sniffExt(br *bufio.Reader) (string, error) {
	head, err := br.Peek(sniffLen)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, bufio.ErrBufferFull) {
		return "", err
	}
	if len(head) == 0 {
		return "", nil
	}

	kind, err := filetype.Match(head)
	if err != nil || kind == filetype.Unknown || kind.Extension == "" {
		return "", nil
	}
	return "." + kind.Extension, nil
}
