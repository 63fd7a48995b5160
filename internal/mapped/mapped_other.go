//go:build !unix && !windows

package mapped

import (
	"io"
	"os"
)

// No mapping support: fall back to a heap copy.
func mapFile(f *os.File, size int) (*File, error) {
	b := make([]byte, size)
	if _, err := io.ReadFull(f, b); err != nil {
		return nil, err
	}
	return &File{data: b}, nil
}
