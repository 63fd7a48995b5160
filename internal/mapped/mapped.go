// Package mapped loads files for scanning. Where the platform allows it the
// bytes come from a read-only shared mapping, so a scan reads the page cache
// in place; the mapping reflects later changes to the file, including
// truncation, which is why mapped bytes are scanned under a fault guard.
package mapped

import (
	"fmt"
	"os"
)

// File is a loaded file. Bytes stay valid until Close.
type File struct {
	data   []byte
	mapped bool
	unmap  func() error
}

// Open maps path read-only. Empty files are returned unmapped with no bytes.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if !st.Mode().IsRegular() {
		return nil, fmt.Errorf("mapped: %s is not a regular file", path)
	}
	size := st.Size()
	if size == 0 {
		return &File{}, nil
	}
	if int64(int(size)) != size {
		return nil, fmt.Errorf("mapped: %s is too large to map (%d bytes)", path, size)
	}
	return mapFile(f, int(size))
}

// ReadFile loads path onto the heap. The result is never mapped.
func ReadFile(path string) (*File, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return &File{data: b}, nil
}

// Bytes returns the file contents.
func (f *File) Bytes() []byte { return f.data }

// Len returns the number of bytes loaded.
func (f *File) Len() int { return len(f.data) }

// Mapped reports whether Bytes is backed by a file mapping.
func (f *File) Mapped() bool { return f.mapped }

// Close releases the mapping. It is safe to call more than once.
func (f *File) Close() error {
	unmap := f.unmap
	f.data, f.unmap, f.mapped = nil, nil, false
	if unmap == nil {
		return nil
	}
	return unmap()
}
