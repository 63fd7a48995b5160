//go:build windows

package mapped

import (
	"fmt"
	"os"
	"unsafe"

	"golang.org/x/sys/windows"
)

func mapFile(f *os.File, size int) (*File, error) {
	h, err := windows.CreateFileMapping(windows.Handle(f.Fd()), nil, windows.PAGE_READONLY,
		uint32(uint64(size)>>32), uint32(size), nil)
	if err != nil {
		return nil, fmt.Errorf("mapped: CreateFileMapping %s: %w", f.Name(), err)
	}
	addr, err := windows.MapViewOfFile(h, windows.FILE_MAP_READ, 0, 0, uintptr(size))
	if err != nil {
		_ = windows.CloseHandle(h)
		return nil, fmt.Errorf("mapped: MapViewOfFile %s: %w", f.Name(), err)
	}
	return &File{
		data:   unsafe.Slice((*byte)(unsafe.Pointer(addr)), size),
		mapped: true,
		unmap: func() error {
			err := windows.UnmapViewOfFile(addr)
			if cerr := windows.CloseHandle(h); err == nil {
				err = cerr
			}
			return err
		},
	}, nil
}
