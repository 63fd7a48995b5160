//go:build windows

package faultguard

import (
	"testing"
	"unsafe"

	"golang.org/x/sys/windows"
)

// unreadablePage reserves one page without committing it. Reading it raises
// EXCEPTION_ACCESS_VIOLATION.
func unreadablePage(t testing.TB) []byte {
	t.Helper()
	const size = 4096
	addr, err := windows.VirtualAlloc(0, size, windows.MEM_RESERVE, windows.PAGE_NOACCESS)
	if err != nil {
		t.Fatalf("VirtualAlloc: %v", err)
	}
	t.Cleanup(func() { _ = windows.VirtualFree(addr, 0, windows.MEM_RELEASE) })
	return unsafe.Slice((*byte)(unsafe.Pointer(addr)), size)
}
