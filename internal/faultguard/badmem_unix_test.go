//go:build unix

package faultguard

import (
	"testing"

	"golang.org/x/sys/unix"
)

// unreadablePage maps one anonymous page with no access rights. Reading it
// faults with SIGSEGV (SIGBUS on some BSDs).
func unreadablePage(t testing.TB) []byte {
	t.Helper()
	b, err := unix.Mmap(-1, 0, unix.Getpagesize(), unix.PROT_NONE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		t.Fatalf("mmap: %v", err)
	}
	t.Cleanup(func() { _ = unix.Munmap(b) })
	return b
}
