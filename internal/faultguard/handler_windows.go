//go:build windows

package faultguard

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

// Native exception handler. The runtime's exception handler turns
// EXCEPTION_ACCESS_VIOLATION and EXCEPTION_IN_PAGE_ERROR into a panic on the
// faulting goroutine once panic-on-fault is armed; every other exception code
// keeps searching the platform handlers.

const (
	nullPageSize = 0x1000
	memMapped    = 0x40000
)

// classify maps a fault address to an exception class using the state of
// the region that contains it.
func classify(addr uintptr) FaultClass {
	if addr < nullPageSize {
		return FaultAccessViolation
	}
	var mbi windows.MemoryBasicInformation
	if err := windows.VirtualQuery(addr, &mbi, unsafe.Sizeof(mbi)); err != nil {
		return FaultUnknown
	}
	if mbi.State == windows.MEM_COMMIT && mbi.Type == memMapped {
		return FaultInPageError
	}
	return FaultAccessViolation
}
