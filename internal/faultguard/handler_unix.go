//go:build unix

package faultguard

import "golang.org/x/sys/unix"

// Signal-based handler. The runtime delivers SIGSEGV and SIGBUS on the
// faulting goroutine as a panic once panic-on-fault is armed; the signal
// number itself is not carried by the panic, so the class is recovered from
// the state of the faulting address.

// classify maps a fault address to a signal class.
func classify(addr uintptr) FaultClass {
	if addr < uintptr(unix.Getpagesize()) {
		return FaultAccessViolation
	}
	return probeAddr(addr)
}
