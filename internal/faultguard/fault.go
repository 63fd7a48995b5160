package faultguard

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

// ErrFault matches every *Fault with errors.Is.
var ErrFault = errors.New("memory access fault")

// FaultClass is the kind of hardware exception that was trapped.
type FaultClass uint8

const (
	FaultUnknown FaultClass = iota
	// FaultAccessViolation: the address is not mapped or the mapping does
	// not allow reads (SIGSEGV, EXCEPTION_ACCESS_VIOLATION).
	FaultAccessViolation
	// FaultBusError: the page is mapped but its backing object cannot
	// supply it, typically a file truncated under a live mapping (SIGBUS).
	FaultBusError
	// FaultInPageError: a mapped view whose backing store failed to page
	// in (EXCEPTION_IN_PAGE_ERROR).
	FaultInPageError
)

func (c FaultClass) String() string {
	switch c {
	case FaultAccessViolation:
		return "access violation"
	case FaultBusError:
		return "bus error"
	case FaultInPageError:
		return "in-page error"
	default:
		return "unknown"
	}
}

func (c FaultClass) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

func (c *FaultClass) UnmarshalText(b []byte) error {
	for _, k := range []FaultClass{FaultAccessViolation, FaultBusError, FaultInPageError} {
		if string(b) == k.String() {
			*c = k
			return nil
		}
	}
	*c = FaultUnknown
	return nil
}

// Fault describes a trapped memory access fault.
type Fault struct {
	Addr  uintptr
	Class FaultClass
	Slot  int
	cause error
}

func (f *Fault) Error() string {
	return fmt.Sprintf("%s at %#x (slot %d)", f.Class, f.Addr, f.Slot)
}

func (f *Fault) Is(target error) bool { return target == ErrFault }

// Unwrap returns the runtime error the fault was raised as.
func (f *Fault) Unwrap() error { return f.cause }

// faultAddress reports whether a recovered panic value is a memory access
// fault and, if so, the faulting address. Nil dereferences count as faults
// at address zero.
func faultAddress(v any) (uintptr, runtime.Error, bool) {
	rerr, ok := v.(runtime.Error)
	if !ok {
		return 0, nil, false
	}
	if a, ok := rerr.(interface{ Addr() uintptr }); ok {
		return a.Addr(), rerr, true
	}
	if strings.Contains(rerr.Error(), "nil pointer dereference") {
		return 0, rerr, true
	}
	return 0, nil, false
}
