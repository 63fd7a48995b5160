//go:build !unix && !windows

package faultguard

func classify(addr uintptr) FaultClass {
	if addr == 0 {
		return FaultAccessViolation
	}
	return FaultUnknown
}
