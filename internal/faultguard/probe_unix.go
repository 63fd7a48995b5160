//go:build unix && !linux

package faultguard

// No portable mapping table outside Linux; only the zero page is classified.
func probeAddr(uintptr) FaultClass {
	return FaultUnknown
}
