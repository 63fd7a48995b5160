//go:build linux

package faultguard

import "github.com/prometheus/procfs"

// probeAddr finds the mapping that holds addr in the process's maps table.
//
//	unmapped or not readable    -> SIGSEGV, access violation
//	readable and file backed    -> SIGBUS, the file shrank under the mapping
func probeAddr(addr uintptr) FaultClass {
	self, err := procfs.Self()
	if err != nil {
		return FaultUnknown
	}
	maps, err := self.ProcMaps()
	if err != nil {
		return FaultUnknown
	}
	return classifyMaps(maps, addr)
}

func classifyMaps(maps []*procfs.ProcMap, addr uintptr) FaultClass {
	for _, m := range maps {
		if m == nil || addr < m.StartAddr || addr >= m.EndAddr {
			continue
		}
		if m.Perms == nil || !m.Perms.Read {
			return FaultAccessViolation
		}
		if m.Inode != 0 {
			return FaultBusError
		}
		return FaultUnknown
	}
	return FaultAccessViolation
}
