// Package core is the stable import path for programs that embed guardscan.
// It re-exports the scan entry points and the fault guard so callers can
// protect their own reads of mapped or foreign memory.
//
// Example:
//
//	res, err := core.ScanWithStats(core.Config{Root: "."})
//	if err != nil { /* handle */ }
//	_ = core.MarshalFindings(os.Stdout, res.Findings)
package core
