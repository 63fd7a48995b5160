// Package engine walks a tree, loads each candidate file (mapped when the
// platform allows it) and runs the detectors over the bytes inside a
// faultguard region. A file whose mapping faults is recorded and skipped; the
// scan always continues. External consumers should use pkg/core.
package engine
