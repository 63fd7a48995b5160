// Package detectors implements the secret detectors run by guardscan. Each
// detector reports zero or more findings for a path and its bytes.
//
// Detectors read data in place: when the engine hands them a file mapping,
// every line and regexp match is a direct read of mapped memory. Anything a
// finding keeps is copied out as a string, so findings outlive the mapping.
package detectors
