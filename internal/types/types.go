// Package types holds the values shared between the scanner, the report
// writers and the public facade.
package types

// Severity is a coarse-grained risk level for a finding.
type Severity string

const (
	SevLow  Severity = "low"
	SevMed  Severity = "medium"
	SevHigh Severity = "high"
)

// Rank orders severities from 1 (low) to 3 (high). Unknown values rank 0.
func (s Severity) Rank() int {
	switch s {
	case SevLow:
		return 1
	case SevMed:
		return 2
	case SevHigh:
		return 3
	}
	return 0
}

// Finding is a potential secret at a path and line. Match is always a copy
// and never aliases the scanned bytes.
type Finding struct {
	Path       string            `json:"path"`
	Line       int               `json:"line"`
	Column     int               `json:"column,omitempty"`
	Match      string            `json:"match"`
	Secret     string            `json:"secret,omitempty"`
	Detector   string            `json:"detector"`
	Severity   Severity          `json:"severity"`
	Confidence float64           `json:"confidence"`
	Context    string            `json:"context,omitempty"`
	Metadata   map[string]string `json:"metadata,omitempty"`
}
