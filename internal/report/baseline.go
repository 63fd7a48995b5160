package report

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/redactyl/guardscan/internal/types"
)

// DefaultBaselineFile is used when no path is given.
const DefaultBaselineFile = "guardscan.baseline.json"

type Baseline struct {
	Items map[string]bool `json:"items"`
}

// LoadBaseline reads a baseline. A missing file returns an empty baseline
// together with the os.ErrNotExist error.
func LoadBaseline(path string) (Baseline, error) {
	b := Baseline{Items: map[string]bool{}}
	raw, err := os.ReadFile(path)
	if err != nil {
		return b, err
	}
	if err := json.Unmarshal(raw, &b); err != nil {
		return Baseline{Items: map[string]bool{}}, fmt.Errorf("baseline %s: %w", path, err)
	}
	if b.Items == nil {
		b.Items = map[string]bool{}
	}
	return b, nil
}

func SaveBaseline(path string, findings []types.Finding) error {
	b := Baseline{Items: map[string]bool{}}
	for _, f := range findings {
		b.Items[key(f)] = true
	}
	buf, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, buf, 0o644)
}

// FilterNewFindings drops findings already recorded in base.
func FilterNewFindings(findings []types.Finding, base Baseline) []types.Finding {
	var out []types.Finding
	for _, f := range findings {
		if !base.Items[key(f)] {
			out = append(out, f)
		}
	}
	return out
}

func key(f types.Finding) string {
	return f.Path + "|" + f.Detector + "|" + f.Match
}

// ShouldFail reports whether any finding reaches failOn. Unknown thresholds
// fall back to medium.
func ShouldFail(findings []types.Finding, failOn string) bool {
	th := types.Severity(failOn).Rank()
	if th == 0 {
		th = types.SevMed.Rank()
	}
	for _, f := range findings {
		if f.Severity.Rank() >= th {
			return true
		}
	}
	return false
}
