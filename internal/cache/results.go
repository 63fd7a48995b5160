package cache

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/redactyl/guardscan/internal/types"
)

// ScanResults is the last scan's outcome, kept for later inspection.
type ScanResults struct {
	Findings  []types.Finding `json:"findings"`
	Faulted   []string        `json:"faulted,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
	Root      string          `json:"root"`
	Count     int             `json:"count"`
}

func resultsPath(root string) string {
	dir, prefix := storeDir(root)
	return filepath.Join(dir, prefix+"guardscan_last_scan.json")
}

// SaveResults records findings and the paths whose reads faulted.
func SaveResults(root string, findings []types.Finding, faulted []string) error {
	results := ScanResults{
		Findings:  findings,
		Faulted:   faulted,
		Timestamp: time.Now(),
		Root:      root,
		Count:     len(findings),
	}
	b, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return err
	}
	return writeAtomic(resultsPath(root), b)
}

func LoadResults(root string) (ScanResults, error) {
	var results ScanResults
	b, err := os.ReadFile(resultsPath(root))
	if err != nil {
		return results, err
	}
	err = json.Unmarshal(b, &results)
	return results, err
}
