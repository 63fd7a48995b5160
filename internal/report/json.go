package report

import (
	"encoding/json"
	"io"

	"github.com/redactyl/guardscan/internal/engine"
	"github.com/redactyl/guardscan/internal/types"
)

// JSONReport is the --json output shape.
type JSONReport struct {
	Findings     []types.Finding      `json:"findings"`
	Faults       []engine.FaultRecord `json:"faults,omitempty"`
	FilesScanned int                  `json:"files_scanned"`
}

func WriteJSON(w io.Writer, findings []types.Finding, faults []engine.FaultRecord, filesScanned int) error {
	if findings == nil {
		findings = []types.Finding{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(JSONReport{Findings: findings, Faults: faults, FilesScanned: filesScanned})
}
