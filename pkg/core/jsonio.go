package core

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// MarshalFindings writes findings as an indented JSON array. A nil slice is
// written as [].
func MarshalFindings(w io.Writer, findings []Finding) error {
	if findings == nil {
		findings = []Finding{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(findings)
}

// UnmarshalFindings reads either a bare findings array or the object written
// by `guardscan scan --json`.
func UnmarshalFindings(r io.Reader) ([]Finding, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 && raw[0] == '{' {
		var rep struct {
			Findings []Finding `json:"findings"`
		}
		if err := json.Unmarshal(raw, &rep); err != nil {
			return nil, fmt.Errorf("decode report: %w", err)
		}
		return rep.Findings, nil
	}
	var fs []Finding
	if err := json.Unmarshal(raw, &fs); err != nil {
		return nil, fmt.Errorf("decode findings: %w", err)
	}
	return fs, nil
}
