package report

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/redactyl/guardscan/internal/engine"
	"github.com/redactyl/guardscan/internal/faultguard"
	"github.com/redactyl/guardscan/internal/types"
)

type sarifDoc struct {
	Version string `json:"version"`
	Runs    []struct {
		Tool struct {
			Driver struct {
				Name  string `json:"name"`
				Rules []struct {
					ID string `json:"id"`
				} `json:"rules"`
			} `json:"driver"`
		} `json:"tool"`
		Invocations []struct {
			ExecutionSuccessful        bool `json:"executionSuccessful"`
			ToolExecutionNotifications []struct {
				Level     string `json:"level"`
				Locations []struct {
					PhysicalLocation struct {
						ArtifactLocation struct {
							URI string `json:"uri"`
						} `json:"artifactLocation"`
					} `json:"physicalLocation"`
				} `json:"locations"`
			} `json:"toolExecutionNotifications"`
		} `json:"invocations"`
		Results []struct {
			RuleID    string `json:"ruleId"`
			RuleIndex int    `json:"ruleIndex"`
			Level     string `json:"level"`
		} `json:"results"`
	} `json:"runs"`
}

func TestWriteSARIF(t *testing.T) {
	fs := []types.Finding{
		{Path: "a.go", Line: 10, Match: "ghp_x", Detector: "github_token", Severity: types.SevHigh},
		{Path: "b.txt", Line: 5, Match: "jwt_x", Detector: "jwt", Severity: types.SevMed},
	}
	faults := []engine.FaultRecord{{Path: "c.bin", Class: faultguard.FaultBusError, Addr: 0x1000}}
	var buf bytes.Buffer
	if err := WriteSARIF(&buf, fs, faults); err != nil {
		t.Fatal(err)
	}
	var doc sarifDoc
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("unmarshal: %v; body=%s", err, buf.String())
	}
	if doc.Version != "2.1.0" || len(doc.Runs) != 1 {
		t.Fatalf("unexpected document: %+v", doc)
	}
	run := doc.Runs[0]
	if run.Tool.Driver.Name != "guardscan" || len(run.Tool.Driver.Rules) != 2 {
		t.Fatalf("unexpected driver: %+v", run.Tool.Driver)
	}
	for _, r := range run.Results {
		if run.Tool.Driver.Rules[r.RuleIndex].ID != r.RuleID {
			t.Fatalf("ruleIndex %d does not point at %s", r.RuleIndex, r.RuleID)
		}
	}
	if run.Results[0].Level != "error" || run.Results[1].Level != "warning" {
		t.Fatalf("unexpected levels: %+v", run.Results)
	}
	notes := run.Invocations[0].ToolExecutionNotifications
	if len(notes) != 1 || notes[0].Locations[0].PhysicalLocation.ArtifactLocation.URI != "c.bin" {
		t.Fatalf("expected one notification for c.bin, got %+v", notes)
	}
}

func TestWriteSARIF_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSARIF(&buf, nil, nil); err != nil {
		t.Fatal(err)
	}
	var doc sarifDoc
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatal(err)
	}
	if len(doc.Runs[0].Results) != 0 || !doc.Runs[0].Invocations[0].ExecutionSuccessful {
		t.Fatalf("unexpected empty document: %s", buf.String())
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	faults := []engine.FaultRecord{{Path: "c.bin", Class: faultguard.FaultAccessViolation, Addr: 16}}
	if err := WriteJSON(&buf, nil, faults, 3); err != nil {
		t.Fatal(err)
	}
	var got struct {
		Findings []types.Finding `json:"findings"`
		Faults   []struct {
			Path  string `json:"path"`
			Class string `json:"class"`
		} `json:"faults"`
		FilesScanned int `json:"files_scanned"`
	}
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if got.Findings == nil || len(got.Findings) != 0 {
		t.Fatalf("findings must encode as an empty array: %s", buf.String())
	}
	if len(got.Faults) != 1 || got.Faults[0].Class != "access violation" || got.FilesScanned != 3 {
		t.Fatalf("unexpected report: %s", buf.String())
	}
}
