package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/redactyl/guardscan/internal/engine"
	"github.com/redactyl/guardscan/internal/faultguard"
	"github.com/redactyl/guardscan/internal/types"
)

func TestPrintText_NoFindings_ShowsFooter(t *testing.T) {
	var buf bytes.Buffer
	PrintText(&buf, nil, PrintOptions{Duration: 1200 * time.Millisecond, FilesScanned: 10})
	out := buf.String()
	if !strings.Contains(out, "No secrets found") {
		t.Fatalf("expected friendly no-findings message; got: %q", out)
	}
	if !strings.Contains(out, "Files scanned: 10") {
		t.Fatalf("expected footer with files scanned; got: %q", out)
	}
	if strings.Contains(out, "memory fault") {
		t.Fatalf("fault line must only show when files faulted; got: %q", out)
	}
}

func TestPrintText_WithFindings(t *testing.T) {
	var buf bytes.Buffer
	fs := []types.Finding{{Path: "a.go", Line: 1, Match: "ghp_0123456789", Detector: "github_token", Severity: types.SevHigh}}
	PrintText(&buf, fs, PrintOptions{NoColor: true, Faults: 2})
	out := buf.String()
	for _, want := range []string{"Findings: 1", "github_token", "a.go:1", "ghp_…6789", "Files skipped after a memory fault: 2"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output; got: %q", want, out)
		}
	}
	if strings.Contains(out, "ghp_0123456789") {
		t.Fatalf("match must be masked; got: %q", out)
	}
}

func TestPrintTable_WithFindings(t *testing.T) {
	var buf bytes.Buffer
	fs := []types.Finding{
		{Path: "b.go", Line: 9, Match: "short", Detector: "jwt", Severity: types.SevMed},
		{Path: "a.go", Line: 1, Match: "ghp_xxx", Detector: "github_token", Severity: types.SevHigh, Confidence: 0.9},
	}
	PrintTable(&buf, fs, PrintOptions{NoColor: true})
	out := buf.String()
	if !strings.Contains(out, "SEVERITY") {
		t.Fatalf("expected table header with SEVERITY; got: %q", out)
	}
	if !strings.Contains(out, "github_token") || !strings.Contains(out, "0.90") {
		t.Fatalf("expected detector row in table; got: %q", out)
	}
	if !strings.Contains(out, "│") {
		t.Fatalf("expected table borders; got: %q", out)
	}
	if strings.Index(out, "a.go:1") > strings.Index(out, "b.go:9") {
		t.Fatalf("expected rows sorted by path; got: %q", out)
	}
}

func TestPrintTable_NoFindings_ShowsFooter(t *testing.T) {
	var buf bytes.Buffer
	PrintTable(&buf, nil, PrintOptions{NoColor: true, Duration: 1200 * time.Millisecond, FilesScanned: 10})
	out := buf.String()
	if !strings.Contains(out, "No secrets found") || !strings.Contains(out, "Files scanned: 10") {
		t.Fatalf("expected no-findings message and footer; got: %q", out)
	}
}

func TestPrintFaults(t *testing.T) {
	var buf bytes.Buffer
	PrintFaults(&buf, nil, true)
	if buf.Len() != 0 {
		t.Fatalf("expected no output without faults; got: %q", buf.String())
	}
	PrintFaults(&buf, []engine.FaultRecord{{Path: "data/big.bin", Class: faultguard.FaultBusError, Addr: 0x7f0000001000}}, true)
	out := buf.String()
	if !strings.Contains(out, "Skipped 1 file(s)") || !strings.Contains(out, "data/big.bin (bus error at 0x7f0000001000)") {
		t.Fatalf("unexpected fault listing: %q", out)
	}
}

func TestMaskValue(t *testing.T) {
	if got := maskValue("abc"); got != "********" {
		t.Fatalf("short values are fully masked, got %q", got)
	}
	if got := maskValue("abcdefghij"); got != "abcd…ghij" {
		t.Fatalf("got %q", got)
	}
}
