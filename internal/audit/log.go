// Package audit appends one JSON record per scan to a local history file.
package audit

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/redactyl/guardscan/internal/engine"
	"github.com/redactyl/guardscan/internal/types"
)

const (
	fileName = "guardscan_audit.jsonl"
	topN     = 10
)

// ScanRecord is one line of the history file. It never holds a full match.
type ScanRecord struct {
	Timestamp time.Time `json:"timestamp"`
	ScanID    string    `json:"scan_id"`
	Root      string    `json:"root"`
	Duration  string    `json:"duration"`

	FilesScanned   int            `json:"files_scanned"`
	TotalFindings  int            `json:"total_findings"`
	NewFindings    int            `json:"new_findings"`
	BaselinedCount int            `json:"baselined_count"`
	BaselineFile   string         `json:"baseline_file,omitempty"`
	SeverityCounts map[string]int `json:"severity_counts"`

	// Guard activity: regions armed, faults trapped and the files skipped.
	GuardedReads  uint64               `json:"guarded_reads"`
	FaultsTrapped int                  `json:"faults_trapped"`
	Faults        []engine.FaultRecord `json:"faults,omitempty"`

	TopFindings []Entry `json:"top_findings,omitempty"`
	AllFindings []Entry `json:"all_findings,omitempty"`
}

// Entry locates a finding. Hint keeps only the first characters of the
// match.
type Entry struct {
	Path     string `json:"path"`
	Line     int    `json:"line"`
	Detector string `json:"detector"`
	Severity string `json:"severity"`
	Hint     string `json:"hint,omitempty"`
}

type AuditLog struct {
	logPath string
}

// NewAuditLog stores history under .git when root is a repository.
func NewAuditLog(root string) *AuditLog {
	if st, err := os.Stat(filepath.Join(root, ".git")); err == nil && st.IsDir() {
		return &AuditLog{logPath: filepath.Join(root, ".git", fileName)}
	}
	return &AuditLog{logPath: filepath.Join(root, "."+fileName)}
}

func (a *AuditLog) Path() string { return a.logPath }

// LoadHistory returns records newest first. Corrupt lines are skipped.
func (a *AuditLog) LoadHistory() ([]ScanRecord, error) {
	f, err := os.Open(a.logPath)
	if err != nil {
		return nil, fmt.Errorf("open audit log: %w", err)
	}
	defer f.Close()

	var records []ScanRecord
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 16<<20)
	for sc.Scan() {
		var rec ScanRecord
		if json.Unmarshal(sc.Bytes(), &rec) == nil {
			records = append(records, rec)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read audit log: %w", err)
	}
	slices.Reverse(records)
	return records, nil
}

// LogScan appends rec. The file is owner-only since it lists finding
// locations.
func (a *AuditLog) LogScan(rec ScanRecord) error {
	if rec.ScanID == "" {
		rec.ScanID = scanID(rec.Root, rec.Timestamp)
	}
	f, err := os.OpenFile(a.logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("open audit log: %w", err)
	}
	if err := json.NewEncoder(f).Encode(rec); err != nil {
		_ = f.Close()
		return fmt.Errorf("write audit record: %w", err)
	}
	return f.Close()
}

func scanID(root string, ts time.Time) string {
	h := xxhash.New()
	_, _ = h.WriteString(root)
	_, _ = h.WriteString(strconv.FormatInt(ts.UnixNano(), 10))
	return fmt.Sprintf("scan_%08x", uint32(h.Sum64()))
}

// CreateScanRecord summarizes a scan. newFindings are those not covered by
// the baseline; the top entries are drawn from them, highest severity first.
func CreateScanRecord(root string, res engine.Result, newFindings []types.Finding, baselineFile string) ScanRecord {
	counts := make(map[string]int)
	for _, f := range res.Findings {
		counts[string(f.Severity)]++
	}

	top := slices.Clone(newFindings)
	slices.SortStableFunc(top, func(a, b types.Finding) int {
		return b.Severity.Rank() - a.Severity.Rank()
	})
	if len(top) > topN {
		top = top[:topN]
	}

	return ScanRecord{
		Timestamp:      time.Now(),
		Root:           root,
		Duration:       res.Duration.String(),
		FilesScanned:   res.FilesScanned,
		TotalFindings:  len(res.Findings),
		NewFindings:    len(newFindings),
		BaselinedCount: len(res.Findings) - len(newFindings),
		BaselineFile:   baselineFile,
		SeverityCounts: counts,
		GuardedReads:   res.GuardStats.Armed,
		FaultsTrapped:  len(res.Faults),
		Faults:         res.Faults,
		TopFindings:    entries(top, false),
		AllFindings:    entries(res.Findings, true),
	}
}

func entries(fs []types.Finding, withHint bool) []Entry {
	out := make([]Entry, 0, len(fs))
	for _, f := range fs {
		e := Entry{Path: f.Path, Line: f.Line, Detector: f.Detector, Severity: string(f.Severity)}
		if withHint {
			e.Hint = hint(f.Match)
		}
		out = append(out, e)
	}
	return out
}

func hint(match string) string {
	if len(match) <= 8 {
		return "****"
	}
	return match[:4] + "****"
}
