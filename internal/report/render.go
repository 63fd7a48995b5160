package report

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"

	"github.com/redactyl/guardscan/internal/types"
)

type PrintOptions struct {
	NoColor      bool
	Duration     time.Duration
	FilesScanned int
	Faults       int
}

var (
	highStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	medStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	lowStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

func sortFindings(findings []types.Finding) {
	sort.SliceStable(findings, func(i, j int) bool {
		if findings[i].Path == findings[j].Path {
			return findings[i].Line < findings[j].Line
		}
		return findings[i].Path < findings[j].Path
	})
}

// PrintTable renders findings as a bordered table followed by the summary.
func PrintTable(w io.Writer, findings []types.Finding, opts PrintOptions) {
	sortFindings(findings)
	if len(findings) == 0 {
		fmt.Fprintln(w, styled(okStyle, "No secrets found", opts.NoColor))
	} else {
		table := tablewriter.NewWriter(w)
		table.Header("SEVERITY", "DETECTOR", "LOCATION", "MATCH", "CONFIDENCE")
		for _, f := range findings {
			_ = table.Append(
				severityLabel(f.Severity, opts.NoColor),
				f.Detector,
				fmt.Sprintf("%s:%d", f.Path, f.Line),
				maskValue(f.Match),
				fmt.Sprintf("%.2f", f.Confidence),
			)
		}
		_ = table.Render()
	}
	printSummary(w, findings, opts)
}

// PrintText renders one line per finding, suitable for piping.
func PrintText(w io.Writer, findings []types.Finding, opts PrintOptions) {
	sortFindings(findings)
	if len(findings) == 0 {
		fmt.Fprintln(w, "No secrets found")
	} else {
		maxDet := 8
		for _, f := range findings {
			if l := len(f.Detector); l > maxDet {
				maxDet = l
			}
		}
		fmt.Fprintf(w, "Findings: %d\n", len(findings))
		for _, f := range findings {
			fmt.Fprintf(w, "%-6s %-*s %s:%d  %s\n", severityLabel(f.Severity, opts.NoColor), maxDet, f.Detector, f.Path, f.Line, maskValue(f.Match))
		}
	}
	printSummary(w, findings, opts)
}

func printSummary(w io.Writer, findings []types.Finding, opts PrintOptions) {
	if opts.Duration <= 0 && opts.FilesScanned <= 0 && opts.Faults <= 0 {
		return
	}
	high, med, low := 0, 0, 0
	for _, f := range findings {
		switch f.Severity {
		case types.SevHigh:
			high++
		case types.SevMed:
			med++
		default:
			low++
		}
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Findings: %d (high: %d, medium: %d, low: %d)\n", len(findings), high, med, low)
	if opts.Duration > 0 {
		fmt.Fprintf(w, "Scan duration: %.2fs\n", opts.Duration.Seconds())
	}
	if opts.FilesScanned > 0 {
		fmt.Fprintf(w, "Files scanned: %d\n", opts.FilesScanned)
	}
	if opts.Faults > 0 {
		fmt.Fprintln(w, styled(warnStyle, fmt.Sprintf("Files skipped after a memory fault: %d", opts.Faults), opts.NoColor))
	}
}

func maskValue(s string) string {
	if len(s) <= 8 {
		return "********"
	}
	return s[:4] + "…" + s[len(s)-4:]
}

func severityLabel(s types.Severity, noColor bool) string {
	switch s {
	case types.SevHigh:
		return styled(highStyle, string(s), noColor)
	case types.SevMed:
		return styled(medStyle, string(s), noColor)
	default:
		return styled(lowStyle, string(s), noColor)
	}
}

func styled(st lipgloss.Style, s string, noColor bool) string {
	if noColor {
		return s
	}
	return st.Render(s)
}
