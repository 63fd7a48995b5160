package guardscan

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/redactyl/guardscan/internal/audit"
	"github.com/redactyl/guardscan/internal/cache"
	"github.com/redactyl/guardscan/internal/report"
)

func init() {
	var (
		path  string
		limit int
		last  bool
	)
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Show recorded scans",
		Long:  "Lists scans recorded with 'guardscan scan --audit'. With --last, prints the findings and faulted files of the most recent scan.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			abs, err := filepath.Abs(path)
			if err != nil {
				return err
			}
			if last {
				return printLastScan(cmd, abs)
			}
			records, err := audit.NewAuditLog(abs).LoadHistory()
			if err != nil {
				return err
			}
			if limit > 0 && len(records) > limit {
				records = records[:limit]
			}
			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.Header("TIME", "SCAN", "FILES", "FINDINGS", "NEW", "FAULTS", "DURATION")
			for _, r := range records {
				_ = table.Append(
					r.Timestamp.Local().Format("2006-01-02 15:04:05"),
					r.ScanID,
					strconv.Itoa(r.FilesScanned),
					strconv.Itoa(r.TotalFindings),
					strconv.Itoa(r.NewFindings),
					strconv.Itoa(r.FaultsTrapped),
					r.Duration,
				)
			}
			return table.Render()
		},
	}
	cmd.Flags().StringVarP(&path, "path", "p", ".", "repository root")
	cmd.Flags().IntVar(&limit, "limit", 20, "show at most this many records (0 = all)")
	cmd.Flags().BoolVar(&last, "last", false, "show the most recent scan's results")
	rootCmd.AddCommand(cmd)
}

func printLastScan(cmd *cobra.Command, root string) error {
	res, err := cache.LoadResults(root)
	if err != nil {
		return fmt.Errorf("no saved scan for %s: %w", root, err)
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Last scan: %s\n", res.Timestamp.Local().Format("2006-01-02 15:04:05"))
	report.PrintText(out, res.Findings, report.PrintOptions{NoColor: flagNoColor, Faults: len(res.Faulted)})
	for _, p := range res.Faulted {
		fmt.Fprintf(out, "faulted: %s\n", p)
	}
	return nil
}
