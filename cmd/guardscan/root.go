package guardscan

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/redactyl/guardscan/internal/report"
)

var (
	flagJSON            bool
	flagSARIF           bool
	flagThreads         int
	flagFailOn          string
	flagNoColor         bool
	flagMinConfidence   float64
	flagDryRun          bool
	flagNoCache         bool
	flagDefaultExcludes bool
	flagNoUpdateCheck   bool
	flagLogLevel        string

	version = "0.1.0"
)

var rootCmd = &cobra.Command{
	Use:           "guardscan",
	Short:         "Find secrets in your repo",
	Long:          "guardscan maps repository files read-only and scans them for secrets. A file that faults while mapped is reported and skipped instead of crashing the scan.",
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// exitError carries a process exit code out of a command.
type exitError struct{ code int }

func (e exitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

// Execute runs the CLI and exits: 0 on success, 1 when findings reach the
// --fail-on threshold, 2 on any other error.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	os.Exit(exitCode(err))
}

func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var ee exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	fmt.Fprintln(os.Stderr, "error:", err)
	return 2
}

func init() {
	report.ToolVersion = version

	pf := rootCmd.PersistentFlags()
	pf.BoolVar(&flagJSON, "json", false, "emit JSON")
	pf.BoolVar(&flagSARIF, "sarif", false, "emit SARIF 2.1.0")
	pf.IntVar(&flagThreads, "threads", 0, "worker count (0 = GOMAXPROCS, max 32)")
	pf.StringVar(&flagFailOn, "fail-on", "medium", "fail on low|medium|high")
	pf.BoolVar(&flagNoColor, "no-color", false, "disable colorized output")
	pf.Float64Var(&flagMinConfidence, "min-confidence", 0.0, "only show findings with confidence >= value (0-1)")
	pf.BoolVar(&flagDryRun, "dry-run", false, "read and hash files without running detectors")
	pf.BoolVar(&flagNoCache, "no-cache", false, "disable incremental scan cache")
	pf.BoolVar(&flagDefaultExcludes, "default-excludes", true, "apply built-in exclude list (node_modules, dist, images, etc.)")
	pf.BoolVar(&flagNoUpdateCheck, "no-update-check", false, "disable update check")
	pf.StringVar(&flagLogLevel, "log-level", "warn", "diagnostic log level: debug|info|warn|error")
}
