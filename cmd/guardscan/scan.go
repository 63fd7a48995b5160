package guardscan

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/redactyl/guardscan/internal/audit"
	"github.com/redactyl/guardscan/internal/cache"
	"github.com/redactyl/guardscan/internal/config"
	"github.com/redactyl/guardscan/internal/engine"
	"github.com/redactyl/guardscan/internal/report"
	"github.com/redactyl/guardscan/internal/types"
	"github.com/redactyl/guardscan/internal/update"
)

var (
	flagPath     string
	flagInclude  string
	flagExclude  string
	flagMaxBytes int64
	flagEnable   string
	flagDisable  string
	flagTable    bool
	flagText     bool
	flagGuard    string
	flagNoMmap   bool
	flagAudit    bool
	flagBaseline string
)

func init() {
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan files for secrets",
		Args:  cobra.NoArgs,
		RunE:  runScan,
	}
	rootCmd.AddCommand(cmd)

	cmd.Flags().StringVarP(&flagPath, "path", "p", ".", "path to scan")
	cmd.Flags().StringVar(&flagInclude, "include", "", "comma-separated include globs")
	cmd.Flags().StringVar(&flagExclude, "exclude", "", "comma-separated exclude globs")
	cmd.Flags().Int64Var(&flagMaxBytes, "max-bytes", 1<<20, "skip files larger than this")
	cmd.Flags().StringVar(&flagEnable, "enable", "", "only report these detectors (comma-separated IDs)")
	cmd.Flags().StringVar(&flagDisable, "disable", "", "drop these detectors (comma-separated IDs)")
	cmd.Flags().BoolVar(&flagTable, "table", false, "output in table format with borders (default)")
	cmd.Flags().BoolVar(&flagText, "text", false, "output in plain text columnar format")
	cmd.Flags().StringVar(&flagGuard, "guard", "", "fault guard mode: auto|always|off (default auto)")
	cmd.Flags().BoolVar(&flagNoMmap, "no-mmap", false, "read files onto the heap instead of mapping them")
	cmd.Flags().BoolVar(&flagAudit, "audit", false, "append a record of this scan to the audit log")
	cmd.Flags().StringVar(&flagBaseline, "baseline", report.DefaultBaselineFile, "baseline file; findings listed there are not reported")
}

// scanLogger honors --log-level when given, else log_level from config.
func scanLogger(cmd *cobra.Command, lcfg, gcfg config.FileConfig, noColor bool) zerolog.Logger {
	level := flagLogLevel
	if !cmd.Flags().Changed("log-level") {
		if v := pickString("", lcfg.LogLevel, gcfg.LogLevel); v != "" {
			level = v
		}
	}
	return newLogger(cmd.ErrOrStderr(), level, noColor)
}

func buildConfig(cmd *cobra.Command, abs string, lcfg, gcfg config.FileConfig) (engine.Config, error) {
	mode, err := engine.ParseGuardMode(pickString(flagGuard, lcfg.Guard, gcfg.Guard))
	if err != nil {
		return engine.Config{}, err
	}
	useMmap := pickBoolDefault(true, false, lcfg.Mmap, gcfg.Mmap)
	maxBytes := flagMaxBytes
	if !cmd.Flags().Changed("max-bytes") {
		maxBytes = pickInt64(0, lcfg.MaxBytes, gcfg.MaxBytes)
		if maxBytes == 0 {
			maxBytes = flagMaxBytes
		}
	}
	return engine.Config{
		Root:             abs,
		IncludeGlobs:     pickString(flagInclude, lcfg.Include, gcfg.Include),
		ExcludeGlobs:     pickString(flagExclude, lcfg.Exclude, gcfg.Exclude),
		MaxBytes:         maxBytes,
		Threads:          pickInt(flagThreads, lcfg.Threads, gcfg.Threads),
		EnableDetectors:  pickString(flagEnable, lcfg.Enable, gcfg.Enable),
		DisableDetectors: pickString(flagDisable, lcfg.Disable, gcfg.Disable),
		MinConfidence:    pickFloat(flagMinConfidence, lcfg.MinConfidence, gcfg.MinConfidence),
		DryRun:           flagDryRun,
		NoCache:          flagNoCache,
		DefaultExcludes:  pickBoolDefault(flagDefaultExcludes, cmd.Flags().Changed("default-excludes"), lcfg.DefaultExcludes, gcfg.DefaultExcludes),
		Guard:            mode,
		NoMmap:           flagNoMmap || !useMmap,
	}, nil
}

func runScan(cmd *cobra.Command, _ []string) error {
	abs, err := filepath.Abs(flagPath)
	if err != nil {
		return err
	}
	lcfg, gcfg, err := loadConfigs(abs)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	noColor := pickBool(flagNoColor, lcfg.NoColor, gcfg.NoColor)
	log := scanLogger(cmd, lcfg, gcfg, noColor)

	cfg, err := buildConfig(cmd, abs, lcfg, gcfg)
	if err != nil {
		return err
	}
	cfg.Logger = &log

	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()
	machine := flagJSON || flagSARIF
	if !machine {
		if !flagNoUpdateCheck {
			if latest, newer, _ := update.NewChecker().Check(version); newer {
				fmt.Fprintf(stderr, "(new version available: v%s)  run 'guardscan update' to upgrade\n", latest)
			}
		}
		fmt.Fprintf(stderr, "Scanning %s with %d detectors (guard: %s)...\n", abs, len(engine.DetectorIDs()), cfg.Guard)
	}

	total := 0
	if !machine && isTerminal(stderr) {
		total, _ = engine.CountTargets(cfg)
	}
	if total > 0 {
		progressed := 0
		cfg.Progress = func() {
			progressed++
			if progressed%10 == 0 || progressed == total {
				pct := float64(progressed) / float64(total) * 100
				fmt.Fprintf(stderr, "\r[%d/%d] %.0f%%", progressed, total, pct)
			}
		}
	}
	res, err := engine.ScanContext(cmd.Context(), cfg)
	if err != nil {
		return fmt.Errorf("scan error: %w", err)
	}
	if total > 0 {
		fmt.Fprintln(stderr)
	}
	if res.FileErrors != nil {
		log.Warn().Int("files", res.FileErrors.Len()).Msg("some files could not be read")
	}

	baseline, err := report.LoadBaseline(filepath.Join(abs, flagBaseline))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warn().Err(err).Msg("baseline ignored")
	}
	newFindings := report.FilterNewFindings(res.Findings, baseline)
	if newFindings == nil {
		newFindings = []types.Finding{}
	}

	if err := writeResults(stdout, stderr, newFindings, res, noColor); err != nil {
		return err
	}

	if !cfg.NoCache && !cfg.DryRun {
		if err := cache.SaveResults(abs, res.Findings, res.FaultedPaths()); err != nil {
			log.Debug().Err(err).Msg("last scan results not saved")
		}
	}
	if flagAudit {
		rec := audit.CreateScanRecord(abs, res, newFindings, flagBaseline)
		if err := audit.NewAuditLog(abs).LogScan(rec); err != nil {
			log.Warn().Err(err).Msg("audit record not written")
		}
	}
	if cmd.Flags().Changed("enable") || cmd.Flags().Changed("disable") {
		fmt.Fprintf(stderr, "detectors active: %s\n", activeSetSummary(cfg))
	}

	if report.ShouldFail(newFindings, flagFailOn) {
		return exitError{code: 1}
	}
	return nil
}

func writeResults(stdout, stderr io.Writer, findings []types.Finding, res engine.Result, noColor bool) error {
	opts := report.PrintOptions{NoColor: noColor, Duration: res.Duration, FilesScanned: res.FilesScanned, Faults: len(res.Faults)}
	switch {
	case flagSARIF:
		if err := report.WriteSARIF(stdout, findings, res.Faults); err != nil {
			return fmt.Errorf("sarif error: %w", err)
		}
	case flagJSON:
		return report.WriteJSON(stdout, findings, res.Faults, res.FilesScanned)
	case flagText:
		report.PrintText(stdout, findings, opts)
		report.PrintFaults(stderr, res.Faults, noColor)
	default:
		report.PrintTable(stdout, findings, opts)
		report.PrintFaults(stderr, res.Faults, noColor)
	}
	return nil
}

func activeSetSummary(cfg engine.Config) string {
	ids := engine.DetectorIDs()
	if cfg.EnableDetectors != "" {
		ids = strings.Split(cfg.EnableDetectors, ",")
	}
	disabled := map[string]bool{}
	for _, d := range strings.Split(cfg.DisableDetectors, ",") {
		disabled[strings.TrimSpace(d)] = true
	}
	var kept []string
	for _, id := range ids {
		if id = strings.TrimSpace(id); id != "" && !disabled[id] {
			kept = append(kept, id)
		}
	}
	return strings.Join(kept, ",")
}
