package guardscan

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/redactyl/guardscan/internal/engine"
	"github.com/redactyl/guardscan/internal/report"
)

func init() {
	cmd := &cobra.Command{
		Use:   "baseline",
		Short: "Manage baselines",
	}

	var path, file string
	update := &cobra.Command{
		Use:   "update",
		Short: "Record the current findings as the baseline",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			abs, err := filepath.Abs(path)
			if err != nil {
				return err
			}
			lcfg, gcfg, err := loadConfigs(abs)
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}
			log := newLogger(cmd.ErrOrStderr(), flagLogLevel, flagNoColor)
			cfg, err := buildConfig(cmd, abs, lcfg, gcfg)
			if err != nil {
				return err
			}
			cfg.Logger = &log
			res, err := engine.ScanContext(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			if err := report.SaveBaseline(filepath.Join(abs, file), res.Findings); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Baseline updated: %d findings.\n", len(res.Findings))
			if n := len(res.Faults); n > 0 {
				fmt.Fprintf(cmd.ErrOrStderr(), "%d files faulted and are not part of the baseline.\n", n)
			}
			return nil
		},
	}
	update.Flags().StringVarP(&path, "path", "p", ".", "path to scan")
	update.Flags().StringVar(&file, "file", report.DefaultBaselineFile, "baseline file relative to path")

	rootCmd.AddCommand(cmd)
	cmd.AddCommand(update)
}
