package guardscan

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/redactyl/guardscan/internal/config"
	"github.com/redactyl/guardscan/internal/detectors"
	"github.com/redactyl/guardscan/internal/engine"
)

// minimalPreset keeps detectors whose matches carry a fixed vendor prefix.
var minimalPreset = []string{
	"aws_access_key", "aws_secret_key", "private_key_block",
	"github_token", "gitlab_token", "npm_token",
	"slack_token", "slack_webhook", "stripe_secret",
	"anthropic_api_key", "sendgrid_api_key",
}

func init() {
	var preset, output, disable, guard string
	cfgCmd := &cobra.Command{Use: "config", Short: "Configuration helpers"}
	rootCmd.AddCommand(cfgCmd)

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a .guardscan.yml with the selected detectors and options",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var ids []string
			switch strings.ToLower(preset) {
			case "minimal":
				ids = minimalPreset
			case "standard", "":
				ids = detectors.IDs()
			default:
				return fmt.Errorf("unknown preset %q (want minimal or standard)", preset)
			}
			if _, err := engine.ParseGuardMode(guard); err != nil {
				return err
			}
			enable := strings.Join(ids, ",")
			fc := config.FileConfig{
				Enable:  &enable,
				Disable: optStrPtr(disable),
				Guard:   optStrPtr(guard),
			}
			b, err := yaml.Marshal(&fc)
			if err != nil {
				return err
			}
			if dir := filepath.Dir(output); dir != "." {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return err
				}
			}
			if err := os.WriteFile(output, b, 0o644); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Wrote", output)
			return nil
		},
	}
	initCmd.Flags().StringVar(&preset, "preset", "standard", "detector preset: minimal | standard")
	initCmd.Flags().StringVar(&output, "output", config.LocalNames[0], "output file path")
	initCmd.Flags().StringVar(&disable, "disable", "", "comma-separated detector IDs to disable")
	initCmd.Flags().StringVar(&guard, "guard", "", "fault guard mode to record: auto|always|off")
	cfgCmd.AddCommand(initCmd)
}

func optStrPtr(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
