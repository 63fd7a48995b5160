package guardscan

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/redactyl/guardscan/internal/update"
)

func init() {
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Replace this binary with the latest release",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			latest, err := update.Apply(version)
			if err != nil {
				return fmt.Errorf("update failed: %w", err)
			}
			if latest == version {
				fmt.Fprintf(cmd.OutOrStdout(), "guardscan v%s is the latest release.\n", version)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated to v%s.\n", latest)
			return nil
		},
	}
	rootCmd.AddCommand(cmd)
}
