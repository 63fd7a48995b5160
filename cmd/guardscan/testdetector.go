package guardscan

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/redactyl/guardscan/internal/detectors"
	"github.com/redactyl/guardscan/internal/faultguard"
	"github.com/redactyl/guardscan/internal/report"
	"github.com/redactyl/guardscan/internal/types"
)

func init() {
	cmd := &cobra.Command{
		Use:   "test-detector <id>",
		Short: "Run a detector against text read from stdin",
		Long:  "Available detectors: " + strings.Join(detectors.FunctionIDs(), ", "),
		Args:  cobra.ExactArgs(1),
		RunE:  runTestDetector,
	}
	rootCmd.AddCommand(cmd)
}

func runTestDetector(cmd *cobra.Command, args []string) error {
	id := args[0]
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return err
	}

	if !slices.Contains(detectors.FunctionIDs(), id) {
		return fmt.Errorf("unknown detector id %q (available: %s)", id, strings.Join(detectors.FunctionIDs(), ", "))
	}

	var fs []types.Finding
	g := faultguard.New(faultguard.NewRegistry(), faultguard.FixedSlot(0))
	if err := g.Run(true, func() { fs = detectors.RunFunction(id, "stdin", data) }); err != nil {
		return err
	}
	if flagJSON {
		return report.WriteJSON(cmd.OutOrStdout(), fs, nil, 1)
	}
	report.PrintTable(cmd.OutOrStdout(), fs, report.PrintOptions{NoColor: flagNoColor, FilesScanned: 1})
	return nil
}
