package report

import (
	"fmt"
	"io"

	"github.com/redactyl/guardscan/internal/engine"
)

// PrintFaults lists files whose reads faulted and were skipped. It prints
// nothing when there are none.
func PrintFaults(w io.Writer, faults []engine.FaultRecord, noColor bool) {
	if len(faults) == 0 {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, styled(warnStyle, fmt.Sprintf("Skipped %d file(s) after a memory fault:", len(faults)), noColor))
	for _, f := range faults {
		fmt.Fprintf(w, "  %s (%s at %#x)\n", f.Path, f.Class, f.Addr)
	}
}
