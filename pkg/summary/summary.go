// Package summary renders the aggregate syscall-count table printed to
// standard output once the tracee terminates.
package summary

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/ajrojasfuentes/rastreador/pkg/decode"
	"github.com/ajrojasfuentes/rastreador/pkg/tracer"
)

// Print writes the literal summary table format to out: a header, one row
// per distinct syscall sorted descending by count (ties broken by lower
// syscall number first), and a trailing total line. elapsed, when
// non-zero, adds one line beyond the mandated format reporting wall-clock
// run duration.
func Print(out io.Writer, counters *tracer.Counters, elapsed time.Duration) {
	fmt.Fprintln(out, "===== RESUMEN DE SYSCALLS =====")
	fmt.Fprintf(out, "%-24s  %10s  %8s\n", "Syscall", "Conteo", "%")
	fmt.Fprintf(out, "%-24s  %10s  %8s\n",
		"------------------------", "----------", "--------")

	total := counters.Total()
	for _, row := range counters.Rows() {
		name := decode.Name(row.Number)
		pct := 0.0
		if total > 0 {
			pct = 100 * float64(row.Count) / float64(total)
		}
		fmt.Fprintf(out, "%-24s  %10d  %7.2f\n", name, row.Count, pct)
	}

	fmt.Fprintf(out, "Total syscalls observadas: %d\n", total)

	if elapsed > 0 {
		rel := strings.TrimSpace(humanize.RelTime(time.Now().Add(-elapsed), time.Now(), "", ""))
		fmt.Fprintf(out, "Duración: %s\n", rel)
	}
}
