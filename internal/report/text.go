package report

import (
	"fmt"
	"io"
	"strings"
)

// TextReporter writes a human readable report.
type TextReporter struct {
	Verbose   bool
	UseColour bool
}

const (
	colReset     = "\033[0m"
	colRed       = "\033[31m"
	colGreen     = "\033[32m"
	colGrey      = "\033[90m"
	colWhite     = "\033[37m"
	colBoldRed   = "\033[1;31m"
	colBoldGreen = "\033[1;32m"
	colBoldWhite = "\033[1;37m"
)

// cs wraps s in the colour c when colour is enabled.
func (tr *TextReporter) cs(c, s string) string {
	if !tr.UseColour {
		return s
	}
	return c + s + colReset
}

func (tr *TextReporter) Write(w io.Writer, r *Run) error {
	divider := strings.Repeat("-", 40)

	if tr.Verbose {
		fmt.Fprintf(w, "%s\n", divider)
		fmt.Fprint(w, tr.cs(colBoldWhite, "JSV VALIDATION REPORT\n\n"))
		fmt.Fprintf(w, "%s %s\n", tr.cs(colGrey, "Run:     "), tr.cs(colWhite, r.ID))
		fmt.Fprintf(w, "%s %s\n", tr.cs(colGrey, "Schema:  "), tr.cs(colWhite, r.SchemaPath))
		fmt.Fprintf(w, "%s %s\n", tr.cs(colGrey, "Started: "), tr.cs(colWhite, r.StartTime.Format("15:04:05")))
		fmt.Fprintf(w, "%s %s\n", tr.cs(colGrey, "Duration:"), tr.cs(colWhite, r.Duration().String()))
		fmt.Fprintf(w, "%s\n", divider)
	}

	for _, o := range r.Outcomes {
		if o.Passed() {
			fmt.Fprintf(w, "%s %s\n", tr.cs(colGreen, "[PASS]"), o.Label())
			continue
		}

		fmt.Fprintf(w, "%s %s\n", tr.cs(colRed, "[FAIL]"), tr.cs(colRed, o.Label()))
		if o.Err != nil {
			fmt.Fprintf(w, "  %s %v\n", tr.cs(colRed, "✗"), o.Err)
			continue
		}
		for _, s := range o.Result.Stacks() {
			fmt.Fprintf(w, "  %s %s\n", tr.cs(colRed, "✗"), s)
		}
	}

	summaryStats := fmt.Sprintf("%d passed, %d failed", r.Passed(), r.Failed())
	statsColor := colBoldGreen
	if r.Failed() > 0 {
		statsColor = colBoldRed
	}
	fmt.Fprintf(w, "%s\n", divider)
	fmt.Fprintf(w, "%s%s\n", tr.cs(colBoldWhite, "Summary: "), tr.cs(statsColor, summaryStats))

	return nil
}
