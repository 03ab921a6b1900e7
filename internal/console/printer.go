package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/alpdilgen/memoq-qa-resolver/internal/detect"
	"github.com/alpdilgen/memoq-qa-resolver/internal/resolve"
)

// Printer renders read-only scan results and run summaries.
type Printer struct {
	out io.Writer
}

// NewPrinter creates a printer writing to out.
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// ScanHeader prints the banner for a scan of one file.
func (p *Printer) ScanHeader(path string, units int) {
	fmt.Fprintln(p.out, headerStyle.Render("Scanning "+path))
	fmt.Fprintf(p.out, "%s %d\n", labelStyle.Render("Translation units:"), units)
}

// CategoryFindings prints one category's findings without mutating anything.
func (p *Printer) CategoryFindings(category string, findings []detect.Finding) {
	fmt.Fprintln(p.out)
	fmt.Fprintln(p.out, headerStyle.Render(fmt.Sprintf("%s: %d error(s)", category, len(findings))))

	for i, f := range findings {
		fmt.Fprintf(p.out, "%s segment %s\n",
			labelStyle.Render(fmt.Sprintf("%d.", i+1)), f.Unit.ID())
		fmt.Fprintf(p.out, "   %s %s\n", mutedStyle.Render("source:"), sourceStyle.Render(f.Unit.SourceText()))
		fmt.Fprintf(p.out, "   %s %s\n", mutedStyle.Render("target:"), targetStyle.Render(f.Unit.TargetText()))

		if f.Term != nil {
			fmt.Fprintf(p.out, "   %s %q -> %s\n", mutedStyle.Render("term:"),
				f.Term.SourceTerm, strings.Join(f.Term.TargetSuggestions, ", "))
		}
		if f.Consistency != nil {
			fmt.Fprintf(p.out, "   %s %q vs %q\n", mutedStyle.Render("wording:"),
				f.Consistency.ConsistentText, f.Consistency.InconsistentText)
			if len(f.Consistency.RelatedSegments) > 0 {
				fmt.Fprintf(p.out, "   %s %s\n", mutedStyle.Render("related:"),
					strings.Join(f.Consistency.RelatedSegments, ", "))
			}
		}
	}
}

// CategorySummary prints the post-resolution counters for one category.
func (p *Printer) CategorySummary(category string, stats resolve.Stats) {
	fmt.Fprintf(p.out, "%s total %d, fixed %s, ignored %s\n",
		labelStyle.Render(category+":"),
		stats.Total,
		fixStyle.Render(fmt.Sprintf("%d", stats.Fixed)),
		mutedStyle.Render(fmt.Sprintf("%d", stats.Ignored)))
}

// RunSummary prints the combined counters and where results were written.
func (p *Printer) RunSummary(total resolve.Stats, bulkIgnored int, savedPath, reportPath string) {
	fmt.Fprintln(p.out)
	fmt.Fprintln(p.out, headerStyle.Render("Run complete"))
	fmt.Fprintf(p.out, "%s %d processed, %d fixed, %d ignored\n",
		labelStyle.Render("Errors:"), total.Total, total.Fixed, total.Ignored)
	if bulkIgnored > 0 {
		fmt.Fprintf(p.out, "%s %d\n", labelStyle.Render("Remaining warnings ignored:"), bulkIgnored)
	}
	if savedPath != "" {
		fmt.Fprintf(p.out, "%s %s\n", labelStyle.Render("Saved:"), savedPath)
	}
	if reportPath != "" {
		fmt.Fprintf(p.out, "%s %s\n", labelStyle.Render("Report:"), reportPath)
	}
}

// Notice prints a one-line informational message.
func (p *Printer) Notice(msg string) {
	fmt.Fprintln(p.out, mutedStyle.Render(msg))
}
