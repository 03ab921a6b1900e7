// Package report writes the plain-text run summary that accompanies each
// processed file.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/alpdilgen/memoq-qa-resolver/internal/resolve"
)

// CategoryResult is one category's counters for the report.
type CategoryResult struct {
	Name  string
	Stats resolve.Stats
}

// Summary collects everything one run produced.
type Summary struct {
	SourcePath  string
	SavedPath   string
	Categories  []CategoryResult
	BulkIgnored int
}

// Write renders the summary into dir as report_<base>_<timestamp>.txt and
// returns the report path. Each report carries a fresh run id so reports
// from repeated runs over the same file stay distinguishable.
func Write(dir string, s Summary) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating report directory: %w", err)
	}

	now := time.Now()
	base := strings.TrimSuffix(filepath.Base(s.SourcePath), filepath.Ext(s.SourcePath))
	path := filepath.Join(dir, fmt.Sprintf("report_%s_%s.txt", base, now.Format("20060102_150405")))

	var b strings.Builder
	b.WriteString("QA Resolution Report\n")
	b.WriteString("====================\n\n")
	fmt.Fprintf(&b, "Run ID:    %s\n", uuid.NewString())
	fmt.Fprintf(&b, "Date:      %s\n", now.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "File:      %s\n", s.SourcePath)
	if s.SavedPath != "" {
		fmt.Fprintf(&b, "Saved to:  %s\n", s.SavedPath)
	}
	b.WriteString("\n")

	var total resolve.Stats
	for _, c := range s.Categories {
		total.Merge(c.Stats)
		fmt.Fprintf(&b, "%s\n", c.Name)
		fmt.Fprintf(&b, "  errors found: %d\n", c.Stats.Total)
		fmt.Fprintf(&b, "  fixed:        %d\n", c.Stats.Fixed)
		fmt.Fprintf(&b, "  ignored:      %d\n", c.Stats.Ignored)
		b.WriteString("\n")
	}

	b.WriteString("Totals\n")
	fmt.Fprintf(&b, "  errors found: %d\n", total.Total)
	fmt.Fprintf(&b, "  fixed:        %d\n", total.Fixed)
	fmt.Fprintf(&b, "  ignored:      %d\n", total.Ignored)
	if s.BulkIgnored > 0 {
		fmt.Fprintf(&b, "  remaining warnings ignored: %d\n", s.BulkIgnored)
	}

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return "", fmt.Errorf("writing report: %w", err)
	}
	return path, nil
}
