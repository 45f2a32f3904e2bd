package report

import (
	"context"
	"fmt"
	"os"
	"strings"

	"sheetcheck/internal/errors"
	"sheetcheck/ports"

	"github.com/gomarkdown/markdown"
)

// MarkdownSink renders a pass report to a markdown file, optionally also
// converting it to a standalone HTML file.
type MarkdownSink struct {
	Path     string
	HTMLPath string
}

// NewMarkdownSink creates a markdown sink. htmlPath may be empty.
func NewMarkdownSink(path, htmlPath string) *MarkdownSink {
	return &MarkdownSink{Path: path, HTMLPath: htmlPath}
}

// WriteReport renders the report to the configured files.
func (s *MarkdownSink) WriteReport(ctx context.Context, rep *ports.PassReport) error {
	md := s.render(rep)

	if s.Path != "" {
		if err := os.WriteFile(s.Path, []byte(md), 0o644); err != nil {
			return errors.Wrapf(err, "failed to write markdown report to %s", s.Path)
		}
	}
	if s.HTMLPath != "" {
		html := markdown.ToHTML([]byte(md), nil, nil)
		if err := os.WriteFile(s.HTMLPath, html, 0o644); err != nil {
			return errors.Wrapf(err, "failed to write HTML report to %s", s.HTMLPath)
		}
	}
	return nil
}

func (s *MarkdownSink) render(rep *ports.PassReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Validation report\n\n")
	fmt.Fprintf(&b, "- Pass: `%s`\n- Workbook: `%s`\n- Generated: %s\n\n",
		rep.PassID, rep.Workbook, rep.GeneratedAt.Format("2006-01-02 15:04:05"))

	for _, cat := range rep.Categories {
		fmt.Fprintf(&b, "## %s: %s\n\n", cat.Name, cat.Status)
		if len(cat.Findings) == 0 {
			continue
		}
		fmt.Fprintf(&b, "| Key | Value | Row |\n|---|---|---|\n")
		for _, finding := range cat.Findings {
			for _, d := range finding.Details {
				value := d.Value
				if len(d.Values) > 0 {
					value = strings.Join(d.Values, ", ")
				}
				fmt.Fprintf(&b, "| %s | %s | %d |\n", finding.Key, escapePipes(value), d.Row)
			}
		}
		fmt.Fprintf(&b, "\n")
	}

	sim := rep.Similar
	mode := "fast"
	if sim.Exhaustive {
		mode = "deep"
	}
	fmt.Fprintf(&b, "## Similar indicator text (%s, threshold %.2f): %s\n\n", mode, sim.Threshold, sim.Status)
	if sim.Suppressed > 0 {
		fmt.Fprintf(&b, "%d pair(s) suppressed by review status.\n\n", sim.Suppressed)
	}
	if sim.Truncated {
		fmt.Fprintf(&b, "Comparison budget exhausted; results incomplete.\n\n")
	}
	if len(sim.Pairs) > 0 {
		fmt.Fprintf(&b, "| Rows A | Text A | Rows B | Text B | Score |\n|---|---|---|---|---|\n")
		for _, pair := range sim.Pairs {
			fmt.Fprintf(&b, "| %s | %s | %s | %s | %.3f |\n",
				joinRows(pair.RowsA), escapePipes(pair.TextA),
				joinRows(pair.RowsB), escapePipes(pair.TextB), pair.Score)
		}
		fmt.Fprintf(&b, "\n")
	}
	if sim.Scores != nil && sim.Scores.Count > 0 {
		fmt.Fprintf(&b, "Scores: count=%d mean=%.3f median=%.3f max=%.3f\n",
			sim.Scores.Count, sim.Scores.Mean, sim.Scores.Median, sim.Scores.Max)
	}
	return b.String()
}

func escapePipes(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.ReplaceAll(s, "|", "\\|")
}
