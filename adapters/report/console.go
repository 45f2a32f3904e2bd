package report

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"sheetcheck/ports"
)

// Cursor tracks where the console writer is inside the report: section
// numbering and emitted line count. It is owned by the writer and passed
// through every write helper, keeping rendering state out of the
// validation logic entirely.
type Cursor struct {
	Section int
	Lines   int
}

// ConsoleSink renders a pass report as plain text with aligned detail
// tables. Every category prints its Pass/Fail line before any detail.
type ConsoleSink struct {
	out io.Writer
}

// NewConsoleSink creates a console sink writing to out.
func NewConsoleSink(out io.Writer) *ConsoleSink {
	return &ConsoleSink{out: out}
}

// WriteReport renders the full report.
func (s *ConsoleSink) WriteReport(ctx context.Context, rep *ports.PassReport) error {
	cur := &Cursor{}
	s.printf(cur, "Validation pass %s on %q\n", rep.PassID, rep.Workbook)
	s.printf(cur, "Generated at %s\n", rep.GeneratedAt.Format("2006-01-02 15:04:05"))

	for _, cat := range rep.Categories {
		s.writeCategory(cur, cat)
	}
	s.writeSimilarity(cur, rep.Similar)

	s.printf(cur, "\n%d sections, %d lines\n", cur.Section, cur.Lines)
	return nil
}

func (s *ConsoleSink) writeCategory(cur *Cursor, cat ports.CategoryBlock) {
	cur.Section++
	s.printf(cur, "\nTest for %s: %s\n", cat.Name, cat.Status)
	if len(cat.Findings) == 0 {
		return
	}

	tw := tabwriter.NewWriter(s.out, 2, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "Key\tValue\tRow")
	cur.Lines++
	for _, finding := range cat.Findings {
		for _, d := range finding.Details {
			value := d.Value
			if len(d.Values) > 0 {
				value = strings.Join(d.Values, ", ")
			}
			fmt.Fprintf(tw, "%s\t%s\t%d\n", finding.Key, value, d.Row)
			cur.Lines++
		}
	}
	tw.Flush()
}

func (s *ConsoleSink) writeSimilarity(cur *Cursor, sim ports.SimilarityBlock) {
	cur.Section++
	mode := "fast"
	if sim.Exhaustive {
		mode = "deep"
	}
	s.printf(cur, "\nTest for similar indicator text (%s, threshold %.2f): %s\n", mode, sim.Threshold, sim.Status)
	if sim.Suppressed > 0 {
		s.printf(cur, "(%d pair(s) suppressed by review status)\n", sim.Suppressed)
	}
	if sim.Truncated {
		s.printf(cur, "(comparison budget exhausted; results incomplete)\n")
	}

	for _, pair := range sim.Pairs {
		s.printf(cur, "\n Rows %s:\n'%s'\n ----\n Rows %s:\n'%s'\n Similarity score = %.3f\n",
			joinRows(pair.RowsA), pair.TextA, joinRows(pair.RowsB), pair.TextB, pair.Score)
	}

	if sim.Scores != nil && sim.Scores.Count > 0 {
		s.printf(cur, "\nScores: count=%d mean=%.3f median=%.3f max=%.3f\n",
			sim.Scores.Count, sim.Scores.Mean, sim.Scores.Median, sim.Scores.Max)
	}
}

func (s *ConsoleSink) printf(cur *Cursor, format string, args ...interface{}) {
	text := fmt.Sprintf(format, args...)
	cur.Lines += strings.Count(text, "\n")
	fmt.Fprint(s.out, text)
}

func joinRows(rows []int) string {
	sorted := append([]int(nil), rows...)
	sort.Ints(sorted)
	parts := make([]string, len(sorted))
	for i, r := range sorted {
		parts[i] = fmt.Sprint(r)
	}
	return strings.Join(parts, ", ")
}
