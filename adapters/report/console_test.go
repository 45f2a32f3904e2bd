package report

import (
	"bytes"
	"context"
	"testing"
	"time"

	"sheetcheck/domain/core"
	"sheetcheck/domain/similarity"
	"sheetcheck/domain/validate"
	"sheetcheck/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReport() *ports.PassReport {
	return &ports.PassReport{
		PassID:      core.NewPassID(),
		Workbook:    "alignment.xlsx",
		GeneratedAt: time.Date(2026, 8, 23, 10, 0, 0, 0, time.UTC),
		Categories: []ports.CategoryBlock{
			{
				Name:   "duplicate values for SDG Goal",
				Status: validate.StatusFail,
				Findings: []validate.Finding{
					{Key: "3", Details: []validate.Detail{
						{Value: "Goal 3", Row: 2},
						{Value: "Goal 3: Health", Row: 14},
					}},
				},
			},
			{Name: "duplicate values for SDG Target", Status: validate.StatusPass},
		},
		Similar: ports.SimilarityBlock{
			Status:    validate.StatusFail,
			Threshold: 0.7,
			Pairs: []similarity.Pair{{
				RowsA: []int{12, 47},
				TextA: "Percent of women in leadership",
				RowsB: []int{9},
				TextB: "Percentage of women in leadership roles",
				Score: 0.730,
			}},
			Suppressed: 2,
			Scores:     &ports.ScoreSummary{Count: 1, Mean: 0.73, Median: 0.73, Max: 0.73},
		},
	}
}

func TestConsoleSinkStatusLines(t *testing.T) {
	var buf bytes.Buffer
	sink := NewConsoleSink(&buf)

	require.NoError(t, sink.WriteReport(context.Background(), sampleReport()))
	out := buf.String()

	// Every category gets a status line before any detail
	assert.Contains(t, out, "Test for duplicate values for SDG Goal: Failed")
	assert.Contains(t, out, "Test for duplicate values for SDG Target: Passed")
	assert.Contains(t, out, "Goal 3: Health")
	assert.Contains(t, out, "Rows 12, 47")
	assert.Contains(t, out, "Similarity score = 0.730")
	assert.Contains(t, out, "2 pair(s) suppressed")
}

func TestMarkdownSinkRender(t *testing.T) {
	sink := NewMarkdownSink("", "")
	md := sink.render(sampleReport())

	assert.Contains(t, md, "# Validation report")
	assert.Contains(t, md, "## duplicate values for SDG Goal: Failed")
	assert.Contains(t, md, "| 3 | Goal 3 | 2 |")
	assert.Contains(t, md, "| 12, 47 |")
	assert.Contains(t, md, "0.730")
}
