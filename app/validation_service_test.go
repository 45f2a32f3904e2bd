package app

import (
	"context"
	"testing"

	"sheetcheck/domain/core"
	"sheetcheck/domain/sheet"
	"sheetcheck/domain/validate"
	"sheetcheck/internal"
	"sheetcheck/internal/config"
	"sheetcheck/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSource serves in-memory tables by sheet name
type fakeSource struct {
	tables map[string]sheet.Table
}

func (f *fakeSource) FetchTable(ctx context.Context, name string) (sheet.Table, error) {
	table, ok := f.tables[name]
	if !ok {
		return sheet.Table{}, core.NewFetchError(name, core.ErrSheetNotFound)
	}
	return table, nil
}

// captureSink records the report it was handed
type captureSink struct {
	report *ports.PassReport
}

func (c *captureSink) WriteReport(ctx context.Context, rep *ports.PassReport) error {
	c.report = rep
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		Source: config.SourceConfig{File: "test.xlsx"},
		Mapping: config.MappingSheet{
			Layout:      sheet.Layout{Sheet: "mapping", TitleRows: 2, MinWidth: 3},
			ConceptCol:  0,
			DirectCol:   1,
			IndirectCol: 2,
		},
		Metrics: config.MetricsSheet{
			Layout:       sheet.Layout{Sheet: "metrics", TitleRows: 1, MinWidth: 4},
			GoalCol:      0,
			TargetCol:    1,
			IndicatorCol: 2,
			StatusCol:    3,
		},
		Concepts: config.ConceptsSheet{
			Layout:     sheet.Layout{Sheet: "concepts", TitleRows: 1, MinWidth: 1},
			ConceptCol: 0,
		},
		Similarity: config.SimilarityConfig{Threshold: 0.7},
	}
}

func testTables() map[string]sheet.Table {
	return map[string]sheet.Table{
		"mapping": {Name: "mapping", Rows: []sheet.Row{
			{"Concepts", "Direct", "Indirect"},
			{"", "", ""},
			{"C1", "3.1\n3.2", "5.1"},
			{"C1", "3.2", "5.1"},
			{"C2", "bad:\n3.", "6.1"},
		}},
		"metrics": {Name: "metrics", Rows: []sheet.Row{
			{"Goal", "Target", "Indicator", "Status"},
			{"Goal 3", "3.1", "Percent of women in leadership", "complete"},
			{"Goal 3: Health", "3.1 Target", "Percentage of women in leadership roles", "complete"},
			{"Goal 4", "4.1", "Total energy consumed", ""},
		}},
		"concepts": {Name: "concepts", Rows: []sheet.Row{
			{"Concept Code"},
			{"C1"},
			{"C3"},
		}},
	}
}

func TestValidationPass(t *testing.T) {
	cfg := testConfig()
	sink := &captureSink{}
	svc := NewValidationService(&fakeSource{tables: testTables()}, cfg, internal.NewLogger(internal.LogLevelError), sink)

	rep, err := svc.Run(context.Background(), PassOptions{})
	require.NoError(t, err)
	require.NotNil(t, rep)
	assert.Same(t, rep, sink.report)
	assert.False(t, rep.PassID.String() == "")

	require.Len(t, rep.Categories, 7)
	byName := make(map[string]ports.CategoryBlock)
	for _, cat := range rep.Categories {
		byName[cat.Name] = cat
	}

	goals := byName["duplicate values for SDG Goal"]
	require.Equal(t, validate.StatusFail, goals.Status)
	require.Len(t, goals.Findings, 1)
	assert.Equal(t, "Goal", goals.Findings[0].Key)
	// Display rows carry the title-row offset
	assert.Equal(t, 2, goals.Findings[0].Details[0].Row)
	assert.Equal(t, 3, goals.Findings[0].Details[1].Row)

	targets := byName["duplicate values for SDG Target"]
	assert.Equal(t, validate.StatusFail, targets.Status)

	direct := byName["mismatched DirectTarget text (same concept code)"]
	require.Equal(t, validate.StatusFail, direct.Status)
	require.Len(t, direct.Findings, 1)
	assert.Equal(t, "C1", direct.Findings[0].Key)
	require.Len(t, direct.Findings[0].Details, 2)
	assert.Equal(t, 3, direct.Findings[0].Details[0].Row)
	assert.Equal(t, 4, direct.Findings[0].Details[1].Row)

	indirect := byName["mismatched IndirectTarget text (same concept code)"]
	assert.Equal(t, validate.StatusPass, indirect.Status)

	directSyntax := byName["DirectTarget identifier syntax"]
	require.Equal(t, validate.StatusFail, directSyntax.Status)
	require.Len(t, directSyntax.Findings, 1)
	assert.Equal(t, "3.", directSyntax.Findings[0].Key)

	indirectSyntax := byName["IndirectTarget identifier syntax"]
	assert.Equal(t, validate.StatusPass, indirectSyntax.Status)

	diff := byName["concept codes present in both sheets"]
	require.Equal(t, validate.StatusFail, diff.Status)
	keys := []string{diff.Findings[0].Key, diff.Findings[1].Key}
	assert.ElementsMatch(t, []string{"C2", "C3"}, keys)

	// Both leadership rows are marked complete, so the pair is suppressed
	assert.Equal(t, validate.StatusPass, rep.Similar.Status)
	assert.Empty(t, rep.Similar.Pairs)
	assert.Equal(t, 1, rep.Similar.Suppressed)
	assert.True(t, rep.Failed())
}

func TestValidationPassAllSimilar(t *testing.T) {
	cfg := testConfig()
	sink := &captureSink{}
	svc := NewValidationService(&fakeSource{tables: testTables()}, cfg, internal.NewLogger(internal.LogLevelError), sink)

	rep, err := svc.Run(context.Background(), PassOptions{AllSimilar: true})
	require.NoError(t, err)

	require.Equal(t, validate.StatusFail, rep.Similar.Status)
	require.Len(t, rep.Similar.Pairs, 1)
	pair := rep.Similar.Pairs[0]
	// Display rows: body rows 1 and 2 plus one title row
	assert.Equal(t, []int{2}, pair.RowsA)
	assert.Equal(t, []int{3}, pair.RowsB)
	assert.Equal(t, 0, rep.Similar.Suppressed)
	assert.Greater(t, pair.Score, 0.7)
	require.NotNil(t, rep.Similar.Scores)
	assert.Equal(t, 1, rep.Similar.Scores.Count)
}

func TestValidationPassFetchFailure(t *testing.T) {
	cfg := testConfig()
	tables := testTables()
	delete(tables, "concepts")
	svc := NewValidationService(&fakeSource{tables: tables}, cfg, internal.NewLogger(internal.LogLevelError))

	_, err := svc.Run(context.Background(), PassOptions{})
	require.Error(t, err)
	assert.True(t, core.IsFetchError(err))
}

func TestValidationPassMalformedRow(t *testing.T) {
	cfg := testConfig()
	tables := testTables()
	// Declare a wider schema than the data can satisfy even after padding
	cfg.Metrics.IndicatorCol = 9
	cfg.Metrics.Layout.MinWidth = 4

	svc := NewValidationService(&fakeSource{tables: tables}, cfg, internal.NewLogger(internal.LogLevelError))

	_, err := svc.Run(context.Background(), PassOptions{})
	require.Error(t, err)
	assert.True(t, core.IsMalformedRowError(err))
}
