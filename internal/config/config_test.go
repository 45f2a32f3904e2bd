package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SHEETCHECK_FILE", "alignment.xlsx")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "alignment.xlsx", cfg.Source.File)
	assert.Equal(t, "BIA to SDG mapping", cfg.Mapping.Layout.Sheet)
	assert.Equal(t, 2, cfg.Mapping.Layout.TitleRows)
	assert.Equal(t, 32, cfg.Mapping.DirectCol)
	assert.Equal(t, 33, cfg.Mapping.IndirectCol)
	assert.Equal(t, "SDG Compass Metrics", cfg.Metrics.Layout.Sheet)
	assert.Equal(t, 1, cfg.Metrics.Layout.TitleRows)
	assert.Equal(t, 5, cfg.Metrics.IndicatorCol)
	assert.InDelta(t, 0.7, cfg.Similarity.Threshold, 1e-9)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SHEETCHECK_THRESHOLD", "0.85")
	t.Setenv("SHEETCHECK_MAX_COMPARISONS", "5000")
	t.Setenv("SHEETCHECK_MAPPING_SHEET", "Mapping v2")

	cfg, err := Load()
	require.NoError(t, err)

	assert.InDelta(t, 0.85, cfg.Similarity.Threshold, 1e-9)
	assert.Equal(t, 5000, cfg.Similarity.MaxComparisons)
	assert.Equal(t, "Mapping v2", cfg.Mapping.Layout.Sheet)
}

func TestLoadRejectsBadThreshold(t *testing.T) {
	t.Setenv("SHEETCHECK_THRESHOLD", "1.5")

	_, err := Load()
	require.Error(t, err)
}
