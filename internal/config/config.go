package config

import (
	"os"
	"strconv"

	"sheetcheck/domain/sheet"
	"sheetcheck/internal/errors"

	"github.com/joho/godotenv"
)

// Config represents the complete application configuration
type Config struct {
	Source     SourceConfig
	Mapping    MappingSheet
	Metrics    MetricsSheet
	Concepts   ConceptsSheet
	Similarity SimilarityConfig
	Database   DatabaseConfig
}

// SourceConfig identifies the workbook to validate
type SourceConfig struct {
	// File is the xlsx or csv workbook path.
	File string
}

// MappingSheet describes the concept-to-target mapping worksheet.
// Column indexes are 0-based and explicit; the layout's minimum width is
// checked before any validator touches the table.
type MappingSheet struct {
	Layout      sheet.Layout
	ConceptCol  int
	DirectCol   int
	IndirectCol int
}

// MetricsSheet describes the metrics worksheet carrying goals, targets,
// indicator text and the review-status companion column.
type MetricsSheet struct {
	Layout       sheet.Layout
	GoalCol      int
	TargetCol    int
	IndicatorCol int
	StatusCol    int
}

// ConceptsSheet describes the concept-definition worksheet used for the
// set-difference check against the mapping sheet.
type ConceptsSheet struct {
	Layout     sheet.Layout
	ConceptCol int
}

// SimilarityConfig holds text-similarity settings
type SimilarityConfig struct {
	Threshold      float64
	MaxComparisons int
}

// DatabaseConfig holds the optional findings-sink connection
type DatabaseConfig struct {
	DSN string
}

// Load reads configuration from environment variables, with .env support,
// and validates it.
func Load() (*Config, error) {
	// Best effort; missing .env is fine
	_ = godotenv.Load()

	cfg := &Config{
		Source: SourceConfig{
			File: getEnv("SHEETCHECK_FILE", ""),
		},
		Mapping: MappingSheet{
			Layout: sheet.Layout{
				Sheet:     getEnv("SHEETCHECK_MAPPING_SHEET", "BIA to SDG mapping"),
				TitleRows: 2,
				MinWidth:  34,
			},
			ConceptCol:  0,
			DirectCol:   32,
			IndirectCol: 33,
		},
		Metrics: MetricsSheet{
			Layout: sheet.Layout{
				Sheet:     getEnv("SHEETCHECK_METRICS_SHEET", "SDG Compass Metrics"),
				TitleRows: 1,
				MinWidth:  7,
			},
			GoalCol:      0,
			TargetCol:    1,
			IndicatorCol: 5,
			StatusCol:    6,
		},
		Concepts: ConceptsSheet{
			Layout: sheet.Layout{
				Sheet:     getEnv("SHEETCHECK_CONCEPTS_SHEET", "Concepts"),
				TitleRows: 1,
				MinWidth:  1,
			},
			ConceptCol: 0,
		},
		Similarity: SimilarityConfig{
			Threshold:      getEnvFloat("SHEETCHECK_THRESHOLD", 0.7),
			MaxComparisons: getEnvInt("SHEETCHECK_MAX_COMPARISONS", 0),
		},
		Database: DatabaseConfig{
			DSN: getEnv("DATABASE_URL", ""),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return cfg, nil
}

// Validate checks layouts and value ranges
func (c *Config) Validate() error {
	for _, layout := range []sheet.Layout{c.Mapping.Layout, c.Metrics.Layout, c.Concepts.Layout} {
		if err := layout.Validate(); err != nil {
			return err
		}
	}
	if c.Similarity.Threshold <= 0 || c.Similarity.Threshold >= 1 {
		return errors.New("CONFIG_INVALID", "similarity threshold must be in (0,1)")
	}
	if c.Similarity.MaxComparisons < 0 {
		return errors.New("CONFIG_INVALID", "max comparisons cannot be negative")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
