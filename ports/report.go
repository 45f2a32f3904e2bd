package ports

import (
	"context"
	"time"

	"sheetcheck/domain/core"
	"sheetcheck/domain/similarity"
	"sheetcheck/domain/validate"
)

// ReportSink renders one pass report. The engine has no knowledge of the
// rendering format; console, markdown, spreadsheet and database sinks all
// consume the same structure.
type ReportSink interface {
	WriteReport(ctx context.Context, report *PassReport) error
}

// CategoryBlock is one validation category with its status and findings.
type CategoryBlock struct {
	Name     string             `json:"name"`
	Status   validate.Status    `json:"status"`
	Findings []validate.Finding `json:"findings,omitempty"`
}

// SimilarityBlock carries the near-duplicate text results of a pass.
type SimilarityBlock struct {
	Status     validate.Status   `json:"status"`
	Threshold  float64           `json:"threshold"`
	Exhaustive bool              `json:"exhaustive"`
	Pairs      []similarity.Pair `json:"pairs,omitempty"`
	// Suppressed counts pairs hidden by the reviewed-status filter.
	Suppressed int `json:"suppressed"`
	// Truncated is set when the comparison budget cut the search short.
	Truncated bool          `json:"truncated"`
	Scores    *ScoreSummary `json:"scores,omitempty"`
}

// ScoreSummary describes the distribution of reported similarity scores.
type ScoreSummary struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Max    float64 `json:"max"`
}

// PassReport is the complete structured output of one validation pass.
// Built fresh per pass, append-only, discarded after rendering.
type PassReport struct {
	PassID      core.PassID     `json:"pass_id"`
	Workbook    string          `json:"workbook"`
	GeneratedAt time.Time       `json:"generated_at"`
	Categories  []CategoryBlock `json:"categories"`
	Similar     SimilarityBlock `json:"similar"`
}

// Failed reports whether any category or the similarity block failed.
func (r *PassReport) Failed() bool {
	for _, cat := range r.Categories {
		if cat.Status == validate.StatusFail {
			return true
		}
	}
	return r.Similar.Status == validate.StatusFail
}
