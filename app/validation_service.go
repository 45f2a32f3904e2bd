package app

import (
	"context"
	"sort"
	"strings"
	"time"

	"sheetcheck/domain/core"
	"sheetcheck/domain/sheet"
	"sheetcheck/domain/similarity"
	"sheetcheck/domain/validate"
	"sheetcheck/internal"
	"sheetcheck/internal/config"
	apperrors "sheetcheck/internal/errors"
	"sheetcheck/ports"

	"github.com/montanaflynn/stats"
	"golang.org/x/sync/errgroup"
)

// PassOptions are the per-run knobs of a validation pass.
type PassOptions struct {
	// Exhaustive enables the deep similarity traversal (O(U^2)).
	Exhaustive bool
	// AllSimilar disables the reviewed-status suppression filter.
	AllSimilar bool
	// Threshold overrides the configured similarity threshold when > 0.
	Threshold float64
}

// ValidationService runs one synchronous validation pass over freshly
// fetched tables and hands the structured report to every sink. It holds
// no state between runs.
type ValidationService struct {
	source ports.TableSource
	sinks  []ports.ReportSink
	cfg    *config.Config
	log    *internal.Logger
}

// NewValidationService creates a validation service.
func NewValidationService(source ports.TableSource, cfg *config.Config, log *internal.Logger, sinks ...ports.ReportSink) *ValidationService {
	return &ValidationService{source: source, sinks: sinks, cfg: cfg, log: log}
}

// Run executes the pass: fetch, validate, assemble, report. Structural
// errors (fetch failure, malformed row) abort; everything else becomes a
// finding in the report.
func (s *ValidationService) Run(ctx context.Context, opts PassOptions) (*ports.PassReport, error) {
	started := time.Now()

	mapping, metrics, concepts, err := s.fetchAll(ctx)
	if err != nil {
		return nil, err
	}

	mappingBody, err := bodyOf(mapping, s.cfg.Mapping.Layout)
	if err != nil {
		return nil, err
	}
	metricsBody, err := bodyOf(metrics, s.cfg.Metrics.Layout)
	if err != nil {
		return nil, err
	}
	conceptsBody, err := bodyOf(concepts, s.cfg.Concepts.Layout)
	if err != nil {
		return nil, err
	}

	report := &ports.PassReport{
		PassID:      core.NewPassID(),
		Workbook:    s.cfg.Source.File,
		GeneratedAt: time.Now(),
	}

	if err := s.runCategories(report, mappingBody, metricsBody, conceptsBody); err != nil {
		return nil, err
	}
	if err := s.runSimilarity(report, metricsBody, opts); err != nil {
		return nil, err
	}

	s.log.Info("validation pass %s finished in %s (%d categories, %d similar pairs)",
		report.PassID, time.Since(started).Round(time.Millisecond), len(report.Categories), len(report.Similar.Pairs))

	for _, sink := range s.sinks {
		if err := sink.WriteReport(ctx, report); err != nil {
			return nil, apperrors.Wrap(err, "failed to render report")
		}
	}
	return report, nil
}

// fetchAll pulls the three configured worksheets concurrently. The fetch
// is the only latency-bearing step; the pass itself stays synchronous.
func (s *ValidationService) fetchAll(ctx context.Context) (mapping, metrics, concepts sheet.Table, err error) {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		mapping, err = s.source.FetchTable(gctx, s.cfg.Mapping.Layout.Sheet)
		return err
	})
	g.Go(func() error {
		var err error
		metrics, err = s.source.FetchTable(gctx, s.cfg.Metrics.Layout.Sheet)
		return err
	})
	g.Go(func() error {
		var err error
		concepts, err = s.source.FetchTable(gctx, s.cfg.Concepts.Layout.Sheet)
		return err
	})
	if err := g.Wait(); err != nil {
		return sheet.Table{}, sheet.Table{}, sheet.Table{}, err
	}
	return mapping, metrics, concepts, nil
}

// bodyOf applies the layout: pad ragged trailing cells to the declared
// width, verify the schema holds, and slice off the title rows.
func bodyOf(t sheet.Table, layout sheet.Layout) (sheet.Table, error) {
	padded := t.PadTo(layout.MinWidth)
	if err := padded.CheckWidth(layout.MinWidth); err != nil {
		return sheet.Table{}, err
	}
	return padded.Body(layout.TitleRows), nil
}

func (s *ValidationService) runCategories(report *ports.PassReport, mappingBody, metricsBody, conceptsBody sheet.Table) error {
	type categoryRun struct {
		name   string
		offset int
		run    func() ([]validate.Finding, error)
	}

	mappingOffset := s.cfg.Mapping.Layout.TitleRows
	metricsOffset := s.cfg.Metrics.Layout.TitleRows

	runs := []categoryRun{
		{"duplicate values for SDG Goal", metricsOffset, func() ([]validate.Finding, error) {
			return validate.FindDuplicates(metricsBody, s.cfg.Metrics.GoalCol)
		}},
		{"duplicate values for SDG Target", metricsOffset, func() ([]validate.Finding, error) {
			return validate.FindDuplicates(metricsBody, s.cfg.Metrics.TargetCol)
		}},
		{"mismatched DirectTarget text (same concept code)", mappingOffset, func() ([]validate.Finding, error) {
			return validate.CrossValidate(mappingBody, s.cfg.Mapping.ConceptCol, validate.ColumnExtractor(s.cfg.Mapping.DirectCol))
		}},
		{"mismatched IndirectTarget text (same concept code)", mappingOffset, func() ([]validate.Finding, error) {
			return validate.CrossValidate(mappingBody, s.cfg.Mapping.ConceptCol, validate.ColumnExtractor(s.cfg.Mapping.IndirectCol))
		}},
		{"DirectTarget identifier syntax", mappingOffset, func() ([]validate.Finding, error) {
			return validate.AuditTargetSyntax(mappingBody, s.cfg.Mapping.DirectCol)
		}},
		{"IndirectTarget identifier syntax", mappingOffset, func() ([]validate.Finding, error) {
			return validate.AuditTargetSyntax(mappingBody, s.cfg.Mapping.IndirectCol)
		}},
	}

	for _, cr := range runs {
		findings, err := cr.run()
		if err != nil {
			return apperrors.Wrapf(err, "category %q failed", cr.name)
		}
		shiftRows(findings, cr.offset)
		report.Categories = append(report.Categories, ports.CategoryBlock{
			Name:     cr.name,
			Status:   validate.StatusFor(findings),
			Findings: findings,
		})
	}

	return s.runSetDifference(report, mappingBody, conceptsBody)
}

func (s *ValidationService) runSetDifference(report *ports.PassReport, mappingBody, conceptsBody sheet.Table) error {
	onlyInConcepts, onlyInMapping, err := validate.DiffKeySets(mappingBody, conceptsBody, s.cfg.Mapping.ConceptCol)
	if err != nil {
		return apperrors.Wrap(err, "concept set difference failed")
	}

	var findings []validate.Finding
	for _, key := range sortedCopy(onlyInConcepts) {
		findings = append(findings, validate.Finding{
			Key:     key,
			Details: []validate.Detail{{Value: "missing from " + s.cfg.Mapping.Layout.Sheet}},
		})
	}
	for _, key := range sortedCopy(onlyInMapping) {
		findings = append(findings, validate.Finding{
			Key:     key,
			Details: []validate.Detail{{Value: "missing from " + s.cfg.Concepts.Layout.Sheet}},
		})
	}

	report.Categories = append(report.Categories, ports.CategoryBlock{
		Name:     "concept codes present in both sheets",
		Status:   validate.StatusFor(findings),
		Findings: findings,
	})
	return nil
}

func (s *ValidationService) runSimilarity(report *ports.PassReport, metricsBody sheet.Table, opts PassOptions) error {
	texts, err := metricsBody.Column(s.cfg.Metrics.IndicatorCol)
	if err != nil {
		return apperrors.Wrap(err, "indicator column extraction failed")
	}
	statuses, err := metricsBody.Column(s.cfg.Metrics.StatusCol)
	if err != nil {
		return apperrors.Wrap(err, "status column extraction failed")
	}

	threshold := s.cfg.Similarity.Threshold
	if opts.Threshold > 0 {
		threshold = opts.Threshold
	}

	pairs, truncated := similarity.FindSimilarPairs(texts, similarity.Options{
		Threshold:      threshold,
		Exhaustive:     opts.Exhaustive,
		MaxComparisons: s.cfg.Similarity.MaxComparisons,
	})

	kept := pairs[:0]
	suppressed := 0
	for _, pair := range pairs {
		if !opts.AllSimilar && allReviewed(pair, statuses) {
			suppressed++
			continue
		}
		kept = append(kept, pair)
	}
	pairs = kept

	offset := s.cfg.Metrics.Layout.TitleRows
	for i := range pairs {
		shiftInts(pairs[i].RowsA, offset)
		shiftInts(pairs[i].RowsB, offset)
	}

	block := ports.SimilarityBlock{
		Status:     validate.StatusPass,
		Threshold:  threshold,
		Exhaustive: opts.Exhaustive,
		Pairs:      pairs,
		Suppressed: suppressed,
		Truncated:  truncated,
	}
	if len(pairs) > 0 {
		block.Status = validate.StatusFail
		block.Scores = summarizeScores(pairs)
	}
	report.Similar = block
	return nil
}

// allReviewed reports whether every row contributing to the pair carries
// a reviewed/complete status. Rows here are 1-based body rows.
func allReviewed(pair similarity.Pair, statuses []string) bool {
	for _, rows := range [][]int{pair.RowsA, pair.RowsB} {
		for _, row := range rows {
			if row < 1 || row > len(statuses) {
				return false
			}
			switch strings.ToLower(strings.TrimSpace(statuses[row-1])) {
			case "complete", "reviewed", "done":
			default:
				return false
			}
		}
	}
	return true
}

func summarizeScores(pairs []similarity.Pair) *ports.ScoreSummary {
	scores := make([]float64, len(pairs))
	for i, pair := range pairs {
		scores[i] = pair.Score
	}
	mean, _ := stats.Mean(scores)
	median, _ := stats.Median(scores)
	max, _ := stats.Max(scores)
	return &ports.ScoreSummary{Count: len(scores), Mean: mean, Median: median, Max: max}
}

func shiftRows(findings []validate.Finding, offset int) {
	if offset == 0 {
		return
	}
	for i := range findings {
		for j := range findings[i].Details {
			if findings[i].Details[j].Row > 0 {
				findings[i].Details[j].Row += offset
			}
		}
	}
}

func shiftInts(rows []int, offset int) {
	for i := range rows {
		rows[i] += offset
	}
}

func sortedCopy(keys []string) []string {
	out := append([]string(nil), keys...)
	sort.Strings(out)
	return out
}
