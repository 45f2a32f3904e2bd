package postgres

import (
	"context"
	"encoding/json"
	"strings"

	"sheetcheck/internal/errors"
	"sheetcheck/ports"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

const schema = `
CREATE TABLE IF NOT EXISTS findings (
	id           BIGSERIAL PRIMARY KEY,
	pass_id      TEXT        NOT NULL,
	workbook     TEXT        NOT NULL,
	category     TEXT        NOT NULL,
	status       TEXT        NOT NULL,
	key          TEXT        NOT NULL DEFAULT '',
	detail       JSONB       NOT NULL DEFAULT '{}',
	generated_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS findings_pass_idx ON findings (pass_id);
`

const insertFinding = `
INSERT INTO findings (pass_id, workbook, category, status, key, detail, generated_at)
VALUES (:pass_id, :workbook, :category, :status, :key, :detail, :generated_at)`

// FindingsSink stores pass findings in Postgres. It is a report consumer
// like any other sink; the engine itself keeps no state between runs.
type FindingsSink struct {
	db *sqlx.DB
}

type findingRow struct {
	PassID      string `db:"pass_id"`
	Workbook    string `db:"workbook"`
	Category    string `db:"category"`
	Status      string `db:"status"`
	Key         string `db:"key"`
	Detail      []byte `db:"detail"`
	GeneratedAt string `db:"generated_at"`
}

// NewFindingsSink connects to dsn and ensures the findings table exists.
func NewFindingsSink(dsn string) (*FindingsSink, error) {
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to findings database")
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "failed to ensure findings schema")
	}
	return &FindingsSink{db: db}, nil
}

// Close releases the database connection.
func (s *FindingsSink) Close() error {
	return s.db.Close()
}

// WriteReport stores one row per finding and per similar pair, plus a
// summary row per category so Pass statuses are queryable too.
func (s *FindingsSink) WriteReport(ctx context.Context, rep *ports.PassReport) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "failed to begin findings transaction")
	}
	defer tx.Rollback()

	generatedAt := rep.GeneratedAt.Format("2006-01-02T15:04:05Z07:00")
	base := findingRow{
		PassID:      rep.PassID.String(),
		Workbook:    rep.Workbook,
		GeneratedAt: generatedAt,
	}

	for _, cat := range rep.Categories {
		row := base
		row.Category = cat.Name
		row.Status = string(cat.Status)
		if len(cat.Findings) == 0 {
			row.Detail = []byte(`{}`)
			if _, err := tx.NamedExecContext(ctx, insertFinding, row); err != nil {
				return errors.Wrapf(err, "failed to store %s summary", cat.Name)
			}
			continue
		}
		for _, finding := range cat.Findings {
			row.Key = finding.Key
			detail, err := json.Marshal(finding.Details)
			if err != nil {
				return errors.Wrapf(err, "failed to encode %s finding", cat.Name)
			}
			row.Detail = detail
			if _, err := tx.NamedExecContext(ctx, insertFinding, row); err != nil {
				return errors.Wrapf(err, "failed to store %s finding", cat.Name)
			}
		}
	}

	simRow := base
	simRow.Category = "similar indicator text"
	simRow.Status = string(rep.Similar.Status)
	if len(rep.Similar.Pairs) == 0 {
		simRow.Detail = []byte(`{}`)
		if _, err := tx.NamedExecContext(ctx, insertFinding, simRow); err != nil {
			return errors.Wrap(err, "failed to store similarity summary")
		}
	}
	for _, pair := range rep.Similar.Pairs {
		detail, err := json.Marshal(pair)
		if err != nil {
			return errors.Wrap(err, "failed to encode similarity pair")
		}
		simRow.Key = strings.TrimSpace(pair.TextA)
		simRow.Detail = detail
		if _, err := tx.NamedExecContext(ctx, insertFinding, simRow); err != nil {
			return errors.Wrap(err, "failed to store similarity pair")
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "failed to commit findings")
	}
	return nil
}
