package app

import (
	"context"

	"sheetcheck/domain/sheet"
	"sheetcheck/internal"
	"sheetcheck/internal/config"
	apperrors "sheetcheck/internal/errors"
	"sheetcheck/ports"
)

// SyncService exports a one-way snapshot of the configured worksheets to
// a local workbook. Two-way synchronization is deliberately out of scope;
// the export never writes back to the source.
type SyncService struct {
	source ports.TableSource
	writer ports.SnapshotWriter
	cfg    *config.Config
	log    *internal.Logger
}

// NewSyncService creates a sync service.
func NewSyncService(source ports.TableSource, writer ports.SnapshotWriter, cfg *config.Config, log *internal.Logger) *SyncService {
	return &SyncService{source: source, writer: writer, cfg: cfg, log: log}
}

// Export fetches every configured sheet and writes them to outPath.
func (s *SyncService) Export(ctx context.Context, outPath string) error {
	names := []string{
		s.cfg.Mapping.Layout.Sheet,
		s.cfg.Metrics.Layout.Sheet,
		s.cfg.Concepts.Layout.Sheet,
	}

	tables := make([]sheet.Table, 0, len(names))
	for _, name := range names {
		table, err := s.source.FetchTable(ctx, name)
		if err != nil {
			return err
		}
		tables = append(tables, table)
	}

	if err := s.writer.WriteSnapshot(outPath, tables); err != nil {
		return apperrors.Wrapf(err, "snapshot export to %s failed", outPath)
	}
	s.log.Info("exported %d sheet(s) to %s", len(tables), outPath)
	return nil
}
