package ports

import (
	"context"

	"sheetcheck/domain/sheet"
)

// TableSource fetches a fully-materialized worksheet by name. The source
// owns connectivity and credentials; the engine only ever sees in-memory
// tables. A fetch failure is terminal for the pass.
type TableSource interface {
	FetchTable(ctx context.Context, name string) (sheet.Table, error)
}

// SnapshotWriter writes fetched tables to a local workbook. Used by the
// sync action's one-way export.
type SnapshotWriter interface {
	WriteSnapshot(path string, tables []sheet.Table) error
}
