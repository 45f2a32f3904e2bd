package excel

import (
	"fmt"

	"sheetcheck/domain/sheet"
	"sheetcheck/internal/errors"

	"github.com/xuri/excelize/v2"
)

// SnapshotWriter writes fetched tables to a local xlsx workbook. Used by
// the sync action for one-way snapshot export; it never writes back to
// the source.
type SnapshotWriter struct{}

// NewSnapshotWriter creates a snapshot writer.
func NewSnapshotWriter() *SnapshotWriter {
	return &SnapshotWriter{}
}

// WriteSnapshot writes every table to its own sheet at path.
func (w *SnapshotWriter) WriteSnapshot(path string, tables []sheet.Table) error {
	if len(tables) == 0 {
		return errors.New("SNAPSHOT_EMPTY", "no tables to export")
	}

	f := excelize.NewFile()
	defer f.Close()

	for i, table := range tables {
		if i == 0 {
			// Reuse the default sheet for the first table
			if err := f.SetSheetName("Sheet1", table.Name); err != nil {
				return errors.Wrapf(err, "failed to name sheet %q", table.Name)
			}
		} else {
			if _, err := f.NewSheet(table.Name); err != nil {
				return errors.Wrapf(err, "failed to create sheet %q", table.Name)
			}
		}
		for rowIdx, row := range table.Rows {
			cells := make([]interface{}, len(row))
			for j, cell := range row {
				cells[j] = cell
			}
			axis := fmt.Sprintf("A%d", rowIdx+1)
			if err := f.SetSheetRow(table.Name, axis, &cells); err != nil {
				return errors.Wrapf(err, "failed to write row %d of sheet %q", rowIdx+1, table.Name)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return errors.Wrapf(err, "failed to save snapshot to %s", path)
	}
	return nil
}
