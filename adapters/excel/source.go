package excel

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"

	"sheetcheck/domain/core"
	"sheetcheck/domain/sheet"

	"github.com/xuri/excelize/v2"
)

// WorkbookSource fetches worksheets from a local xlsx or csv file and
// implements ports.TableSource. A csv file is a single-table workbook;
// the requested name is accepted as-is since csv carries no sheet names.
type WorkbookSource struct {
	path     string
	fileType string // "xlsx" or "csv"
}

// NewWorkbookSource creates a source for the given workbook path.
func NewWorkbookSource(path string) *WorkbookSource {
	fileType := "xlsx"
	if strings.ToLower(filepath.Ext(path)) == ".csv" {
		fileType = "csv"
	}
	return &WorkbookSource{path: path, fileType: fileType}
}

// FetchTable reads all rows of the named worksheet as an ordered sequence
// of string-cell rows. Failures carry the sheet name and abort the pass.
func (s *WorkbookSource) FetchTable(ctx context.Context, name string) (sheet.Table, error) {
	if err := ctx.Err(); err != nil {
		return sheet.Table{}, core.NewFetchError(name, err)
	}
	if _, err := os.Stat(s.path); err != nil {
		return sheet.Table{}, core.NewFetchError(name, err)
	}

	switch s.fileType {
	case "csv":
		return s.fetchCSV(name)
	default:
		return s.fetchXLSX(name)
	}
}

func (s *WorkbookSource) fetchXLSX(name string) (sheet.Table, error) {
	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return sheet.Table{}, core.NewFetchError(name, err)
	}
	defer f.Close()

	idx, err := f.GetSheetIndex(name)
	if err != nil || idx < 0 {
		return sheet.Table{}, core.NewFetchError(name, core.ErrSheetNotFound)
	}

	rows, err := f.GetRows(name)
	if err != nil {
		return sheet.Table{}, core.NewFetchError(name, err)
	}
	return toTable(name, rows), nil
}

func (s *WorkbookSource) fetchCSV(name string) (sheet.Table, error) {
	file, err := os.Open(s.path)
	if err != nil {
		return sheet.Table{}, core.NewFetchError(name, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	// Worksheet exports are ragged; do not enforce a uniform field count.
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return sheet.Table{}, core.NewFetchError(name, err)
	}
	return toTable(name, rows), nil
}

func toTable(name string, rows [][]string) sheet.Table {
	t := sheet.Table{Name: name, Rows: make([]sheet.Row, len(rows))}
	for i, row := range rows {
		t.Rows[i] = sheet.Row(row)
	}
	return t
}
