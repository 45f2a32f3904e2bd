package sheet

import (
	"sheetcheck/domain/core"
)

// Row is one spreadsheet row as an ordered sequence of string cells.
// Column meaning is positional; rows are treated as read-only once fetched.
type Row []string

// Table is an ordered sequence of rows fetched from one worksheet.
type Table struct {
	Name string
	Rows []Row
}

// Layout describes the externally-known shape of a worksheet: how many
// leading title rows to skip and the minimum row width the validators
// are allowed to index into. Column indexes for a given workbook live in
// configuration, next to the layout they belong to.
type Layout struct {
	Sheet     string
	TitleRows int
	MinWidth  int
}

// Validate checks a layout for obviously broken values.
func (l Layout) Validate() error {
	if l.Sheet == "" {
		return core.NewLayoutError(l.Sheet, "empty sheet name")
	}
	if l.TitleRows < 0 || l.TitleRows > 2 {
		return core.NewLayoutError(l.Sheet, "title rows must be 0, 1 or 2")
	}
	if l.MinWidth < 1 {
		return core.NewLayoutError(l.Sheet, "minimum width must be at least 1")
	}
	return nil
}

// Cell returns the cell at (rowIdx, col). rowIdx is 0-based within the
// table. A row shorter than col+1 is a structural error, never silently
// coerced to an empty value.
func (t Table) Cell(rowIdx, col int) (string, error) {
	row := t.Rows[rowIdx]
	if col >= len(row) {
		return "", core.NewMalformedRowError(t.Name, rowIdx+1, len(row), col)
	}
	return row[col], nil
}

// Column extracts one column across all rows. Fails on the first row too
// short to carry the column.
func (t Table) Column(col int) ([]string, error) {
	out := make([]string, len(t.Rows))
	for i := range t.Rows {
		cell, err := t.Cell(i, col)
		if err != nil {
			return nil, err
		}
		out[i] = cell
	}
	return out, nil
}

// Body returns the table with the leading title rows sliced off.
// Row numbers reported against the body are relative to the body; callers
// add titleRows back when building display row numbers.
func (t Table) Body(titleRows int) Table {
	if titleRows <= 0 {
		return t
	}
	if titleRows >= len(t.Rows) {
		return Table{Name: t.Name}
	}
	return Table{Name: t.Name, Rows: t.Rows[titleRows:]}
}

// PadTo pads every row shorter than width with trailing empty cells and
// returns the padded table. Spreadsheet backends return ragged rows when
// trailing cells are blank; padding to the declared layout width makes
// that explicit instead of leaving it to each validator.
func (t Table) PadTo(width int) Table {
	padded := Table{Name: t.Name, Rows: make([]Row, len(t.Rows))}
	for i, row := range t.Rows {
		if len(row) >= width {
			padded.Rows[i] = row
			continue
		}
		wide := make(Row, width)
		copy(wide, row)
		padded.Rows[i] = wide
	}
	return padded
}

// CheckWidth verifies every row carries at least width cells.
func (t Table) CheckWidth(width int) error {
	for i, row := range t.Rows {
		if len(row) < width {
			return core.NewMalformedRowError(t.Name, i+1, len(row), width-1)
		}
	}
	return nil
}
