package dataprocessing

// Table is the in-memory form of one parsed sheet: a header row and the
// data rows below it, every row padded or truncated to the header width.
// It only lives for the duration of one extraction pass.
type Table struct {
	Headers []string
	Rows    [][]string
}

// NewTable builds a Table from raw sheet rows as returned by excelize.
// The first row is taken as the header. Returns nil when the sheet has
// no header or no data rows at all.
func NewTable(rows [][]string) *Table {
	if len(rows) < 2 {
		return nil
	}

	headers := rows[0]
	if len(headers) == 0 {
		return nil
	}

	data := make([][]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		padded := make([]string, len(headers))
		copy(padded, row)
		data = append(data, padded)
	}

	return &Table{Headers: headers, Rows: data}
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// Cell returns the value at the given row and column, or "" when the
// indices are out of range.
func (t *Table) Cell(row, col int) string {
	if row < 0 || row >= len(t.Rows) || col < 0 || col >= len(t.Rows[row]) {
		return ""
	}
	return t.Rows[row][col]
}

// Column returns all values of one column in row order.
func (t *Table) Column(col int) []string {
	values := make([]string, len(t.Rows))
	for i := range t.Rows {
		values[i] = t.Cell(i, col)
	}
	return values
}
