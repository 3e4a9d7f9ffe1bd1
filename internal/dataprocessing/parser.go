package dataprocessing

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Sheet pairs a sheet name with its parsed table. Table is nil for
// sheets with no usable rows.
type Sheet struct {
	Name  string
	Table *Table
}

// ReadWorkbook opens an Excel workbook and parses every sheet into a
// table, preserving sheet order. Parsing treats the workbook as opaque
// tabular data; no schema is assumed beyond a header row.
func ReadWorkbook(path string) ([]Sheet, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	var sheets []Sheet
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, fmt.Errorf("failed to read sheet %s: %w", name, err)
		}
		sheets = append(sheets, Sheet{Name: name, Table: NewTable(rows)})
	}

	return sheets, nil
}
