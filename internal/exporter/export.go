// Package exporter serializes a filtered view of the consolidated
// table for download, as CSV or as an Excel workbook. Column order is
// fixed: identifier, display name, cohort year, status, then the
// outcome flags in ascending numeric order.
package exporter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"

	"pctrack/pkg/contracts/domain"
)

// Header returns the export header row for the given outcome columns.
func Header(outcomeColumns []string) []string {
	header := []string{"ID", "Ad Soyad", "Yıl", "Durum"}
	return append(header, outcomeColumns...)
}

// row flattens one record in export column order.
func row(rec domain.StudentRecord, flags int) []string {
	out := make([]string, 0, 4+flags)
	out = append(out, rec.ID, rec.Name, rec.CohortYear, statusLabel(rec.Status))
	for i := 1; i <= flags; i++ {
		out = append(out, strconv.Itoa(rec.Outcome(i)))
	}
	return out
}

func statusLabel(s domain.Status) string {
	if s == domain.StatusGraduate {
		return "MEZUN"
	}
	return "ÖĞRENCİ"
}

// WriteCSV streams the records as CSV. A UTF-8 BOM is written first so
// Excel opens the Turkish names correctly.
func WriteCSV(w io.Writer, records []domain.StudentRecord, outcomeColumns []string) error {
	if _, err := w.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		return fmt.Errorf("failed to write BOM: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(Header(outcomeColumns)); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, rec := range records {
		if err := cw.Write(row(rec, len(outcomeColumns))); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteXLSX streams the records as a single-sheet Excel workbook.
func WriteXLSX(w io.Writer, records []domain.StudentRecord, outcomeColumns []string) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		return fmt.Errorf("failed to create stream writer: %w", err)
	}

	header := Header(outcomeColumns)
	headerCells := make([]interface{}, len(header))
	for i, h := range header {
		headerCells[i] = h
	}
	if err := sw.SetRow("A1", headerCells); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, rec := range records {
		values := row(rec, len(outcomeColumns))
		cells := make([]interface{}, len(values))
		for j, v := range values {
			cells[j] = v
		}
		anchor, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to compute cell name: %w", err)
		}
		if err := sw.SetRow(anchor, cells); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	if err := sw.Flush(); err != nil {
		return fmt.Errorf("failed to flush workbook: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
