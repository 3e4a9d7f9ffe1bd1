package dataprocessing

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"pctrack/internal/config"
	"pctrack/pkg/contracts/domain"
)

func testConsolidator(t *testing.T) *Consolidator {
	t.Helper()
	return NewConsolidator(config.PipelineConfig{
		MinIDLength:    7,
		OutcomeFlags:   11,
		RosterFileName: "MEZUN_LISTESI.xlsx",
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

type fixtureSheet struct {
	name string
	rows [][]interface{}
}

// writeWorkbook builds a real .xlsx fixture with the given sheets.
func writeWorkbook(t *testing.T, path string, sheets ...fixtureSheet) {
	t.Helper()

	f := excelize.NewFile()
	for i, sheet := range sheets {
		if i == 0 {
			f.SetSheetName(f.GetSheetName(0), sheet.name)
		} else {
			_, err := f.NewSheet(sheet.name)
			require.NoError(t, err)
		}
		for rowIdx, row := range sheet.rows {
			cell, err := excelize.CoordinatesToCellName(1, rowIdx+1)
			require.NoError(t, err)
			require.NoError(t, f.SetSheetRow(sheet.name, cell, &row))
		}
	}
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())
}

func TestRunEndToEnd(t *testing.T) {
	dir := t.TempDir()

	writeWorkbook(t, filepath.Join(dir, "ders1.xlsx"), fixtureSheet{
		name: "Sayfa1",
		rows: [][]interface{}{
			{"Öğrenci No", "Ad Soyad", "PÇ1", "PÇ2"},
			{"123456789", "Ali Veli", 1, 0},
		},
	})
	writeWorkbook(t, filepath.Join(dir, "ders2.xlsx"), fixtureSheet{
		name: "Sheet1",
		rows: [][]interface{}{
			{"Student Number", "Name", "PC2", "PC3"},
			{"123456789", "ALI VELI", 1, 1},
		},
	})

	result, err := testConsolidator(t).Run(dir)
	require.NoError(t, err)

	require.Len(t, result.Records, 1)
	rec := result.Records[0]

	assert.Equal(t, "123456789", rec.ID)
	assert.Equal(t, "Ali Veli", rec.Name)
	assert.Equal(t, domain.StatusActive, rec.Status)
	assert.Equal(t, "2023", rec.CohortYear)

	assert.Equal(t, 1, rec.Outcome(1))
	assert.Equal(t, 1, rec.Outcome(2), "flag satisfied in either file must survive the merge")
	assert.Equal(t, 1, rec.Outcome(3))
	for n := 4; n <= 11; n++ {
		assert.Equal(t, 0, rec.Outcome(n), "PC%d never observed, must be zero-filled", n)
	}
	assert.Len(t, rec.Outcomes, 11)

	assert.Equal(t, 2, result.Report.FilesSeen)
	assert.Equal(t, 2, result.Report.SheetsUsed)
}

func TestRunNoDuplicateIdentifiers(t *testing.T) {
	dir := t.TempDir()

	// The same three students appear in four sheets across two files.
	for fileIdx := 1; fileIdx <= 2; fileIdx++ {
		sheets := make([]fixtureSheet, 0, 2)
		for sheetIdx := 1; sheetIdx <= 2; sheetIdx++ {
			rows := [][]interface{}{{"Öğrenci No", "PÇ1"}}
			for s := 0; s < 3; s++ {
				rows = append(rows, []interface{}{fmt.Sprintf("21400123%d", s), s % 2})
			}
			sheets = append(sheets, fixtureSheet{name: fmt.Sprintf("Sayfa%d", sheetIdx), rows: rows})
		}
		writeWorkbook(t, filepath.Join(dir, fmt.Sprintf("ders%d.xlsx", fileIdx)), sheets...)
	}

	result, err := testConsolidator(t).Run(dir)
	require.NoError(t, err)

	require.Len(t, result.Records, 3)
	seen := make(map[string]bool)
	for _, rec := range result.Records {
		assert.False(t, seen[rec.ID], "identifier %s appears twice", rec.ID)
		seen[rec.ID] = true
	}
}

func TestRunFirstNonEmptyNameTitleCased(t *testing.T) {
	dir := t.TempDir()

	// File A mentions the student without any name column; file B has
	// the name with messy casing and spacing.
	writeWorkbook(t, filepath.Join(dir, "a.xlsx"), fixtureSheet{
		name: "Sayfa1",
		rows: [][]interface{}{
			{"Öğrenci No", "PÇ3"},
			{"123456789", 0},
		},
	})
	writeWorkbook(t, filepath.Join(dir, "b.xlsx"), fixtureSheet{
		name: "Sayfa1",
		rows: [][]interface{}{
			{"Öğrenci No", "Ad Soyad", "PÇ3"},
			{"123456789", "  ana   maria ", 1},
		},
	})

	result, err := testConsolidator(t).Run(dir)
	require.NoError(t, err)

	require.Len(t, result.Records, 1)
	assert.Equal(t, "Ana Maria", result.Records[0].Name)
	assert.Equal(t, 1, result.Records[0].Outcome(3))
}

func TestRunGraduateStatusFromRoster(t *testing.T) {
	dir := t.TempDir()

	writeWorkbook(t, filepath.Join(dir, "ders.xlsx"), fixtureSheet{
		name: "Sayfa1",
		rows: [][]interface{}{
			{"Öğrenci No", "Ad Soyad", "PÇ1"},
			{"214001234", "Ali Veli", 1},
			{"214001235", "Ayşe Yılmaz", 1},
		},
	})
	writeWorkbook(t, filepath.Join(dir, "MEZUN_LISTESI.xlsx"), fixtureSheet{
		name: "Mezunlar",
		rows: [][]interface{}{
			{"Öğrenci No"},
			{"214001234"},
		},
	})

	result, err := testConsolidator(t).Run(dir)
	require.NoError(t, err)
	require.Len(t, result.Records, 2)

	byID := make(map[string]domain.StudentRecord)
	for _, rec := range result.Records {
		byID[rec.ID] = rec
	}

	assert.Equal(t, domain.StatusGraduate, byID["214001234"].Status,
		"roster membership wins even though the student is in a course file")
	assert.Equal(t, domain.StatusActive, byID["214001235"].Status)
	assert.Equal(t, 1, result.Report.RosterSize)
}

func TestRunSkipsUnusableSheetsAndFiles(t *testing.T) {
	dir := t.TempDir()

	// Sheet without outcome columns, sheet with only a header, and one
	// usable sheet, all in one workbook.
	writeWorkbook(t, filepath.Join(dir, "mixed.xlsx"),
		fixtureSheet{
			name: "NotDersSonucu",
			rows: [][]interface{}{
				{"Öğrenci No", "Vize", "Final"},
				{"214001234", 40, 60},
			},
		},
		fixtureSheet{
			name: "Bos",
			rows: [][]interface{}{{"Öğrenci No", "PÇ1"}},
		},
		fixtureSheet{
			name: "Gecerli",
			rows: [][]interface{}{
				{"Öğrenci No", "PÇ1"},
				{"214001234", 1},
			},
		},
	)

	// A corrupt workbook must be reported, not fatal.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bozuk.xlsx"), []byte("not a zip"), 0644))

	// Legacy .xls files are ignored with a warning.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "eski.xls"), []byte("old"), 0644))

	result, err := testConsolidator(t).Run(dir)
	require.NoError(t, err)

	require.Len(t, result.Records, 1)
	assert.Equal(t, "214001234", result.Records[0].ID)
	assert.Contains(t, result.Report.IgnoredFiles, "eski.xls")

	var levels []domain.DiagnosticLevel
	for _, d := range result.Report.Diagnostics {
		levels = append(levels, d.Level)
	}
	assert.Contains(t, levels, domain.DiagError, "corrupt workbook should produce an error diagnostic")
	assert.Contains(t, levels, domain.DiagWarn)
}

func TestRunRowsBelowMinLengthDropped(t *testing.T) {
	dir := t.TempDir()

	writeWorkbook(t, filepath.Join(dir, "ders.xlsx"), fixtureSheet{
		name: "Sayfa1",
		rows: [][]interface{}{
			{"Öğrenci No", "PÇ1"},
			{"214001234", 1},
			{"42", 1}, // too short to be an identifier
			{"", 1},
		},
	})

	result, err := testConsolidator(t).Run(dir)
	require.NoError(t, err)

	require.Len(t, result.Records, 1)
	assert.Equal(t, 3, result.Report.RowsSeen)
	assert.Equal(t, 1, result.Report.RowsKept)
}

func TestRunNoUsableData(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notlar.txt"), []byte("x"), 0644))

	result, err := testConsolidator(t).Run(dir)
	require.NoError(t, err, "an empty run is a normal outcome, not an error")

	assert.Empty(t, result.Records)
	assert.NotEmpty(t, result.Report.Diagnostics)
}

func TestRunOutcomeColumnCollision(t *testing.T) {
	dir := t.TempDir()

	// "PÇ 1" and "PC1" collide on flag 1; the later column wins and a
	// diagnostic records the collision.
	writeWorkbook(t, filepath.Join(dir, "ders.xlsx"), fixtureSheet{
		name: "Sayfa1",
		rows: [][]interface{}{
			{"Öğrenci No", "PÇ 1", "PC1"},
			{"214001234", 1, 0},
		},
	})

	result, err := testConsolidator(t).Run(dir)
	require.NoError(t, err)

	require.Len(t, result.Records, 1)
	assert.Equal(t, 0, result.Records[0].Outcome(1), "later colliding column must win")

	found := false
	for _, d := range result.Report.Diagnostics {
		if d.Level == domain.DiagWarn && d.File == "ders.xlsx" && d.Sheet == "Sayfa1" &&
			strings.Contains(d.Message, "PC1") {
			found = true
		}
	}
	assert.True(t, found, "collision diagnostic expected")
}

func TestDeriveCohortYear(t *testing.T) {
	tests := []struct {
		id   string
		want string
	}{
		{"2235551234", "2023"},
		{"123456789", "2023"},
		{"2140012345", "2014"},
		{"55", domain.CohortUnknown},
		{"", domain.CohortUnknown},
		{"1x2345678", domain.CohortUnknown},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, DeriveCohortYear(tt.id), "id %q", tt.id)
	}
}
