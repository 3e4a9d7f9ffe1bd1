package dataprocessing

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"pctrack/internal/config"
	"pctrack/pkg/contracts/domain"
)

// Consolidator runs the full extraction pipeline over a storage
// directory: roster loading, per-sheet fragment extraction, and the
// grouped merge into one record per student. All per-file and per-sheet
// failures become diagnostics on the run report; only an unreadable
// storage directory is an error.
type Consolidator struct {
	minIDLen   int
	flagCount  int
	rosterName string
	logger     *slog.Logger
}

// NewConsolidator creates a consolidator with the given pipeline settings.
func NewConsolidator(cfg config.PipelineConfig, logger *slog.Logger) *Consolidator {
	return &Consolidator{
		minIDLen:   cfg.MinIDLength,
		flagCount:  cfg.OutcomeFlags,
		rosterName: cfg.RosterFileName,
		logger:     logger.With(slog.String("component", "consolidator")),
	}
}

// Result is the terminal output of one pipeline run. Records is empty
// (not an error) when no file contributed a usable fragment.
type Result struct {
	Records []domain.StudentRecord
	// Flags is the outcome range every record spans: the declared
	// range, extended if any source file carried a higher flag.
	Flags  int
	Report *domain.RunReport
}

// Run rebuilds the consolidated table from scratch out of every .xlsx
// workbook in dir.
func (c *Consolidator) Run(dir string) (*Result, error) {
	report := &domain.RunReport{GeneratedAt: time.Now()}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read data directory %s: %w", dir, err)
	}

	var courseFiles []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		lower := strings.ToLower(name)
		switch {
		case !strings.HasSuffix(lower, ".xlsx"):
			report.IgnoredFiles = append(report.IgnoredFiles, name)
			if strings.HasSuffix(lower, ".xls") {
				report.Add(domain.DiagWarn, name, "", "legacy .xls workbooks are not supported; convert to .xlsx")
			}
		case name == c.rosterName:
			// handled by LoadRoster below
		default:
			courseFiles = append(courseFiles, name)
		}
	}
	sort.Strings(courseFiles)
	report.FilesSeen = len(courseFiles)

	graduates := LoadRoster(filepath.Join(dir, c.rosterName), c.rosterName, c.minIDLen, report)
	report.RosterSize = len(graduates)

	var fragments []domain.Fragment
	for _, name := range courseFiles {
		fragments = append(fragments, c.extractFile(filepath.Join(dir, name), name, report)...)
	}

	for _, frag := range fragments {
		report.SheetsUsed++
		report.RowsKept += len(frag.Rows)
	}

	if len(fragments) == 0 {
		report.Add(domain.DiagWarn, "", "", "no usable outcome data found in any workbook")
		c.logger.Warn("extraction produced no usable fragments",
			slog.Int("files_seen", report.FilesSeen))
		return &Result{Flags: c.flagCount, Report: report}, nil
	}

	records, flags := c.merge(fragments, graduates)
	report.Students = len(records)

	c.logger.Info("consolidation complete",
		slog.Int("files", report.FilesSeen),
		slog.Int("sheets_used", report.SheetsUsed),
		slog.Int("students", len(records)),
		slog.Int("graduates_known", len(graduates)))

	return &Result{Records: records, Flags: flags, Report: report}, nil
}

// extractFile parses one course workbook and extracts a fragment from
// every usable sheet. Unreadable files are reported, not fatal.
func (c *Consolidator) extractFile(path, name string, report *domain.RunReport) []domain.Fragment {
	sheets, err := ReadWorkbook(path)
	if err != nil {
		report.Add(domain.DiagError, name, "", fmt.Sprintf("unreadable: %v", err))
		return nil
	}

	var fragments []domain.Fragment
	for _, sheet := range sheets {
		if sheet.Table == nil {
			report.Add(domain.DiagWarn, name, sheet.Name, "empty sheet")
			continue
		}
		report.RowsSeen += sheet.Table.Len()

		if frag, ok := c.extractSheet(sheet.Table, name, sheet.Name, report); ok {
			fragments = append(fragments, frag)
		}
	}

	if len(fragments) == 0 {
		report.Add(domain.DiagInfo, name, "", "no sheet contributed data (identifier or outcome columns missing)")
	}
	return fragments
}

// extractSheet builds one fragment: the identifier column plus every
// detected outcome column, with names attached and invalid identifiers
// dropped.
func (c *Consolidator) extractSheet(t *Table, file, sheet string, report *domain.RunReport) (domain.Fragment, bool) {
	outcomeCols := DetectOutcomeColumns(t)
	if len(outcomeCols) == 0 {
		report.Add(domain.DiagWarn, file, sheet, "no outcome (PC) columns found; sheet skipped")
		return domain.Fragment{}, false
	}

	idCol, ok := SelectIdentifierColumn(t, c.minIDLen)
	if !ok {
		report.Add(domain.DiagWarn, file, sheet, "no identifier column found; sheet skipped")
		return domain.Fragment{}, false
	}

	// Map each detected column to its canonical flag number. When two
	// source columns collide on the same flag the later one wins; this
	// mirrors the historical behavior and is surfaced as a diagnostic
	// instead of being silently absorbed.
	flagCols := make(map[int]int)
	var flagOrder []int
	for _, col := range outcomeCols {
		n, ok := OutcomeNumber(t.Headers[col])
		if !ok {
			continue
		}
		if prev, exists := flagCols[n]; exists {
			report.Add(domain.DiagWarn, file, sheet, fmt.Sprintf(
				"columns %q and %q both map to PC%d; keeping the later column",
				t.Headers[prev], t.Headers[col], n))
		} else {
			flagOrder = append(flagOrder, n)
		}
		flagCols[n] = col
	}
	if len(flagCols) == 0 {
		report.Add(domain.DiagWarn, file, sheet, "no outcome (PC) columns found; sheet skipped")
		return domain.Fragment{}, false
	}

	names := BuildFullNames(t)

	frag := domain.Fragment{File: file, Sheet: sheet}
	total := t.Len()
	for i := 0; i < total; i++ {
		id := ValidateIdentifier(CleanIdentifier(t.Cell(i, idCol)), c.minIDLen)
		if id == "" {
			continue
		}

		outcomes := make(map[int]int, len(flagCols))
		for n, col := range flagCols {
			outcomes[n] = CoerceBinary(t.Cell(i, col))
		}

		frag.Rows = append(frag.Rows, domain.FragmentRow{
			ID:       id,
			Name:     names[i],
			Outcomes: outcomes,
		})
	}

	if len(frag.Rows) == 0 {
		report.Add(domain.DiagWarn, file, sheet, fmt.Sprintf("0 rows left after identifier validation (of %d)", total))
		return domain.Fragment{}, false
	}

	report.Add(domain.DiagInfo, file, sheet, fmt.Sprintf(
		"added: %d/%d rows, identifier column %q, %d outcome columns",
		len(frag.Rows), total, t.Headers[idCol], len(flagOrder)))
	return frag, true
}

// merge folds all fragment rows into one record per identifier. The
// first non-empty name wins; each outcome flag is the maximum (logical
// OR) across the group. Derived fields are computed once, after the
// flags are final.
func (c *Consolidator) merge(fragments []domain.Fragment, graduates map[string]struct{}) ([]domain.StudentRecord, int) {
	type accum struct {
		name     string
		outcomes map[int]int
	}

	groups := make(map[string]*accum)
	maxFlag := c.flagCount

	for _, frag := range fragments {
		for _, row := range frag.Rows {
			g, ok := groups[row.ID]
			if !ok {
				g = &accum{outcomes: make(map[int]int)}
				groups[row.ID] = g
			}

			if g.name == "" && strings.TrimSpace(row.Name) != "" {
				g.name = row.Name
			}

			for n, v := range row.Outcomes {
				if v > g.outcomes[n] {
					g.outcomes[n] = v
				}
				if n > maxFlag {
					maxFlag = n
				}
			}
		}
	}

	ids := make([]string, 0, len(groups))
	for id := range groups {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	titleCaser := cases.Title(language.Und)

	records := make([]domain.StudentRecord, 0, len(ids))
	for _, id := range ids {
		g := groups[id]

		outcomes := make([]int, maxFlag)
		for n, v := range g.outcomes {
			if n >= 1 && n <= maxFlag {
				outcomes[n-1] = v
			}
		}

		status := domain.StatusActive
		if _, ok := graduates[id]; ok {
			status = domain.StatusGraduate
		}

		records = append(records, domain.StudentRecord{
			ID:         id,
			Name:       titleCaser.String(CollapseWhitespace(g.name)),
			CohortYear: DeriveCohortYear(id),
			Status:     status,
			Outcomes:   outcomes,
		})
	}

	return records, maxFlag
}

// DeriveCohortYear derives the entry year from the identifier's second
// and third characters: "2235678" enrolled in "2023". Identifiers too
// short or with non-digit characters at those positions yield the
// Unknown sentinel. The rule is fixed by the institution's issuance
// convention and applies to the raw identifier string as-is.
func DeriveCohortYear(id string) string {
	s := strings.TrimSpace(id)
	if len(s) < 3 {
		return domain.CohortUnknown
	}
	if s[1] < '0' || s[1] > '9' || s[2] < '0' || s[2] > '9' {
		return domain.CohortUnknown
	}
	return "20" + s[1:3]
}
