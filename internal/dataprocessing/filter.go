package dataprocessing

import (
	"sort"
	"strings"

	"pctrack/pkg/contracts/domain"
)

// FilterAll is the sentinel meaning "no filter" for the year and status
// predicates. An empty string means the same.
const FilterAll = "all"

// FilterRecords applies the cohort-year, status, and free-text filters
// to the consolidated table, composed as logical AND. The search text
// matches the identifier or the display name case-insensitively. The
// input slice is never mutated; a fresh slice is returned.
func FilterRecords(records []domain.StudentRecord, year, status, query string) []domain.StudentRecord {
	query = strings.ToLower(strings.TrimSpace(query))

	out := make([]domain.StudentRecord, 0, len(records))
	for _, rec := range records {
		if !anySentinel(year) && rec.CohortYear != year {
			continue
		}
		if !anySentinel(status) && string(rec.Status) != status {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(rec.ID), query) &&
			!strings.Contains(strings.ToLower(rec.Name), query) {
			continue
		}
		out = append(out, rec)
	}
	return out
}

// CohortYears enumerates the cohort years present in the records,
// sorted ascending, with the Unknown sentinel last when present.
func CohortYears(records []domain.StudentRecord) []string {
	seen := make(map[string]struct{})
	var years []string
	hasUnknown := false

	for _, rec := range records {
		if rec.CohortYear == domain.CohortUnknown {
			hasUnknown = true
			continue
		}
		if _, ok := seen[rec.CohortYear]; !ok {
			seen[rec.CohortYear] = struct{}{}
			years = append(years, rec.CohortYear)
		}
	}

	sort.Strings(years)
	if hasUnknown {
		years = append(years, domain.CohortUnknown)
	}
	return years
}

func anySentinel(v string) bool {
	return v == "" || strings.EqualFold(v, FilterAll)
}
