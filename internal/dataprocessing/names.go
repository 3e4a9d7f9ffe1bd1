package dataprocessing

// Accepted spellings for the name column layouts, matched exactly
// against normalized column names.
var (
	combinedNameColumns = []string{"name surname", "namesurname", "ad soyad", "adsoyad"}
	firstNameColumns    = []string{"ad", "name", "first name", "firstname"}
	lastNameColumns     = []string{"soyad", "surname", "last name", "lastname"}
)

// BuildFullNames constructs one display name per row. Resolution order:
// a single combined full-name column wins; otherwise distinct first and
// last name columns are joined first-then-last; otherwise a first-name
// column alone; otherwise every row gets "". Values are trimmed and
// internal whitespace collapsed. Title-casing happens later, at
// consolidation time, so this stays a pure extraction step.
func BuildFullNames(t *Table) []string {
	combined := findColumn(t.Headers, combinedNameColumns)
	first := findColumn(t.Headers, firstNameColumns)
	last := findColumn(t.Headers, lastNameColumns)

	names := make([]string, t.Len())

	switch {
	case combined >= 0:
		for i := range names {
			names[i] = CollapseWhitespace(t.Cell(i, combined))
		}
	case first >= 0 && last >= 0 && first != last:
		for i := range names {
			names[i] = CollapseWhitespace(t.Cell(i, first) + " " + t.Cell(i, last))
		}
	case first >= 0:
		for i := range names {
			names[i] = CollapseWhitespace(t.Cell(i, first))
		}
	}

	return names
}

// findColumn returns the index of the first header whose normalized
// form matches one of the accepted spellings, or -1.
func findColumn(headers []string, accepted []string) int {
	for i, h := range headers {
		normalized := NormalizeColumn(h)
		for _, want := range accepted {
			if normalized == want {
				return i
			}
		}
	}
	return -1
}
