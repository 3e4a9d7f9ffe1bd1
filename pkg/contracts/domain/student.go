package domain

// Status describes whether a student is still enrolled or has graduated.
type Status string

const (
	StatusActive   Status = "active"
	StatusGraduate Status = "graduate"
)

// CohortUnknown is the sentinel cohort year used when the entry year
// cannot be derived from the identifier.
const CohortUnknown = "Unknown"

// StudentRecord is one consolidated row: a single student merged from
// every course workbook that mentioned their identifier.
type StudentRecord struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	CohortYear string `json:"cohort_year"`
	Status     Status `json:"status"`
	// Outcomes holds one 0/1 flag per program outcome, index 0 = PC1.
	// The slice always spans the full declared range; flags never seen
	// in any source file stay zero.
	Outcomes []int `json:"outcomes"`
}

// Outcome returns the flag for the 1-based outcome number, or 0 when
// the number is out of range.
func (r StudentRecord) Outcome(n int) int {
	if n < 1 || n > len(r.Outcomes) {
		return 0
	}
	return r.Outcomes[n-1]
}

// FragmentRow is one source row that survived identifier validation,
// before merging. Outcomes is sparse: only the flags this sheet
// actually carried are present.
type FragmentRow struct {
	ID       string
	Name     string
	Outcomes map[int]int
}

// Fragment is the slice of usable rows extracted from a single sheet
// of a single workbook.
type Fragment struct {
	File  string
	Sheet string
	Rows  []FragmentRow
}
