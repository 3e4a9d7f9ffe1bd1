package dataprocessing

import (
	"regexp"
	"strconv"
	"strings"
)

// outcomeMarker is the folded form of the program-outcome column marker.
// Folding makes "PC", "PÇ" and "pç" all match the same token.
const outcomeMarker = "pc"

var digitRun = regexp.MustCompile(`\d+`)

// DetectOutcomeColumns returns the column indices whose folded name
// contains the outcome marker and at least one digit, in column order.
func DetectOutcomeColumns(t *Table) []int {
	var cols []int
	for i, h := range t.Headers {
		folded := FoldColumn(h)
		if strings.Contains(folded, outcomeMarker) && digitRun.MatchString(folded) {
			cols = append(cols, i)
		}
	}
	return cols
}

// OutcomeNumber extracts the canonical flag number from a raw outcome
// column name: the first digit run of the folded name. "PÇ 4", "pc4"
// and "PC04" all map to flag 4.
func OutcomeNumber(name string) (int, bool) {
	m := digitRun.FindString(FoldColumn(name))
	if m == "" {
		return 0, false
	}
	n, err := strconv.Atoi(m)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

// CoerceBinary normalizes one outcome cell to a strict 0/1 flag:
// parse as number, unparseable or missing becomes 0, the value is
// truncated to an integer and clamped to [0,1].
func CoerceBinary(value string) int {
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0
	}
	n := int(f)
	if n < 0 {
		return 0
	}
	if n > 1 {
		return 1
	}
	return n
}
