package dataprocessing

import (
	"sort"
	"strings"
)

// Synonym tokens for column categories, matched against folded column
// names. Keeping these declarative makes the detection rules testable
// in isolation and keeps new synonyms a one-line change.
var (
	// studentTokens mark columns that explicitly name the student
	// identifier. "ogrenci" covers both "Öğrenci" and "Ogrenci" after
	// folding.
	studentTokens = []string{"ogrenci", "student"}

	// numberTokens are the generic fallback when no student-labelled
	// column exists.
	numberTokens = []string{"no", "number"}

	// sequenceTokens indicate a meaningless row-sequence column
	// ("Sıra No", "S.No", "Row", "Index"); such candidates are
	// penalized so a genuine identifier column wins.
	sequenceTokens = []string{"sira", "satir", "index", "row", "srno", "sno"}
)

// sequencePenalty is subtracted from the score of candidates whose name
// carries a sequence token.
const sequencePenalty = 60

// CleanIdentifier strips a raw cell value down to its digits. Values
// that passed through a numeric spreadsheet cell arrive as "123456789.0";
// everything from the first '.' on is dropped before the digit filter.
// Every input yields a string, possibly empty.
func CleanIdentifier(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	if i := strings.IndexByte(s, '.'); i >= 0 {
		s = s[:i]
	}

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ValidateIdentifier returns the cleaned value unchanged when it is at
// least minLen digits long, otherwise "". This is the sole gate against
// short look-alike columns such as row numbers.
func ValidateIdentifier(cleaned string, minLen int) string {
	if len(cleaned) < minLen {
		return ""
	}
	return cleaned
}

// SelectIdentifierColumn scores every plausible column of the table and
// returns the index of the best identifier column, or ok=false when no
// candidate produced a score.
//
// Candidates are columns with a student token in the folded name; when
// none exist, columns with a generic number token. Each candidate is
// scored as 100*(share of cleaned values >= minLen) + median cleaned
// length, minus a penalty for sequence-labelled columns. Ties keep the
// first candidate in column order.
func SelectIdentifierColumn(t *Table, minLen int) (int, bool) {
	folded := make([]string, len(t.Headers))
	for i, h := range t.Headers {
		folded[i] = FoldColumn(h)
	}

	candidates := columnsWithToken(folded, studentTokens)
	if len(candidates) == 0 {
		candidates = columnsWithToken(folded, numberTokens)
	}

	bestCol, bestScore, found := -1, 0.0, false

	for _, col := range candidates {
		penalty := 0.0
		if hasToken(folded[col], sequenceTokens) {
			penalty = sequencePenalty
		}

		var lengths []int
		for _, v := range t.Column(col) {
			if cleaned := CleanIdentifier(v); cleaned != "" {
				lengths = append(lengths, len(cleaned))
			}
		}
		if len(lengths) == 0 {
			continue
		}

		longCount := 0
		for _, l := range lengths {
			if l >= minLen {
				longCount++
			}
		}
		longRatio := float64(longCount) / float64(len(lengths))

		score := longRatio*100 + medianInt(lengths) - penalty
		if !found || score > bestScore {
			bestCol, bestScore, found = col, score, true
		}
	}

	return bestCol, found
}

func columnsWithToken(folded []string, tokens []string) []int {
	var cols []int
	for i, name := range folded {
		if hasToken(name, tokens) {
			cols = append(cols, i)
		}
	}
	return cols
}

func hasToken(folded string, tokens []string) bool {
	for _, tok := range tokens {
		if strings.Contains(folded, tok) {
			return true
		}
	}
	return false
}

func medianInt(values []int) float64 {
	sorted := make([]int, len(values))
	copy(sorted, values)
	sort.Ints(sorted)

	n := len(sorted)
	if n%2 == 1 {
		return float64(sorted[n/2])
	}
	return float64(sorted[n/2-1]+sorted[n/2]) / 2
}
