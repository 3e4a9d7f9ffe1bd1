package dataprocessing

import (
	"fmt"
	"os"

	"pctrack/pkg/contracts/domain"
)

// LoadRoster reads the graduate roster workbook and returns the set of
// validated graduate identifiers. The roster is optional: a missing
// file yields an empty set and an informational diagnostic, and a
// parse failure yields an empty set and an error diagnostic. The run
// never fails because of the roster (fail-open to "no graduates known").
func LoadRoster(path, fileName string, minLen int, report *domain.RunReport) map[string]struct{} {
	graduates := make(map[string]struct{})

	if _, err := os.Stat(path); err != nil {
		report.Add(domain.DiagInfo, fileName, "", "graduate roster not present; all students treated as active")
		return graduates
	}

	sheets, err := ReadWorkbook(path)
	if err != nil {
		report.Add(domain.DiagError, fileName, "", fmt.Sprintf("roster unreadable: %v", err))
		return graduates
	}

	for _, sheet := range sheets {
		if sheet.Table == nil {
			continue
		}

		idCol, ok := SelectIdentifierColumn(sheet.Table, minLen)
		if !ok {
			report.Add(domain.DiagWarn, fileName, sheet.Name, "no identifier column found in roster sheet")
			continue
		}

		for _, v := range sheet.Table.Column(idCol) {
			if id := ValidateIdentifier(CleanIdentifier(v), minLen); id != "" {
				graduates[id] = struct{}{}
			}
		}
	}

	report.Add(domain.DiagInfo, fileName, "", fmt.Sprintf("graduate roster loaded: %d identifiers", len(graduates)))
	return graduates
}
