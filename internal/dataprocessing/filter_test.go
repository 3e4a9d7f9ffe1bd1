package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"pctrack/pkg/contracts/domain"
)

func sampleRecords() []domain.StudentRecord {
	return []domain.StudentRecord{
		{ID: "123456789", Name: "Ana Maria", CohortYear: "2023", Status: domain.StatusActive},
		{ID: "223456789", Name: "Ali Veli", CohortYear: "2023", Status: domain.StatusGraduate},
		{ID: "214001234", Name: "Ayşe Yılmaz", CohortYear: "2014", Status: domain.StatusActive},
		{ID: "55555", Name: "", CohortYear: domain.CohortUnknown, Status: domain.StatusActive},
	}
}

func TestFilterRecordsComposition(t *testing.T) {
	// year AND status AND search text all must hold.
	got := FilterRecords(sampleRecords(), "2023", "active", "ana")

	assert.Len(t, got, 1)
	assert.Equal(t, "123456789", got[0].ID)
}

func TestFilterRecordsSentinels(t *testing.T) {
	records := sampleRecords()

	assert.Len(t, FilterRecords(records, "", "", ""), 4)
	assert.Len(t, FilterRecords(records, "all", "all", ""), 4)
	assert.Len(t, FilterRecords(records, "All", "ALL", " "), 4)
}

func TestFilterRecordsByStatus(t *testing.T) {
	got := FilterRecords(sampleRecords(), "", "graduate", "")
	assert.Len(t, got, 1)
	assert.Equal(t, "223456789", got[0].ID)
}

func TestFilterRecordsSearchMatchesIDOrName(t *testing.T) {
	records := sampleRecords()

	byID := FilterRecords(records, "", "", "21400")
	assert.Len(t, byID, 1)
	assert.Equal(t, "214001234", byID[0].ID)

	byName := FilterRecords(records, "", "", "VELI")
	assert.Len(t, byName, 1)
	assert.Equal(t, "223456789", byName[0].ID)
}

func TestFilterRecordsDoesNotMutateInput(t *testing.T) {
	records := sampleRecords()
	FilterRecords(records, "2023", "active", "x")

	assert.Equal(t, sampleRecords(), records)
}

func TestCohortYears(t *testing.T) {
	years := CohortYears(sampleRecords())
	assert.Equal(t, []string{"2014", "2023", domain.CohortUnknown}, years)
}

func TestCohortYearsNoUnknown(t *testing.T) {
	records := sampleRecords()[:3]
	assert.Equal(t, []string{"2014", "2023"}, CohortYears(records))
}
