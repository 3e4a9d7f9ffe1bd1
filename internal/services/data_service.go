package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"pctrack/internal/dataprocessing"
	"pctrack/internal/files"
	"pctrack/pkg/contracts/domain"
)

// DataService owns the consolidated table. The pipeline re-runs only
// when the storage directory's version hash changes (upload or delete);
// filter-only requests reuse the cached result. This is a correctness
// contract, not an optimization: without it either every filter click
// re-parses every workbook, or a file change stays invisible until an
// unrelated refresh.
type DataService struct {
	store        *files.Store
	consolidator *dataprocessing.Consolidator
	logger       *slog.Logger

	mu     sync.Mutex
	cached *snapshot
}

type snapshot struct {
	version string
	result  *dataprocessing.Result
}

// NewDataService creates a data service over the given store.
func NewDataService(store *files.Store, consolidator *dataprocessing.Consolidator, logger *slog.Logger) *DataService {
	return &DataService{
		store:        store,
		consolidator: consolidator,
		logger:       logger.With(slog.String("component", "data_service")),
	}
}

// View is one filtered presentation of the consolidated table.
type View struct {
	Records        []domain.StudentRecord `json:"records"`
	Total          int                    `json:"total"`
	Shown          int                    `json:"shown"`
	RosterSize     int                    `json:"roster_size"`
	CohortYears    []string               `json:"cohort_years"`
	OutcomeColumns []string               `json:"outcome_columns"`
	// NoData is set when the last extraction run produced no usable
	// fragment at all; the caller should point at the diagnostics.
	NoData bool `json:"no_data"`
}

// GetView returns the consolidated table after applying the given
// filters. Empty or "all" disables a predicate.
func (s *DataService) GetView(ctx context.Context, year, status, query string) (*View, error) {
	result, err := s.current(ctx)
	if err != nil {
		return nil, err
	}

	filtered := dataprocessing.FilterRecords(result.Records, year, status, query)

	columns := make([]string, result.Flags)
	for i := range columns {
		columns[i] = fmt.Sprintf("PC%d", i+1)
	}

	return &View{
		Records:        filtered,
		Total:          len(result.Records),
		Shown:          len(filtered),
		RosterSize:     result.Report.RosterSize,
		CohortYears:    dataprocessing.CohortYears(result.Records),
		OutcomeColumns: columns,
		NoData:         len(result.Records) == 0,
	}, nil
}

// Diagnostics returns the run report of the most recent extraction.
func (s *DataService) Diagnostics(ctx context.Context) (*domain.RunReport, error) {
	result, err := s.current(ctx)
	if err != nil {
		return nil, err
	}
	return result.Report, nil
}

// Inventory lists the stored workbooks.
func (s *DataService) Inventory(ctx context.Context) (*files.Inventory, error) {
	return s.store.List()
}

// SaveCourseFile stores an uploaded course workbook. The next read
// observes a changed store version and re-extracts.
func (s *DataService) SaveCourseFile(ctx context.Context, name string, r io.Reader) error {
	return s.store.SaveCourseFile(name, r)
}

// SaveRoster stores the graduate roster under its reserved name.
func (s *DataService) SaveRoster(ctx context.Context, r io.Reader) error {
	return s.store.SaveRoster(r)
}

// DeleteFile removes one stored workbook by name.
func (s *DataService) DeleteFile(ctx context.Context, name string) error {
	if !s.store.Exists(name) {
		return fmt.Errorf("%w: %s", ErrFileNotFound, name)
	}
	return s.store.Delete(name)
}

// StoreVersion exposes the current storage version hash.
func (s *DataService) StoreVersion(ctx context.Context) (string, error) {
	return s.store.Version()
}

// current returns the cached pipeline result, re-running the pipeline
// when the storage directory changed since the last run.
func (s *DataService) current(ctx context.Context) (*dataprocessing.Result, error) {
	version, err := s.store.Version()
	if err != nil {
		return nil, fmt.Errorf("failed to version storage directory: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cached != nil && s.cached.version == version {
		return s.cached.result, nil
	}

	s.logger.InfoContext(ctx, "storage changed, re-running extraction",
		slog.String("version", version))

	result, err := s.consolidator.Run(s.store.Dir())
	if err != nil {
		return nil, err
	}
	result.Report.StoreVersion = version

	s.cached = &snapshot{version: version, result: result}
	return result, nil
}
