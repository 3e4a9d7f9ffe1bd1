package http

import (
	"context"
	"io"

	"pctrack/internal/files"
	"pctrack/internal/services"
	"pctrack/pkg/contracts/domain"
)

// DataServiceInterface is the service surface the handlers depend on.
// Defined here, at the consumer, so handler tests can substitute a stub.
type DataServiceInterface interface {
	GetView(ctx context.Context, year, status, query string) (*services.View, error)
	Diagnostics(ctx context.Context) (*domain.RunReport, error)
	Inventory(ctx context.Context) (*files.Inventory, error)
	SaveCourseFile(ctx context.Context, name string, r io.Reader) error
	SaveRoster(ctx context.Context, r io.Reader) error
	DeleteFile(ctx context.Context, name string) error
	StoreVersion(ctx context.Context) (string, error)
}
