package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "pctrack/internal/errors"
	"pctrack/internal/exporter"
)

// DataHandler serves the read-only query surface: the filtered
// consolidated table and its export.
type DataHandler struct {
	service      DataServiceInterface
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewDataHandler creates a new data handler.
func NewDataHandler(service DataServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *DataHandler {
	return &DataHandler{
		service:      service,
		logger:       logger.With(slog.String("component", "data_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the data routes.
func (h *DataHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/records", h.GetRecords)
	r.Get("/records/export", h.ExportRecords)

	return r
}

// GetRecords handles GET /api/records with optional year, status and q
// filters. An empty consolidated table renders as a normal "no data"
// payload, never as an error.
func (h *DataHandler) GetRecords(w http.ResponseWriter, r *http.Request) {
	year, status, query, ok := h.filterParams(w, r)
	if !ok {
		return
	}

	view, err := h.service.GetView(r.Context(), year, status, query)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, view)
}

// ExportRecords handles GET /api/records/export, streaming the
// currently filtered table as a CSV or XLSX attachment.
func (h *DataHandler) ExportRecords(w http.ResponseWriter, r *http.Request) {
	year, status, query, ok := h.filterParams(w, r)
	if !ok {
		return
	}

	format := strings.ToLower(r.URL.Query().Get("format"))
	if format == "" {
		format = "csv"
	}
	if format != "csv" && format != "xlsx" {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("format", fmt.Sprintf("unsupported export format: %s", format)))
		return
	}

	view, err := h.service.GetView(r.Context(), year, status, query)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	h.logger.InfoContext(r.Context(), "exporting records",
		slog.String("format", format),
		slog.Int("rows", view.Shown))

	fileName := "PC_Takip_Sonuclari." + format
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))

	switch format {
	case "xlsx":
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		err = exporter.WriteXLSX(w, view.Records, view.OutcomeColumns)
	default:
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		err = exporter.WriteCSV(w, view.Records, view.OutcomeColumns)
	}
	if err != nil {
		// The response is already streaming; all we can do is log.
		h.logger.ErrorContext(r.Context(), "export failed mid-stream",
			slog.String("error", err.Error()))
	}
}

// filterParams extracts and validates the shared filter query
// parameters.
func (h *DataHandler) filterParams(w http.ResponseWriter, r *http.Request) (year, status, query string, ok bool) {
	q := r.URL.Query()
	year = strings.TrimSpace(q.Get("year"))
	status = strings.ToLower(strings.TrimSpace(q.Get("status")))
	query = q.Get("q")

	switch status {
	case "", "all", "active", "graduate":
	default:
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("status", fmt.Sprintf("unknown status filter: %s", status)))
		return "", "", "", false
	}

	return year, status, query, true
}
