package http

import (
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "pctrack/internal/errors"
	"pctrack/internal/services"
)

// AdminHandler serves the administrative write surface: workbook
// uploads, roster upload, deletion, the stored-file inventory and the
// extraction diagnostics. The whole router is expected to be mounted
// behind the admin credential middleware.
type AdminHandler struct {
	service        DataServiceInterface
	logger         *slog.Logger
	errorHandler   *apierrors.ErrorHandler
	maxUploadBytes int64
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(service DataServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler, maxUploadBytes int64) *AdminHandler {
	return &AdminHandler{
		service:        service,
		logger:         logger.With(slog.String("component", "admin_handler")),
		errorHandler:   errorHandler,
		maxUploadBytes: maxUploadBytes,
	}
}

// Routes returns the admin routes.
func (h *AdminHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/files", h.ListFiles)
	r.Post("/files", h.UploadCourseFiles)
	r.Post("/files/roster", h.UploadRoster)
	r.Delete("/files/{name}", h.DeleteFile)
	r.Get("/diagnostics", h.GetDiagnostics)

	return r
}

// ListFiles handles GET /api/files.
func (h *AdminHandler) ListFiles(w http.ResponseWriter, r *http.Request) {
	inventory, err := h.service.Inventory(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, inventory)
}

// UploadCourseFiles handles POST /api/files: one or more course
// workbooks in the "files" multipart field, stored under their original
// names.
func (h *AdminHandler) UploadCourseFiles(w http.ResponseWriter, r *http.Request) {
	headers, ok := h.parseUpload(w, r, "files")
	if !ok {
		return
	}

	saved := make([]string, 0, len(headers))
	for _, hdr := range headers {
		if !strings.HasSuffix(strings.ToLower(hdr.Filename), ".xlsx") {
			h.errorHandler.HandleError(w, r, apierrors.ErrUnsupportedFile)
			return
		}

		if err := h.saveOne(r, hdr, false); err != nil {
			h.errorHandler.HandleError(w, r, apierrors.FileSystemError("upload", err))
			return
		}
		saved = append(saved, hdr.Filename)
	}

	h.logger.InfoContext(r.Context(), "course files uploaded",
		slog.Int("count", len(saved)))

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, map[string]interface{}{"saved": saved})
}

// UploadRoster handles POST /api/files/roster: one workbook in the
// "file" multipart field, always stored under the reserved roster name.
func (h *AdminHandler) UploadRoster(w http.ResponseWriter, r *http.Request) {
	headers, ok := h.parseUpload(w, r, "file")
	if !ok {
		return
	}
	if len(headers) != 1 {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("file", "exactly one roster workbook is expected"))
		return
	}
	if !strings.HasSuffix(strings.ToLower(headers[0].Filename), ".xlsx") {
		h.errorHandler.HandleError(w, r, apierrors.ErrUnsupportedFile)
		return
	}

	if err := h.saveOne(r, headers[0], true); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.FileSystemError("roster upload", err))
		return
	}

	h.logger.InfoContext(r.Context(), "roster uploaded",
		slog.String("original_name", headers[0].Filename))

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, map[string]interface{}{"saved": "roster"})
}

// DeleteFile handles DELETE /api/files/{name}.
func (h *AdminHandler) DeleteFile(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if name == "" {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("name", "file name is required"))
		return
	}

	if err := h.service.DeleteFile(r.Context(), name); err != nil {
		if errors.Is(err, services.ErrFileNotFound) {
			h.errorHandler.HandleError(w, r, apierrors.ErrFileNotFound)
			return
		}
		h.errorHandler.HandleError(w, r, apierrors.FileSystemError("delete", err))
		return
	}

	h.logger.InfoContext(r.Context(), "file deleted", slog.String("name", name))
	render.JSON(w, r, map[string]interface{}{"deleted": name})
}

// GetDiagnostics handles GET /api/diagnostics: the per-file/per-sheet
// outcomes of the most recent extraction run.
func (h *AdminHandler) GetDiagnostics(w http.ResponseWriter, r *http.Request) {
	report, err := h.service.Diagnostics(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, report)
}

// parseUpload parses the multipart form and returns the file headers of
// the given field.
func (h *AdminHandler) parseUpload(w http.ResponseWriter, r *http.Request, field string) ([]*multipart.FileHeader, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)

	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			h.errorHandler.HandleError(w, r, apierrors.ErrPayloadTooLarge)
		} else {
			h.errorHandler.HandleError(w, r, apierrors.NewWithDetails(
				http.StatusBadRequest, "INVALID_REQUEST", "Invalid multipart form", err.Error()))
		}
		return nil, false
	}

	headers := r.MultipartForm.File[field]
	if len(headers) == 0 {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation(field, fmt.Sprintf("no file provided in field %q", field)))
		return nil, false
	}

	return headers, true
}

// saveOne stores one uploaded part through the service.
func (h *AdminHandler) saveOne(r *http.Request, hdr *multipart.FileHeader, roster bool) error {
	f, err := hdr.Open()
	if err != nil {
		return fmt.Errorf("failed to open upload %s: %w", hdr.Filename, err)
	}
	defer f.Close()

	if roster {
		return h.service.SaveRoster(r.Context(), f)
	}
	return h.service.SaveCourseFile(r.Context(), hdr.Filename, f)
}
