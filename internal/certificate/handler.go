package certificate

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"sanad/internal/i18n"
	"sanad/pkg/platform/httputil"
)

// Handler serves certificate downloads.
type Handler struct {
	service *Service
	logger  *slog.Logger
}

// NewHandler constructs a certificate download handler.
func NewHandler(service *Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the download endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/certificates/{id}/pdf", h.HandleDownloadComposed)
	r.Get("/certificates/{id}/original", h.HandleDownloadOriginal)
}

// HandleDownloadComposed handles GET /api/certificates/{id}/pdf. The lang
// query parameter picks the certificate language, defaulting to Bengali.
func (h *Handler) HandleDownloadComposed(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	lang := i18n.Parse(r.URL.Query().Get("lang"))

	data, filename, err := h.service.ExportComposed(r.Context(), id, lang)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "certificate export failed",
			"certificate_id", id, "lang", string(lang), "error", err)
		httputil.WriteError(w, err)
		return
	}
	writePDF(w, data, filename)
}

// HandleDownloadOriginal handles GET /api/certificates/{id}/original,
// streaming the uploaded document unchanged.
func (h *Handler) HandleDownloadOriginal(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	data, filename, err := h.service.ExportOriginal(r.Context(), id)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "original certificate download failed",
			"certificate_id", id, "error", err)
		httputil.WriteError(w, err)
		return
	}
	writePDF(w, data, filename)
}

func writePDF(w http.ResponseWriter, data []byte, filename string) {
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	_, _ = w.Write(data)
}
