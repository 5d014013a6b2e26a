package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"sanad/internal/settings/models"
	"sanad/pkg/platform/httputil"
)

type Service interface {
	Get(ctx context.Context) (*models.SiteSettings, error)
	Replace(ctx context.Context, settings *models.SiteSettings) (*models.SiteSettings, error)
}

// Handler serves the site settings endpoints.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a settings handler.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterPublic mounts the read endpoint on the public router.
func (h *Handler) RegisterPublic(r chi.Router) {
	r.Get("/settings", h.HandleGet)
}

// RegisterAdmin mounts the write endpoint on the admin router.
func (h *Handler) RegisterAdmin(r chi.Router) {
	r.Put("/settings", h.HandleReplace)
}

// HandleGet handles GET /api/settings.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	settings, err := h.service.Get(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to load settings", "error", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, settings)
}

// HandleReplace handles PUT /api/admin/settings, replacing the whole
// document.
func (h *Handler) HandleReplace(w http.ResponseWriter, r *http.Request) {
	req, ok := httputil.Decode[models.SiteSettings](w, r)
	if !ok {
		return
	}

	settings, err := h.service.Replace(r.Context(), req)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to save settings", "error", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, settings)
}
