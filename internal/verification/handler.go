package verification

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"sanad/internal/i18n"
	studentmodels "sanad/internal/student/models"
	"sanad/pkg/platform/httputil"
)

type VerifyService interface {
	Verify(ctx context.Context, query string) (*Result, error)
}

// Handler serves the public verification API.
type Handler struct {
	service VerifyService
	logger  *slog.Logger
}

// NewHandler constructs a verification handler.
func NewHandler(service VerifyService, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the verification endpoint on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/verify", h.HandleVerify)
}

type verifyResponse struct {
	Status      string                 `json:"status"`
	Mode        string                 `json:"mode,omitempty"`
	Student     *studentmodels.Student `json:"student,omitempty"`
	ShareURL    string                 `json:"share_url,omitempty"`
	DownloadURL string                 `json:"download_url,omitempty"`
	OriginalURL string                 `json:"original_url,omitempty"`
	MessageKey  string                 `json:"message_key,omitempty"`
	Message     string                 `json:"message,omitempty"`
}

// HandleVerify handles GET /api/verify. The lookup value comes from `q`,
// falling back to `id` so QR deep links and the search box share one
// endpoint.
func (h *Handler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		query = r.URL.Query().Get("id")
	}
	lang := i18n.Parse(r.URL.Query().Get("lang"))

	result, err := h.service.Verify(r.Context(), query)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "verification lookup failed",
			"query", query, "error", err)
		httputil.WriteError(w, err)
		return
	}

	resp := verifyResponse{Status: result.Status}
	switch result.Status {
	case StatusFound:
		resp.Mode = result.Mode
		resp.Student = result.Student
		resp.ShareURL = "/certificate-verification?id=" + url.QueryEscape(result.Student.ID)
		resp.DownloadURL = "/api/certificates/" + url.PathEscape(result.Student.ID) + "/pdf?lang=" + string(lang)
		if result.Mode == ModeUploaded {
			resp.OriginalURL = "/api/certificates/" + url.PathEscape(result.Student.ID) + "/original"
		}
	case StatusNotFound:
		resp.MessageKey = "certificate_not_found"
		resp.Message = i18n.T(lang, "certificate_not_found")
	}

	httputil.WriteJSON(w, http.StatusOK, resp)
}
