package handler

import (
	"context"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/go-chi/chi/v5"

	"sanad/internal/platform/config"
	"sanad/internal/student/models"
	dErrors "sanad/pkg/domain-errors"
	"sanad/pkg/platform/httputil"
)

type Service interface {
	List(ctx context.Context) ([]*models.Student, error)
	Get(ctx context.Context, id string) (*models.Student, error)
	Create(ctx context.Context, student *models.Student) (*models.Student, error)
	Update(ctx context.Context, id string, student *models.Student) (*models.Student, error)
	Delete(ctx context.Context, id string) error
	AttachCertificate(ctx context.Context, id string, data []byte) (*models.Student, error)
	AttachCertificateByIdentity(ctx context.Context, id, phone string, data []byte) (*models.Student, error)
}

// Handler serves the admin student record endpoints.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a student handler.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the student endpoints on the admin router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/students", h.HandleList)
	r.Post("/students", h.HandleCreate)
	r.Get("/students/{id}", h.HandleGet)
	r.Put("/students/{id}", h.HandleUpdate)
	r.Delete("/students/{id}", h.HandleDelete)
	r.Post("/students/{id}/certificate", h.HandleUploadCertificate)
	r.Post("/students/certificate", h.HandleUploadCertificateByIdentity)
}

// HandleList handles GET /api/admin/students, newest first.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	students, err := h.service.List(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to list students", "error", err)
		httputil.WriteError(w, err)
		return
	}
	if students == nil {
		students = []*models.Student{}
	}
	httputil.WriteJSON(w, http.StatusOK, students)
}

// HandleGet handles GET /api/admin/students/{id}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	student, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, student)
}

// HandleCreate handles POST /api/admin/students.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	req, ok := httputil.Decode[models.Student](w, r)
	if !ok {
		return
	}

	student, err := h.service.Create(r.Context(), req)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to create student",
			"certificate_id", req.ID, "error", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, student)
}

// HandleUpdate handles PUT /api/admin/students/{id}.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	req, ok := httputil.Decode[models.Student](w, r)
	if !ok {
		return
	}

	student, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to update student",
			"certificate_id", id, "error", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, student)
}

// HandleDelete handles DELETE /api/admin/students/{id}.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.service.Delete(r.Context(), id); err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleUploadCertificate handles POST /api/admin/students/{id}/certificate
// with a multipart `certificate` file part.
func (h *Handler) HandleUploadCertificate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	data, ok := h.readCertificatePart(w, r)
	if !ok {
		return
	}

	student, err := h.service.AttachCertificate(r.Context(), id, data)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "certificate upload failed",
			"certificate_id", id, "error", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, student)
}

// HandleUploadCertificateByIdentity handles POST
// /api/admin/students/certificate, addressing the record by certificate id
// plus phone number form fields instead of the path.
func (h *Handler) HandleUploadCertificateByIdentity(w http.ResponseWriter, r *http.Request) {
	data, ok := h.readCertificatePart(w, r)
	if !ok {
		return
	}
	id := r.FormValue("id")
	phone := r.FormValue("phone")

	student, err := h.service.AttachCertificateByIdentity(r.Context(), id, phone, data)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "certificate upload failed",
			"certificate_id", id, "error", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, student)
}

// readCertificatePart extracts the uploaded PDF from the multipart form.
// The size cap is enforced while reading; content sniffing happens in the
// service.
func (h *Handler) readCertificatePart(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, config.MaxCertificatePDFBytes+64<<10)
	if err := r.ParseMultipartForm(config.MaxCertificatePDFBytes); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeValidation, "certificate file must be 1 MB or less"))
		return nil, false
	}

	file, header, err := r.FormFile("certificate")
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeValidation, "certificate file is required"))
		return nil, false
	}
	defer file.Close()

	if ct := header.Header.Get("Content-Type"); ct != "" && ct != "application/pdf" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeValidation, "certificate file must be a PDF"))
		return nil, false
	}

	data, err := readAll(file)
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeValidation, "certificate file could not be read"))
		return nil, false
	}
	return data, true
}

func readAll(file multipart.File) ([]byte, error) {
	return io.ReadAll(io.LimitReader(file, config.MaxCertificatePDFBytes+1))
}
