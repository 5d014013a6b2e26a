package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"sanad/internal/content/store"
	"sanad/pkg/platform/httputil"
)

type Service[T store.Item[T]] interface {
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id string) (T, error)
	Create(ctx context.Context, item T) (T, error)
	Update(ctx context.Context, id string, item T) (T, error)
	Delete(ctx context.Context, id string) error
}

// Handler serves one content collection: a public read route under its
// name, and admin CRUD routes under the same name.
type Handler[T store.Item[T]] struct {
	name    string
	service Service[T]
	logger  *slog.Logger
}

// New constructs a collection handler mounted at /<name>.
func New[T store.Item[T]](name string, service Service[T], logger *slog.Logger) *Handler[T] {
	return &Handler[T]{name: name, service: service, logger: logger}
}

// RegisterPublic mounts the list endpoint on the public router.
func (h *Handler[T]) RegisterPublic(r chi.Router) {
	r.Get("/"+h.name, h.HandleList)
}

// RegisterAdmin mounts the CRUD endpoints on the admin router.
func (h *Handler[T]) RegisterAdmin(r chi.Router) {
	r.Get("/"+h.name, h.HandleList)
	r.Post("/"+h.name, h.HandleCreate)
	r.Put("/"+h.name+"/{id}", h.HandleUpdate)
	r.Delete("/"+h.name+"/{id}", h.HandleDelete)
}

func (h *Handler[T]) HandleList(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.List(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to list collection",
			"collection", h.name, "error", err)
		httputil.WriteError(w, err)
		return
	}
	if items == nil {
		items = []T{}
	}
	httputil.WriteJSON(w, http.StatusOK, items)
}

func (h *Handler[T]) HandleCreate(w http.ResponseWriter, r *http.Request) {
	req, ok := httputil.Decode[T](w, r)
	if !ok {
		return
	}

	item, err := h.service.Create(r.Context(), *req)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to create item",
			"collection", h.name, "error", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, item)
}

func (h *Handler[T]) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	req, ok := httputil.Decode[T](w, r)
	if !ok {
		return
	}

	item, err := h.service.Update(r.Context(), id, *req)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to update item",
			"collection", h.name, "item_id", id, "error", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, item)
}

func (h *Handler[T]) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.service.Delete(r.Context(), id); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to delete item",
			"collection", h.name, "item_id", id, "error", err)
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
