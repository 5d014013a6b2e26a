// Package admin serves the admin dashboard summary.
package admin

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"sanad/pkg/platform/httputil"
)

// Counter is any service that can report how many records it holds.
type Counter interface {
	Count(ctx context.Context) (int, error)
}

// Dashboard aggregates per-collection totals for the admin landing page.
type Dashboard struct {
	counters map[string]Counter
	logger   *slog.Logger
}

// NewDashboard constructs a Dashboard over named counters. Keys become the
// JSON field names of the response.
func NewDashboard(counters map[string]Counter, logger *slog.Logger) *Dashboard {
	return &Dashboard{counters: counters, logger: logger}
}

// Register mounts the dashboard endpoint on the admin router.
func (d *Dashboard) Register(r chi.Router) {
	r.Get("/dashboard", d.HandleDashboard)
}

// HandleDashboard handles GET /api/admin/dashboard.
func (d *Dashboard) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	totals := make(map[string]int, len(d.counters))
	for name, counter := range d.counters {
		count, err := counter.Count(r.Context())
		if err != nil {
			d.logger.ErrorContext(r.Context(), "failed to count collection",
				"collection", name, "error", err)
			httputil.WriteError(w, err)
			return
		}
		totals[name] = count
	}
	httputil.WriteJSON(w, http.StatusOK, totals)
}
