// Package httpapi assembles the HTTP surface: public content and
// verification endpoints, certificate downloads, and the token-guarded
// admin API. Handlers delegate to domain services; no business logic lives
// here.
package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"sanad/internal/admin"
	"sanad/internal/auth"
	"sanad/internal/blob"
	"sanad/internal/certificate"
	"sanad/internal/platform/middleware"
	settingshandler "sanad/internal/settings/handler"
	studenthandler "sanad/internal/student/handler"
	"sanad/internal/verification"
	"sanad/pkg/platform/httputil"
)

// CollectionHandler is the shape every content collection handler exposes.
type CollectionHandler interface {
	RegisterPublic(r chi.Router)
	RegisterAdmin(r chi.Router)
}

// HealthChecker reports the health of one backing resource.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// Deps carries everything the router mounts.
type Deps struct {
	Logger *slog.Logger

	Auth          *auth.Handler
	Verification  *verification.Handler
	Certificates  *certificate.Handler
	Students      *studenthandler.Handler
	Settings      *settingshandler.Handler
	Dashboard     *admin.Dashboard
	Collections   []CollectionHandler
	TokenVerifier middleware.TokenValidator

	// VerifyLimiter throttles the public verification endpoint. nil
	// disables throttling.
	VerifyLimiter func(http.Handler) http.Handler

	// UploadsDir, when set, is served at the blob URL prefix so uploaded
	// certificate links resolve.
	UploadsDir string

	// HealthChecks are probed by /healthz, keyed by resource name.
	HealthChecks map[string]HealthChecker
}

// NewRouter wires the full route tree.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(deps.Logger))
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/healthz", handleHealth(deps.HealthChecks))
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api", func(api chi.Router) {
		deps.Auth.Register(api)
		deps.Settings.RegisterPublic(api)
		for _, c := range deps.Collections {
			c.RegisterPublic(api)
		}

		// Lookups and exports are the expensive unauthenticated paths.
		if deps.VerifyLimiter != nil {
			api.Group(func(limited chi.Router) {
				limited.Use(deps.VerifyLimiter)
				deps.Verification.Register(limited)
				deps.Certificates.Register(limited)
			})
		} else {
			deps.Verification.Register(api)
			deps.Certificates.Register(api)
		}

		api.Route("/admin", func(adminAPI chi.Router) {
			adminAPI.Use(middleware.RequireAdmin(deps.TokenVerifier, deps.Logger))
			deps.Students.Register(adminAPI)
			deps.Settings.RegisterAdmin(adminAPI)
			deps.Dashboard.Register(adminAPI)
			for _, c := range deps.Collections {
				c.RegisterAdmin(adminAPI)
			}
		})
	})

	if deps.UploadsDir != "" {
		fs := http.StripPrefix(blob.URLPrefix, http.FileServer(http.Dir(deps.UploadsDir)))
		r.Get(blob.URLPrefix+"*", fs.ServeHTTP)
	}

	return r
}

func handleHealth(checks map[string]HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := http.StatusOK
		resources := make(map[string]string, len(checks))
		for name, check := range checks {
			if err := check.Health(r.Context()); err != nil {
				resources[name] = "unhealthy"
				status = http.StatusServiceUnavailable
				continue
			}
			resources[name] = "ok"
		}

		body := map[string]any{"status": "ok"}
		if status != http.StatusOK {
			body["status"] = "degraded"
		}
		if len(resources) > 0 {
			body["resources"] = resources
		}
		httputil.WriteJSON(w, status, body)
	}
}
