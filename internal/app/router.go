package app

import (
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/motorhaus/motorhaus/internal/billing"
	"github.com/motorhaus/motorhaus/internal/catalog"
	"github.com/motorhaus/motorhaus/internal/customers"
	"github.com/motorhaus/motorhaus/internal/dashboard"
	"github.com/motorhaus/motorhaus/internal/jobcards"
	"github.com/motorhaus/motorhaus/internal/observability"
	"github.com/motorhaus/motorhaus/internal/shared"
	"github.com/motorhaus/motorhaus/internal/vehicles"
	"github.com/motorhaus/motorhaus/jobs"
	"github.com/motorhaus/motorhaus/web"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger           *slog.Logger
	Config           *Config
	SessionManager   *shared.SessionManager
	CSRFManager      *shared.CSRFManager
	DashboardHandler *dashboard.Handler
	CustomerHandler  *customers.Handler
	VehicleHandler   *vehicles.Handler
	CatalogHandler   *catalog.Handler
	JobCardHandler   *jobcards.Handler
	BillingHandler   *billing.Handler
	JobsHandler      *jobs.Handler
	Metrics          *observability.Metrics
}

// NewRouter constructs the chi.Router with Motorhaus defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:         params.Logger,
		Config:         params.Config,
		SessionManager: params.SessionManager,
		CSRFManager:    params.CSRFManager,
		Metrics:        params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Get("/", params.DashboardHandler.Home)

	r.Route("/customers", params.CustomerHandler.MountRoutes)
	r.Route("/vehicles", params.VehicleHandler.MountRoutes)
	r.Route("/services", params.CatalogHandler.MountRoutes)
	r.Route("/jobcards", params.JobCardHandler.MountRoutes)
	r.Route("/billing", params.BillingHandler.MountRoutes)

	if params.JobsHandler != nil {
		r.Route("/jobs", params.JobsHandler.MountRoutes)
	}

	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	staticFS, err := fs.Sub(web.Static, "static")
	if err != nil {
		params.Logger.Error("create static sub filesystem", slog.Any("error", err))
	} else {
		fileServer := http.StripPrefix("/static/", http.FileServer(http.FS(staticFS)))
		r.Handle("/static/*", staticCacheHandler(fileServer))
	}

	return r
}

// staticCacheHandler wraps a file server with Cache-Control headers so
// browsers keep assets for an hour.
func staticCacheHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "public, max-age=3600")
		next.ServeHTTP(w, r)
	})
}
