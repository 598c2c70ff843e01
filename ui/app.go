package ui

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"listingscope/internal/dataset"
)

// App is the operations surface that runs beside the dashboard: health and pprof.
type App struct {
	router *chi.Mux
	holder *dataset.Holder
}

// NewApp creates the ops application over the shared dataset holder
func NewApp(holder *dataset.Holder) *App {
	app := &App{
		router: chi.NewRouter(),
		holder: holder,
	}

	app.setupMiddleware()
	app.setupRoutes()

	return app
}

// setupMiddleware configures HTTP middleware
func (a *App) setupMiddleware() {
	a.router.Use(middleware.RequestID)
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))
}

// setupRoutes configures the application routes
func (a *App) setupRoutes() {
	a.router.Get("/healthz", a.handleHealth)
	a.router.Mount("/debug", middleware.Profiler())
}

// Handler exposes the router
func (a *App) Handler() http.Handler {
	return a.router
}

type healthResponse struct {
	Status string `json:"status"`
	Source string `json:"source"`
	Loaded bool   `json:"loaded"`
	Rows   int    `json:"rows"`
	Error  string `json:"error,omitempty"`
}

// handleHealth reports whether the dataset can be served. It loads the table when
// nothing has asked for it yet, so a probe also warms the cache.
func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	resp := healthResponse{Status: "ok", Source: a.holder.Source()}
	status := http.StatusOK

	table, err := a.holder.Get(ctx)
	if err != nil {
		resp.Status = "unavailable"
		resp.Error = err.Error()
		status = http.StatusServiceUnavailable
	} else {
		resp.Loaded = true
		resp.Rows = table.Len()
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Printf("[Ops] failed to write health response: %v", err)
	}
}
