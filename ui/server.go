// Package ui serves the listings dashboard: HTML pages, the JSON API behind them
// and a small ops surface for health checks and profiling.
package ui

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/gin-gonic/gin"

	"listingscope/internal/dataset"
)

//go:embed templates/*.html static
var embeddedFiles embed.FS

// Options tunes the dashboard server.
type Options struct {
	// PreviewRows caps the row preview on the overview page and in /api/overview.
	PreviewRows int
	// GinMode is passed to gin.SetMode; empty leaves the current mode.
	GinMode string
}

// Server is the dashboard web server
type Server struct {
	router    *gin.Engine
	holder    *dataset.Holder
	templates *template.Template
	opts      Options
}

// NewServer creates a dashboard server over the shared dataset holder
func NewServer(holder *dataset.Holder, opts Options) (*Server, error) {
	if opts.GinMode != "" {
		gin.SetMode(opts.GinMode)
	}

	s := &Server{
		router: gin.New(),
		holder: holder,
		opts:   opts,
	}

	templatesFS, err := fs.Sub(embeddedFiles, "templates")
	if err != nil {
		return nil, fmt.Errorf("failed to create templates filesystem: %w", err)
	}
	s.templates, err = template.New("").Funcs(templateFuncs()).ParseFS(templatesFS, "*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s, nil
}

// setupRoutes configures the application routes
func (s *Server) setupRoutes() {
	s.router.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/overview")
	})

	// Dashboard pages
	s.router.GET("/overview", s.handleOverviewPage)
	s.router.GET("/playground", s.handlePlaygroundPage)
	s.router.GET("/correlation", s.handleCorrelationPage)
	s.router.GET("/questions", s.handleQuestionsPage)

	// JSON API
	api := s.router.Group("/api")
	{
		api.GET("/filters", s.handleFilters)
		api.GET("/overview", s.handleOverview)
		api.GET("/dictionary", s.handleDictionary)
		api.GET("/columns", s.handleColumns)
		api.GET("/playground", s.handlePlayground)
		api.GET("/correlation", s.handleCorrelation)
		api.GET("/questions", s.handleQuestions)
	}
}

// Handler exposes the router, mainly for http.Server and tests
func (s *Server) Handler() http.Handler {
	return s.router
}

