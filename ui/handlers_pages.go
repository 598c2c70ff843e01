package ui

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"listingscope/internal/analysis"
	"listingscope/internal/charts"
	"listingscope/internal/dataset"
	"listingscope/internal/errors"
	"listingscope/internal/profiling"
)

type navItem struct {
	Path  string
	Label string
	Href  string // Path with the current selection as its query
}

var navigation = []navItem{
	{Path: "/overview", Label: "Data Overview"},
	{Path: "/playground", Label: "Data Visualization Playground"},
	{Path: "/correlation", Label: "Correlation Heatmap"},
	{Path: "/questions", Label: "Analysis Questions"},
}

// pageData feeds dashboard.html. Exactly one of the page sections is set.
type pageData struct {
	Page     string
	Nav      []navItem
	Options  dataset.Selection
	Selected dataset.Selection
	Error    string

	Overview    *overviewPayload
	Dictionary  []profiling.ColumnProfile
	Playground  *playgroundView
	Correlation *charts.ChartSpec
	Questions   []questionPayload
}

type playgroundView struct {
	Plot       string
	Column     string
	X          string
	Y          string
	Columns    []string
	Empty      bool
	Chart      *charts.ChartSpec
	ChartError string
}

// page starts the template data for path, or renders the error page and returns nil.
func (s *Server) page(c *gin.Context, path string) (*viewState, *pageData) {
	data := &pageData{Page: path, Nav: navigation}
	state, err := s.loadView(c)
	if err != nil {
		s.errorPage(c, data, err)
		return nil, nil
	}
	data.Options = state.options
	data.Selected = state.selected
	query := encodeSelection(state.selected).Encode()
	data.Nav = make([]navItem, len(navigation))
	for i, item := range navigation {
		item.Href = item.Path + "?" + query
		data.Nav[i] = item
	}
	return state, data
}

func (s *Server) errorPage(c *gin.Context, data *pageData, err error) {
	status := errors.HTTPStatus(err)
	data.Error = err.Error()
	s.renderTemplate(c, status, "dashboard.html", data)
}

func (s *Server) handleOverviewPage(c *gin.Context) {
	state, data := s.page(c, "/overview")
	if data == nil {
		return
	}
	overview, err := s.overview(state)
	if err != nil {
		s.errorPage(c, data, err)
		return
	}
	profiles, err := profiling.Profile(state.view)
	if err != nil {
		s.errorPage(c, data, err)
		return
	}
	data.Overview = overview
	data.Dictionary = profiles
	s.renderTemplate(c, http.StatusOK, "dashboard.html", data)
}

// handlePlaygroundPage mirrors /api/playground but falls back to the first offered
// columns when the query does not name any.
func (s *Server) handlePlaygroundPage(c *gin.Context) {
	state, data := s.page(c, "/playground")
	if data == nil {
		return
	}

	numeric, categorical := state.view.PlotColumns()
	columns := append(append([]string{}, numeric...), categorical...)
	view := &playgroundView{
		Plot:    c.DefaultQuery("plot", "univariate"),
		Column:  c.Query("column"),
		X:       c.Query("x"),
		Y:       c.Query("y"),
		Columns: columns,
		Empty:   len(columns) == 0,
	}
	data.Playground = view

	if !view.Empty {
		if view.Column == "" {
			view.Column = columns[0]
		}
		if view.X == "" {
			view.X = columns[0]
		}
		if view.Y == "" {
			view.Y = columns[min(1, len(columns)-1)]
		}
		chart, err := playgroundChart(state.view, view.Plot, view.Column, view.X, view.Y)
		if err != nil {
			view.ChartError = err.Error()
			s.renderTemplate(c, errors.HTTPStatus(err), "dashboard.html", data)
			return
		}
		view.Chart = chart
	}
	s.renderTemplate(c, http.StatusOK, "dashboard.html", data)
}

func (s *Server) handleCorrelationPage(c *gin.Context) {
	state, data := s.page(c, "/correlation")
	if data == nil {
		return
	}
	m, err := analysis.Correlation(state.view)
	if err != nil {
		s.errorPage(c, data, err)
		return
	}
	data.Correlation = charts.Heatmap(m)
	s.renderTemplate(c, http.StatusOK, "dashboard.html", data)
}

func (s *Server) handleQuestionsPage(c *gin.Context) {
	state, data := s.page(c, "/questions")
	if data == nil {
		return
	}
	questions, err := answerQuestions(state.view)
	if err != nil {
		s.errorPage(c, data, err)
		return
	}
	data.Questions = questions
	s.renderTemplate(c, http.StatusOK, "dashboard.html", data)
}
