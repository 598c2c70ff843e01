package ui

import (
	"html/template"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"listingscope/internal/analysis"
	"listingscope/internal/charts"
	"listingscope/internal/dataset"
	"listingscope/internal/errors"
	"listingscope/internal/profiling"
)

type overviewPayload struct {
	Selection dataset.Selection        `json:"selection"`
	Summary   analysis.Summary         `json:"summary"`
	Insights  analysis.Insights        `json:"insights"`
	TotalRows int                      `json:"total_rows"`
	Columns   []string                 `json:"columns"`
	Preview   []map[string]interface{} `json:"preview"`
}

type partPayload struct {
	Narrative     string            `json:"narrative"`
	NarrativeHTML template.HTML     `json:"narrative_html"`
	Chart         *charts.ChartSpec `json:"chart,omitempty"`
}

type questionPayload struct {
	Number int                   `json:"number"`
	Title  string                `json:"title"`
	Parts  []partPayload         `json:"parts"`
	Demand *analysis.DemandTable `json:"demand,omitempty"`
}

// respondError writes err as JSON with the status its code maps to.
func respondError(c *gin.Context, err error) {
	status := errors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		log.Printf("[API] %s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	c.AbortWithStatusJSON(status, gin.H{
		"error":      err.Error(),
		"code":       errors.GetCode(err),
		"request_id": c.GetString("request_id"),
	})
}

// handleFilters lists the values each facet widget offers
func (s *Server) handleFilters(c *gin.Context) {
	base, err := s.holder.Get(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	options, err := dataset.DefaultSelection(base)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, options)
}

func (s *Server) handleOverview(c *gin.Context) {
	state, err := s.loadView(c)
	if err != nil {
		respondError(c, err)
		return
	}
	payload, err := s.overview(state)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, payload)
}

func (s *Server) overview(state *viewState) (*overviewPayload, error) {
	summary, err := analysis.Summarize(state.view)
	if err != nil {
		return nil, err
	}
	insights, err := analysis.ComputeInsights(state.view)
	if err != nil {
		return nil, err
	}
	columns := state.view.Columns()
	names := make([]string, len(columns))
	for i, col := range columns {
		names[i] = col.Name
	}
	return &overviewPayload{
		Selection: state.selected,
		Summary:   summary,
		Insights:  insights,
		TotalRows: state.view.Len(),
		Columns:   names,
		Preview:   state.view.Rows(s.opts.PreviewRows),
	}, nil
}

func (s *Server) handleDictionary(c *gin.Context) {
	state, err := s.loadView(c)
	if err != nil {
		respondError(c, err)
		return
	}
	profiles, err := profiling.Profile(state.view)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"columns": profiles})
}

// handleColumns lists the columns offered for plotting
func (s *Server) handleColumns(c *gin.Context) {
	state, err := s.loadView(c)
	if err != nil {
		respondError(c, err)
		return
	}
	numeric, categorical := state.view.PlotColumns()
	c.JSON(http.StatusOK, gin.H{"numeric": numeric, "categorical": categorical})
}

// handlePlayground builds one univariate (?plot=univariate&column=c) or
// bivariate (?plot=bivariate&x=a&y=b) chart
func (s *Server) handlePlayground(c *gin.Context) {
	state, err := s.loadView(c)
	if err != nil {
		respondError(c, err)
		return
	}
	spec, err := playgroundChart(state.view, c.DefaultQuery("plot", "univariate"), c.Query("column"), c.Query("x"), c.Query("y"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, spec)
}

func playgroundChart(view *dataset.Table, plot, column, x, y string) (*charts.ChartSpec, error) {
	intent, err := charts.ParseIntent(plot)
	if err != nil {
		return nil, err
	}
	if intent == charts.IntentUnivariate {
		if column == "" {
			return nil, errors.InvalidInput("univariate plots need a column")
		}
		return charts.Univariate(view, column)
	}
	if x == "" || y == "" {
		return nil, errors.InvalidInput("bivariate plots need x and y columns")
	}
	return charts.Bivariate(view, x, y)
}

func (s *Server) handleCorrelation(c *gin.Context) {
	state, err := s.loadView(c)
	if err != nil {
		respondError(c, err)
		return
	}
	m, err := analysis.Correlation(state.view)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, charts.Heatmap(m))
}

func (s *Server) handleQuestions(c *gin.Context) {
	state, err := s.loadView(c)
	if err != nil {
		respondError(c, err)
		return
	}
	questions, err := answerQuestions(state.view)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"questions": questions})
}

func answerQuestions(view *dataset.Table) ([]questionPayload, error) {
	answers, err := charts.AnswerAll(view)
	if err != nil {
		return nil, err
	}
	out := make([]questionPayload, 0, len(answers))
	for _, a := range answers {
		q := questionPayload{Number: a.Number, Title: a.Title, Demand: a.Demand, Parts: make([]partPayload, 0, len(a.Parts))}
		for _, p := range a.Parts {
			q.Parts = append(q.Parts, partPayload{
				Narrative:     p.Narrative,
				NarrativeHTML: renderMarkdown(p.Narrative),
				Chart:         p.Chart,
			})
		}
		out = append(out, q)
	}
	return out, nil
}
