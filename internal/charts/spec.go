package charts

import (
	"fmt"
	"math"
	"strconv"

	"listingscope/domain/listing"
	"listingscope/internal/analysis"
	"listingscope/internal/dataset"
	"listingscope/internal/errors"
)

// Series is one trace of a chart. X holds numbers for scatter and line charts
// and category labels otherwise; a nil Y is a missing value.
type Series struct {
	Name string     `json:"name,omitempty"`
	X    []any      `json:"x"`
	Y    []*float64 `json:"y"`
}

// Grid is the body of a heatmap.
type Grid struct {
	X []string     `json:"x"`
	Y []string     `json:"y"`
	Z [][]*float64 `json:"z"`
}

// ChartSpec is everything a renderer needs to draw one chart.
type ChartSpec struct {
	Shape   Shape    `json:"shape"`
	Title   string   `json:"title"`
	XLabel  string   `json:"x_label"`
	YLabel  string   `json:"y_label"`
	Legend  string   `json:"legend,omitempty"`
	Series  []Series `json:"series"`
	Heatmap *Grid    `json:"heatmap,omitempty"`
}

// Points returns the number of values across all series.
func (c *ChartSpec) Points() int {
	n := 0
	for _, s := range c.Series {
		n += len(s.Y)
	}
	if c.Heatmap != nil {
		n += len(c.Heatmap.Z) * len(c.Heatmap.X)
	}
	return n
}

// Univariate plots a single column.
func Univariate(t *dataset.Table, column string) (*ChartSpec, error) {
	kind, err := plotKind(t, column)
	if err != nil {
		return nil, err
	}
	shape, err := SelectShape(IntentUnivariate, kind)
	if err != nil {
		return nil, err
	}

	switch shape {
	case ShapeScatter:
		values, err := t.Floats(column)
		if err != nil {
			return nil, err
		}
		s := Series{Name: column, X: make([]any, len(values)), Y: make([]*float64, len(values))}
		for i, v := range values {
			s.X[i] = i
			s.Y[i] = ptr(v)
		}
		return &ChartSpec{
			Shape:  ShapeScatter,
			Title:  "Univariate Scatter Plot: " + column,
			XLabel: "index",
			YLabel: column,
			Series: []Series{s},
		}, nil
	case ShapeBar:
		counts, err := analysis.CountBy(t, column)
		if err != nil {
			return nil, err
		}
		return &ChartSpec{
			Shape:  ShapeBar,
			Title:  "Univariate Bar Plot: " + column,
			XLabel: column,
			YLabel: "count",
			Series: []Series{singleSeries(counts, "count")},
		}, nil
	}
	return nil, errors.UnhandledColumnCombination(describe(IntentUnivariate, []listing.ColumnKind{kind}))
}

// Bivariate plots x against y.
func Bivariate(t *dataset.Table, x, y string) (*ChartSpec, error) {
	xKind, err := plotKind(t, x)
	if err != nil {
		return nil, err
	}
	yKind, err := plotKind(t, y)
	if err != nil {
		return nil, err
	}
	shape, err := SelectShape(IntentBivariate, xKind, yKind)
	if err != nil {
		return nil, err
	}

	switch shape {
	case ShapeScatter:
		return Scatter(t, x, y, fmt.Sprintf("%s vs %s", y, x))
	case ShapeBar:
		category, measure := x, y
		if xKind == listing.Numeric {
			category, measure = y, x
		}
		means, err := analysis.MeanBy(t, []string{category}, measure)
		if err != nil {
			return nil, err
		}
		return &ChartSpec{
			Shape:  ShapeBar,
			Title:  fmt.Sprintf("Average %s by %s", measure, category),
			XLabel: category,
			YLabel: measure,
			Series: []Series{singleSeries(means, measure)},
		}, nil
	case ShapeHistogram:
		counts, err := analysis.CountBy(t, x, y)
		if err != nil {
			return nil, err
		}
		spec := groupedSeries(counts, ShapeHistogram)
		spec.Title = fmt.Sprintf("%s vs %s", x, y)
		spec.XLabel, spec.YLabel, spec.Legend = x, "count", y
		return spec, nil
	}
	return nil, errors.UnhandledColumnCombination(describe(IntentBivariate, []listing.ColumnKind{xKind, yKind}))
}

// Scatter plots the raw values of two numeric columns, skipping rows where either is missing.
func Scatter(t *dataset.Table, x, y, title string) (*ChartSpec, error) {
	xs, err := t.Floats(x)
	if err != nil {
		return nil, err
	}
	ys, err := t.Floats(y)
	if err != nil {
		return nil, err
	}

	s := Series{X: []any{}, Y: []*float64{}}
	for i := range xs {
		if math.IsNaN(xs[i]) || math.IsNaN(ys[i]) {
			continue
		}
		s.X = append(s.X, xs[i])
		s.Y = append(s.Y, ptr(ys[i]))
	}
	return &ChartSpec{
		Shape:  ShapeScatter,
		Title:  title,
		XLabel: x,
		YLabel: y,
		Series: []Series{s},
	}, nil
}

// Heatmap draws a correlation matrix.
func Heatmap(m *analysis.CorrelationMatrix) *ChartSpec {
	return &ChartSpec{
		Shape:   ShapeHeatmap,
		Title:   "Correlation Heatmap",
		Series:  []Series{},
		Heatmap: &Grid{X: m.Columns, Y: m.Columns, Z: m.Values},
	}
}

// plotKind rejects columns that are not offered for plotting.
func plotKind(t *dataset.Table, column string) (listing.ColumnKind, error) {
	kind, err := t.Kind(column)
	if err != nil {
		return 0, err
	}
	if listing.IsKey(column) {
		return 0, errors.InvalidInput(fmt.Sprintf("column %q identifies rows and cannot be plotted", column))
	}
	return kind, nil
}

// singleSeries lays out a one-key aggregate as one trace.
func singleSeries(a *analysis.AggregateTable, name string) Series {
	s := Series{Name: name, X: make([]any, 0, a.Len()), Y: make([]*float64, 0, a.Len())}
	for _, row := range a.Rows {
		s.X = append(s.X, row.Keys[0])
		s.Y = append(s.Y, row.Value)
	}
	return s
}

// groupedSeries lays out a two-key aggregate with one trace per level of the second key.
// Every trace covers every level of the first key; absent combinations are nil.
func groupedSeries(a *analysis.AggregateTable, shape Shape) *ChartSpec {
	xLevels := a.Levels(0)
	spec := &ChartSpec{Shape: shape, Series: make([]Series, 0)}
	for _, level := range a.Levels(1) {
		s := Series{Name: level, X: make([]any, 0, len(xLevels)), Y: make([]*float64, 0, len(xLevels))}
		for _, x := range xLevels {
			v, _ := a.Lookup(x, level)
			s.X = append(s.X, axisValue(x, shape))
			s.Y = append(s.Y, v)
		}
		spec.Series = append(spec.Series, s)
	}
	return spec
}

// axisValue keeps line charts on a numeric axis when the key is a number.
func axisValue(key string, shape Shape) any {
	if shape == ShapeLine {
		if f, err := strconv.ParseFloat(key, 64); err == nil {
			return f
		}
	}
	return key
}

func ptr(v float64) *float64 {
	if math.IsNaN(v) {
		return nil
	}
	return &v
}
