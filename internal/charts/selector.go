// Package charts decides which chart shape fits a plot request and builds chart specs
// the browser and the CLI both render.
package charts

import (
	"fmt"
	"strings"

	"listingscope/domain/listing"
	"listingscope/internal/errors"
)

// Shape is one of the chart shapes the dashboard draws.
type Shape string

const (
	ShapeScatter    Shape = "scatter"
	ShapeBar        Shape = "bar"
	ShapeGroupedBar Shape = "grouped_bar"
	ShapeHistogram  Shape = "histogram"
	ShapeHeatmap    Shape = "heatmap"
	ShapeLine       Shape = "line"
)

// Intent is the plot kind a user asked for.
type Intent int

const (
	IntentUnivariate Intent = iota + 1
	IntentBivariate
)

func (i Intent) String() string {
	switch i {
	case IntentUnivariate:
		return "univariate"
	case IntentBivariate:
		return "bivariate"
	default:
		return fmt.Sprintf("intent(%d)", int(i))
	}
}

// ParseIntent reads the plot kind of a request.
func ParseIntent(s string) (Intent, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "univariate":
		return IntentUnivariate, nil
	case "bivariate":
		return IntentBivariate, nil
	default:
		return 0, errors.InvalidInput(fmt.Sprintf("unknown plot type %q, want univariate or bivariate", s))
	}
}

// SelectShape maps an intent and the kinds of the chosen columns to a chart shape.
//
//	univariate numeric          -> scatter (values against row order)
//	univariate categorical      -> bar (value counts)
//	numeric x numeric           -> scatter
//	categorical x numeric       -> bar (mean of the numeric by the categorical), either order
//	categorical x categorical   -> histogram (counts, one series per level of the second)
//
// Anything else is a defect and reported as UnhandledColumnCombination.
func SelectShape(intent Intent, kinds ...listing.ColumnKind) (Shape, error) {
	switch {
	case intent == IntentUnivariate && len(kinds) == 1:
		switch kinds[0] {
		case listing.Numeric:
			return ShapeScatter, nil
		case listing.Categorical:
			return ShapeBar, nil
		}
	case intent == IntentBivariate && len(kinds) == 2:
		x, y := kinds[0], kinds[1]
		switch {
		case x == listing.Numeric && y == listing.Numeric:
			return ShapeScatter, nil
		case x == listing.Categorical && y == listing.Numeric,
			x == listing.Numeric && y == listing.Categorical:
			return ShapeBar, nil
		case x == listing.Categorical && y == listing.Categorical:
			return ShapeHistogram, nil
		}
	}
	return "", errors.UnhandledColumnCombination(describe(intent, kinds))
}

func describe(intent Intent, kinds []listing.ColumnKind) string {
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = k.String()
	}
	return fmt.Sprintf("%s (%s)", intent, strings.Join(names, " x "))
}
