package charts

import (
	"testing"

	"listingscope/domain/listing"
	"listingscope/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allKinds = []listing.ColumnKind{listing.Numeric, listing.Categorical}

func TestSelectShapeUnivariate(t *testing.T) {
	tests := []struct {
		kind listing.ColumnKind
		want Shape
	}{
		{listing.Numeric, ShapeScatter},
		{listing.Categorical, ShapeBar},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			got, err := SelectShape(IntentUnivariate, tt.kind)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSelectShapeBivariateIsTotal(t *testing.T) {
	for _, x := range allKinds {
		for _, y := range allKinds {
			got, err := SelectShape(IntentBivariate, x, y)
			require.NoError(t, err, "%s x %s", x, y)

			switch {
			case x == listing.Numeric && y == listing.Numeric:
				assert.Equal(t, ShapeScatter, got)
			case x == listing.Categorical && y == listing.Categorical:
				assert.Equal(t, ShapeHistogram, got)
			default:
				assert.Equal(t, ShapeBar, got, "%s x %s", x, y)
			}
		}
	}
}

func TestSelectShapeRejectsWrongArity(t *testing.T) {
	cases := []struct {
		name   string
		intent Intent
		kinds  []listing.ColumnKind
	}{
		{"univariate without column", IntentUnivariate, nil},
		{"univariate with two columns", IntentUnivariate, []listing.ColumnKind{listing.Numeric, listing.Numeric}},
		{"bivariate with one column", IntentBivariate, []listing.ColumnKind{listing.Numeric}},
		{"unknown intent", Intent(9), []listing.ColumnKind{listing.Numeric}},
		{"unknown kind", IntentUnivariate, []listing.ColumnKind{listing.ColumnKind(7)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := SelectShape(tc.intent, tc.kinds...)
			assert.True(t, errors.Is(err, errors.CodeUnhandledColumnCombination))
		})
	}
}

func TestParseIntent(t *testing.T) {
	intent, err := ParseIntent(" Bivariate ")
	require.NoError(t, err)
	assert.Equal(t, IntentBivariate, intent)

	_, err = ParseIntent("trivariate")
	assert.True(t, errors.Is(err, errors.CodeInvalidInput))
}
