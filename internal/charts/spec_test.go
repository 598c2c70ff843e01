package charts

import (
	"testing"

	"listingscope/domain/listing"
	"listingscope/internal/analysis"
	"listingscope/internal/dataset"
	"listingscope/internal/errors"
	"listingscope/internal/testkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustTable(t *testing.T, records [][]string) *dataset.Table {
	t.Helper()
	table, err := dataset.FromRecords(records)
	require.NoError(t, err)
	return table
}

func sample(t *testing.T) *dataset.Table {
	return mustTable(t, [][]string{
		{"id", "room_type", "neighbourhood_group", "price", "service_fee"},
		{"1", "Private room", "Brooklyn", "100", "20"},
		{"2", "Entire home/apt", "Manhattan", "300", ""},
		{"3", "Private room", "Manhattan", "200", "40"},
	})
}

func TestUnivariateNumeric(t *testing.T) {
	spec, err := Univariate(sample(t), listing.ColServiceFee)
	require.NoError(t, err)

	assert.Equal(t, ShapeScatter, spec.Shape)
	require.Len(t, spec.Series, 1)
	assert.Equal(t, []any{0, 1, 2}, spec.Series[0].X)
	assert.Nil(t, spec.Series[0].Y[1])
	assert.Equal(t, 40.0, *spec.Series[0].Y[2])
}

func TestUnivariateCategorical(t *testing.T) {
	spec, err := Univariate(sample(t), listing.ColRoomType)
	require.NoError(t, err)

	assert.Equal(t, ShapeBar, spec.Shape)
	assert.Equal(t, []any{"Private room", "Entire home/apt"}, spec.Series[0].X)
	assert.Equal(t, 2.0, *spec.Series[0].Y[0])
}

func TestUnivariateRejectsKeyAndUnknownColumns(t *testing.T) {
	_, err := Univariate(sample(t), listing.ColID)
	assert.True(t, errors.Is(err, errors.CodeInvalidInput))

	_, err = Univariate(sample(t), "nope")
	assert.True(t, errors.Is(err, errors.CodeUnknownColumn))
}

func TestBivariateScatterSkipsIncompletePairs(t *testing.T) {
	spec, err := Bivariate(sample(t), listing.ColPrice, listing.ColServiceFee)
	require.NoError(t, err)

	assert.Equal(t, ShapeScatter, spec.Shape)
	assert.Equal(t, "service_fee vs price", spec.Title)
	assert.Equal(t, []any{100.0, 200.0}, spec.Series[0].X)
}

func TestBivariateBarEitherOrder(t *testing.T) {
	for _, pair := range [][2]string{
		{listing.ColRoomType, listing.ColPrice},
		{listing.ColPrice, listing.ColRoomType},
	} {
		spec, err := Bivariate(sample(t), pair[0], pair[1])
		require.NoError(t, err)

		assert.Equal(t, ShapeBar, spec.Shape)
		assert.Equal(t, "Average price by room_type", spec.Title)
		assert.Equal(t, listing.ColRoomType, spec.XLabel)
		assert.Equal(t, []any{"Entire home/apt", "Private room"}, spec.Series[0].X)
		assert.Equal(t, 300.0, *spec.Series[0].Y[0])
		assert.Equal(t, 150.0, *spec.Series[0].Y[1])
	}
}

func TestBivariateHistogram(t *testing.T) {
	spec, err := Bivariate(sample(t), listing.ColNeighbourhoodGroup, listing.ColRoomType)
	require.NoError(t, err)

	assert.Equal(t, ShapeHistogram, spec.Shape)
	assert.Equal(t, listing.ColRoomType, spec.Legend)
	require.Len(t, spec.Series, 2)
	for _, s := range spec.Series {
		assert.Len(t, s.X, 2, "every trace spans every neighbourhood")
	}
}

func TestBivariateOnEmptyView(t *testing.T) {
	empty, err := dataset.Filter(sample(t), nil, nil)
	require.NoError(t, err)

	for _, pair := range [][2]string{
		{listing.ColPrice, listing.ColServiceFee},
		{listing.ColRoomType, listing.ColPrice},
		{listing.ColRoomType, listing.ColNeighbourhoodGroup},
	} {
		spec, err := Bivariate(empty, pair[0], pair[1])
		require.NoError(t, err)
		assert.Equal(t, 0, spec.Points())
	}
}

func TestHeatmap(t *testing.T) {
	m, err := analysis.Correlation(sample(t))
	require.NoError(t, err)

	spec := Heatmap(m)
	assert.Equal(t, ShapeHeatmap, spec.Shape)
	assert.Equal(t, []string{"price", "service_fee"}, spec.Heatmap.X)
	assert.Len(t, spec.Heatmap.Z, 2)
}

func TestAllPlotColumnPairsProduceCharts(t *testing.T) {
	table := mustTable(t, testkit.NewListingsGenerator(testkit.DefaultListingsConfig()).Records())
	numeric, categorical := table.PlotColumns()
	columns := append(numeric, categorical...)

	for _, c := range columns {
		_, err := Univariate(table, c)
		require.NoError(t, err, c)
	}
	for _, x := range columns {
		for _, y := range columns {
			_, err := Bivariate(table, x, y)
			require.NoError(t, err, "%s x %s", x, y)
		}
	}
}
