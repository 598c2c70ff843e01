package analysis

import (
	"testing"

	"listingscope/domain/listing"
	"listingscope/internal/dataset"
	"listingscope/internal/testkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModeOnEmptyView(t *testing.T) {
	table := mustTable(t, testkit.TwoListings())
	empty, err := dataset.Filter(table, []string{}, []string{"Brooklyn"})
	require.NoError(t, err)

	mode, err := Mode(empty, listing.ColRoomType)
	require.NoError(t, err)
	assert.Equal(t, listing.NotAvailable, mode)
}

func TestModePicksSmallestOnTies(t *testing.T) {
	table := mustTable(t, [][]string{
		{"room_type", "neighbourhood_group", "minimum_nights"},
		{"Shared room", "Queens", "3"},
		{"Private room", "Queens", "10"},
		{"Private room", "Bronx", "3"},
		{"Shared room", "Bronx", "10"},
		{"Hotel room", "Bronx", "2"},
	})

	mode, err := Mode(table, listing.ColRoomType)
	require.NoError(t, err)
	assert.Equal(t, "Private room", mode)

	nights, err := Mode(table, listing.ColMinimumNights)
	require.NoError(t, err)
	assert.Equal(t, "3", nights)

	hood, err := Mode(table, listing.ColNeighbourhoodGroup)
	require.NoError(t, err)
	assert.Equal(t, "Bronx", hood)
}

func TestSummarize(t *testing.T) {
	table := mustTable(t, testkit.TwoListings())

	s, err := Summarize(table)
	require.NoError(t, err)
	assert.Equal(t, 2, s.TotalListings)
	require.NotNil(t, s.MeanPrice)
	assert.Equal(t, 200.0, *s.MeanPrice)
	assert.Equal(t, 2, s.Neighbourhoods)
	assert.Equal(t, 2, s.RoomTypes)
}

func TestSummarizeEmptyView(t *testing.T) {
	table := mustTable(t, testkit.TwoListings())
	empty, err := dataset.Filter(table, nil, nil)
	require.NoError(t, err)

	s, err := Summarize(empty)
	require.NoError(t, err)
	assert.Equal(t, Summary{}, s)
}

func TestComputeInsights(t *testing.T) {
	table := mustTable(t, [][]string{
		{"room_type", "neighbourhood_group", "price", "reviews_per_month"},
		{"Private room", "Brooklyn", "100", "1"},
		{"Private room", "Manhattan", "300", ""},
		{"Entire home/apt", "Brooklyn", "200", "2"},
	})

	in, err := ComputeInsights(table)
	require.NoError(t, err)
	assert.Equal(t, 200.0, *in.AveragePrice)
	assert.Equal(t, 100.0, *in.MinPrice)
	assert.Equal(t, 300.0, *in.MaxPrice)
	assert.Equal(t, "Private room", in.CommonRoomType)
	assert.Equal(t, "Brooklyn", in.PopularNeighbourhood)
	assert.Equal(t, 1.5, *in.AverageReviewsPerMonth)
}

func TestComputeInsightsWithoutOptionalColumns(t *testing.T) {
	table := mustTable(t, [][]string{
		{"room_type", "neighbourhood_group"},
		{"Private room", "Brooklyn"},
	})

	in, err := ComputeInsights(table)
	require.NoError(t, err)
	assert.Nil(t, in.AveragePrice)
	assert.Nil(t, in.AverageReviewsPerMonth)
	assert.Equal(t, "Private room", in.CommonRoomType)
}

func TestMultiMeanBy(t *testing.T) {
	table := mustTable(t, [][]string{
		{"room_type", "neighbourhood_group", "price", "reviews_per_month"},
		{"Private room", "Queens", "100", "1"},
		{"Private room", "Queens", "200", "2"},
		{"Private room", "Bronx", "50", ""},
	})

	demand, err := MultiMeanBy(table, listing.ColNeighbourhoodGroup,
		[]string{listing.ColReviewsPerMonth, listing.ColPrice, listing.ColAvailability365})
	require.NoError(t, err)

	assert.Equal(t, []string{listing.ColReviewsPerMonth, listing.ColPrice}, demand.Measures)
	require.Len(t, demand.Rows, 2)

	bronx, queens := demand.Rows[0], demand.Rows[1]
	assert.Equal(t, "Bronx", bronx.Key)
	assert.Equal(t, 1, bronx.Count)
	assert.Nil(t, bronx.Mean(listing.ColReviewsPerMonth))
	assert.Equal(t, 50.0, *bronx.Mean(listing.ColPrice))

	assert.Equal(t, 2, queens.Count)
	assert.Equal(t, 1.5, *queens.Mean(listing.ColReviewsPerMonth))
	assert.Equal(t, 150.0, *queens.Mean(listing.ColPrice))
}
