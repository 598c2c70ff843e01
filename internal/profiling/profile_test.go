package profiling

import (
	"testing"

	"listingscope/domain/listing"
	"listingscope/internal/dataset"
	"listingscope/internal/testkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfile(t *testing.T) {
	table, err := dataset.FromRecords([][]string{
		{"id", "room_type", "neighbourhood_group", "price", "reviews_per_month"},
		{"1", "Private room", "Brooklyn", "100", ""},
		{"2", "Entire home/apt", "Manhattan", "300", ""},
		{"3", "Private room", "Queens", "200", ""},
	})
	require.NoError(t, err)

	profiles, err := Profile(table)
	require.NoError(t, err)
	require.Len(t, profiles, 5)

	byName := map[string]ColumnProfile{}
	for _, p := range profiles {
		byName[p.Name] = p
	}

	price := byName[listing.ColPrice]
	assert.Equal(t, "int64", price.DType)
	assert.Equal(t, listing.Numeric, price.Kind)
	assert.Equal(t, 3, price.NonNull)
	require.NotNil(t, price.Distribution)
	assert.Equal(t, 100.0, price.Distribution.Min)
	assert.Equal(t, 300.0, price.Distribution.Max)
	assert.Equal(t, 200.0, price.Distribution.Mean)
	assert.Equal(t, listing.Describe(listing.ColPrice), price.Description)

	rpm := byName[listing.ColReviewsPerMonth]
	assert.Equal(t, 0, rpm.NonNull)
	assert.Equal(t, 3, rpm.Null)

	rooms := byName[listing.ColRoomType]
	assert.Equal(t, "object", rooms.DType)
	assert.Equal(t, 2, rooms.Unique)
	assert.Equal(t, []string{"Private room", "Entire home/apt"}, rooms.Values)
	assert.Equal(t, []string{"Brooklyn", "Manhattan", "Queens"}, byName[listing.ColNeighbourhoodGroup].Values)
	assert.Nil(t, rooms.Distribution)
}

func TestProfileOmitsLongValueLists(t *testing.T) {
	cfg := testkit.DefaultListingsConfig()
	cfg.Rows = 300
	table, err := dataset.FromRecords(testkit.NewListingsGenerator(cfg).Records())
	require.NoError(t, err)

	profiles, err := Profile(table)
	require.NoError(t, err)
	for _, p := range profiles {
		if p.Name == listing.ColLastReviewDate {
			assert.Greater(t, p.Unique, maxListedValues)
			assert.Nil(t, p.Values)
		}
	}
}

func TestAnalyzeDistribution(t *testing.T) {
	d, err := AnalyzeDistribution([]float64{1, 2, 3, 4, 100})
	require.NoError(t, err)
	assert.Equal(t, 1.0, d.Min)
	assert.Equal(t, 100.0, d.Max)
	assert.Equal(t, 22.0, d.Mean)
	assert.Equal(t, 3.0, d.Median)
	assert.Equal(t, 1, d.Outliers)
	assert.Greater(t, d.Skewness, 0.0)

	_, err = AnalyzeDistribution(nil)
	assert.Error(t, err)
}
