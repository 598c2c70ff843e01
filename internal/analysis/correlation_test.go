package analysis

import (
	"testing"

	"listingscope/domain/listing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCorrelation(t *testing.T) {
	table := mustTable(t, [][]string{
		{"id", "room_type", "neighbourhood_group", "price", "service_fee", "minimum_nights", "availability_365"},
		{"1", "Private room", "Queens", "100", "20", "5", "30"},
		{"2", "Private room", "Queens", "200", "40", "4", "30"},
		{"3", "Private room", "Queens", "300", "60", "3", "30"},
		{"4", "Private room", "Queens", "400", "", "1", "30"},
	})

	m, err := Correlation(table)
	require.NoError(t, err)

	assert.Equal(t, []string{"price", "service_fee", "minimum_nights", "availability_365"}, m.Columns)
	assert.NotContains(t, m.Columns, listing.ColID)

	r, ok := m.At(listing.ColPrice, listing.ColServiceFee)
	require.True(t, ok)
	require.NotNil(t, r)
	assert.Equal(t, 1.0, *r)

	r, _ = m.At(listing.ColMinimumNights, listing.ColPrice)
	require.NotNil(t, r)
	assert.Equal(t, -0.98, *r)

	r, _ = m.At(listing.ColPrice, listing.ColAvailability365)
	assert.Nil(t, r, "zero variance has no coefficient")

	diag, _ := m.At(listing.ColPrice, listing.ColPrice)
	assert.Equal(t, 1.0, *diag)

	_, ok = m.At(listing.ColPrice, "nope")
	assert.False(t, ok)
}
