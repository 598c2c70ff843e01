package dataset

import (
	"testing"

	"listingscope/domain/listing"
	"listingscope/internal/testkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// subsets returns every subset of values, the empty set included.
func subsets(values []string) [][]string {
	out := make([][]string, 0, 1<<len(values))
	for mask := 0; mask < 1<<len(values); mask++ {
		var s []string
		for i, v := range values {
			if mask&(1<<i) != 0 {
				s = append(s, v)
			}
		}
		out = append(out, s)
	}
	return out
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

func TestFilterIsExactlyTheConjunction(t *testing.T) {
	cfg := testkit.DefaultListingsConfig()
	cfg.Rows = 120
	table := mustTable(t, testkit.NewListingsGenerator(cfg).Records())

	all, err := DefaultSelection(table)
	require.NoError(t, err)

	rooms, err := table.Keys(listing.ColRoomType)
	require.NoError(t, err)
	hoods, err := table.Keys(listing.ColNeighbourhoodGroup)
	require.NoError(t, err)
	ids, err := table.Keys(listing.ColID)
	require.NoError(t, err)

	for _, r := range subsets(all.RoomTypes) {
		for _, n := range subsets(all.Neighbourhoods) {
			filtered, err := Filter(table, r, n)
			require.NoError(t, err)

			var want []string
			for i := range ids {
				if contains(r, rooms[i]) && contains(n, hoods[i]) {
					want = append(want, ids[i])
				}
			}

			got, err := filtered.Keys(listing.ColID)
			require.NoError(t, err)
			assert.Equal(t, len(want), len(got), "rooms=%v hoods=%v", r, n)
			if len(want) > 0 {
				assert.Equal(t, want, got)
			}
		}
	}
}

func TestFilterAllKeepsEveryRow(t *testing.T) {
	table := mustTable(t, testkit.NewListingsGenerator(testkit.DefaultListingsConfig()).Records())

	all, err := DefaultSelection(table)
	require.NoError(t, err)

	filtered, err := all.Apply(table)
	require.NoError(t, err)
	assert.Equal(t, table.Len(), filtered.Len())
}

func TestFilterEmptySetSelectsNothing(t *testing.T) {
	table := mustTable(t, testkit.TwoListings())
	all, err := DefaultSelection(table)
	require.NoError(t, err)

	byRoom, err := Filter(table, nil, all.Neighbourhoods)
	require.NoError(t, err)
	assert.Equal(t, 0, byRoom.Len())

	byHood, err := Filter(table, all.RoomTypes, []string{})
	require.NoError(t, err)
	assert.Equal(t, 0, byHood.Len())
	assert.Equal(t, table.Columns(), byHood.Columns())
}

func TestFilterUnknownValueSelectsNothing(t *testing.T) {
	table := mustTable(t, testkit.TwoListings())

	filtered, err := Filter(table, []string{"Treehouse"}, []string{"Brooklyn"})
	require.NoError(t, err)
	assert.Equal(t, 0, filtered.Len())
}

func TestFilterTwoRowScenario(t *testing.T) {
	table := mustTable(t, testkit.TwoListings())

	filtered, err := Filter(table, []string{"Private room"}, []string{"Brooklyn", "Manhattan"})
	require.NoError(t, err)
	require.Equal(t, 1, filtered.Len())

	prices, err := filtered.Floats(listing.ColPrice)
	require.NoError(t, err)
	assert.Equal(t, []float64{100}, prices)

	// the base table is untouched
	assert.Equal(t, 2, table.Len())
}

func TestDefaultSelectionFirstSeenOrder(t *testing.T) {
	table := mustTable(t, testkit.TwoListings())

	sel, err := DefaultSelection(table)
	require.NoError(t, err)
	assert.Equal(t, []string{"Private room", "Entire home/apt"}, sel.RoomTypes)
	assert.Equal(t, []string{"Brooklyn", "Manhattan"}, sel.Neighbourhoods)
}

func TestFacet(t *testing.T) {
	all := []string{"Private room", "Shared room"}

	assert.Equal(t, all, Facet(all, nil, false))
	assert.Equal(t, []string{"Shared room"}, Facet(all, []string{"Shared room", ""}, true))
	assert.Equal(t, []string{" Shared room "}, Facet(all, []string{" Shared room "}, true))

	none := Facet(all, []string{""}, true)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestFacetKeepsPaddedValues(t *testing.T) {
	table := mustTable(t, [][]string{
		{"id", "room_type", "neighbourhood_group", "price"},
		{"1", "Private room ", " Brooklyn", "100"},
		{"2", "Shared room", "Queens", "80"},
	})
	all, err := DefaultSelection(table)
	require.NoError(t, err)

	view, err := Filter(table,
		Facet(all.RoomTypes, all.RoomTypes, true),
		Facet(all.Neighbourhoods, all.Neighbourhoods, true))
	require.NoError(t, err)
	assert.Equal(t, 2, view.Len())

	view, err = Filter(table, Facet(all.RoomTypes, []string{"Private room "}, true), all.Neighbourhoods)
	require.NoError(t, err)
	assert.Equal(t, 1, view.Len())
}
