package dataset

import (
	"fmt"

	"listingscope/domain/listing"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// Selection is the state of the two facet widgets.
type Selection struct {
	RoomTypes      []string `json:"room_types"`
	Neighbourhoods []string `json:"neighbourhood_groups"`
}

// DefaultSelection selects every observed room type and neighbourhood group.
func DefaultSelection(t *Table) (Selection, error) {
	roomTypes, err := t.Distinct(listing.ColRoomType)
	if err != nil {
		return Selection{}, err
	}
	neighbourhoods, err := t.Distinct(listing.ColNeighbourhoodGroup)
	if err != nil {
		return Selection{}, err
	}
	return Selection{RoomTypes: roomTypes, Neighbourhoods: neighbourhoods}, nil
}

// Facet resolves one widget's state against the values it offers. A widget the caller
// never set selects all of them; a set widget keeps its non-empty values, possibly none.
// Values are matched exactly, surrounding whitespace included.
func Facet(all, picked []string, set bool) []string {
	if !set {
		return all
	}
	out := make([]string, 0, len(picked))
	for _, v := range picked {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

// Apply filters t by the selection.
func (s Selection) Apply(t *Table) (*Table, error) {
	return Filter(t, s.RoomTypes, s.Neighbourhoods)
}

// Filter keeps the rows whose room type is in roomTypes and whose neighbourhood group is in
// neighbourhoods. An empty set on either side selects nothing; the result then has zero rows
// and the same columns.
func Filter(t *Table, roomTypes, neighbourhoods []string) (*Table, error) {
	if len(roomTypes) == 0 || len(neighbourhoods) == 0 {
		return t.empty()
	}

	frame := t.frame.FilterAggregation(dataframe.And,
		dataframe.F{Colname: listing.ColRoomType, Comparator: series.In, Comparando: roomTypes},
		dataframe.F{Colname: listing.ColNeighbourhoodGroup, Comparator: series.In, Comparando: neighbourhoods},
	)
	if frame.Err != nil {
		return nil, fmt.Errorf("failed to filter listings: %w", frame.Err)
	}
	return t.derive(frame), nil
}

func (t *Table) empty() (*Table, error) {
	frame := t.frame.Subset([]int{})
	if frame.Err != nil {
		return nil, fmt.Errorf("failed to build empty view: %w", frame.Err)
	}
	return t.derive(frame), nil
}
