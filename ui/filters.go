package ui

import (
	"net/url"

	"github.com/gin-gonic/gin"

	"listingscope/domain/listing"
	"listingscope/internal/dataset"
)

// viewState is the loaded table plus the slice of it the request asked for.
type viewState struct {
	base     *dataset.Table
	view     *dataset.Table
	options  dataset.Selection
	selected dataset.Selection
}

// loadView reads the shared table and applies the facet selection in the query string.
func (s *Server) loadView(c *gin.Context) (*viewState, error) {
	base, err := s.holder.Get(c.Request.Context())
	if err != nil {
		return nil, err
	}
	options, err := dataset.DefaultSelection(base)
	if err != nil {
		return nil, err
	}
	selected := selectionFromQuery(c.Request.URL.Query(), options)
	view, err := selected.Apply(base)
	if err != nil {
		return nil, err
	}
	return &viewState{base: base, view: view, options: options, selected: selected}, nil
}

// selectionFromQuery reads the repeated room_type and neighbourhood_group parameters.
// An absent parameter selects every observed value; a parameter whose values are all
// blank selects nothing.
func selectionFromQuery(q url.Values, all dataset.Selection) dataset.Selection {
	return dataset.Selection{
		RoomTypes:      facet(q, listing.ColRoomType, all.RoomTypes),
		Neighbourhoods: facet(q, listing.ColNeighbourhoodGroup, all.Neighbourhoods),
	}
}

func facet(q url.Values, key string, all []string) []string {
	values, present := q[key]
	return dataset.Facet(all, values, present)
}

// encodeSelection renders a selection back into query form so page links keep it.
func encodeSelection(sel dataset.Selection) url.Values {
	q := url.Values{}
	q[listing.ColRoomType] = append([]string{""}, sel.RoomTypes...)
	q[listing.ColNeighbourhoodGroup] = append([]string{""}, sel.Neighbourhoods...)
	return q
}
