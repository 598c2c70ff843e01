// Package profiling builds the data dictionary: one profile per column of a table.
package profiling

import (
	"math"

	"listingscope/domain/listing"
	"listingscope/internal/dataset"
)

// maxListedValues is the largest number of distinct values a categorical profile lists.
const maxListedValues = 10

// ColumnProfile describes one column for the data dictionary.
type ColumnProfile struct {
	Name        string             `json:"name"`
	Label       string             `json:"label"`
	Description string             `json:"description"`
	DType       string             `json:"dtype"`
	Kind        listing.ColumnKind `json:"kind"`
	NonNull     int                `json:"non_null"`
	Null        int                `json:"null"`

	// Numeric columns with at least one value
	Distribution *Distribution `json:"distribution,omitempty"`

	// Categorical columns
	Unique int      `json:"unique,omitempty"`
	Values []string `json:"values,omitempty"`
}

// Profile describes every column of t in table order.
func Profile(t *dataset.Table) ([]ColumnProfile, error) {
	columns := t.Columns()
	profiles := make([]ColumnProfile, 0, len(columns))
	for _, c := range columns {
		p, err := profileColumn(t, c)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, nil
}

func profileColumn(t *dataset.Table, c dataset.Column) (ColumnProfile, error) {
	missing, err := t.MissingCount(c.Name)
	if err != nil {
		return ColumnProfile{}, err
	}

	p := ColumnProfile{
		Name:        c.Name,
		Label:       listing.Label(c.Name),
		Description: listing.Describe(c.Name),
		DType:       c.DType,
		Kind:        c.Kind,
		NonNull:     t.Len() - missing,
		Null:        missing,
	}

	if c.Kind == listing.Numeric {
		values, err := t.Floats(c.Name)
		if err != nil {
			return ColumnProfile{}, err
		}
		present := make([]float64, 0, len(values))
		for _, v := range values {
			if !math.IsNaN(v) {
				present = append(present, v)
			}
		}
		if len(present) > 0 {
			d, err := AnalyzeDistribution(present)
			if err != nil {
				return ColumnProfile{}, err
			}
			p.Distribution = &d
		}
		return p, nil
	}

	distinct, err := t.Distinct(c.Name)
	if err != nil {
		return ColumnProfile{}, err
	}
	p.Unique = len(distinct)
	if len(distinct) <= maxListedValues {
		p.Values = distinct
	}
	return p, nil
}
