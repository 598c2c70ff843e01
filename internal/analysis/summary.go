package analysis

import (
	"math"

	"listingscope/domain/listing"
	"listingscope/internal/dataset"

	"github.com/montanaflynn/stats"
)

// Summary holds the headline metrics of a view.
type Summary struct {
	TotalListings  int      `json:"total_listings"`
	MeanPrice      *float64 `json:"mean_price"`
	Neighbourhoods int      `json:"neighbourhoods"`
	RoomTypes      int      `json:"room_types"`
}

// Summarize computes the headline metrics. Each metric is its own scan over t;
// an empty view gives zero counts and a nil mean price.
func Summarize(t *dataset.Table) (Summary, error) {
	s := Summary{TotalListings: t.Len()}

	var err error
	if s.MeanPrice, err = columnMean(t, listing.ColPrice); err != nil {
		return Summary{}, err
	}
	if s.Neighbourhoods, err = distinctCount(t, listing.ColNeighbourhoodGroup); err != nil {
		return Summary{}, err
	}
	if s.RoomTypes, err = distinctCount(t, listing.ColRoomType); err != nil {
		return Summary{}, err
	}
	return s, nil
}

// Insights is the short "key insights" block shown under the row preview.
type Insights struct {
	AveragePrice           *float64 `json:"average_price"`
	MinPrice               *float64 `json:"min_price"`
	MaxPrice               *float64 `json:"max_price"`
	CommonRoomType         string   `json:"common_room_type"`
	PopularNeighbourhood   string   `json:"popular_neighbourhood"`
	AverageReviewsPerMonth *float64 `json:"average_reviews_per_month"`
}

// ComputeInsights derives the insights block. Columns the table lacks leave their field empty.
func ComputeInsights(t *dataset.Table) (Insights, error) {
	var (
		in  Insights
		err error
	)
	if in.AveragePrice, err = columnMean(t, listing.ColPrice); err != nil {
		return Insights{}, err
	}
	if in.MinPrice, in.MaxPrice, err = columnRange(t, listing.ColPrice); err != nil {
		return Insights{}, err
	}
	if in.CommonRoomType, err = Mode(t, listing.ColRoomType); err != nil {
		return Insights{}, err
	}
	if in.PopularNeighbourhood, err = Mode(t, listing.ColNeighbourhoodGroup); err != nil {
		return Insights{}, err
	}
	if in.AverageReviewsPerMonth, err = columnMean(t, listing.ColReviewsPerMonth); err != nil {
		return Insights{}, err
	}
	return in, nil
}

// Mode returns the most frequent non-missing value of column, the smallest one on ties.
// A view with no values gives listing.NotAvailable.
func Mode(t *dataset.Table, column string) (string, error) {
	c, err := t.Column(column)
	if err != nil {
		return "", err
	}
	keys, err := t.Keys(column)
	if err != nil {
		return "", err
	}

	counts := make(map[string]int)
	for _, k := range keys {
		if k != "" {
			counts[k]++
		}
	}

	best, bestCount := listing.NotAvailable, 0
	numeric := c.Kind == listing.Numeric
	for value, n := range counts {
		if n > bestCount || (n == bestCount && lessKey(value, best, numeric)) {
			best, bestCount = value, n
		}
	}
	return best, nil
}

// DemandRow is one neighbourhood of the location demand table.
type DemandRow struct {
	Key   string              `json:"key"`
	Means map[string]*float64 `json:"means"`
	Count int                 `json:"listing_count"`
}

// DemandTable holds several per-key means side by side with the listing count.
type DemandTable struct {
	Key      string      `json:"key"`
	Measures []string    `json:"measures"`
	Rows     []DemandRow `json:"rows"`
}

// MultiMeanBy averages every measure per value of key. Measures the table lacks are skipped.
func MultiMeanBy(t *dataset.Table, key string, measures []string) (*DemandTable, error) {
	counts, err := CountBy(t, key)
	if err != nil {
		return nil, err
	}
	sortByKeys(t, []string{key}, counts.Rows)

	out := &DemandTable{Key: key, Measures: []string{}, Rows: make([]DemandRow, 0, counts.Len())}
	for _, row := range counts.Rows {
		out.Rows = append(out.Rows, DemandRow{Key: row.Keys[0], Means: map[string]*float64{}, Count: row.Rows})
	}

	for _, measure := range measures {
		if !t.Has(measure) {
			continue
		}
		means, err := MeanBy(t, []string{key}, measure)
		if err != nil {
			return nil, err
		}
		out.Measures = append(out.Measures, measure)
		for i := range out.Rows {
			v, _ := means.Lookup(out.Rows[i].Key)
			out.Rows[i].Means[measure] = v
		}
	}
	return out, nil
}

// Mean returns the value stored for measure in row, nil when absent.
func (r DemandRow) Mean(measure string) *float64 {
	return r.Means[measure]
}

func columnMean(t *dataset.Table, column string) (*float64, error) {
	values, err := presentFloats(t, column)
	if err != nil || len(values) == 0 {
		return nil, err
	}
	mean, err := stats.Mean(values)
	if err != nil {
		return nil, nil
	}
	return &mean, nil
}

func columnRange(t *dataset.Table, column string) (*float64, *float64, error) {
	values, err := presentFloats(t, column)
	if err != nil || len(values) == 0 {
		return nil, nil, err
	}
	lo, _ := stats.Min(values)
	hi, _ := stats.Max(values)
	return &lo, &hi, nil
}

// presentFloats drops missing cells. A column the table lacks yields no values.
func presentFloats(t *dataset.Table, column string) ([]float64, error) {
	if !t.Has(column) {
		return nil, nil
	}
	values, err := t.Floats(column)
	if err != nil {
		return nil, err
	}
	present := values[:0:0]
	for _, v := range values {
		if !math.IsNaN(v) {
			present = append(present, v)
		}
	}
	return present, nil
}

func distinctCount(t *dataset.Table, column string) (int, error) {
	values, err := t.Distinct(column)
	if err != nil {
		return 0, err
	}
	return len(values), nil
}
