// Package analysis holds the group-by and reduce functions the dashboard draws its tables and
// charts from. Every function is pure: it reads a table and returns a new, small result.
package analysis

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"listingscope/domain/listing"
	"listingscope/internal/dataset"
	"listingscope/internal/errors"

	"github.com/montanaflynn/stats"
)

// Func names the reduction an AggregateTable holds.
type Func string

const (
	FuncMean  Func = "mean"
	FuncCount Func = "count"
)

// AggregateRow is one key combination and its reduced value.
// Value is nil when the group has no usable measure values.
type AggregateRow struct {
	Keys  []string `json:"keys"`
	Value *float64 `json:"value"`
	Rows  int      `json:"rows"`
}

// AggregateTable is a small derived table keyed by one or two columns.
type AggregateTable struct {
	Keys    []string       `json:"keys"`
	Measure string         `json:"measure,omitempty"`
	Func    Func           `json:"func"`
	Rows    []AggregateRow `json:"rows"`
}

// Len returns the number of groups.
func (a *AggregateTable) Len() int {
	return len(a.Rows)
}

// Levels returns the distinct values of key i in row order.
func (a *AggregateTable) Levels(i int) []string {
	seen := make(map[string]bool)
	levels := []string{}
	for _, row := range a.Rows {
		if i < len(row.Keys) && !seen[row.Keys[i]] {
			seen[row.Keys[i]] = true
			levels = append(levels, row.Keys[i])
		}
	}
	return levels
}

// Lookup returns the value stored for a key combination.
func (a *AggregateTable) Lookup(keys ...string) (*float64, bool) {
	for _, row := range a.Rows {
		if equalKeys(row.Keys, keys) {
			return row.Value, true
		}
	}
	return nil, false
}

// SortByValue orders rows by value, descending when desc is set. Missing values go last.
func (a *AggregateTable) SortByValue(desc bool) {
	sort.SliceStable(a.Rows, func(i, j int) bool {
		vi, vj := a.Rows[i].Value, a.Rows[j].Value
		switch {
		case vi == nil:
			return false
		case vj == nil:
			return true
		case desc:
			return *vi > *vj
		default:
			return *vi < *vj
		}
	})
}

// Without returns a copy of a without the rows whose key i equals value.
func (a *AggregateTable) Without(i int, value string) *AggregateTable {
	out := *a
	out.Rows = make([]AggregateRow, 0, len(a.Rows))
	for _, row := range a.Rows {
		if i < len(row.Keys) && row.Keys[i] == value {
			continue
		}
		out.Rows = append(out.Rows, row)
	}
	return &out
}

type group struct {
	keys   []string
	values []float64
	rows   int
}

// groupRows buckets row indexes by key combination. Rows with a missing key are dropped.
func groupRows(t *dataset.Table, keys []string, measure []float64) ([]*group, error) {
	if len(keys) == 0 || len(keys) > 2 {
		return nil, errors.InvalidInput(fmt.Sprintf("group by takes one or two keys, got %d", len(keys)))
	}

	columns := make([][]string, len(keys))
	for i, key := range keys {
		values, err := t.Keys(key)
		if err != nil {
			return nil, err
		}
		columns[i] = values
	}

	index := make(map[string]*group)
	var groups []*group
	for row := 0; row < t.Len(); row++ {
		combo := make([]string, len(keys))
		missing := false
		for i := range keys {
			combo[i] = columns[i][row]
			if combo[i] == "" {
				missing = true
				break
			}
		}
		if missing {
			continue
		}

		id := strings.Join(combo, "\x1f")
		g, ok := index[id]
		if !ok {
			g = &group{keys: combo}
			index[id] = g
			groups = append(groups, g)
		}
		g.rows++
		if measure != nil && !math.IsNaN(measure[row]) {
			g.values = append(g.values, measure[row])
		}
	}
	return groups, nil
}

// MeanBy averages measure per distinct combination of keys present in t.
// Means are rounded to 2 decimal places and never leave the group's [min, max].
// Rows are ordered by key, numeric keys numerically.
func MeanBy(t *dataset.Table, keys []string, measure string) (*AggregateTable, error) {
	values, err := t.Floats(measure)
	if err != nil {
		return nil, err
	}
	groups, err := groupRows(t, keys, values)
	if err != nil {
		return nil, err
	}

	out := &AggregateTable{
		Keys:    append([]string(nil), keys...),
		Measure: measure,
		Func:    FuncMean,
		Rows:    make([]AggregateRow, 0, len(groups)),
	}
	for _, g := range groups {
		out.Rows = append(out.Rows, AggregateRow{Keys: g.keys, Value: boundedMean(g.values), Rows: g.rows})
	}
	sortByKeys(t, keys, out.Rows)
	return out, nil
}

// CountBy counts rows per distinct combination of keys, most frequent first.
func CountBy(t *dataset.Table, keys ...string) (*AggregateTable, error) {
	groups, err := groupRows(t, keys, nil)
	if err != nil {
		return nil, err
	}

	out := &AggregateTable{
		Keys: append([]string(nil), keys...),
		Func: FuncCount,
		Rows: make([]AggregateRow, 0, len(groups)),
	}
	for _, g := range groups {
		n := float64(g.rows)
		out.Rows = append(out.Rows, AggregateRow{Keys: g.keys, Value: &n, Rows: g.rows})
	}
	sortByKeys(t, keys, out.Rows)
	sort.SliceStable(out.Rows, func(i, j int) bool {
		return out.Rows[i].Rows > out.Rows[j].Rows
	})
	return out, nil
}

// boundedMean is the 2 dp mean of values, clamped into their range. nil when values is empty.
func boundedMean(values []float64) *float64 {
	if len(values) == 0 {
		return nil
	}
	mean, err := stats.Mean(values)
	if err != nil {
		return nil
	}
	rounded, err := stats.Round(mean, 2)
	if err != nil {
		return nil
	}
	lo, _ := stats.Min(values)
	hi, _ := stats.Max(values)
	rounded = math.Max(lo, math.Min(hi, rounded))
	return &rounded
}

// round2 rounds for display; NaN stays NaN.
func round2(v float64) float64 {
	r, err := stats.Round(v, 2)
	if err != nil {
		return v
	}
	return r
}

func sortByKeys(t *dataset.Table, keys []string, rows []AggregateRow) {
	numeric := make([]bool, len(keys))
	for i, key := range keys {
		c, err := t.Column(key)
		numeric[i] = err == nil && c.Kind == listing.Numeric
	}
	sort.SliceStable(rows, func(i, j int) bool {
		for k := range keys {
			a, b := rows[i].Keys[k], rows[j].Keys[k]
			if a == b {
				continue
			}
			return lessKey(a, b, numeric[k])
		}
		return false
	})
}

func lessKey(a, b string, numeric bool) bool {
	if numeric {
		fa, errA := strconv.ParseFloat(a, 64)
		fb, errB := strconv.ParseFloat(b, 64)
		if errA == nil && errB == nil {
			return fa < fb
		}
	}
	return a < b
}

func equalKeys(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
