package dataset

import (
	"fmt"
	"math"
	"strconv"

	"listingscope/domain/listing"
	"listingscope/internal/errors"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// missingTokens are the cell values read as missing.
var missingTokens = []string{"", "NA", "NaN", "nan", "N/A", "null", "NULL", "<nil>"}

// Column describes one column of a Table. Kind is computed once, when the table is built.
type Column struct {
	Name  string             `json:"name"`
	Kind  listing.ColumnKind `json:"kind"`
	DType string             `json:"dtype"`
}

// Table is an immutable, column-oriented set of listing rows.
// Filtered tables are new values; nothing ever writes back into a Table.
type Table struct {
	frame   dataframe.DataFrame
	columns []Column
	index   map[string]int
}

// FromRecords builds a Table from a header row followed by data rows.
// The two facet columns must be present; every other column is classified by its detected type.
func FromRecords(records [][]string) (*Table, error) {
	if len(records) < 2 {
		return nil, fmt.Errorf("need a header row and at least one data row, got %d rows", len(records))
	}

	header := records[0]
	for _, required := range []string{listing.ColRoomType, listing.ColNeighbourhoodGroup} {
		if !containsString(header, required) {
			return nil, fmt.Errorf("required column %q is missing", required)
		}
	}

	frame := dataframe.LoadRecords(records,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(true),
		dataframe.NaNValues(missingTokens),
		dataframe.WithTypes(map[string]series.Type{
			listing.ColRoomType:           series.String,
			listing.ColNeighbourhoodGroup: series.String,
		}),
	)
	if frame.Err != nil {
		return nil, fmt.Errorf("failed to load records: %w", frame.Err)
	}

	names := frame.Names()
	types := frame.Types()
	columns := make([]Column, len(names))
	for i, name := range names {
		columns[i] = classify(name, types[i])
	}

	return newTable(frame, columns), nil
}

func newTable(frame dataframe.DataFrame, columns []Column) *Table {
	index := make(map[string]int, len(columns))
	for i, c := range columns {
		index[c.Name] = i
	}
	return &Table{frame: frame, columns: columns, index: index}
}

// derive wraps a frame produced from t, keeping t's classification.
func (t *Table) derive(frame dataframe.DataFrame) *Table {
	return &Table{frame: frame, columns: t.columns, index: t.index}
}

func classify(name string, typ series.Type) Column {
	switch typ {
	case series.Int:
		return Column{Name: name, Kind: listing.Numeric, DType: "int64"}
	case series.Float:
		return Column{Name: name, Kind: listing.Numeric, DType: "float64"}
	case series.Bool:
		return Column{Name: name, Kind: listing.Categorical, DType: "bool"}
	default:
		return Column{Name: name, Kind: listing.Categorical, DType: "object"}
	}
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return t.frame.Nrow()
}

// Columns returns the column descriptions in file order.
func (t *Table) Columns() []Column {
	out := make([]Column, len(t.columns))
	copy(out, t.columns)
	return out
}

// Has reports whether the table carries a column.
func (t *Table) Has(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Column looks up a column description.
func (t *Table) Column(name string) (Column, error) {
	i, ok := t.index[name]
	if !ok {
		return Column{}, errors.UnknownColumn(name)
	}
	return t.columns[i], nil
}

// Kind returns the classification of a column.
func (t *Table) Kind(name string) (listing.ColumnKind, error) {
	c, err := t.Column(name)
	if err != nil {
		return 0, err
	}
	return c.Kind, nil
}

// PlotColumns splits the columns offered for plotting by kind. Key columns are left out.
func (t *Table) PlotColumns() (numeric, categorical []string) {
	numeric = []string{}
	categorical = []string{}
	for _, c := range t.columns {
		switch {
		case listing.IsKey(c.Name):
		case c.Kind == listing.Numeric:
			numeric = append(numeric, c.Name)
		default:
			categorical = append(categorical, c.Name)
		}
	}
	return numeric, categorical
}

// Floats returns a numeric column with NaN for missing cells.
func (t *Table) Floats(name string) ([]float64, error) {
	c, err := t.Column(name)
	if err != nil {
		return nil, err
	}
	if c.Kind != listing.Numeric {
		return nil, errors.InvalidInput(fmt.Sprintf("column %q is not numeric", name))
	}
	return t.frame.Col(name).Float(), nil
}

// Keys returns a column rendered as grouping keys, "" for missing cells.
// Numeric values use the shortest exact form, so 2019.0 and 2019 both read "2019".
func (t *Table) Keys(name string) ([]string, error) {
	c, err := t.Column(name)
	if err != nil {
		return nil, err
	}

	col := t.frame.Col(name)
	if c.Kind == listing.Numeric {
		values := col.Float()
		keys := make([]string, len(values))
		for i, v := range values {
			if !math.IsNaN(v) {
				keys[i] = strconv.FormatFloat(v, 'f', -1, 64)
			}
		}
		return keys, nil
	}

	records := col.Records()
	nan := col.IsNaN()
	for i := range records {
		if nan[i] {
			records[i] = ""
		}
	}
	return records, nil
}

// Distinct returns the non-missing values of a column in first-seen order.
func (t *Table) Distinct(name string) ([]string, error) {
	keys, err := t.Keys(name)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	out := []string{}
	for _, k := range keys {
		if k != "" && !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	return out, nil
}

// MissingCount returns how many cells of a column are missing.
func (t *Table) MissingCount(name string) (int, error) {
	if _, err := t.Column(name); err != nil {
		return 0, err
	}
	n := 0
	for _, nan := range t.frame.Col(name).IsNaN() {
		if nan {
			n++
		}
	}
	return n, nil
}

// Rows returns up to limit rows as column -> value maps, for display.
// Numbers are float64, missing cells are nil.
func (t *Table) Rows(limit int) []map[string]interface{} {
	n := t.Len()
	if limit >= 0 && limit < n {
		n = limit
	}
	rows := make([]map[string]interface{}, n)
	for i := range rows {
		rows[i] = make(map[string]interface{}, len(t.columns))
	}

	for _, c := range t.columns {
		col := t.frame.Col(c.Name)
		nan := col.IsNaN()
		if c.Kind == listing.Numeric {
			values := col.Float()
			for i := 0; i < n; i++ {
				if nan[i] {
					rows[i][c.Name] = nil
				} else {
					rows[i][c.Name] = values[i]
				}
			}
			continue
		}
		records := col.Records()
		for i := 0; i < n; i++ {
			if nan[i] {
				rows[i][c.Name] = nil
			} else {
				rows[i][c.Name] = records[i]
			}
		}
	}
	return rows
}

func containsString(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
