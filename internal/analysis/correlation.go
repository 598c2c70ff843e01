package analysis

import (
	"math"

	"listingscope/internal/dataset"

	"gonum.org/v1/gonum/stat"
)

// CorrelationMatrix is a square Pearson matrix over the plotting numeric columns.
// Cells are nil where the coefficient is undefined.
type CorrelationMatrix struct {
	Columns []string     `json:"columns"`
	Values  [][]*float64 `json:"values"`
}

// Correlation computes pairwise Pearson coefficients, using for each pair only the rows
// where both values are present. Coefficients are rounded to 2 decimal places.
func Correlation(t *dataset.Table) (*CorrelationMatrix, error) {
	columns, _ := t.PlotColumns()

	data := make([][]float64, len(columns))
	for i, c := range columns {
		values, err := t.Floats(c)
		if err != nil {
			return nil, err
		}
		data[i] = values
	}

	m := &CorrelationMatrix{Columns: columns, Values: make([][]*float64, len(columns))}
	for i := range columns {
		m.Values[i] = make([]*float64, len(columns))
	}
	for i := range columns {
		for j := i; j < len(columns); j++ {
			r := pearson(data[i], data[j])
			m.Values[i][j] = r
			m.Values[j][i] = r
		}
	}
	return m, nil
}

// At returns the coefficient for a pair of columns.
func (m *CorrelationMatrix) At(a, b string) (*float64, bool) {
	i, j := indexOf(m.Columns, a), indexOf(m.Columns, b)
	if i < 0 || j < 0 {
		return nil, false
	}
	return m.Values[i][j], true
}

func pearson(x, y []float64) *float64 {
	xs := make([]float64, 0, len(x))
	ys := make([]float64, 0, len(y))
	for k := range x {
		if math.IsNaN(x[k]) || math.IsNaN(y[k]) {
			continue
		}
		xs = append(xs, x[k])
		ys = append(ys, y[k])
	}
	if len(xs) < 2 {
		return nil
	}
	r := stat.Correlation(xs, ys, nil)
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return nil
	}
	r = round2(r)
	return &r
}

func indexOf(values []string, target string) int {
	for i, v := range values {
		if v == target {
			return i
		}
	}
	return -1
}
