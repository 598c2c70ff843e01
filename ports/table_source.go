package ports

import "context"

// RawTable is a tabular source as read: one header row plus string cells.
// Every row has exactly len(Headers) cells; missing cells are "".
type RawTable struct {
	Headers []string
	Rows    [][]string
}

// Records returns the header followed by the data rows, the layout dataframe loaders expect.
func (t *RawTable) Records() [][]string {
	records := make([][]string, 0, len(t.Rows)+1)
	records = append(records, t.Headers)
	records = append(records, t.Rows...)
	return records
}

// TableSource reads the listings table from wherever it lives.
type TableSource interface {
	// Name identifies the source in logs and errors.
	Name() string
	Read(ctx context.Context) (*RawTable, error)
}
