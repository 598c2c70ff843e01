package excel

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadCSV(t *testing.T) {
	path := writeFile(t, "listings.csv", "id,room_type,price\n1, Private room ,100\n2,Entire home/apt\n")

	table, err := NewDataReader(ReaderConfig{FilePath: path}).Read(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"id", "room_type", "price"}, table.Headers)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, []string{"1", "Private room", "100"}, table.Rows[0])
	assert.Equal(t, []string{"2", "Entire home/apt", ""}, table.Rows[1], "short rows are padded")
	assert.Len(t, table.Records(), 3)
}

func TestReadXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "listings.xlsx")
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{"id", "neighbourhood_group", "price"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]interface{}{1, "Brooklyn", 100}))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]interface{}{2, "Manhattan", 300}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	table, err := NewDataReader(ReaderConfig{FilePath: path}).Read(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"id", "neighbourhood_group", "price"}, table.Headers)
	assert.Equal(t, [][]string{{"1", "Brooklyn", "100"}, {"2", "Manhattan", "300"}}, table.Rows)
}

func TestReadRejectsMalformedFiles(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"header only", "id,price\n"},
		{"empty header", "id,,price\n1,2,3\n"},
		{"duplicate header", "id,price,price\n1,2,3\n"},
		{"ragged row", "id,price\n1,2,3\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "bad.csv", tt.content)
			_, err := NewDataReader(ReaderConfig{FilePath: path}).Read(context.Background())
			assert.Error(t, err)
		})
	}
}

func TestReadMissingFile(t *testing.T) {
	_, err := NewDataReader(ReaderConfig{FilePath: filepath.Join(t.TempDir(), "nope.csv")}).Read(context.Background())
	assert.Error(t, err)
}
