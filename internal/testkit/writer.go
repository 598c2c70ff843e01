package testkit

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Output formats for WriteRecords
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// FormatFor infers the output format from a file extension, defaulting to csv.
func FormatFor(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return FormatXLSX
	}
	return FormatCSV
}

// WriteRecords writes a header-first table to path in the given format.
func WriteRecords(path, format string, records [][]string) error {
	switch format {
	case FormatCSV:
		return WriteCSV(path, records)
	case FormatXLSX:
		return WriteXLSX(path, records)
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}

func WriteCSV(path string, records [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.WriteAll(records); err != nil {
		return err
	}
	return f.Close()
}

// WriteXLSX writes records to the first sheet. Numeric cells are stored as numbers
// and blank cells are left empty, the way a spreadsheet export looks.
func WriteXLSX(path string, records [][]string) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for r, row := range records {
		for c, v := range row {
			if v == "" {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return err
			}
			var value interface{} = v
			if r > 0 {
				if n, err := strconv.ParseFloat(v, 64); err == nil {
					value = n
				}
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return err
			}
		}
	}
	return f.SaveAs(path)
}
