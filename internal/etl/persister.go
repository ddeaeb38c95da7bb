package etl

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"

	"github.com/xuri/excelize/v2"

	"textileworker/pkg/errors"
)

// utf8BOM is prepended to the CSV so spreadsheet tools read non-ASCII
// currency symbols correctly (utf-8-sig).
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// WriteCSV writes the canonical table to dir/filename as CSV, creating
// dir if absent. An empty table writes nothing and returns an empty
// path; the caller logs that, it is not an error.
func WriteCSV(rows []CanonicalProduct, dir, filename string) (string, error) {
	if len(rows) == 0 {
		return "", nil
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.NewStorage(dir, "failed to create output directory", err)
	}

	path := filepath.Join(dir, filename)
	f, err := os.Create(path)
	if err != nil {
		return "", errors.NewStorage(path, "failed to create output file", err)
	}
	defer f.Close()

	if _, err := f.Write(utf8BOM); err != nil {
		return "", errors.NewStorage(path, "failed to write output file", err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(CanonicalHeader); err != nil {
		return "", errors.NewStorage(path, "failed to write header", err)
	}
	for _, row := range rows {
		if err := w.Write(csvRow(row)); err != nil {
			return "", errors.NewStorage(path, "failed to write row", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", errors.NewStorage(path, "failed to flush output file", err)
	}

	return path, nil
}

// WriteXLSX writes the canonical table to dir/filename as a
// spreadsheet with the same columns as the CSV rendition
func WriteXLSX(rows []CanonicalProduct, dir, filename string) (string, error) {
	if len(rows) == 0 {
		return "", nil
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.NewStorage(dir, "failed to create output directory", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	header := make([]interface{}, len(CanonicalHeader))
	for i, h := range CanonicalHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return "", errors.NewStorage(filename, "failed to write header", err)
	}

	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		values := csvRow(row)
		cells := make([]interface{}, len(values))
		for j, v := range values {
			cells[j] = v
		}
		if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
			return "", errors.NewStorage(filename, "failed to write row", err)
		}
	}

	path := filepath.Join(dir, filename)
	if err := f.SaveAs(path); err != nil {
		return "", errors.NewStorage(path, "failed to save output file", err)
	}

	return path, nil
}

// csvRow renders one canonical row as strings in column order; nil
// values become empty cells
func csvRow(row CanonicalProduct) []string {
	return []string{
		strconv.Itoa(row.ProductID),
		deref(row.Location),
		deref(row.Brand),
		deref(row.FabricType),
		deref(row.Pattern),
		deref(row.GSM),
		deref(row.Usage),
		deref(row.Availability),
		price(row),
		deref(row.Unit),
		deref(row.Currency),
	}
}

func price(row CanonicalProduct) string {
	if row.Price == nil {
		return ""
	}
	return row.Price.String()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
