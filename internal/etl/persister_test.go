package etl

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"textileworker/internal/crawler"
)

func sampleBatch() []crawler.RawProduct {
	return []crawler.RawProduct{
		rawRecord("https://example.com/p1", func(r *crawler.RawProduct) {
			r.Price = strPtr("₹ 1,200.50/Meter")
			r.Location = strPtr("Surat, Gujarat")
			r.Brand = strPtr("Shree Textiles")
		}),
		rawRecord("https://example.com/p2", func(r *crawler.RawProduct) {
			r.Price = strPtr("Contact for Price")
		}),
	}
}

func TestWriteCSV(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "processed")
	rows := Clean(sampleBatch())

	// The output directory is created on demand
	path, err := WriteCSV(rows, dir, "out.csv")
	assert.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "out.csv"), path)

	data, err := os.ReadFile(path)
	assert.NoError(t, err)

	// utf-8-sig: BOM first so spreadsheet tools decode ₹ correctly
	assert.True(t, strings.HasPrefix(string(data), "\xEF\xBB\xBF"))

	lines := strings.Split(strings.TrimSpace(strings.TrimPrefix(string(data), "\xEF\xBB\xBF")), "\n")
	assert.Equal(t, 3, len(lines))
	assert.Equal(t, strings.Join(CanonicalHeader, ","), lines[0])

	// A value containing the separator is quoted
	assert.Contains(t, lines[1], `"Surat, Gujarat"`)
	assert.True(t, strings.HasPrefix(lines[1], "1,"))
	assert.True(t, strings.HasSuffix(lines[1], "1200.5,Meter,INR"))

	// Unparsed price leaves empty cells
	assert.True(t, strings.HasPrefix(lines[2], "2,"))
	assert.True(t, strings.HasSuffix(lines[2], ",,"))
}

func TestWriteCSVEmptyBatch(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "processed")

	path, err := WriteCSV(nil, dir, "out.csv")
	assert.NoError(t, err)
	assert.Equal(t, "", path)

	// No file, and not even the directory, is created
	_, statErr := os.Stat(filepath.Join(dir, "out.csv"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestWriteCSVIdempotent(t *testing.T) {
	// Running the pipeline twice on the same raw batch produces
	// byte-identical output.
	dir := t.TempDir()
	batch := sampleBatch()

	path1, err := WriteCSV(Clean(batch), dir, "first.csv")
	assert.NoError(t, err)
	path2, err := WriteCSV(Clean(batch), dir, "second.csv")
	assert.NoError(t, err)

	first, err := os.ReadFile(path1)
	assert.NoError(t, err)
	second, err := os.ReadFile(path2)
	assert.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestWriteCSVExistingDir(t *testing.T) {
	// Creating the destination directory is idempotent
	dir := t.TempDir()
	rows := Clean(sampleBatch())

	_, err := WriteCSV(rows, dir, "out.csv")
	assert.NoError(t, err)
	_, err = WriteCSV(rows, dir, "out.csv")
	assert.NoError(t, err)
}

func TestWriteXLSX(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "processed")
	rows := Clean(sampleBatch())

	path, err := WriteXLSX(rows, dir, "out.xlsx")
	assert.NoError(t, err)

	info, err := os.Stat(path)
	assert.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestWriteXLSXEmptyBatch(t *testing.T) {
	path, err := WriteXLSX(nil, t.TempDir(), "out.xlsx")
	assert.NoError(t, err)
	assert.Equal(t, "", path)
}
