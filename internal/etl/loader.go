package etl

import (
	"encoding/json"
	"os"
	"path/filepath"

	"textileworker/internal/crawler"
	"textileworker/pkg/errors"
)

// LoadReport describes what LoadRaw did, so the caller decides how to
// report it instead of the loader logging from inside the pipeline.
type LoadReport struct {
	FilesLoaded   int
	RecordsLoaded int
	SkippedFiles  []string
}

// LoadRaw reads every raw feed file (*.json, one JSON array of records
// per crawl run) under dir and concatenates them into one batch in file
// name order. A file that cannot be read or parsed is skipped and noted
// in the report; the rest are still loaded. No files at all is an empty
// batch, not an error.
func LoadRaw(dir string) ([]crawler.RawProduct, LoadReport, error) {
	pattern := filepath.Join(dir, "*.json")
	files, err := filepath.Glob(pattern)
	if err != nil {
		return nil, LoadReport{}, errors.NewStorage(dir, "invalid raw data path", err)
	}

	var batch []crawler.RawProduct
	report := LoadReport{}

	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			report.SkippedFiles = append(report.SkippedFiles, file)
			continue
		}

		var records []crawler.RawProduct
		if err := json.Unmarshal(data, &records); err != nil {
			report.SkippedFiles = append(report.SkippedFiles, file)
			continue
		}

		batch = append(batch, records...)
		report.FilesLoaded++
		report.RecordsLoaded += len(records)
	}

	return batch, report, nil
}
