package main

import (
	"github.com/joho/godotenv"

	"textileworker/config"
	"textileworker/internal/etl"
	"textileworker/logger"
)

func main() {
	// Load environment variables
	godotenv.Load()

	logger.Init()
	log := logger.ForETL()

	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	log.Info().
		Str("raw_dir", cfg.RawDataDir).
		Str("output_dir", cfg.ProcessedDataDir).
		Msg("Starting data processing pipeline")

	// 1. Load every raw feed file into one batch
	batch, report, err := etl.LoadRaw(cfg.RawDataDir)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load raw data")
	}
	for _, file := range report.SkippedFiles {
		log.Warn().Str("file", file).Msg("Skipped unreadable raw file")
	}
	log.Info().
		Int("files", report.FilesLoaded).
		Int("records", report.RecordsLoaded).
		Msg("Loaded raw data")

	// 2. Normalize into the canonical table
	cleaned := etl.Clean(batch)
	log.Info().
		Int("input_records", len(batch)).
		Int("output_records", len(cleaned)).
		Msg("Cleaned record batch")

	// 3. Persist; a write failure is reported but does not fail the run
	var path string
	switch cfg.OutputFormat {
	case "xlsx":
		path, err = etl.WriteXLSX(cleaned, cfg.ProcessedDataDir, cfg.OutputFilename)
	default:
		path, err = etl.WriteCSV(cleaned, cfg.ProcessedDataDir, cfg.OutputFilename)
	}
	if err != nil {
		log.Error().Err(err).Msg("Failed to write processed data")
	} else if path == "" {
		log.Warn().Msg("Processed batch is empty, no output file written")
	} else {
		log.Info().Str("file", path).Int("records", len(cleaned)).Msg("Saved processed data")
	}

	log.Info().Msg("Data processing pipeline finished")
}
