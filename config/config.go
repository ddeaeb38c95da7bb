package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config represents the application configuration
type Config struct {
	// Crawl configuration
	StartURLs    []string
	RequestDelay time.Duration
	MaxPages     int
	BlockTime    time.Duration

	// Data paths
	RawDataDir       string
	ProcessedDataDir string
	OutputFilename   string
	OutputFormat     string

	// Memcache configuration (fetch block cache)
	MemcacheAddr string

	// Redis configuration (optional record publisher)
	PublishEnabled       bool
	RedisAddr            string
	RedisDB              int
	RedisStream          string
	RedisStreamCount     int
	RedisStreamMaxLength int

	// Metrics
	MetricsPort string

	// Environment
	Environment string
}

// defaultStartURLs are the textile category listing pages crawled when
// START_URLS is not set.
var defaultStartURLs = []string{
	"https://dir.indiamart.com/impcat/cotton-fabric.html",
	"https://dir.indiamart.com/impcat/polyester-fabric.html",
	"https://dir.indiamart.com/impcat/yarn.html",
	"https://dir.indiamart.com/impcat/mens-t-shirt.html",
	"https://dir.indiamart.com/impcat/sarees.html",
	"https://dir.indiamart.com/impcat/denim-jeans.html",
	"https://dir.indiamart.com/impcat/leather-fabric.html",
	"https://dir.indiamart.com/impcat/woolen-shawls.html",
}

// LoadConfig loads the configuration from environment variables with defaults
func LoadConfig() *Config {
	requestDelay, _ := strconv.Atoi(getEnv("REQUEST_DELAY_SECONDS", "2"))
	maxPages, _ := strconv.Atoi(getEnv("MAX_PAGES", "0"))
	blockTime, _ := strconv.Atoi(getEnv("BLOCK_TIME_SECONDS", "300"))
	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	streamCount, _ := strconv.Atoi(getEnv("REDIS_STREAM_COUNT", "1"))
	streamMaxLength, _ := strconv.Atoi(getEnv("REDIS_STREAM_MAX_LENGTH", "500"))

	return &Config{
		StartURLs:            splitURLs(getEnv("START_URLS", "")),
		RequestDelay:         time.Duration(requestDelay) * time.Second,
		MaxPages:             maxPages,
		BlockTime:            time.Duration(blockTime) * time.Second,
		RawDataDir:           getEnv("RAW_DATA_DIR", "data/raw"),
		ProcessedDataDir:     getEnv("PROCESSED_DATA_DIR", "data/processed"),
		OutputFilename:       getEnv("OUTPUT_FILENAME", "indiamart_processed_data.csv"),
		OutputFormat:         getEnv("OUTPUT_FORMAT", "csv"),
		MemcacheAddr:         getEnv("MEMCACHE_ADDR", "localhost:11211"),
		PublishEnabled:       getEnv("PUBLISH_ENABLED", "false") == "true",
		RedisAddr:            getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:              redisDB,
		RedisStream:          getEnv("REDIS_STREAM", "textiles"),
		RedisStreamCount:     streamCount,
		RedisStreamMaxLength: streamMaxLength,
		MetricsPort:          getEnv("METRICS_PORT", "9090"),
		Environment:          getEnv("SCRAPER_ENVIRONMENT", "development"),
	}
}

// Validate checks the configuration for values the pipeline cannot run with
func (c *Config) Validate() error {
	if len(c.StartURLs) == 0 {
		return fmt.Errorf("no start URLs configured")
	}
	if c.RawDataDir == "" {
		return fmt.Errorf("raw data directory must not be empty")
	}
	if c.ProcessedDataDir == "" {
		return fmt.Errorf("processed data directory must not be empty")
	}
	if c.OutputFilename == "" {
		return fmt.Errorf("output filename must not be empty")
	}
	if c.OutputFormat != "csv" && c.OutputFormat != "xlsx" {
		return fmt.Errorf("unsupported output format: %s", c.OutputFormat)
	}
	if c.RequestDelay < 0 {
		return fmt.Errorf("request delay must not be negative")
	}
	return nil
}

// splitURLs parses a comma separated URL list, falling back to the defaults
func splitURLs(raw string) []string {
	if raw == "" {
		return defaultStartURLs
	}
	var urls []string
	for _, u := range strings.Split(raw, ",") {
		u = strings.TrimSpace(u)
		if u != "" {
			urls = append(urls, u)
		}
	}
	return urls
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
