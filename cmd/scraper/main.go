package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"textileworker/config"
	"textileworker/internal/crawler"
	"textileworker/internal/observability"
	"textileworker/logger"
	"textileworker/services/cache"
	"textileworker/services/publisher"
	"textileworker/services/worker"
)

// blockCacheKey is the memcache key that marks the catalog as rate
// limited.
const blockCacheKey = "indiamart_blocked"

func main() {
	// Load environment variables
	godotenv.Load()

	// Initialize logger first
	logger.Init()
	log := logger.Default

	// Load and validate configuration
	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	log.Info().
		Str("environment", cfg.Environment).
		Int("start_urls", len(cfg.StartURLs)).
		Dur("request_delay", cfg.RequestDelay).
		Msg("Starting scraper")

	observability.Start(cfg.MetricsPort)

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up signal handling
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// Fetch block cache
	cacheService := cache.NewMemcacheService(cfg.MemcacheAddr)
	fetcher := crawler.NewFetcher(cacheService, blockCacheKey, cfg.BlockTime)

	// Optional record publisher
	var pub publisher.Publisher
	if cfg.PublishEnabled {
		redisPublisher := publisher.NewRedisPublisher(
			ctx,
			cfg.RedisAddr,
			cfg.RedisDB,
			cfg.RedisStream,
			cfg.RedisStreamCount,
			cfg.RedisStreamMaxLength,
		)
		defer redisPublisher.Close()
		pub = redisPublisher

		logger.Info("Publishing records to Redis at %s (DB: %d, Stream: %s)",
			cfg.RedisAddr, cfg.RedisDB, cfg.RedisStream)
	}

	extractor := crawler.NewExtractor(crawler.DefaultSelectors())
	w := worker.NewWorker(
		ctx,
		fetcher,
		extractor,
		pub,
		cfg.RawDataDir,
		cfg.RequestDelay,
		cfg.MaxPages,
	)

	// Run the crawl in a goroutine so signals can interrupt it
	done := make(chan struct{})
	var stats worker.RunStats
	var runErr error
	go func() {
		stats, runErr = w.Run(cfg.StartURLs)
		close(done)
	}()

	select {
	case sig := <-sigChan:
		log.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
		<-done
	case <-done:
	}

	if runErr != nil {
		log.Error().Err(runErr).Msg("Crawl finished with error")
	}

	log.Info().
		Int("pages_fetched", stats.PagesFetched).
		Int("records_scraped", stats.RecordsScraped).
		Int("fetch_errors", stats.FetchErrors).
		Int("skipped_visited", stats.SkippedVisited).
		Str("feed_file", stats.FeedFile).
		Msg("Crawl run complete")
}
