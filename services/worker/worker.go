package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"

	"textileworker/internal/crawler"
	"textileworker/internal/observability"
	"textileworker/logger"
	"textileworker/pkg/errors"
	"textileworker/services/publisher"
)

// PageFetcher fetches a URL and returns the parsed page
type PageFetcher interface {
	Fetch(url string) (*goquery.Document, error)
}

// Worker drives one crawl run: it feeds tasks emitted by the page
// handlers back into a FIFO queue, fetches each task's URL, and
// accumulates the scraped records. A visited-URL set drops revisits so
// cyclic "next page" links terminate.
type Worker struct {
	ctx          context.Context
	fetcher      PageFetcher
	extractor    *crawler.Extractor
	publisher    publisher.Publisher
	rawDataDir   string
	requestDelay time.Duration
	maxPages     int
	log          *logger.Logger
}

// RunStats summarizes one crawl run
type RunStats struct {
	PagesFetched   int
	RecordsScraped int
	FetchErrors    int
	SkippedVisited int
	FeedFile       string
}

// NewWorker creates a new worker. pub may be nil when publishing is
// disabled.
func NewWorker(
	ctx context.Context,
	fetcher PageFetcher,
	extractor *crawler.Extractor,
	pub publisher.Publisher,
	rawDataDir string,
	requestDelay time.Duration,
	maxPages int,
) *Worker {
	return &Worker{
		ctx:          ctx,
		fetcher:      fetcher,
		extractor:    extractor,
		publisher:    pub,
		rawDataDir:   rawDataDir,
		requestDelay: requestDelay,
		maxPages:     maxPages,
		log:          logger.ForWorker(),
	}
}

// Run crawls from the given listing URLs until the task queue drains,
// the page budget is spent, or the context is cancelled, then writes
// the collected records as one raw feed file.
func (w *Worker) Run(startURLs []string) (RunStats, error) {
	queue := make([]crawler.Task, 0, len(startURLs))
	for _, u := range startURLs {
		queue = append(queue, crawler.Task{State: crawler.StateListing, URL: u})
	}

	visited := make(map[string]struct{})
	var records []crawler.RawProduct
	var stats RunStats

loop:
	for len(queue) > 0 {
		select {
		case <-w.ctx.Done():
			w.log.Warn().Msg("Crawl cancelled, flushing collected records")
			break loop
		default:
		}

		if w.maxPages > 0 && stats.PagesFetched >= w.maxPages {
			w.log.Info().Int("max_pages", w.maxPages).Msg("Page budget spent")
			break
		}

		task := queue[0]
		queue = queue[1:]

		if _, seen := visited[task.URL]; seen {
			stats.SkippedVisited++
			continue
		}
		visited[task.URL] = struct{}{}

		doc, err := w.fetcher.Fetch(task.URL)
		if err != nil {
			stats.FetchErrors++
			observability.FetchErrors.Inc()
			w.log.Warn().Err(err).Str("url", task.URL).Str("state", task.State.String()).Msg("Fetch failed")
			continue
		}
		stats.PagesFetched++
		observability.PagesFetched.WithLabelValues(task.State.String()).Inc()

		result := w.extractor.Handle(task.State, task.URL, doc)
		queue = append(queue, result.Tasks...)

		for _, record := range result.Records {
			records = append(records, record)
			stats.RecordsScraped++
			observability.RecordsScraped.Inc()
			w.publish(record)
		}

		w.log.Debug().
			Str("url", task.URL).
			Str("state", task.State.String()).
			Int("tasks", len(result.Tasks)).
			Int("records", len(result.Records)).
			Msg("Handled page")

		if w.requestDelay > 0 && len(queue) > 0 {
			select {
			case <-w.ctx.Done():
				break loop
			case <-time.After(w.requestDelay):
			}
		}
	}

	// Trim the streams after the run, best-effort
	if w.publisher != nil {
		if err := w.publisher.TrimStreams(); err != nil {
			w.log.Error().Err(err).Msg("Failed to trim streams")
		}
	}

	if len(records) > 0 {
		path, err := w.writeFeed(records)
		if err != nil {
			return stats, err
		}
		stats.FeedFile = path
	}

	return stats, nil
}

// writeFeed persists the run's records as one JSON feed file under the
// raw data directory
func (w *Worker) writeFeed(records []crawler.RawProduct) (string, error) {
	if err := os.MkdirAll(w.rawDataDir, 0o755); err != nil {
		return "", errors.NewStorage(w.rawDataDir, "failed to create raw data directory", err)
	}

	data, err := json.MarshalIndent(records, "", "    ")
	if err != nil {
		return "", errors.NewStorage(w.rawDataDir, "failed to marshal records", err)
	}

	path := filepath.Join(w.rawDataDir, fmt.Sprintf("textiles_%s.json", uuid.New().String()))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", errors.NewStorage(path, "failed to write feed file", err)
	}

	w.log.Info().Str("file", path).Int("records", len(records)).Msg("Wrote raw feed")
	return path, nil
}

// publish sends one record to the stream when a publisher is configured
func (w *Worker) publish(record crawler.RawProduct) {
	if w.publisher == nil {
		return
	}

	data, err := json.Marshal(record)
	if err != nil {
		w.log.Error().Err(err).Str("url", record.ProductURL).Msg("Failed to marshal record")
		return
	}

	if err := w.publisher.Publish("record", data); err != nil {
		w.log.Error().Err(err).Str("url", record.ProductURL).Msg("Failed to publish record")
	}
}
