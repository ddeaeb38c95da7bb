package crawler

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"textileworker/helpers"
	"textileworker/pkg/errors"
	"textileworker/services/cache"
)

// Fetcher fetches catalog pages over HTTP and parses them into goquery
// documents. A memcache-backed block key suppresses further requests
// for BlockTime after the site rate limits us.
type Fetcher struct {
	CacheSvc  cache.CacheService
	CacheKey  string
	BlockTime time.Duration

	fetchFunc func(url string) (io.Reader, error)
}

// NewFetcher creates a fetcher. cacheSvc may be nil, in which case no
// block key is kept.
func NewFetcher(cacheSvc cache.CacheService, cacheKey string, blockTime time.Duration) *Fetcher {
	return &Fetcher{
		CacheSvc:  cacheSvc,
		CacheKey:  cacheKey,
		BlockTime: blockTime,
		fetchFunc: helpers.FetchWithRandomHeaders,
	}
}

// Fetch retrieves a URL and parses the response body
func (f *Fetcher) Fetch(url string) (*goquery.Document, error) {
	// Check if the fetcher is currently blocked
	if f.CacheSvc != nil && f.CacheKey != "" {
		if _, err := f.CacheSvc.Get(f.CacheKey); err == nil {
			return nil, errors.NewRateLimit(url, f.BlockTime)
		}
	}

	body, err := f.fetchFunc(url)
	if err != nil {
		if f.CacheSvc != nil && f.CacheKey != "" && strings.HasPrefix(err.Error(), "rate limited") {
			// Set the block key so the next fetches short-circuit
			f.CacheSvc.Set(f.CacheKey, []byte(fmt.Sprintf("%d", f.BlockTime/time.Second)), f.BlockTime)
			return nil, errors.NewRateLimit(url, f.BlockTime)
		}
		return nil, errors.NewNetwork(url, "fetch failed", err)
	}

	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, errors.NewParsing(url, "HTML parse failed", err)
	}
	return doc, nil
}
