package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	PagesFetched = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scraper_pages_fetched_total",
			Help: "Total pages fetched, by page state (listing/detail)",
		},
		[]string{"state"},
	)

	RecordsScraped = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "scraper_records_scraped_total",
			Help: "Total records extracted from detail pages",
		},
	)

	FetchErrors = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "scraper_fetch_errors_total",
			Help: "Total fetch or parse failures",
		},
	)
)

func Start(port string) {
	prometheus.MustRegister(PagesFetched, RecordsScraped, FetchErrors)
	http.Handle("/metrics", promhttp.Handler())
	go http.ListenAndServe(":"+port, nil)
}
