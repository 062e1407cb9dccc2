package country

import (
	"sync/atomic"
	"time"
)

// CountryRecord is a single playable country. Records are read-only to the
// rest of the system; the catalog replaces its whole snapshot on refresh and
// never mutates individual entries.
type CountryRecord struct {
	Code       string `json:"code"`
	Name       string `json:"name"`
	FlagURL    string `json:"flag_url"`
	Capital    string `json:"capital,omitempty"`
	Region     string `json:"region,omitempty"`
	Population int64  `json:"population,omitempty"`
}

// catalog keeps the current snapshot behind an atomic pointer so readers
// always observe either the old or the new complete list, never a partial one.
type catalog struct {
	fetcher    Fetcher
	localFile  string
	maxRetries int
	retryDelay time.Duration
	metrics    refreshMetrics

	snapshot atomic.Pointer[[]CountryRecord]
}

// refreshMetrics is the slice of the metrics interface the catalog needs.
type refreshMetrics interface {
	IncCatalogRefreshSuccess()
	IncCatalogRefreshFailure()
}
