package country

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/DushesAlko/telegram-country-quiz-game-bot/internal/config"
)

// New creates a Catalog primed with the bundled fallback set, so it is usable
// immediately. Call RefreshAsync afterwards to attempt the remote load.
func New(fetcher Fetcher, cfg config.CatalogConfig, m refreshMetrics) (Catalog, error) {
	if len(fallbackCountries) == 0 {
		return nil, fmt.Errorf("bundled fallback country set is empty")
	}

	c := &catalog{
		fetcher:    fetcher,
		localFile:  cfg.LocalFile,
		maxRetries: cfg.MaxRetries,
		retryDelay: cfg.RetryDelay,
		metrics:    m,
	}
	c.swap(fallbackCountries)
	log.Info("Country catalog primed with fallback set", "count", len(fallbackCountries))
	return c, nil
}

func (c *catalog) swap(records []CountryRecord) {
	snapshot := make([]CountryRecord, len(records))
	copy(snapshot, records)
	c.snapshot.Store(&snapshot)
}

func (c *catalog) current() []CountryRecord {
	return *c.snapshot.Load()
}

func (c *catalog) Random() (CountryRecord, error) {
	countries := c.current()
	if len(countries) == 0 {
		return CountryRecord{}, ErrCatalogEmpty
	}
	return countries[rand.IntN(len(countries))], nil
}

func (c *catalog) FindByCode(code string) (CountryRecord, error) {
	for _, record := range c.current() {
		if strings.EqualFold(record.Code, code) {
			return record, nil
		}
	}
	return CountryRecord{}, fmt.Errorf("code %q: %w", code, ErrNotFound)
}

func (c *catalog) FindByName(name string) (CountryRecord, error) {
	for _, record := range c.current() {
		if strings.EqualFold(record.Name, name) {
			return record, nil
		}
	}
	return CountryRecord{}, fmt.Errorf("name %q: %w", name, ErrNotFound)
}

func (c *catalog) Search(query string, limit int) []CountryRecord {
	query = strings.ToLower(query)
	var matches []CountryRecord
	for _, record := range c.current() {
		if strings.Contains(strings.ToLower(record.Name), query) {
			matches = append(matches, record)
			if len(matches) == limit {
				break
			}
		}
	}
	return matches
}

func (c *catalog) Distractors(correct CountryRecord, n int) []CountryRecord {
	var eligible []CountryRecord
	for _, record := range c.current() {
		if !strings.EqualFold(record.Code, correct.Code) {
			eligible = append(eligible, record)
		}
	}
	rand.Shuffle(len(eligible), func(i, j int) {
		eligible[i], eligible[j] = eligible[j], eligible[i]
	})
	if len(eligible) > n {
		eligible = eligible[:n]
	}
	return eligible
}

func (c *catalog) Options(correct CountryRecord, optionsCount int) []CountryRecord {
	options := c.Distractors(correct, optionsCount-1)
	options = append(options, correct)
	rand.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})
	return options
}

func (c *catalog) Count() int {
	return len(c.current())
}

// RefreshAsync attempts to replace the snapshot from the remote source, then
// from the local file, in the background. On total failure the fallback
// snapshot is silently retained; nothing ever blocks on this.
func (c *catalog) RefreshAsync(ctx context.Context) {
	go func() {
		if err := c.refresh(ctx); err != nil {
			log.Warn("Country catalog refresh failed, retaining fallback set", "error", err, "count", c.Count())
		}
	}()
}

func (c *catalog) refresh(ctx context.Context) error {
	remoteErr := c.refreshFromRemote(ctx)
	if remoteErr == nil {
		c.metrics.IncCatalogRefreshSuccess()
		return nil
	}
	log.Warn("Remote catalog load failed, trying local file", "error", remoteErr, "file", c.localFile)

	if err := c.refreshFromLocalFile(); err != nil {
		c.metrics.IncCatalogRefreshFailure()
		return fmt.Errorf("remote: %w; local file: %w", remoteErr, err)
	}
	c.metrics.IncCatalogRefreshSuccess()
	return nil
}

func (c *catalog) refreshFromRemote(ctx context.Context) error {
	var lastErr error
	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		log.Info("Loading country catalog from remote", "attempt", attempt, "max_attempts", c.maxRetries)
		records, err := c.fetcher.FetchAll(ctx)
		if err == nil {
			c.swap(records)
			log.Info("Country catalog refreshed from remote", "count", len(records))
			return nil
		}
		lastErr = err
		log.Warn("Remote catalog load attempt failed", "attempt", attempt, "error", err)
		if attempt < c.maxRetries {
			select {
			case <-time.After(c.retryDelay):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
	return lastErr
}

func (c *catalog) refreshFromLocalFile() error {
	data, err := os.ReadFile(c.localFile)
	if err != nil {
		return fmt.Errorf("failed to read local file: %w", err)
	}

	var raw []restCountry
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to parse local file: %w", err)
	}

	records := mapRESTCountries(raw)
	if len(records) == 0 {
		return fmt.Errorf("local file %s contained no usable records", c.localFile)
	}
	c.swap(records)
	log.Info("Country catalog refreshed from local file", "count", len(records))
	return nil
}
