package country

import "context"

// Catalog provides question material for the quiz. Implementations must be
// safe for concurrent use.
type Catalog interface {
	// Random uniformly selects one record from the current snapshot.
	// Returns ErrCatalogEmpty if the snapshot has zero entries.
	Random() (CountryRecord, error)
	// FindByCode performs a case-insensitive exact match on the country code.
	// Returns ErrNotFound on a miss.
	FindByCode(code string) (CountryRecord, error)
	// FindByName performs a case-insensitive exact match on the display name.
	// Returns ErrNotFound on a miss.
	FindByName(name string) (CountryRecord, error)
	// Search returns up to limit records whose name contains the query,
	// case-insensitively.
	Search(query string, limit int) []CountryRecord
	// Distractors returns up to n records distinct from correct (by code),
	// drawn without replacement and in random order. Callers must tolerate
	// short lists when the snapshot has fewer than n+1 entries.
	Distractors(correct CountryRecord, n int) []CountryRecord
	// Options returns the correct record plus optionsCount-1 distractors,
	// shuffled.
	Options(correct CountryRecord, optionsCount int) []CountryRecord
	// Count reports the size of the current snapshot.
	Count() int
	// RefreshAsync kicks off the remote refresh in the background. It never
	// blocks and refresh failures never surface past the catalog.
	RefreshAsync(ctx context.Context)
}

// Fetcher loads country records from an upstream source.
type Fetcher interface {
	FetchAll(ctx context.Context) ([]CountryRecord, error)
}
