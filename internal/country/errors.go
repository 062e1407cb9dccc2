package country

import "errors"

var (
	// ErrCatalogEmpty is returned when a pick is attempted against a snapshot
	// with zero entries. This must not occur once the fallback set is loaded;
	// seeing it means the bundled data is missing or corrupted.
	ErrCatalogEmpty = errors.New("country catalog is empty")

	// ErrNotFound is returned on a lookup miss by code or name.
	ErrNotFound = errors.New("country not found")
)
