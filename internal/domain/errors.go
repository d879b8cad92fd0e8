package domain

import "errors"

var (
	// ErrSupplierNotFound is returned when the configured supplier has no
	// row in the internal catalog. A sync cannot proceed without it.
	ErrSupplierNotFound = errors.New("supplier not found in catalog")

	// ErrScrapeFailed is returned when a supplier catalog page cannot be
	// fetched or parsed.
	ErrScrapeFailed = errors.New("supplier catalog scrape failed")

	// ErrStoreFailure wraps any failed catalog or staging store operation.
	// The remainder of the run is aborted.
	ErrStoreFailure = errors.New("store operation failed")

	// ErrSyncInProgress is returned when a sync run is requested while a
	// previous one is still executing.
	ErrSyncInProgress = errors.New("sync already in progress")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")
)
