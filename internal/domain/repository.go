package domain

import (
	"context"
	"time"
)

// CatalogStore defines read access to the internal catalog plus the single
// write path the sync is allowed: price write-back after a confident match.
type CatalogStore interface {
	GetSupplierBySlug(ctx context.Context, slug string) (*Supplier, error)
	ListProducts(ctx context.Context, supplierID string) ([]CatalogProduct, error)
	ListAliases(ctx context.Context) ([]AliasEntry, error)
	UpdateProductPrices(ctx context.Context, updates []PriceUpdate) error
}

// StagingStore defines the match/orphan staging tables. Each sync run fully
// replaces their contents.
type StagingStore interface {
	ClearMatches(ctx context.Context) error
	ClearOrphans(ctx context.Context) error
	InsertMatches(ctx context.Context, rows []MatchRow) error
	InsertOrphans(ctx context.Context, rows []OrphanRow) error
	ListMatches(ctx context.Context) ([]MatchRow, error)
	ListOrphans(ctx context.Context) ([]OrphanRow, error)
}

// CatalogFetcher defines the interface for scraping the supplier's public
// catalog. Implementations own pagination, rate limiting and retries.
type CatalogFetcher interface {
	FetchCatalog(ctx context.Context, catalogURL string, gender Gender) ([]ScrapedRecord, error)
	FetchDetailPage(ctx context.Context, pageURL string, gender Gender) (*ScrapedRecord, error)
	FetchRawPage(ctx context.Context, pageURL string) (string, error)
}

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) (interface{}, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}
