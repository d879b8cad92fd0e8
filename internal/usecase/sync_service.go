package usecase

import (
	"context"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/fragancia/backend/internal/domain"
)

const lastRunCacheKey = "sync:last-run"

// RescuePage names a supplier detail page fetched directly when its external
// code never shows up in the paginated catalogs. Guards against pagination
// gaps for known-important products.
type RescuePage struct {
	ExternalCode string
	URL          string
	Gender       domain.Gender
}

// SyncConfig holds configuration for the sync service.
type SyncConfig struct {
	SupplierSlug       string
	MasculinoURL       string
	FemeninoURL        string
	RescuePages        []RescuePage
	MaxWorkers         int
	MatchThreshold     float64
	CacheTTL           time.Duration
	EnableDebugLogging bool
}

// SyncService drives one full reconciliation run against the supplier
// catalog: wipe staging, scrape, build the candidate index, match every
// record, persist results, and write resolved prices back to the catalog.
type SyncService struct {
	catalog domain.CatalogStore
	staging domain.StagingStore
	fetcher domain.CatalogFetcher
	cache   domain.CacheRepository
	cfg     SyncConfig
	running atomic.Bool
}

// NewSyncService creates a sync service with its collaborators.
func NewSyncService(
	catalog domain.CatalogStore,
	staging domain.StagingStore,
	fetcher domain.CatalogFetcher,
	cache domain.CacheRepository,
	cfg SyncConfig,
) *SyncService {
	if cfg.MaxWorkers <= 0 {
		cfg.MaxWorkers = 8
	}
	if cfg.CacheTTL == 0 {
		cfg.CacheTTL = 24 * time.Hour
	}
	return &SyncService{
		catalog: catalog,
		staging: staging,
		fetcher: fetcher,
		cache:   cache,
		cfg:     cfg,
	}
}

// Run executes one full sync run and returns its summary. Only one run may
// execute at a time.
func (s *SyncService) Run(ctx context.Context) (*domain.SyncSummary, error) {
	if !s.running.CompareAndSwap(false, true) {
		return nil, domain.ErrSyncInProgress
	}
	defer s.running.Store(false)

	start := time.Now()
	log.Printf("[SYNC] starting run for supplier %q", s.cfg.SupplierSlug)

	// Staging is wiped before the new scrape is confirmed. A failed fetch
	// leaves staging empty rather than stale.
	if err := s.staging.ClearMatches(ctx); err != nil {
		return nil, fmt.Errorf("clear matches: %w", err)
	}
	if err := s.staging.ClearOrphans(ctx); err != nil {
		return nil, fmt.Errorf("clear orphans: %w", err)
	}

	records, err := s.fetchAll(ctx)
	if err != nil {
		return nil, err
	}
	scraped := len(records)

	records, rescued := s.rescuePass(ctx, records)
	log.Printf("[SYNC] scraped %d records (%d rescued)", len(records), rescued)

	matcher, err := s.buildMatcher(ctx)
	if err != nil {
		return nil, err
	}

	outcomes := s.matchAll(ctx, matcher, records)

	matchRows, orphanRows, updates := collectResults(outcomes)
	if err := s.staging.InsertMatches(ctx, matchRows); err != nil {
		return nil, fmt.Errorf("persist matches: %w", err)
	}
	if err := s.staging.InsertOrphans(ctx, orphanRows); err != nil {
		return nil, fmt.Errorf("persist orphans: %w", err)
	}
	if err := s.catalog.UpdateProductPrices(ctx, updates); err != nil {
		return nil, fmt.Errorf("write back prices: %w", err)
	}

	summary := &domain.SyncSummary{
		Scraped:   scraped,
		Rescued:   rescued,
		Matched:   len(matchRows),
		Orphaned:  len(orphanRows),
		ElapsedMS: time.Since(start).Milliseconds(),
	}
	log.Printf("[SYNC] run done: %d matched, %d orphaned in %dms",
		summary.Matched, summary.Orphaned, summary.ElapsedMS)

	if s.cache != nil {
		if err := s.cache.Set(ctx, lastRunCacheKey, summary, s.cfg.CacheTTL); err != nil {
			log.Printf("[SYNC] failed to cache run summary: %v", err)
		}
	}

	return summary, nil
}

// RunDebug fetches the first page of each gender catalog and parses a single
// sample record, bypassing staging entirely. Used to diagnose scraper or
// parser drift against the live supplier site.
func (s *SyncService) RunDebug(ctx context.Context) (*domain.DebugReport, error) {
	masculino, err := s.debugSample(ctx, s.cfg.MasculinoURL, domain.GenderMasculino)
	if err != nil {
		return nil, err
	}
	femenino, err := s.debugSample(ctx, s.cfg.FemeninoURL, domain.GenderFemenino)
	if err != nil {
		return nil, err
	}
	return &domain.DebugReport{Masculino: *masculino, Femenino: *femenino}, nil
}

func (s *SyncService) debugSample(ctx context.Context, url string, gender domain.Gender) (*domain.CatalogSample, error) {
	raw, err := s.fetcher.FetchRawPage(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrScrapeFailed, err)
	}
	sample := &domain.CatalogSample{URL: url, RawFirstPage: raw}

	records, err := s.fetcher.FetchCatalog(ctx, url, gender)
	if err != nil {
		return sample, nil
	}
	sample.RecordCount = len(records)
	if len(records) > 0 {
		sample.ParsedSample = &records[0]
	}
	return sample, nil
}

// LastRun returns the most recent run summary, if one is cached.
func (s *SyncService) LastRun(ctx context.Context) (*domain.SyncSummary, error) {
	if s.cache == nil {
		return nil, domain.ErrCacheMiss
	}
	cached, err := s.cache.Get(ctx, lastRunCacheKey)
	if err != nil {
		return nil, err
	}
	if summary, ok := cached.(*domain.SyncSummary); ok {
		return summary, nil
	}
	if m, ok := cached.(map[string]interface{}); ok {
		return mapToSyncSummary(m), nil
	}
	return nil, domain.ErrCacheMiss
}

// Matches lists the current staging matches.
func (s *SyncService) Matches(ctx context.Context) ([]domain.MatchRow, error) {
	return s.staging.ListMatches(ctx)
}

// Orphans lists the current staging orphans.
func (s *SyncService) Orphans(ctx context.Context) ([]domain.OrphanRow, error) {
	return s.staging.ListOrphans(ctx)
}

// fetchAll scrapes both gender catalogs and concatenates the results.
func (s *SyncService) fetchAll(ctx context.Context) ([]domain.ScrapedRecord, error) {
	masculino, err := s.fetcher.FetchCatalog(ctx, s.cfg.MasculinoURL, domain.GenderMasculino)
	if err != nil {
		return nil, fmt.Errorf("%w: masculino catalog: %v", domain.ErrScrapeFailed, err)
	}
	femenino, err := s.fetcher.FetchCatalog(ctx, s.cfg.FemeninoURL, domain.GenderFemenino)
	if err != nil {
		return nil, fmt.Errorf("%w: femenino catalog: %v", domain.ErrScrapeFailed, err)
	}
	return append(masculino, femenino...), nil
}

// rescuePass fetches detail pages for configured external codes missing from
// the scraped set. Individual failures are logged and skipped: this is a
// best-effort enrichment, not a requirement.
func (s *SyncService) rescuePass(ctx context.Context, records []domain.ScrapedRecord) ([]domain.ScrapedRecord, int) {
	seen := make(map[string]bool, len(records))
	for _, r := range records {
		if r.ExternalCode != "" {
			seen[r.ExternalCode] = true
		}
	}

	rescued := 0
	for _, page := range s.cfg.RescuePages {
		if seen[page.ExternalCode] {
			continue
		}
		rec, err := s.fetcher.FetchDetailPage(ctx, page.URL, page.Gender)
		if err != nil {
			log.Printf("[SYNC] rescue fetch failed for %s: %v", page.ExternalCode, err)
			continue
		}
		if rec.ExternalCode == "" {
			rec.ExternalCode = page.ExternalCode
		}
		records = append(records, *rec)
		rescued++
	}
	return records, rescued
}

// buildMatcher loads the supplier's catalog slice and builds the per-run
// candidate index. A missing supplier row aborts the run.
func (s *SyncService) buildMatcher(ctx context.Context) (*Matcher, error) {
	supplier, err := s.catalog.GetSupplierBySlug(ctx, s.cfg.SupplierSlug)
	if err != nil {
		return nil, err
	}
	products, err := s.catalog.ListProducts(ctx, supplier.ID)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	aliases, err := s.catalog.ListAliases(ctx)
	if err != nil {
		return nil, fmt.Errorf("list aliases: %w", err)
	}

	index := BuildCandidateIndex(products, aliases)
	log.Printf("[SYNC] candidate index built: %d products", index.Size())

	return NewMatcher(index, MatcherConfig{
		MatchThreshold:     s.cfg.MatchThreshold,
		EnableDebugLogging: s.cfg.EnableDebugLogging,
	}), nil
}

// matchAll resolves every record against the shared read-only index. Results
// are order-independent, so records fan out across a bounded worker pool.
func (s *SyncService) matchAll(ctx context.Context, matcher *Matcher, records []domain.ScrapedRecord) []domain.MatchOutcome {
	outcomes := make([]domain.MatchOutcome, len(records))

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.MaxWorkers)
	for i, rec := range records {
		g.Go(func() error {
			outcomes[i] = matcher.Resolve(rec)
			return nil
		})
	}
	_ = g.Wait() // Resolve never errors

	return outcomes
}

// collectResults splits outcomes into staging rows and price write-backs.
func collectResults(outcomes []domain.MatchOutcome) ([]domain.MatchRow, []domain.OrphanRow, []domain.PriceUpdate) {
	var matches []domain.MatchRow
	var orphans []domain.OrphanRow
	var updates []domain.PriceUpdate

	for _, o := range outcomes {
		if o.Matched() {
			matches = append(matches, domain.MatchRow{
				ProductID:      o.Product.ID,
				Title:          o.Record.Title,
				Price30:        o.Record.Price30,
				Price100:       o.Record.Price100,
				PriceOnRequest: o.Record.PriceOnRequest,
			})
			updates = append(updates, priceUpdateFor(o.Record, o.Product.ID))
			continue
		}

		row := domain.OrphanRow{
			Title:     o.Record.Title,
			Gender:    o.Record.Gender,
			SourceURL: o.Record.SourceURL,
		}
		if o.Suggestion != nil {
			row.SuggestedProductID = o.Suggestion.ProductID
			score := o.Suggestion.Score
			row.SuggestedScore = &score
		}
		orphans = append(orphans, row)
	}

	return matches, orphans, updates
}

// priceUpdateFor derives the catalog write-back for a matched record. The
// default price prefers the 30g tier over the 100g tier.
func priceUpdateFor(rec domain.ScrapedRecord, productID string) domain.PriceUpdate {
	def := rec.Price30
	if def == nil {
		def = rec.Price100
	}
	return domain.PriceUpdate{
		ProductID:      productID,
		Price30:        rec.Price30,
		Price100:       rec.Price100,
		DefaultPrice:   def,
		PriceOnRequest: rec.PriceOnRequest,
	}
}

// mapToSyncSummary converts a map (from JSON cache) back to a SyncSummary.
func mapToSyncSummary(data map[string]interface{}) *domain.SyncSummary {
	result := &domain.SyncSummary{}
	if v, ok := data["scraped"].(float64); ok {
		result.Scraped = int(v)
	}
	if v, ok := data["rescued"].(float64); ok {
		result.Rescued = int(v)
	}
	if v, ok := data["matched"].(float64); ok {
		result.Matched = int(v)
	}
	if v, ok := data["orphaned"].(float64); ok {
		result.Orphaned = int(v)
	}
	if v, ok := data["elapsedMs"].(float64); ok {
		result.ElapsedMS = int64(v)
	}
	return result
}
