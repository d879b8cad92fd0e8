package domain

// Suggestion points at the best fuzzy candidate for an unresolved record,
// for manual confirmation. Score is the adjusted title similarity in [0,1].
type Suggestion struct {
	ProductID string  `json:"productId"`
	Score     float64 `json:"score"`
}

// MatchOutcome is the result of resolving one scraped record against the
// candidate index. Product is non-nil for a confident match; otherwise the
// record is an orphan, optionally carrying a Suggestion.
type MatchOutcome struct {
	Record     ScrapedRecord
	Product    *CatalogProduct
	Suggestion *Suggestion
}

// Matched reports whether the record resolved to a catalog product.
func (o MatchOutcome) Matched() bool {
	return o.Product != nil
}

// MatchRow is a confident match as persisted to the staging table.
type MatchRow struct {
	ProductID      string   `json:"productId"`
	Title          string   `json:"title"`
	Price30        *float64 `json:"price30,omitempty"`
	Price100       *float64 `json:"price100,omitempty"`
	PriceOnRequest bool     `json:"priceOnRequest"`
}

// OrphanRow is an unresolved record as persisted to the staging table.
type OrphanRow struct {
	Title              string   `json:"title"`
	Gender             Gender   `json:"gender"`
	SourceURL          string   `json:"sourceUrl,omitempty"`
	SuggestedProductID string   `json:"suggestedProductId,omitempty"`
	SuggestedScore     *float64 `json:"suggestedScore,omitempty"`
}

// SyncSummary is the JSON payload returned by the sync endpoint.
type SyncSummary struct {
	Scraped   int   `json:"scraped"`
	Rescued   int   `json:"rescued"`
	Matched   int   `json:"matched"`
	Orphaned  int   `json:"orphaned"`
	ElapsedMS int64 `json:"elapsedMs"`
}

// CatalogSample is the diagnostic payload for one gender catalog when the
// sync runs in debug mode: the raw first page plus one fully parsed record.
type CatalogSample struct {
	URL          string         `json:"url"`
	RawFirstPage string         `json:"rawFirstPage"`
	RecordCount  int            `json:"recordCount"`
	ParsedSample *ScrapedRecord `json:"parsedSample,omitempty"`
}

// DebugReport is returned by a debug-mode sync. Nothing is persisted.
type DebugReport struct {
	Masculino CatalogSample `json:"masculino"`
	Femenino  CatalogSample `json:"femenino"`
}
