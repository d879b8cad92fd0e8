package domain

// ScrapedRecord is one product as it appears in the supplier's public
// catalog. Produced once per sync run by the scraper and never mutated.
type ScrapedRecord struct {
	Title          string   `json:"title"`
	Gender         Gender   `json:"gender"`
	ExternalCode   string   `json:"externalCode,omitempty"`
	SourceURL      string   `json:"sourceUrl,omitempty"`
	Price30        *float64 `json:"price30,omitempty"`
	Price100       *float64 `json:"price100,omitempty"`
	PriceOnRequest bool     `json:"priceOnRequest"`
}
