package domain

// Gender is the declared target audience of a fragrance. The supplier and the
// internal catalog both use the same three values.
type Gender string

const (
	GenderMasculino Gender = "masculino"
	GenderFemenino  Gender = "femenino"
	GenderUnknown   Gender = "unknown"
)

// Compatible reports whether two gender declarations may refer to the same
// product. A mismatch only exists when both sides commit to a gender.
func (g Gender) Compatible(other Gender) bool {
	if g == GenderUnknown || other == GenderUnknown {
		return true
	}
	return g == other
}

// Supplier represents an external fragrance supplier whose catalog is scraped
// and reconciled against our own.
type Supplier struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// CatalogProduct is a canonical product row from the internal catalog.
// Read-only to the reconciliation engine except for its price fields, which
// the sync writes back after a confident match.
type CatalogProduct struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Gender     Gender `json:"gender"`
	SupplierID string `json:"supplierId"`
}

// AliasEntry is an additional known spelling for a catalog product, e.g. a
// supplier misspelling that was manually confirmed in a prior run.
type AliasEntry struct {
	ProductID string `json:"productId"`
	Alias     string `json:"alias"`
}

// PriceUpdate carries the resolved prices written back to a catalog product.
// DefaultPrice prefers the 30g tier over the 100g tier when both exist.
type PriceUpdate struct {
	ProductID      string
	Price30        *float64
	Price100       *float64
	DefaultPrice   *float64
	PriceOnRequest bool
}
