package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fragancia/backend/internal/domain"
)

// CatalogStore reads the internal catalog and writes resolved prices back.
type CatalogStore struct {
	db *sql.DB
}

// NewCatalogStore creates a catalog store over an open connection pool.
func NewCatalogStore(db *sql.DB) *CatalogStore {
	return &CatalogStore{db: db}
}

// GetSupplierBySlug looks up the supplier row for a sync run.
func (s *CatalogStore) GetSupplierBySlug(ctx context.Context, slug string) (*domain.Supplier, error) {
	var supplier domain.Supplier
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, slug
		FROM "Supplier"
		WHERE slug = $1
	`, slug).Scan(&supplier.ID, &supplier.Name, &supplier.Slug)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", domain.ErrSupplierNotFound, slug)
	}
	if err != nil {
		return nil, storeErr("query supplier", err)
	}
	return &supplier, nil
}

// ListProducts returns every catalog product belonging to one supplier.
func (s *CatalogStore) ListProducts(ctx context.Context, supplierID string) ([]domain.CatalogProduct, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, COALESCE(gender, 'unknown'), "supplierId"
		FROM "Product"
		WHERE "supplierId" = $1
		ORDER BY id
	`, supplierID)
	if err != nil {
		return nil, storeErr("query products", err)
	}
	defer rows.Close()

	var products []domain.CatalogProduct
	for rows.Next() {
		var p domain.CatalogProduct
		var gender string
		if err := rows.Scan(&p.ID, &p.Name, &gender, &p.SupplierID); err != nil {
			return nil, storeErr("scan product row", err)
		}
		p.Gender = scanGender(gender)
		products = append(products, p)
	}
	return products, rows.Err()
}

// ListAliases returns every known product alias.
func (s *CatalogStore) ListAliases(ctx context.Context) ([]domain.AliasEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT "productId", alias
		FROM "ProductAlias"
		ORDER BY "productId", alias
	`)
	if err != nil {
		return nil, storeErr("query aliases", err)
	}
	defer rows.Close()

	var aliases []domain.AliasEntry
	for rows.Next() {
		var a domain.AliasEntry
		if err := rows.Scan(&a.ProductID, &a.Alias); err != nil {
			return nil, storeErr("scan alias row", err)
		}
		aliases = append(aliases, a)
	}
	return aliases, rows.Err()
}

// UpdateProductPrices writes resolved prices back to the catalog in a
// single transaction. This is the only catalog mutation the sync performs.
func (s *CatalogStore) UpdateProductPrices(ctx context.Context, updates []domain.PriceUpdate) error {
	if len(updates) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return storeErr("begin transaction", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		UPDATE "Product"
		SET
			"price30" = $2,
			"price100" = $3,
			"defaultPrice" = $4,
			"priceOnRequest" = $5,
			"pricesUpdatedAt" = NOW()
		WHERE id = $1
	`)
	if err != nil {
		return storeErr("prepare price update", err)
	}
	defer stmt.Close()

	for _, u := range updates {
		_, err := stmt.ExecContext(ctx,
			u.ProductID,
			nullFloat(u.Price30),
			nullFloat(u.Price100),
			nullFloat(u.DefaultPrice),
			u.PriceOnRequest,
		)
		if err != nil {
			return storeErr(fmt.Sprintf("update prices for product %s", u.ProductID), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return storeErr("commit price updates", err)
	}
	return nil
}

func scanGender(raw string) domain.Gender {
	switch raw {
	case string(domain.GenderMasculino):
		return domain.GenderMasculino
	case string(domain.GenderFemenino):
		return domain.GenderFemenino
	default:
		return domain.GenderUnknown
	}
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}
