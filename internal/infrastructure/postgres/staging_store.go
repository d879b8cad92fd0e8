package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fragancia/backend/internal/domain"
)

// StagingStore persists the per-run match and orphan staging tables. Every
// sync run fully replaces their contents.
type StagingStore struct {
	db *sql.DB
}

// NewStagingStore creates a staging store over an open connection pool.
func NewStagingStore(db *sql.DB) *StagingStore {
	return &StagingStore{db: db}
}

// ClearMatches removes every staged match from the previous run.
func (s *StagingStore) ClearMatches(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM "SupplierMatch"`); err != nil {
		return storeErr("clear matches", err)
	}
	return nil
}

// ClearOrphans removes every staged orphan from the previous run.
func (s *StagingStore) ClearOrphans(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM "SupplierOrphan"`); err != nil {
		return storeErr("clear orphans", err)
	}
	return nil
}

// InsertMatches batch-inserts staged matches in one transaction.
func (s *StagingStore) InsertMatches(ctx context.Context, matchRows []domain.MatchRow) error {
	if len(matchRows) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return storeErr("begin transaction", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO "SupplierMatch" ("productId", title, "price30", "price100", "priceOnRequest")
		VALUES ($1, $2, $3, $4, $5)
	`)
	if err != nil {
		return storeErr("prepare match insert", err)
	}
	defer stmt.Close()

	for _, row := range matchRows {
		_, err := stmt.ExecContext(ctx,
			row.ProductID,
			row.Title,
			nullFloat(row.Price30),
			nullFloat(row.Price100),
			row.PriceOnRequest,
		)
		if err != nil {
			return storeErr(fmt.Sprintf("insert match for product %s", row.ProductID), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return storeErr("commit match inserts", err)
	}
	return nil
}

// InsertOrphans batch-inserts staged orphans, with their optional
// suggestion, in one transaction.
func (s *StagingStore) InsertOrphans(ctx context.Context, orphanRows []domain.OrphanRow) error {
	if len(orphanRows) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return storeErr("begin transaction", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO "SupplierOrphan" (title, gender, "sourceUrl", "suggestedProductId", "suggestedScore")
		VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), $5)
	`)
	if err != nil {
		return storeErr("prepare orphan insert", err)
	}
	defer stmt.Close()

	for _, row := range orphanRows {
		_, err := stmt.ExecContext(ctx,
			row.Title,
			string(row.Gender),
			row.SourceURL,
			row.SuggestedProductID,
			nullFloat(row.SuggestedScore),
		)
		if err != nil {
			return storeErr(fmt.Sprintf("insert orphan %q", row.Title), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return storeErr("commit orphan inserts", err)
	}
	return nil
}

// ListMatches returns the currently staged matches.
func (s *StagingStore) ListMatches(ctx context.Context) ([]domain.MatchRow, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT "productId", title, "price30", "price100", "priceOnRequest"
		FROM "SupplierMatch"
		ORDER BY title
	`)
	if err != nil {
		return nil, storeErr("query matches", err)
	}
	defer rows.Close()

	var result []domain.MatchRow
	for rows.Next() {
		var row domain.MatchRow
		var price30, price100 sql.NullFloat64
		if err := rows.Scan(&row.ProductID, &row.Title, &price30, &price100, &row.PriceOnRequest); err != nil {
			return nil, storeErr("scan match row", err)
		}
		row.Price30 = floatPtr(price30)
		row.Price100 = floatPtr(price100)
		result = append(result, row)
	}
	return result, rows.Err()
}

// ListOrphans returns the currently staged orphans.
func (s *StagingStore) ListOrphans(ctx context.Context) ([]domain.OrphanRow, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT title, COALESCE(gender, 'unknown'), COALESCE("sourceUrl", ''),
		       COALESCE("suggestedProductId", ''), "suggestedScore"
		FROM "SupplierOrphan"
		ORDER BY title
	`)
	if err != nil {
		return nil, storeErr("query orphans", err)
	}
	defer rows.Close()

	var result []domain.OrphanRow
	for rows.Next() {
		var row domain.OrphanRow
		var gender string
		var score sql.NullFloat64
		if err := rows.Scan(&row.Title, &gender, &row.SourceURL, &row.SuggestedProductID, &score); err != nil {
			return nil, storeErr("scan orphan row", err)
		}
		row.Gender = scanGender(gender)
		row.SuggestedScore = floatPtr(score)
		result = append(result, row)
	}
	return result, rows.Err()
}

func floatPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
