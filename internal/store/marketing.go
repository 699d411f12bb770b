package store

import (
	"context"
	"fmt"

	"galley/internal/logging"
)

// ReplaceMarketingAssets swaps the tagged marketing rows for an entity
// in one transaction.
func (s *Store) ReplaceMarketingAssets(ctx context.Context, entityID, catalogKey string, assets []MarketingAsset) error {
	ctx = ensureContext(ctx)
	return s.retryOnBusy(ctx, func() error {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin marketing tx: %w", err)
		}
		defer func() { _ = tx.Rollback() }()

		res, err := tx.ExecContext(ctx,
			"DELETE FROM marketing_assets WHERE entity_id = ? AND metadata_json LIKE ?",
			entityID, KeyMarker(catalogKey))
		if err != nil {
			return fmt.Errorf("delete tagged marketing assets: %w", err)
		}

		for _, asset := range assets {
			id := asset.ID
			if id == "" {
				id = newRowID()
			}
			createdAt := asset.CreatedAt
			if createdAt == "" {
				createdAt = nowTimestamp()
			}
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO marketing_assets (id, entity_id, kind, title, description, asset_url, poster_url, html, metadata_json, created_at)
				 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				id, entityID, asset.Kind, asset.Title, asset.Description,
				asset.AssetURL, asset.PosterURL, asset.HTML, asset.Metadata, createdAt); err != nil {
				return fmt.Errorf("insert marketing asset: %w", err)
			}
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit marketing assets: %w", err)
		}
		removed, _ := res.RowsAffected()
		logging.WithContext(ctx, s.logger).Debug("marketing rows replaced",
			logging.Int64("removed", removed), logging.Int("inserted", len(assets)))
		return nil
	})
}

// MarketingAssetsForEntity lists marketing rows for an entity in insertion order.
func (s *Store) MarketingAssetsForEntity(ctx context.Context, entityID string) ([]MarketingAsset, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, entity_id, kind, title, description, asset_url, poster_url, html, metadata_json, created_at
		 FROM marketing_assets WHERE entity_id = ? ORDER BY created_at, id`, entityID)
	if err != nil {
		return nil, fmt.Errorf("query marketing assets: %w", err)
	}
	defer rows.Close()

	var assets []MarketingAsset
	for rows.Next() {
		var a MarketingAsset
		if err := rows.Scan(&a.ID, &a.EntityID, &a.Kind, &a.Title, &a.Description,
			&a.AssetURL, &a.PosterURL, &a.HTML, &a.Metadata, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan marketing asset: %w", err)
		}
		assets = append(assets, a)
	}
	return assets, rows.Err()
}
