package store

import (
	"context"
	"fmt"

	"galley/internal/logging"
)

// ReplaceCovers swaps the tagged cover rows for an entity in one
// transaction. Callers are responsible for marking at most one row
// primary; the store persists the flags as given.
func (s *Store) ReplaceCovers(ctx context.Context, entityID, catalogKey string, covers []Cover) error {
	ctx = ensureContext(ctx)
	return s.retryOnBusy(ctx, func() error {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin covers tx: %w", err)
		}
		defer func() { _ = tx.Rollback() }()

		res, err := tx.ExecContext(ctx,
			"DELETE FROM covers WHERE entity_id = ? AND metadata_json LIKE ?",
			entityID, KeyMarker(catalogKey))
		if err != nil {
			return fmt.Errorf("delete tagged covers: %w", err)
		}

		for _, cover := range covers {
			id := cover.ID
			if id == "" {
				id = newRowID()
			}
			createdAt := cover.CreatedAt
			if createdAt == "" {
				createdAt = nowTimestamp()
			}
			isPrimary := 0
			if cover.IsPrimary {
				isPrimary = 1
			}
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO covers (id, entity_id, title, cover_type, is_primary, image_url, html, metadata_json, created_at)
				 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				id, entityID, cover.Title, cover.CoverType, isPrimary,
				cover.ImageURL, cover.HTML, cover.Metadata, createdAt); err != nil {
				return fmt.Errorf("insert cover: %w", err)
			}
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit covers: %w", err)
		}
		removed, _ := res.RowsAffected()
		logging.WithContext(ctx, s.logger).Debug("cover rows replaced",
			logging.Int64("removed", removed), logging.Int("inserted", len(covers)))
		return nil
	})
}

// CoversForEntity lists cover rows for an entity in insertion order.
func (s *Store) CoversForEntity(ctx context.Context, entityID string) ([]Cover, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, entity_id, title, cover_type, is_primary, image_url, html, metadata_json, created_at
		 FROM covers WHERE entity_id = ? ORDER BY created_at, id`, entityID)
	if err != nil {
		return nil, fmt.Errorf("query covers: %w", err)
	}
	defer rows.Close()

	var covers []Cover
	for rows.Next() {
		var (
			c         Cover
			isPrimary int
		)
		if err := rows.Scan(&c.ID, &c.EntityID, &c.Title, &c.CoverType, &isPrimary,
			&c.ImageURL, &c.HTML, &c.Metadata, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan cover: %w", err)
		}
		c.IsPrimary = isPrimary != 0
		covers = append(covers, c)
	}
	return covers, rows.Err()
}
