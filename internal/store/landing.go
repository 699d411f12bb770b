package store

import (
	"context"
	"fmt"

	"galley/internal/logging"
)

// ReplaceLandingPage swaps the tagged landing page row for an entity in
// one transaction. Passing a nil page deletes the tagged row without
// inserting a replacement.
func (s *Store) ReplaceLandingPage(ctx context.Context, entityID, catalogKey string, page *LandingPage) error {
	ctx = ensureContext(ctx)
	return s.retryOnBusy(ctx, func() error {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin landing page tx: %w", err)
		}
		defer func() { _ = tx.Rollback() }()

		res, err := tx.ExecContext(ctx,
			"DELETE FROM landing_pages WHERE entity_id = ? AND metadata_json LIKE ?",
			entityID, KeyMarker(catalogKey))
		if err != nil {
			return fmt.Errorf("delete tagged landing page: %w", err)
		}

		if page != nil {
			id := page.ID
			if id == "" {
				id = newRowID()
			}
			createdAt := page.CreatedAt
			if createdAt == "" {
				createdAt = nowTimestamp()
			}
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO landing_pages (id, entity_id, slug, title, headline, subheadline, description, html, metadata_json, created_at)
				 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				id, entityID, page.Slug, page.Title, page.Headline, page.Subheadline,
				page.Description, page.HTML, page.Metadata, createdAt); err != nil {
				return fmt.Errorf("insert landing page: %w", err)
			}
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit landing page: %w", err)
		}
		removed, _ := res.RowsAffected()
		inserted := 0
		if page != nil {
			inserted = 1
		}
		logging.WithContext(ctx, s.logger).Debug("landing page row replaced",
			logging.Int64("removed", removed), logging.Int("inserted", inserted))
		return nil
	})
}

// LandingSlugExists reports whether a slug is already taken by a row
// that does not carry the given catalog key tag. Rows tagged with the
// same key are about to be replaced, so they don't count as conflicts.
func (s *Store) LandingSlugExists(ctx context.Context, slug, catalogKey string) (bool, error) {
	ctx = ensureContext(ctx)
	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM landing_pages WHERE slug = ? AND metadata_json NOT LIKE ?",
		slug, KeyMarker(catalogKey)).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("probe landing slug: %w", err)
	}
	return count > 0, nil
}

// LandingPagesForEntity lists landing page rows for an entity.
func (s *Store) LandingPagesForEntity(ctx context.Context, entityID string) ([]LandingPage, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, entity_id, slug, title, headline, subheadline, description, html, metadata_json, created_at
		 FROM landing_pages WHERE entity_id = ? ORDER BY created_at, id`, entityID)
	if err != nil {
		return nil, fmt.Errorf("query landing pages: %w", err)
	}
	defer rows.Close()

	var pages []LandingPage
	for rows.Next() {
		var p LandingPage
		if err := rows.Scan(&p.ID, &p.EntityID, &p.Slug, &p.Title, &p.Headline,
			&p.Subheadline, &p.Description, &p.HTML, &p.Metadata, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan landing page: %w", err)
		}
		pages = append(pages, p)
	}
	return pages, rows.Err()
}
