package store

import (
	"context"
	"fmt"

	"galley/internal/logging"
)

// ReplaceReports removes every report row previously tagged with the
// catalog key for this entity, then inserts the given rows. Delete and
// insert happen in one transaction so a rerun never leaves a partial
// mix of old and new rows.
func (s *Store) ReplaceReports(ctx context.Context, entityID, catalogKey string, reports []Report) error {
	ctx = ensureContext(ctx)
	return s.retryOnBusy(ctx, func() error {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin reports tx: %w", err)
		}
		defer func() { _ = tx.Rollback() }()

		res, err := tx.ExecContext(ctx,
			"DELETE FROM reports WHERE entity_id = ? AND metadata_json LIKE ?",
			entityID, KeyMarker(catalogKey))
		if err != nil {
			return fmt.Errorf("delete tagged reports: %w", err)
		}

		for _, report := range reports {
			id := report.ID
			if id == "" {
				id = newRowID()
			}
			createdAt := report.CreatedAt
			if createdAt == "" {
				createdAt = nowTimestamp()
			}
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO reports (id, entity_id, version_id, status, title, document_url, api_url, metadata_json, created_at)
				 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				id, entityID, report.VersionID, report.Status, report.Title,
				report.DocumentURL, report.APIURL, report.Metadata, createdAt); err != nil {
				return fmt.Errorf("insert report: %w", err)
			}
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit reports: %w", err)
		}
		removed, _ := res.RowsAffected()
		logging.WithContext(ctx, s.logger).Debug("report rows replaced",
			logging.Int64("removed", removed), logging.Int("inserted", len(reports)))
		return nil
	})
}

// ReportsForEntity lists report rows for an entity in insertion order.
func (s *Store) ReportsForEntity(ctx context.Context, entityID string) ([]Report, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, entity_id, version_id, status, title, document_url, api_url, metadata_json, created_at
		 FROM reports WHERE entity_id = ? ORDER BY created_at, id`, entityID)
	if err != nil {
		return nil, fmt.Errorf("query reports: %w", err)
	}
	defer rows.Close()

	var reports []Report
	for rows.Next() {
		var r Report
		if err := rows.Scan(&r.ID, &r.EntityID, &r.VersionID, &r.Status, &r.Title,
			&r.DocumentURL, &r.APIURL, &r.Metadata, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan report: %w", err)
		}
		reports = append(reports, r)
	}
	return reports, rows.Err()
}
