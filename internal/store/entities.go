package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"galley/internal/services"
)

// EnsureEntity creates the entity row if it does not exist yet. Existing
// rows are left untouched.
func (s *Store) EnsureEntity(ctx context.Context, entityID string) error {
	if entityID == "" {
		return services.Wrap(services.ErrValidation, "store", "ensure entity", "entity id required", nil)
	}
	now := nowTimestamp()
	return s.execWithoutResultRetry(ctx,
		`INSERT INTO entities (id, pipeline_status, created_at, updated_at)
		 VALUES (?, '', ?, ?)
		 ON CONFLICT(id) DO NOTHING`,
		entityID, now, now)
}

// SetPipelineStatus records the provisioning state of an entity.
func (s *Store) SetPipelineStatus(ctx context.Context, entityID, status string) error {
	ctx = ensureContext(ctx)
	res, err := s.db.ExecContext(ctx,
		"UPDATE entities SET pipeline_status = ?, updated_at = ? WHERE id = ?",
		status, nowTimestamp(), entityID)
	if err != nil {
		return fmt.Errorf("set pipeline status: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("set pipeline status: %w", err)
	}
	if affected == 0 {
		return services.Wrap(services.ErrNotFound, "store", "set pipeline status", "entity "+entityID+" not found", nil)
	}
	return nil
}

// PipelineStatus returns the recorded provisioning state of an entity.
func (s *Store) PipelineStatus(ctx context.Context, entityID string) (string, error) {
	ctx = ensureContext(ctx)
	var status string
	err := s.db.QueryRowContext(ctx,
		"SELECT pipeline_status FROM entities WHERE id = ?", entityID).Scan(&status)
	if errors.Is(err, sql.ErrNoRows) {
		return "", services.Wrap(services.ErrNotFound, "store", "pipeline status", "entity "+entityID+" not found", nil)
	}
	if err != nil {
		return "", fmt.Errorf("read pipeline status: %w", err)
	}
	return status, nil
}
