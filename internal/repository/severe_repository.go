package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/warrior-support/wss-api/internal/models"
)

// SevereRepository provides database access for severe-personnel triage.
type SevereRepository struct {
	db *sqlx.DB
}

// NewSevereRepository creates a new instance of SevereRepository.
func NewSevereRepository(db *sqlx.DB) *SevereRepository {
	return &SevereRepository{db: db}
}

// Create inserts one triage entry.
func (r *SevereRepository) Create(ctx context.Context, sp *models.SeverePersonnel) error {
	if sp.ID == "" {
		sp.ID = uuid.NewString()
	}
	if sp.CreatedAt.IsZero() {
		sp.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO severe_personnel (id, army_no, name, rank, battalion_id, reason, severity, reported_at, created_at) VALUES (:id, :army_no, :name, :rank, :battalion_id, :reason, :severity, :reported_at, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, sp); err != nil {
		return fmt.Errorf("create severe personnel: %w", err)
	}
	return nil
}

// List returns triage entries, optionally restricted to one battalion.
func (r *SevereRepository) List(ctx context.Context, battalionID string) ([]models.SeverePersonnel, error) {
	var entries []models.SeverePersonnel
	if battalionID != "" {
		const query = `SELECT id, army_no, name, rank, battalion_id, reason, severity, reported_at, created_at FROM severe_personnel WHERE battalion_id = $1 ORDER BY created_at DESC`
		if err := r.db.SelectContext(ctx, &entries, query, battalionID); err != nil {
			return nil, fmt.Errorf("list severe personnel: %w", err)
		}
		return entries, nil
	}
	const query = `SELECT id, army_no, name, rank, battalion_id, reason, severity, reported_at, created_at FROM severe_personnel ORDER BY created_at DESC`
	if err := r.db.SelectContext(ctx, &entries, query); err != nil {
		return nil, fmt.Errorf("list severe personnel: %w", err)
	}
	return entries, nil
}

// Delete removes one triage entry. Returns rows removed.
func (r *SevereRepository) Delete(ctx context.Context, id string) (int64, error) {
	const query = `DELETE FROM severe_personnel WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("delete severe personnel: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete severe personnel rows affected: %w", err)
	}
	return affected, nil
}
