package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/warrior-support/wss-api/internal/models"
)

// BattalionRepository provides database access for battalions.
type BattalionRepository struct {
	db *sqlx.DB
}

// NewBattalionRepository creates a new instance of BattalionRepository.
func NewBattalionRepository(db *sqlx.DB) *BattalionRepository {
	return &BattalionRepository{db: db}
}

// List returns all battalions ordered by name.
func (r *BattalionRepository) List(ctx context.Context) ([]models.Battalion, error) {
	const query = `SELECT id, name, posted_str, created_by, created_at FROM battalions ORDER BY name ASC`
	var battalions []models.Battalion
	if err := r.db.SelectContext(ctx, &battalions, query); err != nil {
		return nil, fmt.Errorf("list battalions: %w", err)
	}
	return battalions, nil
}

// FindByID returns a battalion by identifier.
func (r *BattalionRepository) FindByID(ctx context.Context, id string) (*models.Battalion, error) {
	const query = `SELECT id, name, posted_str, created_by, created_at FROM battalions WHERE id = $1 LIMIT 1`
	var battalion models.Battalion
	if err := r.db.GetContext(ctx, &battalion, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find battalion by id: %w", err)
	}
	return &battalion, nil
}

// ExistsByName reports whether a battalion name is taken.
func (r *BattalionRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	const query = `SELECT EXISTS(SELECT 1 FROM battalions WHERE name = $1)`
	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, name); err != nil {
		return false, fmt.Errorf("exists by name: %w", err)
	}
	return exists, nil
}

// Create inserts a new battalion.
func (r *BattalionRepository) Create(ctx context.Context, battalion *models.Battalion) error {
	if battalion.ID == "" {
		battalion.ID = uuid.NewString()
	}
	if battalion.CreatedAt.IsZero() {
		battalion.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO battalions (id, name, posted_str, created_by, created_at) VALUES (:id, :name, :posted_str, :created_by, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, battalion); err != nil {
		return fmt.Errorf("create battalion: %w", err)
	}
	return nil
}

// Delete hard-deletes a battalion. Returns the number of rows removed.
func (r *BattalionRepository) Delete(ctx context.Context, id string) (int64, error) {
	const query = `DELETE FROM battalions WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("delete battalion: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete battalion rows affected: %w", err)
	}
	return affected, nil
}
