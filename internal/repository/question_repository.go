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

// QuestionRepository provides database access for the question bank.
type QuestionRepository struct {
	db *sqlx.DB
}

// NewQuestionRepository creates a new instance of QuestionRepository.
func NewQuestionRepository(db *sqlx.DB) *QuestionRepository {
	return &QuestionRepository{db: db}
}

// ListActive returns the active question set in ordinal order.
func (r *QuestionRepository) ListActive(ctx context.Context) ([]models.Question, error) {
	const query = `SELECT id, text, category, ordinal, active, created_at, updated_at FROM questions WHERE active = TRUE ORDER BY ordinal ASC`
	var questions []models.Question
	if err := r.db.SelectContext(ctx, &questions, query); err != nil {
		return nil, fmt.Errorf("list active questions: %w", err)
	}
	return questions, nil
}

// FindByID returns a question by identifier.
func (r *QuestionRepository) FindByID(ctx context.Context, id string) (*models.Question, error) {
	const query = `SELECT id, text, category, ordinal, active, created_at, updated_at FROM questions WHERE id = $1 LIMIT 1`
	var q models.Question
	if err := r.db.GetContext(ctx, &q, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find question by id: %w", err)
	}
	return &q, nil
}

// Create inserts a question into the bank.
func (r *QuestionRepository) Create(ctx context.Context, q *models.Question) error {
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if q.CreatedAt.IsZero() {
		q.CreatedAt = now
	}
	q.UpdatedAt = now
	const query = `INSERT INTO questions (id, text, category, ordinal, active, created_at, updated_at) VALUES (:id, :text, :category, :ordinal, :active, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, q); err != nil {
		return fmt.Errorf("create question: %w", err)
	}
	return nil
}

// Update updates a question's text, category, ordinal and active flag.
func (r *QuestionRepository) Update(ctx context.Context, q *models.Question) error {
	q.UpdatedAt = time.Now().UTC()
	const query = `UPDATE questions SET text = :text, category = :category, ordinal = :ordinal, active = :active, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, q); err != nil {
		return fmt.Errorf("update question: %w", err)
	}
	return nil
}

// Delete removes a question from the bank. Returns rows removed.
func (r *QuestionRepository) Delete(ctx context.Context, id string) (int64, error) {
	const query = `DELETE FROM questions WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("delete question: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete question rows affected: %w", err)
	}
	return affected, nil
}
