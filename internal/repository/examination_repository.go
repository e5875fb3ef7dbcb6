package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/warrior-support/wss-api/internal/models"
)

// ExaminationRepository provides database access for self-assessment results.
type ExaminationRepository struct {
	db *sqlx.DB
}

// NewExaminationRepository creates a new instance of ExaminationRepository.
func NewExaminationRepository(db *sqlx.DB) *ExaminationRepository {
	return &ExaminationRepository{db: db}
}

// Create inserts an examination result.
func (r *ExaminationRepository) Create(ctx context.Context, exam *models.Examination) error {
	if exam.ID == "" {
		exam.ID = uuid.NewString()
	}
	if exam.CreatedAt.IsZero() {
		exam.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO examinations (id, personnel_id, army_no, answers, depression, anxiety, stress, depression_severity, anxiety_severity, stress_severity, status, created_at) VALUES (:id, :personnel_id, :army_no, :answers, :depression, :anxiety, :stress, :depression_severity, :anxiety_severity, :stress_severity, :status, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, exam); err != nil {
		return fmt.Errorf("create examination: %w", err)
	}
	return nil
}

// ListByArmyNo returns the examination history for one soldier, newest first.
func (r *ExaminationRepository) ListByArmyNo(ctx context.Context, armyNo string) ([]models.Examination, error) {
	const query = `SELECT id, personnel_id, army_no, answers, depression, anxiety, stress, depression_severity, anxiety_severity, stress_severity, status, created_at FROM examinations WHERE army_no = $1 ORDER BY created_at DESC`
	var exams []models.Examination
	if err := r.db.SelectContext(ctx, &exams, query, armyNo); err != nil {
		return nil, fmt.Errorf("list examinations by army number: %w", err)
	}
	return exams, nil
}
