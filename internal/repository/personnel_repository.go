package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/warrior-support/wss-api/internal/models"
)

const personnelColumns = `id, army_no, rank, name, sub_unit, service_length, date_of_induction, med_cat, leave_availed, marital_status, self_eval_status, peer_eval_status, peer_evaluated_by, peer_evaluated_at, peer_answers, peer_final_score, battalion_id, created_at, updated_at`

// PersonnelRepository provides database access for battalion rosters.
type PersonnelRepository struct {
	db *sqlx.DB
}

// NewPersonnelRepository creates a new instance of PersonnelRepository.
func NewPersonnelRepository(db *sqlx.DB) *PersonnelRepository {
	return &PersonnelRepository{db: db}
}

// ListByBattalion returns the roster of a battalion with total count.
func (r *PersonnelRepository) ListByBattalion(ctx context.Context, filter models.PersonnelFilter) ([]models.Personnel, int, error) {
	baseQuery := `FROM personnel WHERE battalion_id = $1`
	args := []interface{}{filter.BattalionID}

	var conditions []string
	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(LOWER(name) LIKE $%d OR LOWER(army_no) LIKE $%d)", len(args)+1, len(args)+1))
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
	}
	if filter.SelfEvalStatus != nil {
		conditions = append(conditions, fmt.Sprintf("self_eval_status = $%d", len(args)+1))
		args = append(args, *filter.SelfEvalStatus)
	}
	if filter.PeerEvalStatus != nil {
		conditions = append(conditions, fmt.Sprintf("peer_eval_status = $%d", len(args)+1))
		args = append(args, *filter.PeerEvalStatus)
	}
	if len(conditions) > 0 {
		baseQuery += " AND " + strings.Join(conditions, " AND ")
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize <= 0 || pageSize > 500 {
		pageSize = 100
	}
	offset := (page - 1) * pageSize

	listQuery := fmt.Sprintf("SELECT %s %s ORDER BY army_no ASC LIMIT %d OFFSET %d", personnelColumns, baseQuery, pageSize, offset)

	var personnel []models.Personnel
	if err := r.db.SelectContext(ctx, &personnel, listQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("list personnel: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", baseQuery)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count personnel: %w", err)
	}

	return personnel, total, nil
}

// FindByID returns a personnel record by identifier.
func (r *PersonnelRepository) FindByID(ctx context.Context, id string) (*models.Personnel, error) {
	query := fmt.Sprintf(`SELECT %s FROM personnel WHERE id = $1 LIMIT 1`, personnelColumns)
	var p models.Personnel
	if err := r.db.GetContext(ctx, &p, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find personnel by id: %w", err)
	}
	return &p, nil
}

// FindByArmyNo returns a personnel record by army number.
func (r *PersonnelRepository) FindByArmyNo(ctx context.Context, armyNo string) (*models.Personnel, error) {
	query := fmt.Sprintf(`SELECT %s FROM personnel WHERE army_no = $1 LIMIT 1`, personnelColumns)
	var p models.Personnel
	if err := r.db.GetContext(ctx, &p, query, armyNo); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find personnel by army number: %w", err)
	}
	return &p, nil
}

// ExistsByArmyNo reports whether an army number is already recorded.
func (r *PersonnelRepository) ExistsByArmyNo(ctx context.Context, armyNo string, excludeID string) (bool, error) {
	const query = `SELECT EXISTS(SELECT 1 FROM personnel WHERE army_no = $1 AND id <> $2)`
	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, armyNo, excludeID); err != nil {
		return false, fmt.Errorf("exists by army number: %w", err)
	}
	return exists, nil
}

// Create inserts a new personnel record.
func (r *PersonnelRepository) Create(ctx context.Context, p *models.Personnel) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
	if p.SelfEvalStatus == "" {
		p.SelfEvalStatus = models.SelfEvalNotAttempted
	}
	if p.PeerEvalStatus == "" {
		p.PeerEvalStatus = models.PeerEvalPending
	}

	const query = `INSERT INTO personnel (id, army_no, rank, name, sub_unit, service_length, date_of_induction, med_cat, leave_availed, marital_status, self_eval_status, peer_eval_status, peer_evaluated_by, peer_evaluated_at, peer_answers, peer_final_score, battalion_id, created_at, updated_at) VALUES (:id, :army_no, :rank, :name, :sub_unit, :service_length, :date_of_induction, :med_cat, :leave_availed, :marital_status, :self_eval_status, :peer_eval_status, :peer_evaluated_by, :peer_evaluated_at, :peer_answers, :peer_final_score, :battalion_id, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, p); err != nil {
		return fmt.Errorf("create personnel: %w", err)
	}
	return nil
}

// Update updates mutable roster fields of a personnel record.
func (r *PersonnelRepository) Update(ctx context.Context, p *models.Personnel) error {
	p.UpdatedAt = time.Now().UTC()
	const query = `UPDATE personnel SET army_no = :army_no, rank = :rank, name = :name, sub_unit = :sub_unit, service_length = :service_length, date_of_induction = :date_of_induction, med_cat = :med_cat, leave_availed = :leave_availed, marital_status = :marital_status, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, p); err != nil {
		return fmt.Errorf("update personnel: %w", err)
	}
	return nil
}

// UpdateSelfEvalStatus advances the self-assessment axis.
func (r *PersonnelRepository) UpdateSelfEvalStatus(ctx context.Context, id string, status models.SelfEvalStatus) error {
	const query = `UPDATE personnel SET self_eval_status = $2, updated_at = $3 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, status, time.Now().UTC()); err != nil {
		return fmt.Errorf("update self eval status: %w", err)
	}
	return nil
}

// UpdatePeerEvaluation records a peer evaluation against a personnel row.
func (r *PersonnelRepository) UpdatePeerEvaluation(ctx context.Context, id string, evaluatorID string, answers json.RawMessage, finalScore int, evaluatedAt time.Time) error {
	const query = `UPDATE personnel SET peer_eval_status = $2, peer_evaluated_by = $3, peer_evaluated_at = $4, peer_answers = $5, peer_final_score = $6, updated_at = $7 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, models.PeerEvalEvaluated, evaluatorID, evaluatedAt, []byte(answers), finalScore, time.Now().UTC()); err != nil {
		return fmt.Errorf("update peer evaluation: %w", err)
	}
	return nil
}

// Delete removes a single personnel record. Returns rows removed.
func (r *PersonnelRepository) Delete(ctx context.Context, id string) (int64, error) {
	const query = `DELETE FROM personnel WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("delete personnel: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete personnel rows affected: %w", err)
	}
	return affected, nil
}

// DeleteByBattalion removes every personnel record of a battalion.
func (r *PersonnelRepository) DeleteByBattalion(ctx context.Context, battalionID string) (int64, error) {
	const query = `DELETE FROM personnel WHERE battalion_id = $1`
	res, err := r.db.ExecContext(ctx, query, battalionID)
	if err != nil {
		return 0, fmt.Errorf("delete personnel by battalion: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete personnel by battalion rows affected: %w", err)
	}
	return affected, nil
}
