package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/warrior-support/wss-api/internal/models"
	"github.com/warrior-support/wss-api/internal/policy"
	appErrors "github.com/warrior-support/wss-api/pkg/errors"
)

type evaluationPersonnelRepository interface {
	FindByArmyNo(ctx context.Context, armyNo string) (*models.Personnel, error)
	UpdatePeerEvaluation(ctx context.Context, id string, evaluatorID string, answers json.RawMessage, finalScore int, evaluatedAt time.Time) error
}

// SubmitEvaluationRequest holds a JCO's peer evaluation of one soldier.
// Reevaluate must be set explicitly to overwrite an EVALUATED record.
type SubmitEvaluationRequest struct {
	ArmyNo     string          `json:"armyNo" validate:"required"`
	Answers    json.RawMessage `json:"answers" validate:"required"`
	FinalScore int             `json:"finalScore" validate:"gte=0,lte=100"`
	Reevaluate bool            `json:"reevaluate"`
}

// EvaluationService enforces the peer-evaluation state machine.
type EvaluationService struct {
	personnel evaluationPersonnelRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewEvaluationService constructs the evaluation service.
func NewEvaluationService(personnel evaluationPersonnelRepository, validate *validator.Validate, logger *zap.Logger) *EvaluationService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EvaluationService{personnel: personnel, validator: validate, logger: logger}
}

// Submit records a peer evaluation. Ordering is fixed: unknown personnel is
// 404 before any battalion check can 403; an already-EVALUATED record is
// 409 unless the request explicitly asks for re-evaluation.
func (s *EvaluationService) Submit(ctx context.Context, actor *models.AuthContext, req SubmitEvaluationRequest) (*models.Personnel, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid evaluation payload")
	}

	armyNo := strings.ToUpper(strings.TrimSpace(req.ArmyNo))
	person, err := s.personnel.FindByArmyNo(ctx, armyNo)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "personnel not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load personnel")
	}

	if err := policy.CheckBattalionAccess(actor, person.BattalionID); err != nil {
		return nil, err
	}

	if person.PeerEvalStatus == models.PeerEvalEvaluated && !req.Reevaluate {
		return nil, appErrors.Clone(appErrors.ErrConflict, "personnel already evaluated")
	}

	evaluatedAt := time.Now().UTC()
	if err := s.personnel.UpdatePeerEvaluation(ctx, person.ID, actor.UserID, req.Answers, req.FinalScore, evaluatedAt); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to record evaluation")
	}

	person.PeerEvalStatus = models.PeerEvalEvaluated
	person.PeerEvaluatedBy = &actor.UserID
	person.PeerEvaluatedAt = &evaluatedAt
	person.PeerAnswers = req.Answers
	score := req.FinalScore
	person.PeerFinalScore = &score
	return person, nil
}
