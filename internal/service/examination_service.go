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

type examinationRepository interface {
	Create(ctx context.Context, exam *models.Examination) error
	ListByArmyNo(ctx context.Context, armyNo string) ([]models.Examination, error)
}

type examPersonnelRepository interface {
	FindByArmyNo(ctx context.Context, armyNo string) (*models.Personnel, error)
	UpdateSelfEvalStatus(ctx context.Context, id string, status models.SelfEvalStatus) error
}

type examQuestionRepository interface {
	ListActive(ctx context.Context) ([]models.Question, error)
}

type analysisDispatcher interface {
	Dispatch(exam *models.Examination)
}

// ExamAnswer is a single questionnaire response, scored 0-3.
type ExamAnswer struct {
	QuestionID string `json:"questionId" validate:"required"`
	Value      int    `json:"value" validate:"gte=0,lte=3"`
}

// SubmitExamRequest holds a full self-assessment submission.
type SubmitExamRequest struct {
	ArmyNo  string       `json:"armyNo" validate:"required"`
	Answers []ExamAnswer `json:"answers" validate:"required,min=1,dive"`
}

// DASSScores carries the computed subscale results.
type DASSScores struct {
	Depression         int
	Anxiety            int
	Stress             int
	DepressionSeverity models.Severity
	AnxietySeverity    models.Severity
	StressSeverity     models.Severity
}

// ExaminationService scores self-assessments and records their results.
type ExaminationService struct {
	repo      examinationRepository
	personnel examPersonnelRepository
	questions examQuestionRepository
	analysis  analysisDispatcher
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewExaminationService constructs the examination service.
func NewExaminationService(repo examinationRepository, personnel examPersonnelRepository, questions examQuestionRepository, analysis analysisDispatcher, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *ExaminationService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExaminationService{repo: repo, personnel: personnel, questions: questions, analysis: analysis, metrics: metrics, validator: validate, logger: logger}
}

// Submit scores a self-assessment and advances the personnel record to
// COMPLETED. USER actors may submit only against their own army number.
func (s *ExaminationService) Submit(ctx context.Context, actor *models.AuthContext, req SubmitExamRequest) (*models.Examination, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid examination payload")
	}

	armyNo := strings.ToUpper(strings.TrimSpace(req.ArmyNo))
	person, err := s.personnel.FindByArmyNo(ctx, armyNo)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "personnel not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load personnel")
	}
	if err := policy.CheckSelfAccess(actor, person.ArmyNo, person.BattalionID); err != nil {
		return nil, err
	}

	questions, err := s.questions.ListActive(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load question bank")
	}

	scores, err := s.score(questions, req.Answers)
	if err != nil {
		return nil, err
	}

	rawAnswers, err := json.Marshal(req.Answers)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to encode answers")
	}

	// Submission marks the exam appeared, scoring completes it in the same
	// pass; both states are visible in the stored record's lifecycle.
	if err := s.personnel.UpdateSelfEvalStatus(ctx, person.ID, models.SelfEvalExamAppeared); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update evaluation status")
	}

	exam := &models.Examination{
		PersonnelID:        person.ID,
		ArmyNo:             armyNo,
		Answers:            rawAnswers,
		Depression:         scores.Depression,
		Anxiety:            scores.Anxiety,
		Stress:             scores.Stress,
		DepressionSeverity: scores.DepressionSeverity,
		AnxietySeverity:    scores.AnxietySeverity,
		StressSeverity:     scores.StressSeverity,
		Status:             models.SelfEvalCompleted,
	}
	if err := s.repo.Create(ctx, exam); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to record examination")
	}

	if err := s.personnel.UpdateSelfEvalStatus(ctx, person.ID, models.SelfEvalCompleted); err != nil {
		s.logger.Warn("failed to finalize evaluation status", zap.String("personnel", person.ID), zap.Error(err))
	}

	s.metrics.RecordAssessment(scores.DepressionSeverity, scores.AnxietySeverity, scores.StressSeverity)
	if s.analysis != nil {
		s.analysis.Dispatch(exam)
	}

	return exam, nil
}

// History returns the examination history for one soldier, scoped like any
// other personnel read.
func (s *ExaminationService) History(ctx context.Context, actor *models.AuthContext, armyNo string) ([]models.Examination, error) {
	armyNo = strings.ToUpper(strings.TrimSpace(armyNo))
	person, err := s.personnel.FindByArmyNo(ctx, armyNo)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "personnel not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load personnel")
	}
	if err := policy.CheckSelfAccess(actor, person.ArmyNo, person.BattalionID); err != nil {
		return nil, err
	}

	start := time.Now()
	exams, err := s.repo.ListByArmyNo(ctx, armyNo)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list examinations")
	}
	s.metrics.ObserveDBQuery("examination_history", time.Since(start))
	return exams, nil
}

// score sums each DASS subscale, doubles the raw sums and classifies them.
func (s *ExaminationService) score(questions []models.Question, answers []ExamAnswer) (*DASSScores, error) {
	categories := make(map[string]models.QuestionCategory, len(questions))
	for _, q := range questions {
		categories[q.ID] = q.Category
	}

	var depression, anxiety, stress int
	for _, a := range answers {
		category, ok := categories[a.QuestionID]
		if !ok {
			return nil, appErrors.Clone(appErrors.ErrValidation, "unknown question id "+a.QuestionID)
		}
		switch category {
		case models.CategoryDepression:
			depression += a.Value
		case models.CategoryAnxiety:
			anxiety += a.Value
		case models.CategoryStress:
			stress += a.Value
		}
	}

	depression *= 2
	anxiety *= 2
	stress *= 2

	return &DASSScores{
		Depression:         depression,
		Anxiety:            anxiety,
		Stress:             stress,
		DepressionSeverity: classifyDepression(depression),
		AnxietySeverity:    classifyAnxiety(anxiety),
		StressSeverity:     classifyStress(stress),
	}, nil
}

func classifyDepression(score int) models.Severity {
	switch {
	case score <= 9:
		return models.SeverityNormal
	case score <= 13:
		return models.SeverityMild
	case score <= 20:
		return models.SeverityModerate
	case score <= 27:
		return models.SeveritySevere
	default:
		return models.SeverityExtremelySevere
	}
}

func classifyAnxiety(score int) models.Severity {
	switch {
	case score <= 7:
		return models.SeverityNormal
	case score <= 9:
		return models.SeverityMild
	case score <= 14:
		return models.SeverityModerate
	case score <= 19:
		return models.SeveritySevere
	default:
		return models.SeverityExtremelySevere
	}
}

func classifyStress(score int) models.Severity {
	switch {
	case score <= 14:
		return models.SeverityNormal
	case score <= 18:
		return models.SeverityMild
	case score <= 25:
		return models.SeverityModerate
	case score <= 33:
		return models.SeveritySevere
	default:
		return models.SeverityExtremelySevere
	}
}
