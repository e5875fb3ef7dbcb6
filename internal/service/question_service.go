package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/warrior-support/wss-api/internal/models"
	appErrors "github.com/warrior-support/wss-api/pkg/errors"
)

const questionCacheKey = "questions:active"

type questionRepository interface {
	ListActive(ctx context.Context) ([]models.Question, error)
	FindByID(ctx context.Context, id string) (*models.Question, error)
	Create(ctx context.Context, q *models.Question) error
	Update(ctx context.Context, q *models.Question) error
	Delete(ctx context.Context, id string) (int64, error)
}

// QuestionRequest holds payload for creating or updating questions.
type QuestionRequest struct {
	Text     string                  `json:"text" validate:"required"`
	Category models.QuestionCategory `json:"category" validate:"required,oneof=DEPRESSION ANXIETY STRESS"`
	Ordinal  int                     `json:"ordinal" validate:"gte=0"`
	Active   bool                    `json:"active"`
}

// QuestionService handles the self-assessment question bank.
type QuestionService struct {
	repo      questionRepository
	cache     *CacheService
	cacheTTL  time.Duration
	validator *validator.Validate
	logger    *zap.Logger
}

// NewQuestionService constructs the question service.
func NewQuestionService(repo questionRepository, cache *CacheService, cacheTTL time.Duration, validate *validator.Validate, logger *zap.Logger) *QuestionService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QuestionService{repo: repo, cache: cache, cacheTTL: cacheTTL, validator: validate, logger: logger}
}

// ListActive returns the active question set, served from cache when warm.
func (s *QuestionService) ListActive(ctx context.Context) ([]models.Question, error) {
	var cached []models.Question
	if hit, err := s.cache.Get(ctx, questionCacheKey, &cached); err == nil && hit {
		return cached, nil
	}

	questions, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list questions")
	}

	if err := s.cache.Set(ctx, questionCacheKey, questions, s.cacheTTL); err != nil {
		s.logger.Warn("failed to cache question set", zap.Error(err))
	}
	return questions, nil
}

// Create adds a question to the bank.
func (s *QuestionService) Create(ctx context.Context, req QuestionRequest) (*models.Question, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid question payload")
	}
	q := &models.Question{
		Text:     req.Text,
		Category: req.Category,
		Ordinal:  req.Ordinal,
		Active:   req.Active,
	}
	if err := s.repo.Create(ctx, q); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create question")
	}
	s.invalidate(ctx)
	return q, nil
}

// Update rewrites an existing question.
func (s *QuestionService) Update(ctx context.Context, id string, req QuestionRequest) (*models.Question, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid question payload")
	}

	q, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "question not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load question")
	}

	q.Text = req.Text
	q.Category = req.Category
	q.Ordinal = req.Ordinal
	q.Active = req.Active
	if err := s.repo.Update(ctx, q); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update question")
	}
	s.invalidate(ctx)
	return q, nil
}

// Delete removes a question from the bank.
func (s *QuestionService) Delete(ctx context.Context, id string) error {
	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete question")
	}
	if affected == 0 {
		return appErrors.Clone(appErrors.ErrNotFound, "question not found")
	}
	s.invalidate(ctx)
	return nil
}

func (s *QuestionService) invalidate(ctx context.Context) {
	if !s.cache.Enabled() {
		return
	}
	if err := s.cache.Invalidate(ctx, questionCacheKey); err != nil {
		s.logger.Warn("failed to invalidate question cache", zap.Error(err))
	}
}
