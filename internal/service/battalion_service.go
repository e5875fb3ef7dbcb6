package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/warrior-support/wss-api/internal/models"
	appErrors "github.com/warrior-support/wss-api/pkg/errors"
)

type battalionRepository interface {
	List(ctx context.Context) ([]models.Battalion, error)
	FindByID(ctx context.Context, id string) (*models.Battalion, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	Create(ctx context.Context, battalion *models.Battalion) error
	Delete(ctx context.Context, id string) (int64, error)
}

type battalionPersonnelRepository interface {
	DeleteByBattalion(ctx context.Context, battalionID string) (int64, error)
}

// CreateBattalionRequest holds payload for creating battalions.
type CreateBattalionRequest struct {
	Name      string `json:"name" validate:"required,min=2,max=100"`
	PostedStr string `json:"postedStr"`
}

// BattalionService handles battalion use-cases.
type BattalionService struct {
	repo      battalionRepository
	personnel battalionPersonnelRepository
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewBattalionService constructs the battalion service.
func NewBattalionService(repo battalionRepository, personnel battalionPersonnelRepository, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *BattalionService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BattalionService{repo: repo, personnel: personnel, cache: cache, validator: validate, logger: logger}
}

// List returns all battalions.
func (s *BattalionService) List(ctx context.Context) ([]models.Battalion, error) {
	battalions, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list battalions")
	}
	return battalions, nil
}

// Get returns one battalion.
func (s *BattalionService) Get(ctx context.Context, id string) (*models.Battalion, error) {
	battalion, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "battalion not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load battalion")
	}
	return battalion, nil
}

// Create registers a new battalion owned by the acting user. Repeating a
// name always fails with the duplicate 400, never creating a second record.
func (s *BattalionService) Create(ctx context.Context, actor *models.AuthContext, req CreateBattalionRequest) (*models.Battalion, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid battalion payload")
	}

	name := strings.TrimSpace(req.Name)
	exists, err := s.repo.ExistsByName(ctx, name)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to validate battalion name")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrDuplicate, "battalion name already exists")
	}

	battalion := &models.Battalion{
		Name:      name,
		PostedStr: req.PostedStr,
		CreatedBy: actor.UserID,
	}
	if err := s.repo.Create(ctx, battalion); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create battalion")
	}
	return battalion, nil
}

// Delete hard-deletes a battalion together with its roster.
func (s *BattalionService) Delete(ctx context.Context, id string) error {
	if s.personnel != nil {
		if _, err := s.personnel.DeleteByBattalion(ctx, id); err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete battalion personnel")
		}
	}

	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete battalion")
	}
	if affected == 0 {
		return appErrors.Clone(appErrors.ErrNotFound, "battalion not found")
	}

	if s.cache.Enabled() {
		if err := s.cache.Invalidate(ctx, "roster:"+id+":*"); err != nil {
			s.logger.Warn("failed to invalidate roster cache", zap.String("battalion", id), zap.Error(err))
		}
	}
	return nil
}
