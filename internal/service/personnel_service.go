package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/warrior-support/wss-api/internal/models"
	"github.com/warrior-support/wss-api/internal/policy"
	appErrors "github.com/warrior-support/wss-api/pkg/errors"
)

type personnelRepository interface {
	ListByBattalion(ctx context.Context, filter models.PersonnelFilter) ([]models.Personnel, int, error)
	FindByID(ctx context.Context, id string) (*models.Personnel, error)
	FindByArmyNo(ctx context.Context, armyNo string) (*models.Personnel, error)
	ExistsByArmyNo(ctx context.Context, armyNo string, excludeID string) (bool, error)
	Create(ctx context.Context, p *models.Personnel) error
	Update(ctx context.Context, p *models.Personnel) error
	UpdatePeerEvaluation(ctx context.Context, id string, evaluatorID string, answers json.RawMessage, finalScore int, evaluatedAt time.Time) error
	Delete(ctx context.Context, id string) (int64, error)
	DeleteByBattalion(ctx context.Context, battalionID string) (int64, error)
}

// CreatePersonnelRequest holds payload for creating a roster entry.
type CreatePersonnelRequest struct {
	ArmyNo        string               `json:"armyNo" validate:"required"`
	Rank          string               `json:"rank" validate:"required"`
	Name          string               `json:"name" validate:"required"`
	SubUnit       string               `json:"subUnit"`
	ServiceLength string               `json:"serviceLength"`
	DateOfInduct  *time.Time           `json:"dateOfInduction"`
	MedCat        string               `json:"medCat"`
	LeaveAvailed  string               `json:"leaveAvailed"`
	MaritalStatus models.MaritalStatus `json:"maritalStatus" validate:"omitempty,oneof=SINGLE MARRIED OTHER"`
	BattalionID   string               `json:"battalion" validate:"required"`
}

// UpdatePersonnelRequest holds payload for updating a roster entry.
type UpdatePersonnelRequest struct {
	ArmyNo        string               `json:"armyNo" validate:"required"`
	Rank          string               `json:"rank" validate:"required"`
	Name          string               `json:"name" validate:"required"`
	SubUnit       string               `json:"subUnit"`
	ServiceLength string               `json:"serviceLength"`
	DateOfInduct  *time.Time           `json:"dateOfInduction"`
	MedCat        string               `json:"medCat"`
	LeaveAvailed  string               `json:"leaveAvailed"`
	MaritalStatus models.MaritalStatus `json:"maritalStatus" validate:"omitempty,oneof=SINGLE MARRIED OTHER"`
}

// PersonnelService handles roster use-cases with battalion scoping.
type PersonnelService struct {
	repo      personnelRepository
	cache     *CacheService
	cacheTTL  time.Duration
	validator *validator.Validate
	logger    *zap.Logger
}

// NewPersonnelService constructs the personnel service.
func NewPersonnelService(repo personnelRepository, cache *CacheService, cacheTTL time.Duration, validate *validator.Validate, logger *zap.Logger) *PersonnelService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PersonnelService{repo: repo, cache: cache, cacheTTL: cacheTTL, validator: validate, logger: logger}
}

// rosterPage is the cached shape of one roster listing page.
type rosterPage struct {
	Items []models.Personnel `json:"items"`
	Total int                `json:"total"`
}

// ListByBattalion returns the roster of one battalion. JCO actors may list
// only their own battalion; CO actors any. Unfiltered pages are served from
// cache when warm; mutations invalidate roster:<battalionID>:*.
func (s *PersonnelService) ListByBattalion(ctx context.Context, actor *models.AuthContext, filter models.PersonnelFilter) ([]models.Personnel, *models.Pagination, error) {
	if err := policy.CheckBattalionAccess(actor, filter.BattalionID); err != nil {
		return nil, nil, err
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 {
		size = 100
	}

	cacheable := filter.Search == "" && filter.SelfEvalStatus == nil && filter.PeerEvalStatus == nil
	cacheKey := fmt.Sprintf("roster:%s:%d:%d", filter.BattalionID, page, size)
	if cacheable {
		var cached rosterPage
		if hit, err := s.cache.Get(ctx, cacheKey, &cached); err == nil && hit {
			return cached.Items, &models.Pagination{Page: page, PageSize: size, TotalCount: cached.Total}, nil
		}
	}

	personnel, total, err := s.repo.ListByBattalion(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list personnel")
	}

	if cacheable {
		if err := s.cache.Set(ctx, cacheKey, rosterPage{Items: personnel, Total: total}, s.cacheTTL); err != nil {
			s.logger.Warn("failed to cache roster page", zap.String("battalion", filter.BattalionID), zap.Error(err))
		}
	}

	pagination := &models.Pagination{Page: page, PageSize: size, TotalCount: total}
	return personnel, pagination, nil
}

// Get loads a record; missing yields 404 before any scope check.
func (s *PersonnelService) Get(ctx context.Context, actor *models.AuthContext, id string) (*models.Personnel, error) {
	p, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := policy.CheckSelfAccess(actor, p.ArmyNo, p.BattalionID); err != nil {
		return nil, err
	}
	return p, nil
}

// Create registers a roster entry. Duplicate army numbers fail with 400.
func (s *PersonnelService) Create(ctx context.Context, actor *models.AuthContext, req CreatePersonnelRequest) (*models.Personnel, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid personnel payload")
	}
	if err := policy.CheckBattalionAccess(actor, req.BattalionID); err != nil {
		return nil, err
	}

	armyNo := strings.ToUpper(strings.TrimSpace(req.ArmyNo))
	exists, err := s.repo.ExistsByArmyNo(ctx, armyNo, "")
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to validate army number")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrDuplicate, "army number already exists")
	}

	maritalStatus := req.MaritalStatus
	if maritalStatus == "" {
		maritalStatus = models.MaritalSingle
	}

	p := &models.Personnel{
		ArmyNo:        armyNo,
		Rank:          req.Rank,
		Name:          req.Name,
		SubUnit:       req.SubUnit,
		ServiceLength: req.ServiceLength,
		DateOfInduct:  req.DateOfInduct,
		MedCat:        req.MedCat,
		LeaveAvailed:  req.LeaveAvailed,
		MaritalStatus: maritalStatus,
		BattalionID:   req.BattalionID,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create personnel")
	}

	s.invalidateRoster(ctx, req.BattalionID)
	return p, nil
}

// Update edits roster fields of an existing record.
func (s *PersonnelService) Update(ctx context.Context, actor *models.AuthContext, id string, req UpdatePersonnelRequest) (*models.Personnel, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid personnel payload")
	}

	p, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := policy.CheckBattalionAccess(actor, p.BattalionID); err != nil {
		return nil, err
	}

	armyNo := strings.ToUpper(strings.TrimSpace(req.ArmyNo))
	if armyNo != p.ArmyNo {
		exists, err := s.repo.ExistsByArmyNo(ctx, armyNo, p.ID)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to validate army number")
		}
		if exists {
			return nil, appErrors.Clone(appErrors.ErrDuplicate, "army number already exists")
		}
	}

	p.ArmyNo = armyNo
	p.Rank = req.Rank
	p.Name = req.Name
	p.SubUnit = req.SubUnit
	p.ServiceLength = req.ServiceLength
	p.DateOfInduct = req.DateOfInduct
	p.MedCat = req.MedCat
	p.LeaveAvailed = req.LeaveAvailed
	if req.MaritalStatus != "" {
		p.MaritalStatus = req.MaritalStatus
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update personnel")
	}

	s.invalidateRoster(ctx, p.BattalionID)
	return p, nil
}

// Delete removes a single roster entry.
func (s *PersonnelService) Delete(ctx context.Context, actor *models.AuthContext, id string) error {
	p, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	if err := policy.CheckBattalionAccess(actor, p.BattalionID); err != nil {
		return err
	}

	if _, err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete personnel")
	}
	s.invalidateRoster(ctx, p.BattalionID)
	return nil
}

// DeleteByBattalion removes an entire battalion roster. CO only by route
// guard; scoping still applies for defense in depth.
func (s *PersonnelService) DeleteByBattalion(ctx context.Context, actor *models.AuthContext, battalionID string) (int64, error) {
	if err := policy.CheckBattalionAccess(actor, battalionID); err != nil {
		return 0, err
	}
	affected, err := s.repo.DeleteByBattalion(ctx, battalionID)
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete battalion personnel")
	}
	s.invalidateRoster(ctx, battalionID)
	return affected, nil
}

func (s *PersonnelService) find(ctx context.Context, id string) (*models.Personnel, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "personnel not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load personnel")
	}
	return p, nil
}

func (s *PersonnelService) invalidateRoster(ctx context.Context, battalionID string) {
	if !s.cache.Enabled() {
		return
	}
	if err := s.cache.Invalidate(ctx, "roster:"+battalionID+":*"); err != nil {
		s.logger.Warn("failed to invalidate roster cache", zap.String("battalion", battalionID), zap.Error(err))
	}
}
