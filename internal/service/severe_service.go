package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/warrior-support/wss-api/internal/models"
	appErrors "github.com/warrior-support/wss-api/pkg/errors"
)

type severeRepository interface {
	Create(ctx context.Context, sp *models.SeverePersonnel) error
	List(ctx context.Context, battalionID string) ([]models.SeverePersonnel, error)
	Delete(ctx context.Context, id string) (int64, error)
}

// SevereEntryRequest is one triage entry of a bulk submission.
type SevereEntryRequest struct {
	ArmyNo      string          `json:"armyNo" validate:"required"`
	Name        string          `json:"name" validate:"required"`
	Rank        string          `json:"rank"`
	BattalionID string          `json:"battalion" validate:"required"`
	Reason      string          `json:"reason"`
	Severity    models.Severity `json:"severity" validate:"required,oneof=NORMAL MILD MODERATE SEVERE EXTREMELY_SEVERE"`
}

// BulkInsertResult reports per-row outcomes of an unordered bulk insert.
type BulkInsertResult struct {
	InsertedCount int                      `json:"insertedCount"`
	Errors        []RowError               `json:"errors"`
	Entries       []models.SeverePersonnel `json:"entries,omitempty"`
}

// RowError pins a failure to its input row.
type RowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// SevereService handles severe-personnel triage.
type SevereService struct {
	repo      severeRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewSevereService constructs the severe-personnel service.
func NewSevereService(repo severeRepository, validate *validator.Validate, logger *zap.Logger) *SevereService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SevereService{repo: repo, validator: validate, logger: logger}
}

// BulkInsert persists every valid entry and collects per-row errors instead
// of aborting on the first failure.
func (s *SevereService) BulkInsert(ctx context.Context, entries []SevereEntryRequest) (*BulkInsertResult, error) {
	if len(entries) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "no entries provided")
	}

	result := &BulkInsertResult{}
	for i, entry := range entries {
		if err := s.validator.Struct(entry); err != nil {
			result.Errors = append(result.Errors, RowError{Row: i + 1, Message: fmt.Sprintf("invalid entry: %v", err)})
			continue
		}

		sp := &models.SeverePersonnel{
			ArmyNo:      strings.ToUpper(strings.TrimSpace(entry.ArmyNo)),
			Name:        entry.Name,
			Rank:        entry.Rank,
			BattalionID: entry.BattalionID,
			Reason:      entry.Reason,
			Severity:    entry.Severity,
		}
		if err := s.repo.Create(ctx, sp); err != nil {
			s.logger.Warn("severe personnel insert failed", zap.Int("row", i+1), zap.Error(err))
			result.Errors = append(result.Errors, RowError{Row: i + 1, Message: "failed to insert entry"})
			continue
		}
		result.InsertedCount++
		result.Entries = append(result.Entries, *sp)
	}

	return result, nil
}

// List returns triage entries. JCO actors see only their own battalion.
func (s *SevereService) List(ctx context.Context, actor *models.AuthContext) ([]models.SeverePersonnel, error) {
	battalionID := ""
	if actor.Role == models.RoleJCO {
		if actor.BattalionID == nil {
			return nil, appErrors.ErrDifferentBattalion
		}
		battalionID = *actor.BattalionID
	}

	entries, err := s.repo.List(ctx, battalionID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list severe personnel")
	}

	if actor.Role == models.RoleUser {
		// Self-service actors only see their own entries.
		var own []models.SeverePersonnel
		if actor.ArmyNo != nil {
			for _, e := range entries {
				if e.ArmyNo == *actor.ArmyNo {
					own = append(own, e)
				}
			}
		}
		return own, nil
	}

	return entries, nil
}

// Delete removes one triage entry.
func (s *SevereService) Delete(ctx context.Context, id string) error {
	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete severe personnel")
	}
	if affected == 0 {
		return appErrors.Clone(appErrors.ErrNotFound, "severe personnel not found")
	}
	return nil
}
