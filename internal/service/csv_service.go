package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/warrior-support/wss-api/internal/models"
	"github.com/warrior-support/wss-api/internal/policy"
	"github.com/warrior-support/wss-api/pkg/export"
	appErrors "github.com/warrior-support/wss-api/pkg/errors"
)

var csvHeaders = []string{"ArmyNo", "Rank", "Name", "SubUnit", "ServiceLength", "MedCat", "MaritalStatus", "SelfEvalStatus", "PeerEvalStatus", "PeerFinalScore"}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

// ImportResult reports per-row outcomes of a CSV import.
type ImportResult struct {
	SuccessCount int        `json:"successCount"`
	Errors       []RowError `json:"errors"`
}

// CSVService builds roster exports and runs partial-failure-tolerant imports.
type CSVService struct {
	personnel *PersonnelService
	renderer  csvRenderer
	maxRows   int
	validator *validator.Validate
	logger    *zap.Logger
}

// NewCSVService constructs the CSV service.
func NewCSVService(personnel *PersonnelService, renderer csvRenderer, maxRows int, validate *validator.Validate, logger *zap.Logger) *CSVService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if maxRows <= 0 {
		maxRows = 5000
	}
	return &CSVService{personnel: personnel, renderer: renderer, maxRows: maxRows, validator: validate, logger: logger}
}

// Export renders the battalion roster with evaluation state as CSV bytes.
func (s *CSVService) Export(ctx context.Context, actor *models.AuthContext, battalionID string) ([]byte, error) {
	if err := policy.CheckBattalionAccess(actor, battalionID); err != nil {
		return nil, err
	}

	roster, err := s.loadRoster(ctx, actor, battalionID)
	if err != nil {
		return nil, err
	}

	dataset := export.Dataset{Headers: csvHeaders}
	for _, p := range roster {
		score := ""
		if p.PeerFinalScore != nil {
			score = fmt.Sprintf("%d", *p.PeerFinalScore)
		}
		dataset.Rows = append(dataset.Rows, map[string]string{
			"ArmyNo":         p.ArmyNo,
			"Rank":           p.Rank,
			"Name":           p.Name,
			"SubUnit":        p.SubUnit,
			"ServiceLength":  p.ServiceLength,
			"MedCat":         p.MedCat,
			"MaritalStatus":  string(p.MaritalStatus),
			"SelfEvalStatus": string(p.SelfEvalStatus),
			"PeerEvalStatus": string(p.PeerEvalStatus),
			"PeerFinalScore": score,
		})
	}

	data, err := s.renderer.Render(dataset)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
	}
	return data, nil
}

// Import bulk-creates personnel from an uploaded CSV. Each row is validated
// independently; failures are accumulated and every valid row is persisted.
func (s *CSVService) Import(ctx context.Context, actor *models.AuthContext, battalionID string, r io.Reader) (*ImportResult, error) {
	if err := policy.CheckBattalionAccess(actor, battalionID); err != nil {
		return nil, err
	}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "csv is empty or unreadable")
	}
	columns := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimPrefix(name, "\uFEFF") // exported files carry a BOM
		columns[strings.TrimSpace(name)] = i
	}
	if _, ok := columns["ArmyNo"]; !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, "csv missing ArmyNo column")
	}

	result := &ImportResult{}
	row := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		row++
		if err != nil {
			result.Errors = append(result.Errors, RowError{Row: row, Message: "malformed csv row"})
			continue
		}
		if row-1 > s.maxRows {
			// Rows before the limit are already persisted, so report them
			// instead of failing the whole request.
			result.Errors = append(result.Errors, RowError{Row: row, Message: fmt.Sprintf("import truncated after %d rows", s.maxRows)})
			break
		}

		req := CreatePersonnelRequest{
			ArmyNo:        field(record, columns, "ArmyNo"),
			Rank:          field(record, columns, "Rank"),
			Name:          field(record, columns, "Name"),
			SubUnit:       field(record, columns, "SubUnit"),
			ServiceLength: field(record, columns, "ServiceLength"),
			MedCat:        field(record, columns, "MedCat"),
			MaritalStatus: models.MaritalStatus(strings.ToUpper(field(record, columns, "MaritalStatus"))),
			BattalionID:   battalionID,
		}

		if _, err := s.personnel.Create(ctx, actor, req); err != nil {
			result.Errors = append(result.Errors, RowError{Row: row, Message: appErrors.FromError(err).Message})
			continue
		}
		result.SuccessCount++
	}

	return result, nil
}

func (s *CSVService) loadRoster(ctx context.Context, actor *models.AuthContext, battalionID string) ([]models.Personnel, error) {
	var roster []models.Personnel
	page := 1
	for {
		batch, pagination, err := s.personnel.ListByBattalion(ctx, actor, models.PersonnelFilter{
			BattalionID: battalionID,
			Page:        page,
			PageSize:    500,
		})
		if err != nil {
			return nil, err
		}
		roster = append(roster, batch...)
		if len(roster) >= pagination.TotalCount || len(batch) == 0 {
			break
		}
		page++
	}
	return roster, nil
}

func field(record []string, columns map[string]int, name string) string {
	idx, ok := columns[name]
	if !ok || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}
