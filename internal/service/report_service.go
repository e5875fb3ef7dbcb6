package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/warrior-support/wss-api/internal/models"
	"github.com/warrior-support/wss-api/internal/policy"
	"github.com/warrior-support/wss-api/pkg/export"
	appErrors "github.com/warrior-support/wss-api/pkg/errors"
)

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

// ReportService renders battalion rosters as PDF documents.
type ReportService struct {
	personnel  *PersonnelService
	battalions *BattalionService
	pdf        pdfRenderer
	logger     *zap.Logger
}

// NewReportService constructs the report service.
func NewReportService(personnel *PersonnelService, battalions *BattalionService, pdf pdfRenderer, logger *zap.Logger) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{personnel: personnel, battalions: battalions, pdf: pdf, logger: logger}
}

// BattalionPDF renders a tabular roster report for one battalion.
func (s *ReportService) BattalionPDF(ctx context.Context, actor *models.AuthContext, battalionID string) ([]byte, string, error) {
	battalion, err := s.battalions.Get(ctx, battalionID)
	if err != nil {
		return nil, "", err
	}
	if err := policy.CheckBattalionAccess(actor, battalionID); err != nil {
		return nil, "", err
	}

	var roster []models.Personnel
	page := 1
	for {
		batch, pagination, err := s.personnel.ListByBattalion(ctx, actor, models.PersonnelFilter{
			BattalionID: battalionID,
			Page:        page,
			PageSize:    500,
		})
		if err != nil {
			return nil, "", err
		}
		roster = append(roster, batch...)
		if len(roster) >= pagination.TotalCount || len(batch) == 0 {
			break
		}
		page++
	}

	dataset := export.Dataset{Headers: []string{"ArmyNo", "Rank", "Name", "SelfEvalStatus", "PeerEvalStatus", "Score"}}
	for _, p := range roster {
		score := ""
		if p.PeerFinalScore != nil {
			score = fmt.Sprintf("%d", *p.PeerFinalScore)
		}
		dataset.Rows = append(dataset.Rows, map[string]string{
			"ArmyNo":         p.ArmyNo,
			"Rank":           p.Rank,
			"Name":           p.Name,
			"SelfEvalStatus": string(p.SelfEvalStatus),
			"PeerEvalStatus": string(p.PeerEvalStatus),
			"Score":          score,
		})
	}

	data, err := s.pdf.Render(dataset, battalion.Name+" roster")
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
	}

	filename := fmt.Sprintf("%s-roster.pdf", battalion.Name)
	return data, filename, nil
}
