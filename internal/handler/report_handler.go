package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/warrior-support/wss-api/internal/service"
	appErrors "github.com/warrior-support/wss-api/pkg/errors"
	"github.com/warrior-support/wss-api/pkg/response"
)

// ReportHandler serves printable roster reports.
type ReportHandler struct {
	reports *service.ReportService
}

// NewReportHandler constructs ReportHandler.
func NewReportHandler(reports *service.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// BattalionPDF godoc
// @Summary Download a battalion roster as PDF
// @Tags Reports
// @Produce application/pdf
// @Param battalionId path string true "Battalion ID"
// @Success 200 {string} string "PDF file"
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /report/pdf/{battalionId} [get]
func (h *ReportHandler) BattalionPDF(c *gin.Context) {
	actor := actorFromContext(c)
	if actor == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	data, filename, err := h.reports.BattalionPDF(c.Request.Context(), actor, c.Param("battalionId"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Attachment(c, "application/pdf", filename, data)
}
