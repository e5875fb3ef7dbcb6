package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/warrior-support/wss-api/internal/service"
	appErrors "github.com/warrior-support/wss-api/pkg/errors"
	"github.com/warrior-support/wss-api/pkg/response"
)

// ExaminationHandler exposes self-assessment endpoints.
type ExaminationHandler struct {
	examinations *service.ExaminationService
}

// NewExaminationHandler constructs ExaminationHandler.
func NewExaminationHandler(examinations *service.ExaminationService) *ExaminationHandler {
	return &ExaminationHandler{examinations: examinations}
}

// Submit godoc
// @Summary Submit a self-assessment
// @Description Scores the questionnaire and records the examination
// @Tags Examinations
// @Accept json
// @Produce json
// @Param payload body service.SubmitExamRequest true "Examination payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /examination/submit [post]
func (h *ExaminationHandler) Submit(c *gin.Context) {
	actor := actorFromContext(c)
	if actor == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req service.SubmitExamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid examination payload"))
		return
	}

	exam, err := h.examinations.Submit(c.Request.Context(), actor, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, exam)
}

// History godoc
// @Summary Examination history for one person
// @Tags Examinations
// @Produce json
// @Param armyNo path string true "Army number"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /examination/personnel/{armyNo} [get]
func (h *ExaminationHandler) History(c *gin.Context) {
	actor := actorFromContext(c)
	if actor == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	exams, err := h.examinations.History(c.Request.Context(), actor, c.Param("armyNo"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, exams, nil)
}
