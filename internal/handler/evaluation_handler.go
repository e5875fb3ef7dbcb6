package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/warrior-support/wss-api/internal/service"
	appErrors "github.com/warrior-support/wss-api/pkg/errors"
	"github.com/warrior-support/wss-api/pkg/response"
)

// EvaluationHandler exposes peer-evaluation endpoints.
type EvaluationHandler struct {
	evaluations *service.EvaluationService
}

// NewEvaluationHandler constructs EvaluationHandler.
func NewEvaluationHandler(evaluations *service.EvaluationService) *EvaluationHandler {
	return &EvaluationHandler{evaluations: evaluations}
}

// Submit godoc
// @Summary Submit a peer evaluation
// @Description Records the evaluator's answers and final score for a battalion member
// @Tags Evaluations
// @Accept json
// @Produce json
// @Param payload body service.SubmitEvaluationRequest true "Evaluation payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /evaluation/submit [post]
func (h *EvaluationHandler) Submit(c *gin.Context) {
	actor := actorFromContext(c)
	if actor == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req service.SubmitEvaluationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid evaluation payload"))
		return
	}

	person, err := h.evaluations.Submit(c.Request.Context(), actor, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, person, nil)
}
