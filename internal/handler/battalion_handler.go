package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/warrior-support/wss-api/internal/service"
	appErrors "github.com/warrior-support/wss-api/pkg/errors"
	"github.com/warrior-support/wss-api/pkg/response"
)

// BattalionHandler exposes battalion endpoints.
type BattalionHandler struct {
	battalions *service.BattalionService
}

// NewBattalionHandler constructs BattalionHandler.
func NewBattalionHandler(battalions *service.BattalionService) *BattalionHandler {
	return &BattalionHandler{battalions: battalions}
}

// List godoc
// @Summary List battalions
// @Tags Battalions
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /battalion [get]
func (h *BattalionHandler) List(c *gin.Context) {
	battalions, err := h.battalions.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, battalions, nil)
}

// Create godoc
// @Summary Create battalion
// @Tags Battalions
// @Accept json
// @Produce json
// @Param payload body service.CreateBattalionRequest true "Battalion payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /battalion [post]
func (h *BattalionHandler) Create(c *gin.Context) {
	actor := actorFromContext(c)
	if actor == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req service.CreateBattalionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid battalion payload"))
		return
	}

	battalion, err := h.battalions.Create(c.Request.Context(), actor, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, battalion)
}

// Delete godoc
// @Summary Delete battalion
// @Description Removes the battalion and its entire roster
// @Tags Battalions
// @Produce json
// @Param id path string true "Battalion ID"
// @Success 204 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /battalion/{id} [delete]
func (h *BattalionHandler) Delete(c *gin.Context) {
	if err := h.battalions.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
