package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/warrior-support/wss-api/internal/service"
	appErrors "github.com/warrior-support/wss-api/pkg/errors"
	"github.com/warrior-support/wss-api/pkg/response"
)

// SevereHandler exposes the severe-personnel triage list.
type SevereHandler struct {
	severe *service.SevereService
}

// NewSevereHandler constructs SevereHandler.
func NewSevereHandler(severe *service.SevereService) *SevereHandler {
	return &SevereHandler{severe: severe}
}

// BulkInsert godoc
// @Summary Record severe personnel entries
// @Description Accepts a batch; invalid rows are reported while valid rows are inserted
// @Tags SeverePersonnel
// @Accept json
// @Produce json
// @Param payload body []service.SevereEntryRequest true "Entries"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /severePersonnel [post]
func (h *SevereHandler) BulkInsert(c *gin.Context) {
	var entries []service.SevereEntryRequest
	if err := c.ShouldBindJSON(&entries); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	result, err := h.severe.BulkInsert(c.Request.Context(), entries)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// List godoc
// @Summary List severe personnel entries
// @Tags SeverePersonnel
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /severePersonnel [get]
func (h *SevereHandler) List(c *gin.Context) {
	actor := actorFromContext(c)
	if actor == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	entries, err := h.severe.List(c.Request.Context(), actor)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entries, nil)
}

// Delete godoc
// @Summary Delete a severe personnel entry
// @Tags SeverePersonnel
// @Produce json
// @Param id path string true "Entry ID"
// @Success 204 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /severePersonnel/{id} [delete]
func (h *SevereHandler) Delete(c *gin.Context) {
	if err := h.severe.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
