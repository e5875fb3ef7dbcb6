package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/warrior-support/wss-api/internal/models"
	"github.com/warrior-support/wss-api/internal/service"
	appErrors "github.com/warrior-support/wss-api/pkg/errors"
	"github.com/warrior-support/wss-api/pkg/response"
)

// PersonnelHandler exposes roster endpoints.
type PersonnelHandler struct {
	personnel *service.PersonnelService
}

// NewPersonnelHandler constructs PersonnelHandler.
func NewPersonnelHandler(personnel *service.PersonnelService) *PersonnelHandler {
	return &PersonnelHandler{personnel: personnel}
}

// ListByBattalion godoc
// @Summary List personnel of a battalion
// @Tags Personnel
// @Produce json
// @Param battalionId path string true "Battalion ID"
// @Param search query string false "Search by name or army number"
// @Param selfEvalStatus query string false "Filter by self-evaluation status"
// @Param peerEvalStatus query string false "Filter by peer-evaluation status"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /personnel/battalion/{battalionId} [get]
func (h *PersonnelHandler) ListByBattalion(c *gin.Context) {
	actor := actorFromContext(c)
	if actor == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var filter models.PersonnelFilter
	filter.BattalionID = c.Param("battalionId")
	filter.Search = strings.TrimSpace(c.Query("search"))
	if raw := c.Query("selfEvalStatus"); raw != "" {
		status := models.SelfEvalStatus(raw)
		filter.SelfEvalStatus = &status
	}
	if raw := c.Query("peerEvalStatus"); raw != "" {
		status := models.PeerEvalStatus(raw)
		filter.PeerEvalStatus = &status
	}
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		filter.Page = page
	}
	if size, err := strconv.Atoi(c.DefaultQuery("limit", "20")); err == nil {
		filter.PageSize = size
	}

	personnel, pagination, err := h.personnel.ListByBattalion(c.Request.Context(), actor, filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, personnel, pagination)
}

// Get godoc
// @Summary Get personnel detail
// @Tags Personnel
// @Produce json
// @Param id path string true "Personnel ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /personnel/{id} [get]
func (h *PersonnelHandler) Get(c *gin.Context) {
	actor := actorFromContext(c)
	if actor == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	person, err := h.personnel.Get(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, person, nil)
}

// Create godoc
// @Summary Create personnel
// @Tags Personnel
// @Accept json
// @Produce json
// @Param payload body service.CreatePersonnelRequest true "Personnel payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /personnel [post]
func (h *PersonnelHandler) Create(c *gin.Context) {
	actor := actorFromContext(c)
	if actor == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req service.CreatePersonnelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid personnel payload"))
		return
	}

	person, err := h.personnel.Create(c.Request.Context(), actor, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, person)
}

// Update godoc
// @Summary Update personnel
// @Tags Personnel
// @Accept json
// @Produce json
// @Param id path string true "Personnel ID"
// @Param payload body service.UpdatePersonnelRequest true "Personnel payload"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /personnel/{id} [put]
func (h *PersonnelHandler) Update(c *gin.Context) {
	actor := actorFromContext(c)
	if actor == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req service.UpdatePersonnelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid personnel payload"))
		return
	}

	person, err := h.personnel.Update(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, person, nil)
}

// Delete godoc
// @Summary Delete personnel
// @Tags Personnel
// @Produce json
// @Param id path string true "Personnel ID"
// @Success 204 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /personnel/{id} [delete]
func (h *PersonnelHandler) Delete(c *gin.Context) {
	actor := actorFromContext(c)
	if actor == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	if err := h.personnel.Delete(c.Request.Context(), actor, c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// DeleteByBattalion godoc
// @Summary Delete a battalion's entire roster
// @Tags Personnel
// @Produce json
// @Param battalionId path string true "Battalion ID"
// @Success 200 {object} response.Envelope
// @Router /personnel/battalion/{battalionId} [delete]
func (h *PersonnelHandler) DeleteByBattalion(c *gin.Context) {
	actor := actorFromContext(c)
	if actor == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	deleted, err := h.personnel.DeleteByBattalion(c.Request.Context(), actor, c.Param("battalionId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"deletedCount": deleted}, nil)
}
