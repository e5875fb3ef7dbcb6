package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/warrior-support/wss-api/internal/service"
	appErrors "github.com/warrior-support/wss-api/pkg/errors"
	"github.com/warrior-support/wss-api/pkg/response"
)

// CSVHandler exposes roster import/export endpoints.
type CSVHandler struct {
	csv         *service.CSVService
	maxFileSize int64
}

// NewCSVHandler constructs CSVHandler. maxFileSize of zero disables the
// upload size check.
func NewCSVHandler(csv *service.CSVService, maxFileSize int64) *CSVHandler {
	return &CSVHandler{csv: csv, maxFileSize: maxFileSize}
}

// Export godoc
// @Summary Export a battalion roster as CSV
// @Tags CSV
// @Produce text/csv
// @Param battalionId path string true "Battalion ID"
// @Success 200 {string} string "CSV file"
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /csv/export/{battalionId} [get]
func (h *CSVHandler) Export(c *gin.Context) {
	actor := actorFromContext(c)
	if actor == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	battalionID := c.Param("battalionId")
	data, err := h.csv.Export(c.Request.Context(), actor, battalionID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Attachment(c, "text/csv", fmt.Sprintf("battalion-%s.csv", battalionID), data)
}

// Import godoc
// @Summary Import personnel from a CSV file
// @Description Rows are validated independently; failed rows are reported, the rest are inserted
// @Tags CSV
// @Accept multipart/form-data
// @Produce json
// @Param battalionId path string true "Battalion ID"
// @Param file formData file true "CSV file"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /csv/import/{battalionId} [post]
func (h *CSVHandler) Import(c *gin.Context) {
	actor := actorFromContext(c)
	if actor == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "file is required"))
		return
	}
	if h.maxFileSize > 0 && fileHeader.Size > h.maxFileSize {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "file too large"))
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to open file"))
		return
	}
	defer src.Close()

	result, err := h.csv.Import(c.Request.Context(), actor, c.Param("battalionId"), src)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}
