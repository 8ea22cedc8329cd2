package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/medfiscal/medfiscal/internal/api/dto"
	"github.com/medfiscal/medfiscal/internal/logger"
	"github.com/medfiscal/medfiscal/internal/service"

	ierr "github.com/medfiscal/medfiscal/internal/errors"
)

type SpedHandler struct {
	service service.SpedService
	log     *logger.Logger
}

func NewSpedHandler(service service.SpedService, log *logger.Logger) *SpedHandler {
	return &SpedHandler{service: service, log: log}
}

// Export builds a regulatory flat file for a clinic and period.
func (h *SpedHandler) Export(c *gin.Context) {
	ctx := c.Request.Context()
	var req dto.SpedExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	content, err := h.service.Export(ctx, req.ClinicID, req.PeriodStart, req.PeriodEnd, req.Kind)
	if err != nil {
		h.log.Errorw("failed to export regulatory file", "error", err, "clinic_id", req.ClinicID)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.SpedExportResponse{Kind: req.Kind, Content: content})
}

// Validate structurally checks exported content. Malformed content is part of
// the result, never an error status.
func (h *SpedHandler) Validate(c *gin.Context) {
	ctx := c.Request.Context()
	var req dto.SpedValidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	c.JSON(http.StatusOK, h.service.Validate(ctx, req.Content))
}
