package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/medfiscal/medfiscal/internal/api/dto"
	"github.com/medfiscal/medfiscal/internal/logger"
	"github.com/medfiscal/medfiscal/internal/service"

	ierr "github.com/medfiscal/medfiscal/internal/errors"
)

type StatementHandler struct {
	service service.StatementService
	log     *logger.Logger
}

func NewStatementHandler(service service.StatementService, log *logger.Logger) *StatementHandler {
	return &StatementHandler{service: service, log: log}
}

// GenerateIncomeStatement derives the DRE for a period.
func (h *StatementHandler) GenerateIncomeStatement(c *gin.Context) {
	ctx := c.Request.Context()
	var req dto.IncomeStatementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	stmt, err := h.service.GenerateIncomeStatement(ctx, req.ClinicID, req.PeriodStart, req.PeriodEnd)
	if err != nil {
		h.log.Errorw("failed to generate income statement", "error", err, "clinic_id", req.ClinicID)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, stmt)
}

// GenerateBalanceSheet derives the balance sheet at a date.
func (h *StatementHandler) GenerateBalanceSheet(c *gin.Context) {
	ctx := c.Request.Context()
	var req dto.BalanceSheetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	sheet, err := h.service.GenerateBalanceSheet(ctx, req.ClinicID, req.AsOf)
	if err != nil {
		h.log.Errorw("failed to generate balance sheet", "error", err, "clinic_id", req.ClinicID)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, sheet)
}
