package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/medfiscal/medfiscal/internal/api/dto"
	"github.com/medfiscal/medfiscal/internal/logger"
	"github.com/medfiscal/medfiscal/internal/service"

	ierr "github.com/medfiscal/medfiscal/internal/errors"
)

type TaxHandler struct {
	service service.TaxService
	log     *logger.Logger
}

func NewTaxHandler(service service.TaxService, log *logger.Logger) *TaxHandler {
	return &TaxHandler{service: service, log: log}
}

// ComputeInvoiceTax computes (or recomputes) the tax breakdown for an invoice.
func (h *TaxHandler) ComputeInvoiceTax(c *gin.Context) {
	ctx := c.Request.Context()
	invoiceID := c.Param("id")
	if invoiceID == "" {
		c.Error(ierr.NewError("invoice id is required").
			WithHint("Invoice ID is required").
			Mark(ierr.ErrValidation))
		return
	}

	breakdown, err := h.service.ComputeInvoiceTax(ctx, invoiceID)
	if err != nil {
		h.log.Errorw("failed to compute invoice tax", "error", err, "invoice_id", invoiceID)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaxBreakdownResponse(breakdown))
}
