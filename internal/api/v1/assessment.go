package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/medfiscal/medfiscal/internal/api/dto"
	"github.com/medfiscal/medfiscal/internal/logger"
	"github.com/medfiscal/medfiscal/internal/service"
	"github.com/medfiscal/medfiscal/internal/types"

	ierr "github.com/medfiscal/medfiscal/internal/errors"
)

type AssessmentHandler struct {
	service service.AssessmentService
	log     *logger.Logger
}

func NewAssessmentHandler(service service.AssessmentService, log *logger.Logger) *AssessmentHandler {
	return &AssessmentHandler{service: service, log: log}
}

// GenerateAssessment generates (or returns) the assessment for a period.
func (h *AssessmentHandler) GenerateAssessment(c *gin.Context) {
	ctx := c.Request.Context()
	var req dto.GenerateAssessmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	period, err := types.NewMonthPeriod(req.Month, req.Year)
	if err != nil {
		c.Error(err)
		return
	}

	result, err := h.service.GenerateAssessment(ctx, req.ClinicID, period)
	if err != nil {
		h.log.Errorw("failed to generate assessment", "error", err, "clinic_id", req.ClinicID)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAssessmentResponse(result))
}

func (h *AssessmentHandler) GetAssessment(c *gin.Context) {
	ctx := c.Request.Context()

	result, err := h.service.GetAssessment(ctx, c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAssessmentResponse(result))
}

func (h *AssessmentHandler) ListAssessments(c *gin.Context) {
	ctx := c.Request.Context()
	clinicID := c.Query("clinic_id")

	results, err := h.service.ListAssessments(ctx, clinicID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAssessmentListResponse(results))
}

// RecordPayment records a payment against an assessment.
func (h *AssessmentHandler) RecordPayment(c *gin.Context) {
	ctx := c.Request.Context()
	var req dto.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	result, err := h.service.RecordPayment(ctx, c.Param("id"), req.PaidAt, req.Proof)
	if err != nil {
		h.log.Errorw("failed to record payment", "error", err, "assessment_id", c.Param("id"))
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAssessmentResponse(result))
}

// MarkOverdue flags an unpaid assessment as overdue.
func (h *AssessmentHandler) MarkOverdue(c *gin.Context) {
	ctx := c.Request.Context()

	result, err := h.service.MarkOverdue(ctx, c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAssessmentResponse(result))
}

// StartInstallment moves an assessment into an installment plan.
func (h *AssessmentHandler) StartInstallment(c *gin.Context) {
	ctx := c.Request.Context()

	result, err := h.service.StartInstallment(ctx, c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAssessmentResponse(result))
}
