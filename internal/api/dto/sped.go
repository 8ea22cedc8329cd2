package dto

import (
	"time"

	"github.com/medfiscal/medfiscal/internal/types"
)

// SpedExportRequest asks for a regulatory flat-file export.
type SpedExportRequest struct {
	ClinicID    string             `json:"clinic_id" binding:"required"`
	PeriodStart time.Time          `json:"period_start" binding:"required"`
	PeriodEnd   time.Time          `json:"period_end" binding:"required"`
	Kind        types.SpedFileKind `json:"kind" binding:"required"`
}

// SpedExportResponse carries the exported content.
type SpedExportResponse struct {
	Kind    types.SpedFileKind `json:"kind"`
	Content string             `json:"content"`
}

// SpedValidateRequest asks for a structural validation of exported content.
type SpedValidateRequest struct {
	Content string `json:"content"`
}
