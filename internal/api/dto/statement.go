package dto

import "time"

// IncomeStatementRequest asks for the DRE of a clinic over a period.
type IncomeStatementRequest struct {
	ClinicID    string    `json:"clinic_id" binding:"required"`
	PeriodStart time.Time `json:"period_start" binding:"required"`
	PeriodEnd   time.Time `json:"period_end" binding:"required"`
}

// BalanceSheetRequest asks for the balance sheet of a clinic at a date.
type BalanceSheetRequest struct {
	ClinicID string    `json:"clinic_id" binding:"required"`
	AsOf     time.Time `json:"as_of" binding:"required"`
}
