package types

import (
	"slices"

	ierr "github.com/medfiscal/medfiscal/internal/errors"
)

// AssessmentStatus is the lifecycle status of a monthly tax assessment
// (apuração). OPEN models a period that has not been computed yet; generation
// persists directly as ASSESSED.
type AssessmentStatus string

const (
	AssessmentStatusOpen        AssessmentStatus = "OPEN"
	AssessmentStatusAssessed    AssessmentStatus = "ASSESSED"
	AssessmentStatusPaid        AssessmentStatus = "PAID"
	AssessmentStatusInstallment AssessmentStatus = "INSTALLMENT"
	AssessmentStatusOverdue     AssessmentStatus = "OVERDUE"
)

// assessmentTransitions is the allowed transition table. Payment from OPEN is
// kept as observed in production (manual payment recorded ahead of formal
// assessment); flagged for product clarification, do not remove it silently.
var assessmentTransitions = map[AssessmentStatus][]AssessmentStatus{
	AssessmentStatusOpen:        {AssessmentStatusAssessed, AssessmentStatusPaid, AssessmentStatusOverdue},
	AssessmentStatusAssessed:    {AssessmentStatusPaid, AssessmentStatusInstallment, AssessmentStatusOverdue},
	AssessmentStatusInstallment: {AssessmentStatusPaid},
	AssessmentStatusOverdue:     {AssessmentStatusPaid, AssessmentStatusInstallment},
	AssessmentStatusPaid:        {},
}

func (s AssessmentStatus) String() string {
	return string(s)
}

func (s AssessmentStatus) Validate() error {
	allowedValues := []string{
		AssessmentStatusOpen.String(),
		AssessmentStatusAssessed.String(),
		AssessmentStatusPaid.String(),
		AssessmentStatusInstallment.String(),
		AssessmentStatusOverdue.String(),
	}
	if !slices.Contains(allowedValues, string(s)) {
		return ierr.NewError("invalid assessment status").
			WithHint("Assessment status must be one of OPEN, ASSESSED, PAID, INSTALLMENT or OVERDUE").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// CanTransitionTo reports whether the transition table allows moving from s
// to target.
func (s AssessmentStatus) CanTransitionTo(target AssessmentStatus) bool {
	return slices.Contains(assessmentTransitions[s], target)
}
