package errors

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilderMarksSentinel(t *testing.T) {
	err := NewError("fiscal config missing").
		WithHint("No fiscal configuration is vigent for the clinic").
		Mark(ErrNotFound)

	assert.True(t, IsNotFound(err))
	assert.False(t, IsValidation(err))
	assert.Equal(t, http.StatusNotFound, HTTPStatusFromErr(err))
}

func TestErrorResponseUsesHintNotInternalMessage(t *testing.T) {
	err := NewError("clinic clin_01 has no vigent row in fiscal_configs").
		WithHintf("No fiscal configuration found for %s", "03/2025").
		Mark(ErrNotFound)

	resp := NewErrorResponse(err)
	assert.False(t, resp.Success)
	assert.Equal(t, "No fiscal configuration found for 03/2025", resp.Error.Message)
	assert.NotContains(t, resp.Error.Message, "fiscal_configs")
}

func TestErrorResponseCarriesReportableDetails(t *testing.T) {
	err := NewError("invalid transition").
		WithHint("Assessment cannot move to the requested status").
		WithReportableDetails(map[string]any{"from": "PAID", "to": "OVERDUE"}).
		WithReportableDetails(map[string]any{"assessment_id": "apur_01"}).
		Mark(ErrInvalidTransition)

	resp := NewErrorResponse(err)
	require.NotNil(t, resp.Error.Details)
	assert.Equal(t, "PAID", resp.Error.Details["from"])
	assert.Equal(t, "OVERDUE", resp.Error.Details["to"])
	assert.Equal(t, "apur_01", resp.Error.Details["assessment_id"])
}

func TestErrorResponseWithoutHintFallsBack(t *testing.T) {
	err := NewError("boom").Mark(ErrDatabase)

	resp := NewErrorResponse(err)
	assert.Equal(t, "An unexpected error occurred", resp.Error.Message)
	assert.Nil(t, resp.Error.Details)
}

func TestWrappedErrorKeepsDetailsThroughWithError(t *testing.T) {
	inner := NewError("bracket lookup failed").
		WithHint("Rolling 12-month revenue must be non-negative").
		WithReportableDetails(map[string]any{"rbt12": "-1"}).
		Mark(ErrValidation)

	outer := WithError(inner).
		WithHint("Could not compute the invoice tax").
		Mark(ErrValidation)

	resp := NewErrorResponse(outer)
	assert.Equal(t, "Rolling 12-month revenue must be non-negative", resp.Error.Message)
	assert.Equal(t, "-1", resp.Error.Details["rbt12"])
}
