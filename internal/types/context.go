package types

import (
	"context"
	"fmt"
)

// ContextKey is a type for the keys of values stored in the context
type ContextKey string

const (
	CtxRequestID ContextKey = "ctx_request_id"
	CtxClinicID  ContextKey = "ctx_clinic_id"
	CtxUserID    ContextKey = "ctx_user_id"

	HeaderRequestID = "X-Request-ID"

	// Default values
	DefaultClinicID = "00000000-0000-0000-0000-000000000000"
	DefaultUserID   = "00000000-0000-0000-0000-000000000000"
)

func GetRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(CtxRequestID).(string); ok {
		return requestID
	}
	return ""
}

func GetClinicID(ctx context.Context) string {
	if clinicID, ok := ctx.Value(CtxClinicID).(string); ok {
		return clinicID
	}
	return ""
}

func GetUserID(ctx context.Context) string {
	if userID, ok := ctx.Value(CtxUserID).(string); ok {
		return userID
	}
	return ""
}

// SetClinicID sets the clinic ID in the context
func SetClinicID(ctx context.Context, clinicID string) context.Context {
	return context.WithValue(ctx, CtxClinicID, clinicID)
}

// SetUserID sets the user ID in the context
func SetUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, CtxUserID, userID)
}

// ValidateClinicContext validates that the clinic scope is present in the context
func ValidateClinicContext(ctx context.Context) error {
	if ctx == nil {
		return fmt.Errorf("context is nil")
	}

	if GetClinicID(ctx) == "" {
		return fmt.Errorf("no clinic context found in context")
	}

	return nil
}
