package services

import "errors"

// Типизированные исходы для хендлеров (маппинг в статус — в handlers).
var (
	ErrMissingIdentity      = errors.New("missing identity")
	ErrUserNotFound         = errors.New("user not found")
	ErrTenantNotAssigned    = errors.New("user not assigned to any company")
	ErrAccessDenied         = errors.New("access denied")
	ErrAccountDeactivated   = errors.New("account deactivated")
	ErrMalformedPayload     = errors.New("malformed payload")
	ErrSignatureMismatch    = errors.New("signature mismatch")
	ErrNotFound             = errors.New("not found")
	ErrAlreadyInTargetState = errors.New("already in target state")
	ErrIllegalTransition    = errors.New("illegal status transition")
)
