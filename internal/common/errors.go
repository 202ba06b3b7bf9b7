// Package common defines shared constants and sentinel errors used across
// the application layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Input and business-rule errors surfaced by the account service.
	ErrValidation           = errors.New("validation failed")
	ErrMissingAsset         = errors.New("asset missing")
	ErrAssetTooLarge        = errors.New("asset too large")
	ErrDuplicateAccount     = errors.New("account already exists")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrRoleMismatch         = errors.New("role mismatch")
	ErrRecoveryVerification = errors.New("recovery verification failed")
	ErrWeakPassword         = errors.New("weak password")

	// Service-level errors (generic/internal flow control).
	ErrInternal = errors.New("internal error")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
