package domain

import "errors"

// ============================================================================
// Model Update Errors
// ============================================================================

// Validation errors
var (
	ErrMissingUserID         = errors.New("user_id is required")
	ErrMissingAttributions   = errors.New("feature_attributions is required")
	ErrNonFiniteAttribution  = errors.New("feature attributions must be finite numbers")
	ErrInvalidInitialWeights = errors.New("initial model weights must be finite numbers")
	ErrNonFiniteModel        = errors.New("update would push the global model out of the finite range")
	ErrInvalidClipBound      = errors.New("clip bound must be a finite, non-negative number")
)

// ============================================================================
// Dashboard Errors
// ============================================================================

var (
	ErrDataPointNotFound = errors.New("dashboard data point not found")
)

// ============================================================================
// Storage Errors
// ============================================================================

var (
	ErrUnsupportedDriver  = errors.New("unsupported database driver")
	ErrStorageUnavailable = errors.New("storage unavailable")
)
