package entity

import "errors"

// Domain errors
var (
	// Seed errors
	ErrSeedNotFound  = errors.New("seed not found")
	ErrSeedDismissed = errors.New("seed is dismissed")

	// Elaboration errors
	ErrElaborationNotFound = errors.New("elaboration not found")
	ErrTurnNotFound        = errors.New("transcript turn not found")
	ErrTurnNotEditable     = errors.New("only user turns can be edited")
	ErrNoSummary           = errors.New("elaboration summary not available")

	// Validation errors
	ErrMissingField     = errors.New("required field is missing")
	ErrInvalidFormat    = errors.New("invalid format")
	ErrInvalidParameter = errors.New("invalid parameter")
)
