package signup

import "errors"

var (
	// State transition errors
	ErrAlreadyCompleted       = errors.New("signup already completed")
	ErrInvalidStateTransition = errors.New("invalid signup state transition")
	ErrStatusRegression       = errors.New("signup status cannot move backwards")
	ErrUnknownStatus          = errors.New("unknown signup status")

	// Validation errors
	ErrEmptyContactEmail = errors.New("contact email cannot be empty")
	ErrEmptyCompanyName  = errors.New("company name cannot be empty")
)
