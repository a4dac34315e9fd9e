package auditrun

import "errors"

var (
	// State transition errors
	ErrAlreadyDelivered       = errors.New("run already delivered")
	ErrNotInReview            = errors.New("run is not in review")
	ErrInvalidStateTransition = errors.New("invalid run state transition")

	// Validation errors
	ErrEmptyReportURL = errors.New("report URL cannot be empty")
	ErrReportURLUnset = errors.New("report URL must be set before delivery")
)
