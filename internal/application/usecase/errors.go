package usecase

import (
	"errors"
	"fmt"
)

var (
	// ErrDeliveryInFlight rejects a concurrent approval of the same run.
	ErrDeliveryInFlight = errors.New("delivery already in flight for this run")

	// ErrNotConfirmed marks any failure of the downstream confirmation
	// step: transport, non-success status or a missing/negative ack. The
	// run stays in review with its report URL set, safe to retry.
	ErrNotConfirmed = errors.New("delivery not confirmed downstream")

	// ErrPublish marks an asset-host upload failure. No state was mutated.
	ErrPublish = errors.New("failed to publish report document")
)

func ErrRunNotFound(err error) error {
	return fmt.Errorf("failed to get audit run: %w", err)
}

func ErrSignupNotFound(err error) error {
	return fmt.Errorf("failed to get audit signup: %w", err)
}

func ErrReviewNotFound(err error) error {
	return fmt.Errorf("failed to get brand review: %w", err)
}

func ErrReviewUpdateFailed(err error) error {
	return fmt.Errorf("failed to persist edited review: %w", err)
}

func ErrPublishFailed(err error) error {
	return fmt.Errorf("%w: %w", ErrPublish, err)
}

func ErrPersistReportURL(err error) error {
	return fmt.Errorf("failed to persist report URL: %w", err)
}

func ErrNotificationFailed(err error) error {
	return fmt.Errorf("%w: %w", ErrNotConfirmed, err)
}

func ErrMarkDeliveredFailed(err error) error {
	return fmt.Errorf("failed to mark run delivered: %w", err)
}
