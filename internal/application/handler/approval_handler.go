// Package handler adapts platform-agnostic requests onto the delivery
// usecase and maps pipeline failures to structured error responses.
package handler

import (
	"context"
	"errors"

	"github.com/brandpulse/audit-delivery/internal/application/ports"
	"github.com/brandpulse/audit-delivery/internal/application/usecase"
	"github.com/brandpulse/audit-delivery/internal/domain/entity/auditrun"
	handlerpkg "github.com/brandpulse/audit-delivery/internal/handler"
	"github.com/brandpulse/audit-delivery/internal/observability"
)

type ApprovalHandler struct {
	usecase *usecase.DeliverReport
	logger  observability.Logger
	metrics observability.Metrics
}

func NewApprovalHandler(deliver *usecase.DeliverReport, logger observability.Logger, metrics observability.Metrics) *ApprovalHandler {
	logger, metrics = observability.Scoped(logger, metrics, "handler.approval")
	return &ApprovalHandler{
		usecase: deliver,
		logger:  logger,
		metrics: metrics,
	}
}

func (h *ApprovalHandler) Handle(ctx context.Context, request handlerpkg.Request) (handlerpkg.Response, error) {
	approval, err := h.parseRequest(request)
	if err != nil {
		return handlerpkg.NewErrorResponse(request.ID, "INVALID_PAYLOAD", err.Error(), false), nil
	}

	if err := approval.Validate(); err != nil {
		return handlerpkg.NewErrorResponse(request.ID, "VALIDATION_ERROR", err.Error(), false), nil
	}

	h.metrics.IncrementCounter("approval.requests", nil)

	result, err := h.usecase.ApproveAndDeliver(ctx, approval.RunID, approval.Review)
	if err != nil {
		return h.handleDeliveryError(request.ID, approval.RunID, err)
	}

	h.logger.Info("Approval processed",
		"run_id", approval.RunID,
		"report_url", result.ReportURL)

	return handlerpkg.NewSuccessResponse(request.ID, result)
}

func (h *ApprovalHandler) parseRequest(request handlerpkg.Request) (*ApprovalRequest, error) {
	var approval ApprovalRequest
	if err := request.Unmarshal(&approval); err != nil {
		return nil, err
	}
	return &approval, nil
}

// handleDeliveryError maps pipeline failures onto error codes. Messages
// are surfaced verbatim; retryability tells the staff UI whether pressing
// approve again can succeed.
func (h *ApprovalHandler) handleDeliveryError(requestID string, runID int64, err error) (handlerpkg.Response, error) {
	h.logger.Error("Delivery failed",
		"error", err,
		"run_id", runID)
	h.metrics.IncrementCounter("approval.errors", nil)

	code, retryable := classifyDeliveryError(err)
	return handlerpkg.NewErrorResponse(requestID, code, err.Error(), retryable), nil
}

func classifyDeliveryError(err error) (code string, retryable bool) {
	switch {
	case errors.Is(err, usecase.ErrDeliveryInFlight):
		return "IN_FLIGHT", true
	case errors.Is(err, auditrun.ErrAlreadyDelivered):
		return "ALREADY_DELIVERED", false
	case errors.Is(err, auditrun.ErrNotInReview):
		return "NOT_IN_REVIEW", false
	case errors.Is(err, ports.ErrNotFound):
		return "NOT_FOUND", false
	case errors.Is(err, usecase.ErrNotConfirmed):
		// Run stays in review with the report URL set; approve again
		// retries the whole pipeline safely.
		return "DELIVERY_NOT_CONFIRMED", true
	case errors.Is(err, usecase.ErrPublish):
		return "PUBLISH_FAILED", true
	default:
		return "DELIVERY_FAILED", false
	}
}
