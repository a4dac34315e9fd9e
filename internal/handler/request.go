// Package handler defines the platform-agnostic request/response contract
// shared by the HTTP and Lambda adapters.
package handler

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Request is the envelope the adapters hand to a Handler. Adapters fill
// the identity and transport fields; Payload carries the domain body.
type Request struct {
	ID        string            `json:"id"`
	Source    string            `json:"source"`
	Payload   json.RawMessage   `json:"payload"`
	Metadata  map[string]string `json:"metadata,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
}

// Response is what a Handler returns. Exactly one of Data and Error is
// set, keyed off Success.
type Response struct {
	ID          string          `json:"id"`
	Success     bool            `json:"success"`
	Data        json.RawMessage `json:"data,omitempty"`
	Error       *ErrorResponse  `json:"error,omitempty"`
	ProcessedAt time.Time       `json:"processed_at"`
}

// ErrorResponse carries a machine-readable code plus a message surfaced
// verbatim to the staff UI. Retryable tells the UI whether submitting
// again can succeed.
type ErrorResponse struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Retryable bool   `json:"retryable,omitempty"`
}

// NewRequest wraps a payload in an envelope with a generated ID.
func NewRequest(payload interface{}) (Request, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return Request{}, err
	}

	return Request{
		ID:        uuid.New().String(),
		Payload:   payloadBytes,
		Metadata:  make(map[string]string),
		Timestamp: time.Now().UTC(),
	}, nil
}

// Unmarshal decodes the payload into v.
func (r *Request) Unmarshal(v interface{}) error {
	return json.Unmarshal(r.Payload, v)
}

// NewSuccessResponse builds a success response carrying data.
func NewSuccessResponse(requestID string, data interface{}) (Response, error) {
	marshaled, err := json.Marshal(data)
	if err != nil {
		return Response{}, err
	}

	return Response{
		ID:          requestID,
		Success:     true,
		Data:        marshaled,
		ProcessedAt: time.Now().UTC(),
	}, nil
}

// NewErrorResponse builds an error response.
func NewErrorResponse(requestID, code, message string, retryable bool) Response {
	return Response{
		ID:      requestID,
		Success: false,
		Error: &ErrorResponse{
			Code:      code,
			Message:   message,
			Retryable: retryable,
		},
		ProcessedAt: time.Now().UTC(),
	}
}

// Handler processes platform-agnostic requests.
type Handler interface {
	Handle(ctx context.Context, request Request) (Response, error)
}
