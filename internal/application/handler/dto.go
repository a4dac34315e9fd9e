package handler

import (
	"errors"

	"github.com/brandpulse/audit-delivery/internal/domain/entity/review"
)

var ErrMissingRunID = errors.New("run_id is required")

// ApprovalRequest is the payload of the approval entrypoint. Review is the
// staff's possibly-edited copy of the findings; when omitted the persisted
// review is rendered as-is.
type ApprovalRequest struct {
	RunID  int64               `json:"run_id"`
	Review *review.BrandReview `json:"review,omitempty"`
}

func (r *ApprovalRequest) Validate() error {
	if r.RunID <= 0 {
		return ErrMissingRunID
	}
	return nil
}
