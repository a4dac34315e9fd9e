package auditrun

import (
	"fmt"
	"time"
)

// AuditRun is one execution of the audit-production process for a signup.
// The report URL is always set before the run can reach delivered; a run in
// review with a populated report URL is the designed safe-to-retry state
// after a failed downstream confirmation, not an error state.
type AuditRun struct {
	ID                int64      `db:"id" json:"id"`
	SignupID          int64      `db:"signup_id" json:"signup_id"`
	Status            Status     `db:"status" json:"status"`
	ReportURL         *string    `db:"report_url" json:"report_url,omitempty"`
	InternalReviewURL *string    `db:"internal_review_url" json:"internal_review_url,omitempty"`
	CreatedAt         time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time  `db:"updated_at" json:"updated_at"`
	DeliveredAt       *time.Time `db:"delivered_at" json:"delivered_at,omitempty"`
}

func NewAuditRun(signupID int64) *AuditRun {
	now := time.Now()
	return &AuditRun{
		SignupID:  signupID,
		Status:    StatusInProgress,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// ============================================================================
// BUSINESS METHODS (State transitions with rules)
// ============================================================================

// MoveToReview marks the run ready for staff review of its findings.
func (r *AuditRun) MoveToReview() error {
	if r.Status == StatusDelivered {
		return ErrAlreadyDelivered
	}
	if r.Status != StatusInProgress {
		return fmt.Errorf("%w: cannot move to review from %s",
			ErrInvalidStateTransition, r.Status)
	}

	r.Status = StatusReview
	r.UpdatedAt = time.Now()
	return nil
}

// SetReportURL records the published report location. This always happens
// strictly before delivery so a failed downstream confirmation leaves the
// report durably linked.
func (r *AuditRun) SetReportURL(url string) error {
	if url == "" {
		return ErrEmptyReportURL
	}
	if r.Status == StatusDelivered {
		return ErrAlreadyDelivered
	}

	r.ReportURL = &url
	r.UpdatedAt = time.Now()
	return nil
}

// Deliver moves the run to its terminal status. Only legal from review with
// a populated report URL, which keeps the confirmed-delivery invariant
// enforceable here rather than in calling code.
func (r *AuditRun) Deliver() error {
	if r.Status == StatusDelivered {
		return ErrAlreadyDelivered
	}
	if r.Status != StatusReview {
		return fmt.Errorf("%w: cannot deliver from %s", ErrNotInReview, r.Status)
	}
	if r.ReportURL == nil || *r.ReportURL == "" {
		return ErrReportURLUnset
	}

	now := time.Now()
	r.Status = StatusDelivered
	r.DeliveredAt = &now
	r.UpdatedAt = now
	return nil
}

// ============================================================================
// QUERY METHODS
// ============================================================================

// IsDelivered checks if the run reached its terminal status
func (r *AuditRun) IsDelivered() bool {
	return r.Status == StatusDelivered
}

// IsInReview checks if the run is awaiting approval
func (r *AuditRun) IsInReview() bool {
	return r.Status == StatusReview
}

// HasReportURL checks if a published report is already linked
func (r *AuditRun) HasReportURL() bool {
	return r.ReportURL != nil && *r.ReportURL != ""
}
