package signup

import (
	"fmt"
	"time"
)

// AuditSignup is the root record of one audit purchase. It is created on
// submission and never hard-deleted; status only moves forward in normal
// operation, with SetStatusUnchecked reserved for administrative corrections.
type AuditSignup struct {
	ID           int64             `db:"id" json:"id"`
	ContactEmail string            `db:"contact_email" json:"contact_email"`
	CompanyName  string            `db:"company_name" json:"company_name"`
	Platforms    map[string]string `db:"-" json:"platforms"` // platform name -> profile URL, stored as JSONB
	Status       Status            `db:"status" json:"status"`
	AssigneeID   *int64            `db:"assignee_id" json:"assignee_id,omitempty"`
	CreatedAt    time.Time         `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time         `db:"updated_at" json:"updated_at"`
	CompletedAt  *time.Time        `db:"completed_at" json:"completed_at,omitempty"`
}

func NewAuditSignup(contactEmail, companyName string, platforms map[string]string) (*AuditSignup, error) {
	if contactEmail == "" {
		return nil, ErrEmptyContactEmail
	}
	if companyName == "" {
		return nil, ErrEmptyCompanyName
	}

	now := time.Now()
	return &AuditSignup{
		ContactEmail: contactEmail,
		CompanyName:  companyName,
		Platforms:    platforms,
		Status:       StatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// ============================================================================
// BUSINESS METHODS (State transitions with rules)
// ============================================================================

// Advance moves the signup to the next status. Only single forward steps
// are allowed; skipping stages or moving backwards is rejected.
func (s *AuditSignup) Advance(next Status) error {
	if !next.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownStatus, next)
	}
	if s.Status == StatusCompleted {
		return ErrAlreadyCompleted
	}

	cur := s.Status.rank()
	if next.rank() < cur {
		return fmt.Errorf("%w: %s -> %s", ErrStatusRegression, s.Status, next)
	}
	if next.rank() != cur+1 {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidStateTransition, s.Status, next)
	}

	s.setStatus(next)
	return nil
}

// Complete advances the signup to its terminal status from any earlier
// stage. Invoked by the delivery pipeline once the run is delivered.
func (s *AuditSignup) Complete() error {
	if s.Status == StatusCompleted {
		return ErrAlreadyCompleted
	}

	s.setStatus(StatusCompleted)
	return nil
}

// SetStatusUnchecked sets the status without order validation. Reserved for
// staff corrections; the ordering invariant holds for normal operation only.
func (s *AuditSignup) SetStatusUnchecked(status Status) error {
	if !status.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownStatus, status)
	}

	s.setStatus(status)
	return nil
}

func (s *AuditSignup) setStatus(status Status) {
	now := time.Now()
	s.Status = status
	s.UpdatedAt = now
	if status == StatusCompleted {
		s.CompletedAt = &now
	}
}

// ============================================================================
// QUERY METHODS
// ============================================================================

// IsCompleted checks if the signup reached its terminal status
func (s *AuditSignup) IsCompleted() bool {
	return s.Status == StatusCompleted
}

// IsInReview checks if the signup is awaiting report approval
func (s *AuditSignup) IsInReview() bool {
	return s.Status == StatusReview
}
