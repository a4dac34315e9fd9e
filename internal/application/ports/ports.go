// Package ports declares the collaborator interfaces consumed by the
// application layer. Infrastructure packages provide the implementations.
package ports

import (
	"context"
	"errors"
	"time"

	"github.com/brandpulse/audit-delivery/internal/domain/entity/auditrun"
	"github.com/brandpulse/audit-delivery/internal/domain/entity/review"
	"github.com/brandpulse/audit-delivery/internal/domain/entity/signup"
)

// ErrNotFound is returned by repositories when the requested record does
// not exist.
var ErrNotFound = errors.New("record not found")

// SignupRepository persists audit signups.
type SignupRepository interface {
	Create(ctx context.Context, s *signup.AuditSignup) error
	Get(ctx context.Context, id int64) (*signup.AuditSignup, error)
	Update(ctx context.Context, s *signup.AuditSignup) error

	// MarkCompleted advances the signup to its terminal status. Used by the
	// delivery pipeline coupling and by manual reconciliation.
	MarkCompleted(ctx context.Context, id int64) error
}

// RunRepository persists audit runs.
type RunRepository interface {
	Create(ctx context.Context, r *auditrun.AuditRun) error
	Get(ctx context.Context, id int64) (*auditrun.AuditRun, error)
	GetBySignupID(ctx context.Context, signupID int64) (*auditrun.AuditRun, error)
	Update(ctx context.Context, r *auditrun.AuditRun) error

	// SetReportURL persists the published report URL. Always called before
	// MarkDelivered so a failed confirmation leaves the report linked.
	SetReportURL(ctx context.Context, id int64, url string) error

	// MarkDelivered moves the run from review to delivered. Conditional on
	// the current status so a stale caller cannot re-deliver.
	MarkDelivered(ctx context.Context, id int64) error
}

// ReviewRepository persists the structured review attached to a run.
type ReviewRepository interface {
	Create(ctx context.Context, rv *review.BrandReview) error
	Get(ctx context.Context, id int64) (*review.BrandReview, error)
	GetByRunID(ctx context.Context, runID int64) (*review.BrandReview, error)
	Update(ctx context.Context, rv *review.BrandReview) error
}

// Repositories bundles the data-store access used by the pipeline.
type Repositories interface {
	Signups() SignupRepository
	Runs() RunRepository
	Reviews() ReviewRepository
}

// PublishResult carries the outcome of an asset-host upload.
type PublishResult struct {
	// PublicURL is the durable, publicly fetchable location of the asset,
	// rewritten to force download on fetch.
	PublicURL string

	// Bytes is the stored size reported by the asset host.
	Bytes int64
}

// AssetPublisher uploads artifacts to the external asset host.
type AssetPublisher interface {
	Publish(ctx context.Context, content []byte, contentType, destinationID string) (*PublishResult, error)
	Unpublish(ctx context.Context, destinationID string) error
}

// DeliveryNotifier confirms delivery with the downstream consumer.
type DeliveryNotifier interface {
	// Configured reports whether a downstream webhook is set up at all.
	// When false the pipeline skips notification and delivers directly.
	Configured() bool

	// Notify posts the run id downstream and returns nil only on an
	// explicit positive acknowledgment.
	Notify(ctx context.Context, runID int64) error
}

// DocumentArchive stores an internal copy of generated report documents.
type DocumentArchive interface {
	Store(ctx context.Context, key string, content []byte, contentType string) error
}

// DeliveredEvent is published after a confirmed delivery.
type DeliveredEvent struct {
	RunID       int64     `json:"audit_run_id"`
	ReportURL   string    `json:"report_url"`
	DeliveredAt time.Time `json:"delivered_at"`
}

// EventPublisher announces confirmed deliveries to interested consumers.
type EventPublisher interface {
	PublishDelivered(ctx context.Context, event DeliveredEvent) error
}
