package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/brandpulse/audit-delivery/internal/application/ports"
	"github.com/brandpulse/audit-delivery/internal/domain/entity/auditrun"
	"github.com/brandpulse/audit-delivery/internal/domain/entity/review"
	"github.com/brandpulse/audit-delivery/internal/domain/report"
	"github.com/brandpulse/audit-delivery/internal/observability"
)

// DeliveryResult is returned to the caller after a confirmed delivery.
type DeliveryResult struct {
	ReportURL string `json:"report_url"`
	Status    string `json:"status"`
}

// DeliverReport is the approval pipeline: render the review into a
// document, publish it, persist the URL, confirm with the downstream
// consumer and only then advance both lifecycle records to their terminal
// states. Step ordering is the load-bearing part; see ApproveAndDeliver.
type DeliverReport struct {
	repos     ports.Repositories
	generator *report.Generator
	publisher ports.AssetPublisher
	notifier  ports.DeliveryNotifier
	archive   ports.DocumentArchive // optional
	events    ports.EventPublisher  // optional
	logger    observability.Logger
	metrics   observability.Metrics

	// inFlight guards against double-approval of the same run within this
	// process. The store-level conditional update in MarkDelivered is the
	// backstop across processes.
	inFlight sync.Map

	now func() time.Time
}

func NewDeliverReport(
	repos ports.Repositories,
	generator *report.Generator,
	publisher ports.AssetPublisher,
	notifier ports.DeliveryNotifier,
	archive ports.DocumentArchive,
	events ports.EventPublisher,
	logger observability.Logger,
	metrics observability.Metrics,
) *DeliverReport {
	logger, metrics = observability.Scoped(logger, metrics, "usecase.deliver_report")
	return &DeliverReport{
		repos:     repos,
		generator: generator,
		publisher: publisher,
		notifier:  notifier,
		archive:   archive,
		events:    events,
		logger:    logger,
		metrics:   metrics,
		now:       time.Now,
	}
}

// ApproveAndDeliver runs the delivery pipeline for one run. The report URL
// is persisted strictly before the downstream notification so a failed
// confirmation leaves the run in review with the report durably linked;
// retrying is simply calling approve again, which re-renders and
// re-publishes (only the latest URL is retained).
func (u *DeliverReport) ApproveAndDeliver(ctx context.Context, runID int64, edited *review.BrandReview) (*DeliveryResult, error) {
	start := u.now()

	// Reject concurrent approvals of the same run.
	if _, inFlight := u.inFlight.LoadOrStore(runID, struct{}{}); inFlight {
		u.metrics.IncrementCounter("delivery.rejected_in_flight", nil)
		return nil, ErrDeliveryInFlight
	}
	defer u.inFlight.Delete(runID)

	// 1. Load the run. Nothing has mutated if this fails.
	run, err := u.repos.Runs().Get(ctx, runID)
	if err != nil {
		return nil, ErrRunNotFound(err)
	}
	if run.IsDelivered() {
		return nil, auditrun.ErrAlreadyDelivered
	}
	// Only a run under review is approvable. Rejecting here keeps the
	// asset host and the downstream consumer from hearing about a run
	// that can never complete.
	if !run.IsInReview() {
		return nil, fmt.Errorf("%w: run is %s", auditrun.ErrNotInReview, run.Status)
	}

	sup, err := u.repos.Signups().Get(ctx, run.SignupID)
	if err != nil {
		return nil, ErrSignupNotFound(err)
	}

	// 2. Resolve the review: a just-edited copy from the caller wins over
	// the persisted one, and the edits are committed before rendering.
	rv, err := u.resolveReview(ctx, run, edited)
	if err != nil {
		return nil, err
	}

	// 3. Render the document. Pure; cannot fail for well-formed input.
	generatedAt := u.now().UTC()
	document := u.generator.Generate(rv, sup.CompanyName, generatedAt)

	// 4. Publish to the asset host. No status mutation has happened yet, so
	// a failure here aborts cleanly.
	destinationID := report.DestinationID(run.ID, generatedAt)
	published, err := u.publisher.Publish(ctx, document, "text/html", destinationID)
	if err != nil {
		u.metrics.IncrementCounter("delivery.publish_errors", nil)
		return nil, ErrPublishFailed(err)
	}

	// 5. Persist the public URL before any downstream notification. This is
	// the pipeline's central invariant: if the notification fails the
	// report stays published and linked, and a retry re-enters safely.
	if err := run.SetReportURL(published.PublicURL); err != nil {
		return nil, ErrPersistReportURL(err)
	}
	if err := u.repos.Runs().SetReportURL(ctx, run.ID, published.PublicURL); err != nil {
		return nil, ErrPersistReportURL(err)
	}

	u.logger.Info("Report published",
		"run_id", run.ID,
		"signup_id", sup.ID,
		"report_url", published.PublicURL,
		"size_bytes", published.Bytes)

	// Archive an internal copy. Best effort: the published asset is the
	// durable artifact, the archive is a convenience.
	u.archiveDocument(ctx, sup.ID, destinationID, document)

	// 6. Confirm with the downstream consumer. Any shape of failure keeps
	// the run in review for a caller-driven retry.
	if u.notifier != nil && u.notifier.Configured() {
		if err := u.notifier.Notify(ctx, run.ID); err != nil {
			u.metrics.IncrementCounter("delivery.notification_errors", nil)
			return nil, ErrNotificationFailed(err)
		}
	} else {
		// Without a webhook "delivered" never reflects external
		// confirmation; keep that visible in the logs.
		u.logger.Warn("No delivery webhook configured, delivering without confirmation",
			"run_id", run.ID)
	}

	// 7. Advance the run, then couple the parent signup forward. The store
	// is the single transition point; its conditional update rejects a run
	// that left review since the load.
	if err := u.repos.Runs().MarkDelivered(ctx, run.ID); err != nil {
		return nil, ErrMarkDeliveredFailed(err)
	}

	if err := u.repos.Signups().MarkCompleted(ctx, sup.ID); err != nil {
		// The economically important side effect already succeeded; surface
		// the inconsistency for manual reconciliation instead of failing.
		u.metrics.IncrementCounter("delivery.signup_completion_errors", nil)
		u.logger.Error("Run delivered but signup not completed",
			"error", err,
			"run_id", run.ID,
			"signup_id", sup.ID)
	}

	u.publishDeliveredEvent(ctx, run.ID, published.PublicURL)

	u.metrics.IncrementCounter("delivery.success", nil)
	u.metrics.RecordHistogram("delivery.duration", u.now().Sub(start).Seconds(), nil)
	u.logger.Info("Audit delivered",
		"run_id", run.ID,
		"signup_id", sup.ID,
		"report_url", published.PublicURL)

	return &DeliveryResult{
		ReportURL: published.PublicURL,
		Status:    string(auditrun.StatusDelivered),
	}, nil
}

// resolveReview returns the review to render. When the caller supplies an
// edited copy it is persisted first, so the stored review always matches
// the delivered document.
func (u *DeliverReport) resolveReview(ctx context.Context, run *auditrun.AuditRun, edited *review.BrandReview) (*review.BrandReview, error) {
	if edited == nil {
		rv, err := u.repos.Reviews().GetByRunID(ctx, run.ID)
		if err != nil {
			return nil, ErrReviewNotFound(err)
		}
		return rv, nil
	}

	edited.RunID = run.ID
	if err := u.repos.Reviews().Update(ctx, edited); err != nil {
		return nil, ErrReviewUpdateFailed(err)
	}
	return edited, nil
}

func (u *DeliverReport) archiveDocument(ctx context.Context, signupID int64, destinationID string, document []byte) {
	if u.archive == nil {
		return
	}

	key := fmt.Sprintf("%d/%s.html", signupID, destinationID)
	if err := u.archive.Store(ctx, key, document, "text/html"); err != nil {
		u.metrics.IncrementCounter("delivery.archive_errors", nil)
		u.logger.Warn("Failed to archive report document",
			"error", err,
			"key", key)
	}
}

func (u *DeliverReport) publishDeliveredEvent(ctx context.Context, runID int64, reportURL string) {
	if u.events == nil {
		return
	}

	event := ports.DeliveredEvent{
		RunID:       runID,
		ReportURL:   reportURL,
		DeliveredAt: u.now().UTC(),
	}
	if err := u.events.PublishDelivered(ctx, event); err != nil {
		u.metrics.IncrementCounter("delivery.event_errors", nil)
		u.logger.Warn("Failed to publish delivered event",
			"error", err,
			"run_id", runID)
	}
}
