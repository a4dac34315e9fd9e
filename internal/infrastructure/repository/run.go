package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/brandpulse/audit-delivery/internal/application/ports"
	"github.com/brandpulse/audit-delivery/internal/domain/entity/auditrun"
)

type runRepository struct {
	*baseRepository[auditrun.AuditRun]
}

func (r *runRepository) Create(ctx context.Context, run *auditrun.AuditRun) error {
	query := r.qb.Insert("audit_runs").
		Columns("signup_id", "status", "created_at", "updated_at").
		Values(run.SignupID, run.Status, run.CreatedAt, run.UpdatedAt).
		Suffix("RETURNING id")

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	return r.db.QueryRow(ctx, sqlQuery, args...).Scan(&run.ID)
}

func (r *runRepository) GetBySignupID(ctx context.Context, signupID int64) (*auditrun.AuditRun, error) {
	r.metrics.IncrementCounter("repository.audit_runs.get_by_signup", nil)

	query := r.qb.Select("*").
		From("audit_runs").
		Where(squirrel.Eq{"signup_id": signupID}).
		OrderBy("created_at DESC").
		Limit(1)

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var run auditrun.AuditRun
	err = r.db.Get(ctx, &run, sqlQuery, args...)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("audit run for signup %d: %w", signupID, ports.ErrNotFound)
	}
	if err != nil {
		r.logger.Error("Failed to get run by signup", "error", err, "signup_id", signupID)
		r.metrics.IncrementCounter("repository.audit_runs.errors", nil)
		return nil, fmt.Errorf("get run by signup: %w", err)
	}

	return &run, nil
}

func (r *runRepository) Update(ctx context.Context, run *auditrun.AuditRun) error {
	query := r.qb.Update("audit_runs").
		Set("status", run.Status).
		Set("updated_at", run.UpdatedAt)

	if run.ReportURL != nil {
		query = query.Set("report_url", *run.ReportURL)
	}
	if run.InternalReviewURL != nil {
		query = query.Set("internal_review_url", *run.InternalReviewURL)
	}
	if run.DeliveredAt != nil {
		query = query.Set("delivered_at", *run.DeliveredAt)
	}

	query = query.Where(squirrel.Eq{"id": run.ID})

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	_, err = r.db.Execute(ctx, sqlQuery, args...)
	return err
}

// SetReportURL persists the published report URL on its own, ahead of any
// downstream notification.
func (r *runRepository) SetReportURL(ctx context.Context, id int64, url string) error {
	r.metrics.IncrementCounter("repository.audit_runs.set_report_url", nil)

	query := r.qb.Update("audit_runs").
		Set("report_url", url).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": id})

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	result, err := r.db.Execute(ctx, sqlQuery, args...)
	if err != nil {
		r.logger.Error("Failed to set report URL", "error", err, "id", id)
		return fmt.Errorf("set report URL: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("audit run %d: %w", id, ports.ErrNotFound)
	}

	return nil
}

// MarkDelivered moves the run to delivered, conditional on it still being
// in review. The condition is the cross-process backstop against a stale
// caller re-delivering.
func (r *runRepository) MarkDelivered(ctx context.Context, id int64) error {
	r.metrics.IncrementCounter("repository.audit_runs.mark_delivered", nil)

	now := time.Now()
	query := r.qb.Update("audit_runs").
		Set("status", auditrun.StatusDelivered).
		Set("delivered_at", now).
		Set("updated_at", now).
		Where(squirrel.Eq{
			"id":     id,
			"status": auditrun.StatusReview,
		})

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	result, err := r.db.Execute(ctx, sqlQuery, args...)
	if err != nil {
		r.logger.Error("Failed to mark run delivered", "error", err, "id", id)
		return fmt.Errorf("mark run delivered: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("%w: run %d is not in review", auditrun.ErrNotInReview, id)
	}

	return nil
}
