package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/brandpulse/audit-delivery/internal/application/ports"
	"github.com/brandpulse/audit-delivery/internal/domain/entity/signup"
)

type signupRepository struct {
	*baseRepository[signup.AuditSignup]
}

var signupColumns = []string{
	"id", "contact_email", "company_name", "platforms", "status",
	"assignee_id", "created_at", "updated_at", "completed_at",
}

func (r *signupRepository) Create(ctx context.Context, s *signup.AuditSignup) error {
	platforms, err := json.Marshal(s.Platforms)
	if err != nil {
		return fmt.Errorf("marshal platforms: %w", err)
	}

	query := r.qb.Insert("audit_signups").
		Columns("contact_email", "company_name", "platforms", "status", "created_at", "updated_at").
		Values(s.ContactEmail, s.CompanyName, platforms, s.Status, s.CreatedAt, s.UpdatedAt).
		Suffix("RETURNING id")

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	return r.db.QueryRow(ctx, sqlQuery, args...).Scan(&s.ID)
}

// Get loads a signup. Platforms live in a JSONB column so the row is
// scanned by hand instead of through the generic helper.
func (r *signupRepository) Get(ctx context.Context, id int64) (*signup.AuditSignup, error) {
	r.metrics.IncrementCounter("repository.audit_signups.get", nil)

	query := r.qb.Select(signupColumns...).
		From("audit_signups").
		Where(squirrel.Eq{"id": id})

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	return r.scanSignup(r.db.QueryRow(ctx, sqlQuery, args...), id)
}

func (r *signupRepository) scanSignup(row *sql.Row, id int64) (*signup.AuditSignup, error) {
	var (
		s         signup.AuditSignup
		platforms []byte
	)

	err := row.Scan(
		&s.ID, &s.ContactEmail, &s.CompanyName, &platforms, &s.Status,
		&s.AssigneeID, &s.CreatedAt, &s.UpdatedAt, &s.CompletedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("audit signup %d: %w", id, ports.ErrNotFound)
	}
	if err != nil {
		r.logger.Error("Failed to get signup", "error", err, "id", id)
		r.metrics.IncrementCounter("repository.audit_signups.errors", nil)
		return nil, fmt.Errorf("get signup: %w", err)
	}

	if len(platforms) > 0 {
		if err := json.Unmarshal(platforms, &s.Platforms); err != nil {
			return nil, fmt.Errorf("unmarshal platforms: %w", err)
		}
	}

	return &s, nil
}

func (r *signupRepository) Update(ctx context.Context, s *signup.AuditSignup) error {
	platforms, err := json.Marshal(s.Platforms)
	if err != nil {
		return fmt.Errorf("marshal platforms: %w", err)
	}

	query := r.qb.Update("audit_signups").
		Set("contact_email", s.ContactEmail).
		Set("company_name", s.CompanyName).
		Set("platforms", platforms).
		Set("status", s.Status).
		Set("updated_at", s.UpdatedAt)

	if s.AssigneeID != nil {
		query = query.Set("assignee_id", *s.AssigneeID)
	}
	if s.CompletedAt != nil {
		query = query.Set("completed_at", *s.CompletedAt)
	}

	query = query.Where(squirrel.Eq{"id": s.ID})

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	_, err = r.db.Execute(ctx, sqlQuery, args...)
	return err
}

// MarkCompleted advances the signup to its terminal status directly. Also
// the manual reconciliation path for a delivered run whose signup update
// previously failed.
func (r *signupRepository) MarkCompleted(ctx context.Context, id int64) error {
	r.metrics.IncrementCounter("repository.audit_signups.mark_completed", nil)

	now := time.Now()
	query := r.qb.Update("audit_signups").
		Set("status", signup.StatusCompleted).
		Set("completed_at", now).
		Set("updated_at", now).
		Where(squirrel.Eq{"id": id})

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	result, err := r.db.Execute(ctx, sqlQuery, args...)
	if err != nil {
		r.logger.Error("Failed to mark signup completed", "error", err, "id", id)
		return fmt.Errorf("mark signup completed: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("audit signup %d: %w", id, ports.ErrNotFound)
	}

	return nil
}
