package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/brandpulse/audit-delivery/internal/application/ports"
	"github.com/brandpulse/audit-delivery/internal/domain/entity/review"
)

// reviewRepository stores the structured review body as a JSONB payload
// column. The overall score is duplicated into its own column for list
// queries in the management UI.
type reviewRepository struct {
	*baseRepository[review.BrandReview]
}

func (r *reviewRepository) Create(ctx context.Context, rv *review.BrandReview) error {
	payload, err := json.Marshal(rv)
	if err != nil {
		return fmt.Errorf("marshal review payload: %w", err)
	}

	query := r.qb.Insert("brand_reviews").
		Columns("run_id", "overall_score", "payload", "created_at", "updated_at").
		Values(rv.RunID, rv.OverallScore, payload, rv.CreatedAt, rv.UpdatedAt).
		Suffix("RETURNING id")

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	return r.db.QueryRow(ctx, sqlQuery, args...).Scan(&rv.ID)
}

func (r *reviewRepository) Get(ctx context.Context, id int64) (*review.BrandReview, error) {
	r.metrics.IncrementCounter("repository.brand_reviews.get", nil)
	return r.getWhere(ctx, squirrel.Eq{"id": id}, fmt.Sprintf("brand review %d", id))
}

func (r *reviewRepository) GetByRunID(ctx context.Context, runID int64) (*review.BrandReview, error) {
	r.metrics.IncrementCounter("repository.brand_reviews.get_by_run", nil)
	return r.getWhere(ctx, squirrel.Eq{"run_id": runID}, fmt.Sprintf("brand review for run %d", runID))
}

func (r *reviewRepository) getWhere(ctx context.Context, where squirrel.Eq, what string) (*review.BrandReview, error) {
	query := r.qb.Select("id", "run_id", "overall_score", "payload", "created_at", "updated_at").
		From("brand_reviews").
		Where(where)

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var (
		rv      review.BrandReview
		payload []byte
	)
	err = r.db.QueryRow(ctx, sqlQuery, args...).Scan(
		&rv.ID, &rv.RunID, &rv.OverallScore, &payload, &rv.CreatedAt, &rv.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%s: %w", what, ports.ErrNotFound)
	}
	if err != nil {
		r.logger.Error("Failed to get review", "error", err)
		r.metrics.IncrementCounter("repository.brand_reviews.errors", nil)
		return nil, fmt.Errorf("get review: %w", err)
	}

	// The payload is authoritative for the structured sections; the scanned
	// columns win for identity and timestamps.
	id, runID, score := rv.ID, rv.RunID, rv.OverallScore
	createdAt, updatedAt := rv.CreatedAt, rv.UpdatedAt
	if err := json.Unmarshal(payload, &rv); err != nil {
		return nil, fmt.Errorf("unmarshal review payload: %w", err)
	}
	rv.ID, rv.RunID, rv.OverallScore = id, runID, score
	rv.CreatedAt, rv.UpdatedAt = createdAt, updatedAt

	return &rv, nil
}

func (r *reviewRepository) Update(ctx context.Context, rv *review.BrandReview) error {
	r.metrics.IncrementCounter("repository.brand_reviews.update", nil)

	rv.UpdatedAt = time.Now()
	payload, err := json.Marshal(rv)
	if err != nil {
		return fmt.Errorf("marshal review payload: %w", err)
	}

	query := r.qb.Update("brand_reviews").
		Set("overall_score", rv.OverallScore).
		Set("payload", payload).
		Set("updated_at", rv.UpdatedAt).
		Where(squirrel.Eq{"run_id": rv.RunID})

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	result, err := r.db.Execute(ctx, sqlQuery, args...)
	if err != nil {
		r.logger.Error("Failed to update review", "error", err, "run_id", rv.RunID)
		return fmt.Errorf("update review: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("brand review for run %d: %w", rv.RunID, ports.ErrNotFound)
	}

	return nil
}
