// Package repository implements the data-store ports on PostgreSQL using
// squirrel-built queries over the database adapter.
package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/brandpulse/audit-delivery/internal/application/ports"
	"github.com/brandpulse/audit-delivery/internal/infrastructure/database"
	"github.com/brandpulse/audit-delivery/internal/observability"
)

type baseRepository[T any] struct {
	db      database.Database
	logger  observability.Logger
	metrics observability.Metrics
	table   string
	qb      squirrel.StatementBuilderType
}

func newBaseRepository[T any](db database.Database, logger observability.Logger, metrics observability.Metrics, table string) *baseRepository[T] {
	return &baseRepository[T]{
		db:      db,
		logger:  logger,
		metrics: metrics,
		table:   table,
		qb:      squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Get retrieves an entity by ID - sqlx does the scanning
func (r *baseRepository[T]) Get(ctx context.Context, id int64) (*T, error) {
	var entity T

	r.metrics.IncrementCounter(fmt.Sprintf("repository.%s.get", r.table), nil)

	query := r.qb.
		Select("*").
		From(r.table).
		Where(squirrel.Eq{"id": id})

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	err = r.db.Get(ctx, &entity, sqlQuery, args...)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%s %d: %w", r.table, id, ports.ErrNotFound)
	}
	if err != nil {
		r.logger.Error("Failed to get entity", "error", err, "table", r.table, "id", id)
		r.metrics.IncrementCounter(fmt.Sprintf("repository.%s.errors", r.table), nil)
		return nil, fmt.Errorf("get entity: %w", err)
	}

	return &entity, nil
}

// ListAll retrieves every entity in the table
func (r *baseRepository[T]) ListAll(ctx context.Context) ([]*T, error) {
	r.metrics.IncrementCounter(fmt.Sprintf("repository.%s.list", r.table), nil)

	query := r.qb.
		Select("*").
		From(r.table)

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var entities []T
	err = r.db.Select(ctx, &entities, sqlQuery, args...)
	if err != nil {
		r.logger.Error("Failed to list entities", "error", err, "table", r.table)
		r.metrics.IncrementCounter(fmt.Sprintf("repository.%s.errors", r.table), nil)
		return nil, fmt.Errorf("list entities: %w", err)
	}

	result := make([]*T, len(entities))
	for i := range entities {
		result[i] = &entities[i]
	}

	return result, nil
}
