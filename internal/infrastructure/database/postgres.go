package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/brandpulse/audit-delivery/internal/config"
	"github.com/brandpulse/audit-delivery/internal/observability"
)

// DB implements the Database interface for PostgreSQL
type DB struct {
	conn    *sqlx.DB
	cfg     *config.DatabaseConfig
	logger  observability.Logger
	metrics observability.Metrics
}

// NewPostgres creates a new PostgreSQL database connection
func NewPostgres(cfg *config.DatabaseConfig, logger observability.Logger, metrics observability.Metrics) (Database, error) {
	logger, metrics = observability.Scoped(logger, metrics, "database.postgres")

	logger.Info("Connecting to PostgreSQL database",
		"host", cfg.Host,
		"port", cfg.Port,
		"database", cfg.Database)

	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host,
		cfg.Port,
		cfg.Username,
		cfg.Password,
		cfg.Database,
		cfg.SSLMode,
	)

	conn, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		logger.Error("Failed to open database connection", "error", err)
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Configure connection pool
	conn.SetMaxOpenConns(cfg.MaxOpenConns)
	conn.SetMaxIdleConns(cfg.MaxIdleConns)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := conn.PingContext(ctx); err != nil {
		logger.Error("Failed to ping database", "error", err)
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("Successfully connected to PostgreSQL database")
	metrics.IncrementCounter("database.connection.success", map[string]string{"type": "postgres"})

	return &DB{
		conn:    conn,
		cfg:     cfg,
		logger:  logger,
		metrics: metrics,
	}, nil
}

// Get executes a query expected to return a single row
func (d *DB) Get(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	start := time.Now()
	err := d.conn.GetContext(ctx, dest, query, args...)
	d.recordMetrics("get", time.Since(start), err)
	return err
}

// Select executes a query returning multiple rows
func (d *DB) Select(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	start := time.Now()
	err := d.conn.SelectContext(ctx, dest, query, args...)
	d.recordMetrics("select", time.Since(start), err)
	return err
}

// Execute runs a query that doesn't return rows
func (d *DB) Execute(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	start := time.Now()
	result, err := d.conn.ExecContext(ctx, query, args...)
	d.recordMetrics("execute", time.Since(start), err)
	return result, err
}

// QueryRow runs a query returning at most one row
func (d *DB) QueryRow(ctx context.Context, query string, args ...interface{}) *sql.Row {
	start := time.Now()
	row := d.conn.QueryRowContext(ctx, query, args...)
	d.recordMetrics("query_row", time.Since(start), nil)
	return row
}

// Close releases the connection pool
func (d *DB) Close() error {
	d.logger.Info("Closing database connection")
	return d.conn.Close()
}

func (d *DB) recordMetrics(operation string, duration time.Duration, err error) {
	tags := map[string]string{"operation": operation}
	d.metrics.RecordHistogram("database.query.duration", duration.Seconds(), tags)
	if err != nil && err != sql.ErrNoRows {
		d.metrics.IncrementCounter("database.query.errors", tags)
	}
}
