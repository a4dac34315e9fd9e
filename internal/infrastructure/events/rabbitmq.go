// Package events publishes delivery lifecycle events to RabbitMQ so
// downstream consumers (CRM sync, analytics) can react without polling
// the database.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"github.com/brandpulse/audit-delivery/internal/application/ports"
	"github.com/brandpulse/audit-delivery/internal/config"
	"github.com/brandpulse/audit-delivery/internal/observability"
)

// Publisher implements the EventPublisher port on a RabbitMQ queue.
type Publisher struct {
	conn    *amqp091.Connection
	channel *amqp091.Channel
	cfg     *config.EventsConfig
	logger  observability.Logger
	metrics observability.Metrics
}

// New connects to RabbitMQ and opens a publishing channel.
func New(cfg *config.EventsConfig, logger observability.Logger, metrics observability.Metrics) (*Publisher, error) {
	logger, metrics = observability.Scoped(logger, metrics, "events.rabbitmq")

	conn, err := amqp091.Dial(cfg.URL)
	if err != nil {
		logger.Error("Failed to connect to RabbitMQ", "error", err)
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		logger.Error("Failed to create channel", "error", err)
		return nil, fmt.Errorf("failed to create channel: %w", err)
	}

	logger.Info("Event publisher initialized", "queue", cfg.Queue)

	return &Publisher{
		conn:    conn,
		channel: channel,
		cfg:     cfg,
		logger:  logger,
		metrics: metrics,
	}, nil
}

// PublishDelivered emits a delivered event onto the configured queue.
func (p *Publisher) PublishDelivered(ctx context.Context, event ports.DeliveredEvent) error {
	startTime := time.Now()
	defer func() {
		p.metrics.RecordHistogram("events.publish.duration",
			time.Since(startTime).Seconds(),
			map[string]string{"queue": p.cfg.Queue})
	}()

	body, err := json.Marshal(event)
	if err != nil {
		p.logger.Error("Failed to marshal event", "error", err, "run_id", event.RunID)
		p.metrics.IncrementCounter("events.publish.error",
			map[string]string{"queue": p.cfg.Queue, "error": "marshal_failed"})
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	// Declare queue (idempotent operation)
	_, err = p.channel.QueueDeclare(
		p.cfg.Queue, // queue name
		true,        // durable
		false,       // auto-delete
		false,       // exclusive
		false,       // no-wait
		nil,         // arguments
	)
	if err != nil {
		p.logger.Error("Failed to declare queue", "error", err, "queue", p.cfg.Queue)
		return fmt.Errorf("failed to declare queue: %w", err)
	}

	if p.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.cfg.Timeout)
		defer cancel()
	}

	amqpMsg := amqp091.Publishing{
		DeliveryMode: amqp091.Persistent,
		ContentType:  "application/json",
		Body:         body,
		Timestamp:    time.Now(),
	}

	err = p.channel.PublishWithContext(
		ctx,
		p.cfg.Exchange, // exchange (empty for direct queue)
		p.cfg.Queue,    // routing key (queue name)
		false,          // mandatory
		false,          // immediate
		amqpMsg,
	)

	if err != nil {
		p.logger.Error("Failed to publish event", "error", err, "run_id", event.RunID)
		p.metrics.IncrementCounter("events.publish.error",
			map[string]string{"queue": p.cfg.Queue, "error": "publish_failed"})
		return fmt.Errorf("failed to publish event: %w", err)
	}

	p.logger.Info("Delivered event published", "run_id", event.RunID, "size", len(body))
	p.metrics.IncrementCounter("events.publish.success",
		map[string]string{"queue": p.cfg.Queue})

	return nil
}

// Close releases the channel and connection.
func (p *Publisher) Close() error {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
