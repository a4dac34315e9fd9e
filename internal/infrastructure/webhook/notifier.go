// Package webhook notifies the downstream automation consumer that a
// report was delivered, and interprets its acknowledgment strictly.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/brandpulse/audit-delivery/internal/config"
	"github.com/brandpulse/audit-delivery/internal/observability"
)

// maxAckBody bounds how much of a response we are willing to read.
const maxAckBody = 1 << 20

// Notifier implements the DeliveryNotifier port over HTTP POST.
type Notifier struct {
	url     string
	client  *http.Client
	logger  observability.Logger
	metrics observability.Metrics
}

func NewNotifier(cfg *config.WebhookConfig, logger observability.Logger, metrics observability.Metrics) *Notifier {
	logger, metrics = observability.Scoped(logger, metrics, "webhook.notifier")
	return &Notifier{
		url:     cfg.URL,
		client:  &http.Client{Timeout: cfg.Timeout},
		logger:  logger,
		metrics: metrics,
	}
}

// Configured reports whether a downstream webhook is set up at all.
func (n *Notifier) Configured() bool {
	return n.url != ""
}

// Notify posts the run id downstream. Success is interpreted narrowly: an
// HTTP success status and a body carrying an explicit positive flag. Any
// other shape, a negative flag, or a transport failure is a delivery
// failure the caller may retry.
func (n *Notifier) Notify(ctx context.Context, runID int64) error {
	start := time.Now()

	payload, err := json.Marshal(map[string]int64{"audit_run_id": runID})
	if err != nil {
		return fmt.Errorf("marshal notification payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create notification request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		n.metrics.IncrementCounter("webhook.notify.errors", map[string]string{"error_type": "transport"})
		return fmt.Errorf("notification request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxAckBody))
	if err != nil {
		n.metrics.IncrementCounter("webhook.notify.errors", map[string]string{"error_type": "read"})
		return fmt.Errorf("read notification response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		n.metrics.IncrementCounter("webhook.notify.errors", map[string]string{"error_type": "status"})
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}

	if err := parseAck(body); err != nil {
		n.metrics.IncrementCounter("webhook.notify.errors", map[string]string{"error_type": "ack"})
		return fmt.Errorf("webhook acknowledgment: %w", err)
	}

	duration := time.Since(start)
	n.logger.Info("Delivery confirmed downstream",
		"run_id", runID,
		"duration_ms", duration.Milliseconds())
	n.metrics.IncrementCounter("webhook.notify.success", nil)
	n.metrics.RecordHistogram("webhook.notify.duration", duration.Seconds(), nil)

	return nil
}
