package webhook

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brandpulse/audit-delivery/internal/config"
	"github.com/brandpulse/audit-delivery/internal/observability"
)

func newTestNotifier(url string) *Notifier {
	return NewNotifier(
		&config.WebhookConfig{URL: url, Timeout: 5 * time.Second},
		observability.NewNoopLogger(),
		observability.NewNoopMetrics(),
	)
}

func TestNotifier_Configured(t *testing.T) {
	assert.True(t, newTestNotifier("https://hooks.test/delivery").Configured())
	assert.False(t, newTestNotifier("").Configured())
}

func TestNotifier_Notify(t *testing.T) {
	t.Run("posts run id and accepts positive ack", func(t *testing.T) {
		var received map[string]int64
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
			w.Write([]byte(`{"ok": true}`))
		}))
		defer server.Close()

		err := newTestNotifier(server.URL).Notify(context.Background(), 42)

		assert.NoError(t, err)
		assert.Equal(t, int64(42), received["audit_run_id"])
	})

	t.Run("accepts array-wrapped ack", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`[{"ok": true}]`))
		}))
		defer server.Close()

		assert.NoError(t, newTestNotifier(server.URL).Notify(context.Background(), 1))
	})

	t.Run("rejects 2xx with negative ack", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"ok": false}`))
		}))
		defer server.Close()

		err := newTestNotifier(server.URL).Notify(context.Background(), 1)

		assert.ErrorIs(t, err, ErrNegativeAck)
	})

	t.Run("rejects non-2xx even with positive body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			w.Write([]byte(`{"ok": true}`))
		}))
		defer server.Close()

		err := newTestNotifier(server.URL).Notify(context.Background(), 1)

		assert.ErrorContains(t, err, "status 502")
	})

	t.Run("rejects malformed body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`queued`))
		}))
		defer server.Close()

		err := newTestNotifier(server.URL).Notify(context.Background(), 1)

		assert.ErrorIs(t, err, ErrMalformedAck)
	})

	t.Run("transport failure surfaces as error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		server.Close()

		err := newTestNotifier(server.URL).Notify(context.Background(), 1)

		assert.Error(t, err)
	})
}
