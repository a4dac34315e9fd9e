package platforms

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brandpulse/audit-delivery/internal/config"
	"github.com/brandpulse/audit-delivery/internal/handler"
	"github.com/brandpulse/audit-delivery/internal/observability"
)

type stubHandler struct {
	response handler.Response
	err      error
	received *handler.Request
}

func (s *stubHandler) Handle(ctx context.Context, req handler.Request) (handler.Response, error) {
	s.received = &req
	return s.response, s.err
}

func newTestAdapter(h handler.Handler) *HTTPAdapter {
	return NewHTTPAdapter(h,
		&config.HTTPConfig{Addr: ":0", Timeout: 5 * time.Second},
		&config.HandlerConfig{Timeout: 5 * time.Second, MaxRequestSize: 1 << 20, EnableHealth: true},
		observability.NewNoopLogger(),
		observability.NewNoopMetrics(),
	)
}

func TestHTTPAdapter_HandleRequest(t *testing.T) {
	t.Run("successful request", func(t *testing.T) {
		stub := &stubHandler{
			response: handler.Response{
				ID:      "req-1",
				Success: true,
				Data:    json.RawMessage(`{"status": "delivered"}`),
			},
		}
		adapter := newTestAdapter(stub)

		body := bytes.NewBufferString(`{"id": "req-1", "payload": {"run_id": 7}}`)
		req := httptest.NewRequest(http.MethodPost, "/", body)
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		adapter.handleRequest(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

		var resp handler.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)

		// Metadata was enriched from the transport.
		require.NotNil(t, stub.received)
		assert.Equal(t, "req-1", stub.received.ID)
		assert.Equal(t, "http", stub.received.Source)
		assert.Equal(t, "POST", stub.received.Metadata["http_method"])
	})

	t.Run("bare body becomes the payload", func(t *testing.T) {
		stub := &stubHandler{response: handler.Response{Success: true}}
		adapter := newTestAdapter(stub)

		body := bytes.NewBufferString(`{"run_id": 7, "review": {"overall_score": 82}}`)
		req := httptest.NewRequest(http.MethodPost, "/", body)
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		adapter.handleRequest(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		require.NotNil(t, stub.received)

		var payload struct {
			RunID int64 `json:"run_id"`
		}
		require.NoError(t, stub.received.Unmarshal(&payload))
		assert.Equal(t, int64(7), payload.RunID)
	})

	t.Run("unsuccessful response maps to 422", func(t *testing.T) {
		stub := &stubHandler{
			response: handler.Response{
				ID:      "req-1",
				Success: false,
				Error:   &handler.ErrorResponse{Code: "NOT_FOUND", Message: "no such run"},
			},
		}
		adapter := newTestAdapter(stub)

		req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(`{"id": "req-1"}`))
		w := httptest.NewRecorder()

		adapter.handleRequest(w, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("missing request id is generated", func(t *testing.T) {
		stub := &stubHandler{response: handler.Response{Success: true}}
		adapter := newTestAdapter(stub)

		req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(`{"run_id": 7}`))
		w := httptest.NewRecorder()

		adapter.handleRequest(w, req)

		require.NotNil(t, stub.received)
		assert.NotEmpty(t, stub.received.ID)
	})

	t.Run("invalid JSON", func(t *testing.T) {
		adapter := newTestAdapter(&stubHandler{})

		req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(`{broken`))
		w := httptest.NewRecorder()

		adapter.handleRequest(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)

		var resp handler.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "BAD_REQUEST", resp.Error.Code)
	})

	t.Run("non-POST rejected", func(t *testing.T) {
		adapter := newTestAdapter(&stubHandler{})

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		w := httptest.NewRecorder()

		adapter.handleRequest(w, req)

		assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
		assert.Equal(t, "POST", w.Header().Get("Allow"))
	})

	t.Run("handler error maps to 500", func(t *testing.T) {
		adapter := newTestAdapter(&stubHandler{err: context.DeadlineExceeded})

		req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(`{"id": "req-1"}`))
		w := httptest.NewRecorder()

		adapter.handleRequest(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestHTTPAdapter_Health(t *testing.T) {
	adapter := newTestAdapter(&stubHandler{})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()

	adapter.handleHealth(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status": "ok"}`, w.Body.String())
}
