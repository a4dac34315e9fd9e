// Package platforms provides runtime adapters that feed platform-specific
// invocations (HTTP server, AWS Lambda) into the generic handler contract.
package platforms

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/brandpulse/audit-delivery/internal/config"
	"github.com/brandpulse/audit-delivery/internal/handler"
	"github.com/brandpulse/audit-delivery/internal/observability"
)

// HTTPAdapter serves the handler over a plain HTTP server.
type HTTPAdapter struct {
	handler    handler.Handler
	httpCfg    *config.HTTPConfig
	handlerCfg *config.HandlerConfig
	logger     observability.Logger
	metrics    observability.Metrics
	server     *http.Server

	// MetricsHandler, when set, is served on /metrics.
	MetricsHandler http.Handler
}

// NewHTTPAdapter creates a new HTTP adapter.
func NewHTTPAdapter(h handler.Handler, httpCfg *config.HTTPConfig, handlerCfg *config.HandlerConfig, logger observability.Logger, metrics observability.Metrics) *HTTPAdapter {
	logger, metrics = observability.Scoped(logger, metrics, "platform.http")
	return &HTTPAdapter{
		handler:    h,
		httpCfg:    httpCfg,
		handlerCfg: handlerCfg,
		logger:     logger,
		metrics:    metrics,
	}
}

// Start begins the HTTP server and blocks until it stops.
func (a *HTTPAdapter) Start() error {
	mux := http.NewServeMux()
	mux.HandleFunc("/", a.handleRequest)
	if a.handlerCfg.EnableHealth {
		mux.HandleFunc("/healthz", a.handleHealth)
	}
	if a.MetricsHandler != nil {
		mux.Handle("/metrics", a.MetricsHandler)
	}

	a.server = &http.Server{
		Addr:         a.httpCfg.Addr,
		Handler:      mux,
		ReadTimeout:  a.httpCfg.Timeout,
		WriteTimeout: a.httpCfg.Timeout,
	}

	a.logger.Info("Starting HTTP adapter", "address", a.httpCfg.Addr)
	a.metrics.IncrementCounter("http.starts", nil)

	if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}

	return nil
}

// Stop gracefully shuts down the HTTP server.
func (a *HTTPAdapter) Stop(ctx context.Context) error {
	if a.server == nil {
		return nil
	}

	a.logger.Info("Shutting down HTTP server")
	return a.server.Shutdown(ctx)
}

// handleRequest processes incoming HTTP requests
func (a *HTTPAdapter) handleRequest(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	// Only accept POST requests
	if r.Method != http.MethodPost {
		a.handleMethodNotAllowed(w, r)
		return
	}

	startTime := time.Now()
	a.logger.Info("HTTP request received",
		"method", r.Method,
		"path", r.URL.Path,
		"remote_addr", r.RemoteAddr)
	a.metrics.IncrementCounter("http.requests", nil)
	defer func() {
		a.metrics.RecordHistogram("http.request_duration",
			float64(time.Since(startTime).Milliseconds()), nil)
	}()

	// Read body with size limit
	body, err := io.ReadAll(io.LimitReader(r.Body, a.handlerCfg.MaxRequestSize))
	defer r.Body.Close()

	if err != nil {
		a.handleBadRequest(w, fmt.Errorf("failed to read request body: %w", err))
		return
	}

	// Parse request
	var req handler.Request
	if err := json.Unmarshal(body, &req); err != nil {
		a.handleBadRequest(w, fmt.Errorf("invalid JSON payload: %w", err))
		return
	}

	// A bare approval body carries no envelope fields; treat the whole
	// document as the payload.
	if len(req.Payload) == 0 {
		req.Payload = body
	}

	// Add HTTP metadata
	a.enrichRequest(&req, r)

	// Apply timeout if configured
	ctx := r.Context()
	if a.handlerCfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.handlerCfg.Timeout)
		defer cancel()
	}

	// Process request
	resp, err := a.handler.Handle(ctx, req)

	// Send response
	a.sendResponse(w, resp, err)

	// Log result
	a.logRequestComplete(req, resp, err)
}

// handleHealth reports liveness.
func (a *HTTPAdapter) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// enrichRequest adds HTTP-specific metadata to the request
func (a *HTTPAdapter) enrichRequest(req *handler.Request, r *http.Request) {
	// Set defaults if not provided
	if req.ID == "" {
		req.ID = uuid.New().String()
	}
	if req.Source == "" {
		req.Source = "http"
	}
	if req.Timestamp.IsZero() {
		req.Timestamp = time.Now().UTC()
	}

	// Add HTTP metadata
	if req.Metadata == nil {
		req.Metadata = make(map[string]string)
	}
	req.Metadata["http_method"] = r.Method
	req.Metadata["http_path"] = r.URL.Path
	req.Metadata["http_remote_addr"] = r.RemoteAddr

	// Add select headers
	if contentType := r.Header.Get("Content-Type"); contentType != "" {
		req.Metadata["http_content_type"] = contentType
	}
	if userAgent := r.Header.Get("User-Agent"); userAgent != "" {
		req.Metadata["http_user_agent"] = userAgent
	}
}

// sendResponse writes the handler response to the HTTP response
func (a *HTTPAdapter) sendResponse(w http.ResponseWriter, resp handler.Response, err error) {
	w.Header().Set("Content-Type", "application/json")

	// Handle error case
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		errResp := handler.Response{
			ID:          resp.ID,
			Success:     false,
			Error:       &handler.ErrorResponse{Code: "INTERNAL_ERROR", Message: err.Error()},
			ProcessedAt: time.Now().UTC(),
		}
		if err := json.NewEncoder(w).Encode(errResp); err != nil {
			a.logger.Error("Failed to encode error response", "error", err)
		}
		return
	}

	// Determine status code
	statusCode := http.StatusOK
	if !resp.Success {
		statusCode = http.StatusUnprocessableEntity
	}

	// Write response
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		a.logger.Error("Failed to encode response", "error", err)
	}
}

// handleMethodNotAllowed handles non-POST requests
func (a *HTTPAdapter) handleMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	a.logger.Info("Method not allowed",
		"method", r.Method,
		"path", r.URL.Path)
	a.metrics.IncrementCounter("http.method_not_allowed", nil)

	w.Header().Set("Allow", "POST")
	http.Error(w, "Method not allowed. Only POST is supported.", http.StatusMethodNotAllowed)
}

// handleBadRequest handles invalid requests
func (a *HTTPAdapter) handleBadRequest(w http.ResponseWriter, err error) {
	a.logger.Error("Bad request", "error", err)
	a.metrics.IncrementCounter("http.bad_request", nil)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)

	resp := handler.Response{
		Success:     false,
		Error:       &handler.ErrorResponse{Code: "BAD_REQUEST", Message: err.Error()},
		ProcessedAt: time.Now().UTC(),
	}

	json.NewEncoder(w).Encode(resp)
}

func (a *HTTPAdapter) logRequestComplete(req handler.Request, resp handler.Response, err error) {
	if err != nil {
		a.logger.Error("Request processing failed",
			"request_id", req.ID,
			"error", err)
	} else if !resp.Success {
		a.logger.Info("Request processing unsuccessful",
			"request_id", req.ID,
			"error", resp.Error)
	} else {
		a.logger.Info("Request processed successfully",
			"request_id", req.ID)
	}
}
