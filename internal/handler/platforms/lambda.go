package platforms

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/google/uuid"

	"github.com/brandpulse/audit-delivery/internal/config"
	"github.com/brandpulse/audit-delivery/internal/handler"
	"github.com/brandpulse/audit-delivery/internal/observability"
)

// LambdaAdapter serves the handler behind AWS Lambda. It accepts API
// Gateway proxy events and direct handler.Request invocations.
type LambdaAdapter struct {
	handler handler.Handler
	cfg     *config.LambdaConfig
	logger  observability.Logger
	metrics observability.Metrics
}

// NewLambdaAdapter creates a new Lambda adapter.
func NewLambdaAdapter(h handler.Handler, cfg *config.LambdaConfig, logger observability.Logger, metrics observability.Metrics) *LambdaAdapter {
	logger, metrics = observability.Scoped(logger, metrics, "platform.lambda")
	return &LambdaAdapter{
		handler: h,
		cfg:     cfg,
		logger:  logger,
		metrics: metrics,
	}
}

// Start hands control to the Lambda runtime. It does not return until the
// runtime shuts the function down.
func (a *LambdaAdapter) Start() error {
	a.logger.Info("Starting Lambda adapter")
	lambda.Start(a.handleEvent)
	return nil
}

func (a *LambdaAdapter) handleEvent(ctx context.Context, event json.RawMessage) (interface{}, error) {
	a.metrics.IncrementCounter("lambda.invocations", nil)

	if a.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.cfg.Timeout)
		defer cancel()
	}

	// Try to parse as API Gateway proxy event
	var proxyEvent events.APIGatewayProxyRequest
	if err := json.Unmarshal(event, &proxyEvent); err == nil && proxyEvent.HTTPMethod != "" {
		return a.handleProxyEvent(ctx, proxyEvent)
	}

	// Try direct handler.Request (for testing and internal invocation)
	var req handler.Request
	if err := json.Unmarshal(event, &req); err == nil && req.ID != "" {
		return a.handler.Handle(ctx, req)
	}

	a.metrics.IncrementCounter("lambda.unsupported_events", nil)
	return nil, fmt.Errorf("unsupported event type")
}

func (a *LambdaAdapter) handleProxyEvent(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	if event.HTTPMethod != "POST" {
		return events.APIGatewayProxyResponse{
			StatusCode: 405,
			Headers:    map[string]string{"Allow": "POST"},
			Body:       `{"error":"method not allowed"}`,
		}, nil
	}

	var req handler.Request
	if err := json.Unmarshal([]byte(event.Body), &req); err != nil {
		a.logger.Error("Invalid proxy request body", "error", err)
		a.metrics.IncrementCounter("lambda.bad_requests", nil)
		return events.APIGatewayProxyResponse{
			StatusCode: 400,
			Body:       `{"error":"invalid JSON payload"}`,
		}, nil
	}

	// Same contract as the HTTP adapter: a bare body becomes the payload.
	if len(req.Payload) == 0 {
		req.Payload = json.RawMessage(event.Body)
	}

	a.enrichRequest(&req, event)

	resp, err := a.handler.Handle(ctx, req)
	if err != nil {
		a.logger.Error("Request processing failed",
			"request_id", req.ID,
			"error", err)
		return events.APIGatewayProxyResponse{
			StatusCode: 500,
			Body:       `{"error":"internal error"}`,
		}, nil
	}

	body, err := json.Marshal(resp)
	if err != nil {
		return events.APIGatewayProxyResponse{StatusCode: 500}, err
	}

	statusCode := 200
	if !resp.Success {
		statusCode = 422
	}

	return events.APIGatewayProxyResponse{
		StatusCode: statusCode,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       string(body),
	}, nil
}

func (a *LambdaAdapter) enrichRequest(req *handler.Request, event events.APIGatewayProxyRequest) {
	if req.ID == "" {
		if event.RequestContext.RequestID != "" {
			req.ID = event.RequestContext.RequestID
		} else {
			req.ID = uuid.New().String()
		}
	}
	if req.Source == "" {
		req.Source = "lambda"
	}
	if req.Timestamp.IsZero() {
		req.Timestamp = time.Now().UTC()
	}

	if req.Metadata == nil {
		req.Metadata = make(map[string]string)
	}
	req.Metadata["http_method"] = event.HTTPMethod
	req.Metadata["http_path"] = event.Path
	if stage := event.RequestContext.Stage; stage != "" {
		req.Metadata["lambda_stage"] = stage
	}
}
