// Package assets uploads report artifacts to the external asset host over
// its signed-request HTTP API and returns durable public URLs.
package assets

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/brandpulse/audit-delivery/internal/application/ports"
	"github.com/brandpulse/audit-delivery/internal/config"
	"github.com/brandpulse/audit-delivery/internal/observability"
)

// downloadSegment is inserted into returned URLs so fetching the asset
// triggers a download instead of inline rendering. Pure string transform,
// no second network call.
const downloadSegment = "fl_attachment/"

// Publisher implements the AssetPublisher port against the asset host.
type Publisher struct {
	client  *http.Client
	cfg     *config.AssetsConfig
	logger  observability.Logger
	metrics observability.Metrics
	now     func() time.Time
}

func NewPublisher(cfg *config.AssetsConfig, logger observability.Logger, metrics observability.Metrics) *Publisher {
	logger, metrics = observability.Scoped(logger, metrics, "assets.publisher")
	return &Publisher{
		client:  &http.Client{Timeout: cfg.Timeout},
		cfg:     cfg,
		logger:  logger,
		metrics: metrics,
		now:     time.Now,
	}
}

// uploadResponse is the asset host's answer to a successful upload.
type uploadResponse struct {
	SecureURL string `json:"secure_url"`
	Bytes     int64  `json:"bytes"`
}

// Publish uploads content under destinationID and returns its public URL.
func (p *Publisher) Publish(ctx context.Context, content []byte, contentType, destinationID string) (*ports.PublishResult, error) {
	start := p.now()
	timestamp := start.Unix()
	signature := uploadSignature(p.cfg.Folder, destinationID, timestamp, p.cfg.APISecret)

	body, formContentType, err := p.buildUploadForm(content, contentType, destinationID, timestamp, signature)
	if err != nil {
		return nil, fmt.Errorf("build upload form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.cfg.UploadURL, body)
	if err != nil {
		return nil, fmt.Errorf("create upload request: %w", err)
	}
	req.Header.Set("Content-Type", formContentType)

	resp, err := p.client.Do(req)
	if err != nil {
		p.metrics.IncrementCounter("assets.upload.errors", map[string]string{"error_type": "transport"})
		return nil, fmt.Errorf("upload request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		p.metrics.IncrementCounter("assets.upload.errors", map[string]string{"error_type": "status"})
		return nil, fmt.Errorf("asset host rejected upload: status %d", resp.StatusCode)
	}

	var uploaded uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&uploaded); err != nil {
		p.metrics.IncrementCounter("assets.upload.errors", map[string]string{"error_type": "decode"})
		return nil, fmt.Errorf("decode upload response: %w", err)
	}
	if uploaded.SecureURL == "" {
		return nil, fmt.Errorf("asset host returned no URL")
	}

	publicURL := ForceDownloadURL(uploaded.SecureURL)

	duration := p.now().Sub(start)
	p.logger.Info("Asset published",
		"destination_id", destinationID,
		"url", publicURL,
		"size_bytes", uploaded.Bytes,
		"duration_ms", duration.Milliseconds())
	p.metrics.IncrementCounter("assets.upload.success", nil)
	p.metrics.RecordHistogram("assets.upload.duration", duration.Seconds(), nil)
	p.metrics.RecordHistogram("assets.upload.size", float64(uploaded.Bytes), nil)

	return &ports.PublishResult{
		PublicURL: publicURL,
		Bytes:     uploaded.Bytes,
	}, nil
}

// Unpublish removes a previously published asset. Used by staff cleanup of
// superseded reports; never called by the delivery pipeline itself.
func (p *Publisher) Unpublish(ctx context.Context, destinationID string) error {
	start := p.now()
	timestamp := start.Unix()
	signature := deleteSignature(destinationID, timestamp, p.cfg.APISecret)

	form := url.Values{}
	form.Set("public_id", destinationID)
	form.Set("api_key", p.cfg.APIKey)
	form.Set("timestamp", strconv.FormatInt(timestamp, 10))
	form.Set("signature", signature)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.cfg.DeleteURL,
		strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("create delete request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.client.Do(req)
	if err != nil {
		p.metrics.IncrementCounter("assets.delete.errors", nil)
		return fmt.Errorf("delete request failed: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		p.metrics.IncrementCounter("assets.delete.errors", nil)
		return fmt.Errorf("asset host rejected delete: status %d", resp.StatusCode)
	}

	p.logger.Info("Asset removed", "destination_id", destinationID)
	p.metrics.IncrementCounter("assets.delete.success", nil)
	return nil
}

func (p *Publisher) buildUploadForm(content []byte, contentType, destinationID string, timestamp int64, signature string) (*bytes.Buffer, string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	fields := map[string]string{
		"public_id": destinationID,
		"api_key":   p.cfg.APIKey,
		"timestamp": strconv.FormatInt(timestamp, 10),
		"signature": signature,
		"folder":    p.cfg.Folder,
	}
	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			return nil, "", err
		}
	}

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="file"; filename=%q`, destinationID))
	header.Set("Content-Type", contentType)

	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(content); err != nil {
		return nil, "", err
	}

	if err := writer.Close(); err != nil {
		return nil, "", err
	}

	return body, writer.FormDataContentType(), nil
}

// ForceDownloadURL rewrites a secure asset URL into its force-download
// form by inserting the attachment segment after the upload path element.
// URLs without an upload element are returned unchanged.
func ForceDownloadURL(secureURL string) string {
	const marker = "/upload/"
	idx := strings.Index(secureURL, marker)
	if idx < 0 {
		return secureURL
	}
	return secureURL[:idx+len(marker)] + downloadSegment + secureURL[idx+len(marker):]
}
