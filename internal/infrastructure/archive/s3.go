// Package archive keeps an internal S3 copy of every generated report
// document. The published asset remains the durable artifact; the archive
// exists for audit trail and regeneration comparisons.
package archive

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"path"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/brandpulse/audit-delivery/internal/config"
	"github.com/brandpulse/audit-delivery/internal/observability"
)

// Store implements the DocumentArchive port on S3.
type Store struct {
	s3Client *s3.Client
	cfg      *config.ArchiveConfig
	logger   observability.Logger
	metrics  observability.Metrics
}

// New creates the archive store and verifies the configured bucket exists.
func New(cfg *config.ArchiveConfig, logger observability.Logger, metrics observability.Metrics) (*Store, error) {
	logger, metrics = observability.Scoped(logger, metrics, "archive.s3")

	awsCfg, err := buildAWSConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to build AWS config: %w", err)
	}

	s3Client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	store := &Store{
		s3Client: s3Client,
		cfg:      cfg,
		logger:   logger,
		metrics:  metrics,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := store.ensureBucketExists(ctx); err != nil {
		logger.Error("Failed to verify bucket existence", "error", err, "bucket", cfg.Bucket)
		return nil, fmt.Errorf("failed to verify bucket existence: %w", err)
	}

	logger.Info("Archive store initialized", "bucket", cfg.Bucket, "region", cfg.Region)
	return store, nil
}

// Store puts a document copy under the configured prefix.
func (s *Store) Store(ctx context.Context, key string, content []byte, contentType string) error {
	start := time.Now()
	fullKey := path.Join(s.cfg.Prefix, key)

	input := &s3.PutObjectInput{
		Bucket:      aws.String(s.cfg.Bucket),
		Key:         aws.String(fullKey),
		Body:        bytes.NewReader(content),
		ContentType: aws.String(contentType),
	}

	if _, err := s.s3Client.PutObject(ctx, input); err != nil {
		s.logger.Error("Failed to archive document",
			"error", err,
			"bucket", s.cfg.Bucket,
			"key", fullKey)
		s.metrics.IncrementCounter("archive.put.errors", nil)
		return fmt.Errorf("failed to put object: %w", err)
	}

	duration := time.Since(start)
	s.logger.Info("Document archived",
		"bucket", s.cfg.Bucket,
		"key", fullKey,
		"size_bytes", len(content),
		"duration_ms", duration.Milliseconds())

	s.metrics.IncrementCounter("archive.put.success", nil)
	s.metrics.RecordHistogram("archive.put.duration", duration.Seconds(), nil)
	s.metrics.RecordHistogram("archive.put.size", float64(len(content)), nil)

	return nil
}

// ensureBucketExists checks the configured bucket, creating it when absent.
func (s *Store) ensureBucketExists(ctx context.Context) error {
	_, err := s.s3Client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(s.cfg.Bucket),
	})

	if err != nil {
		var nse *s3types.NotFound
		if errors.As(err, &nse) {
			s.logger.Info("Bucket does not exist, attempting to create",
				"bucket", s.cfg.Bucket)
			return s.createBucket(ctx)
		}
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}

	return nil
}

func (s *Store) createBucket(ctx context.Context) error {
	input := &s3.CreateBucketInput{
		Bucket: aws.String(s.cfg.Bucket),
	}

	// Add location constraint for non us-east-1 regions
	if s.cfg.Region != "" && s.cfg.Region != "us-east-1" {
		input.CreateBucketConfiguration = &s3types.CreateBucketConfiguration{
			LocationConstraint: s3types.BucketLocationConstraint(s.cfg.Region),
		}
	}

	if _, err := s.s3Client.CreateBucket(ctx, input); err != nil {
		var bae *s3types.BucketAlreadyExists
		var baoyb *s3types.BucketAlreadyOwnedByYou
		if errors.As(err, &bae) || errors.As(err, &baoyb) {
			return nil
		}
		return fmt.Errorf("failed to create bucket: %w", err)
	}

	s.logger.Info("Bucket created", "bucket", s.cfg.Bucket)
	return nil
}

// buildAWSConfig builds the AWS configuration from the archive config
func buildAWSConfig(cfg *config.ArchiveConfig) (aws.Config, error) {
	var optFns []func(*awsconfig.LoadOptions) error

	if cfg.Region != "" {
		optFns = append(optFns, awsconfig.WithRegion(cfg.Region))
	}

	// Use static credentials if provided
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		optFns = append(optFns, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				cfg.AccessKeyID,
				cfg.SecretAccessKey,
				"",
			),
		))
	}

	optFns = append(optFns, awsconfig.WithRetryMaxAttempts(cfg.MaxRetries))
	optFns = append(optFns, awsconfig.WithHTTPClient(&http.Client{
		Timeout: cfg.Timeout,
	}))

	return awsconfig.LoadDefaultConfig(context.Background(), optFns...)
}
