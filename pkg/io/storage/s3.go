package storage

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/xpanvictor/voicetaker/pkg/Logger"
)

// S3Config holds S3 object store configuration
type S3Config struct {
	Bucket    string
	Region    string // uses the default chain when empty
	Endpoint  string // S3 compatible endpoint (minio, localstack); AWS when empty
	PathStyle bool
}

// S3Store stores note media in a single bucket.
// Locators are virtual-hosted URLs: https://<bucket>.s3.amazonaws.com/<key>
type S3Store struct {
	client    S3API
	presigner Presigner
	bucket    string
	endpoint  string
	logger    *Logger.Logger
}

var _ ObjectStore = (*S3Store)(nil)

// NewS3Store builds the client from the default AWS credential chain.
func NewS3Store(ctx context.Context, cfg S3Config, logger *Logger.Logger) (*S3Store, error) {
	var opts []func(*config.LoadOptions) error
	if cfg.Region != "" {
		opts = append(opts, config.WithRegion(cfg.Region))
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.PathStyle
	})

	return NewS3StoreWithClient(client, s3.NewPresignClient(client), cfg.Bucket, cfg.Endpoint, logger), nil
}

// NewS3StoreWithClient wires explicit clients, primarily for tests.
func NewS3StoreWithClient(client S3API, presigner Presigner, bucket, endpoint string, logger *Logger.Logger) *S3Store {
	return &S3Store{
		client:    client,
		presigner: presigner,
		bucket:    bucket,
		endpoint:  strings.TrimRight(endpoint, "/"),
		logger:    logger,
	}
}

func (s *S3Store) locator(key string) string {
	if s.endpoint != "" {
		return fmt.Sprintf("%s/%s/%s", s.endpoint, s.bucket, key)
	}
	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.bucket, key)
}

func (s *S3Store) Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("%w: put s3://%s/%s: %v", ErrUpload, s.bucket, key, err)
	}
	s.logger.Infof("uploaded s3://%s/%s", s.bucket, key)
	return s.locator(key), nil
}

func (s *S3Store) PresignURL(ctx context.Context, locator string, ttl time.Duration) (string, error) {
	key, err := KeyFromLocator(locator)
	if err != nil {
		return "", err
	}
	if ttl <= 0 {
		ttl = DefaultPresignTTL
	}
	req, err := s.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(ttl))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrPresign, err)
	}
	return req.URL, nil
}
