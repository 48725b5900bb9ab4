package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// mockS3Client stores objects in memory and simulates S3 behavior
type mockS3Client struct {
	mu      sync.RWMutex
	objects map[string]mockS3Object
	failKey string
}

type mockS3Object struct {
	content     []byte
	contentType string
}

func newMockS3Client() *mockS3Client {
	return &mockS3Client{objects: make(map[string]mockS3Object)}
}

func (m *mockS3Client) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	key := aws.ToString(params.Key)
	if key == m.failKey {
		return nil, errors.New("AccessDenied")
	}
	content, err := io.ReadAll(params.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[aws.ToString(params.Bucket)+"/"+key] = mockS3Object{
		content:     content,
		contentType: aws.ToString(params.ContentType),
	}
	return &s3.PutObjectOutput{}, nil
}

func (m *mockS3Client) get(bucket, key string) (mockS3Object, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	obj, ok := m.objects[bucket+"/"+key]
	return obj, ok
}

type mockPresigner struct {
	expires time.Duration
	err     error
}

func (p *mockPresigner) PresignGetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
	if p.err != nil {
		return nil, p.err
	}
	opts := s3.PresignOptions{}
	for _, fn := range optFns {
		fn(&opts)
	}
	p.expires = opts.Expires
	return &v4.PresignedHTTPRequest{
		URL: fmt.Sprintf("https://%s.s3.amazonaws.com/%s?X-Amz-Expires=%d&X-Amz-Signature=sig",
			aws.ToString(params.Bucket), aws.ToString(params.Key), int(opts.Expires.Seconds())),
		Method:       http.MethodGet,
		SignedHeader: http.Header{},
	}, nil
}
