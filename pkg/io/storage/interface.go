package storage

import (
	"context"
	"errors"
	"io"
	"net/url"
	"path"
	"strings"
	"time"
)

var (
	ErrUpload         = errors.New("object upload failed")
	ErrInvalidLocator = errors.New("invalid object locator")
	ErrPresign        = errors.New("could not sign object url")
)

const DefaultPresignTTL = time.Hour

// ObjectStore durably stores named blobs and hands back a locator for each.
type ObjectStore interface {
	Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
	// PresignURL mints a time limited access URL for a locator returned by Upload.
	PresignURL(ctx context.Context, locator string, ttl time.Duration) (string, error)
}

// KeyFromLocator recovers the object key: the last path segment of the locator.
func KeyFromLocator(locator string) (string, error) {
	if locator == "" {
		return "", ErrInvalidLocator
	}
	p := locator
	if u, err := url.Parse(locator); err == nil && u.Path != "" {
		p = u.Path
	}
	key := path.Base(strings.TrimRight(p, "/"))
	if key == "." || key == "/" || key == "" {
		return "", ErrInvalidLocator
	}
	return key, nil
}
