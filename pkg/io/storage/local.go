package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"
	"github.com/xpanvictor/voicetaker/pkg/Logger"
)

// LocalStore keeps objects in a directory. Locators are <publicURL>/<key>,
// or file:// paths when no public URL is configured.
type LocalStore struct {
	fs        afero.Fs
	root      string
	publicURL string
	logger    *Logger.Logger
}

var _ ObjectStore = (*LocalStore)(nil)

func NewLocalStore(fs afero.Fs, root, publicURL string, logger *Logger.Logger) (*LocalStore, error) {
	if err := fs.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create media dir: %w", err)
	}
	return &LocalStore{fs: fs, root: root, publicURL: strings.TrimRight(publicURL, "/"), logger: logger}, nil
}

func (l *LocalStore) Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) {
		return "", fmt.Errorf("%w: bad key %q", ErrUpload, key)
	}
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpload, err)
	}
	p := filepath.Join(l.root, key)
	if err := afero.WriteReader(l.fs, p, body); err != nil {
		return "", fmt.Errorf("%w: write %s: %v", ErrUpload, p, err)
	}
	l.logger.Infof("stored %s (%s)", p, contentType)

	if l.publicURL == "" {
		abs, err := filepath.Abs(p)
		if err != nil {
			abs = p
		}
		return "file://" + filepath.ToSlash(abs), nil
	}
	return l.publicURL + "/" + key, nil
}

// PresignURL returns the locator itself once the object is known to exist;
// local objects carry no signature.
func (l *LocalStore) PresignURL(ctx context.Context, locator string, ttl time.Duration) (string, error) {
	key, err := KeyFromLocator(locator)
	if err != nil {
		return "", err
	}
	ok, err := afero.Exists(l.fs, filepath.Join(l.root, key))
	if err != nil || !ok {
		return "", fmt.Errorf("%w: %s not found", ErrPresign, key)
	}
	return locator, nil
}
