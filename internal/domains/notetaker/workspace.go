package notetaker

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
)

// workspace is a per-call temp directory; Close removes everything in it.
type workspace struct {
	fs  afero.Fs
	dir string
}

func newWorkspace(fs afero.Fs, base string) (*workspace, error) {
	if base != "" {
		if err := fs.MkdirAll(base, 0o755); err != nil {
			return nil, fmt.Errorf("create work dir: %w", err)
		}
	}
	dir, err := afero.TempDir(fs, base, "note-")
	if err != nil {
		return nil, fmt.Errorf("create workspace: %w", err)
	}
	return &workspace{fs: fs, dir: dir}, nil
}

func (w *workspace) path(name string) string {
	return filepath.Join(w.dir, name)
}

func (w *workspace) exists(name string) bool {
	info, err := w.fs.Stat(w.path(name))
	return err == nil && info.Size() > 0
}

func (w *workspace) Close() error {
	return w.fs.RemoveAll(w.dir)
}
