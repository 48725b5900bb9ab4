package client

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

var ErrNotLoggedIn = errors.New("please log in to access the notes page")

// Session is the single local login: a flag and the username, nothing secret.
type Session struct {
	LoggedIn bool   `yaml:"logged_in"`
	Username string `yaml:"username"`
}

// SessionStore persists the session between CLI invocations.
type SessionStore struct {
	fs   afero.Fs
	path string
}

func NewSessionStore(fs afero.Fs, path string) *SessionStore {
	return &SessionStore{fs: fs, path: path}
}

// DefaultSessionPath is ~/.voicetaker/session.yaml.
func DefaultSessionPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".voicetaker", "session.yaml")
}

// Load returns the zero session when nothing was saved.
func (s *SessionStore) Load() (Session, error) {
	raw, err := afero.ReadFile(s.fs, s.path)
	if errors.Is(err, os.ErrNotExist) {
		return Session{}, nil
	}
	if err != nil {
		return Session{}, fmt.Errorf("read session: %w", err)
	}
	var sess Session
	if err := yaml.Unmarshal(raw, &sess); err != nil {
		return Session{}, fmt.Errorf("parse session: %w", err)
	}
	return sess, nil
}

func (s *SessionStore) Save(sess Session) error {
	raw, err := yaml.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.fs.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	if err := afero.WriteFile(s.fs, s.path, raw, 0o600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

func (s *SessionStore) Login(username string) error {
	return s.Save(Session{LoggedIn: true, Username: username})
}

// Logout forgets the session. Logging out twice is fine.
func (s *SessionStore) Logout() error {
	err := s.fs.Remove(s.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}

// Require returns the logged in username or ErrNotLoggedIn.
func (s *SessionStore) Require() (string, error) {
	sess, err := s.Load()
	if err != nil {
		return "", err
	}
	if !sess.LoggedIn || sess.Username == "" {
		return "", ErrNotLoggedIn
	}
	return sess.Username, nil
}
