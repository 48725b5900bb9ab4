package note

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/xpanvictor/voicetaker/pkg/Logger"
)

// Common errors
var (
	ErrInvalidNoteData = errors.New("invalid note data")
	ErrOwnerNotFound   = errors.New("user not found")
)

// NoteService defines the interface for note business logic
type NoteService interface {
	CreateNote(ctx context.Context, req SaveNoteRequest) (string, error)
	ListNotes(ctx context.Context, owner string) ([]Note, error)
	DeleteNote(ctx context.Context, owner, noteID string) error
}

type noteService struct {
	repository NoteRepository
	logger     *Logger.Logger
	now        func() time.Time
}

// CreateNote implements NoteService
func (s *noteService) CreateNote(ctx context.Context, req SaveNoteRequest) (string, error) {
	if strings.TrimSpace(req.Username) == "" || strings.TrimSpace(req.OriginalNote) == "" {
		return "", ErrInvalidNoteData
	}

	n := NewNote(ulid.Make().String(), req, s.now())
	if err := s.repository.Create(req.Username, n); err != nil {
		s.logger.Errorf("error saving note: %v", err)
		return "", fmt.Errorf("failed to save note: %w", err)
	}

	s.logger.Infof("note saved: %s for user %s", n.ID, req.Username)
	return n.ID, nil
}

// ListNotes implements NoteService
func (s *noteService) ListNotes(ctx context.Context, owner string) ([]Note, error) {
	notes, err := s.repository.ListByOwner(owner)
	if err != nil {
		s.logger.Errorf("error listing notes: %v", err)
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	if notes == nil {
		notes = []Note{}
	}
	return notes, nil
}

// DeleteNote implements NoteService
func (s *noteService) DeleteNote(ctx context.Context, owner, noteID string) error {
	if err := s.repository.Delete(owner, noteID); err != nil {
		if errors.Is(err, ErrOwnerNotFound) {
			return ErrOwnerNotFound
		}
		s.logger.Errorf("error deleting note: %v", err)
		return fmt.Errorf("failed to delete note: %w", err)
	}

	s.logger.Infof("note delete requested: %s for user %s", noteID, owner)
	return nil
}

// NewNoteService creates a new note service
func NewNoteService(repository NoteRepository, logger *Logger.Logger) NoteService {
	return &noteService{
		repository: repository,
		logger:     logger,
		now:        time.Now,
	}
}
