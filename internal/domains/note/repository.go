package note

import (
	"time"
)

// Note is one captured voice note (pure domain model)
// @Description A transcribed voice note with its media locators
type Note struct {
	ID                 string    `json:"note_id" example:"01J9Z3K6V8Q4M2N7P5R1T0W3XY"`
	OriginalNote       string    `json:"original_note" example:"vanakkam, naalai sandhippom"`
	TranslatedNote     string    `json:"translated_note" example:"hello, see you tomorrow"`
	OriginalAudioURL   *string   `json:"original_audio_url" example:"https://notesaver.s3.amazonaws.com/audio_01J9Z3K6V8Q4M2N7P5R1T0W3XY.wav"`
	TranslatedAudioURL *string   `json:"translated_audio_url" example:"https://notesaver.s3.amazonaws.com/translated_audio_01J9Z3K6V8Q4M2N7P5R1T0W3XY.mp3"`
	CombinedURL        *string   `json:"combined_url" example:"https://notesaver.s3.amazonaws.com/combined_01J9Z3K6V8Q4M2N7P5R1T0W3XY.mp4"`
	CreatedAt          time.Time `json:"created_at" example:"2024-01-01T12:00:00Z"`
}

// SaveNoteRequest represents the data needed to store a note for a user
// @Description Request body for saving a note
type SaveNoteRequest struct {
	Username           string  `json:"username" binding:"required" example:"alice"`
	OriginalNote       string  `json:"original_note" binding:"required" example:"hola"`
	TranslatedNote     string  `json:"translated_note" example:"hello"`
	OriginalAudioURL   *string `json:"original_audio_url,omitempty"`
	TranslatedAudioURL *string `json:"translated_audio_url,omitempty"`
	CombinedURL        *string `json:"combined_url,omitempty"`
}

// NewNote builds the record for a request; the caller assigns the ID.
func NewNote(id string, req SaveNoteRequest, now time.Time) *Note {
	return &Note{
		ID:                 id,
		OriginalNote:       req.OriginalNote,
		TranslatedNote:     req.TranslatedNote,
		OriginalAudioURL:   req.OriginalAudioURL,
		TranslatedAudioURL: req.TranslatedAudioURL,
		CombinedURL:        req.CombinedURL,
		CreatedAt:          now,
	}
}

// NoteRepository is a keyed table of per-owner note collections.
type NoteRepository interface {
	// Create appends to the owner's collection, creating it when absent
	Create(owner string, note *Note) error

	// ListByOwner returns the owner's notes in insertion order; nil for unknown owners
	ListByOwner(owner string) ([]Note, error)

	// Delete removes the note with the given ID. ErrOwnerNotFound when the
	// owner never had a collection; a missing ID is not an error.
	Delete(owner, noteID string) error
}
