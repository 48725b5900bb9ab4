package notetaker

import (
	"github.com/xpanvictor/voicetaker/internal/domains/note"
)

// Outcome tells the caller whether a note was produced.
type Outcome int

const (
	Captured Outcome = iota
	Unintelligible
	Unavailable
)

func (o Outcome) String() string {
	switch o {
	case Captured:
		return "captured"
	case Unintelligible:
		return "unintelligible"
	case Unavailable:
		return "unavailable"
	default:
		return "unknown"
	}
}

// Result of one note-taking call. Empty strings mean the artifact was not produced.
type Result struct {
	OriginalText       string
	TranslatedText     string
	OriginalAudioURL   string
	TranslatedAudioURL string
	CombinedURL        string
	Outcome            Outcome
}

// HasNote reports whether the result carries something worth saving.
func (r Result) HasNote() bool {
	return r.Outcome == Captured && r.OriginalText != ""
}

// SaveRequest turns the result into the store's save payload for username.
func (r Result) SaveRequest(username string) note.SaveNoteRequest {
	return note.SaveNoteRequest{
		Username:           username,
		OriginalNote:       r.OriginalText,
		TranslatedNote:     r.TranslatedText,
		OriginalAudioURL:   optional(r.OriginalAudioURL),
		TranslatedAudioURL: optional(r.TranslatedAudioURL),
		CombinedURL:        optional(r.CombinedURL),
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
