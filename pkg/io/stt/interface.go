package stt

import (
	"context"
	"errors"

	"github.com/xpanvictor/voicetaker/pkg/media"
)

var (
	// ErrUnintelligible means the service answered but found no speech it could transcribe.
	ErrUnintelligible = errors.New("could not understand audio")
	// ErrUnavailable means the recognition service could not be reached or failed.
	ErrUnavailable = errors.New("speech recognition service unavailable")
)

// Transcriber converts captured speech to text in the given source language.
type Transcriber interface {
	Transcribe(ctx context.Context, audio media.PCM, language string) (string, error)
}
