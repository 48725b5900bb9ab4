package tts

import (
	"context"
	"errors"
)

var ErrUnavailable = errors.New("speech synthesis service unavailable")

// Synthesizer renders text as speech and returns an mp3 payload.
type Synthesizer interface {
	Synthesize(ctx context.Context, text, language string) ([]byte, error)
}
