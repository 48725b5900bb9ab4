package openai

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/xpanvictor/voicetaker/pkg/Logger"
	"github.com/xpanvictor/voicetaker/pkg/io/stt"
	"github.com/xpanvictor/voicetaker/pkg/media"
)

// Transcriber uses the hosted whisper-1 model.
type Transcriber struct {
	client openai.Client
	logger *Logger.Logger
}

var _ stt.Transcriber = (*Transcriber)(nil)

func New(logger *Logger.Logger, opts ...option.RequestOption) *Transcriber {
	return &Transcriber{
		client: openai.NewClient(opts...),
		logger: logger,
	}
}

func (t *Transcriber) Transcribe(ctx context.Context, audio media.PCM, language string) (string, error) {
	if audio.Empty() {
		return "", stt.ErrUnintelligible
	}

	params := openai.AudioTranscriptionNewParams{
		File:  openai.File(bytes.NewReader(media.EncodeWAV(audio)), "audio.wav", "audio/wav"),
		Model: openai.AudioModelWhisper1,
	}
	if language != "" {
		params.Language = openai.String(language)
	}

	res, err := t.client.Audio.Transcriptions.New(ctx, params)
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusBadRequest {
			t.logger.Debugf("openai rejected audio: %v", err)
			return "", stt.ErrUnintelligible
		}
		if errors.Is(err, context.Canceled) {
			return "", err
		}
		return "", fmt.Errorf("%w: %v", stt.ErrUnavailable, err)
	}

	text := strings.TrimSpace(res.Text)
	if text == "" {
		return "", stt.ErrUnintelligible
	}
	return text, nil
}
