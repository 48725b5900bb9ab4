package openai

import (
	"context"
	"fmt"
	"io"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/xpanvictor/voicetaker/pkg/Logger"
	"github.com/xpanvictor/voicetaker/pkg/io/tts"
)

type Synthesizer struct {
	client openai.Client
	voice  openai.AudioSpeechNewParamsVoice
	logger *Logger.Logger
}

var _ tts.Synthesizer = (*Synthesizer)(nil)

func New(voice string, logger *Logger.Logger, opts ...option.RequestOption) *Synthesizer {
	v := openai.AudioSpeechNewParamsVoiceAlloy
	if voice != "" {
		v = openai.AudioSpeechNewParamsVoice(voice)
	}
	return &Synthesizer{client: openai.NewClient(opts...), voice: v, logger: logger}
}

// Synthesize ignores language: tts-1 infers it from the text.
func (s *Synthesizer) Synthesize(ctx context.Context, text, language string) ([]byte, error) {
	resp, err := s.client.Audio.Speech.New(ctx, openai.AudioSpeechNewParams{
		Input:          text,
		Model:          openai.SpeechModelTTS1,
		Voice:          s.voice,
		ResponseFormat: openai.AudioSpeechNewParamsResponseFormatMP3,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", tts.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read speech body: %v", tts.ErrUnavailable, err)
	}
	s.logger.Debugf("openai synthesized %d bytes", len(audio))
	return audio, nil
}
