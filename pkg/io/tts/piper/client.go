package piper

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/xpanvictor/voicetaker/pkg/Logger"
	"github.com/xpanvictor/voicetaker/pkg/io/tts"
	"github.com/xpanvictor/voicetaker/pkg/media"
)

type Piper struct {
	BaseURL string            // e.g. "http://tts:5000"
	Client  *http.Client      // inject; default if nil
	Voice   string            // default voice
	Voices  map[string]string // per-language voice override, keyed by ISO code
	FFmpeg  string            // binary used for the wav -> mp3 step
	Timeout time.Duration     // request timeout
	logger  *Logger.Logger
}

var _ tts.Synthesizer = (*Piper)(nil)

func New(baseURL, voice string, logger *Logger.Logger) *Piper {
	return &Piper{BaseURL: strings.TrimRight(baseURL, "/"), Voice: voice, logger: logger}
}

// DoTTS streams the synthesized audio body; the caller must close it.
func (p *Piper) DoTTS(ctx context.Context, text string, optVoice string) (io.ReadCloser, string, error) {
	if text == "" {
		return nil, "", fmt.Errorf("empty text")
	}
	voice := p.Voice
	if optVoice != "" {
		voice = optVoice
	}

	// rhasspy/wyoming-piper HTTP: GET /api/text-to-speech?text=...&voice=...
	u, err := url.Parse(p.BaseURL + "/api/text-to-speech")
	if err != nil {
		return nil, "", err
	}
	q := u.Query()
	q.Set("text", text)
	if voice != "" {
		q.Set("voice", voice)
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, "", err
	}
	req.Header.Set("Accept", "audio/wav")

	hc := p.Client
	if hc == nil {
		hc = &http.Client{}
	}
	timeout := p.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	hc = &http.Client{Transport: hc.Transport, Timeout: timeout}

	start := time.Now()
	resp, err := hc.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("%w: tts http request failed: %v", tts.ErrUnavailable, err)
	}
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, "", fmt.Errorf("%w: tts http %d: %s (dur=%s)", tts.ErrUnavailable, resp.StatusCode, string(b), time.Since(start))
	}
	return resp.Body, ifEmpty(resp.Header.Get("Content-Type"), "audio/wav"), nil
}

// Synthesize implements tts.Synthesizer.
func (p *Piper) Synthesize(ctx context.Context, text, language string) ([]byte, error) {
	body, ct, err := p.DoTTS(ctx, text, p.Voices[language])
	if err != nil {
		return nil, err
	}
	defer body.Close()

	mp3, err := media.ConvertToMP3(ctx, p.FFmpeg, body, ct)
	if err != nil {
		return nil, fmt.Errorf("piper output: %w", err)
	}
	p.logger.Debugf("piper synthesized %d bytes of mp3 from %s", len(mp3), ct)
	return mp3, nil
}

func ifEmpty(s, d string) string {
	if s == "" {
		return d
	}
	return s
}
