// Package notetaker captures one spoken note and turns it into text, translation and media artifacts.
package notetaker

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"

	"github.com/xpanvictor/voicetaker/pkg/Logger"
	"github.com/xpanvictor/voicetaker/pkg/io/capture"
	"github.com/xpanvictor/voicetaker/pkg/io/storage"
	"github.com/xpanvictor/voicetaker/pkg/io/stt"
	"github.com/xpanvictor/voicetaker/pkg/io/translate"
	"github.com/xpanvictor/voicetaker/pkg/io/tts"
	"github.com/xpanvictor/voicetaker/pkg/media"
)

const (
	audioFile    = "audio.wav"
	videoFile    = "video.mp4"
	combinedFile = "combined.mp4"
)

// Orchestrator runs the whole capture pipeline for one note.
type Orchestrator interface {
	TakeNote(ctx context.Context, language string) (Result, error)
}

// Dependencies are the capabilities the pipeline drives. Recorder and Muxer
// may be nil, in which case no combined video is produced.
type Dependencies struct {
	Listener    capture.Listener
	Recorder    media.VideoRecorder
	Muxer       media.Muxer
	Transcriber stt.Transcriber
	Translator  translate.Translator
	Synthesizer tts.Synthesizer
	Store       storage.ObjectStore
	Fs          afero.Fs
}

type Config struct {
	WorkDir        string
	Timeout        time.Duration // per adapter call
	TargetLanguage string
}

type orchestrator struct {
	deps   Dependencies
	cfg    Config
	logger *Logger.Logger
	newID  func() string
}

func NewOrchestrator(deps Dependencies, cfg Config, logger *Logger.Logger) Orchestrator {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	if cfg.TargetLanguage == "" {
		cfg.TargetLanguage = "en"
	}
	if deps.Fs == nil {
		deps.Fs = afero.NewOsFs()
	}
	return &orchestrator{
		deps:   deps,
		cfg:    cfg,
		logger: logger,
		newID:  func() string { return ulid.Make().String() },
	}
}

// TakeNote implements Orchestrator. Adapter failures degrade the result; the
// returned error is only for caller cancellation and workspace failures.
func (o *orchestrator) TakeNote(ctx context.Context, language string) (Result, error) {
	ws, err := newWorkspace(o.deps.Fs, o.cfg.WorkDir)
	if err != nil {
		return Result{}, err
	}
	defer func() {
		if err := ws.Close(); err != nil {
			o.logger.Warnf("failed to clean workspace %s: %v", ws.dir, err)
		}
	}()

	pcm, videoOK, err := o.capture(ctx, ws)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return Result{}, ctxErr
		}
		if errors.Is(err, capture.ErrNoSpeech) {
			o.logger.Info("no speech captured")
			return Result{Outcome: Unintelligible}, nil
		}
		o.logger.Errorf("audio capture failed: %v", err)
		return Result{Outcome: Unavailable}, nil
	}

	text, outcome, err := o.transcribe(ctx, pcm, language)
	if err != nil {
		return Result{}, err
	}
	if outcome != Captured {
		return Result{Outcome: outcome}, nil
	}

	res := Result{OriginalText: text, Outcome: Captured}
	res.TranslatedText = o.translate(ctx, text, language)

	if err := afero.WriteFile(ws.fs, ws.path(audioFile), media.EncodeWAV(pcm), 0o644); err != nil {
		return Result{}, fmt.Errorf("write audio artifact: %w", err)
	}

	combinedOK := videoOK && o.mux(ctx, ws)

	var speech []byte
	if res.TranslatedText != "" {
		speech = o.synthesize(ctx, res.TranslatedText)
	}

	o.upload(ctx, ws, &res, o.newID(), combinedOK, speech)
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	o.logger.Infow("note captured",
		"language", language,
		"translated", res.TranslatedText != "",
		"audio", res.OriginalAudioURL != "",
		"combined", res.CombinedURL != "",
		"speech", res.TranslatedAudioURL != "")
	return res, nil
}

// capture records video alongside the listener. The video goroutine is
// stopped by cancelling its context and joined before the file is touched.
func (o *orchestrator) capture(ctx context.Context, ws *workspace) (media.PCM, bool, error) {
	if o.deps.Recorder == nil {
		pcm, err := o.deps.Listener.Listen(ctx)
		return pcm, false, err
	}

	videoCtx, stopVideo := context.WithCancel(ctx)
	defer stopVideo()

	var g errgroup.Group
	g.Go(func() error {
		return o.deps.Recorder.Record(videoCtx, ws.path(videoFile))
	})

	pcm, listenErr := o.deps.Listener.Listen(ctx)

	stopVideo()
	videoErr := g.Wait()
	if videoErr != nil {
		o.logger.Warnf("video capture failed, combined media will be skipped: %v", videoErr)
	}

	if listenErr != nil {
		return media.PCM{}, false, listenErr
	}
	if pcm.Empty() {
		return media.PCM{}, false, capture.ErrNoSpeech
	}
	return pcm, videoErr == nil && ws.exists(videoFile), nil
}

func (o *orchestrator) transcribe(ctx context.Context, pcm media.PCM, language string) (string, Outcome, error) {
	callCtx, cancel := context.WithTimeout(ctx, o.cfg.Timeout)
	defer cancel()

	text, err := o.deps.Transcriber.Transcribe(callCtx, pcm, language)
	switch {
	case err == nil:
	case ctx.Err() != nil:
		return "", Unavailable, ctx.Err()
	case errors.Is(err, stt.ErrUnintelligible):
		o.logger.Infof("transcription: %v", err)
		return "", Unintelligible, nil
	default:
		o.logger.Errorf("transcription failed: %v", err)
		return "", Unavailable, nil
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", Unintelligible, nil
	}
	return text, Captured, nil
}

func (o *orchestrator) translate(ctx context.Context, text, source string) string {
	callCtx, cancel := context.WithTimeout(ctx, o.cfg.Timeout)
	defer cancel()

	translated, err := o.deps.Translator.Translate(callCtx, text, source, o.cfg.TargetLanguage)
	if err != nil {
		o.logger.Warnf("translation failed, keeping original only: %v", err)
		return ""
	}
	return translated
}

func (o *orchestrator) mux(ctx context.Context, ws *workspace) bool {
	if o.deps.Muxer == nil {
		return false
	}
	callCtx, cancel := context.WithTimeout(ctx, o.cfg.Timeout)
	defer cancel()

	if err := o.deps.Muxer.Mux(callCtx, ws.path(videoFile), ws.path(audioFile), ws.path(combinedFile)); err != nil {
		o.logger.Warnf("mux failed: %v", err)
		return false
	}
	return ws.exists(combinedFile)
}

func (o *orchestrator) synthesize(ctx context.Context, text string) []byte {
	callCtx, cancel := context.WithTimeout(ctx, o.cfg.Timeout)
	defer cancel()

	speech, err := o.deps.Synthesizer.Synthesize(callCtx, text, o.cfg.TargetLanguage)
	if err != nil {
		o.logger.Warnf("speech synthesis failed: %v", err)
		return nil
	}
	return speech
}

// upload sends the artifacts concurrently. A failed upload only clears its own locator.
func (o *orchestrator) upload(ctx context.Context, ws *workspace, res *Result, id string, combined bool, speech []byte) {
	var g errgroup.Group

	g.Go(func() error {
		res.OriginalAudioURL = o.uploadFile(ctx, ws, audioFile, "audio_"+id+".wav", "audio/wav")
		return nil
	})
	if combined {
		g.Go(func() error {
			res.CombinedURL = o.uploadFile(ctx, ws, combinedFile, "combined_"+id+".mp4", "video/mp4")
			return nil
		})
	}
	if len(speech) > 0 {
		g.Go(func() error {
			res.TranslatedAudioURL = o.put(ctx, "translated_audio_"+id+".mp3", bytes.NewReader(speech), "audio/mpeg")
			return nil
		})
	}

	_ = g.Wait()
}

func (o *orchestrator) uploadFile(ctx context.Context, ws *workspace, name, key, contentType string) string {
	f, err := ws.fs.Open(ws.path(name))
	if err != nil {
		o.logger.Errorf("open %s: %v", name, err)
		return ""
	}
	defer f.Close()
	return o.put(ctx, key, f, contentType)
}

func (o *orchestrator) put(ctx context.Context, key string, body io.Reader, contentType string) string {
	callCtx, cancel := context.WithTimeout(ctx, o.cfg.Timeout)
	defer cancel()

	locator, err := o.deps.Store.Upload(callCtx, key, body, contentType)
	if err != nil {
		o.logger.Errorf("upload %s failed: %v", key, err)
		return ""
	}
	return locator
}
