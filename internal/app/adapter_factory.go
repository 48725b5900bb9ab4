package app

import (
	"context"
	"fmt"
	"io"

	"github.com/go-redis/redis"
	"github.com/openai/openai-go/option"
	"github.com/spf13/afero"
	"gorm.io/gorm"

	"github.com/xpanvictor/voicetaker/internal/config"
	"github.com/xpanvictor/voicetaker/internal/domains/note"
	noteRepo "github.com/xpanvictor/voicetaker/internal/repository/note"
	"github.com/xpanvictor/voicetaker/pkg/Logger"
	"github.com/xpanvictor/voicetaker/pkg/io/storage"
	"github.com/xpanvictor/voicetaker/pkg/io/stt"
	sttOpenAI "github.com/xpanvictor/voicetaker/pkg/io/stt/openai"
	"github.com/xpanvictor/voicetaker/pkg/io/stt/whisper"
	"github.com/xpanvictor/voicetaker/pkg/io/translate"
	"github.com/xpanvictor/voicetaker/pkg/io/translate/gemini"
	"github.com/xpanvictor/voicetaker/pkg/io/translate/ollama"
	translateOpenAI "github.com/xpanvictor/voicetaker/pkg/io/translate/openai"
	"github.com/xpanvictor/voicetaker/pkg/io/tts"
	"github.com/xpanvictor/voicetaker/pkg/io/tts/piper"
	ttsOpenAI "github.com/xpanvictor/voicetaker/pkg/io/tts/openai"
)

// AdapterFactory builds the configured provider for each external capability.
type AdapterFactory struct {
	cfg    *config.Settings
	logger *Logger.Logger
}

func NewAdapterFactory(cfg *config.Settings, logger *Logger.Logger) *AdapterFactory {
	return &AdapterFactory{cfg: cfg, logger: logger}
}

func (f *AdapterFactory) openAIOptions() []option.RequestOption {
	opts := []option.RequestOption{option.WithMaxRetries(2)}
	if f.cfg.OpenAI.APIKey != "" {
		opts = append(opts, option.WithAPIKey(f.cfg.OpenAI.APIKey))
	}
	if f.cfg.OpenAI.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(f.cfg.OpenAI.BaseURL))
	}
	return opts
}

func (f *AdapterFactory) Transcriber() (stt.Transcriber, error) {
	switch f.cfg.STT.Provider {
	case "", "whisper":
		f.logger.Infof("stt: whisper server at %s", f.cfg.STT.WhisperURL)
		return whisper.NewWhisperClient(f.cfg.STT.WhisperURL, f.logger.Named("stt.whisper")), nil
	case "openai":
		f.logger.Info("stt: openai whisper-1")
		return sttOpenAI.New(f.logger.Named("stt.openai"), f.openAIOptions()...), nil
	default:
		return nil, fmt.Errorf("unknown stt provider %q", f.cfg.STT.Provider)
	}
}

// Translator may hold a connection; the returned closer releases it.
func (f *AdapterFactory) Translator(ctx context.Context) (translate.Translator, io.Closer, error) {
	tc := f.cfg.Translation
	switch tc.Provider {
	case "", "gemini":
		t, err := gemini.New(ctx, gemini.Config{APIKey: tc.GeminiAPIKey, ModelName: tc.GeminiModel}, f.logger.Named("translate.gemini"))
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create gemini translator: %w", err)
		}
		f.logger.Infof("translation: gemini %s", tc.GeminiModel)
		return t, t, nil
	case "openai":
		f.logger.Infof("translation: openai %s", tc.OpenAIModel)
		return translateOpenAI.New(tc.OpenAIModel, f.logger.Named("translate.openai"), f.openAIOptions()...), nopCloser{}, nil
	case "ollama":
		if len(tc.OllamaURLs) == 0 {
			return nil, nil, fmt.Errorf("translation.ollama_urls is empty")
		}
		farm := ollama.NewFarm(tc.OllamaURLs, f.logger.Named("translate.ollama"))
		f.logger.Infof("translation: ollama %s across %d host(s)", tc.OllamaModel, len(tc.OllamaURLs))
		return ollama.New(farm, tc.OllamaModel, f.logger.Named("translate.ollama")), nopCloser{}, nil
	default:
		return nil, nil, fmt.Errorf("unknown translation provider %q", tc.Provider)
	}
}

func (f *AdapterFactory) Synthesizer() (tts.Synthesizer, error) {
	switch f.cfg.TTS.Provider {
	case "", "piper":
		p := piper.New(f.cfg.TTS.PiperURL, f.cfg.TTS.Voice, f.logger.Named("tts.piper"))
		p.FFmpeg = f.cfg.Capture.FFmpegPath
		p.Voices = f.cfg.TTS.Voices
		f.logger.Infof("tts: piper at %s", f.cfg.TTS.PiperURL)
		return p, nil
	case "openai":
		f.logger.Info("tts: openai speech")
		return ttsOpenAI.New(f.cfg.TTS.Voice, f.logger.Named("tts.openai"), f.openAIOptions()...), nil
	default:
		return nil, fmt.Errorf("unknown tts provider %q", f.cfg.TTS.Provider)
	}
}

// ObjectStore picks S3 or a directory on fs for note media.
func (f *AdapterFactory) ObjectStore(ctx context.Context, fs afero.Fs) (storage.ObjectStore, error) {
	sc := f.cfg.Storage
	switch sc.Driver {
	case "", "s3":
		s, err := storage.NewS3Store(ctx, storage.S3Config{
			Bucket:    sc.Bucket,
			Region:    sc.Region,
			Endpoint:  sc.Endpoint,
			PathStyle: sc.PathStyle,
		}, f.logger.Named("storage.s3"))
		if err != nil {
			return nil, err
		}
		f.logger.Infof("storage: s3 bucket %s", sc.Bucket)
		return s, nil
	case "local":
		f.logger.Infof("storage: local dir %s", sc.LocalDir)
		return storage.NewLocalStore(fs, sc.LocalDir, sc.PublicURL, f.logger.Named("storage.local"))
	default:
		return nil, fmt.Errorf("unknown storage driver %q", sc.Driver)
	}
}

// NoteRepository selects the note collection backend.
func (f *AdapterFactory) NoteRepository(db *gorm.DB, rc *redis.Client) (note.NoteRepository, error) {
	switch f.cfg.Notes.Driver {
	case "", "memory":
		f.logger.Warn("notes: in-memory store, notes are lost on restart")
		return noteRepo.NewMemoryNoteRepo(), nil
	case "redis":
		if rc == nil {
			return nil, fmt.Errorf("notes.driver=redis needs a redis connection")
		}
		return noteRepo.NewRedisNoteRepo(rc), nil
	case "sql":
		if db == nil {
			return nil, fmt.Errorf("notes.driver=sql needs a database connection")
		}
		return noteRepo.NewGormNoteRepo(db), nil
	default:
		return nil, fmt.Errorf("unknown notes driver %q", f.cfg.Notes.Driver)
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
