package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/go-redis/redis"
	"github.com/spf13/afero"
	"gorm.io/gorm"

	"github.com/xpanvictor/voicetaker/internal/config"
	"github.com/xpanvictor/voicetaker/internal/domains/feedback"
	"github.com/xpanvictor/voicetaker/internal/domains/note"
	"github.com/xpanvictor/voicetaker/internal/domains/notetaker"
	"github.com/xpanvictor/voicetaker/internal/domains/user"
	"github.com/xpanvictor/voicetaker/internal/handlers"
	feedbackRepo "github.com/xpanvictor/voicetaker/internal/repository/feedback"
	userRepo "github.com/xpanvictor/voicetaker/internal/repository/user"
	"github.com/xpanvictor/voicetaker/internal/server"
	"github.com/xpanvictor/voicetaker/pkg/Logger"
	"github.com/xpanvictor/voicetaker/pkg/io/capture"
	"github.com/xpanvictor/voicetaker/pkg/io/storage"
	"github.com/xpanvictor/voicetaker/pkg/io/stt/vad"
	"github.com/xpanvictor/voicetaker/pkg/media"
)

// App represents the API server with all its dependencies
type App struct {
	Config *config.Settings
	Logger *Logger.Logger
	DB     *gorm.DB
	RC     *redis.Client
	Fs     afero.Fs
	// repos
	NoteRepo     note.NoteRepository
	UserRepo     user.UserRepository
	FeedbackRepo feedback.FeedbackRepository
	ServerDeps   server.Dependencies
}

// NewApp wires repositories and services. rc may be nil unless notes.driver is redis.
func NewApp(cfg *config.Settings, logger *Logger.Logger, db *gorm.DB, rc *redis.Client) (*App, error) {
	app := &App{
		Config: cfg,
		Logger: logger,
		DB:     db,
		RC:     rc,
		Fs:     afero.NewOsFs(),
	}

	if err := app.setupDependencies(); err != nil {
		return nil, err
	}

	return app, nil
}

func (a *App) setupDependencies() error {
	factory := NewAdapterFactory(a.Config, a.Logger)

	notes, err := factory.NoteRepository(a.DB, a.RC)
	if err != nil {
		return err
	}
	a.NoteRepo = notes
	a.UserRepo = userRepo.NewGormUserRepo(a.DB)
	a.FeedbackRepo = feedbackRepo.NewGormFeedbackRepo(a.DB)

	a.ServerDeps = server.NewServerDependencies(
		note.NewNoteService(a.NoteRepo, a.Logger.Named("notes")),
		user.NewUserService(a.UserRepo, a.Logger.Named("users"), a.Config.Auth.UniformLoginErrors),
		feedback.NewFeedbackService(a.FeedbackRepo, a.Logger.Named("feedback")),
		a.healthChecks(),
		a.Fs,
		a.Logger,
		a.Config,
	)
	return nil
}

func (a *App) healthChecks() map[string]handlers.HealthCheck {
	checks := map[string]handlers.HealthCheck{
		"database": func(ctx context.Context) error {
			sqlDB, err := a.DB.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	}
	if a.RC != nil {
		checks["redis"] = func(ctx context.Context) error {
			return a.RC.Ping().Err()
		}
	}
	return checks
}

// GetServerDependencies returns the server dependencies
func (a *App) GetServerDependencies() server.Dependencies {
	return a.ServerDeps
}

// NoteTaker is the client side pipeline plus what it needs released afterwards.
type NoteTaker struct {
	notetaker.Orchestrator
	Store   storage.ObjectStore
	closers []io.Closer
}

func (n *NoteTaker) Close() error {
	var errs []error
	for _, c := range n.closers {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}

// NewNoteTaker builds the capture pipeline from config: microphone, camera,
// ffmpeg and the configured speech, translation and storage providers.
func NewNoteTaker(ctx context.Context, cfg *config.Settings, logger *Logger.Logger, fs afero.Fs) (*NoteTaker, error) {
	factory := NewAdapterFactory(cfg, logger)
	cc := cfg.Capture

	transcriber, err := factory.Transcriber()
	if err != nil {
		return nil, err
	}
	synth, err := factory.Synthesizer()
	if err != nil {
		return nil, err
	}
	store, err := factory.ObjectStore(ctx, fs)
	if err != nil {
		return nil, err
	}
	translator, closer, err := factory.Translator(ctx)
	if err != nil {
		return nil, err
	}

	vadCfg := vad.DefaultVADConfig()
	vadCfg.SampleRate = int32(cc.SampleRate)
	vadCfg.MinSilenceMs = int(cc.Pause.Milliseconds())
	detector := vad.NewEnergyVAD(vadCfg, logger.Named("vad"))

	listenCfg := capture.DefaultConfig()
	listenCfg.Pause = cc.Pause
	listenCfg.WaitTimeout = cc.WaitTimeout
	listenCfg.MaxPhrase = cc.MaxPhrase
	listenCfg.Calibration = cc.Calibration

	mic := media.NewMicrophone(cc.FFmpegPath, cc.AudioFormat, cc.AudioDevice, cc.SampleRate)
	listener := capture.NewPhraseListener(mic, detector, listenCfg, logger.Named("capture"))

	deps := notetaker.Dependencies{
		Listener:    listener,
		Muxer:       media.NewFFmpegMuxer(cc.FFmpegPath, logger.Named("mux")),
		Transcriber: transcriber,
		Translator:  translator,
		Synthesizer: synth,
		Store:       store,
		Fs:          fs,
	}
	if cc.VideoDevice != "" {
		deps.Recorder = media.NewFFmpegRecorder(cc.FFmpegPath, cc.VideoFormat, cc.VideoDevice, logger.Named("video"))
	}

	orch := notetaker.NewOrchestrator(deps, notetaker.Config{
		WorkDir:        cc.WorkDir,
		Timeout:        cfg.Adapters.Timeout,
		TargetLanguage: cfg.Translation.Target,
	}, logger.Named("notetaker"))

	return &NoteTaker{
		Orchestrator: orch,
		Store:        store,
		closers:      []io.Closer{closer, detector},
	}, nil
}

// NewPlaybackStore is the object store alone, for minting playback URLs.
func NewPlaybackStore(ctx context.Context, cfg *config.Settings, logger *Logger.Logger, fs afero.Fs) (storage.ObjectStore, error) {
	store, err := NewAdapterFactory(cfg, logger).ObjectStore(ctx, fs)
	if err != nil {
		return nil, fmt.Errorf("storage: %w", err)
	}
	return store, nil
}
