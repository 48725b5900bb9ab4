package main

import (
	"bytes"
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xpanvictor/voicetaker/internal/client"
	"github.com/xpanvictor/voicetaker/internal/config"
	"github.com/xpanvictor/voicetaker/internal/database"
	"github.com/xpanvictor/voicetaker/internal/domains/feedback"
	"github.com/xpanvictor/voicetaker/internal/domains/note"
	"github.com/xpanvictor/voicetaker/internal/domains/notetaker"
	"github.com/xpanvictor/voicetaker/internal/domains/user"
	"github.com/xpanvictor/voicetaker/internal/handlers"
	feedbackRepo "github.com/xpanvictor/voicetaker/internal/repository/feedback"
	noteRepo "github.com/xpanvictor/voicetaker/internal/repository/note"
	userRepo "github.com/xpanvictor/voicetaker/internal/repository/user"
	"github.com/xpanvictor/voicetaker/pkg/Logger"
	"github.com/xpanvictor/voicetaker/pkg/io/storage"
)

type fakeTaker struct {
	res      notetaker.Result
	language string
	closed   bool
}

func (f *fakeTaker) TakeNote(ctx context.Context, language string) (notetaker.Result, error) {
	f.language = language
	return f.res, nil
}

func (f *fakeTaker) Close() error {
	f.closed = true
	return nil
}

func setupCLI(t *testing.T) afero.Fs {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent), TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.MigrateDB(db))

	log := Logger.NewNop()
	r := gin.New()
	api := r.Group("")
	handlers.NewNoteHandler(note.NewNoteService(noteRepo.NewMemoryNoteRepo(), log), log).RegisterNoteRoutes(api)
	handlers.NewUserHandler(user.NewUserService(userRepo.NewGormUserRepo(db), log, false), log).RegisterUserRoutes(api)
	handlers.NewFeedbackHandler(feedback.NewFeedbackService(feedbackRepo.NewGormFeedbackRepo(db), log), log).RegisterFeedbackRoutes(api)
	srv := httptest.NewServer(r)

	cfg, err := config.LoadFrom(viper.New(), t.TempDir())
	require.NoError(t, err)
	cfg.Storage.Driver = "local"
	cfg.Storage.LocalDir = "/media"
	cfg.Storage.PublicURL = "http://localhost:8000/media"

	fs := afero.NewMemMapFs()
	env = &cliEnv{
		cfg:      cfg,
		logger:   log,
		fs:       fs,
		api:      client.New(srv.URL, nil, log),
		sessions: client.NewSessionStore(fs, "/home/alice/.voicetaker/session.yaml"),
	}

	prevTaker, prevStore := buildNoteTaker, buildPlaybackStore
	t.Cleanup(func() {
		env = nil
		buildNoteTaker, buildPlaybackStore = prevTaker, prevStore
		srv.Close()
		sqlDB.Close()
	})
	return fs
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	authUsername, authPassword, authConfirm = "", "", ""
	noteLanguage, listJSON, playTrack = "", false, "original"

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestSignupLoginLogout(t *testing.T) {
	setupCLI(t)

	_, err := run(t, "signup", "-u", "alice", "-p", "pw", "--confirm", "nope")
	assert.EqualError(t, err, "Please enter your password correctly!")

	out, err := run(t, "signup", "-u", "alice", "-p", "pw", "--confirm", "pw")
	require.NoError(t, err)
	assert.Contains(t, out, "Sign up successful! Please log in.")

	_, err = run(t, "login", "-u", "bob", "-p", "pw")
	assert.EqualError(t, err, "User not found!")

	_, err = run(t, "login", "-u", "alice", "-p", "wrong")
	assert.EqualError(t, err, "Incorrect password. Please try again.")

	out, err = run(t, "login", "-u", "alice", "-p", "pw")
	require.NoError(t, err)
	assert.Contains(t, out, "Login successful!")

	username, err := env.sessions.Require()
	require.NoError(t, err)
	assert.Equal(t, "alice", username)

	_, err = run(t, "logout")
	require.NoError(t, err)
	_, err = run(t, "notes", "list")
	assert.EqualError(t, err, "Please log in to access the notes page.")
}

func TestTakeListPlayDelete(t *testing.T) {
	fs := setupCLI(t)
	require.NoError(t, env.sessions.Login("alice"))

	store, err := storage.NewLocalStore(fs, "/media", "http://localhost:8000/media", Logger.NewNop())
	require.NoError(t, err)
	locator, err := store.Upload(context.Background(), "audio_01HZX.wav", bytes.NewReader([]byte("RIFF")), "audio/wav")
	require.NoError(t, err)

	taker := &fakeTaker{res: notetaker.Result{
		OriginalText:     "hola",
		TranslatedText:   "hello",
		OriginalAudioURL: locator,
		Outcome:          notetaker.Captured,
	}}
	buildNoteTaker = func(context.Context, *config.Settings, *Logger.Logger, afero.Fs) (noteTaker, error) {
		return taker, nil
	}
	buildPlaybackStore = func(context.Context, *config.Settings, *Logger.Logger, afero.Fs) (storage.ObjectStore, error) {
		return store, nil
	}

	_, err = run(t, "note", "take", "--language", "xx")
	assert.Error(t, err)

	out, err := run(t, "note", "take", "--language", "ES")
	require.NoError(t, err)
	assert.Equal(t, "es", taker.language)
	assert.True(t, taker.closed)
	assert.Contains(t, out, "You said: hola")
	assert.Contains(t, out, "Translated: hello")
	assert.Contains(t, out, "Note saved successfully!")

	notes, err := env.api.ListNotes(context.Background(), "alice")
	require.NoError(t, err)
	require.Len(t, notes, 1)
	id := notes[0].ID

	out, err = run(t, "notes", "list")
	require.NoError(t, err)
	assert.Contains(t, out, id)
	assert.Contains(t, out, "Original Note: hola")

	out, err = run(t, "notes", "play", id)
	require.NoError(t, err)
	assert.Contains(t, out, "audio_01HZX.wav")

	_, err = run(t, "notes", "play", id, "--track", "combined")
	assert.EqualError(t, err, "Combined video not available.")

	_, err = run(t, "notes", "play", id, "--track", "subtitles")
	assert.Error(t, err)

	out, err = run(t, "notes", "delete", id)
	require.NoError(t, err)
	assert.Contains(t, out, "Note deleted successfully!")

	out, err = run(t, "notes", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No notes yet.")
}

func TestTakeUnintelligibleSavesNothing(t *testing.T) {
	setupCLI(t)
	require.NoError(t, env.sessions.Login("alice"))
	buildNoteTaker = func(context.Context, *config.Settings, *Logger.Logger, afero.Fs) (noteTaker, error) {
		return &fakeTaker{res: notetaker.Result{Outcome: notetaker.Unintelligible}}, nil
	}

	_, err := run(t, "note", "take", "-l", "ta")
	assert.EqualError(t, err, "Sorry, I could not understand what you said.")

	notes, err := env.api.ListNotes(context.Background(), "alice")
	require.NoError(t, err)
	assert.Empty(t, notes)
}

func TestDeleteForUnknownUser(t *testing.T) {
	setupCLI(t)
	require.NoError(t, env.sessions.Login("ghost"))

	_, err := run(t, "notes", "delete", "01HZX")
	assert.EqualError(t, err, "User not found!")
}

func TestFeedback(t *testing.T) {
	setupCLI(t)

	_, err := run(t, "feedback", "great", "app")
	assert.EqualError(t, err, "Please log in to submit feedback.")

	require.NoError(t, env.sessions.Login("alice"))
	_, err = run(t, "feedback", "   ")
	assert.EqualError(t, err, "Feedback cannot be empty!")

	out, err := run(t, "feedback", "great", "app")
	require.NoError(t, err)
	assert.Contains(t, out, "Feedback submitted successfully!")
}

func TestTrackLocator(t *testing.T) {
	u := "https://notesaver.test/translated_audio_x.mp3"
	n := &note.Note{TranslatedAudioURL: &u, CreatedAt: time.Now()}

	loc, label, err := trackLocator(n, "translated")
	require.NoError(t, err)
	assert.Equal(t, u, loc)
	assert.Equal(t, "Translated audio", label)

	loc, _, err = trackLocator(n, "original")
	require.NoError(t, err)
	assert.Empty(t, loc)
}
