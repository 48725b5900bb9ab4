package notetaker

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/xpanvictor/voicetaker/pkg/Logger"
	"github.com/xpanvictor/voicetaker/pkg/io/capture"
	"github.com/xpanvictor/voicetaker/pkg/io/storage"
	"github.com/xpanvictor/voicetaker/pkg/io/stt"
	"github.com/xpanvictor/voicetaker/pkg/io/translate"
	"github.com/xpanvictor/voicetaker/pkg/io/tts"
	"github.com/xpanvictor/voicetaker/pkg/media"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeListener struct {
	pcm media.PCM
	err error
}

func (f *fakeListener) Listen(ctx context.Context) (media.PCM, error) {
	if err := ctx.Err(); err != nil {
		return media.PCM{}, err
	}
	return f.pcm, f.err
}

// fakeRecorder writes a stub video and holds until stopped, like ffmpeg does.
type fakeRecorder struct {
	fs      afero.Fs
	err     error
	stopped bool
}

func (f *fakeRecorder) Record(ctx context.Context, path string) error {
	if f.err != nil {
		return f.err
	}
	if err := afero.WriteFile(f.fs, path, []byte("video"), 0o644); err != nil {
		return err
	}
	<-ctx.Done()
	f.stopped = true
	return nil
}

type fakeMuxer struct {
	fs    afero.Fs
	err   error
	calls int
}

func (f *fakeMuxer) Mux(ctx context.Context, videoPath, audioPath, outPath string) error {
	f.calls++
	if f.err != nil {
		return f.err
	}
	return afero.WriteFile(f.fs, outPath, []byte("combined"), 0o644)
}

type fakeTranscriber struct {
	text     string
	err      error
	language string
}

func (f *fakeTranscriber) Transcribe(ctx context.Context, audio media.PCM, language string) (string, error) {
	f.language = language
	return f.text, f.err
}

type fakeTranslator struct {
	out            string
	err            error
	source, target string
}

func (f *fakeTranslator) Translate(ctx context.Context, text, source, target string) (string, error) {
	f.source, f.target = source, target
	return f.out, f.err
}

type fakeSynth struct {
	out   []byte
	err   error
	calls int
}

func (f *fakeSynth) Synthesize(ctx context.Context, text, language string) ([]byte, error) {
	f.calls++
	return f.out, f.err
}

type fakeStore struct {
	mu         sync.Mutex
	objects    map[string][]byte
	failPrefix string
}

func (f *fakeStore) Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error) {
	if f.failPrefix != "" && strings.HasPrefix(key, f.failPrefix) {
		return "", errors.New("bucket on fire")
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.objects == nil {
		f.objects = map[string][]byte{}
	}
	f.objects[key] = data
	return "https://notesaver.test/" + key, nil
}

func (f *fakeStore) PresignURL(ctx context.Context, locator string, ttl time.Duration) (string, error) {
	return locator + "?expires=" + ttl.String(), nil
}

var _ storage.ObjectStore = (*fakeStore)(nil)

func (f *fakeStore) keys() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var keys []string
	for k := range f.objects {
		keys = append(keys, k)
	}
	return keys
}

type harness struct {
	fs          afero.Fs
	listener    *fakeListener
	recorder    *fakeRecorder
	muxer       *fakeMuxer
	transcriber *fakeTranscriber
	translator  *fakeTranslator
	synth       *fakeSynth
	store       *fakeStore
}

func newHarness() *harness {
	fs := afero.NewMemMapFs()
	return &harness{
		fs:          fs,
		listener:    &fakeListener{pcm: media.PCM{Data: make([]byte, 3200), SampleRate: 16000, Channels: 1}},
		recorder:    &fakeRecorder{fs: fs},
		muxer:       &fakeMuxer{fs: fs},
		transcriber: &fakeTranscriber{text: "vanakkam"},
		translator:  &fakeTranslator{out: "hello"},
		synth:       &fakeSynth{out: []byte("ID3 speech")},
		store:       &fakeStore{},
	}
}

func (h *harness) orchestrator() *orchestrator {
	o := NewOrchestrator(Dependencies{
		Listener:    h.listener,
		Recorder:    h.recorder,
		Muxer:       h.muxer,
		Transcriber: h.transcriber,
		Translator:  h.translator,
		Synthesizer: h.synth,
		Store:       h.store,
		Fs:          h.fs,
	}, Config{WorkDir: "/work"}, Logger.NewNop()).(*orchestrator)
	o.newID = func() string { return "01HZX" }
	return o
}

func (h *harness) assertWorkspaceClean(t *testing.T) {
	t.Helper()
	entries, err := afero.ReadDir(h.fs, "/work")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestTakeNoteProducesAllArtifacts(t *testing.T) {
	h := newHarness()

	res, err := h.orchestrator().TakeNote(context.Background(), "ta")
	require.NoError(t, err)

	assert.Equal(t, Captured, res.Outcome)
	assert.Equal(t, "vanakkam", res.OriginalText)
	assert.Equal(t, "hello", res.TranslatedText)
	assert.Equal(t, "https://notesaver.test/audio_01HZX.wav", res.OriginalAudioURL)
	assert.Equal(t, "https://notesaver.test/combined_01HZX.mp4", res.CombinedURL)
	assert.Equal(t, "https://notesaver.test/translated_audio_01HZX.mp3", res.TranslatedAudioURL)

	assert.Equal(t, "ta", h.transcriber.language)
	assert.Equal(t, "ta", h.translator.source)
	assert.Equal(t, "en", h.translator.target)
	assert.True(t, h.recorder.stopped)

	wav, err := media.DecodeWAV(h.store.objects["audio_01HZX.wav"])
	require.NoError(t, err)
	assert.Len(t, wav.Data, 3200)
	assert.Equal(t, []byte("ID3 speech"), h.store.objects["translated_audio_01HZX.mp3"])

	h.assertWorkspaceClean(t)
}

func TestTakeNoteUnintelligibleUploadsNothing(t *testing.T) {
	h := newHarness()
	h.transcriber.err = stt.ErrUnintelligible

	res, err := h.orchestrator().TakeNote(context.Background(), "es")
	require.NoError(t, err)

	assert.Equal(t, Result{Outcome: Unintelligible}, res)
	assert.False(t, res.HasNote())
	assert.Empty(t, h.store.keys())
	assert.Zero(t, h.synth.calls)
	h.assertWorkspaceClean(t)
}

func TestTakeNoteServiceUnavailable(t *testing.T) {
	h := newHarness()
	h.transcriber.err = stt.ErrUnavailable

	res, err := h.orchestrator().TakeNote(context.Background(), "fr")
	require.NoError(t, err)

	assert.Equal(t, Result{Outcome: Unavailable}, res)
	assert.Empty(t, h.store.keys())
}

func TestTakeNoteBlankTranscriptIsUnintelligible(t *testing.T) {
	h := newHarness()
	h.transcriber.text = "   "

	res, err := h.orchestrator().TakeNote(context.Background(), "hi")
	require.NoError(t, err)
	assert.Equal(t, Unintelligible, res.Outcome)
	assert.Empty(t, h.store.keys())
}

func TestTakeNoteNoSpeechStopsVideo(t *testing.T) {
	h := newHarness()
	h.listener.err = capture.ErrNoSpeech

	res, err := h.orchestrator().TakeNote(context.Background(), "ml")
	require.NoError(t, err)

	assert.Equal(t, Unintelligible, res.Outcome)
	assert.True(t, h.recorder.stopped)
	assert.Empty(t, h.store.keys())
	h.assertWorkspaceClean(t)
}

func TestTakeNoteTranslationFailureSkipsSynthesis(t *testing.T) {
	h := newHarness()
	h.translator.err = translate.ErrUnavailable

	res, err := h.orchestrator().TakeNote(context.Background(), "te")
	require.NoError(t, err)

	assert.Equal(t, Captured, res.Outcome)
	assert.Equal(t, "vanakkam", res.OriginalText)
	assert.Empty(t, res.TranslatedText)
	assert.Empty(t, res.TranslatedAudioURL)
	assert.NotEmpty(t, res.OriginalAudioURL)
	assert.NotEmpty(t, res.CombinedURL)
	assert.Zero(t, h.synth.calls)
}

func TestTakeNoteSynthesisFailureKeepsTranslation(t *testing.T) {
	h := newHarness()
	h.synth.err = tts.ErrUnavailable

	res, err := h.orchestrator().TakeNote(context.Background(), "ta")
	require.NoError(t, err)

	assert.Equal(t, "hello", res.TranslatedText)
	assert.Empty(t, res.TranslatedAudioURL)
	assert.NotEmpty(t, res.OriginalAudioURL)
	assert.NotEmpty(t, res.CombinedURL)
}

func TestTakeNoteOneUploadFailureClearsOnlyItsLocator(t *testing.T) {
	h := newHarness()
	h.store.failPrefix = "combined_"

	res, err := h.orchestrator().TakeNote(context.Background(), "ta")
	require.NoError(t, err)

	assert.Empty(t, res.CombinedURL)
	assert.Equal(t, "https://notesaver.test/audio_01HZX.wav", res.OriginalAudioURL)
	assert.Equal(t, "https://notesaver.test/translated_audio_01HZX.mp3", res.TranslatedAudioURL)
	assert.ElementsMatch(t, []string{"audio_01HZX.wav", "translated_audio_01HZX.mp3"}, h.store.keys())
}

func TestTakeNoteRecorderFailureDropsCombined(t *testing.T) {
	h := newHarness()
	h.recorder.err = errors.New("no camera")

	res, err := h.orchestrator().TakeNote(context.Background(), "ta")
	require.NoError(t, err)

	assert.Equal(t, Captured, res.Outcome)
	assert.Empty(t, res.CombinedURL)
	assert.NotEmpty(t, res.OriginalAudioURL)
	assert.Zero(t, h.muxer.calls)
}

func TestTakeNoteMuxFailureDropsCombined(t *testing.T) {
	h := newHarness()
	h.muxer.err = errors.New("ffmpeg exploded")

	res, err := h.orchestrator().TakeNote(context.Background(), "ta")
	require.NoError(t, err)

	assert.Empty(t, res.CombinedURL)
	assert.NotEmpty(t, res.TranslatedAudioURL)
	h.assertWorkspaceClean(t)
}

func TestTakeNoteWithoutVideo(t *testing.T) {
	h := newHarness()
	o := h.orchestrator()
	o.deps.Recorder = nil

	res, err := o.TakeNote(context.Background(), "en")
	require.NoError(t, err)

	assert.Empty(t, res.CombinedURL)
	assert.NotEmpty(t, res.OriginalAudioURL)
	assert.Zero(t, h.muxer.calls)
}

func TestTakeNoteCancelledContext(t *testing.T) {
	h := newHarness()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := h.orchestrator().TakeNote(ctx, "ta")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, h.store.keys())
	h.assertWorkspaceClean(t)
}

func TestResultSaveRequest(t *testing.T) {
	res := Result{OriginalText: "hola", TranslatedText: "hello", OriginalAudioURL: "a", Outcome: Captured}
	req := res.SaveRequest("alice")

	assert.True(t, res.HasNote())
	assert.Equal(t, "alice", req.Username)
	assert.Equal(t, "hola", req.OriginalNote)
	require.NotNil(t, req.OriginalAudioURL)
	assert.Equal(t, "a", *req.OriginalAudioURL)
	assert.Nil(t, req.TranslatedAudioURL)
	assert.Nil(t, req.CombinedURL)
}
