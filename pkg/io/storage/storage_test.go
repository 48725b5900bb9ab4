package storage

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xpanvictor/voicetaker/pkg/Logger"
)

func TestKeyFromLocator(t *testing.T) {
	cases := map[string]string{
		"https://notesaver.s3.amazonaws.com/audio_01H.wav":                     "audio_01H.wav",
		"http://localhost:9000/notesaver/combined_01H.mp4":                     "combined_01H.mp4",
		"https://notesaver.s3.amazonaws.com/translated_audio_01H.mp3?X-Amz=1": "translated_audio_01H.mp3",
		"file:///var/media/audio_1.wav":                                        "audio_1.wav",
		"audio_2.wav":                                                          "audio_2.wav",
	}
	for in, want := range cases {
		got, err := KeyFromLocator(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := KeyFromLocator("")
	assert.ErrorIs(t, err, ErrInvalidLocator)
}

func TestS3StoreUpload(t *testing.T) {
	client := newMockS3Client()
	store := NewS3StoreWithClient(client, &mockPresigner{}, "notesaver", "", Logger.NewNop())

	loc, err := store.Upload(context.Background(), "audio_1.wav", strings.NewReader("RIFF"), "audio/wav")
	require.NoError(t, err)
	assert.Equal(t, "https://notesaver.s3.amazonaws.com/audio_1.wav", loc)

	obj, ok := client.get("notesaver", "audio_1.wav")
	require.True(t, ok)
	assert.Equal(t, []byte("RIFF"), obj.content)
	assert.Equal(t, "audio/wav", obj.contentType)
}

func TestS3StoreUploadWithEndpoint(t *testing.T) {
	store := NewS3StoreWithClient(newMockS3Client(), &mockPresigner{}, "notesaver", "http://minio:9000/", Logger.NewNop())

	loc, err := store.Upload(context.Background(), "combined_1.mp4", strings.NewReader("mp4"), "video/mp4")
	require.NoError(t, err)
	assert.Equal(t, "http://minio:9000/notesaver/combined_1.mp4", loc)
}

func TestS3StoreUploadFailure(t *testing.T) {
	client := newMockS3Client()
	client.failKey = "audio_1.wav"
	store := NewS3StoreWithClient(client, &mockPresigner{}, "notesaver", "", Logger.NewNop())

	_, err := store.Upload(context.Background(), "audio_1.wav", strings.NewReader("x"), "audio/wav")
	assert.ErrorIs(t, err, ErrUpload)
}

func TestS3StorePresign(t *testing.T) {
	presigner := &mockPresigner{}
	store := NewS3StoreWithClient(newMockS3Client(), presigner, "notesaver", "", Logger.NewNop())

	u, err := store.PresignURL(context.Background(), "https://notesaver.s3.amazonaws.com/audio_1.wav", 0)
	require.NoError(t, err)
	assert.Equal(t, time.Hour, presigner.expires)
	assert.Contains(t, u, "/audio_1.wav?X-Amz-Expires=3600")

	_, err = store.PresignURL(context.Background(), "https://notesaver.s3.amazonaws.com/audio_1.wav", 15*time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 15*time.Minute, presigner.expires)
}

func TestS3StorePresignFailure(t *testing.T) {
	store := NewS3StoreWithClient(newMockS3Client(), &mockPresigner{err: errors.New("no credentials")}, "b", "", Logger.NewNop())
	_, err := store.PresignURL(context.Background(), "https://b.s3.amazonaws.com/k.wav", time.Minute)
	assert.ErrorIs(t, err, ErrPresign)
}

func TestLocalStore(t *testing.T) {
	fs := afero.NewMemMapFs()
	store, err := NewLocalStore(fs, "/media", "http://localhost:8000/media/", Logger.NewNop())
	require.NoError(t, err)

	loc, err := store.Upload(context.Background(), "audio_1.wav", strings.NewReader("RIFF"), "audio/wav")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8000/media/audio_1.wav", loc)

	data, err := afero.ReadFile(fs, "/media/audio_1.wav")
	require.NoError(t, err)
	assert.Equal(t, []byte("RIFF"), data)

	u, err := store.PresignURL(context.Background(), loc, time.Hour)
	require.NoError(t, err)
	assert.Equal(t, loc, u)

	_, err = store.PresignURL(context.Background(), "http://localhost:8000/media/missing.wav", time.Hour)
	assert.ErrorIs(t, err, ErrPresign)
}

func TestLocalStoreRejectsTraversal(t *testing.T) {
	store, err := NewLocalStore(afero.NewMemMapFs(), "/media", "", Logger.NewNop())
	require.NoError(t, err)

	_, err = store.Upload(context.Background(), "../etc/passwd", strings.NewReader("x"), "text/plain")
	assert.ErrorIs(t, err, ErrUpload)
}

func TestLocalStoreFileLocator(t *testing.T) {
	store, err := NewLocalStore(afero.NewMemMapFs(), "/media", "", Logger.NewNop())
	require.NoError(t, err)

	loc, err := store.Upload(context.Background(), "audio_1.wav", strings.NewReader("x"), "audio/wav")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(loc, "file://"))
	assert.True(t, strings.HasSuffix(loc, "/media/audio_1.wav"))
}
