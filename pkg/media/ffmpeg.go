package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/xpanvictor/voicetaker/pkg/Logger"
)

// VideoRecorder captures video into path until ctx is cancelled.
type VideoRecorder interface {
	Record(ctx context.Context, path string) error
}

// Muxer combines a video file with an audio file into out.
type Muxer interface {
	Mux(ctx context.Context, videoPath, audioPath, outPath string) error
}

var ErrRecorderStuck = errors.New("video recorder did not stop in time")

const stopGrace = 5 * time.Second

// FFmpegRecorder records a camera device with ffmpeg.
type FFmpegRecorder struct {
	Bin    string
	Format string // ffmpeg input format: v4l2, avfoundation, dshow
	Device string
	logger *Logger.Logger
}

func NewFFmpegRecorder(bin, format, device string, logger *Logger.Logger) *FFmpegRecorder {
	return &FFmpegRecorder{Bin: ifEmpty(bin, "ffmpeg"), Format: format, Device: device, logger: logger}
}

func (r *FFmpegRecorder) args(path string) []string {
	return []string{
		"-y", "-hide_banner", "-loglevel", "error",
		"-f", r.Format, "-i", r.Device,
		"-an",
		"-c:v", "libx264", "-preset", "ultrafast", "-pix_fmt", "yuv420p",
		path,
	}
}

// Record blocks until ctx is done, then asks ffmpeg to finish the file.
// Sending "q" lets ffmpeg write the trailer; a killed process leaves an unplayable mp4.
func (r *FFmpegRecorder) Record(ctx context.Context, path string) error {
	cmd := exec.Command(r.Bin, r.args(path)...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("ffmpeg stdin: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start ffmpeg video capture: %w", err)
	}
	r.logger.Debugf("video capture started: %s", path)

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("ffmpeg video capture exited: %w: %s", err, strings.TrimSpace(stderr.String()))
		}
		return nil
	case <-ctx.Done():
	}

	_, _ = io.WriteString(stdin, "q")
	_ = stdin.Close()

	select {
	case err := <-done:
		if err != nil {
			// ffmpeg exits 255 after "q" on some platforms
			r.logger.Debugf("video capture stopped with %v", err)
		}
		r.logger.Debugf("video capture flushed: %s", path)
		return nil
	case <-time.After(stopGrace):
		_ = cmd.Process.Kill()
		<-done
		return ErrRecorderStuck
	}
}

// FFmpegMuxer attaches the spoken audio to the recorded video.
type FFmpegMuxer struct {
	Bin    string
	logger *Logger.Logger
}

func NewFFmpegMuxer(bin string, logger *Logger.Logger) *FFmpegMuxer {
	return &FFmpegMuxer{Bin: ifEmpty(bin, "ffmpeg"), logger: logger}
}

func muxArgs(videoPath, audioPath, outPath string) []string {
	// audio track of the second input replaces whatever the video carries
	return []string{
		"-y", "-hide_banner", "-loglevel", "error",
		"-i", videoPath,
		"-i", audioPath,
		"-map", "0:v:0", "-map", "1:a:0",
		"-c:v", "libx264", "-c:a", "aac",
		"-shortest",
		outPath,
	}
}

func (m *FFmpegMuxer) Mux(ctx context.Context, videoPath, audioPath, outPath string) error {
	cmd := exec.CommandContext(ctx, m.Bin, muxArgs(videoPath, audioPath, outPath)...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("ffmpeg mux: %w: %s", err, strings.TrimSpace(stderr.String()))
	}
	m.logger.Debugf("muxed %s + %s -> %s", videoPath, audioPath, outPath)
	return nil
}

// Microphone streams mono s16le PCM from an ffmpeg audio input.
type Microphone struct {
	Bin        string
	Format     string // pulse, alsa, avfoundation, dshow
	Device     string
	sampleRate int
}

func NewMicrophone(bin, format, device string, sampleRate int) *Microphone {
	if sampleRate == 0 {
		sampleRate = 16000
	}
	return &Microphone{Bin: ifEmpty(bin, "ffmpeg"), Format: format, Device: device, sampleRate: sampleRate}
}

func (m *Microphone) SampleRate() int { return m.sampleRate }

func (m *Microphone) args() []string {
	return []string{
		"-hide_banner", "-loglevel", "error",
		"-f", m.Format, "-i", m.Device,
		"-ac", "1", "-ar", strconv.Itoa(m.sampleRate),
		"-f", "s16le", "pipe:1",
	}
}

// Open starts the capture process. Closing the returned reader stops it.
func (m *Microphone) Open(ctx context.Context) (io.ReadCloser, error) {
	cmd := exec.CommandContext(ctx, m.Bin, m.args()...)
	out, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("ffmpeg stdout: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start ffmpeg audio capture: %w", err)
	}
	return &processReader{ReadCloser: out, cmd: cmd}, nil
}

type processReader struct {
	io.ReadCloser
	cmd *exec.Cmd
}

func (p *processReader) Close() error {
	_ = p.cmd.Process.Kill()
	_ = p.ReadCloser.Close()
	_ = p.cmd.Wait()
	return nil
}

// ConvertToMP3 transcodes an audio stream to mp3 unless it already is one.
func ConvertToMP3(ctx context.Context, bin string, in io.Reader, contentType string) ([]byte, error) {
	raw, err := io.ReadAll(in)
	if err != nil {
		return nil, fmt.Errorf("failed to read audio: %w", err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("received empty audio")
	}
	inFmt := inputFormat(contentType)
	if inFmt == "mp3" {
		return raw, nil
	}

	cmd := exec.CommandContext(ctx, ifEmpty(bin, "ffmpeg"), "-hide_banner", "-loglevel", "error",
		"-f", inFmt,
		"-i", "pipe:0",
		"-f", "mp3",
		"pipe:1",
	)

	var out, stderr bytes.Buffer
	cmd.Stdin = bytes.NewReader(raw)
	cmd.Stdout = &out
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("conversion to mp3 error: %w: %s", err, strings.TrimSpace(stderr.String()))
	}
	return out.Bytes(), nil
}

// inputFormat maps an audio content type to an ffmpeg demuxer name, defaulting to wav.
func inputFormat(contentType string) string {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return "wav"
	}
	switch mediaType {
	case "audio/mpeg", "audio/mp3":
		return "mp3"
	case "audio/wav", "audio/x-wav", "audio/wave", "audio/vnd.wave":
		return "wav"
	}
	if typ, sub, ok := strings.Cut(mediaType, "/"); ok && typ == "audio" && sub != "" {
		return sub
	}
	return "wav"
}

func ifEmpty(s, d string) string {
	if s == "" {
		return d
	}
	return s
}
