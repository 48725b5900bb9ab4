package vad

import (
	"context"

	audioring "github.com/xpanvictor/voicetaker/pkg/io/stt/audioRing"
)

// VADResult represents the result of voice activity detection
type VADResult struct {
	HasVoice   bool    `json:"hasVoice"`
	Confidence float32 `json:"confidence"`
	Energy     float32 `json:"energy"`
}

// VAD interface for voice activity detection
type VAD interface {
	// DetectVoice analyzes one frame and returns the VAD result
	DetectVoice(ctx context.Context, frame audioring.Frame) (VADResult, error)

	// Calibrate adapts the detection threshold to the room's ambient noise
	Calibrate(frames []audioring.Frame) float32

	// Close releases any resources
	Close() error
}

// VADConfig contains configuration for VAD
type VADConfig struct {
	SampleRate   int32   `json:"sampleRate"`   // Expected sample rate (e.g., 16000)
	Threshold    float32 `json:"threshold"`    // Normalized RMS floor (0.0-1.0) that counts as voice
	AmbientRatio float32 `json:"ambientRatio"` // Speech must be this much louder than calibrated ambient noise
	MinSpeechMs  int     `json:"minSpeechMs"`  // Minimum speech duration in milliseconds
	MinSilenceMs int     `json:"minSilenceMs"` // Silence that ends an utterance
}

// DefaultVADConfig returns default VAD configuration optimized for speech
func DefaultVADConfig() VADConfig {
	return VADConfig{
		SampleRate:   16000,
		Threshold:    0.009, // ~300 RMS on a 16-bit scale
		AmbientRatio: 1.5,
		MinSpeechMs:  100,
		MinSilenceMs: 800,
	}
}
