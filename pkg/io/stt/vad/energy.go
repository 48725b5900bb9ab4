package vad

import (
	"context"
	"errors"
	"math"
	"sync"

	"github.com/xpanvictor/voicetaker/pkg/Logger"
	audioring "github.com/xpanvictor/voicetaker/pkg/io/stt/audioRing"
)

var ErrClosed = errors.New("VAD is closed")

// EnergyVAD flags frames whose RMS level clears a threshold. The threshold
// starts at the configured floor and is raised by Calibrate in noisy rooms.
type EnergyVAD struct {
	config    VADConfig
	logger    *Logger.Logger
	mutex     sync.Mutex
	threshold float32
	closed    bool
}

var _ VAD = (*EnergyVAD)(nil)

func NewEnergyVAD(config VADConfig, logger *Logger.Logger) *EnergyVAD {
	if config.Threshold <= 0 {
		config.Threshold = DefaultVADConfig().Threshold
	}
	if config.AmbientRatio <= 0 {
		config.AmbientRatio = DefaultVADConfig().AmbientRatio
	}
	return &EnergyVAD{config: config, logger: logger, threshold: config.Threshold}
}

// Energy returns the RMS level of 16-bit little endian PCM normalized to 0-1.
func Energy(pcm []byte) float32 {
	n := len(pcm) / 2
	if n == 0 {
		return 0
	}
	var sum float64
	for i := 0; i+1 < len(pcm); i += 2 {
		sample := float64(int16(uint16(pcm[i]) | uint16(pcm[i+1])<<8))
		sum += sample * sample
	}
	return float32(math.Sqrt(sum/float64(n)) / 32768.0)
}

func (e *EnergyVAD) Threshold() float32 {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	return e.threshold
}

func (e *EnergyVAD) Calibrate(frames []audioring.Frame) float32 {
	e.mutex.Lock()
	defer e.mutex.Unlock()

	var total float32
	var count int
	for _, f := range frames {
		if len(f.Data) < 2 {
			continue
		}
		total += Energy(f.Data)
		count++
	}
	if count == 0 {
		return e.threshold
	}

	ambient := total / float32(count)
	e.threshold = e.config.Threshold
	if scaled := ambient * e.config.AmbientRatio; scaled > e.threshold {
		e.threshold = scaled
	}
	e.logger.Debugf("VAD calibrated: ambient=%.5f threshold=%.5f", ambient, e.threshold)
	return e.threshold
}

func (e *EnergyVAD) DetectVoice(ctx context.Context, frame audioring.Frame) (VADResult, error) {
	e.mutex.Lock()
	defer e.mutex.Unlock()

	if e.closed {
		return VADResult{}, ErrClosed
	}
	if err := ctx.Err(); err != nil {
		return VADResult{}, err
	}

	energy := Energy(frame.Data)
	confidence := energy / e.threshold
	if confidence > 1.0 {
		confidence = 1.0
	}

	return VADResult{
		HasVoice:   energy > e.threshold,
		Confidence: confidence,
		Energy:     energy,
	}, nil
}

func (e *EnergyVAD) Close() error {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	e.closed = true
	return nil
}
