// Package capture turns a live microphone stream into one spoken phrase.
package capture

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/looplab/fsm"
	"github.com/xpanvictor/voicetaker/pkg/Logger"
	"github.com/xpanvictor/voicetaker/pkg/io/stt/audioRing"
	"github.com/xpanvictor/voicetaker/pkg/io/stt/vad"
	"github.com/xpanvictor/voicetaker/pkg/media"
)

var ErrNoSpeech = errors.New("no speech detected")

// Listener records until the speaker stops talking.
type Listener interface {
	Listen(ctx context.Context) (media.PCM, error)
}

// Source delivers mono s16le PCM. media.Microphone is the production source.
type Source interface {
	Open(ctx context.Context) (io.ReadCloser, error)
	SampleRate() int
}

type Config struct {
	Frame       time.Duration // analysis window
	Calibration time.Duration // ambient noise sampling before listening
	PreRoll     time.Duration // audio kept from before speech onset
	Pause       time.Duration // trailing silence that ends the phrase
	MinSpeech   time.Duration // shorter bursts are discarded as noise
	WaitTimeout time.Duration // give up when nobody speaks; zero waits forever
	MaxPhrase   time.Duration // hard cap on phrase length; zero means none
}

func DefaultConfig() Config {
	return Config{
		Frame:       50 * time.Millisecond,
		Calibration: time.Second,
		PreRoll:     300 * time.Millisecond,
		Pause:       800 * time.Millisecond,
		MinSpeech:   100 * time.Millisecond,
		WaitTimeout: 10 * time.Second,
		MaxPhrase:   2 * time.Minute,
	}
}

const (
	stateCalibrating = "calibrating"
	stateWaiting     = "waiting"
	stateSpeaking    = "speaking"
	stateDone        = "done"

	eventCalibrated = "calibrated"
	eventSpeech     = "speech"
	eventNoise      = "noise"
	eventFinish     = "finish"
	eventTimeout    = "timeout"
)

// PhraseListener segments one utterance out of a Source with a VAD.
type PhraseListener struct {
	source   Source
	detector vad.VAD
	cfg      Config
	logger   *Logger.Logger
}

var _ Listener = (*PhraseListener)(nil)

func NewPhraseListener(source Source, detector vad.VAD, cfg Config, logger *Logger.Logger) *PhraseListener {
	def := DefaultConfig()
	if cfg.Frame <= 0 {
		cfg.Frame = def.Frame
	}
	if cfg.Pause <= 0 {
		cfg.Pause = def.Pause
	}
	return &PhraseListener{source: source, detector: detector, cfg: cfg, logger: logger}
}

func (l *PhraseListener) newMachine() *fsm.FSM {
	return fsm.NewFSM(
		stateCalibrating,
		fsm.Events{
			{Name: eventCalibrated, Src: []string{stateCalibrating}, Dst: stateWaiting},
			{Name: eventSpeech, Src: []string{stateWaiting}, Dst: stateSpeaking},
			{Name: eventNoise, Src: []string{stateSpeaking}, Dst: stateWaiting},
			{Name: eventFinish, Src: []string{stateSpeaking}, Dst: stateDone},
			{Name: eventTimeout, Src: []string{stateCalibrating, stateWaiting}, Dst: stateDone},
		},
		fsm.Callbacks{
			"enter_state": func(_ context.Context, e *fsm.Event) {
				l.logger.Debugf("listener %s -> %s (%s)", e.Src, e.Dst, e.Event)
			},
		},
	)
}

// Listen blocks until a phrase followed by a pause was heard, the wait
// timeout passed without speech, or ctx is cancelled.
func (l *PhraseListener) Listen(ctx context.Context) (media.PCM, error) {
	rate := l.source.SampleRate()
	stream, err := l.source.Open(ctx)
	if err != nil {
		return media.PCM{}, fmt.Errorf("open audio source: %w", err)
	}
	var closeOnce sync.Once
	closeStream := func() { closeOnce.Do(func() { _ = stream.Close() }) }
	defer closeStream()
	// unblocks a pending Read
	stop := context.AfterFunc(ctx, closeStream)
	defer stop()

	frameBytes := int(l.cfg.Frame.Seconds()*float64(rate)) * 2
	if frameBytes < 2 {
		frameBytes = 2
	}
	preroll := audioring.ForDuration(l.cfg.PreRoll, rate, frameBytes)
	machine := l.newMachine()
	fire := func(event string) {
		// transitions are only fired from states that declare them
		_ = machine.Event(context.WithoutCancel(ctx), event)
	}

	var (
		ambient  []audioring.Frame
		phrase   []byte
		heard    time.Duration // audio consumed in the current state
		voiced   time.Duration
		silence  time.Duration
		finished bool
	)

	buf := make([]byte, frameBytes)
	for !finished {
		n, readErr := io.ReadFull(stream, buf)
		if err := ctx.Err(); err != nil {
			return media.PCM{}, err
		}
		if readErr != nil && n == 0 {
			if errors.Is(readErr, io.EOF) || errors.Is(readErr, io.ErrUnexpectedEOF) || errors.Is(readErr, io.ErrClosedPipe) {
				break
			}
			return media.PCM{}, fmt.Errorf("read audio: %w", readErr)
		}
		frame := audioring.Frame{Data: append([]byte(nil), buf[:n]...), At: time.Now()}
		heard += l.cfg.Frame

		switch machine.Current() {
		case stateCalibrating:
			ambient = append(ambient, frame)
			if heard >= l.cfg.Calibration {
				l.detector.Calibrate(ambient)
				heard = 0
				fire(eventCalibrated)
			}

		case stateWaiting:
			res, err := l.detector.DetectVoice(ctx, frame)
			if err != nil {
				return media.PCM{}, fmt.Errorf("detect voice: %w", err)
			}
			if !res.HasVoice {
				if err := preroll.Push(frame); err != nil {
					l.logger.Debugf("pre-roll push: %v", err)
				}
				if l.cfg.WaitTimeout > 0 && heard >= l.cfg.WaitTimeout {
					fire(eventTimeout)
					return media.PCM{}, ErrNoSpeech
				}
				continue
			}
			phrase = phrase[:0]
			for _, f := range preroll.Drain() {
				phrase = append(phrase, f.Data...)
			}
			phrase = append(phrase, frame.Data...)
			heard, voiced, silence = l.cfg.Frame, l.cfg.Frame, 0
			fire(eventSpeech)

		case stateSpeaking:
			res, err := l.detector.DetectVoice(ctx, frame)
			if err != nil {
				return media.PCM{}, fmt.Errorf("detect voice: %w", err)
			}
			phrase = append(phrase, frame.Data...)
			if res.HasVoice {
				voiced += l.cfg.Frame
				silence = 0
			} else {
				silence += l.cfg.Frame
			}

			switch {
			case silence >= l.cfg.Pause && voiced < l.cfg.MinSpeech:
				phrase, heard = phrase[:0], 0
				fire(eventNoise)
			case silence >= l.cfg.Pause:
				fire(eventFinish)
				finished = true
			case l.cfg.MaxPhrase > 0 && heard >= l.cfg.MaxPhrase:
				l.logger.Infof("phrase hit the %s limit", l.cfg.MaxPhrase)
				fire(eventFinish)
				finished = true
			}
		}
	}

	// stream ended mid phrase
	if machine.Current() == stateSpeaking && voiced >= l.cfg.MinSpeech {
		fire(eventFinish)
	}
	if machine.Current() != stateDone || len(phrase) == 0 {
		return media.PCM{}, ErrNoSpeech
	}

	pcm := media.PCM{Data: phrase, SampleRate: rate, Channels: 1}
	l.logger.Debugf("captured %s of audio", pcm.Duration())
	return pcm, nil
}
