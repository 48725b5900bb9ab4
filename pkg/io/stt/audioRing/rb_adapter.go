package audioring

import (
	"encoding/binary"
	"errors"
	"time"

	"github.com/smallnest/ringbuffer"
)

var ErrFrameTooLarge = errors.New("audio frame too large for buffer")

type rbPreRoll struct {
	size int
	rb   *ringbuffer.RingBuffer
}

func (r *rbPreRoll) Capacity() int { return r.size }

func (r *rbPreRoll) Len() int { return r.rb.Length() }

func (r *rbPreRoll) Reset() { r.rb.Reset() }

func (r *rbPreRoll) Push(f Frame) error {
	data, err := f.MarshalBinary()
	if err != nil {
		return err
	}

	required := len(data) + 4
	if required > r.rb.Capacity() {
		return ErrFrameTooLarge
	}

	for r.rb.Free() < required {
		if _, ok := r.next(); !ok {
			// framing is lost, start over
			r.rb.Reset()
			break
		}
	}

	var prefix [4]byte
	binary.LittleEndian.PutUint32(prefix[:], uint32(len(data)))
	if _, err := r.rb.Write(prefix[:]); err != nil {
		return err
	}
	_, err = r.rb.Write(data)
	return err
}

// next reads one length prefixed record off the front of the buffer.
func (r *rbPreRoll) next() ([]byte, bool) {
	if r.rb.IsEmpty() {
		return nil, false
	}
	var prefix [4]byte
	if n, err := r.rb.Read(prefix[:]); err != nil || n != 4 {
		return nil, false
	}
	size := int(binary.LittleEndian.Uint32(prefix[:]))
	data := make([]byte, size)
	if size > 0 {
		if n, err := r.rb.Read(data); err != nil || n != size {
			return nil, false
		}
	}
	return data, true
}

func (r *rbPreRoll) Drain() []Frame {
	var frames []Frame
	for {
		data, ok := r.next()
		if !ok {
			break
		}
		var f Frame
		if err := f.UnmarshalBinary(data); err != nil {
			break
		}
		frames = append(frames, f)
	}
	r.rb.Reset()
	return frames
}

// New allocates a pre-roll buffer of size bytes.
func New(size int) PreRoll {
	return &rbPreRoll{
		size: size,
		rb:   ringbuffer.New(size).SetBlocking(false),
	}
}

// ForDuration sizes a buffer to hold roughly d of audio delivered in
// frames of frameBytes at sampleRate (16-bit mono).
func ForDuration(d time.Duration, sampleRate, frameBytes int) PreRoll {
	if frameBytes <= 0 {
		frameBytes = 1
	}
	audioBytes := int(d.Seconds() * float64(sampleRate*2))
	frames := audioBytes/frameBytes + 1
	return New(audioBytes + frames*(frameHeader+4))
}
