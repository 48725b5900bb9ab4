package audioring

import (
	"encoding/binary"
	"errors"
	"time"
)

var ErrShortFrame = errors.New("frame record too short")

// Frame is one chunk of s16le mono PCM as read from the microphone.
type Frame struct {
	Data []byte
	At   time.Time
}

const frameHeader = 8 + 4 // unix nano + data length

func (f *Frame) MarshalBinary() ([]byte, error) {
	buf := make([]byte, frameHeader+len(f.Data))
	binary.LittleEndian.PutUint64(buf[0:], uint64(f.At.UnixNano()))
	binary.LittleEndian.PutUint32(buf[8:], uint32(len(f.Data)))
	copy(buf[frameHeader:], f.Data)
	return buf, nil
}

func (f *Frame) UnmarshalBinary(data []byte) error {
	if len(data) < frameHeader {
		return ErrShortFrame
	}
	f.At = time.Unix(0, int64(binary.LittleEndian.Uint64(data[0:])))
	n := int(binary.LittleEndian.Uint32(data[8:]))
	if len(data[frameHeader:]) < n {
		return ErrShortFrame
	}
	f.Data = make([]byte, n)
	copy(f.Data, data[frameHeader:frameHeader+n])
	return nil
}

// PreRoll keeps the most recent frames heard before speech starts so the
// first syllable is not clipped. Old frames are dropped once it is full.
type PreRoll interface {
	Push(f Frame) error
	// Drain returns the buffered frames oldest first and empties the buffer.
	Drain() []Frame
	Len() int
	Capacity() int
	Reset()
}
