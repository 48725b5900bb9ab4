package media

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"time"
)

// PCM is raw signed 16-bit little endian audio.
type PCM struct {
	Data       []byte
	SampleRate int
	Channels   int
}

const bitsPerSample = 16

var ErrNotWAV = errors.New("not a PCM wav stream")

func (p PCM) Empty() bool {
	return len(p.Data) == 0
}

// Duration of the buffered audio.
func (p PCM) Duration() time.Duration {
	channels := p.Channels
	if channels == 0 {
		channels = 1
	}
	if p.SampleRate == 0 {
		return 0
	}
	samples := len(p.Data) / (2 * channels)
	return time.Duration(samples) * time.Second / time.Duration(p.SampleRate)
}

// EncodeWAV wraps the PCM payload in a canonical 44 byte RIFF header.
func EncodeWAV(p PCM) []byte {
	sampleRate := p.SampleRate
	if sampleRate == 0 {
		sampleRate = 16000
	}
	channels := p.Channels
	if channels == 0 {
		channels = 1
	}

	byteRate := sampleRate * channels * bitsPerSample / 8
	blockAlign := channels * bitsPerSample / 8
	dataSize := len(p.Data)

	header := make([]byte, 44)

	// RIFF chunk descriptor
	copy(header[0:4], "RIFF")
	binary.LittleEndian.PutUint32(header[4:8], uint32(36+dataSize))
	copy(header[8:12], "WAVE")

	// fmt sub-chunk
	copy(header[12:16], "fmt ")
	binary.LittleEndian.PutUint32(header[16:20], 16)
	binary.LittleEndian.PutUint16(header[20:22], 1) // PCM
	binary.LittleEndian.PutUint16(header[22:24], uint16(channels))
	binary.LittleEndian.PutUint32(header[24:28], uint32(sampleRate))
	binary.LittleEndian.PutUint32(header[28:32], uint32(byteRate))
	binary.LittleEndian.PutUint16(header[32:34], uint16(blockAlign))
	binary.LittleEndian.PutUint16(header[34:36], bitsPerSample)

	// data sub-chunk
	copy(header[36:40], "data")
	binary.LittleEndian.PutUint32(header[40:44], uint32(dataSize))

	wav := make([]byte, 0, 44+dataSize)
	wav = append(wav, header...)
	return append(wav, p.Data...)
}

// DecodeWAV reads back a canonical header written by EncodeWAV.
func DecodeWAV(b []byte) (PCM, error) {
	if len(b) < 44 || !bytes.Equal(b[0:4], []byte("RIFF")) || !bytes.Equal(b[8:12], []byte("WAVE")) {
		return PCM{}, ErrNotWAV
	}
	if binary.LittleEndian.Uint16(b[20:22]) != 1 || binary.LittleEndian.Uint16(b[34:36]) != bitsPerSample {
		return PCM{}, fmt.Errorf("%w: unsupported encoding", ErrNotWAV)
	}
	size := int(binary.LittleEndian.Uint32(b[40:44]))
	if size > len(b)-44 {
		size = len(b) - 44
	}
	return PCM{
		Data:       b[44 : 44+size],
		SampleRate: int(binary.LittleEndian.Uint32(b[24:28])),
		Channels:   int(binary.LittleEndian.Uint16(b[22:24])),
	}, nil
}
