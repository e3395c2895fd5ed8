// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"fmt"
	"time"

	goaudio "github.com/go-audio/audio"
)

// Sound is the decoded content of a WAVE file. Data holds a copy of the
// data chunk payload and its length always equals the declared chunk size.
type Sound struct {
	SampleRate    int
	Channels      int
	BitsPerSample int
	Data          []byte

	// Format is the complete fixed part of the fmt chunk.
	Format FormatChunk
}

func (s *Sound) fill(format FormatChunk, payload []byte) {
	if payload == nil {
		payload = []byte{}
	}

	s.Format = format
	s.SampleRate = int(format.SampleRate)
	s.Channels = int(format.NumChannels)
	s.BitsPerSample = int(format.BitsPerSample)
	s.Data = payload
}

// Frames returns the number of complete sample frames in Data.
func (s *Sound) Frames() int {
	frameSize := s.Channels * s.BitsPerSample / 8
	if frameSize <= 0 {
		return 0
	}
	return len(s.Data) / frameSize
}

// Duration is the playing time of Data at SampleRate.
func (s *Sound) Duration() time.Duration {
	if s.SampleRate <= 0 {
		return 0
	}
	return time.Duration(s.Frames()) * time.Second / time.Duration(s.SampleRate)
}

// IntBuffer converts Data into signed integer samples. 8-bit PCM is
// unsigned on disk and is re-centred around zero.
func (s *Sound) IntBuffer() (*goaudio.IntBuffer, error) {
	switch s.BitsPerSample {
	case 8, 16, 24, 32:
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, s.BitsPerSample)
	}

	width := s.BitsPerSample / 8
	samples := make([]int, len(s.Data)/width)

	for i := range samples {
		b := s.Data[i*width : (i+1)*width]
		switch width {
		case 1:
			samples[i] = int(b[0]) - 128
		case 2:
			samples[i] = int(int16(binary.LittleEndian.Uint16(b)))
		case 3:
			v := int32(uint32(b[0])<<8 | uint32(b[1])<<16 | uint32(b[2])<<24)
			samples[i] = int(v >> 8)
		case 4:
			samples[i] = int(int32(binary.LittleEndian.Uint32(b)))
		}
	}

	return &goaudio.IntBuffer{
		Format: &goaudio.Format{
			NumChannels: s.Channels,
			SampleRate:  s.SampleRate,
		},
		Data:           samples,
		SourceBitDepth: s.BitsPerSample,
	}, nil
}
