// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"io"

	goaudio "github.com/go-audio/audio"

	"github.com/mbalestrini/lime/audio"
)

// pcmSource serves a decoded Sound as normalised float32 samples.
type pcmSource struct {
	buf   *goaudio.IntBuffer
	pos   int
	scale float32
}

// NewSource wraps snd as an audio.Source. Samples are interleaved and
// scaled to [-1, 1] according to the bit depth.
func NewSource(snd *Sound) (audio.Source, error) {
	buf, err := snd.IntBuffer()
	if err != nil {
		return nil, err
	}

	return &pcmSource{
		buf:   buf,
		scale: float32(int64(1) << (snd.BitsPerSample - 1)),
	}, nil
}

func (s *pcmSource) SampleRate() int { return s.buf.Format.SampleRate }
func (s *pcmSource) Channels() int   { return s.buf.Format.NumChannels }
func (s *pcmSource) BufSize() int    { return len(s.buf.Data) }
func (s *pcmSource) Close() error    { return nil }

func (s *pcmSource) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	remaining := s.buf.Data[s.pos:]
	if len(remaining) == 0 {
		return 0, io.EOF
	}

	n := min(len(dst), len(remaining))
	for i, v := range remaining[:n] {
		dst[i] = float32(v) / s.scale
	}
	s.pos += n

	if s.pos == len(s.buf.Data) {
		return n, io.EOF
	}
	return n, nil
}
