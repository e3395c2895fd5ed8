// SPDX-License-Identifier: EPL-2.0

package lime

import (
	"fmt"
	"io"
	"os"

	"github.com/mbalestrini/lime/audio"
	"github.com/mbalestrini/lime/formats/wav"
)

// Formats maps the extensions lime understands to their decoders.
var Formats = NewRegistry()

// NewRegistry returns a registry with every built-in format registered.
func NewRegistry() *audio.Registry {
	r := audio.NewRegistry()
	r.Register("wav", wav.Decoder{})
	r.Register("wave", wav.Decoder{})
	return r
}

// Load decodes res with a wav.Decoder built from opts.
func Load(res wav.Resource, opts ...wav.Option) (*wav.Sound, error) {
	snd := &wav.Sound{}
	if err := wav.NewDecoder(opts...).DecodeResource(res, snd); err != nil {
		return nil, err
	}
	return snd, nil
}

// Open decodes the file at path with the decoder registered in Formats
// for its extension. The file is closed before Open returns; the Source
// holds the decoded samples in memory.
func Open(path string) (audio.Source, error) {
	dec, err := Formats.Lookup(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", wav.ErrResourceOpen, err)
	}
	defer f.Close()

	return dec.Decode(f)
}

// ReadPCM16 drains src and returns its interleaved samples as 16-bit PCM.
// bufferSize sets how many samples are read per call.
func ReadPCM16(src audio.Source, bufferSize int) ([]int16, error) {
	if bufferSize <= 0 {
		bufferSize = 4096
	}

	pcm16 := make([]int16, 0, max(src.BufSize(), 0))
	buf := make([]float32, bufferSize)

	for {
		n, err := src.ReadSamples(buf)
		if n > 0 {
			const maxInt16 float32 = 32767.0
			for _, x := range buf[:n] {
				// Clamp to [-1, 1]
				if x > 1 {
					x = 1
				} else if x < -1 {
					x = -1
				}
				pcm16 = append(pcm16, int16(x*maxInt16))
			}
		}

		if err == io.EOF {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("reading samples: %w", err)
		}
	}

	return pcm16, nil
}
