// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

func TestSound_IntBuffer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		bits int
		data []byte
		want []int
	}{
		{"8-bit unsigned", 8, []byte{0x00, 0x80, 0xff}, []int{-128, 0, 127}},
		{"16-bit", 16, []byte{0x00, 0x80, 0xff, 0x7f, 0xff, 0xff, 0x01, 0x00}, []int{-32768, 32767, -1, 1}},
		{"24-bit", 24, []byte{0x00, 0x00, 0x80, 0xff, 0xff, 0x7f, 0xfe, 0xff, 0xff}, []int{-8388608, 8388607, -2}},
		{"32-bit", 32, []byte{0x00, 0x00, 0x00, 0x80, 0x10, 0x00, 0x00, 0x00}, []int{-2147483648, 16}},
		{"partial sample dropped", 16, []byte{0x01, 0x00, 0x02}, []int{1}},
		{"empty", 16, []byte{}, []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			snd := &Sound{SampleRate: 8000, Channels: 1, BitsPerSample: tt.bits, Data: tt.data}
			buf, err := snd.IntBuffer()
			if err != nil {
				t.Fatalf("IntBuffer() error = %v", err)
			}

			if !reflect.DeepEqual(buf.Data, tt.want) {
				t.Errorf("Data = %v, want %v", buf.Data, tt.want)
			}
			if buf.SourceBitDepth != tt.bits {
				t.Errorf("SourceBitDepth = %d, want %d", buf.SourceBitDepth, tt.bits)
			}
			if buf.Format.SampleRate != 8000 || buf.Format.NumChannels != 1 {
				t.Errorf("Format = %+v, want 8000 Hz mono", *buf.Format)
			}
		})
	}
}

func TestSound_IntBufferUnsupported(t *testing.T) {
	t.Parallel()

	for _, bits := range []int{0, 4, 12, 20, 64} {
		snd := &Sound{SampleRate: 8000, Channels: 1, BitsPerSample: bits, Data: make([]byte, 16)}
		if _, err := snd.IntBuffer(); !errors.Is(err, ErrUnsupportedBitDepth) {
			t.Errorf("IntBuffer() with %d bits error = %v, want ErrUnsupportedBitDepth", bits, err)
		}
	}
}

func TestSound_FramesAndDuration(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		snd      Sound
		frames   int
		duration time.Duration
	}{
		{"one second stereo", Sound{SampleRate: 44100, Channels: 2, BitsPerSample: 16, Data: make([]byte, 44100*4)}, 44100, time.Second},
		{"half second 24-bit", Sound{SampleRate: 48000, Channels: 1, BitsPerSample: 24, Data: make([]byte, 24000*3)}, 24000, 500 * time.Millisecond},
		{"trailing partial frame", Sound{SampleRate: 8000, Channels: 2, BitsPerSample: 16, Data: make([]byte, 10)}, 2, 250 * time.Microsecond},
		{"no channels", Sound{SampleRate: 8000, BitsPerSample: 16, Data: make([]byte, 10)}, 0, 0},
		{"no rate", Sound{Channels: 1, BitsPerSample: 8, Data: make([]byte, 10)}, 10, 0},
		{"zero value", Sound{}, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.snd.Frames(); got != tt.frames {
				t.Errorf("Frames() = %d, want %d", got, tt.frames)
			}
			if got := tt.snd.Duration(); got != tt.duration {
				t.Errorf("Duration() = %v, want %v", got, tt.duration)
			}
		})
	}
}
