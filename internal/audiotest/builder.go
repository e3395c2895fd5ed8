// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"bytes"
	"encoding/binary"
	"math"
)

// Format describes the fixed fields of a fmt chunk. ByteRate and
// BlockAlign are derived from the other fields.
type Format struct {
	AudioFormat   uint16
	Channels      uint16
	SampleRate    uint32
	BitsPerSample uint16
}

// PCM returns a PCM format tag with the given layout.
func PCM(sampleRate, channels, bitsPerSample int) Format {
	return Format{
		AudioFormat:   1,
		Channels:      uint16(channels),
		SampleRate:    uint32(sampleRate),
		BitsPerSample: uint16(bitsPerSample),
	}
}

func (f Format) blockAlign() uint16 {
	return f.Channels * (f.BitsPerSample / 8)
}

func (f Format) fields() []byte {
	buf := new(bytes.Buffer)
	binary.Write(buf, binary.LittleEndian, f.AudioFormat)
	binary.Write(buf, binary.LittleEndian, f.Channels)
	binary.Write(buf, binary.LittleEndian, f.SampleRate)
	binary.Write(buf, binary.LittleEndian, f.SampleRate*uint32(f.blockAlign()))
	binary.Write(buf, binary.LittleEndian, f.blockAlign())
	binary.Write(buf, binary.LittleEndian, f.BitsPerSample)
	return buf.Bytes()
}

// Builder assembles RIFF images chunk by chunk, in the order the
// methods are called. It can produce malformed files on purpose.
type Builder struct {
	id     string
	form   string
	chunks bytes.Buffer
}

// NewBuilder starts a RIFF/WAVE image.
func NewBuilder() *Builder {
	return &Builder{id: "RIFF", form: "WAVE"}
}

// Container overrides the container and form tags of the RIFF header.
func (b *Builder) Container(id, form string) *Builder {
	b.id, b.form = id, form
	return b
}

// Chunk appends a chunk and the pad byte RIFF requires after odd-sized payloads.
func (b *Builder) Chunk(id string, payload []byte) *Builder {
	b.UnpaddedChunk(id, payload)
	if len(payload)%2 == 1 {
		b.chunks.WriteByte(0)
	}
	return b
}

// UnpaddedChunk appends a chunk without a pad byte.
func (b *Builder) UnpaddedChunk(id string, payload []byte) *Builder {
	return b.Header(id, uint32(len(payload))).Raw(payload)
}

// Header appends a bare chunk header declaring size, without any payload.
func (b *Builder) Header(id string, size uint32) *Builder {
	b.chunks.WriteString(id)
	binary.Write(&b.chunks, binary.LittleEndian, size)
	return b
}

// Raw appends bytes verbatim.
func (b *Builder) Raw(p []byte) *Builder {
	b.chunks.Write(p)
	return b
}

// Format appends a 16-byte fmt chunk.
func (b *Builder) Format(f Format) *Builder {
	return b.Chunk("fmt ", f.fields())
}

// FormatWithExtension appends a fmt chunk whose declared size includes ext.
func (b *Builder) FormatWithExtension(f Format, ext []byte) *Builder {
	return b.Chunk("fmt ", append(f.fields(), ext...))
}

// Data appends a data chunk.
func (b *Builder) Data(payload []byte) *Builder {
	return b.Chunk("data", payload)
}

// Bytes returns the RIFF header followed by every appended chunk.
func (b *Builder) Bytes() []byte {
	out := new(bytes.Buffer)
	out.WriteString(b.id)
	binary.Write(out, binary.LittleEndian, uint32(4+b.chunks.Len()))
	out.WriteString(b.form)
	out.Write(b.chunks.Bytes())
	return out.Bytes()
}

// Minimal returns the canonical 44-byte-header WAVE image: fmt then data.
func Minimal(f Format, payload []byte) []byte {
	return NewBuilder().Format(f).Data(payload).Bytes()
}

// SinePCM16 renders a sine tone as interleaved 16-bit little-endian PCM,
// the same value on every channel.
func SinePCM16(sampleRate, channels, frames int, frequency float64) []byte {
	out := make([]byte, 0, frames*channels*2)
	for i := range frames {
		t := float64(i) / float64(sampleRate)
		v := int16(math.Sin(2*math.Pi*frequency*t) * math.MaxInt16)
		for range channels {
			out = binary.LittleEndian.AppendUint16(out, uint16(v))
		}
	}
	return out
}

// Ramp returns n bytes counting up from 0, wrapping at 256.
func Ramp(n int) []byte {
	out := make([]byte, n)
	for i := range out {
		out[i] = byte(i)
	}
	return out
}
