// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"fmt"
)

const (
	riffHeaderSize  = 12
	chunkHeaderSize = 8
	// fixed part of the fmt payload, extension bytes follow it
	formatFieldsSize = 16
)

var (
	riffID = [4]byte{'R', 'I', 'F', 'F'}
	waveID = [4]byte{'W', 'A', 'V', 'E'}
	fmtID  = [4]byte{'f', 'm', 't', ' '}
	dataID = [4]byte{'d', 'a', 't', 'a'}
)

// riffHeader is the 12-byte record opening every WAVE file.
type riffHeader struct {
	ID     [4]byte
	Size   uint32 // not validated
	Format [4]byte
}

func parseRIFFHeader(b []byte) riffHeader {
	var h riffHeader
	copy(h.ID[:], b[0:4])
	h.Size = binary.LittleEndian.Uint32(b[4:8])
	copy(h.Format[:], b[8:12])
	return h
}

func (h riffHeader) validate() error {
	if !tagsMatch(h.ID, riffID) {
		return fmt.Errorf("%w: container tag %q", ErrMalformedContainer, h.ID[:])
	}
	if !tagsMatch(h.Format, waveID) {
		return fmt.Errorf("%w: format tag %q", ErrMalformedContainer, h.Format[:])
	}
	return nil
}

// ChunkHeader is the generic sub-chunk header: a four byte identifier
// followed by the little-endian length of the payload that comes after it.
type ChunkHeader struct {
	ID   [4]byte
	Size uint32
}

func parseChunkHeader(b []byte) ChunkHeader {
	var h ChunkHeader
	copy(h.ID[:], b[0:4])
	h.Size = binary.LittleEndian.Uint32(b[4:8])
	return h
}

// span is the number of bytes the chunk occupies after its header,
// including the pad byte RIFF puts after odd-sized payloads.
func (h ChunkHeader) span(padded bool) int64 {
	n := int64(h.Size)
	if padded && n%2 == 1 {
		n++
	}
	return n
}

func (h ChunkHeader) String() string {
	return fmt.Sprintf("%q (%d bytes)", h.ID[:], h.Size)
}

// FormatChunk holds the fixed fields of the "fmt " sub-chunk.
type FormatChunk struct {
	AudioFormat   uint16
	NumChannels   uint16
	SampleRate    uint32
	ByteRate      uint32
	BlockAlign    uint16
	BitsPerSample uint16
}

// parseFormatFields reads the 16 fixed bytes following the fmt header.
func parseFormatFields(b []byte) FormatChunk {
	return FormatChunk{
		AudioFormat:   binary.LittleEndian.Uint16(b[0:2]),
		NumChannels:   binary.LittleEndian.Uint16(b[2:4]),
		SampleRate:    binary.LittleEndian.Uint32(b[4:8]),
		ByteRate:      binary.LittleEndian.Uint32(b[8:12]),
		BlockAlign:    binary.LittleEndian.Uint16(b[12:14]),
		BitsPerSample: binary.LittleEndian.Uint16(b[14:16]),
	}
}

// tagsMatch compares two chunk identifiers byte by byte. No case folding.
func tagsMatch(tag, expected [4]byte) bool {
	return tag == expected
}
