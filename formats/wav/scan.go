// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"
)

// scanner walks sub-chunk headers looking for a given identifier.
// Chunks that do not match are skipped by their declared size.
type scanner struct {
	padded bool
	log    *zap.Logger
}

func (s scanner) skipped(h ChunkHeader, want [4]byte) {
	s.log.Debug("skipping chunk",
		zap.ByteString("id", h.ID[:]),
		zap.Uint32("size", h.Size),
		zap.ByteString("looking_for", want[:]),
	)
}

// find returns the offset of the first header at or after start whose
// identifier is tag. Every header read is bounds checked against buf.
func (s scanner) find(buf []byte, start int, tag [4]byte) (int, bool) {
	pos := start
	for pos >= 0 && len(buf)-pos >= chunkHeaderSize {
		h := parseChunkHeader(buf[pos:])
		if tagsMatch(h.ID, tag) {
			return pos, true
		}
		s.skipped(h, tag)

		next := int64(pos) + chunkHeaderSize + h.span(s.padded)
		if next > int64(len(buf)) {
			return 0, false
		}
		pos = int(next)
	}

	return 0, false
}

// seek reads headers from r until one matches tag, leaving r positioned at
// the first payload byte of the matching chunk.
func (s scanner) seek(r io.ReadSeeker, tag [4]byte) (ChunkHeader, error) {
	var b [chunkHeaderSize]byte

	for {
		if _, err := io.ReadFull(r, b[:]); err != nil {
			switch {
			case errors.Is(err, io.EOF):
				return ChunkHeader{}, fmt.Errorf("%w: %q not found before end of stream", ErrMissingChunk, tag[:])
			case errors.Is(err, io.ErrUnexpectedEOF):
				return ChunkHeader{}, fmt.Errorf("%w: short chunk header while looking for %q", ErrTruncatedPayload, tag[:])
			default:
				return ChunkHeader{}, fmt.Errorf("%w: %w", ErrResourceOpen, err)
			}
		}

		h := parseChunkHeader(b[:])
		if tagsMatch(h.ID, tag) {
			return h, nil
		}
		s.skipped(h, tag)

		if _, err := r.Seek(h.span(s.padded), io.SeekCurrent); err != nil {
			return ChunkHeader{}, fmt.Errorf("%w: skipping %v: %w", ErrResourceOpen, h, err)
		}
	}
}
