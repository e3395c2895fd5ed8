// SPDX-License-Identifier: EPL-2.0

package wav

import "errors"

var (
	// ErrResourceOpen indicates the source could not be opened or read
	ErrResourceOpen = errors.New("cannot open WAV resource")

	// ErrMalformedContainer indicates a RIFF/WAVE tag mismatch or an unusable format chunk
	ErrMalformedContainer = errors.New("malformed RIFF/WAVE container")

	// ErrMissingChunk indicates the fmt or data chunk is absent
	ErrMissingChunk = errors.New("missing WAV chunk")

	// ErrTruncatedPayload indicates a declared size beyond the available bytes or a short read
	ErrTruncatedPayload = errors.New("truncated WAV payload")

	// ErrUnsupportedBitDepth indicates the payload cannot be converted to integer samples
	ErrUnsupportedBitDepth = errors.New("unsupported PCM bit depth")

	// ErrNilSound is returned when a decode is given no Sound to fill
	ErrNilSound = errors.New("nil Sound")
)
