// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/rs/xid"
	"go.uber.org/zap"

	"github.com/mbalestrini/lime/audio"
)

// Decoder decodes RIFF/WAVE containers holding PCM audio.
// The zero value is ready to use: it logs nothing, opens paths with
// FileOpener and honours RIFF pad bytes after odd-sized chunks.
type Decoder struct {
	Logger *zap.Logger
	Opener Opener
	// IgnorePadding walks chunks by their declared size only, for files
	// written without the pad byte after odd-sized chunks.
	IgnorePadding bool
}

// Option configures a Decoder built by NewDecoder.
type Option func(*Decoder)

// WithLogger sets the logger decode sessions are derived from.
func WithLogger(l *zap.Logger) Option {
	return func(d *Decoder) { d.Logger = l }
}

// WithOpener sets how Resource paths are opened.
func WithOpener(o Opener) Option {
	return func(d *Decoder) { d.Opener = o }
}

// WithIgnorePadding sets Decoder.IgnorePadding.
func WithIgnorePadding(ignore bool) Option {
	return func(d *Decoder) { d.IgnorePadding = ignore }
}

// NewDecoder returns a Decoder with opts applied.
func NewDecoder(opts ...Option) *Decoder {
	d := &Decoder{}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d Decoder) logger() *zap.Logger {
	if d.Logger == nil {
		return zap.NewNop()
	}
	return d.Logger
}

func (d Decoder) opener() Opener {
	if d.Opener == nil {
		return FileOpener{}
	}
	return d.Opener
}

func (d Decoder) scanner(log *zap.Logger) scanner {
	return scanner{padded: !d.IgnorePadding, log: log}
}

func (d Decoder) session(mode string) *zap.Logger {
	return d.logger().With(
		zap.String("decode_id", xid.New().String()),
		zap.String("mode", mode),
	)
}

// DecodeResource decodes res into snd. A path is decoded in stream mode,
// a byte slice in buffer mode; both yield the same Sound for the same bytes.
// On failure snd is left untouched.
func (d Decoder) DecodeResource(res Resource, snd *Sound) error {
	switch {
	case res.Path != "":
		return d.decodePath(res.Path, res.Offset, snd)
	case res.Data != nil:
		return d.DecodeBytes(res.Data, snd)
	default:
		return fmt.Errorf("%w: resource has neither path nor data", ErrResourceOpen)
	}
}

// DecodeFile opens path with the decoder's Opener and decodes it in stream mode.
// The file is closed before DecodeFile returns.
func (d Decoder) DecodeFile(path string, snd *Sound) error {
	return d.decodePath(path, 0, snd)
}

// DecodeBytes decodes an in-memory WAVE image.
func (d Decoder) DecodeBytes(data []byte, snd *Sound) error {
	log := d.session("buffer")
	return finish(log, snd, d.decodeBuffer(data, snd, log))
}

// DecodeStream decodes a WAVE image starting at the current position of r.
// r is not closed.
func (d Decoder) DecodeStream(r io.ReadSeeker, snd *Sound) error {
	log := d.session("stream")
	return finish(log, snd, d.decodeStream(r, snd, log))
}

// Decode implements audio.Decoder. Seekable readers are decoded in stream
// mode, anything else is read into memory first.
func (d Decoder) Decode(r io.Reader) (audio.Source, error) {
	var snd Sound

	if rs, ok := r.(io.ReadSeeker); ok {
		if err := d.DecodeStream(rs, &snd); err != nil {
			return nil, err
		}
	} else {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrResourceOpen, err)
		}
		if err := d.DecodeBytes(data, &snd); err != nil {
			return nil, err
		}
	}

	return NewSource(&snd)
}

func (d Decoder) decodePath(path string, offset int64, snd *Sound) error {
	log := d.session("stream").With(zap.String("path", path))

	f, err := d.opener().Open(path)
	if err != nil {
		return finish(log, snd, fmt.Errorf("%w: %w", ErrResourceOpen, err))
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.Warn("closing resource", zap.Error(err))
		}
	}()

	if offset != 0 {
		if _, err := f.Seek(offset, io.SeekStart); err != nil {
			return finish(log, snd, fmt.Errorf("%w: seeking to offset %d: %w", ErrResourceOpen, offset, err))
		}
	}

	return finish(log, snd, d.decodeStream(f, snd, log))
}

func finish(log *zap.Logger, snd *Sound, err error) error {
	if err != nil {
		log.Warn("decode failed", zap.Error(err))
		return err
	}

	log.Debug("decoded",
		zap.Int("sample_rate", snd.SampleRate),
		zap.Int("channels", snd.Channels),
		zap.Int("bits_per_sample", snd.BitsPerSample),
		zap.Int("bytes", len(snd.Data)),
	)
	return nil
}

func (d Decoder) decodeBuffer(data []byte, snd *Sound, log *zap.Logger) error {
	if snd == nil {
		return ErrNilSound
	}

	if len(data) < riffHeaderSize {
		return fmt.Errorf("%w: %d bytes is too short for a RIFF header", ErrTruncatedPayload, len(data))
	}
	if err := parseRIFFHeader(data).validate(); err != nil {
		return err
	}

	sc := d.scanner(log)

	pos, ok := sc.find(data, riffHeaderSize, fmtID)
	if !ok {
		return fmt.Errorf("%w: %q", ErrMissingChunk, fmtID[:])
	}
	fh := parseChunkHeader(data[pos:])
	if err := fh.checkFormat(); err != nil {
		return err
	}

	body := pos + chunkHeaderSize
	if len(data)-body < formatFieldsSize {
		return fmt.Errorf("%w: format chunk ends after %d bytes", ErrTruncatedPayload, len(data)-body)
	}
	format := parseFormatFields(data[body:])

	// the extension bytes are covered by the declared size
	next := min(int64(body)+fh.span(sc.padded), int64(len(data)))

	pos, ok = sc.find(data, int(next), dataID)
	if !ok {
		return fmt.Errorf("%w: %q", ErrMissingChunk, dataID[:])
	}
	dh := parseChunkHeader(data[pos:])

	base := pos + chunkHeaderSize
	if int64(dh.Size) > int64(len(data)-base) {
		return fmt.Errorf("%w: data chunk declares %d bytes, %d available", ErrTruncatedPayload, dh.Size, len(data)-base)
	}

	payload := make([]byte, dh.Size)
	copy(payload, data[base:])

	snd.fill(format, payload)
	return nil
}

func (d Decoder) decodeStream(r io.ReadSeeker, snd *Sound, log *zap.Logger) error {
	if snd == nil {
		return ErrNilSound
	}

	var hb [riffHeaderSize]byte
	if _, err := io.ReadFull(r, hb[:]); err != nil {
		return readFailure(err, "RIFF header")
	}
	if err := parseRIFFHeader(hb[:]).validate(); err != nil {
		return err
	}

	sc := d.scanner(log)

	fh, err := sc.seek(r, fmtID)
	if err != nil {
		return err
	}
	if err := fh.checkFormat(); err != nil {
		return err
	}

	var fb [formatFieldsSize]byte
	if _, err := io.ReadFull(r, fb[:]); err != nil {
		return readFailure(err, "format chunk")
	}
	format := parseFormatFields(fb[:])

	if ext := fh.span(sc.padded) - formatFieldsSize; ext > 0 {
		if _, err := r.Seek(ext, io.SeekCurrent); err != nil {
			return fmt.Errorf("%w: skipping %d format extension bytes: %w", ErrResourceOpen, ext, err)
		}
	}

	dh, err := sc.seek(r, dataID)
	if err != nil {
		return err
	}

	// grows with what actually arrives instead of trusting the declared size up front
	var payload bytes.Buffer
	if n, err := io.CopyN(&payload, r, int64(dh.Size)); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: data chunk declares %d bytes, read %d", ErrTruncatedPayload, dh.Size, n)
		}
		return fmt.Errorf("%w: reading data payload: %w", ErrResourceOpen, err)
	}

	snd.fill(format, payload.Bytes())
	return nil
}

// checkFormat re-validates a located format header before its fields are read.
func (h ChunkHeader) checkFormat() error {
	if !tagsMatch(h.ID, fmtID) {
		return fmt.Errorf("%w: expected format chunk, got %v", ErrMalformedContainer, h)
	}
	if h.Size < formatFieldsSize {
		return fmt.Errorf("%w: format chunk declares %d bytes, need %d", ErrMalformedContainer, h.Size, formatFieldsSize)
	}
	return nil
}

func readFailure(err error, what string) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: short read of %s", ErrTruncatedPayload, what)
	}
	return fmt.Errorf("%w: reading %s: %w", ErrResourceOpen, what, err)
}
