// SPDX-License-Identifier: EPL-2.0

// Package audio defines the interfaces shared by the format decoders.
//
// # Source Interface
//
// A Source hands out decoded PCM as normalised float32 samples:
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    BufSize() int
//	    Close() error
//	}
//
// Samples are interleaved and lie in [-1.0, 1.0] whatever the bit depth of
// the original file. ReadSamples returns io.EOF once the data is exhausted:
//
//	for {
//	    n, err := source.ReadSamples(buf)
//	    // use buf[:n]
//	    if err == io.EOF {
//	        break
//	    }
//	    if err != nil {
//	        return err
//	    }
//	}
//
// # Format Registry
//
// The registry picks a decoder from a file extension:
//
//	registry := audio.NewRegistry()
//	registry.Register("wav", wav.Decoder{})
//	decoder, err := registry.Lookup("sounds/beep.wav")
//
// Extensions are matched case-insensitively and may be given with or
// without the leading dot. Lookup wraps ErrUnknownFormat when nothing is
// registered for the extension.
package audio
