// SPDX-License-Identifier: EPL-2.0

// Package wav decodes RIFF/WAVE files holding PCM audio.
//
// A decode walks the container, skips chunks it does not need and copies
// the format fields and the data payload into a Sound:
//
//	var snd wav.Sound
//	err := wav.Decoder{}.DecodeResource(wav.Resource{Path: "beep.wav"}, &snd)
//
// # Modes
//
// Files are decoded in stream mode: headers are read one at a time and
// unwanted chunks are skipped with Seek, so only the payload is held in
// memory. A byte slice is decoded in buffer mode, which indexes the slice
// directly and checks every header against its length. Both modes return
// the same Sound for the same bytes.
//
// Resource.Offset starts a stream decode part way into a file, for sounds
// packed inside a larger archive. Paths are opened through an Opener, so
// an fs.FS can stand in for the operating system with FSOpener.
//
// # Chunk Walk
//
// Chunks other than "fmt " and "data" are skipped by their declared size
// plus the pad byte RIFF requires after odd-sized chunks. Files written
// without that pad byte decode with IgnorePadding set. A fmt chunk longer
// than 16 bytes has its extension skipped.
//
// # Errors
//
// Every failure to read the input wraps exactly one of ErrResourceOpen,
// ErrMalformedContainer, ErrMissingChunk or ErrTruncatedPayload. Calling a
// decode with a nil *Sound returns ErrNilSound instead. Match with errors.Is:
//
//	if errors.Is(err, wav.ErrMissingChunk) {
//	    // no fmt or data chunk
//	}
//
// The Sound passed in is only written when the decode succeeds.
//
// # Samples
//
// Sound.IntBuffer converts 8, 16, 24 and 32-bit PCM into a go-audio
// IntBuffer, and Decoder.Decode serves the same samples as an
// audio.Source of normalised float32 values.
package wav
