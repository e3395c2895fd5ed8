// SPDX-License-Identifier: EPL-2.0

// Package lime loads sound effects and music stored as RIFF/WAVE files.
//
// The decoding itself lives in formats/wav; this package wires it to the
// format registry and offers one-call helpers.
//
// # Quick Start
//
// Load returns the raw format fields and PCM payload:
//
//	snd, err := lime.Load(wav.Resource{Path: "sounds/jump.wav"})
//	if err != nil {
//	    // errors.Is(err, wav.ErrMissingChunk) and friends
//	}
//	fmt.Println(snd.SampleRate, snd.Channels, snd.BitsPerSample, len(snd.Data))
//
// Sounds already in memory are decoded from the slice, without touching
// the file system:
//
//	snd, err := lime.Load(wav.Resource{Data: embedded})
//
// Decoder options are passed through:
//
//	snd, err := lime.Load(res, wav.WithLogger(log), wav.WithIgnorePadding(true))
//
// # Sample Access
//
// Open picks a decoder by extension and returns an audio.Source of
// normalised float32 samples:
//
//	src, err := lime.Open("music/theme.wav")
//	pcm16, err := lime.ReadPCM16(src, 4096)
//
// Formats can be extended with other audio.Decoder implementations:
//
//	lime.Formats.Register("bwf", wav.Decoder{})
//
// See the formats/wav package for the container rules and error classes.
package lime
