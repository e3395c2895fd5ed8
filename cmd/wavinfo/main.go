// SPDX-License-Identifier: EPL-2.0

// Command wavinfo decodes WAVE files and prints their format.
//
//	wavinfo [-config lime.yaml] [-mode stream|buffer] [-ignore-padding] file.wav...
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/mbalestrini/lime"
	"github.com/mbalestrini/lime/formats/wav"
	"github.com/mbalestrini/lime/internal/config"
	"github.com/mbalestrini/lime/internal/logger"
)

var errUsage = errors.New("usage: wavinfo [-config file] [-mode stream|buffer] [-ignore-padding] <file.wav>...")

func main() {
	// .env is optional
	_ = godotenv.Load()

	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("wavinfo", flag.ContinueOnError)
	fs.SetOutput(stderr)

	configPath := fs.String("config", "", "YAML configuration file")
	mode := fs.String("mode", config.ModeStream, "decode mode: stream or buffer (overrides config)")
	ignorePadding := fs.Bool("ignore-padding", false, "walk chunks without RIFF pad bytes")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return errUsage
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	// flags given on the command line win over the config file
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "mode":
			cfg.Decoder.Mode = *mode
		case "ignore-padding":
			cfg.Decoder.IgnorePadding = *ignorePadding
		}
	})
	if err := cfg.Validate(); err != nil {
		return err
	}

	log, closeLog, err := logger.New(cfg.Log, stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	opts := []wav.Option{
		wav.WithLogger(log),
		wav.WithIgnorePadding(cfg.Decoder.IgnorePadding),
	}

	var failed int
	for _, path := range fs.Args() {
		if err := describe(stdout, path, cfg.Decoder.Mode, opts); err != nil {
			log.Error("cannot describe file", zap.String("path", path), zap.Error(err))
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed to decode", failed, fs.NArg())
	}
	return nil
}

func resourceFor(path, mode string) (wav.Resource, error) {
	if mode != config.ModeBuffer {
		return wav.Resource{Path: path}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return wav.Resource{}, fmt.Errorf("%w: %w", wav.ErrResourceOpen, err)
	}
	return wav.Resource{Data: data}, nil
}

func describe(w io.Writer, path, mode string, opts []wav.Option) error {
	res, err := resourceFor(path, mode)
	if err != nil {
		return err
	}

	snd, err := lime.Load(res, opts...)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "%s:\n", path)
	fmt.Fprintf(w, "  format:      %d\n", snd.Format.AudioFormat)
	fmt.Fprintf(w, "  sample rate: %d Hz\n", snd.SampleRate)
	fmt.Fprintf(w, "  channels:    %d\n", snd.Channels)
	fmt.Fprintf(w, "  bits:        %d\n", snd.BitsPerSample)
	fmt.Fprintf(w, "  data:        %d bytes, %d frames\n", len(snd.Data), snd.Frames())
	fmt.Fprintf(w, "  duration:    %v\n", snd.Duration())

	src, err := wav.NewSource(snd)
	if errors.Is(err, wav.ErrUnsupportedBitDepth) {
		fmt.Fprintf(w, "  peak:        n/a\n")
		return nil
	}
	if err != nil {
		return err
	}
	defer src.Close()

	pcm16, err := lime.ReadPCM16(src, 4096)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "  peak:        %.1f dBFS\n", peakDBFS(pcm16))
	return nil
}

// peakDBFS is -Inf for silence.
func peakDBFS(pcm16 []int16) float64 {
	var peak int
	for _, s := range pcm16 {
		v := int(s)
		if v < 0 {
			v = -v
		}
		peak = max(peak, v)
	}
	if peak == 0 {
		return math.Inf(-1)
	}
	return 20 * math.Log10(float64(peak)/math.MaxInt16)
}
