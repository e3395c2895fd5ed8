// SPDX-License-Identifier: EPL-2.0

package main

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbalestrini/lime/internal/audiotest"
	"github.com/mbalestrini/lime/internal/config"
)

func writeFixture(t *testing.T, dir, name string, img []byte) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, img, 0o600))
	return path
}

func TestRun(t *testing.T) {
	t.Setenv(config.EnvLogLevel, "")

	dir := t.TempDir()
	// 0x4000 is half scale, -6.0 dBFS
	pcm := bytes.Repeat([]byte{0x00, 0x40, 0x00, 0x00}, 4000)
	path := writeFixture(t, dir, "half.wav", audiotest.Minimal(audiotest.PCM(8000, 2, 16), pcm))

	for _, mode := range []string{config.ModeStream, config.ModeBuffer} {
		t.Run(mode, func(t *testing.T) {
			var stdout, stderr bytes.Buffer

			require.NoError(t, run([]string{"-mode", mode, path}, &stdout, &stderr))

			out := stdout.String()
			assert.Contains(t, out, "sample rate: 8000 Hz")
			assert.Contains(t, out, "channels:    2")
			assert.Contains(t, out, "bits:        16")
			assert.Contains(t, out, "data:        16000 bytes, 4000 frames")
			assert.Contains(t, out, "duration:    500ms")
			assert.Contains(t, out, "peak:        -6.0 dBFS")
		})
	}
}

func TestRun_ConfigFile(t *testing.T) {
	t.Setenv(config.EnvLogLevel, "")

	dir := t.TempDir()
	img := audiotest.NewBuilder().
		UnpaddedChunk("JUNK", []byte{1}).
		Format(audiotest.PCM(8000, 1, 8)).
		Data([]byte{128, 128}).
		Bytes()
	path := writeFixture(t, dir, "unpadded.wav", img)

	var stdout, stderr bytes.Buffer
	require.Error(t, run([]string{path}, &stdout, &stderr))

	cfgPath := writeFixture(t, dir, "lime.yaml", []byte("decoder:\n  ignore_padding: true\nlog:\n  level: error\n"))

	stdout.Reset()
	require.NoError(t, run([]string{"-config", cfgPath, path}, &stdout, &stderr))
	assert.Contains(t, stdout.String(), "peak:        -Inf dBFS")

	// an explicit false flag overrides the file
	assert.Error(t, run([]string{"-config", cfgPath, "-ignore-padding=false", path}, &stdout, &stderr))
	require.NoError(t, run([]string{"-ignore-padding", path}, &stdout, &stderr))
}

// A stray partial header where data should be is reported differently by
// the two modes, which shows which one ran.
func TestRun_ModeFlagOverridesConfig(t *testing.T) {
	t.Setenv(config.EnvLogLevel, "")

	dir := t.TempDir()
	path := writeFixture(t, dir, "stray.wav", audiotest.NewBuilder().
		Format(audiotest.PCM(8000, 1, 16)).
		Raw([]byte{'d', 'a'}).
		Bytes())
	cfgPath := writeFixture(t, dir, "lime.yaml", []byte("decoder:\n  mode: buffer\nlog:\n  level: error\n"))

	var stdout, stderr bytes.Buffer
	require.Error(t, run([]string{"-config", cfgPath, path}, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "missing WAV chunk")
	assert.NotContains(t, stderr.String(), "truncated WAV payload")

	stderr.Reset()
	require.Error(t, run([]string{"-config", cfgPath, "-mode", "stream", path}, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "truncated WAV payload")

	assert.Error(t, run([]string{"-config", cfgPath, "-mode", "mmap", path}, &stdout, &stderr))
}

func TestRun_Failures(t *testing.T) {
	t.Setenv(config.EnvLogLevel, "")

	dir := t.TempDir()
	good := writeFixture(t, dir, "good.wav", audiotest.Minimal(audiotest.PCM(8000, 1, 16), make([]byte, 4)))
	bad := writeFixture(t, dir, "bad.wav", []byte("RIFF\x04\x00\x00\x00AVI "))

	var stdout, stderr bytes.Buffer

	err := run([]string{good, bad, filepath.Join(dir, "absent.wav")}, &stdout, &stderr)
	require.EqualError(t, err, "2 of 3 files failed to decode")
	assert.Contains(t, stdout.String(), "good.wav:")
	assert.Contains(t, stderr.String(), "cannot describe file")

	assert.ErrorIs(t, run(nil, &stdout, &stderr), errUsage)
	assert.Error(t, run([]string{"-mode", "mmap", good}, &stdout, &stderr))
}

func TestRun_UnsupportedDepth(t *testing.T) {
	t.Setenv(config.EnvLogLevel, "")

	path := writeFixture(t, t.TempDir(), "twelve.wav", audiotest.Minimal(audiotest.PCM(8000, 1, 12), make([]byte, 6)))

	var stdout, stderr bytes.Buffer
	require.NoError(t, run([]string{path}, &stdout, &stderr))
	assert.Contains(t, stdout.String(), "bits:        12")
	assert.Contains(t, stdout.String(), "peak:        n/a")
}

func TestPeakDBFS(t *testing.T) {
	t.Parallel()

	assert.True(t, math.IsInf(peakDBFS(nil), -1))
	assert.InDelta(t, 0, peakDBFS([]int16{-32767, 12}), 1e-9)
	assert.InDelta(t, -6.02, peakDBFS([]int16{16383}), 0.01)
}
