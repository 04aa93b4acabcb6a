package speech

import (
	"context"
	"os"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRunner records the audio path it was invoked with and can simulate
// recognizer output or failure.
type fakeRunner struct {
	output    string
	err       error
	audioPath string
	audioData []byte
}

func (f *fakeRunner) run(_ context.Context, _ *modelHandle, audioPath string) (string, error) {
	f.audioPath = audioPath
	// Capture the temp file contents while it still exists.
	data, err := os.ReadFile(audioPath)
	if err == nil {
		f.audioData = data
	}
	if f.err != nil {
		return "", f.err
	}
	return f.output, nil
}

func newFakeCache(loads *int) *ModelCache {
	cache := NewModelCache()
	cache.load = func(cfg Config) (*modelHandle, error) {
		*loads++
		return &modelHandle{binPath: "/fake/whisper-cli", modelPath: "/fake/model.bin", cfg: cfg}, nil
	}
	return cache
}

func TestTranscribeJoinsSegments(t *testing.T) {
	var loads int
	tr := New(DefaultConfig(), newFakeCache(&loads))
	runner := &fakeRunner{output: "  Bought bitcoin on the breakout. \n\n Closed half at resistance. \n"}
	tr.runner = runner

	text, err := tr.Transcribe(context.Background(), []byte("fake-ogg-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "Bought bitcoin on the breakout. Closed half at resistance.", text)
	assert.Equal(t, []byte("fake-ogg-bytes"), runner.audioData, "temp file must contain the audio bytes")
}

func TestTranscribeEmptyOutputIsValid(t *testing.T) {
	var loads int
	tr := New(DefaultConfig(), newFakeCache(&loads))
	tr.runner = &fakeRunner{output: "   \n  \n"}

	text, err := tr.Transcribe(context.Background(), []byte("silence"))
	require.NoError(t, err)
	assert.Equal(t, "", text)
}

func TestTranscribeRemovesTempFile(t *testing.T) {
	var loads int
	tr := New(DefaultConfig(), newFakeCache(&loads))
	runner := &fakeRunner{output: "hello"}
	tr.runner = runner

	_, err := tr.Transcribe(context.Background(), []byte("audio"))
	require.NoError(t, err)

	_, statErr := os.Stat(runner.audioPath)
	assert.True(t, os.IsNotExist(statErr), "temp audio file must be removed")
}

func TestTranscribeRemovesTempFileOnFailure(t *testing.T) {
	var loads int
	tr := New(DefaultConfig(), newFakeCache(&loads))
	runner := &fakeRunner{err: errors.New("recognizer blew up")}
	tr.runner = runner

	_, err := tr.Transcribe(context.Background(), []byte("audio"))

	var terr *TranscriptionError
	require.True(t, errors.As(err, &terr))
	assert.Equal(t, "recognize", terr.Stage)

	_, statErr := os.Stat(runner.audioPath)
	assert.True(t, os.IsNotExist(statErr), "temp audio file must be removed on failure too")
}

func TestModelCacheReuse(t *testing.T) {
	var loads int
	cache := newFakeCache(&loads)
	tr := New(DefaultConfig(), cache)
	tr.runner = &fakeRunner{output: "one"}

	_, err := tr.Transcribe(context.Background(), []byte("a"))
	require.NoError(t, err)
	_, err = tr.Transcribe(context.Background(), []byte("b"))
	require.NoError(t, err)

	assert.Equal(t, 1, loads, "unchanged configuration must reuse the cached model")
}

func TestModelCacheRebuildOnConfigChange(t *testing.T) {
	var loads int
	cache := newFakeCache(&loads)

	first := New(DefaultConfig(), cache)
	first.runner = &fakeRunner{output: "one"}
	_, err := first.Transcribe(context.Background(), []byte("a"))
	require.NoError(t, err)

	changed := DefaultConfig()
	changed.Model = "large"
	second := New(changed, cache)
	second.runner = &fakeRunner{output: "two"}
	_, err = second.Transcribe(context.Background(), []byte("b"))
	require.NoError(t, err)

	assert.Equal(t, 2, loads, "a configuration change must rebuild the model handle")
}

func TestModelCacheLoadFailure(t *testing.T) {
	cache := NewModelCache()
	cache.load = func(Config) (*modelHandle, error) {
		return nil, errors.New("model file missing")
	}
	tr := New(DefaultConfig(), cache)
	tr.runner = &fakeRunner{output: "unused"}

	_, err := tr.Transcribe(context.Background(), []byte("a"))

	var terr *TranscriptionError
	require.True(t, errors.As(err, &terr))
	assert.Equal(t, "load model", terr.Stage)
}

func TestCliArgs(t *testing.T) {
	handle := &modelHandle{
		binPath:   "/usr/bin/whisper-cli",
		modelPath: "/models/ggml-medium.bin",
		cfg:       Config{Language: "en", Device: "cpu"},
	}

	args := cliArgs(handle, "/tmp/voice.ogg")
	assert.Equal(t, []string{
		"-m", "/models/ggml-medium.bin",
		"-f", "/tmp/voice.ogg",
		"--no-timestamps",
		"--no-prints",
		"-l", "en",
		"--no-gpu",
	}, args)
}

func TestCliArgsGPUAndAutodetect(t *testing.T) {
	handle := &modelHandle{
		modelPath: "/models/ggml-medium.bin",
		cfg:       Config{Device: "cuda"},
	}

	args := cliArgs(handle, "/tmp/voice.ogg")
	assert.NotContains(t, args, "--no-gpu", "non-cpu device must leave GPU selection to the binary")
	assert.NotContains(t, args, "-l")
}

func TestJoinSegments(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		output string
	}{
		{"empty", "", ""},
		{"whitespace only", " \n \n ", ""},
		{"single line", " hello world \n", "hello world"},
		{"multiple lines", "first segment\nsecond segment\n", "first segment second segment"},
		{"blank lines between", "a\n\n\nb", "a b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.output, joinSegments(tt.input))
		})
	}
}
