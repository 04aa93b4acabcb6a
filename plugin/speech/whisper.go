// Package speech provides voice-message transcription using the whisper.cpp
// CLI. The recognizer model is expensive to resolve, so a process-wide
// ModelCache lazily builds one handle and reuses it until the requested
// configuration changes.
package speech

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pkg/errors"
)

// Config holds the speech recognition configuration. Two configs comparing
// equal share one cached model handle.
type Config struct {
	// BinPath is the whisper.cpp CLI binary (name on PATH or full path).
	BinPath string
	// Model is a ggml model file path, or a size name resolved under the
	// user's whisper cache directory.
	Model string
	// Language is the spoken language hint; empty means autodetect.
	Language string
	// Device selects the compute device ("cpu" or "cuda").
	Device string
}

// DefaultConfig returns the default speech configuration.
func DefaultConfig() Config {
	return Config{
		BinPath:  "whisper-cli",
		Model:    "medium",
		Language: "en",
		Device:   "cpu",
	}
}

// TranscriptionError reports a failed transcription attempt.
type TranscriptionError struct {
	Stage string
	Err   error
}

func (e *TranscriptionError) Error() string {
	return fmt.Sprintf("transcription failed (%s): %v", e.Stage, e.Err)
}

func (e *TranscriptionError) Unwrap() error {
	return e.Err
}

// modelHandle is the resolved recognizer state: validated binary and model
// file paths plus the configuration they were resolved for.
type modelHandle struct {
	binPath   string
	modelPath string
	cfg       Config
}

// ModelCache guards the process-wide lazily constructed model handle. The
// check-and-possibly-reinitialize sequence runs under its lock; recognition
// itself does not.
type ModelCache struct {
	mu     sync.Mutex
	cfg    Config
	handle *modelHandle

	load func(Config) (*modelHandle, error)
}

// NewModelCache creates an empty model cache.
func NewModelCache() *ModelCache {
	return &ModelCache{load: loadModel}
}

// handleFor returns the cached handle for cfg, building or rebuilding it
// when the configuration changed.
func (c *ModelCache) handleFor(cfg Config) (*modelHandle, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.handle != nil && c.cfg == cfg {
		return c.handle, nil
	}

	handle, err := c.load(cfg)
	if err != nil {
		return nil, err
	}
	c.handle = handle
	c.cfg = cfg
	return handle, nil
}

// loadModel resolves the CLI binary and the model file for the given config.
func loadModel(cfg Config) (*modelHandle, error) {
	binPath, err := exec.LookPath(cfg.BinPath)
	if err != nil {
		return nil, errors.Wrapf(err, "whisper binary %q not found", cfg.BinPath)
	}

	modelPath, err := resolveModelPath(cfg.Model)
	if err != nil {
		return nil, err
	}

	slog.Info("whisper model loaded",
		"model", modelPath,
		"device", cfg.Device,
		"language", cfg.Language)

	return &modelHandle{binPath: binPath, modelPath: modelPath, cfg: cfg}, nil
}

// resolveModelPath accepts either a model file path or a bare size name
// looked up under ~/.cache/whisper.
func resolveModelPath(model string) (string, error) {
	if _, err := os.Stat(model); err == nil {
		return model, nil
	}
	if strings.ContainsRune(model, os.PathSeparator) {
		return "", errors.Errorf("whisper model file %q not found", model)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "resolve home directory")
	}
	candidate := filepath.Join(home, ".cache", "whisper", "ggml-"+model+".bin")
	if _, err := os.Stat(candidate); err != nil {
		return "", errors.Wrapf(err, "whisper model %q not found", model)
	}
	return candidate, nil
}

// runner abstracts the recognition exec for testing.
type runner interface {
	run(ctx context.Context, handle *modelHandle, audioPath string) (string, error)
}

// Transcriber turns voice-message audio into text.
type Transcriber struct {
	cfg    Config
	cache  *ModelCache
	runner runner
}

// New creates a transcriber sharing the given model cache.
func New(cfg Config, cache *ModelCache) *Transcriber {
	return &Transcriber{cfg: cfg, cache: cache, runner: cliRunner{}}
}

// Transcribe writes the audio bytes to a scoped temp file, runs recognition
// against the cached model and returns the recognized text. An empty string
// is a valid result when no speech was detected.
func (t *Transcriber) Transcribe(ctx context.Context, audio []byte) (string, error) {
	tmp, err := os.CreateTemp("", "voice_*.ogg")
	if err != nil {
		return "", &TranscriptionError{Stage: "temp file", Err: err}
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(audio); err != nil {
		tmp.Close()
		return "", &TranscriptionError{Stage: "temp file", Err: err}
	}
	if err := tmp.Close(); err != nil {
		return "", &TranscriptionError{Stage: "temp file", Err: err}
	}

	handle, err := t.cache.handleFor(t.cfg)
	if err != nil {
		return "", &TranscriptionError{Stage: "load model", Err: err}
	}

	// Recognition runs outside the cache lock.
	output, err := t.runner.run(ctx, handle, tmpPath)
	if err != nil {
		return "", &TranscriptionError{Stage: "recognize", Err: err}
	}

	text := joinSegments(output)
	slog.Info("transcription finished", "chars", len(text))
	return text, nil
}

// cliRunner invokes the whisper.cpp CLI.
type cliRunner struct{}

// cliArgs assembles the whisper-cli invocation for a resolved handle.
// The binary picks the GPU on its own when one is available, so the cpu
// device setting maps onto --no-gpu.
func cliArgs(handle *modelHandle, audioPath string) []string {
	args := []string{
		"-m", handle.modelPath,
		"-f", audioPath,
		"--no-timestamps",
		"--no-prints",
	}
	if handle.cfg.Language != "" {
		args = append(args, "-l", handle.cfg.Language)
	}
	if handle.cfg.Device == "cpu" {
		args = append(args, "--no-gpu")
	}
	return args
}

func (cliRunner) run(ctx context.Context, handle *modelHandle, audioPath string) (string, error) {
	cmd := exec.CommandContext(ctx, handle.binPath, cliArgs(handle, audioPath)...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		slog.Warn("whisper command failed", "error", err, "stderr", stderr.String())
		return "", errors.Wrap(err, "whisper command failed")
	}

	return stdout.String(), nil
}

// joinSegments trims the recognized segment lines and joins them with single
// spaces, preserving chronological order.
func joinSegments(output string) string {
	var segments []string
	for _, line := range strings.Split(output, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			segments = append(segments, line)
		}
	}
	return strings.Join(segments, " ")
}
