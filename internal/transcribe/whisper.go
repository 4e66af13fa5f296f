package transcribe

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/malavshah9/audiobrief/internal/runner"
)

// officialVariants are the whisper.cpp model families surfaced to users.
// A weights file whose name matches none of these (fine-tunes, quantized
// experiments) stays hidden from the model picker.
var officialVariants = []string{"base", "small", "medium", "large", "large-V3"}

// WhisperCLI transcribes audio by invoking the whisper.cpp command line
// binary as a subprocess. One invocation per request; the engine holds no
// state between calls.
type WhisperCLI struct {
	binPath  string
	modelDir string
	timeout  time.Duration
	run      runner.Runner
}

func NewWhisperCLI(binPath, modelDir string, timeout time.Duration, run runner.Runner) *WhisperCLI {
	return &WhisperCLI{
		binPath:  binPath,
		modelDir: modelDir,
		timeout:  timeout,
		run:      run,
	}
}

func (w *WhisperCLI) Name() string {
	return "whisper-cli"
}

// Transcribe runs the engine against audioPath with the named model variant
// and returns the normalized transcript. The subprocess is bounded by the
// configured timeout and killed when it expires or the caller goes away.
func (w *WhisperCLI) Transcribe(ctx context.Context, audioPath, model string) (string, error) {
	modelPath, err := w.resolveModel(model)
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	out, err := w.run.Run(ctx, w.binPath, "-m", modelPath, "-f", audioPath)
	if err != nil {
		return "", fmt.Errorf("whisper: %w", err)
	}

	text := Normalize(out)
	if text == "" {
		return "", ErrEmptyTranscript
	}
	return text, nil
}

// resolveModel maps a variant name like "base" to its ggml weights file and
// verifies the file is actually downloaded.
func (w *WhisperCLI) resolveModel(model string) (string, error) {
	if model == "" {
		return "", fmt.Errorf("whisper model not specified")
	}
	path := filepath.Join(w.modelDir, "ggml-"+model+".bin")
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("whisper model %q not found in %s: %w", model, w.modelDir, err)
	}
	return path, nil
}

// Models scans the model directory for downloaded ggml weight files and
// returns the variant names, deduplicated and sorted. Test fixtures and
// unofficial variants are skipped.
func (w *WhisperCLI) Models() ([]string, error) {
	entries, err := os.ReadDir(w.modelDir)
	if err != nil {
		return nil, fmt.Errorf("read model dir %s: %w", w.modelDir, err)
	}

	seen := make(map[string]bool)
	var models []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, "ggml-") || !strings.HasSuffix(name, ".bin") {
			continue
		}
		variant := strings.TrimSuffix(strings.TrimPrefix(name, "ggml-"), ".bin")
		if strings.Contains(variant, "test") || !isOfficialVariant(variant) || seen[variant] {
			continue
		}
		seen[variant] = true
		models = append(models, variant)
	}

	sort.Strings(models)
	return models, nil
}

func isOfficialVariant(variant string) bool {
	for _, official := range officialVariants {
		if strings.Contains(variant, official) {
			return true
		}
	}
	return false
}
