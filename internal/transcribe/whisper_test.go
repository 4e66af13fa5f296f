package transcribe

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

type fakeRunner struct {
	calls [][]string
	out   string
	err   error
	block bool // wait for ctx cancellation instead of returning
}

func (f *fakeRunner) Run(ctx context.Context, name string, args ...string) (string, error) {
	f.calls = append(f.calls, append([]string{name}, args...))
	if f.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return f.out, f.err
}

func modelDir(t *testing.T, files ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, name := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("ggml"), 0o644); err != nil {
			t.Fatalf("write model fixture %s: %v", name, err)
		}
	}
	return dir
}

func TestTranscribe(t *testing.T) {
	dir := modelDir(t, "ggml-base.bin")
	fake := &fakeRunner{out: "[00:00:00.000 --> 00:00:02.000]  Hello world.\n"}
	w := NewWhisperCLI("/usr/local/bin/whisper-cli", dir, time.Minute, fake)

	got, err := w.Transcribe(context.Background(), "/tmp/staged.wav", "base")
	if err != nil {
		t.Fatalf("Transcribe() error = %v", err)
	}
	if got != "Hello world." {
		t.Errorf("Transcribe() = %q, want %q", got, "Hello world.")
	}

	want := []string{
		"/usr/local/bin/whisper-cli",
		"-m", filepath.Join(dir, "ggml-base.bin"),
		"-f", "/tmp/staged.wav",
	}
	if len(fake.calls) != 1 || !reflect.DeepEqual(fake.calls[0], want) {
		t.Errorf("whisper argv = %v, want %v", fake.calls, want)
	}
}

func TestTranscribeEmptyOutput(t *testing.T) {
	dir := modelDir(t, "ggml-base.bin")
	fake := &fakeRunner{out: "[00:00:00.000 --> 00:00:01.000]   \n\n"}
	w := NewWhisperCLI("whisper-cli", dir, time.Minute, fake)

	_, err := w.Transcribe(context.Background(), "/tmp/staged.wav", "base")
	if !errors.Is(err, ErrEmptyTranscript) {
		t.Errorf("Transcribe() error = %v, want ErrEmptyTranscript", err)
	}
}

func TestTranscribeMissingModel(t *testing.T) {
	dir := modelDir(t, "ggml-base.bin")
	fake := &fakeRunner{}
	w := NewWhisperCLI("whisper-cli", dir, time.Minute, fake)

	_, err := w.Transcribe(context.Background(), "/tmp/staged.wav", "large")
	if err == nil {
		t.Fatal("Transcribe() error = nil, want missing model error")
	}
	if len(fake.calls) != 0 {
		t.Error("engine ran despite missing model weights")
	}
}

func TestTranscribeNoModelNamed(t *testing.T) {
	w := NewWhisperCLI("whisper-cli", modelDir(t), time.Minute, &fakeRunner{})
	if _, err := w.Transcribe(context.Background(), "/tmp/staged.wav", ""); err == nil {
		t.Error("Transcribe() error = nil, want error for empty model name")
	}
}

func TestTranscribeTimeout(t *testing.T) {
	dir := modelDir(t, "ggml-base.bin")
	fake := &fakeRunner{block: true}
	w := NewWhisperCLI("whisper-cli", dir, 30*time.Millisecond, fake)

	_, err := w.Transcribe(context.Background(), "/tmp/staged.wav", "base")
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Transcribe() error = %v, want context.DeadlineExceeded", err)
	}
}

func TestModels(t *testing.T) {
	// tiny is not an official variant, the test fixture and the gguf file
	// have disqualifying names, and notes.txt is not a model at all.
	dir := modelDir(t,
		"ggml-base.bin",
		"ggml-base.en.bin",
		"ggml-small.bin",
		"ggml-large-V3.bin",
		"ggml-tiny.bin",
		"ggml-base-test.bin",
		"ggml-small.en-q5_1.gguf",
		"notes.txt",
	)
	// Directories never count, even with a plausible name.
	if err := os.Mkdir(filepath.Join(dir, "ggml-medium.bin"), 0o755); err != nil {
		t.Fatalf("mkdir fixture: %v", err)
	}

	w := NewWhisperCLI("whisper-cli", dir, time.Minute, &fakeRunner{})
	got, err := w.Models()
	if err != nil {
		t.Fatalf("Models() error = %v", err)
	}

	want := []string{"base", "base.en", "large-V3", "small"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Models() = %v, want %v", got, want)
	}
}

func TestModelsEmptyDir(t *testing.T) {
	w := NewWhisperCLI("whisper-cli", modelDir(t), time.Minute, &fakeRunner{})
	got, err := w.Models()
	if err != nil {
		t.Fatalf("Models() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Models() = %v, want empty", got)
	}
}

func TestModelsBadDir(t *testing.T) {
	w := NewWhisperCLI("whisper-cli", "/nonexistent/models", time.Minute, &fakeRunner{})
	if _, err := w.Models(); err == nil {
		t.Error("Models() error = nil, want read error")
	}
}
