// Package staging prepares uploaded audio for transcription. Uploads are
// written to a per-request scratch directory and transcoded with ffmpeg into
// the 16 kHz mono PCM WAV layout the whisper engine expects.
package staging

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/malavshah9/audiobrief/internal/runner"
)

// Errors reported by format and size checks, before any subprocess runs.
var (
	ErrEmptyUpload       = errors.New("uploaded audio is empty")
	ErrUnsupportedFormat = errors.New("unsupported audio format")
)

// supportedExts mirrors the formats offered by the upload form.
var supportedExts = map[string]bool{
	".wav": true,
	".mp3": true,
}

// StagedAudio is a transcription-ready audio file. The caller owns it until
// Release, which must run on every exit path so no scratch files pile up
// under the temp root.
type StagedAudio struct {
	Path string // the converted WAV
	Dir  string // per-request scratch directory holding Path
}

// Release removes the staged file and its scratch directory. Safe to call on
// a nil or zero receiver.
func (s *StagedAudio) Release() error {
	if s == nil || s.Dir == "" {
		return nil
	}
	return os.RemoveAll(s.Dir)
}

// Stager turns an uploaded stream into transcription-ready audio.
type Stager interface {
	Stage(ctx context.Context, audio io.Reader, filename string) (*StagedAudio, error)
}

// FFmpegStager stages uploads by shelling out to ffmpeg.
type FFmpegStager struct {
	ffmpegPath string
	run        runner.Runner
}

func NewFFmpegStager(ffmpegPath string, run runner.Runner) *FFmpegStager {
	return &FFmpegStager{ffmpegPath: ffmpegPath, run: run}
}

// Stage validates the upload, saves it under a fresh scratch directory, and
// converts it to 16 kHz mono WAV. On any error the scratch directory is
// removed before returning, so callers only Release successful results.
func (f *FFmpegStager) Stage(ctx context.Context, audio io.Reader, filename string) (*StagedAudio, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !supportedExts[ext] {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filename)
	}

	dir, err := os.MkdirTemp("", "audiobrief-*")
	if err != nil {
		return nil, fmt.Errorf("create scratch dir: %w", err)
	}

	inputPath := filepath.Join(dir, "upload"+ext)
	n, err := saveUpload(inputPath, audio)
	if err != nil {
		os.RemoveAll(dir)
		return nil, fmt.Errorf("save upload: %w", err)
	}
	if n == 0 {
		os.RemoveAll(dir)
		return nil, ErrEmptyUpload
	}

	wavPath := filepath.Join(dir, "staged.wav")
	args := []string{
		"-y",
		"-i", inputPath,
		"-vn",
		"-ar", "16000",
		"-ac", "1",
		"-c:a", "pcm_s16le",
		wavPath,
	}
	if _, err := f.run.Run(ctx, f.ffmpegPath, args...); err != nil {
		os.RemoveAll(dir)
		return nil, fmt.Errorf("convert %q: %w", filename, err)
	}

	return &StagedAudio{Path: wavPath, Dir: dir}, nil
}

func saveUpload(path string, r io.Reader) (int64, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	return io.Copy(f, r)
}
