// Package transcribe turns staged audio into text by driving a local
// whisper.cpp binary. The engine runs out of process; this package owns
// resolving model names to weight files, bounding the subprocess lifetime,
// and normalizing the raw engine output.
package transcribe

import (
	"context"
	"errors"
)

// ErrEmptyTranscript reports a clean engine exit that produced no text.
// Silence and near-silence legitimately transcribe to nothing, so callers
// can tell this apart from an engine failure and say so to the user.
var ErrEmptyTranscript = errors.New("transcription produced no text")

// Transcriber converts an audio file on disk into transcript text.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath, model string) (string, error)
	Models() ([]string, error)
	Name() string
}
