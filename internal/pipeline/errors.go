package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/malavshah9/audiobrief/internal/summarize"
	"github.com/malavshah9/audiobrief/internal/transcribe"
)

// Failure names the stage and manner in which a run failed. Every value maps
// to a distinct user-facing message, so an unreachable model server never
// reads like a crashed transcription engine.
type Failure string

const (
	FailureStaging               Failure = "staging"
	FailureUnknownCategory       Failure = "unknown_category"
	FailureTranscriptionTimeout  Failure = "transcription_timeout"
	FailureTranscriptionFailed   Failure = "transcription_failed"
	FailureTranscriptionEmpty    Failure = "transcription_empty"
	FailureSummarizerUnreachable Failure = "summarization_unreachable"
	FailureSummarizerHTTP        Failure = "summarization_http_error"
	FailureSummarizerTimeout     Failure = "summarization_timeout"
)

// Error is the classified outcome of a failed run. Transcript carries the
// partial artifact when transcription succeeded but a later stage failed.
// UpstreamStatus is set only for FailureSummarizerHTTP.
type Error struct {
	Failure        Failure
	Transcript     string
	UpstreamStatus int
	Err            error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Failure, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func classifyTranscription(err error) *Error {
	switch {
	case errors.Is(err, transcribe.ErrEmptyTranscript):
		return &Error{Failure: FailureTranscriptionEmpty, Err: err}
	case errors.Is(err, context.DeadlineExceeded):
		return &Error{Failure: FailureTranscriptionTimeout, Err: err}
	default:
		return &Error{Failure: FailureTranscriptionFailed, Err: err}
	}
}

func classifySummarization(err error) *Error {
	var httpErr *summarize.HTTPError
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return &Error{Failure: FailureSummarizerTimeout, Err: err}
	case errors.As(err, &httpErr):
		return &Error{Failure: FailureSummarizerHTTP, UpstreamStatus: httpErr.StatusCode, Err: err}
	default:
		return &Error{Failure: FailureSummarizerUnreachable, Err: err}
	}
}
