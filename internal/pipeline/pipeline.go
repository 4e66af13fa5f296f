// Package pipeline chains staging, transcription, prompt rendering, and
// summarization into one synchronous run per upload. Runs are independent:
// nothing is shared between requests, and every staged file is released
// before Run returns.
package pipeline

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/malavshah9/audiobrief/internal/prompt"
	"github.com/malavshah9/audiobrief/internal/staging"
	"github.com/malavshah9/audiobrief/internal/summarize"
	"github.com/malavshah9/audiobrief/internal/transcribe"
)

// Request is one summarization job, scoped to a single upload.
type Request struct {
	Audio        io.Reader
	Filename     string
	Category     string
	WhisperModel string
	LLMModel     string
	Context      string
}

// Result is the terminal artifact of a successful run.
type Result struct {
	ID           uuid.UUID       `json:"id"`
	Category     prompt.Category `json:"category"`
	Transcript   string          `json:"transcript"`
	Summary      string          `json:"summary"`
	WhisperModel string          `json:"whisper_model"`
	LLMModel     string          `json:"llm_model"`
	TranscribeMs int64           `json:"transcribe_ms"`
	SummarizeMs  int64           `json:"summarize_ms"`
}

// Pipeline wires the stages together behind their capability interfaces.
type Pipeline struct {
	stager      staging.Stager
	transcriber transcribe.Transcriber
	summarizer  summarize.Summarizer
	log         *slog.Logger
}

func New(stager staging.Stager, transcriber transcribe.Transcriber, summarizer summarize.Summarizer, log *slog.Logger) *Pipeline {
	if log == nil {
		log = slog.Default()
	}
	return &Pipeline{
		stager:      stager,
		transcriber: transcriber,
		summarizer:  summarizer,
		log:         log,
	}
}

// Run executes the full sequence for one upload. Failures come back as
// *Error carrying the stage classification; when transcription succeeded
// but summarization did not, the Error also carries the transcript so the
// caller can still show it.
func (p *Pipeline) Run(ctx context.Context, req Request) (*Result, error) {
	cat, err := prompt.Parse(req.Category)
	if err != nil {
		return nil, &Error{Failure: FailureUnknownCategory, Err: err}
	}

	staged, err := p.stager.Stage(ctx, req.Audio, req.Filename)
	if err != nil {
		return nil, &Error{Failure: FailureStaging, Err: err}
	}
	defer func() {
		if rerr := staged.Release(); rerr != nil {
			p.log.Warn("release staged audio", "path", staged.Path, "error", rerr)
		}
	}()

	id := uuid.New()
	p.log.Info("transcribing",
		"id", id,
		"file", req.Filename,
		"category", cat,
		"whisper_model", req.WhisperModel,
	)

	start := time.Now()
	transcript, err := p.transcriber.Transcribe(ctx, staged.Path, req.WhisperModel)
	transcribeMs := time.Since(start).Milliseconds()
	if err != nil {
		perr := classifyTranscription(err)
		p.log.Error("transcription failed", "id", id, "failure", perr.Failure, "error", err)
		return nil, perr
	}

	rendered, err := prompt.Build(cat, transcript, req.Context)
	if err != nil {
		return nil, &Error{Failure: FailureUnknownCategory, Transcript: transcript, Err: err}
	}

	p.log.Info("summarizing",
		"id", id,
		"llm_model", req.LLMModel,
		"backend", p.summarizer.Name(),
		"transcript_chars", len(transcript),
	)

	start = time.Now()
	summary, err := p.summarizer.Summarize(ctx, summarize.Request{Model: req.LLMModel, Prompt: rendered})
	summarizeMs := time.Since(start).Milliseconds()
	if err != nil {
		perr := classifySummarization(err)
		perr.Transcript = transcript
		p.log.Error("summarization failed", "id", id, "failure", perr.Failure, "error", err)
		return nil, perr
	}

	p.log.Info("run complete",
		"id", id,
		"transcribe_ms", transcribeMs,
		"summarize_ms", summarizeMs,
	)

	return &Result{
		ID:           id,
		Category:     cat,
		Transcript:   transcript,
		Summary:      summary,
		WhisperModel: req.WhisperModel,
		LLMModel:     req.LLMModel,
		TranscribeMs: transcribeMs,
		SummarizeMs:  summarizeMs,
	}, nil
}
