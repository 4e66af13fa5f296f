// Package summarize sends rendered prompts to a locally running language
// model server and returns the generated summary. Two backends are
// supported: Ollama's native API and any server speaking the OpenAI chat
// API. Both are treated as a boundary; nothing about model lifecycle or
// inference lives on this side of it.
package summarize

import (
	"context"
	"fmt"

	"github.com/malavshah9/audiobrief/internal/config"
)

// Request carries one generation call.
type Request struct {
	Model  string
	Prompt string
}

// Summarizer produces a complete summary for a rendered prompt.
// Implementations block until the full text is available; streaming
// backends accumulate internally.
type Summarizer interface {
	Summarize(ctx context.Context, req Request) (string, error)
	Models(ctx context.Context) ([]string, error)
	Name() string
}

// HTTPError reports a response from the language-model server with a
// non-success status. The server was reachable; it just said no.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("language-model server returned status %d: %s", e.StatusCode, e.Body)
}

// New selects the backend named in cfg.
func New(cfg config.LLMConfig) (Summarizer, error) {
	switch cfg.Backend {
	case config.BackendOllama:
		return NewOllama(cfg.BaseURL, cfg.Timeout.Std()), nil
	case config.BackendOpenAI:
		return NewOpenAICompat(cfg.BaseURL, cfg.APIKey, cfg.Timeout.Std()), nil
	}
	return nil, fmt.Errorf("unknown llm backend %q", cfg.Backend)
}
