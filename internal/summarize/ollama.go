package summarize

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const listTimeout = 10 * time.Second

// Ollama talks to a local Ollama server. Generation uses the streaming
// /api/generate endpoint and accumulates the chunks, so slow models keep
// the connection alive without the caller seeing partial output.
type Ollama struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
}

func NewOllama(baseURL string, timeout time.Duration) *Ollama {
	return &Ollama{
		baseURL:    strings.TrimRight(baseURL, "/"),
		timeout:    timeout,
		httpClient: &http.Client{},
	}
}

func (o *Ollama) Name() string { return "ollama" }

type ollamaGenerateReq struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

type ollamaGenerateChunk struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

func (o *Ollama) Summarize(ctx context.Context, req Request) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	body, _ := json.Marshal(ollamaGenerateReq{Model: req.Model, Prompt: req.Prompt})
	httpReq, err := http.NewRequestWithContext(ctx, "POST", o.baseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("ollama request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := o.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("ollama generate: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", readHTTPError(resp)
	}

	var full strings.Builder
	dec := json.NewDecoder(resp.Body)
	for {
		var chunk ollamaGenerateChunk
		if err := dec.Decode(&chunk); err != nil {
			if err == io.EOF {
				break
			}
			// A deadline mid-stream surfaces as a read error; report the
			// timeout rather than a JSON failure.
			if ctx.Err() != nil {
				return "", fmt.Errorf("ollama stream: %w", ctx.Err())
			}
			return "", fmt.Errorf("ollama decode: %w", err)
		}
		full.WriteString(chunk.Response)
		if chunk.Done {
			break
		}
	}

	return full.String(), nil
}

type ollamaTagsResp struct {
	Models []struct {
		Name  string `json:"name"`
		Model string `json:"model"`
	} `json:"models"`
}

// Models lists the models the Ollama server has pulled.
func (o *Ollama) Models(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, listTimeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, "GET", o.baseURL+"/api/tags", nil)
	if err != nil {
		return nil, fmt.Errorf("ollama request: %w", err)
	}

	resp, err := o.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("ollama tags: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, readHTTPError(resp)
	}

	var tags ollamaTagsResp
	if err := json.NewDecoder(resp.Body).Decode(&tags); err != nil {
		return nil, fmt.Errorf("ollama tags decode: %w", err)
	}

	names := make([]string, 0, len(tags.Models))
	for _, m := range tags.Models {
		if m.Model != "" {
			names = append(names, m.Model)
			continue
		}
		names = append(names, m.Name)
	}
	return names, nil
}

func readHTTPError(resp *http.Response) error {
	b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	return &HTTPError{
		StatusCode: resp.StatusCode,
		Body:       strings.TrimSpace(string(b)),
	}
}
