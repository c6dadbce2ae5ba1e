// Package summarize asks a language model to describe the feature a file
// and its dependencies implement together.
package summarize

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	genai "google.golang.org/genai"
)

// FailureSentinel is returned in place of a summary when the model request
// fails. It is rendered into the report so failures stay visible without
// aborting the batch.
const FailureSentinel = "Error or no response from language model."

const (
	defaultModel     = "gemini-2.5-flash"
	maxOutputTokens  = 1000
	temperatureValue = 0.7
)

// Summarizer holds the single process-wide model client.
type Summarizer struct {
	cli   *genai.Client
	model string
	log   *slog.Logger
}

// New creates the model client. The API key is read from the environment by
// the genai client itself.
func New(ctx context.Context, model string, log *slog.Logger) (*Summarizer, error) {
	if model == "" {
		model = defaultModel
	}
	if log == nil {
		log = slog.Default()
	}

	cli, err := genai.NewClient(ctx, &genai.ClientConfig{Backend: genai.BackendGeminiAPI})
	if err != nil {
		return nil, fmt.Errorf("failed to create model client: %w", err)
	}
	return &Summarizer{cli: cli, model: model, log: log}, nil
}

// Summarize reads the primary file plus its dependencies, builds one prompt
// and issues a single completion request. Any request failure is caught,
// logged, and replaced by FailureSentinel.
func (s *Summarizer) Summarize(ctx context.Context, primaryFile string, dependencyFiles []string) string {
	paths := append([]string{primaryFile}, dependencyFiles...)
	sections := ReadSections(paths, s.log)
	prompt := BuildPrompt(sections)

	temperature := float32(temperatureValue)
	resp, err := s.cli.Models.GenerateContent(ctx, s.model,
		[]*genai.Content{{Parts: []*genai.Part{{Text: prompt}}}},
		&genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: systemPrompt}}},
			MaxOutputTokens:   maxOutputTokens,
			Temperature:       &temperature,
		},
	)
	if err != nil {
		s.log.Warn("model request failed", "file", primaryFile, "error", err)
		return FailureSentinel
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		s.log.Warn("model returned empty response", "file", primaryFile)
		return FailureSentinel
	}

	summary := strings.TrimSpace(resp.Candidates[0].Content.Parts[0].Text)
	if summary == "" {
		return FailureSentinel
	}
	return summary
}
