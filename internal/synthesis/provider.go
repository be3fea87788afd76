// Package synthesis produces one-line topic-focused summaries of report
// paragraphs via a language-model API, behind a small provider interface.
package synthesis

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// FallbackLine is shown in place of a synthesis when generation fails.
const FallbackLine = "Synthesis generation failed."

// ErrNoAPIKey is returned by providers that need a key and have none.
var ErrNoAPIKey = errors.New("synthesis: api key not configured")

// ErrEmptyParagraph is returned when there is no text to summarize.
var ErrEmptyParagraph = errors.New("synthesis: empty paragraph")

// Provider generates a one-line synthesis of a paragraph with respect to
// a topic of interest.
type Provider interface {
	Name() string
	Available() bool
	Synthesize(ctx context.Context, paragraph, topic string) (string, error)
}

const systemPrompt = "You are an insightful analysis assistant."

func userPrompt(paragraph, topic string) string {
	return fmt.Sprintf(
		"Provide a plain text one-line insightful summary for someone interested in '%s' based on the following paragraph:\n\n%s\n\nSynthesis:",
		topic, paragraph,
	)
}

// oneLine collapses whitespace and newlines so the synthesis renders as a
// single line regardless of how the model formatted it.
func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// New builds a provider from config values. An unrecognized provider name
// is an error; "extractive" needs no key and is the offline fallback.
func New(provider, apiKey, model, baseURL string, maxTokens int) (Provider, error) {
	if maxTokens <= 0 {
		maxTokens = 50
	}
	switch strings.ToLower(strings.TrimSpace(provider)) {
	case "openai":
		return NewOpenAIProvider(apiKey, model, baseURL, maxTokens), nil
	case "gemini":
		return NewGeminiProvider(apiKey, model, baseURL, maxTokens), nil
	case "extractive", "offline", "":
		return NewExtractiveProvider(), nil
	default:
		return nil, fmt.Errorf("synthesis: unknown provider %q", provider)
	}
}
