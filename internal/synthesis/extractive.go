package synthesis

import (
	"context"
	"strings"
	"unicode/utf8"
)

// maxExtractLen caps the extracted line so it stays readable in a result row.
const maxExtractLen = 160

// ExtractiveProvider is an offline implementation: it lifts the sentence
// mentioning the topic out of the paragraph instead of calling an API.
// It keeps the tool usable with no key configured and backs the tests.
type ExtractiveProvider struct{}

// NewExtractiveProvider returns the offline provider.
func NewExtractiveProvider() *ExtractiveProvider {
	return &ExtractiveProvider{}
}

func (e *ExtractiveProvider) Name() string { return "Extractive (offline)" }

func (e *ExtractiveProvider) Available() bool { return true }

// Synthesize picks the first sentence containing the topic, falling back
// to the paragraph's first sentence, truncated to one display line.
func (e *ExtractiveProvider) Synthesize(_ context.Context, paragraph, topic string) (string, error) {
	sentences := splitSentences(paragraph)
	if len(sentences) == 0 {
		return "", ErrEmptyParagraph
	}
	pick := sentences[0]
	lowTopic := strings.ToLower(strings.TrimSpace(topic))
	if lowTopic != "" {
		for _, s := range sentences {
			if strings.Contains(strings.ToLower(s), lowTopic) {
				pick = s
				break
			}
		}
	}
	return truncateLine(oneLine(pick), maxExtractLen), nil
}

func splitSentences(text string) []string {
	var out []string
	for _, s := range strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	}) {
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

func truncateLine(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return strings.TrimSpace(string(runes[:max-1])) + "…"
}
