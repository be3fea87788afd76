// Package search implements topic filtering and pagination over loaded
// paragraph datasets.
package search

import (
	"strings"

	"github.com/jask/devreports/internal/report"
)

// Filter returns the paragraphs whose text contains topic, matched
// case-insensitively as a plain substring. An empty or blank topic
// matches nothing; rows with empty text never match.
func Filter(paragraphs []report.Paragraph, topic string) []report.Paragraph {
	topic = strings.ToLower(strings.TrimSpace(topic))
	if topic == "" {
		return nil
	}
	var out []report.Paragraph
	for _, p := range paragraphs {
		if p.Text == "" {
			continue
		}
		if strings.Contains(strings.ToLower(p.Text), topic) {
			out = append(out, p)
		}
	}
	return out
}
