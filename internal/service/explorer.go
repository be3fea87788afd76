// Package service orchestrates dataset loading, topic search, pagination
// and synthesis for the TUI and HTTP frontends.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/jask/devreports/internal/report"
	"github.com/jask/devreports/internal/search"
	"github.com/jask/devreports/internal/synthesis"
)

// ErrEmptyTopic is returned when a search is attempted without a topic.
var ErrEmptyTopic = errors.New("enter a topic of interest to begin your search")

// ExplorerService ties the report store to the synthesis provider.
type ExplorerService struct {
	store          *report.Store
	provider       synthesis.Provider
	resultsPerPage int
}

// Result is one paragraph prepared for display.
type Result struct {
	ID        string
	Paragraph report.Paragraph
	Reference string
}

// SearchResult is one page of filtered paragraphs.
type SearchResult struct {
	Source   string
	Topic    string
	Results  []Result
	Page     search.Page
	Warnings []string // non-fatal load errors surfaced to the user
}

// Overview summarizes a dataset before any topic is entered.
type Overview struct {
	Paragraphs    int
	Organizations int
}

// NewExplorer builds the service. resultsPerPage falls back to 10.
func NewExplorer(store *report.Store, provider synthesis.Provider, resultsPerPage int) *ExplorerService {
	if resultsPerPage <= 0 {
		resultsPerPage = 10
	}
	return &ExplorerService{store: store, provider: provider, resultsPerPage: resultsPerPage}
}

// Sources returns selectable source names, "All" first.
func (s *ExplorerService) Sources() []string { return s.store.Sources() }

// ResultsPerPage exposes the configured page size.
func (s *ExplorerService) ResultsPerPage() int { return s.resultsPerPage }

// ProviderName names the active synthesis provider.
func (s *ExplorerService) ProviderName() string { return s.provider.Name() }

// ProviderAvailable reports whether the provider can serve requests.
func (s *ExplorerService) ProviderAvailable() bool { return s.provider.Available() }

// Overview loads a source and reports its size, shown while no topic is set.
func (s *ExplorerService) Overview(source string) (Overview, error) {
	res, err := s.store.Load(source)
	if err != nil {
		return Overview{}, err
	}
	orgs := make(map[string]struct{})
	for _, p := range res.Paragraphs {
		orgs[p.Organization] = struct{}{}
	}
	return Overview{Paragraphs: len(res.Paragraphs), Organizations: len(orgs)}, nil
}

// Search filters the source dataset by topic and returns the requested
// page. The page number is clamped into range; an empty topic is an error.
func (s *ExplorerService) Search(source, topic string, page int) (SearchResult, error) {
	if topic == "" {
		return SearchResult{}, ErrEmptyTopic
	}
	loaded, err := s.store.Load(source)
	if err != nil {
		return SearchResult{}, err
	}

	filtered := search.Filter(loaded.Paragraphs, topic)
	pg := search.Paginate(len(filtered), page, s.resultsPerPage)

	out := SearchResult{Source: source, Topic: topic, Page: pg}
	for _, loadErr := range loaded.Errors {
		out.Warnings = append(out.Warnings, loadErr.Error())
	}
	for _, p := range filtered[pg.Start:pg.End] {
		out.Results = append(out.Results, Result{
			ID:        resultID(p),
			Paragraph: p,
			Reference: p.Reference(),
		})
	}
	return out, nil
}

// Synthesize produces the one-line synthesis for a result. On failure it
// returns the fixed fallback line alongside the error so callers can show
// both, matching the tool's degrade-in-place behavior.
func (s *ExplorerService) Synthesize(ctx context.Context, paragraph, topic string) (string, error) {
	line, err := s.provider.Synthesize(ctx, paragraph, topic)
	if err != nil {
		return synthesis.FallbackLine, fmt.Errorf("generate synthesis: %w", err)
	}
	return line, nil
}

// resultID derives a stable identifier from the paragraph itself so the
// same row keeps its id across searches and processes.
func resultID(p report.Paragraph) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(p.SourceFile+"|"+p.Text)).String()
}
