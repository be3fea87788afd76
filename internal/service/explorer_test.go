package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/devreports/internal/report"
	"github.com/jask/devreports/internal/synthesis"
)

func newTestService(t *testing.T, perPage int) *ExplorerService {
	t.Helper()

	dir := t.TempDir()
	var who, undp string
	for i := 1; i <= 12; i++ {
		who += fmt.Sprintf("Kenya,2020,Gender program %d delivered results.\n", i)
	}
	undp = "Peru,2021,Climate resilience work continued.\n" +
		"Peru,2021,Gender parity targets were met early.\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "WHO.csv"),
		[]byte("country,year,paragraph\n"+who), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "UNDP.csv"),
		[]byte("country,year,paragraph\n"+undp), 0o644))

	catalog, err := report.DiscoverCatalog(dir)
	require.NoError(t, err)

	return NewExplorer(report.NewStore(catalog), synthesis.NewExtractiveProvider(), perPage)
}

func TestExplorerSources(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, 10)
	require.Equal(t, []string{"All", "UNDP", "WHO"}, svc.Sources())
	require.Equal(t, 10, svc.ResultsPerPage())
	require.True(t, svc.ProviderAvailable())
}

func TestExplorerOverview(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, 10)

	all, err := svc.Overview(report.SourceAll)
	require.NoError(t, err)
	require.Equal(t, 14, all.Paragraphs)
	require.Equal(t, 2, all.Organizations)

	one, err := svc.Overview("UNDP")
	require.NoError(t, err)
	require.Equal(t, 2, one.Paragraphs)
	require.Equal(t, 1, one.Organizations)
}

func TestExplorerSearchPaginates(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, 10)

	res, err := svc.Search(report.SourceAll, "gender", 1)
	require.NoError(t, err)
	require.Equal(t, 13, res.Page.Results)
	require.Equal(t, 2, res.Page.Total)
	require.Len(t, res.Results, 10)
	require.Empty(t, res.Warnings)

	// paragraphs from UNDP sort before WHO in the All union
	require.Equal(t, "UNDP", res.Results[0].Paragraph.Organization)
	require.Equal(t, "UNDP Peru, 2021", res.Results[0].Reference)

	second, err := svc.Search(report.SourceAll, "gender", 2)
	require.NoError(t, err)
	require.Len(t, second.Results, 3)
	require.Equal(t, 11, second.Page.ShowingFrom())
	require.Equal(t, 13, second.Page.ShowingTo())
}

func TestExplorerSearchClampsPage(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, 10)

	res, err := svc.Search(report.SourceAll, "gender", 99)
	require.NoError(t, err)
	require.Equal(t, 2, res.Page.Number)

	res, err = svc.Search(report.SourceAll, "gender", -3)
	require.NoError(t, err)
	require.Equal(t, 1, res.Page.Number)
}

func TestExplorerSearchNoMatches(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, 10)

	res, err := svc.Search("WHO", "blockchain", 1)
	require.NoError(t, err)
	require.Empty(t, res.Results)
	require.Equal(t, 0, res.Page.Results)
	require.Equal(t, 1, res.Page.Number)
	require.Equal(t, 1, res.Page.Total)
}

func TestExplorerSearchEmptyTopic(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, 10)
	_, err := svc.Search(report.SourceAll, "", 1)
	require.ErrorIs(t, err, ErrEmptyTopic)
}

func TestExplorerSearchUnknownSource(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, 10)
	_, err := svc.Search("ghost", "gender", 1)
	require.ErrorIs(t, err, report.ErrUnknownSource)
}

func TestExplorerSearchSurfacesLoadWarnings(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "good.csv"),
		[]byte("paragraph\nGood gender data here.\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.csv"),
		[]byte("country\nKenya\n"), 0o644))

	catalog, err := report.DiscoverCatalog(dir)
	require.NoError(t, err)
	svc := NewExplorer(report.NewStore(catalog), synthesis.NewExtractiveProvider(), 10)

	res, err := svc.Search(report.SourceAll, "gender", 1)
	require.NoError(t, err)
	require.Len(t, res.Results, 1)
	require.Len(t, res.Warnings, 1)
	require.Contains(t, res.Warnings[0], "bad.csv")
}

func TestExplorerResultIDsStable(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, 10)

	first, err := svc.Search("UNDP", "gender", 1)
	require.NoError(t, err)
	second, err := svc.Search("UNDP", "gender", 1)
	require.NoError(t, err)

	require.Len(t, first.Results, 1)
	require.Equal(t, first.Results[0].ID, second.Results[0].ID)
	require.NotEmpty(t, first.Results[0].ID)
}

type failingProvider struct{}

func (failingProvider) Name() string    { return "failing" }
func (failingProvider) Available() bool { return false }
func (failingProvider) Synthesize(context.Context, string, string) (string, error) {
	return "", errors.New("boom")
}

func TestExplorerSynthesizeFallback(t *testing.T) {
	t.Parallel()

	svc := NewExplorer(nil, failingProvider{}, 10)

	line, err := svc.Synthesize(context.Background(), "text", "topic")
	require.Error(t, err)
	require.Equal(t, synthesis.FallbackLine, line)
}

func TestExplorerSynthesize(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, 10)

	line, err := svc.Synthesize(context.Background(), "Gender parity targets were met early.", "gender")
	require.NoError(t, err)
	require.Equal(t, "Gender parity targets were met early", line)
}

func TestExplorerDefaultPageSize(t *testing.T) {
	t.Parallel()

	svc := NewExplorer(nil, synthesis.NewExtractiveProvider(), 0)
	require.Equal(t, 10, svc.ResultsPerPage())
}
