package search

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/devreports/internal/report"
)

func TestFilter(t *testing.T) {
	t.Parallel()

	paragraphs := []report.Paragraph{
		{Organization: "WHO", Text: "Gender equality remains a priority in health programs."},
		{Organization: "WHO", Text: ""},
		{Organization: "UNDP", Text: "Climate adaptation funding doubled last year."},
		{Organization: "UNDP", Text: "GENDER-responsive budgeting was introduced."},
	}

	t.Run("case insensitive substring", func(t *testing.T) {
		t.Parallel()
		got := Filter(paragraphs, "gender")
		require.Len(t, got, 2)
		require.Equal(t, "WHO", got[0].Organization)
		require.Equal(t, "UNDP", got[1].Organization)
	})

	t.Run("mixed case query", func(t *testing.T) {
		t.Parallel()
		got := Filter(paragraphs, "CLIMATE Adaptation")
		require.Len(t, got, 1)
	})

	t.Run("surrounding whitespace trimmed", func(t *testing.T) {
		t.Parallel()
		got := Filter(paragraphs, "  climate  ")
		require.Empty(t, got) // inner whitespace is part of the needle
		got = Filter(paragraphs, " climate ")
		require.Len(t, got, 1)
	})

	t.Run("empty topic matches nothing", func(t *testing.T) {
		t.Parallel()
		require.Nil(t, Filter(paragraphs, ""))
		require.Nil(t, Filter(paragraphs, "   "))
	})

	t.Run("no match", func(t *testing.T) {
		t.Parallel()
		require.Empty(t, Filter(paragraphs, "blockchain"))
	})
}
