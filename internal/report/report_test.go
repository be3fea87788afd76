package report

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReference(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		p    Paragraph
		want string
	}{
		{
			name: "full",
			p:    Paragraph{Organization: "WHO", Country: "Kenya", Year: "2020"},
			want: "WHO Kenya, 2020",
		},
		{
			name: "no country",
			p:    Paragraph{Organization: "WHO", Year: "2020"},
			want: "WHO, 2020",
		},
		{
			name: "whitespace country",
			p:    Paragraph{Organization: "WHO", Country: "  ", Year: "2020"},
			want: "WHO, 2020",
		},
		{
			name: "missing org and year",
			p:    Paragraph{},
			want: "Organization not available, Year not available",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tc.want, tc.p.Reference())
		})
	}
}
