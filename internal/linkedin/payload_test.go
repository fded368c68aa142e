package linkedin

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/require"
)

func TestCapitalize(t *testing.T) {
	cases := []struct {
		key      string
		expected string
	}{
		{"", ""},
		{"jobs", "Jobs"},
		{"élan", "Élan"},
		{"ñandú", "Ñandú"},
		{"日本", "日本"},
	}
	for _, c := range cases {
		out := capitalize(c.key)
		require.Equal(t, c.expected, out)
		require.True(t, utf8.ValidString(out), c.key)
	}
}

func TestCompanyLinksWithNonASCIIKeys(t *testing.T) {
	view, err := BuildView(KindCompany, []byte(`{"data":{
		"basic_info":{"name":"AE"},
		"links":{"émplois":"https://ae.example/fr/jobs"}
	}}`))
	require.NoError(t, err)

	sections := view.Entities[0].Sections
	links := sections[len(sections)-1]
	require.Equal(t, "Links", links.Title)
	require.Equal(t, [][]string{{"Émplois", "https://ae.example/fr/jobs"}}, links.Table.Rows)
}
