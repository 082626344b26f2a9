package cql_test

import (
	"strconv"
	"strings"
	"testing"

	"github.com/habedi/conflux/pkg/cql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild(t *testing.T) {
	tests := []struct {
		name   string
		filter cql.Filter
		want   string
	}{
		{
			name:   "title and space",
			filter: cql.Filter{Title: "Foo", SpaceKey: "DEV"},
			want:   `title ~ "Foo" AND space = "DEV"`,
		},
		{
			name:   "all discrete fields in order",
			filter: cql.Filter{Text: "release", Title: "Notes", SpaceKey: "OPS", Labels: []string{"q1", "final"}, ContentType: "page"},
			want:   `text ~ "release" AND title ~ "Notes" AND space = "OPS" AND label = "q1" AND label = "final" AND type = "page"`,
		},
		{
			name:   "raw fragment combined",
			filter: cql.Filter{Title: "Foo", CQL: "label = x"},
			want:   `(title ~ "Foo") AND (label = x)`,
		},
		{
			name:   "raw fragment alone is unchanged",
			filter: cql.Filter{CQL: "label = x"},
			want:   "label = x",
		},
		{
			name:   "blank fields and labels are skipped",
			filter: cql.Filter{Text: "  ", Labels: []string{"", " ", "ok"}, CQL: "   "},
			want:   `label = "ok"`,
		},
		{
			name:   "nothing",
			filter: cql.Filter{},
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cql.Build(tt.filter))
		})
	}
}

func TestBuild_EscapedValueRoundTrips(t *testing.T) {
	inputs := []string{`He said "hi"`, `C:\temp\`, `mixed \" both`, `plain`}
	for _, in := range inputs {
		got := cql.Build(cql.Filter{Title: in})
		require.True(t, strings.HasPrefix(got, "title ~ "), got)

		quoted := strings.TrimPrefix(got, "title ~ ")
		back, err := strconv.Unquote(quoted)
		require.NoError(t, err, quoted)
		assert.Equal(t, in, back)
	}
}

func TestEscape(t *testing.T) {
	assert.Equal(t, `He said \"hi\"`, cql.Escape(`He said "hi"`))
	assert.Equal(t, `a\\b`, cql.Escape(`a\b`))
	assert.Equal(t, "ünïcode", cql.Escape("ünïcode"))
}
