package pagination_test

import (
	"testing"

	"github.com/habedi/conflux/pkg/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(n int) *int { return &n }

func TestExtract_Cursor(t *testing.T) {
	tests := []struct {
		name string
		body string
		want pagination.Result
	}{
		{
			name: "absolute next link with encoded cursor",
			body: `{"_links":{"next":"https://x/y?cursor=abc%3D%3D"},"results":[1,2]}`,
			want: pagination.Result{NextCursor: "abc==", HasMore: true, Count: intPtr(2)},
		},
		{
			name: "relative next link",
			body: `{"_links":{"next":"/wiki/api/v2/spaces?limit=2&cursor=eyJpZCI6IjEifQ"},"results":[{}]}`,
			want: pagination.Result{NextCursor: "eyJpZCI6IjEifQ", HasMore: true, Count: intPtr(1)},
		},
		{
			name: "plus sign is kept",
			body: `{"_links":{"next":"/x?cursor=a+b"},"results":[]}`,
			want: pagination.Result{NextCursor: "a+b", HasMore: true, Count: intPtr(0)},
		},
		{
			name: "no next link",
			body: `{"results":[]}`,
			want: pagination.Result{HasMore: false, Count: intPtr(0)},
		},
		{
			name: "next link without cursor",
			body: `{"_links":{"next":"/x?limit=10"},"results":[1]}`,
			want: pagination.Result{HasMore: false, Count: intPtr(1)},
		},
		{
			name: "malformed escape in cursor",
			body: `{"_links":{"next":"/x?cursor=%zz"},"results":[1]}`,
			want: pagination.Result{HasMore: false, Count: intPtr(1)},
		},
		{
			name: "empty cursor value",
			body: `{"_links":{"next":"/x?cursor="},"results":[1]}`,
			want: pagination.Result{HasMore: false, Count: intPtr(1)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pagination.Extract([]byte(tt.body), pagination.Cursor))
		})
	}
}

func TestExtract_Offset(t *testing.T) {
	tests := []struct {
		name string
		body string
		want pagination.Result
	}{
		{
			name: "more pages by counters",
			body: `{"startAt":0,"maxResults":25,"total":60,"values":[1,2,3]}`,
			want: pagination.Result{NextCursor: "25", HasMore: true, Count: intPtr(3)},
		},
		{
			name: "last page by counters",
			body: `{"startAt":50,"maxResults":25,"total":60,"values":[1]}`,
			want: pagination.Result{HasMore: false, Count: intPtr(1)},
		},
		{
			name: "v1 search spelling",
			body: `{"start":10,"limit":10,"totalSize":35,"results":[1,2]}`,
			want: pagination.Result{NextCursor: "20", HasMore: true, Count: intPtr(2)},
		},
		{
			name: "explicit next page token",
			body: `{"nextPage":"tok-2","values":[]}`,
			want: pagination.Result{NextCursor: "tok-2", HasMore: true, Count: intPtr(0)},
		},
		{
			name: "empty next page token",
			body: `{"nextPage":"","values":[]}`,
			want: pagination.Result{HasMore: false, Count: intPtr(0)},
		},
		{
			name: "no counters no list",
			body: `{}`,
			want: pagination.Result{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pagination.Extract([]byte(tt.body), pagination.Offset))
		})
	}
}

func TestExtract_Page(t *testing.T) {
	got := pagination.Extract([]byte(`{"next":"https://api.example.com/2.0/items?page=3&pagelen=10","values":[1,2]}`), pagination.Page)
	assert.Equal(t, pagination.Result{NextCursor: "3", HasMore: true, Count: intPtr(2)}, got)

	got = pagination.Extract([]byte(`{"values":[1]}`), pagination.Page)
	assert.Equal(t, pagination.Result{HasMore: false, Count: intPtr(1)}, got)
}

func TestExtract_MalformedBodyDegrades(t *testing.T) {
	for _, style := range []pagination.Style{pagination.Offset, pagination.Cursor, pagination.Page} {
		assert.Equal(t, pagination.Result{}, pagination.Extract([]byte(`not json`), style), style.String())
		assert.Equal(t, pagination.Result{}, pagination.Extract([]byte(`[1,2]`), style), style.String())
		assert.Equal(t, pagination.Result{}, pagination.Extract(nil, style), style.String())
	}
	assert.Equal(t, pagination.Result{}, pagination.Extract([]byte(`{"results":[]}`), pagination.Style(99)))
}

func TestExtract_Idempotent(t *testing.T) {
	body := []byte(`{"_links":{"next":"/x?cursor=abc"},"results":[1,2,3]}`)
	assert.Equal(t, pagination.Extract(body, pagination.Cursor), pagination.Extract(body, pagination.Cursor))
}

func TestExtract_HasMoreMatchesCursor(t *testing.T) {
	bodies := []string{
		`{"_links":{"next":"/x?cursor=abc"},"results":[]}`,
		`{"_links":{"next":"/x?cursor="},"results":[]}`,
		`{"startAt":0,"maxResults":0,"total":10}`,
		`{"startAt":0,"maxResults":5,"total":10}`,
		`{"next":"/x?page=","values":[]}`,
		`{"next":"::bad url::","values":[]}`,
	}
	for _, b := range bodies {
		for _, style := range []pagination.Style{pagination.Offset, pagination.Cursor, pagination.Page} {
			r := pagination.Extract([]byte(b), style)
			assert.Equal(t, r.NextCursor != "", r.HasMore, "%s / %s", style, b)
		}
	}
}

func TestParseStyle(t *testing.T) {
	s, err := pagination.ParseStyle(" Cursor ")
	require.NoError(t, err)
	assert.Equal(t, pagination.Cursor, s)

	_, err = pagination.ParseStyle("pages")
	assert.Error(t, err)
}
