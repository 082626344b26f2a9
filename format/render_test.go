package format_test

import (
	"testing"

	"github.com/habedi/conflux/client"
	"github.com/habedi/conflux/format"
	"github.com/habedi/conflux/pkg/pagination"
	"github.com/stretchr/testify/assert"
)

func count(n int) *int { return &n }

func TestFooter(t *testing.T) {
	assert.Equal(t, "", format.Footer(pagination.Result{}))
	assert.Equal(t, "\n---\n*Showing 1 result.*\n", format.Footer(pagination.Result{Count: count(1)}))
	assert.Equal(t,
		"\n---\n*Showing 25 results.* *More results are available. Use `--cursor abc` to fetch the next page.*\n",
		format.Footer(pagination.Result{NextCursor: "abc", HasMore: true, Count: count(25)}))
}

func TestSpaces(t *testing.T) {
	out := format.Spaces([]client.Space{{ID: "1", Key: "DEV", Name: "Development", Type: "global"}}, pagination.Result{Count: count(1)})
	assert.Contains(t, out, "# Spaces")
	assert.Contains(t, out, "- **Development** (`DEV`, global, id 1)")
	assert.Contains(t, out, "Showing 1 result.")

	assert.Contains(t, format.Spaces(nil, pagination.Result{}), "No spaces found.")
}

func TestPage(t *testing.T) {
	pg := &client.Page{ID: "9", Title: "Runbook", Status: "current", Version: client.Version{Number: 3}}
	pg.Body.Storage = &client.BodyValue{Representation: "storage", Value: "<p>Restart it</p>"}
	pg.Links.WebUI = "/spaces/OPS/pages/9/Runbook"

	out := format.Page(pg, []client.Label{{Name: "ops"}, {Name: "oncall"}}, "https://acme.atlassian.net/")
	assert.Contains(t, out, "# Runbook")
	assert.Contains(t, out, "- **Version:** 3")
	assert.Contains(t, out, "- **Labels:** ops, oncall")
	assert.Contains(t, out, "https://acme.atlassian.net/wiki/spaces/OPS/pages/9/Runbook")
	assert.Contains(t, out, "Restart it")
}

func TestSearchResults(t *testing.T) {
	var r client.SearchResult
	r.Content.ID = "9"
	r.Content.Type = "page"
	r.Content.Title = "Runbook"
	r.ResultGlobalContainer.Title = "Operations"
	r.Excerpt = "how to @@@hl@@@restart@@@endhl@@@"

	out := format.SearchResults(`title ~ "run"`, []client.SearchResult{r}, pagination.Result{NextCursor: "25", HasMore: true, Count: count(1)})
	assert.Contains(t, out, "Query: `title ~ \"run\"`")
	assert.Contains(t, out, "- **Runbook** (page 9) in Operations")
	assert.Contains(t, out, "--cursor 25")
}
