package format

import (
	"fmt"
	"strings"

	"github.com/habedi/conflux/client"
	"github.com/habedi/conflux/pkg/pagination"
)

// Footer describes the continuation state under a listing.
func Footer(p pagination.Result) string {
	var b strings.Builder
	if p.Count != nil {
		fmt.Fprintf(&b, "*Showing %d %s.*", *p.Count, plural(*p.Count, "result", "results"))
	}
	if p.HasMore {
		if b.Len() > 0 {
			b.WriteString(" ")
		}
		fmt.Fprintf(&b, "*More results are available. Use `--cursor %s` to fetch the next page.*", p.NextCursor)
	}
	if b.Len() == 0 {
		return ""
	}
	return "\n---\n" + b.String() + "\n"
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// Spaces renders a page of spaces.
func Spaces(spaces []client.Space, p pagination.Result) string {
	var b strings.Builder
	b.WriteString("# Spaces\n\n")
	if len(spaces) == 0 {
		b.WriteString("No spaces found.\n")
	}
	for _, s := range spaces {
		fmt.Fprintf(&b, "- **%s** (`%s`, %s, id %s)\n", s.Name, s.Key, s.Type, s.ID)
	}
	b.WriteString(Footer(p))
	return b.String()
}

// Space renders a single space.
func Space(s *client.Space, siteURL string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", s.Name)
	fmt.Fprintf(&b, "- **Key:** %s\n", s.Key)
	fmt.Fprintf(&b, "- **ID:** %s\n", s.ID)
	fmt.Fprintf(&b, "- **Type:** %s\n", s.Type)
	if s.Status != "" {
		fmt.Fprintf(&b, "- **Status:** %s\n", s.Status)
	}
	if s.HomepageID != "" {
		fmt.Fprintf(&b, "- **Homepage ID:** %s\n", s.HomepageID)
	}
	fmt.Fprintf(&b, "- **URL:** %s/wiki/spaces/%s\n", strings.TrimRight(siteURL, "/"), s.Key)
	if d := strings.TrimSpace(s.Description.Plain.Value); d != "" {
		fmt.Fprintf(&b, "\n%s\n", d)
	}
	return b.String()
}

// Pages renders a page of page summaries.
func Pages(spaceKey string, pages []client.Page, p pagination.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Pages in %s\n\n", spaceKey)
	if len(pages) == 0 {
		b.WriteString("No pages found.\n")
	}
	for _, pg := range pages {
		fmt.Fprintf(&b, "- **%s** (id %s, v%d)\n", pg.Title, pg.ID, pg.Version.Number)
	}
	b.WriteString(Footer(p))
	return b.String()
}

// Page renders a page header followed by its body converted to Markdown.
func Page(pg *client.Page, labels []client.Label, siteURL string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", pg.Title)
	fmt.Fprintf(&b, "- **ID:** %s\n", pg.ID)
	fmt.Fprintf(&b, "- **Version:** %d\n", pg.Version.Number)
	if pg.Status != "" {
		fmt.Fprintf(&b, "- **Status:** %s\n", pg.Status)
	}
	if len(labels) > 0 {
		names := make([]string, len(labels))
		for i, l := range labels {
			names[i] = l.Name
		}
		fmt.Fprintf(&b, "- **Labels:** %s\n", strings.Join(names, ", "))
	}
	if pg.Links.WebUI != "" {
		fmt.Fprintf(&b, "- **URL:** %s/wiki%s\n", strings.TrimRight(siteURL, "/"), pg.Links.WebUI)
	}
	if body := StorageToMarkdown(pg.StorageBody()); body != "" {
		b.WriteString("\n---\n\n")
		b.WriteString(body)
		b.WriteString("\n")
	}
	return b.String()
}

// SearchResults renders the hits of a CQL search.
func SearchResults(cql string, results []client.SearchResult, p pagination.Result) string {
	var b strings.Builder
	b.WriteString("# Search results\n\n")
	fmt.Fprintf(&b, "Query: `%s`\n\n", cql)
	if len(results) == 0 {
		b.WriteString("No results found.\n")
	}
	for _, r := range results {
		title := r.Content.Title
		if title == "" {
			title = r.Title
		}
		fmt.Fprintf(&b, "- **%s**", title)
		if r.Content.ID != "" {
			fmt.Fprintf(&b, " (%s %s)", r.Content.Type, r.Content.ID)
		}
		if r.ResultGlobalContainer.Title != "" {
			fmt.Fprintf(&b, " in %s", r.ResultGlobalContainer.Title)
		}
		b.WriteString("\n")
		if ex := strings.TrimSpace(StorageToMarkdown(r.Excerpt)); ex != "" {
			fmt.Fprintf(&b, "  > %s\n", strings.ReplaceAll(ex, "\n", " "))
		}
	}
	b.WriteString(Footer(p))
	return b.String()
}
