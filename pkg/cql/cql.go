// Package cql assembles Confluence Query Language strings from discrete filters.
package cql

import (
	"strings"
)

// Filter holds the discrete search criteria. Clauses are emitted in field order.
type Filter struct {
	Text        string   // free text, matched with text ~
	Title       string   // matched with title ~ (Confluence title matching is fuzzy)
	SpaceKey    string   // space = "KEY"
	Labels      []string // every label is required
	ContentType string   // type = "page", "blogpost", ...
	CQL         string   // raw fragment, combined with the clauses above
}

// Escape makes s safe to embed inside a double-quoted CQL value.
func Escape(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	for _, r := range s {
		if r == '\\' || r == '"' {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

func clause(field, op, value string) string {
	return field + " " + op + ` "` + Escape(value) + `"`
}

func present(s string) bool { return strings.TrimSpace(s) != "" }

// Build returns the CQL for f. With both discrete clauses and a raw fragment
// the result is "(clauses) AND (fragment)"; a lone fragment is returned
// unchanged. An empty result means no criteria were given, and the caller
// must not treat it as "match everything".
func Build(f Filter) string {
	var clauses []string
	if present(f.Text) {
		clauses = append(clauses, clause("text", "~", f.Text))
	}
	if present(f.Title) {
		clauses = append(clauses, clause("title", "~", f.Title))
	}
	if present(f.SpaceKey) {
		clauses = append(clauses, clause("space", "=", f.SpaceKey))
	}
	for _, l := range f.Labels {
		if present(l) {
			clauses = append(clauses, clause("label", "=", l))
		}
	}
	if present(f.ContentType) {
		clauses = append(clauses, clause("type", "=", f.ContentType))
	}

	discrete := strings.Join(clauses, " AND ")
	switch {
	case !present(f.CQL):
		return discrete
	case discrete == "":
		return f.CQL
	}
	return "(" + discrete + ") AND (" + f.CQL + ")"
}
