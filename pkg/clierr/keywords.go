package clierr

import "strings"

// Keywords holds the lower-case substrings the classifier looks for in
// free-text messages. The matching is heuristic; treat the lists as configuration.
type Keywords struct {
	Network      []string `yaml:"network"`
	RateLimit    []string `yaml:"rate_limit"`
	NotFound     []string `yaml:"not_found"`
	Access       []string `yaml:"access"`
	Validation   []string `yaml:"validation"`
	QuerySyntax  []string `yaml:"query_syntax"`
	ContentState []string `yaml:"content_state"`
}

// DefaultKeywords returns the built-in keyword families.
func DefaultKeywords() Keywords {
	return Keywords{
		Network: []string{
			"network error",
			"fetch failed",
			"failed to fetch",
			"econnrefused",
			"enotfound",
			"connection refused",
			"no such host",
			"network request failed",
		},
		RateLimit:    []string{"rate limit", "too many requests"},
		NotFound:     []string{"not found", "does not exist"},
		Access:       []string{"permission", "access", "unauthorized"},
		Validation:   []string{"invalid", "validation"},
		QuerySyntax:  []string{"cql", "could not parse", "query syntax", "syntax error"},
		ContentState: []string{"content"},
	}
}

// Merge returns k with every non-empty family of override replacing its default.
func (k Keywords) Merge(override Keywords) Keywords {
	pick := func(def, o []string) []string {
		if len(o) == 0 {
			return def
		}
		out := make([]string, 0, len(o))
		for _, s := range o {
			if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
				out = append(out, s)
			}
		}
		return out
	}
	return Keywords{
		Network:      pick(k.Network, override.Network),
		RateLimit:    pick(k.RateLimit, override.RateLimit),
		NotFound:     pick(k.NotFound, override.NotFound),
		Access:       pick(k.Access, override.Access),
		Validation:   pick(k.Validation, override.Validation),
		QuerySyntax:  pick(k.QuerySyntax, override.QuerySyntax),
		ContentState: pick(k.ContentState, override.ContentState),
	}
}

// containsAny checks if any of the patterns exist in the text (case-insensitive).
func containsAny(text string, patterns []string) bool {
	low := strings.ToLower(text)
	for _, p := range patterns {
		if p != "" && strings.Contains(low, strings.ToLower(p)) {
			return true
		}
	}
	return false
}
