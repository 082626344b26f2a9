// Package pagination turns the three continuation schemes used by the
// Confluence APIs into one cursor contract.
package pagination

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Style selects the shape Extract expects in a response body.
type Style int

const (
	// Offset bodies carry startAt/maxResults/total counters (or the v1
	// start/limit/totalSize spelling) and optionally a nextPage token.
	Offset Style = iota
	// Cursor bodies carry an opaque cursor inside _links.next.
	Cursor
	// Page bodies carry a page number inside a top-level next link.
	Page
)

func (s Style) String() string {
	switch s {
	case Offset:
		return "offset"
	case Cursor:
		return "cursor"
	case Page:
		return "page"
	}
	return fmt.Sprintf("Style(%d)", int(s))
}

// ParseStyle maps "offset", "cursor" or "page" to a Style.
func ParseStyle(s string) (Style, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "offset":
		return Offset, nil
	case "cursor":
		return Cursor, nil
	case "page":
		return Page, nil
	}
	return 0, fmt.Errorf("unknown pagination style %q (must be one of: offset, cursor, page)", s)
}

// Result is the style-independent view of a response's continuation state.
// HasMore is true exactly when NextCursor is non-empty.
type Result struct {
	NextCursor string
	HasMore    bool
	Count      *int // number of items on this page, nil when the body has no item list
}

func newResult(next string, count *int) Result {
	return Result{NextCursor: next, HasMore: next != "", Count: count}
}

// Extract reads the continuation state of body. It never fails: malformed
// bodies or links yield a Result with HasMore false.
func Extract(body []byte, style Style) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			res = Result{}
		}
	}()

	var obj map[string]any
	if err := json.Unmarshal(body, &obj); err != nil || obj == nil {
		return Result{}
	}

	switch style {
	case Offset:
		return extractOffset(obj)
	case Cursor:
		return extractCursor(obj)
	case Page:
		return extractPage(obj)
	}
	return Result{}
}

func extractOffset(obj map[string]any) Result {
	count := listLen(obj, "values", "results")

	start, okStart := intField(obj, "startAt", "start")
	size, okSize := intField(obj, "maxResults", "limit")
	total, okTotal := intField(obj, "total", "totalSize")
	if okStart && okSize && okTotal && size > 0 && start+size < total {
		return newResult(strconv.Itoa(start+size), count)
	}

	if token, ok := obj["nextPage"].(string); ok {
		return newResult(token, count)
	}
	if token, ok := obj["nextPageToken"].(string); ok {
		return newResult(token, count)
	}
	return newResult("", count)
}

func extractCursor(obj map[string]any) Result {
	count := listLen(obj, "results")

	links, _ := obj["_links"].(map[string]any)
	next, _ := links["next"].(string)
	return newResult(queryParam(next, "cursor"), count)
}

func extractPage(obj map[string]any) Result {
	count := listLen(obj, "values")

	next, _ := obj["next"].(string)
	return newResult(queryParam(next, "page"), count)
}

// queryParam returns the percent-decoded value of key in link. A '+' is kept
// literally since cursors are opaque tokens, not form values.
func queryParam(link, key string) string {
	if link == "" {
		return ""
	}
	u, err := url.Parse(link)
	if err != nil {
		return ""
	}
	for _, pair := range strings.Split(u.RawQuery, "&") {
		k, v, _ := strings.Cut(pair, "=")
		if k != key {
			continue
		}
		decoded, err := url.PathUnescape(v)
		if err != nil {
			return ""
		}
		return decoded
	}
	return ""
}

func listLen(obj map[string]any, keys ...string) *int {
	for _, k := range keys {
		if list, ok := obj[k].([]any); ok {
			n := len(list)
			return &n
		}
	}
	return nil
}

func intField(obj map[string]any, keys ...string) (int, bool) {
	for _, k := range keys {
		if f, ok := obj[k].(float64); ok {
			return int(f), true
		}
	}
	return 0, false
}
