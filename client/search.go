package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/habedi/conflux/pkg/clierr"
	"github.com/habedi/conflux/pkg/pagination"
)

// ParseOffset converts an offset-style cursor to a start index. The empty
// cursor means the first page.
func ParseOffset(cursor string) (int, error) {
	if cursor == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(cursor)
	if err != nil || n < 0 {
		return 0, clierr.NewInvalidCursor(fmt.Sprintf("invalid cursor %q: expected a non-negative integer", cursor), err)
	}
	return n, nil
}

// Search runs a CQL query against the v1 search API.
func (c *Client) Search(ctx context.Context, cql string, opts ListOptions) ([]SearchResult, pagination.Result, error) {
	start, err := ParseOffset(opts.Cursor)
	if err != nil {
		return nil, pagination.Result{}, err
	}
	q := url.Values{"cql": {cql}}
	if opts.Limit > 0 {
		q.Set("limit", strconv.Itoa(opts.Limit))
	}
	if start > 0 {
		q.Set("start", strconv.Itoa(start))
	}

	var env listEnvelope[SearchResult]
	body, err := c.getJSON(ctx, v1Prefix+"/search", q, &env)
	if err != nil {
		return nil, pagination.Result{}, err
	}
	return env.Results, pagination.Extract(body, pagination.Offset), nil
}
