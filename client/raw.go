package client

import (
	"context"
	"net/url"
	"strings"

	"github.com/habedi/conflux/pkg/clierr"
)

// GetRaw performs a GET on any path under the site and returns the body
// unparsed. path may carry its own query string; query is merged into it.
func (c *Client) GetRaw(ctx context.Context, path string, query url.Values) ([]byte, error) {
	if !strings.HasPrefix(path, "/") {
		return nil, clierr.NewValidation("API path must start with '/'", nil)
	}
	u, err := url.Parse(path)
	if err != nil || u.IsAbs() || u.Host != "" {
		return nil, clierr.NewValidation("API path must be relative to the site, e.g. /wiki/api/v2/spaces", err)
	}
	merged := u.Query()
	for k, vs := range query {
		for _, v := range vs {
			merged.Add(k, v)
		}
	}
	return c.do(ctx, "GET", u.Path, merged, nil)
}
