package client

import (
	"context"
	"fmt"

	"github.com/habedi/conflux/pkg/clierr"
	"github.com/habedi/conflux/pkg/pagination"
)

// ListSpaces returns one page of spaces, optionally restricted to keys.
func (c *Client) ListSpaces(ctx context.Context, opts ListOptions, keys ...string) ([]Space, pagination.Result, error) {
	q := listQuery(opts)
	for _, k := range keys {
		q.Add("keys", k)
	}
	var env listEnvelope[Space]
	body, err := c.getJSON(ctx, v2Prefix+"/spaces", q, &env)
	if err != nil {
		return nil, pagination.Result{}, err
	}
	return env.Results, pagination.Extract(body, pagination.Cursor), nil
}

// GetSpaceByKey resolves a space key. The v2 API answers an unknown key with
// an empty list, which is reported as a not_found error.
func (c *Client) GetSpaceByKey(ctx context.Context, key string) (*Space, error) {
	spaces, _, err := c.ListSpaces(ctx, ListOptions{Limit: 1}, key)
	if err != nil {
		return nil, err
	}
	for i := range spaces {
		if spaces[i].Key == key {
			return &spaces[i], nil
		}
	}
	return nil, clierr.NewNotFound(fmt.Sprintf("No space found with key %s", key), 404, nil)
}
