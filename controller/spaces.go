package controller

import (
	"context"

	"github.com/habedi/conflux/client"
	"github.com/habedi/conflux/format"
	"github.com/habedi/conflux/pkg/clierr"
	"github.com/habedi/conflux/pkg/validation"
)

// ListSpaces returns one page of spaces.
func (c *Controller) ListSpaces(ctx context.Context, opts client.ListOptions) (*Response, error) {
	ectx := clierr.Context{EntityType: "space", Operation: "listing spaces", Source: "controller.ListSpaces"}
	if err := validation.ValidateLimit(opts.Limit); err != nil {
		return nil, c.fail(err, ectx)
	}

	spaces, page, err := c.API.ListSpaces(ctx, opts)
	if err != nil {
		return nil, c.fail(err, ectx)
	}
	return withPagination(format.Spaces(spaces, page), page), nil
}

// GetSpace returns the details of a space by key.
func (c *Controller) GetSpace(ctx context.Context, key string) (*Response, error) {
	ectx := clierr.Context{EntityType: "space", EntityID: key, Operation: "retrieving", Source: "controller.GetSpace"}
	if err := validation.ValidateSpaceKey(key); err != nil {
		return nil, c.fail(err, ectx)
	}

	space, err := c.API.GetSpaceByKey(ctx, key)
	if err != nil {
		return nil, c.fail(err, ectx)
	}
	return &Response{Content: format.Space(space, c.SiteURL)}, nil
}
