package controller

import (
	"context"

	"github.com/habedi/conflux/client"
	"github.com/habedi/conflux/format"
	"github.com/habedi/conflux/pkg/clierr"
	"github.com/habedi/conflux/pkg/cql"
	"github.com/habedi/conflux/pkg/validation"
)

// Search builds CQL from f and returns one page of hits. No criteria at all
// is a validation error, never an unconstrained search.
func (c *Controller) Search(ctx context.Context, f cql.Filter, opts client.ListOptions) (*Response, error) {
	ectx := clierr.Context{EntityType: "search", Operation: "searching", Source: "controller.Search"}
	if err := validation.ValidateLimit(opts.Limit); err != nil {
		return nil, c.fail(err, ectx)
	}

	query := cql.Build(f)
	if query == "" {
		return nil, c.fail(clierr.NewValidation("Provide search text or at least one of --title, --space, --label, --type or --cql.", nil), ectx)
	}
	ectx.AdditionalInfo = map[string]any{"cql": query}

	results, page, err := c.API.Search(ctx, query, opts)
	if err != nil {
		return nil, c.fail(err, ectx)
	}
	return withPagination(format.SearchResults(query, results, page), page), nil
}
