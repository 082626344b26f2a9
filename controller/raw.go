package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"net/url"

	"github.com/habedi/conflux/pkg/clierr"
	"github.com/habedi/conflux/pkg/pagination"
)

// Raw performs a GET on path and returns the JSON body, indented, with the
// continuation state read in the given style.
func (c *Controller) Raw(ctx context.Context, path string, query url.Values, style pagination.Style) (*Response, error) {
	ectx := clierr.Context{EntityType: "resource", EntityID: path, Operation: "requesting", Source: "controller.Raw"}

	body, err := c.API.GetRaw(ctx, path, query)
	if err != nil {
		return nil, c.fail(err, ectx)
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, body, "", "  "); err != nil {
		pretty.Reset()
		pretty.Write(body)
	}
	pretty.WriteString("\n")
	return withPagination(pretty.String(), pagination.Extract(body, style)), nil
}
