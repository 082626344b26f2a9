// Package controller implements the operations behind the commands. Every
// failure leaves through the error gate as a *clierr.Error.
package controller

import (
	"context"
	"net/url"

	"github.com/habedi/conflux/client"
	"github.com/habedi/conflux/db"
	"github.com/habedi/conflux/pkg/clierr"
	"github.com/habedi/conflux/pkg/pagination"
)

// API is the subset of *client.Client the controllers use.
type API interface {
	ListSpaces(ctx context.Context, opts client.ListOptions, keys ...string) ([]client.Space, pagination.Result, error)
	GetSpaceByKey(ctx context.Context, key string) (*client.Space, error)
	ListPagesInSpace(ctx context.Context, spaceID string, opts client.ListOptions, withBody bool) ([]client.Page, pagination.Result, error)
	GetPage(ctx context.Context, id string) (*client.Page, error)
	GetPageLabels(ctx context.Context, id string, opts client.ListOptions) ([]client.Label, pagination.Result, error)
	CreatePage(ctx context.Context, in client.CreatePageRequest) (*client.Page, error)
	UpdatePage(ctx context.Context, id string, in client.UpdatePageRequest) (*client.Page, error)
	Search(ctx context.Context, cql string, opts client.ListOptions) ([]client.SearchResult, pagination.Result, error)
	GetRaw(ctx context.Context, path string, query url.Values) ([]byte, error)
}

// Response is what commands print. Pagination is nil for single objects.
type Response struct {
	Content    string
	Pagination *pagination.Result
}

// Controller wires the API to the gate and the page cache. Cache may be nil.
type Controller struct {
	API     API
	Gate    *clierr.Gate
	Cache   db.PageRepository
	SiteURL string
}

// New returns a Controller. A nil gate uses the default classifier.
func New(api API, gate *clierr.Gate, cache db.PageRepository, siteURL string) *Controller {
	if gate == nil {
		gate = clierr.NewGate(nil)
	}
	return &Controller{API: api, Gate: gate, Cache: cache, SiteURL: siteURL}
}

func (c *Controller) fail(err error, ctx clierr.Context) *clierr.Error {
	return c.Gate.Handle(err, ctx)
}

func withPagination(content string, p pagination.Result) *Response {
	return &Response{Content: content, Pagination: &p}
}
