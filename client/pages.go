package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/habedi/conflux/pkg/pagination"
)

const storageFormat = "storage"

// ListPagesInSpace returns one page of the pages in a space. Bodies are
// included only when withBody is set.
func (c *Client) ListPagesInSpace(ctx context.Context, spaceID string, opts ListOptions, withBody bool) ([]Page, pagination.Result, error) {
	q := listQuery(opts)
	if withBody {
		q.Set("body-format", storageFormat)
	}
	var env listEnvelope[Page]
	body, err := c.getJSON(ctx, v2Prefix+"/spaces/"+url.PathEscape(spaceID)+"/pages", q, &env)
	if err != nil {
		return nil, pagination.Result{}, err
	}
	return env.Results, pagination.Extract(body, pagination.Cursor), nil
}

// GetPage fetches a page with its storage body.
func (c *Client) GetPage(ctx context.Context, id string) (*Page, error) {
	var p Page
	q := url.Values{"body-format": {storageFormat}}
	if _, err := c.getJSON(ctx, v2Prefix+"/pages/"+url.PathEscape(id), q, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// GetPageLabels returns one page of a page's labels.
func (c *Client) GetPageLabels(ctx context.Context, id string, opts ListOptions) ([]Label, pagination.Result, error) {
	var env listEnvelope[Label]
	body, err := c.getJSON(ctx, v2Prefix+"/pages/"+url.PathEscape(id)+"/labels", listQuery(opts), &env)
	if err != nil {
		return nil, pagination.Result{}, err
	}
	return env.Results, pagination.Extract(body, pagination.Cursor), nil
}

type pageBody struct {
	Representation string `json:"representation"`
	Value          string `json:"value"`
}

type createPagePayload struct {
	SpaceID  string   `json:"spaceId"`
	Status   string   `json:"status"`
	Title    string   `json:"title"`
	ParentID string   `json:"parentId,omitempty"`
	Body     pageBody `json:"body"`
}

type updatePagePayload struct {
	ID      string   `json:"id"`
	Status  string   `json:"status"`
	Title   string   `json:"title"`
	Body    pageBody `json:"body"`
	Version struct {
		Number  int    `json:"number"`
		Message string `json:"message,omitempty"`
	} `json:"version"`
}

// CreatePage publishes a new page and returns it as stored.
func (c *Client) CreatePage(ctx context.Context, in CreatePageRequest) (*Page, error) {
	payload := createPagePayload{
		SpaceID:  in.SpaceID,
		Status:   "current",
		Title:    in.Title,
		ParentID: in.ParentID,
		Body:     pageBody{Representation: storageFormat, Value: in.Body},
	}
	body, err := c.do(ctx, http.MethodPost, v2Prefix+"/pages", nil, payload)
	if err != nil {
		return nil, err
	}
	var p Page
	if err := decode(body, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdatePage replaces a page's title and body. in.Version must be the
// current version plus one or the API answers 409.
func (c *Client) UpdatePage(ctx context.Context, id string, in UpdatePageRequest) (*Page, error) {
	payload := updatePagePayload{
		ID:     id,
		Status: "current",
		Title:  in.Title,
		Body:   pageBody{Representation: storageFormat, Value: in.Body},
	}
	payload.Version.Number = in.Version
	payload.Version.Message = in.Message

	body, err := c.do(ctx, http.MethodPut, v2Prefix+"/pages/"+url.PathEscape(id), nil, payload)
	if err != nil {
		return nil, err
	}
	var p Page
	if err := decode(body, &p); err != nil {
		return nil, err
	}
	return &p, nil
}
