package controller

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/habedi/conflux/client"
	"github.com/habedi/conflux/db"
	"github.com/habedi/conflux/format"
	"github.com/habedi/conflux/pkg/apierr"
	"github.com/habedi/conflux/pkg/clierr"
	"github.com/habedi/conflux/pkg/validation"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// ListPages returns one page of the pages in a space.
func (c *Controller) ListPages(ctx context.Context, spaceKey string, opts client.ListOptions) (*Response, error) {
	ectx := clierr.Context{EntityType: "space", EntityID: spaceKey, Operation: "listing pages in", Source: "controller.ListPages"}
	if err := validation.ValidateSpaceKey(spaceKey); err != nil {
		return nil, c.fail(err, ectx)
	}
	if err := validation.ValidateLimit(opts.Limit); err != nil {
		return nil, c.fail(err, ectx)
	}

	space, err := c.API.GetSpaceByKey(ctx, spaceKey)
	if err != nil {
		return nil, c.fail(err, ectx)
	}
	pages, page, err := c.API.ListPagesInSpace(ctx, space.ID, opts, false)
	if err != nil {
		return nil, c.fail(err, ectx)
	}
	return withPagination(format.Pages(spaceKey, pages, page), page), nil
}

// GetPage fetches a page and its labels concurrently, renders it and stores
// it in the cache. A cache failure is logged, not returned.
func (c *Controller) GetPage(ctx context.Context, id string) (*Response, error) {
	ectx := clierr.Context{EntityType: "page", EntityID: id, Operation: "retrieving", Source: "controller.GetPage"}
	if err := validation.ValidatePageID(id); err != nil {
		return nil, c.fail(err, ectx)
	}

	var (
		pg     *client.Page
		labels []client.Label
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		pg, err = c.API.GetPage(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		labels, _, err = c.API.GetPageLabels(gctx, id, client.ListOptions{Limit: validation.MaxLimit})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, c.fail(err, ectx)
	}

	c.cache(ctx, pg, "", "")
	return &Response{Content: format.Page(pg, labels, c.SiteURL)}, nil
}

// CreatePageInput describes a new page. Body is Markdown.
type CreatePageInput struct {
	SpaceKey string
	Title    string
	ParentID string
	Body     string
}

// CreatePage converts the Markdown body to storage format and publishes it.
func (c *Controller) CreatePage(ctx context.Context, in CreatePageInput) (*Response, error) {
	ectx := clierr.Context{EntityType: "space", EntityID: in.SpaceKey, Operation: "creating a page in", Source: "controller.CreatePage"}
	if err := validation.ValidateSpaceKey(in.SpaceKey); err != nil {
		return nil, c.fail(err, ectx)
	}
	if err := validation.ValidateNonEmptyString("title", in.Title); err != nil {
		return nil, c.fail(err, ectx)
	}
	if in.ParentID != "" {
		if err := validation.ValidatePageID(in.ParentID); err != nil {
			return nil, c.fail(err, ectx)
		}
	}

	storage, err := format.MarkdownToStorage(in.Body)
	if err != nil {
		return nil, c.fail(clierr.NewValidation("could not convert the page body: "+err.Error(), err), ectx)
	}
	space, err := c.API.GetSpaceByKey(ctx, in.SpaceKey)
	if err != nil {
		return nil, c.fail(err, ectx)
	}
	pg, err := c.API.CreatePage(ctx, client.CreatePageRequest{SpaceID: space.ID, Title: in.Title, ParentID: in.ParentID, Body: storage})
	if err != nil {
		return nil, c.fail(err, ectx)
	}

	c.cache(ctx, pg, in.SpaceKey, in.Body)
	return &Response{Content: fmt.Sprintf("Created page **%s** (id %s, version %d) in %s.\n", pg.Title, pg.ID, pg.Version.Number, in.SpaceKey)}, nil
}

// UpdatePageInput describes a page update. An empty Title keeps the current one.
type UpdatePageInput struct {
	ID      string
	Title   string
	Body    string
	Message string
}

// UpdatePage replaces a page body, sending the next version number. A 409
// from the API means the page changed or cannot be edited and is reported as
// content_state.
func (c *Controller) UpdatePage(ctx context.Context, in UpdatePageInput) (*Response, error) {
	ectx := clierr.Context{EntityType: "page", EntityID: in.ID, Operation: "updating", Source: "controller.UpdatePage"}
	if err := validation.ValidatePageID(in.ID); err != nil {
		return nil, c.fail(err, ectx)
	}

	storage, err := format.MarkdownToStorage(in.Body)
	if err != nil {
		return nil, c.fail(clierr.NewValidation("could not convert the page body: "+err.Error(), err), ectx)
	}
	current, err := c.API.GetPage(ctx, in.ID)
	if err != nil {
		return nil, c.fail(err, ectx)
	}
	title := in.Title
	if title == "" {
		title = current.Title
	}

	pg, err := c.API.UpdatePage(ctx, in.ID, client.UpdatePageRequest{
		Title:   title,
		Body:    storage,
		Version: current.Version.Number + 1,
		Message: in.Message,
	})
	if err != nil {
		if apierr.StatusOf(err) == http.StatusConflict {
			err = clierr.NewContentState(err.Error(), http.StatusConflict, err)
		}
		return nil, c.fail(err, ectx)
	}

	c.cache(ctx, pg, "", in.Body)
	return &Response{Content: fmt.Sprintf("Updated page **%s** (id %s) to version %d.\n", pg.Title, pg.ID, pg.Version.Number)}, nil
}

// cache stores pg. markdown is used as the body when set; otherwise the
// storage body is converted.
func (c *Controller) cache(ctx context.Context, pg *client.Page, spaceKey, markdown string) {
	if c.Cache == nil || pg == nil {
		return
	}
	if spaceKey == "" {
		if prev, err := c.Cache.GetByID(ctx, pg.ID); err == nil && prev != nil {
			spaceKey = prev.SpaceKey
		}
	}
	if err := c.Cache.Put(ctx, toCached(pg, spaceKey, markdown)); err != nil {
		log.Warn().Err(err).Str("page", pg.ID).Msg("Failed to cache page")
	}
}

func toCached(pg *client.Page, spaceKey, markdown string) db.CachedPage {
	if markdown == "" {
		markdown = format.StorageToMarkdown(pg.StorageBody())
	}
	return db.CachedPage{
		ID:        pg.ID,
		Title:     pg.Title,
		SpaceKey:  spaceKey,
		Version:   pg.Version.Number,
		Body:      markdown,
		FetchedAt: time.Now().UTC(),
	}
}
