package controller

import (
	"context"
	"fmt"

	"github.com/habedi/conflux/client"
	"github.com/habedi/conflux/db"
	"github.com/habedi/conflux/pkg/clierr"
	"github.com/habedi/conflux/pkg/pool"
	"github.com/habedi/conflux/pkg/validation"
	"github.com/rs/zerolog/log"
)

// Progress receives export progress. Implementations must be safe for concurrent use.
type Progress interface {
	Start(total int)
	Increment()
}

// FailedPage is a page that could not be exported.
type FailedPage struct {
	ID    string
	Title string
	Err   *clierr.Error
}

// ExportReport is the outcome of ExportSpace. Pages keeps the listing order.
type ExportReport struct {
	SpaceKey string
	Pages    []db.CachedPage
	Failed   []FailedPage
}

const exportPageSize = 100

// ExportSpace lists every page of a space, then fetches the bodies with
// workers goroutines and converts them to Markdown. Exported pages are also
// cached. Per-page failures are reported in the result; the call fails only
// when the listing fails or no page could be fetched.
func (c *Controller) ExportSpace(ctx context.Context, spaceKey string, workers int, progress Progress) (*ExportReport, error) {
	ectx := clierr.Context{EntityType: "space", EntityID: spaceKey, Operation: "exporting", Source: "controller.ExportSpace"}
	if err := validation.ValidateSpaceKey(spaceKey); err != nil {
		return nil, c.fail(err, ectx)
	}
	if err := validation.ValidateThreadCount(workers); err != nil {
		return nil, c.fail(err, ectx)
	}

	space, err := c.API.GetSpaceByKey(ctx, spaceKey)
	if err != nil {
		return nil, c.fail(err, ectx)
	}
	summaries, err := c.listAllPages(ctx, space.ID)
	if err != nil {
		return nil, c.fail(err, ectx)
	}

	if progress != nil {
		progress.Start(len(summaries))
	}
	var onDone func()
	if progress != nil {
		onDone = progress.Increment
	}

	outcomes := pool.Map(ctx, summaries, workers, func(ctx context.Context, s client.Page) (db.CachedPage, error) {
		pg, err := c.API.GetPage(ctx, s.ID)
		if err != nil {
			return db.CachedPage{}, err
		}
		return toCached(pg, spaceKey, ""), nil
	}, onDone)

	report := &ExportReport{SpaceKey: spaceKey}
	for i, o := range outcomes {
		if o.Err != nil {
			failed := c.fail(o.Err, clierr.Context{EntityType: "page", EntityID: summaries[i].ID, Operation: "exporting", Source: "controller.ExportSpace"})
			log.Warn().Str("page", summaries[i].ID).Str("kind", string(failed.Kind)).Msg("Page export failed")
			report.Failed = append(report.Failed, FailedPage{ID: summaries[i].ID, Title: summaries[i].Title, Err: failed})
			continue
		}
		report.Pages = append(report.Pages, o.Value)
		if c.Cache != nil {
			if err := c.Cache.Put(ctx, o.Value); err != nil {
				log.Warn().Err(err).Str("page", o.Value.ID).Msg("Failed to cache page")
			}
		}
	}

	if errs := pool.Errors(outcomes); len(errs) > 0 {
		log.Warn().Int("failed", len(errs)).Int("total", len(outcomes)).Str("space", spaceKey).Msg("Export finished with failures")
		if len(errs) == len(outcomes) {
			return report, report.Failed[0].Err
		}
	}
	return report, nil
}

// listAllPages follows the cursor until the listing is exhausted. A cursor
// seen twice ends the walk.
func (c *Controller) listAllPages(ctx context.Context, spaceID string) ([]client.Page, error) {
	var all []client.Page
	seen := map[string]bool{}
	opts := client.ListOptions{Limit: exportPageSize}
	for {
		pages, page, err := c.API.ListPagesInSpace(ctx, spaceID, opts, false)
		if err != nil {
			return nil, err
		}
		all = append(all, pages...)
		if !page.HasMore {
			return all, nil
		}
		if seen[page.NextCursor] {
			log.Warn().Str("cursor", page.NextCursor).Msg("Pagination cursor repeated; stopping")
			return all, nil
		}
		seen[page.NextCursor] = true
		opts.Cursor = page.NextCursor
	}
}

// Summary is a one-line description of the report.
func (r *ExportReport) Summary() string {
	s := fmt.Sprintf("Exported %d %s from %s.", len(r.Pages), plural(len(r.Pages), "page", "pages"), r.SpaceKey)
	if n := len(r.Failed); n > 0 {
		s += fmt.Sprintf(" %d %s failed.", n, plural(n, "page", "pages"))
	}
	return s
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
