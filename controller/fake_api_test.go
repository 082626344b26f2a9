package controller_test

import (
	"context"
	"net/url"
	"sync"

	"github.com/habedi/conflux/client"
	"github.com/habedi/conflux/pkg/pagination"
)

// fakeAPI serves canned values. Unset function fields panic if called.
type fakeAPI struct {
	mu    sync.Mutex
	calls []string

	listSpaces func(opts client.ListOptions) ([]client.Space, pagination.Result, error)
	spaceByKey func(key string) (*client.Space, error)
	listPages  func(spaceID string, opts client.ListOptions) ([]client.Page, pagination.Result, error)
	getPage    func(id string) (*client.Page, error)
	labels     func(id string) ([]client.Label, pagination.Result, error)
	createPage func(in client.CreatePageRequest) (*client.Page, error)
	updatePage func(id string, in client.UpdatePageRequest) (*client.Page, error)
	search     func(cql string, opts client.ListOptions) ([]client.SearchResult, pagination.Result, error)
	getRaw     func(path string, query url.Values) ([]byte, error)
}

func (f *fakeAPI) record(name string) {
	f.mu.Lock()
	f.calls = append(f.calls, name)
	f.mu.Unlock()
}

func (f *fakeAPI) ListSpaces(_ context.Context, opts client.ListOptions, _ ...string) ([]client.Space, pagination.Result, error) {
	f.record("ListSpaces")
	return f.listSpaces(opts)
}

func (f *fakeAPI) GetSpaceByKey(_ context.Context, key string) (*client.Space, error) {
	f.record("GetSpaceByKey")
	return f.spaceByKey(key)
}

func (f *fakeAPI) ListPagesInSpace(_ context.Context, spaceID string, opts client.ListOptions, _ bool) ([]client.Page, pagination.Result, error) {
	f.record("ListPagesInSpace")
	return f.listPages(spaceID, opts)
}

func (f *fakeAPI) GetPage(_ context.Context, id string) (*client.Page, error) {
	f.record("GetPage")
	return f.getPage(id)
}

func (f *fakeAPI) GetPageLabels(_ context.Context, id string, _ client.ListOptions) ([]client.Label, pagination.Result, error) {
	f.record("GetPageLabels")
	return f.labels(id)
}

func (f *fakeAPI) CreatePage(_ context.Context, in client.CreatePageRequest) (*client.Page, error) {
	f.record("CreatePage")
	return f.createPage(in)
}

func (f *fakeAPI) UpdatePage(_ context.Context, id string, in client.UpdatePageRequest) (*client.Page, error) {
	f.record("UpdatePage")
	return f.updatePage(id, in)
}

func (f *fakeAPI) Search(_ context.Context, cql string, opts client.ListOptions) ([]client.SearchResult, pagination.Result, error) {
	f.record("Search")
	return f.search(cql, opts)
}

func (f *fakeAPI) GetRaw(_ context.Context, path string, query url.Values) ([]byte, error) {
	f.record("GetRaw")
	return f.getRaw(path, query)
}

func page(id, title string, version int, storage string) *client.Page {
	p := &client.Page{ID: id, Title: title, Version: client.Version{Number: version}}
	if storage != "" {
		p.Body.Storage = &client.BodyValue{Representation: "storage", Value: storage}
	}
	return p
}

func dev(string) (*client.Space, error) { return &client.Space{ID: "7", Key: "DEV", Name: "Development"}, nil }
