package client

import "time"

// User is the account behind the API token.
type User struct {
	AccountID   string `json:"accountId"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	PublicName  string `json:"publicName"`
}

// Space is a v2 space record.
type Space struct {
	ID          string `json:"id"`
	Key         string `json:"key"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	Status      string `json:"status"`
	HomepageID  string `json:"homepageId"`
	Description struct {
		Plain struct {
			Value string `json:"value"`
		} `json:"plain"`
	} `json:"description"`
}

// Version is the revision block carried by pages.
type Version struct {
	Number    int       `json:"number"`
	Message   string    `json:"message,omitempty"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
	AuthorID  string    `json:"authorId,omitempty"`
}

// Body carries a page body in one representation.
type Body struct {
	Storage *BodyValue `json:"storage,omitempty"`
}

// BodyValue is one representation of a page body.
type BodyValue struct {
	Representation string `json:"representation"`
	Value          string `json:"value"`
}

// Page is a v2 page record. Body is only populated when requested.
type Page struct {
	ID       string  `json:"id"`
	Status   string  `json:"status"`
	Title    string  `json:"title"`
	SpaceID  string  `json:"spaceId"`
	ParentID string  `json:"parentId,omitempty"`
	Version  Version `json:"version"`
	Body     Body    `json:"body"`
	Links    struct {
		WebUI string `json:"webui"`
	} `json:"_links"`
}

// StorageBody returns the storage-format body or "".
func (p *Page) StorageBody() string {
	if p.Body.Storage == nil {
		return ""
	}
	return p.Body.Storage.Value
}

// Label is a v2 label.
type Label struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Prefix string `json:"prefix"`
}

// SearchResult is one hit of a v1 CQL search.
type SearchResult struct {
	Content struct {
		ID    string `json:"id"`
		Type  string `json:"type"`
		Title string `json:"title"`
	} `json:"content"`
	Title                 string `json:"title"`
	Excerpt               string `json:"excerpt"`
	URL                   string `json:"url"`
	LastModified          string `json:"lastModified"`
	ResultGlobalContainer struct {
		Title      string `json:"title"`
		DisplayURL string `json:"displayUrl"`
	} `json:"resultGlobalContainer"`
}

// ListOptions controls one page of a listing. Cursor is opaque to callers;
// for offset-paginated endpoints it is the decimal start index.
type ListOptions struct {
	Limit  int
	Cursor string
}

// CreatePageRequest is the input of CreatePage. Body is storage format.
type CreatePageRequest struct {
	SpaceID  string
	Title    string
	ParentID string
	Body     string
}

// UpdatePageRequest is the input of UpdatePage. Version is the new version number.
type UpdatePageRequest struct {
	Title   string
	Body    string
	Version int
	Message string
}

type listEnvelope[T any] struct {
	Results []T `json:"results"`
}
