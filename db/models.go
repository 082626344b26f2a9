package db

import "time"

// Credential holds the site and API token saved by `conflux init`. There is only ever one row.
type Credential struct {
	ID        uint   `gorm:"primaryKey"`
	SiteURL   string `json:"site_url"`
	Email     string `json:"email"`
	APIToken  string `json:"-"`
	UpdatedAt time.Time
}

// CachedPage is a page fetched by `page get` or `space export`, kept for offline lookup.
type CachedPage struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"index" json:"title"`
	SpaceKey  string    `gorm:"index" json:"space_key"`
	Version   int       `json:"version"`
	Body      string    `json:"body"` // Markdown
	FetchedAt time.Time `json:"fetched_at"`
}
