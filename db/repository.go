package db

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PageRepository persists cached pages.
type PageRepository interface {
	Put(ctx context.Context, p CachedPage) error
	GetByID(ctx context.Context, id string) (*CachedPage, error)
	List(ctx context.Context, spaceKey string) ([]CachedPage, error)
	SearchByTitle(ctx context.Context, titleSubstr string) ([]CachedPage, error)
	Clear(ctx context.Context) error
}

// CredentialRepository persists the single stored credential.
type CredentialRepository interface {
	Get(ctx context.Context) (*Credential, error)
	Upsert(ctx context.Context, c *Credential) error
}

type gormPageRepo struct{ db *gorm.DB }

type gormCredentialRepo struct{ db *gorm.DB }

func NewPageRepository(db *gorm.DB) PageRepository { return &gormPageRepo{db: db} }

func NewCredentialRepository(db *gorm.DB) CredentialRepository { return &gormCredentialRepo{db: db} }

var errNotInitialized = fmt.Errorf("repository not initialized")

func (r *gormPageRepo) Put(ctx context.Context, p CachedPage) error {
	if r.db == nil {
		return errNotInitialized
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(&p).Error
}

// GetByID returns nil, nil when the page is not cached.
func (r *gormPageRepo) GetByID(ctx context.Context, id string) (*CachedPage, error) {
	if r.db == nil {
		return nil, errNotInitialized
	}
	var page CachedPage
	err := r.db.WithContext(ctx).First(&page, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &page, nil
}

// List returns cached pages ordered by title, restricted to spaceKey unless it is empty.
func (r *gormPageRepo) List(ctx context.Context, spaceKey string) ([]CachedPage, error) {
	if r.db == nil {
		return nil, errNotInitialized
	}
	q := r.db.WithContext(ctx).Order("title")
	if spaceKey != "" {
		q = q.Where("space_key = ?", spaceKey)
	}
	var pages []CachedPage
	if err := q.Find(&pages).Error; err != nil {
		return nil, err
	}
	return pages, nil
}

func (r *gormPageRepo) SearchByTitle(ctx context.Context, titleSubstr string) ([]CachedPage, error) {
	if r.db == nil {
		return nil, errNotInitialized
	}
	var pages []CachedPage
	if err := r.db.WithContext(ctx).Where("title LIKE ?", "%"+titleSubstr+"%").Order("title").Find(&pages).Error; err != nil {
		return nil, err
	}
	return pages, nil
}

func (r *gormPageRepo) Clear(ctx context.Context) error {
	if r.db == nil {
		return errNotInitialized
	}
	return r.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(&CachedPage{}).Error
}

// Get returns nil, nil when nothing has been stored yet.
func (r *gormCredentialRepo) Get(ctx context.Context) (*Credential, error) {
	if r.db == nil {
		return nil, errNotInitialized
	}
	var c Credential
	err := r.db.WithContext(ctx).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *gormCredentialRepo) Upsert(ctx context.Context, c *Credential) error {
	if r.db == nil {
		return errNotInitialized
	}
	c.ID = 1
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"site_url", "email", "api_token", "updated_at"}),
	}).Create(c).Error
}
