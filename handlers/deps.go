package handlers

import (
	"context"
	"time"

	"portfolio/api/activity"
	"portfolio/api/leetcode"
	"portfolio/api/models"
)

// BlogRepository is implemented by *store.BlogStore.
type BlogRepository interface {
	List(ctx context.Context) ([]models.Blog, error)
	Get(ctx context.Context, id string) (*models.Blog, error)
	Create(ctx context.Context, in models.BlogInput) (*models.Blog, error)
	Update(ctx context.Context, id string, patch models.BlogPatch) (*models.Blog, error)
	Delete(ctx context.Context, id string) error
}

// ViewRepository is implemented by *store.AnalyticsStore.
type ViewRepository interface {
	InsertBlogViews(ctx context.Context, events []models.BlogViewEvent) error
	DailyViews(ctx context.Context, blogID string, start, end time.Time) ([]activity.Entry, error)
	TopBlogs(ctx context.Context, start, end time.Time, limit uint64) ([]models.TopBlogResult, error)
}

type ProfileFetcher interface {
	FetchProfile(ctx context.Context, username string, year int) (*leetcode.Profile, error)
}

// ProfileCache is implemented by *store.ProfileCache. Get returns nil, nil
// on a miss.
type ProfileCache interface {
	Get(ctx context.Context, username string) (*leetcode.Profile, error)
	Set(ctx context.Context, p *leetcode.Profile) error
	Invalidate(ctx context.Context, username string) error
}

type ContactRepository interface {
	Create(ctx context.Context, msg *models.ContactMessage) error
	MarkDelivered(ctx context.Context, id int64) error
}

type ContactMailer interface {
	SendContact(ctx context.Context, msg models.ContactMessage) error
}
