package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"portfolio/api/activity"
	"portfolio/api/leetcode"
	"portfolio/api/models"
	"portfolio/api/store"
	"portfolio/api/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeBlogs struct {
	mu    sync.Mutex
	blogs map[string]*models.Blog
	order []string
	err   error
}

func newFakeBlogs(blogs ...*models.Blog) *fakeBlogs {
	f := &fakeBlogs{blogs: map[string]*models.Blog{}}
	for _, b := range blogs {
		f.blogs[b.ID.Hex()] = b
		f.order = append(f.order, b.ID.Hex())
	}
	return f
}

func (f *fakeBlogs) List(ctx context.Context) ([]models.Blog, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := []models.Blog{}
	for _, id := range f.order {
		if b, ok := f.blogs[id]; ok {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeBlogs) Get(ctx context.Context, id string) (*models.Blog, error) {
	if f.err != nil {
		return nil, f.err
	}
	b, ok := f.blogs[id]
	if !ok {
		return nil, store.ErrBlogNotFound
	}
	return b, nil
}

func (f *fakeBlogs) Create(ctx context.Context, in models.BlogInput) (*models.Blog, error) {
	if f.err != nil {
		return nil, f.err
	}
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	b := &models.Blog{ID: bson.NewObjectID(), Title: in.Title, ContentHTML: in.ContentHTML, CreatedAt: now, UpdatedAt: now}
	f.blogs[b.ID.Hex()] = b
	f.order = append([]string{b.ID.Hex()}, f.order...)
	return b, nil
}

func (f *fakeBlogs) Update(ctx context.Context, id string, patch models.BlogPatch) (*models.Blog, error) {
	b, err := f.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.Title != nil {
		b.Title = *patch.Title
	}
	if patch.ContentHTML != nil {
		b.ContentHTML = *patch.ContentHTML
	}
	return b, nil
}

func (f *fakeBlogs) Delete(ctx context.Context, id string) error {
	if f.err != nil {
		return f.err
	}
	delete(f.blogs, id)
	return nil
}

type fakeFetcher struct {
	profile *leetcode.Profile
	err     error
	calls   int
}

func (f *fakeFetcher) FetchProfile(ctx context.Context, username string, year int) (*leetcode.Profile, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	p := *f.profile
	p.Username = username
	return &p, nil
}

type fakeCache struct {
	entries map[string]*leetcode.Profile
	getErr  error
}

func (f *fakeCache) Get(ctx context.Context, username string) (*leetcode.Profile, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.entries[strings.ToLower(username)], nil
}

func (f *fakeCache) Set(ctx context.Context, p *leetcode.Profile) error {
	f.entries[strings.ToLower(p.Username)] = p
	return nil
}

func (f *fakeCache) Invalidate(ctx context.Context, username string) error {
	delete(f.entries, strings.ToLower(username))
	return nil
}

type fakeContacts struct {
	created   []models.ContactMessage
	delivered []int64
	err       error
}

func (f *fakeContacts) Create(ctx context.Context, msg *models.ContactMessage) error {
	if f.err != nil {
		return f.err
	}
	msg.ID = int64(len(f.created) + 1)
	f.created = append(f.created, *msg)
	return nil
}

func (f *fakeContacts) MarkDelivered(ctx context.Context, id int64) error {
	f.delivered = append(f.delivered, id)
	return nil
}

type fakeMailer struct {
	sent []models.ContactMessage
	err  error
}

func (f *fakeMailer) SendContact(ctx context.Context, msg models.ContactMessage) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

type fakeViews struct {
	inserted  []models.BlogViewEvent
	entries   []activity.Entry
	top       []models.TopBlogResult
	gotBlogID string
	gotStart  time.Time
	gotLimit  uint64
	err       error
}

func (f *fakeViews) InsertBlogViews(ctx context.Context, events []models.BlogViewEvent) error {
	if f.err != nil {
		return f.err
	}
	f.inserted = append(f.inserted, events...)
	return nil
}

func (f *fakeViews) DailyViews(ctx context.Context, blogID string, start, end time.Time) ([]activity.Entry, error) {
	f.gotBlogID, f.gotStart = blogID, start
	return f.entries, f.err
}

func (f *fakeViews) TopBlogs(ctx context.Context, start, end time.Time, limit uint64) ([]models.TopBlogResult, error) {
	f.gotLimit = limit
	return f.top, f.err
}

var errBoom = errors.New("boom")

type testEnv struct {
	router   http.Handler
	blogs    *fakeBlogs
	fetcher  *fakeFetcher
	cache    *fakeCache
	contacts *fakeContacts
	mailer   *fakeMailer
	views    *fakeViews
	token    string
}

var fixedNow = time.Date(2024, time.March, 15, 18, 30, 0, 0, time.UTC)

func newTestEnv(t *testing.T, blogs ...*models.Blog) *testEnv {
	t.Helper()

	jm := utils.NewJWTManager("test-secret", time.Hour)
	token, err := jm.GenerateAdminToken()
	require.NoError(t, err)

	env := &testEnv{
		blogs:    newFakeBlogs(blogs...),
		fetcher:  &fakeFetcher{profile: &leetcode.Profile{SubmissionCalendar: "{}"}},
		cache:    &fakeCache{entries: map[string]*leetcode.Profile{}},
		contacts: &fakeContacts{},
		mailer:   &fakeMailer{},
		views:    &fakeViews{},
		token:    token,
	}

	lc := NewLeetCodeHandlers(env.fetcher, env.cache, "", leetcode.Options{TrailingDays: 72, GridColumns: 53}, time.UTC)
	lc.Now = func() time.Time { return fixedNow }
	analytics := NewAnalyticsHandlers(env.views, env.blogs)
	analytics.Now = func() time.Time { return fixedNow }

	env.router = NewRouter(RouterDeps{
		Auth:        NewAuthHandlers(utils.NewPasscodeChecker("letmein", ""), jm),
		Blogs:       NewBlogHandlers(env.blogs),
		LeetCode:    lc,
		Contact:     NewContactHandlers(env.contacts, env.mailer, time.Second),
		Analytics:   analytics,
		Tokens:      jm,
		CORSOrigins: []string{"http://localhost:5173"},
	})
	return env
}

func (e *testEnv) do(method, path, body string, admin bool) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if admin {
		req.Header.Set("Authorization", "Bearer "+e.token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}
