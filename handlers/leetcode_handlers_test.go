package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio/api/leetcode"
	"portfolio/api/models"
)

func calendarFixture() string {
	day := func(d int) int64 { return time.Date(2024, time.March, d, 0, 0, 0, 0, time.UTC).Unix() }
	return fmt.Sprintf(`{"%d": 2, "%d": 5, "%d": 1}`, day(13), day(14), day(15)+7200)
}

func TestGetStats_RequiresUsername(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodGet, "/api/leetcode", "", false)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"username is required"}`, w.Body.String())
}

func TestGetStats_InvalidParams(t *testing.T) {
	env := newTestEnv(t)

	for _, q := range []string{"days=0", "days=367", "columns=54", "days=x", "tz=Mars/Olympus"} {
		w := env.do(http.MethodGet, "/api/leetcode?username=alice&"+q, "", false)
		assert.Equal(t, http.StatusBadRequest, w.Code, q)
	}
	assert.Zero(t, env.fetcher.calls)
}

func TestGetStats_Success(t *testing.T) {
	env := newTestEnv(t)
	env.fetcher.profile = &leetcode.Profile{
		Totals:             models.DifficultyTotals{Solved: 10, Easy: 6, Medium: 3, Hard: 1},
		SubmissionCalendar: calendarFixture(),
	}

	w := env.do(http.MethodGet, "/api/leetcode?username=alice", "", false)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "public, max-age=300", w.Header().Get("Cache-Control"))

	var stats models.LeetCodeStats
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, "alice", stats.Username)
	assert.Equal(t, 10, stats.Totals.Solved)
	assert.Equal(t, 8, stats.YearSubmissions)
	assert.Equal(t, 3, stats.ActiveDays)
	assert.Equal(t, 3, stats.MaxStreak)
	assert.Len(t, stats.Series, 72)
	assert.Equal(t, []int{2, 5, 1}, stats.Bars[69:])
	assert.Equal(t, 5, stats.MaxDaily)
	require.NotNil(t, stats.MaxDailyDate)
	assert.Equal(t, "2024-03-14", *stats.MaxDailyDate)
	assert.Len(t, stats.CalendarYear, 53*7)
}

func TestGetStats_CachesProfile(t *testing.T) {
	env := newTestEnv(t)

	for i := 0; i < 2; i++ {
		w := env.do(http.MethodGet, "/api/leetcode?username=Alice", "", false)
		require.Equal(t, http.StatusOK, w.Code)
	}

	assert.Equal(t, 1, env.fetcher.calls)
	assert.Contains(t, env.cache.entries, "alice")
}

func TestGetStats_CacheErrorFallsThrough(t *testing.T) {
	env := newTestEnv(t)
	env.cache.getErr = errBoom

	w := env.do(http.MethodGet, "/api/leetcode?username=alice", "", false)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, env.fetcher.calls)
}

func TestGetStats_WindowAndZone(t *testing.T) {
	env := newTestEnv(t)

	// 18:30 UTC on Mar 15 is already Mar 16 in Tokyo.
	w := env.do(http.MethodGet, "/api/leetcode?username=alice&days=3&columns=1&tz=Asia/Tokyo", "", false)

	require.Equal(t, http.StatusOK, w.Code)
	var stats models.LeetCodeStats
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	require.Len(t, stats.Series, 3)
	assert.Equal(t, "2024-03-14", stats.Series[0].Date)
	assert.Equal(t, "2024-03-16", stats.Series[2].Date)
	assert.Len(t, stats.CalendarYear, 7)
	assert.Nil(t, stats.MaxDailyDate)
}

func TestGetStats_UpstreamErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{"unknown user", leetcode.ErrUserNotFound, http.StatusNotFound, `{"error":"user not found"}`},
		{"timeout", leetcode.ErrUpstreamTimeout, http.StatusBadGateway, `{"error":"failed to fetch"}`},
		{"status", &leetcode.StatusError{StatusCode: 500}, http.StatusBadGateway, `{"error":"failed to fetch"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			env.fetcher.err = tt.err

			w := env.do(http.MethodGet, "/api/leetcode?username=alice", "", false)

			assert.Equal(t, tt.status, w.Code)
			assert.JSONEq(t, tt.body, w.Body.String())
			assert.Empty(t, env.cache.entries)
		})
	}
}

func TestGetStats_DefaultUsername(t *testing.T) {
	fetcher := &fakeFetcher{profile: &leetcode.Profile{}}
	h := NewLeetCodeHandlers(fetcher, nil, "owner", leetcode.Options{TrailingDays: 7}, time.UTC)

	env := newTestEnv(t)
	env.router = NewRouter(RouterDeps{
		Auth:     &AuthHandlers{},
		Blogs:    NewBlogHandlers(env.blogs),
		LeetCode: h,
		Contact:  NewContactHandlers(nil, env.mailer, 0),
	})

	w := env.do(http.MethodGet, "/api/leetcode", "", false)

	require.Equal(t, http.StatusOK, w.Code)
	var stats models.LeetCodeStats
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, "owner", stats.Username)
	assert.Len(t, stats.Series, 7)
	assert.Nil(t, stats.CalendarYear)
}

func TestInvalidateCache(t *testing.T) {
	env := newTestEnv(t)
	require.Equal(t, http.StatusOK, env.do(http.MethodGet, "/api/leetcode?username=alice", "", false).Code)

	assert.Equal(t, http.StatusUnauthorized, env.do(http.MethodDelete, "/api/leetcode/cache?username=alice", "", false).Code)
	assert.Equal(t, http.StatusBadRequest, env.do(http.MethodDelete, "/api/leetcode/cache", "", true).Code)

	w := env.do(http.MethodDelete, "/api/leetcode/cache?username=ALICE", "", true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, env.cache.entries)

	require.Equal(t, http.StatusOK, env.do(http.MethodGet, "/api/leetcode?username=alice", "", false).Code)
	assert.Equal(t, 2, env.fetcher.calls)
}
