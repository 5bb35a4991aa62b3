package leetcode

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"portfolio/api/metrics"
	"portfolio/api/models"
)

var (
	ErrUserNotFound        = errors.New("leetcode_user_not_found")
	ErrUpstreamTimeout     = errors.New("leetcode_timeout")
	ErrUpstreamUnavailable = errors.New("leetcode_unavailable")
)

type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("leetcode graphql returned status %d", e.StatusCode)
}

type GraphQLError struct {
	Messages []string
}

func (e *GraphQLError) Error() string {
	return "leetcode graphql: " + strings.Join(e.Messages, "; ")
}

const profileQuery = `
query userProfile($username: String!, $year: Int) {
  allQuestionsCount { difficulty count }
  matchedUser(username: $username) {
    submitStatsGlobal { acSubmissionNum { difficulty count submissions } }
    userCalendar(year: $year) {
      streak
      totalActiveDays
      submissionCalendar
    }
  }
}`

// Profile is the subset of a LeetCode user profile the stats endpoint needs.
// SubmissionCalendar is kept in its upstream form: a JSON object encoded as a
// string, mapping epoch seconds to submission counts.
type Profile struct {
	Username           string                  `json:"username"`
	Totals             models.DifficultyTotals `json:"totals"`
	Denoms             models.DifficultyDenoms `json:"denoms"`
	UpstreamStreak     int                     `json:"upstreamStreak"`
	TotalActiveDays    int                     `json:"totalActiveDays"`
	SubmissionCalendar string                  `json:"submissionCalendar"`
}

type Client struct {
	URL        string
	HTTPClient *http.Client
}

func NewClient(url string, timeout time.Duration) *Client {
	return &Client{
		URL: url,
		HTTPClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type difficultyCount struct {
	Difficulty string `json:"difficulty"`
	Count      int    `json:"count"`
}

type profileResponse struct {
	Data struct {
		AllQuestionsCount []difficultyCount `json:"allQuestionsCount"`
		MatchedUser       *struct {
			SubmitStatsGlobal struct {
				AcSubmissionNum []difficultyCount `json:"acSubmissionNum"`
			} `json:"submitStatsGlobal"`
			UserCalendar *struct {
				Streak             int    `json:"streak"`
				TotalActiveDays    int    `json:"totalActiveDays"`
				SubmissionCalendar string `json:"submissionCalendar"`
			} `json:"userCalendar"`
		} `json:"matchedUser"`
	} `json:"data"`
	Errors []graphQLMessage `json:"errors"`
}

type graphQLMessage struct {
	Message string `json:"message"`
}

// FetchProfile queries the GraphQL endpoint for username's solved counts and
// submission calendar. year 0 asks for the trailing twelve months instead of
// a single calendar year.
func (c *Client) FetchProfile(ctx context.Context, username string, year int) (*Profile, error) {
	start := time.Now()
	profile, err := c.fetchProfile(ctx, username, year)
	metrics.UpstreamFetchDuration.Observe(time.Since(start).Seconds())
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		metrics.UpstreamErrorsTotal.WithLabelValues(errorKind(err)).Inc()
	}
	return profile, err
}

func (c *Client) fetchProfile(ctx context.Context, username string, year int) (*Profile, error) {
	variables := map[string]any{"username": username, "year": nil}
	if year > 0 {
		variables["year"] = year
	}
	body, err := json.Marshal(map[string]any{
		"query":     profileQuery,
		"variables": variables,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal graphql request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build graphql request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Referer", "https://leetcode.com")
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || isTimeout(err) {
			return nil, ErrUpstreamTimeout
		}
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &StatusError{StatusCode: resp.StatusCode}
	}

	var out profileResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode graphql response: %w", err)
	}

	user := out.Data.MatchedUser
	if user == nil {
		if len(out.Errors) > 0 && !mentionsMissingUser(out.Errors) {
			ge := &GraphQLError{}
			for _, e := range out.Errors {
				ge.Messages = append(ge.Messages, e.Message)
			}
			return nil, ge
		}
		return nil, ErrUserNotFound
	}

	profile := &Profile{
		Username: username,
		Totals: models.DifficultyTotals{
			Solved: countFor(user.SubmitStatsGlobal.AcSubmissionNum, "all"),
			Easy:   countFor(user.SubmitStatsGlobal.AcSubmissionNum, "easy"),
			Medium: countFor(user.SubmitStatsGlobal.AcSubmissionNum, "medium"),
			Hard:   countFor(user.SubmitStatsGlobal.AcSubmissionNum, "hard"),
		},
		Denoms: models.DifficultyDenoms{
			All:    countFor(out.Data.AllQuestionsCount, "all"),
			Easy:   countFor(out.Data.AllQuestionsCount, "easy"),
			Medium: countFor(out.Data.AllQuestionsCount, "medium"),
			Hard:   countFor(out.Data.AllQuestionsCount, "hard"),
		},
		SubmissionCalendar: "{}",
	}
	if cal := user.UserCalendar; cal != nil {
		profile.UpstreamStreak = cal.Streak
		profile.TotalActiveDays = cal.TotalActiveDays
		if cal.SubmissionCalendar != "" {
			profile.SubmissionCalendar = cal.SubmissionCalendar
		}
	}
	return profile, nil
}

func countFor(counts []difficultyCount, difficulty string) int {
	for _, c := range counts {
		if strings.EqualFold(c.Difficulty, difficulty) {
			return c.Count
		}
	}
	return 0
}

func mentionsMissingUser(errs []graphQLMessage) bool {
	for _, e := range errs {
		if strings.Contains(strings.ToLower(e.Message), "does not exist") {
			return true
		}
	}
	return false
}

func isTimeout(err error) bool {
	var t interface{ Timeout() bool }
	return errors.As(err, &t) && t.Timeout()
}

func errorKind(err error) string {
	var se *StatusError
	var ge *GraphQLError
	switch {
	case errors.Is(err, ErrUpstreamTimeout):
		return "timeout"
	case errors.Is(err, ErrUpstreamUnavailable):
		return "unavailable"
	case errors.As(err, &se):
		return "status"
	case errors.As(err, &ge):
		return "graphql"
	default:
		return "decode"
	}
}
