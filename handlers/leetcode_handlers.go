package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"
	// tz query values are resolved even on hosts without a zoneinfo database.
	_ "time/tzdata"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"portfolio/api/leetcode"
	"portfolio/api/utils"
)

const (
	maxTrailingDays = 366
	maxGridColumns  = 53
)

type LeetCodeHandlers struct {
	Fetcher ProfileFetcher
	// Cache is optional; a nil Cache sends every request upstream.
	Cache           ProfileCache
	DefaultUsername string
	Defaults        leetcode.Options
	Location        *time.Location
	Now             func() time.Time
}

func NewLeetCodeHandlers(fetcher ProfileFetcher, cache ProfileCache, defaultUsername string, defaults leetcode.Options, loc *time.Location) *LeetCodeHandlers {
	if loc == nil {
		loc = time.Local
	}
	return &LeetCodeHandlers{
		Fetcher:         fetcher,
		Cache:           cache,
		DefaultUsername: defaultUsername,
		Defaults:        defaults,
		Location:        loc,
		Now:             time.Now,
	}
}

// GetStats serves the LeetCode card: difficulty totals plus the aggregates
// and series built from the submission calendar.
func (h *LeetCodeHandlers) GetStats(c *gin.Context) {
	username := strings.TrimSpace(c.Query("username"))
	if username == "" {
		username = h.DefaultUsername
	}
	if username == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username is required"})
		return
	}

	opts := h.Defaults
	var err error
	if opts.TrailingDays, err = utils.ParseIntParam("days", c.Query("days"), h.Defaults.TrailingDays, 1, maxTrailingDays); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if opts.GridColumns, err = utils.ParseIntParam("columns", c.Query("columns"), h.Defaults.GridColumns, 1, maxGridColumns); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	loc := h.Location
	if tz := strings.TrimSpace(c.Query("tz")); tz != "" {
		if loc, err = time.LoadLocation(tz); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid 'tz' parameter. Must be an IANA time zone name"})
			return
		}
	}

	profile, err := h.profile(c.Request.Context(), username)
	if err != nil {
		if errors.Is(err, leetcode.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		log.Error().Err(err).Str("username", username).Msg("error fetching leetcode profile")
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to fetch"})
		return
	}

	today := h.now().In(loc)
	c.Header("Cache-Control", "public, max-age=300")
	c.JSON(http.StatusOK, leetcode.BuildStats(profile, opts, today))
}

// InvalidateCache drops the cached profile so the next stats request goes
// upstream.
func (h *LeetCodeHandlers) InvalidateCache(c *gin.Context) {
	username := strings.TrimSpace(c.Query("username"))
	if username == "" {
		username = h.DefaultUsername
	}
	if username == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username is required"})
		return
	}

	if h.Cache != nil {
		if err := h.Cache.Invalidate(c.Request.Context(), username); err != nil {
			log.Error().Err(err).Str("username", username).Msg("failed to invalidate profile cache")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to invalidate cache"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// profile reads through the cache. Cache failures are logged and skipped.
func (h *LeetCodeHandlers) profile(ctx context.Context, username string) (*leetcode.Profile, error) {
	if h.Cache != nil {
		p, err := h.Cache.Get(ctx, username)
		if err != nil {
			log.Warn().Err(err).Str("username", username).Msg("profile cache read failed")
		} else if p != nil {
			return p, nil
		}
	}

	p, err := h.Fetcher.FetchProfile(ctx, username, 0)
	if err != nil {
		return nil, err
	}

	if h.Cache != nil {
		if err := h.Cache.Set(ctx, p); err != nil {
			log.Warn().Err(err).Str("username", username).Msg("profile cache write failed")
		}
	}
	return p, nil
}

func (h *LeetCodeHandlers) now() time.Time {
	if h.Now == nil {
		return time.Now()
	}
	return h.Now()
}
