package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"portfolio/api/activity"
	"portfolio/api/metrics"
	"portfolio/api/models"
	"portfolio/api/utils"
)

const (
	defaultStatsDays = 30
	defaultTopLimit  = 10
	maxTopLimit      = 100
)

// AnalyticsHandlers records blog page views and reports on them. Daily
// view counts go through the same activity engine as the LeetCode
// calendar, always in UTC.
type AnalyticsHandlers struct {
	Views ViewRepository
	Blogs BlogRepository
	Now   func() time.Time
}

func NewAnalyticsHandlers(views ViewRepository, blogs BlogRepository) *AnalyticsHandlers {
	return &AnalyticsHandlers{Views: views, Blogs: blogs, Now: time.Now}
}

func (h *AnalyticsHandlers) now() time.Time {
	if h.Now == nil {
		return time.Now().UTC()
	}
	return h.Now().UTC()
}

func (h *AnalyticsHandlers) TrackView(c *gin.Context) {
	id := blogID(c)
	if _, err := h.Blogs.Get(c.Request.Context(), id); err != nil {
		writeBlogError(c, err, "Failed to record view")
		return
	}

	event := models.BlogViewEvent{
		EventID:   uuid.New().String(),
		BlogID:    id,
		Timestamp: h.now(),
		Referrer:  c.Request.Referer(),
		UserAgent: c.Request.UserAgent(),
		IPAddress: c.ClientIP(),
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.Views.InsertBlogViews(ctx, []models.BlogViewEvent{event}); err != nil {
		log.Error().Err(err).Str("blog_id", id).Msg("error inserting blog view into ClickHouse")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record view"})
		return
	}

	metrics.BlogViewsRecorded.Inc()
	c.Status(http.StatusNoContent)
}

// GetViewStats returns a dense trailing series of daily views, for one
// blog when blogId is given and across all blogs otherwise.
func (h *AnalyticsHandlers) GetViewStats(c *gin.Context) {
	days, err := utils.ParseIntParam("days", c.Query("days"), defaultStatsDays, 1, maxTrailingDays)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	blogID := c.Query("blogId")

	today := h.now()
	window := activity.Trailing(days)
	start := time.Date(today.Year(), today.Month(), today.Day()-(days-1), 0, 0, 0, 0, time.UTC)

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	entries, err := h.Views.DailyViews(ctx, blogID, start, today)
	if err != nil {
		log.Error().Err(err).Str("blog_id", blogID).Msg("error getting daily blog views")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve view statistics"})
		return
	}

	cal := activity.FromEntries(entries)
	series := activity.BuildSeries(cal, window, today)
	c.JSON(http.StatusOK, models.ViewStats{
		BlogID:  blogID,
		Days:    days,
		Summary: activity.Summarize(cal, activity.SeriesRange(series), series),
		Series:  series,
	})
}

func (h *AnalyticsHandlers) GetTopBlogs(c *gin.Context) {
	days, err := utils.ParseIntParam("days", c.Query("days"), defaultStatsDays, 1, maxTrailingDays)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	limit, err := utils.ParseIntParam("limit", c.Query("limit"), defaultTopLimit, 1, maxTopLimit)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	end := h.now()
	start := end.Add(-time.Duration(days) * 24 * time.Hour)

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	results, err := h.Views.TopBlogs(ctx, start, end, uint64(limit))
	if err != nil {
		log.Error().Err(err).Msg("error getting top blogs")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve top blogs"})
		return
	}
	c.JSON(http.StatusOK, results)
}
