package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"portfolio/api/middleware"
)

type RouterDeps struct {
	Auth      *AuthHandlers
	Blogs     *BlogHandlers
	LeetCode  *LeetCodeHandlers
	Contact   *ContactHandlers
	Analytics *AnalyticsHandlers // nil when ClickHouse is not configured

	Tokens      middleware.TokenValidator
	CORSOrigins []string

	RateLimiter   *redis.Client
	ContactLimit  int
	ContactWindow time.Duration
}

func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func NewRouter(d RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(), middleware.CORSMiddleware(d.CORSOrigins))

	r.GET("/health", HealthCheck)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		api.GET("/health", HealthCheck)
		api.GET("/leetcode", d.LeetCode.GetStats)
		api.POST("/contact", middleware.FixedWindow(d.RateLimiter, "contact", d.ContactLimit, d.ContactWindow), d.Contact.Submit)

		api.POST("/blog/auth", d.Auth.Login)
		api.GET("/blogs-public", d.Blogs.List)
		api.GET("/blogs/:id", d.Blogs.Get)
		if d.Analytics != nil {
			api.POST("/blogs/:id/view", d.Analytics.TrackView)
		}

		protected := api.Group("/")
		protected.Use(middleware.AuthRequired(d.Tokens))
		{
			protected.GET("/blogs", d.Blogs.List)
			protected.POST("/blogs", d.Blogs.Create)
			protected.PUT("/blogs/:id", d.Blogs.Update)
			protected.DELETE("/blogs/:id", d.Blogs.Delete)
			protected.DELETE("/leetcode/cache", d.LeetCode.InvalidateCache)

			if d.Analytics != nil {
				statsGroup := protected.Group("/stats")
				{
					statsGroup.GET("/blog-views", d.Analytics.GetViewStats)
					statsGroup.GET("/top-blogs", d.Analytics.GetTopBlogs)
				}
			}
		}
	}

	return r
}
