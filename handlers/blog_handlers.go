package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"portfolio/api/models"
	"portfolio/api/store"
	"portfolio/api/utils"
)

type BlogHandlers struct {
	Blogs BlogRepository
}

func NewBlogHandlers(blogs BlogRepository) *BlogHandlers {
	return &BlogHandlers{Blogs: blogs}
}

func toSummary(b models.Blog) models.BlogSummary {
	return models.BlogSummary{
		ID:        b.ID.Hex(),
		Title:     b.Title,
		Preview:   utils.Preview(b.ContentHTML),
		CreatedAt: b.CreatedAt.UnixMilli(),
	}
}

func toDetail(b *models.Blog) models.BlogDetail {
	return models.BlogDetail{
		ID:          b.ID.Hex(),
		Title:       b.Title,
		ContentHTML: b.ContentHTML,
		CreatedAt:   b.CreatedAt.UnixMilli(),
		UpdatedAt:   b.UpdatedAt.UnixMilli(),
	}
}

// blogID accepts both "<id>" and the older "<id>-public" path form.
func blogID(c *gin.Context) string {
	return strings.TrimSuffix(c.Param("id"), "-public")
}

// List serves both the public and the admin listing.
func (h *BlogHandlers) List(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	blogs, err := h.Blogs.List(ctx)
	if err != nil {
		log.Error().Err(err).Msg("error listing blogs")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load blogs"})
		return
	}

	out := make([]models.BlogSummary, 0, len(blogs))
	for _, b := range blogs {
		out = append(out, toSummary(b))
	}
	c.JSON(http.StatusOK, out)
}

func (h *BlogHandlers) Get(c *gin.Context) {
	blog, err := h.Blogs.Get(c.Request.Context(), blogID(c))
	if err != nil {
		writeBlogError(c, err, "Failed to load blog")
		return
	}
	c.JSON(http.StatusOK, toDetail(blog))
}

func (h *BlogHandlers) Create(c *gin.Context) {
	var in models.BlogInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title required"})
		return
	}
	if utf8.RuneCountInString(in.Title) > models.MaxTitleLength {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title too long"})
		return
	}
	if strings.TrimSpace(in.ContentHTML) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Content required"})
		return
	}
	in.ContentHTML = utils.SanitizeContent(in.ContentHTML)

	blog, err := h.Blogs.Create(c.Request.Context(), in)
	if err != nil {
		log.Error().Err(err).Msg("error creating blog")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create blog"})
		return
	}

	log.Info().Str("blog_id", blog.ID.Hex()).Msg("blog created")
	c.JSON(http.StatusCreated, toDetail(blog))
}

// Update applies only the fields present in the body.
func (h *BlogHandlers) Update(c *gin.Context) {
	var patch models.BlogPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if utf8.RuneCountInString(title) > models.MaxTitleLength {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Title too long"})
			return
		}
		patch.Title = &title
	}
	if patch.ContentHTML != nil {
		content := utils.SanitizeContent(*patch.ContentHTML)
		patch.ContentHTML = &content
	}

	blog, err := h.Blogs.Update(c.Request.Context(), blogID(c), patch)
	if err != nil {
		writeBlogError(c, err, "Failed to update blog")
		return
	}
	c.JSON(http.StatusOK, toDetail(blog))
}

func (h *BlogHandlers) Delete(c *gin.Context) {
	if err := h.Blogs.Delete(c.Request.Context(), blogID(c)); err != nil {
		writeBlogError(c, err, "Failed to delete blog")
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func writeBlogError(c *gin.Context, err error, msg string) {
	if errors.Is(err, store.ErrBlogNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}
	log.Error().Err(err).Str("blog_id", blogID(c)).Msg(msg)
	c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
}
