package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/teamsite/internal/db"
	"github.com/teamsite/internal/service"
)

// ListNews returns all published news articles.
func (a *API) ListNews(c *gin.Context) {
	articles, err := a.news.ListPublished()
	if err != nil {
		logError("news", "list", err)
		respondError(c, http.StatusInternalServerError, "Failed to fetch news")
		return
	}

	c.JSON(http.StatusOK, articles)
}

// GetNewsArticle returns a single article by slug, with its markdown content
// rendered to sanitized HTML.
func (a *API) GetNewsArticle(c *gin.Context) {
	article, err := a.news.GetBySlug(c.Param("slug"))
	if err != nil {
		if errors.Is(err, service.ErrNewsNotFound) {
			respondError(c, http.StatusNotFound, "News article not found")
			return
		}
		logError("news", "get", err)
		respondError(c, http.StatusInternalServerError, "Failed to fetch news article")
		return
	}

	rendered, err := service.RenderContent(article.Content)
	if err != nil {
		logError("news", "render", err)
		rendered = ""
	}

	c.JSON(http.StatusOK, struct {
		*db.NewsArticle
		ContentHTML string `json:"content_html"`
	}{article, rendered})
}

// CreateNewsArticle creates a news article from a multipart or JSON
// submission. The slug derives from the title and the article is published
// immediately.
func (a *API) CreateNewsArticle(c *gin.Context) {
	sub, err := decodeSubmission(c, "file")
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	input := service.NewsInput{
		Title:         sub.field("title"),
		Summary:       sub.field("summary"),
		Content:       sub.field("content"),
		FeaturedImage: sub.field("featured_image"),
		EventDate:     sub.field("event_date"),
	}

	article, err := a.news.Create(c.Request.Context(), input, sub.upload)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNewsTitleRequired):
			respondError(c, http.StatusBadRequest, "Title is required")
		case errors.Is(err, service.ErrNewsEventDateInvalid):
			respondError(c, http.StatusBadRequest, "Event date is invalid")
		default:
			logError("news", "create", err)
			respondError(c, http.StatusInternalServerError, "Failed to create news")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "News created successfully", "id": article.ID})
}

// DeleteNewsArticle removes an article by the id in the JSON body.
func (a *API) DeleteNewsArticle(c *gin.Context) {
	var payload idPayload
	if !bindJSON(c, &payload, "News ID is required") {
		return
	}
	if payload.ID == 0 {
		respondError(c, http.StatusBadRequest, "News ID is required")
		return
	}

	if err := a.news.Delete(payload.ID); err != nil {
		if errors.Is(err, service.ErrNewsNotFound) {
			respondError(c, http.StatusNotFound, "News not found")
			return
		}
		logError("news", "delete", err)
		respondError(c, http.StatusInternalServerError, "Failed to delete news")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "News deleted successfully"})
}
