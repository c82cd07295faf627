package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/teamsite/internal/db"
	"github.com/teamsite/internal/storage"
	"gorm.io/gorm"
)

var (
	ErrNewsNotFound         = errors.New("news article not found")
	ErrNewsTitleRequired    = errors.New("news title is required")
	ErrNewsEventDateInvalid = errors.New("news event date is invalid")
)

var slugStrip = regexp.MustCompile(`[^a-z0-9]+`)

// NewsService handles news article CRUD and featured image ingest.
type NewsService struct {
	db         *gorm.DB
	ingest     *Ingestor
	normalizer storage.Normalizer
}

// NewsInput represents fields accepted when creating a news article.
// EventDate is an optional date string (2006-01-02 or RFC 3339).
// FeaturedImage carries an already resolved URL for the no-upload path.
type NewsInput struct {
	Title         string
	Summary       string
	Content       string
	FeaturedImage string
	EventDate     string
}

// NewNewsService creates a NewsService instance.
func NewNewsService(gdb *gorm.DB, ingest *Ingestor, normalizer storage.Normalizer) *NewsService {
	return &NewsService{db: gdb, ingest: ingest, normalizer: normalizer}
}

// Slugify derives a URL slug from a title: lower-cased, runs of
// non-alphanumeric characters collapsed to single hyphens, outer hyphens
// trimmed. Duplicate titles yield duplicate slugs; uniqueness is not
// enforced.
func Slugify(title string) string {
	slug := slugStrip.ReplaceAllString(strings.ToLower(title), "-")
	return strings.Trim(slug, "-")
}

// ListPublished returns published articles, newest first, with featured
// images normalized to fetchable URLs.
func (s *NewsService) ListPublished() ([]db.NewsArticle, error) {
	articles := make([]db.NewsArticle, 0)
	if err := s.db.Where("is_published = ?", true).
		Order("created_at desc").
		Find(&articles).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRecordStore, err)
	}

	for i := range articles {
		articles[i].FeaturedImage = s.normalizer.Normalize(articles[i].FeaturedImage)
	}
	return articles, nil
}

// GetBySlug returns the newest published article with the given slug. Slugs
// are not unique by contract, so the newest match wins.
func (s *NewsService) GetBySlug(slug string) (*db.NewsArticle, error) {
	var article db.NewsArticle
	if err := s.db.Where("slug = ? AND is_published = ?", slug, true).
		Order("created_at desc").
		First(&article).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNewsNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrRecordStore, err)
	}

	article.FeaturedImage = s.normalizer.Normalize(article.FeaturedImage)
	return &article, nil
}

// Create validates the input, stages the featured image upload when present,
// derives the slug, and persists the article as published.
func (s *NewsService) Create(ctx context.Context, input NewsInput, upload *storage.Upload) (*db.NewsArticle, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrNewsTitleRequired
	}

	eventDate, err := parseEventDate(input.EventDate)
	if err != nil {
		return nil, err
	}

	featuredImage := strings.TrimSpace(input.FeaturedImage)
	blobKey := ""
	if upload != nil {
		url, target, err := s.ingest.Stage(ctx, upload)
		if err != nil {
			return nil, err
		}
		featuredImage = url
		blobKey = target.Key()
	}

	article := db.NewsArticle{
		Title:         title,
		Slug:          Slugify(title),
		Summary:       strings.TrimSpace(input.Summary),
		Content:       input.Content,
		FeaturedImage: featuredImage,
		EventDate:     eventDate,
		IsPublished:   true,
	}

	if err := s.db.WithContext(ctx).Create(&article).Error; err != nil {
		if blobKey != "" {
			logOrphan("news", blobKey, map[string]string{"title": title, "slug": article.Slug}, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrRecordStore, err)
	}

	return &article, nil
}

// Delete removes a news article by id.
func (s *NewsService) Delete(id uint) error {
	var article db.NewsArticle
	if err := s.db.First(&article, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNewsNotFound
		}
		return fmt.Errorf("%w: %v", ErrRecordStore, err)
	}

	if err := s.db.Delete(&article).Error; err != nil {
		return fmt.Errorf("%w: %v", ErrRecordStore, err)
	}
	return nil
}

func parseEventDate(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return &parsed, nil
		}
	}
	return nil, ErrNewsEventDateInvalid
}
