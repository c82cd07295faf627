package db

import "time"

// NewsArticle is a published news entry or event announcement.
// Slug is derived from the title and is deliberately not unique.
type NewsArticle struct {
	ID            uint       `gorm:"primarykey" json:"id"`
	Title         string     `gorm:"size:255;not null" json:"title"`
	Slug          string     `gorm:"size:255;index" json:"slug"`
	Summary       string     `json:"summary"`
	Content       string     `gorm:"type:text" json:"content"`
	FeaturedImage string     `gorm:"size:500" json:"featured_image"`
	EventDate     *time.Time `json:"event_date"`
	IsPublished   bool       `json:"is_published"`
	CreatedAt     time.Time  `json:"created_at"`
}
