package db

import "time"

// GalleryItem is a single media entry, either an image or a video.
type GalleryItem struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Type      string    `gorm:"size:20;default:image" json:"type"` // image, video
	FilePath  string    `gorm:"size:500;not null" json:"file_path"`
	Caption   string    `json:"caption"`
	Tags      string    `gorm:"size:255" json:"tags"` // comma-separated free text
	Metadata  string    `gorm:"type:text;default:'{}'" json:"metadata"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}
