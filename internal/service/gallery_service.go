package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/teamsite/internal/db"
	"github.com/teamsite/internal/storage"
	"gorm.io/gorm"
)

var (
	ErrGalleryNotFound     = errors.New("gallery item not found")
	ErrGalleryFileRequired = errors.New("gallery file is required")
)

const (
	GalleryTypeImage = "image"
	GalleryTypeVideo = "video"
)

// GalleryService handles gallery item CRUD and media ingest.
type GalleryService struct {
	db         *gorm.DB
	ingest     *Ingestor
	normalizer storage.Normalizer
}

// GalleryInput represents fields accepted when creating a gallery item.
// FilePath carries an already resolved URL or path fragment for the
// no-upload path; Type and Metadata are only honored on that path, since an
// actual upload derives both from the file itself.
type GalleryInput struct {
	Type     string
	FilePath string
	Caption  string
	Tags     string
	Metadata string
}

// NewGalleryService creates a GalleryService instance.
func NewGalleryService(gdb *gorm.DB, ingest *Ingestor, normalizer storage.Normalizer) *GalleryService {
	return &GalleryService{db: gdb, ingest: ingest, normalizer: normalizer}
}

// ListActive returns active gallery items, newest first, with file paths
// normalized to fetchable URLs.
func (s *GalleryService) ListActive() ([]db.GalleryItem, error) {
	items := make([]db.GalleryItem, 0)
	if err := s.db.Where("is_active = ?", true).
		Order("created_at desc").
		Find(&items).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRecordStore, err)
	}

	for i := range items {
		items[i].FilePath = s.normalizer.Normalize(items[i].FilePath)
	}
	return items, nil
}

// Create validates the input, stages the upload when present, and persists
// the item. With an upload the item type follows the resolved storage
// folder, not the declared type, and image dimensions are probed into the
// metadata column.
func (s *GalleryService) Create(ctx context.Context, input GalleryInput, upload *storage.Upload) (*db.GalleryItem, error) {
	filePath := strings.TrimSpace(input.FilePath)
	if upload == nil && filePath == "" {
		return nil, ErrGalleryFileRequired
	}

	itemType := strings.TrimSpace(input.Type)
	metadata := strings.TrimSpace(input.Metadata)
	blobKey := ""

	if upload != nil {
		url, target, err := s.ingest.Stage(ctx, upload)
		if err != nil {
			return nil, err
		}
		filePath = url
		blobKey = target.Key()

		itemType = GalleryTypeImage
		if target.Folder == storage.FolderVideos {
			itemType = GalleryTypeVideo
		} else if w, h, ok := probeImageSize(upload.Data); ok {
			metadata = fmt.Sprintf(`{"width":%d,"height":%d}`, w, h)
		}
	} else if itemType == "" {
		itemType = GalleryTypeImage
	}

	if metadata == "" {
		metadata = "{}"
	}

	item := db.GalleryItem{
		Type:     itemType,
		FilePath: filePath,
		Caption:  strings.TrimSpace(input.Caption),
		Tags:     strings.TrimSpace(input.Tags),
		Metadata: metadata,
		IsActive: true,
	}

	if err := s.db.WithContext(ctx).Create(&item).Error; err != nil {
		if blobKey != "" {
			logOrphan("gallery", blobKey, map[string]string{"type": itemType, "caption": item.Caption}, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrRecordStore, err)
	}

	return &item, nil
}

// Delete removes a gallery item by id.
func (s *GalleryService) Delete(id uint) error {
	var item db.GalleryItem
	if err := s.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrGalleryNotFound
		}
		return fmt.Errorf("%w: %v", ErrRecordStore, err)
	}

	if err := s.db.Delete(&item).Error; err != nil {
		return fmt.Errorf("%w: %v", ErrRecordStore, err)
	}
	return nil
}
