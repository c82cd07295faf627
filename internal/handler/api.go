package handler

import (
	"github.com/teamsite/internal/service"
	"github.com/teamsite/internal/storage"
	"gorm.io/gorm"
)

// API bundles shared dependencies for HTTP handlers.
type API struct {
	db        *gorm.DB
	members   *service.MemberService
	galleries *service.GalleryService
	news      *service.NewsService
	contacts  *service.ContactService
}

// NewAPI constructs a handler set with shared services over the given
// database handle and blob store.
func NewAPI(gdb *gorm.DB, store storage.BlobStore, normalizer storage.Normalizer) *API {
	ingest := service.NewIngestor(store)

	return &API{
		db:        gdb,
		members:   service.NewMemberService(gdb, ingest, normalizer),
		galleries: service.NewGalleryService(gdb, ingest, normalizer),
		news:      service.NewNewsService(gdb, ingest, normalizer),
		contacts:  service.NewContactService(gdb, ingest),
	}
}
