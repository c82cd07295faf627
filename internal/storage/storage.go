// Package storage holds the blob-store abstraction used by the ingest
// pipeline: public URL normalization, upload target resolution, and the
// store drivers (Supabase Storage, S3-compatible, local directory).
package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/teamsite/internal/config"
)

// ErrKeyExists is returned by Put when overwrite is disabled and the key is
// already taken.
var ErrKeyExists = errors.New("storage key already exists")

// Upload carries an inbound file through the ingest pipeline.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// BlobStore writes media objects and resolves their public URLs. A public
// URL is valid immediately after a successful Put.
type BlobStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string, overwrite bool) (string, error)
	PublicURL(key string) string
}

// FromConfig builds the blob store selected by STORAGE_DRIVER.
func FromConfig(ctx context.Context, cfg config.AppConfig) (BlobStore, error) {
	switch cfg.StorageDriver {
	case "supabase":
		if cfg.StorageBaseURL == "" {
			return nil, errors.New("STORAGE_BASE_URL is required for the supabase driver")
		}
		return NewSupabaseStore(cfg.StorageBaseURL, cfg.StorageBucket, cfg.StorageServiceKey), nil
	case "s3":
		return NewS3Store(ctx, S3Options{
			Region:        cfg.S3Region,
			Endpoint:      cfg.S3Endpoint,
			AccessKey:     cfg.S3AccessKey,
			SecretKey:     cfg.S3SecretKey,
			Bucket:        cfg.StorageBucket,
			PublicBaseURL: cfg.S3PublicBaseURL,
		})
	case "local":
		return NewLocalStore(cfg.UploadDir, cfg.UploadURLPath), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}
