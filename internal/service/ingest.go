package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/teamsite/internal/logger"
	"github.com/teamsite/internal/storage"
)

var (
	// ErrBlobStore wraps upload failures; no record exists when it is
	// returned.
	ErrBlobStore = errors.New("blob store failure")
	// ErrRecordStore wraps database failures. When preceded by a
	// successful upload the blob stays behind as a recoverable orphan.
	ErrRecordStore = errors.New("record store failure")
)

// Ingestor stages inbound files into the blob store on behalf of the entity
// services.
type Ingestor struct {
	store storage.BlobStore
}

// NewIngestor creates an Ingestor over the given blob store.
func NewIngestor(store storage.BlobStore) *Ingestor {
	return &Ingestor{store: store}
}

// Stage resolves a storage target for the upload and writes it with
// overwrite disabled, so a key collision surfaces instead of clobbering an
// existing object. It returns the public URL and the resolved target; no
// database record exists yet when Stage returns.
func (i *Ingestor) Stage(ctx context.Context, up *storage.Upload) (string, storage.Target, error) {
	target := storage.ResolveTarget(up.Filename, up.ContentType)

	contentType := up.ContentType
	if contentType == "" {
		contentType = "image/jpeg"
		if target.Folder == storage.FolderVideos {
			contentType = "video/mp4"
		}
	}

	url, err := i.store.Put(ctx, target.Key(), up.Data, contentType, false)
	if err != nil {
		return "", target, fmt.Errorf("%w: %v", ErrBlobStore, err)
	}

	return url, target, nil
}

// logOrphan records a blob left without a referencing row after a record
// store failure. The blob is deliberately not deleted: a compensating delete
// under an already-failing store is no safer than leaving the object for
// later reconciliation.
func logOrphan(entity, blobKey string, fields map[string]string, err error) {
	evt := logger.Get().Error().
		Str("entity", entity).
		Str("blob_key", blobKey).
		Err(err)
	for k, v := range fields {
		evt = evt.Str("field_"+k, v)
	}
	evt.Msg("record create failed after upload, blob orphaned")
}
