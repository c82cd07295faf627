package storage

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// FolderImages and FolderVideos are the two storage folders media is routed
// into.
const (
	FolderImages = "images"
	FolderVideos = "videos"
)

var videoExtensions = map[string]struct{}{
	".mp4":  {},
	".mov":  {},
	".avi":  {},
	".mkv":  {},
	".webm": {},
}

// Target is a resolved storage location for an upload.
type Target struct {
	Folder string
	Name   string
}

// Key returns the full object key, folder included.
func (t Target) Key() string {
	return t.Folder + "/" + t.Name
}

// ResolveTarget picks a storage folder from the file's name and declared
// content type and generates a collision-resistant object name. An upload is
// a video when the content type begins with "video" or the extension is a
// known video extension, whichever matches; the declared type alone is not
// trusted for folder routing. Files without an extension are accepted.
func ResolveTarget(fileName, contentType string) Target {
	ext := strings.ToLower(filepath.Ext(fileName))
	_, videoExt := videoExtensions[ext]
	isVideo := videoExt || strings.HasPrefix(strings.ToLower(contentType), "video")

	folder := FolderImages
	if isVideo {
		folder = FolderVideos
	}

	// Millisecond timestamp plus a random suffix keeps concurrent uploads
	// from colliding; it carries no identity guarantee.
	suffix := strings.ReplaceAll(uuid.New().String(), "-", "")[:12]
	name := fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), suffix, ext)

	return Target{Folder: folder, Name: name}
}
