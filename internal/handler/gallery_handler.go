package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/teamsite/internal/service"
)

// ListGallery returns all active gallery items.
func (a *API) ListGallery(c *gin.Context) {
	items, err := a.galleries.ListActive()
	if err != nil {
		logError("gallery", "list", err)
		respondError(c, http.StatusInternalServerError, "Failed to fetch gallery")
		return
	}

	c.JSON(http.StatusOK, items)
}

// CreateGalleryItem creates a gallery item from a multipart upload or a JSON
// body carrying an already resolved file path.
func (a *API) CreateGalleryItem(c *gin.Context) {
	sub, err := decodeSubmission(c, "file")
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	input := service.GalleryInput{
		Type:     sub.field("type"),
		FilePath: sub.field("file_path"),
		Caption:  sub.field("caption"),
		Tags:     sub.field("tags"),
		Metadata: sub.field("metadata"),
	}

	item, err := a.galleries.Create(c.Request.Context(), input, sub.upload)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrGalleryFileRequired):
			respondError(c, http.StatusBadRequest, "File is required")
		default:
			logError("gallery", "create", err)
			respondError(c, http.StatusInternalServerError, "Failed to create gallery item")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Gallery item created successfully", "id": item.ID})
}

// DeleteGalleryItem removes a gallery item by the id in the JSON body.
func (a *API) DeleteGalleryItem(c *gin.Context) {
	var payload idPayload
	if !bindJSON(c, &payload, "Gallery ID is required") {
		return
	}
	if payload.ID == 0 {
		respondError(c, http.StatusBadRequest, "Gallery ID is required")
		return
	}

	if err := a.galleries.Delete(payload.ID); err != nil {
		if errors.Is(err, service.ErrGalleryNotFound) {
			respondError(c, http.StatusNotFound, "Gallery item not found")
			return
		}
		logError("gallery", "delete", err)
		respondError(c, http.StatusInternalServerError, "Failed to delete gallery item")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Gallery item deleted successfully", "deletedId": payload.ID})
}
