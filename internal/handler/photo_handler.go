package handler

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"rent-property-service/internal/middleware"
	"rent-property-service/internal/repository"
)

// multipartOverhead is the allowance for multipart framing on top of MaxBytes.
const multipartOverhead = 64 << 10

// PhotoHandler stores one photo per property in GridFS.
type PhotoHandler struct {
	Photos     PhotoStore
	Properties PropertyStore
	MaxBytes   int64
}

// POST /property/:id/photo (multipart field "file"). Only the seller may upload.
func (h *PhotoHandler) Upload(c *gin.Context) {
	propertyID := c.Param("id")
	p, err := h.Properties.FindByID(c.Request.Context(), propertyID)
	if err != nil {
		internalError(c, "UploadPhoto", err)
		return
	}
	if p == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "property not found"})
		return
	}
	if p.SellerEmail != middleware.Identity(c) {
		c.JSON(http.StatusForbidden, gin.H{"message": "Forbidden Access"})
		return
	}

	if h.MaxBytes > 0 {
		limit := h.MaxBytes + multipartOverhead
		if c.Request.ContentLength > limit {
			h.tooLarge(c)
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
	}

	fileHeader, err := c.FormFile("file")
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		h.tooLarge(c)
		return
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	if h.MaxBytes > 0 && fileHeader.Size > h.MaxBytes {
		h.tooLarge(c)
		return
	}
	contentType := fileHeader.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file must be an image"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot open file"})
		return
	}
	defer file.Close()

	filename := fmt.Sprintf("property_%s%s", propertyID, filepath.Ext(fileHeader.Filename))
	photoID, err := h.Photos.Upload(c.Request.Context(), file, filename, contentType)
	if err != nil {
		internalError(c, "UploadPhoto", err)
		return
	}
	if err := h.Properties.SetPhoto(c.Request.Context(), propertyID, photoID); err != nil {
		internalError(c, "UploadPhoto", err)
		return
	}
	if old := p.PhotoFileID; old != "" && old != photoID {
		if err := h.Photos.Delete(c.Request.Context(), old); err != nil {
			log.Printf("[UploadPhoto] request_id=%s: remove replaced photo %s: %v", c.GetString("request_id"), old, err)
		}
	}
	c.JSON(http.StatusOK, gin.H{"photoId": photoID})
}

func (h *PhotoHandler) tooLarge(c *gin.Context) {
	c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": fmt.Sprintf("photo exceeds %d bytes", h.MaxBytes)})
}

// GET /property/:id/photo
func (h *PhotoHandler) Download(c *gin.Context) {
	p, err := h.Properties.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		internalError(c, "DownloadPhoto", err)
		return
	}
	if p == nil || p.PhotoFileID == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "photo not found"})
		return
	}

	data, contentType, err := h.Photos.Download(c.Request.Context(), p.PhotoFileID)
	if errors.Is(err, repository.ErrPhotoNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "photo not found"})
		return
	}
	if err != nil {
		internalError(c, "DownloadPhoto", err)
		return
	}
	c.Header("Content-Disposition", "inline; filename=property_"+p.ID.Hex())
	c.Data(http.StatusOK, contentType, data)
}
