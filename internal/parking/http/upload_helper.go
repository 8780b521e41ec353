package http

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/greenpark/parking-reservation-backend/internal/parking"
)

const (
	imageFormField = "image"
	maxImageBytes  = 5 << 20 // 5 MB, same limit the old upload middleware enforced

	// Photos larger than this on either axis get re-encoded as a bounded JPEG.
	maxImageDimension = 1600
)

// saveImageUpload validates and stores an optional image part of a multipart
// request. It returns the generated filename, or nil when no image was sent.
func (h *Handler) saveImageUpload(c *gin.Context) (*string, error) {
	fileHeader, err := c.FormFile(imageFormField)
	if err != nil {
		// Image is optional on both create and update.
		return nil, nil
	}

	if fileHeader.Size > maxImageBytes {
		return nil, parking.ErrImageTooLarge
	}
	contentType := fileHeader.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return nil, parking.ErrNotAnImage
	}

	filename, err := h.storeImage(c, fileHeader)
	if err != nil {
		return nil, err
	}
	return &filename, nil
}

func (h *Handler) storeImage(c *gin.Context, fileHeader *multipart.FileHeader) (string, error) {
	src, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	fileBytes, err := io.ReadAll(src)
	if err != nil {
		return "", fmt.Errorf("failed to read file content: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	content := io.Reader(bytes.NewReader(fileBytes))

	// Bound oversized photos; anything that fails to decode is stored as-is.
	if cfg, _, err := image.DecodeConfig(bytes.NewReader(fileBytes)); err == nil {
		if cfg.Width > maxImageDimension || cfg.Height > maxImageDimension {
			normalized, err := h.imgProc.Normalize(bytes.NewReader(fileBytes), maxImageDimension, maxImageDimension)
			if err == nil {
				content = normalized
				ext = ".jpg"
			}
		}
	}

	filename := uuid.New().String() + ext
	if err := h.storage.Save(c.Request.Context(), filename, content); err != nil {
		return "", parking.ErrImageSaveFailed
	}
	return filename, nil
}
