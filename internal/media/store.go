// Package media stores product images and removes them again by public id.
package media

import (
	"context"
	"errors"
	"fmt"
	"log"
	"mime/multipart"
	"path/filepath"
	"strings"
)

const (
	MaxImages    = 4
	maxImageSize = 5 << 20
)

var ErrTooManyImages = fmt.Errorf("a product can have at most %d images", MaxImages)

// Image is an uploaded file: URL to serve, PublicID to delete it by.
type Image struct {
	URL      string
	PublicID string
}

type Store interface {
	Upload(ctx context.Context, file *multipart.FileHeader) (Image, error)
	Delete(ctx context.Context, publicIDs []string) error
}

var allowedExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".webp": {},
}

// ValidateImage checks extension and size before anything is uploaded.
func ValidateImage(file *multipart.FileHeader) error {
	extension := strings.ToLower(filepath.Ext(file.Filename))
	if extension == "" {
		return errors.New("image file extension is required")
	}
	if _, ok := allowedExtensions[extension]; !ok {
		return fmt.Errorf("unsupported image type: %s", extension)
	}
	if file.Size > maxImageSize {
		return fmt.Errorf("image file too large (max 5MB)")
	}
	return nil
}

// UploadAll uploads files in order. If one fails, the ones already stored
// are deleted before the error is returned.
func UploadAll(ctx context.Context, store Store, files []*multipart.FileHeader) ([]Image, error) {
	for _, file := range files {
		if err := ValidateImage(file); err != nil {
			return nil, err
		}
	}

	images := make([]Image, 0, len(files))
	for _, file := range files {
		img, err := store.Upload(ctx, file)
		if err != nil {
			Discard(ctx, store, images)
			return nil, fmt.Errorf("upload %s: %w", file.Filename, err)
		}
		images = append(images, img)
	}
	return images, nil
}

// Discard deletes images best-effort, logging failures.
func Discard(ctx context.Context, store Store, images []Image) {
	if len(images) == 0 {
		return
	}
	if err := store.Delete(ctx, PublicIDs(images)); err != nil {
		log.Printf("[MEDIA] [ERROR] discard %d images failed: %v", len(images), err)
	}
}

func URLs(images []Image) []string {
	out := make([]string, 0, len(images))
	for _, img := range images {
		out = append(out, img.URL)
	}
	return out
}

func PublicIDs(images []Image) []string {
	out := make([]string, 0, len(images))
	for _, img := range images {
		out = append(out, img.PublicID)
	}
	return out
}
