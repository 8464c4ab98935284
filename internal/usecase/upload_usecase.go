package usecase

import (
	"context"
	"io"
	"path"
	"strings"

	"ripple/pkg/errors"
	"ripple/pkg/logger"
)

const MaxUploadSize = 5 << 20

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

type UploadUseCase struct {
	store ImageStore
}

func NewUploadUseCase(store ImageStore) *UploadUseCase {
	return &UploadUseCase{store: store}
}

// UploadImage stores an image under public/{role}/{uid}/ and returns its URL.
func (uc *UploadUseCase) UploadImage(ctx context.Context, role, uid, contentType string, size int64, file io.Reader) (string, error) {
	if uc.store == nil {
		return "", errors.Unavailable("File storage is not configured", nil)
	}

	contentType = strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0]))
	if !allowedImageTypes[contentType] {
		return "", errors.BadRequest("Only JPEG, PNG, GIF or WebP images are allowed", nil)
	}
	if size > MaxUploadSize {
		return "", errors.BadRequest("File exceeds the 5 MB limit", nil)
	}

	folder := path.Join("public", role, uid)
	url, err := uc.store.UploadImage(ctx, io.LimitReader(file, MaxUploadSize+1), contentType, folder)
	if err != nil {
		return "", errors.Internal("Failed to upload file", err)
	}
	return url, nil
}

// removeImage deletes an image that is no longer referenced. Failures only
// leave an orphaned object behind, so they are logged and swallowed.
func removeImage(ctx context.Context, store ImageStore, url string) {
	if store == nil || url == "" {
		return
	}
	if err := store.DeleteFile(ctx, url); err != nil {
		logger.Warn("Failed to delete image %s: %v", url, err)
	}
}
