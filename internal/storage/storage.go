package storage

import (
	"context"
	"fmt"
	"mime"
	"path"
	"strings"
	"time"

	"github.com/google/uuid" // For generating unique object keys
)

// Default expiry duration for presigned URLs
const DefaultPresignedURLExpiry = 15 * time.Minute

// FileStorage defines the interface for object storage operations.
type FileStorage interface {
	// GeneratePresignedUploadURL creates a temporary URL that allows PUT requests
	// for uploading an object directly to the storage provider.
	GeneratePresignedUploadURL(ctx context.Context, objectKey string, contentType string, expires time.Duration) (string, error)

	// GeneratePresignedDownloadURL creates a temporary URL that allows GET requests
	// for downloading/viewing an object directly from the storage provider.
	GeneratePresignedDownloadURL(ctx context.Context, objectKey string, expires time.Duration) (string, error)

	// DeleteObject removes an object from the storage provider.
	DeleteObject(ctx context.Context, objectKey string) error
}

// ProgressPhotoKey builds the object key for a progress photo:
// progress/<clientProfileID>/<logID>/<uuid>.<ext>
func ProgressPhotoKey(clientID, logID, contentType string) (string, error) {
	ext, err := imageExtension(contentType)
	if err != nil {
		return "", err
	}
	return path.Join("progress", clientID, logID, uuid.NewString()+ext), nil
}

func imageExtension(contentType string) (string, error) {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil || !strings.HasPrefix(mediaType, "image/") {
		return "", fmt.Errorf("unsupported content type %q: expected an image", contentType)
	}
	switch sub := strings.TrimPrefix(mediaType, "image/"); sub {
	case "jpeg", "jpg":
		return ".jpg", nil
	case "png", "webp", "heic", "gif":
		return "." + sub, nil
	default:
		return "", fmt.Errorf("unsupported image type %q", mediaType)
	}
}
