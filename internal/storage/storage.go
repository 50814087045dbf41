package storage

import (
	"context"
	"io"
	"path"
	"strings"

	"github.com/localplate/localplate/internal"
)

// Storage stores and serves uploaded photos. The local backend covers
// development and single-node deployments; R2 fronts production through
// its S3-compatible API.
type Storage interface {
	// Put writes content under key and returns the URL the file is
	// reachable at. Keys are slash-separated, e.g. "chefs/<id>/profile.jpg".
	Put(ctx context.Context, key string, content io.Reader, contentType string) (string, error)

	// Get opens the file stored under key. The caller closes the reader.
	Get(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete removes the file under key. Missing files are not an error.
	Delete(ctx context.Context, key string) error

	// URL reports where the file under key is served: a server-relative
	// path for local storage, a full HTTPS URL for R2.
	URL(key string) string

	// Exists reports whether a file is stored under key.
	Exists(ctx context.Context, key string) (bool, error)
}

// NewStorage builds the Storage backend the configuration names.
// An empty provider means local, which works out of the box in development.
func NewStorage(cfg internal.StorageConfig) (Storage, error) {
	switch cfg.Provider {
	case "local", "":
		return NewLocalStorage(cfg.LocalPath, cfg.LocalURL)
	case "r2":
		return NewR2Storage(R2Config{
			AccountID:   cfg.R2AccountID,
			AccessKeyID: cfg.R2AccessKeyID,
			SecretKey:   cfg.R2SecretKey,
			BucketName:  cfg.R2BucketName,
			PublicURL:   cfg.R2PublicURL,
		})
	default:
		return nil, ErrUnknownProvider(cfg.Provider)
	}
}

// cleanKey normalizes a storage key and rejects keys that escape the
// storage root or are empty after cleaning.
func cleanKey(key string) (string, error) {
	cleaned := path.Clean(strings.TrimPrefix(key, "/"))
	if cleaned == "." || cleaned == "" || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", ErrInvalidKey
	}
	return cleaned, nil
}
