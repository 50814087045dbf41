package storage

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when no file exists at the requested key.
	ErrNotFound = errors.New("storage: file not found")

	// ErrInvalidKey is returned for empty keys or keys that escape the
	// storage root.
	ErrInvalidKey = errors.New("storage: invalid key")

	// ErrR2AccountIDRequired is returned when the R2 account ID is missing.
	ErrR2AccountIDRequired = errors.New("storage: R2 account ID is required")

	// ErrR2CredentialsRequired is returned when R2 credentials are missing.
	ErrR2CredentialsRequired = errors.New("storage: R2 credentials are required")

	// ErrR2BucketRequired is returned when the R2 bucket name is missing.
	ErrR2BucketRequired = errors.New("storage: R2 bucket name is required")
)

// ErrUnknownProvider creates an error for unknown storage providers.
func ErrUnknownProvider(provider string) error {
	return fmt.Errorf("storage: unknown provider %q", provider)
}
