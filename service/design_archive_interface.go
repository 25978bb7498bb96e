package service

import "context"

// DesignArchiveInterface defines the contract for storing custom order artwork.
// Store returns a URL (or file URL) where the image can be fetched later.
type DesignArchiveInterface interface {
	Store(ctx context.Context, name, mediaType string, data []byte) (string, error)
	Backend() string
}
