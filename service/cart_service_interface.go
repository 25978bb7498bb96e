package service

import (
	"context"

	"koon7r-storefront/models"
)

// CartServiceInterface defines the contract for session cart operations
type CartServiceInterface interface {
	Get(ctx context.Context, sessionID string) (*models.CartResponse, error)
	AddCatalogItem(ctx context.Context, sessionID string, req *models.AddCatalogItemRequest) (*models.CartResponse, error)
	AddCustomItem(ctx context.Context, sessionID string, req *models.AddCustomItemRequest) (*models.CartResponse, error)
	RemoveItem(ctx context.Context, sessionID, lineID string) (*models.CartResponse, error)
	Clear(ctx context.Context, sessionID string) error
}
