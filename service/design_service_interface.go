package service

import (
	"context"

	"koon7r-storefront/models"
)

// DesignServiceInterface defines the contract for design compositing operations
type DesignServiceInterface interface {
	Composite(ctx context.Context, view models.View, layer *models.DesignLayer) (*models.DesignImage, error)
	CanvasSize() (int, int)
}
