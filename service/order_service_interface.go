package service

import (
	"context"

	"koon7r-storefront/models"
)

// OrderServiceInterface defines the contract for order submission
type OrderServiceInterface interface {
	Submit(ctx context.Context, req *models.CreateOrderRequest) (*models.Order, error)
}
