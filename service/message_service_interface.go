package service

import (
	"context"

	"koon7r-storefront/models"
)

// MessageServiceInterface defines the contract for contact form submissions
type MessageServiceInterface interface {
	Create(ctx context.Context, req *models.CreateMessageRequest) (*models.ContactMessage, error)
}
