package service

import (
	"context"

	"koon7r-storefront/auth"
	"koon7r-storefront/models"
)

// AdminServiceInterface defines the contract for the admin surface.
// Every method fails with apperr.ErrForbidden unless caller is an admin.
type AdminServiceInterface interface {
	ListOrders(ctx context.Context, caller *auth.Identity) ([]models.Order, error)
	GetOrder(ctx context.Context, caller *auth.Identity, id string) (*models.OrderDetail, error)
	UpdateOrderStatus(ctx context.Context, caller *auth.Identity, id string, status models.OrderStatus) error
	DeleteOrder(ctx context.Context, caller *auth.Identity, id string) error
	ListMessages(ctx context.Context, caller *auth.Identity) ([]models.ContactMessage, error)
	MarkMessageRead(ctx context.Context, caller *auth.Identity, id string) error
	GetSettings(ctx context.Context, caller *auth.Identity) (*models.Settings, error)
	UpdateSetting(ctx context.Context, caller *auth.Identity, key, value string) (*models.Settings, error)
}
