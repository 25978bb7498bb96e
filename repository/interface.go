package repository

import (
	"context"

	"koon7r-storefront/models"
)

// OrderRepositoryInterface defines the contract for order repository operations
type OrderRepositoryInterface interface {
	Create(ctx context.Context, order *models.Order) error
	List(ctx context.Context) ([]models.Order, error)
	GetByID(ctx context.Context, id string) (*models.Order, error)
	UpdateStatus(ctx context.Context, id string, status models.OrderStatus) error
	Delete(ctx context.Context, id string) error
}

// MessageRepositoryInterface defines the contract for contact message repository operations
type MessageRepositoryInterface interface {
	Create(ctx context.Context, msg *models.ContactMessage) error
	List(ctx context.Context) ([]models.ContactMessage, error)
	MarkRead(ctx context.Context, id string) error
}

// SettingsRepositoryInterface defines the contract for settings repository operations
type SettingsRepositoryInterface interface {
	GetAll(ctx context.Context) (*models.Settings, error)
	Upsert(ctx context.Context, key models.SettingKey, value string) error
}

// UserRepositoryInterface defines the contract for user repository operations
type UserRepositoryInterface interface {
	Upsert(ctx context.Context, user *models.User) error
}

// CustomDesignRepositoryInterface defines the contract for archived custom design records
type CustomDesignRepositoryInterface interface {
	Create(ctx context.Context, design *models.CustomDesign) error
	ListByOrder(ctx context.Context, orderID string) ([]models.CustomDesign, error)
}
