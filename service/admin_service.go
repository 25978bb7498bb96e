package service

import (
	"context"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"koon7r-storefront/apperr"
	"koon7r-storefront/auth"
	"koon7r-storefront/models"
	"koon7r-storefront/repository"
	"koon7r-storefront/utils"
)

// AdminService exposes orders, messages and settings to admins
type AdminService struct {
	orders   repository.OrderRepositoryInterface
	designs  repository.CustomDesignRepositoryInterface
	messages repository.MessageRepositoryInterface
	settings repository.SettingsRepositoryInterface
}

// NewAdminService creates a new AdminService
func NewAdminService(
	orders repository.OrderRepositoryInterface,
	designs repository.CustomDesignRepositoryInterface,
	messages repository.MessageRepositoryInterface,
	settings repository.SettingsRepositoryInterface,
) *AdminService {
	return &AdminService{
		orders:   orders,
		designs:  designs,
		messages: messages,
		settings: settings,
	}
}

// Ensure AdminService implements AdminServiceInterface
var _ AdminServiceInterface = (*AdminService)(nil)

func requireAdmin(caller *auth.Identity, action string) error {
	if !caller.IsAdmin() {
		log.Printf("⚠️ %s: Rejected non-admin caller", action)
		return apperr.ErrForbidden
	}
	return nil
}

// ListOrders returns every order, newest first
func (s *AdminService) ListOrders(ctx context.Context, caller *auth.Identity) ([]models.Order, error) {
	if err := requireAdmin(caller, "ListOrders"); err != nil {
		return nil, err
	}
	return s.orders.List(ctx)
}

// GetOrder returns one order with its archived designs
func (s *AdminService) GetOrder(ctx context.Context, caller *auth.Identity, id string) (*models.OrderDetail, error) {
	if err := requireAdmin(caller, "GetOrder"); err != nil {
		return nil, err
	}

	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	designs, err := s.designs.ListByOrder(ctx, id)
	if err != nil {
		log.Printf("⚠️ GetOrder: Could not load designs for %s: %v", id, err)
		designs = []models.CustomDesign{}
	}
	return &models.OrderDetail{Order: *order, Designs: designs}, nil
}

// UpdateOrderStatus moves an order to status
func (s *AdminService) UpdateOrderStatus(ctx context.Context, caller *auth.Identity, id string, status models.OrderStatus) error {
	if err := requireAdmin(caller, "UpdateOrderStatus"); err != nil {
		return err
	}
	if !status.Valid() {
		return apperr.Validation("status", fmt.Sprintf("unknown order status %q", status))
	}
	return s.orders.UpdateStatus(ctx, id, status)
}

// DeleteOrder removes an order and its archived design rows
func (s *AdminService) DeleteOrder(ctx context.Context, caller *auth.Identity, id string) error {
	if err := requireAdmin(caller, "DeleteOrder"); err != nil {
		return err
	}
	return s.orders.Delete(ctx, id)
}

// ListMessages returns every contact message, newest first
func (s *AdminService) ListMessages(ctx context.Context, caller *auth.Identity) ([]models.ContactMessage, error) {
	if err := requireAdmin(caller, "ListMessages"); err != nil {
		return nil, err
	}
	return s.messages.List(ctx)
}

// MarkMessageRead flags a message as read
func (s *AdminService) MarkMessageRead(ctx context.Context, caller *auth.Identity, id string) error {
	if err := requireAdmin(caller, "MarkMessageRead"); err != nil {
		return err
	}
	return s.messages.MarkRead(ctx, id)
}

// GetSettings returns the site settings
func (s *AdminService) GetSettings(ctx context.Context, caller *auth.Identity) (*models.Settings, error) {
	if err := requireAdmin(caller, "GetSettings"); err != nil {
		return nil, err
	}
	return s.settings.GetAll(ctx)
}

// UpdateSetting stores one recognized setting and returns the updated settings
func (s *AdminService) UpdateSetting(ctx context.Context, caller *auth.Identity, key, value string) (*models.Settings, error) {
	if err := requireAdmin(caller, "UpdateSetting"); err != nil {
		return nil, err
	}

	settingKey, ok := models.ParseSettingKey(key)
	if !ok {
		return nil, apperr.Validation("key", fmt.Sprintf("unknown setting %q", key))
	}
	value = strings.TrimSpace(value)
	if settingKey == models.SettingContactEmail && value != "" {
		if err := utils.ValidateEmail(value); err != nil {
			return nil, apperr.Validation("value", "must be a valid email address")
		}
	}

	if err := s.settings.Upsert(ctx, settingKey, value); err != nil {
		return nil, err
	}
	return s.settings.GetAll(ctx)
}
