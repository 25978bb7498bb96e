package service

import (
	"context"

	"koon7r-storefront/auth"
	"koon7r-storefront/models"
)

// AuthServiceInterface defines the contract for admin sign-in
type AuthServiceInterface interface {
	AdminLogin(ctx context.Context, req *models.AdminLoginRequest) (*auth.Identity, error)
}
