package service

import (
	"context"
	"strings"

	log "github.com/sirupsen/logrus"

	"koon7r-storefront/auth"
	"koon7r-storefront/models"
	"koon7r-storefront/repository"
	"koon7r-storefront/utils"
)

// AuthService checks admin credentials and keeps the users table current
type AuthService struct {
	credentials auth.CredentialStore
	users       repository.UserRepositoryInterface
}

// NewAuthService creates a new AuthService
func NewAuthService(credentials auth.CredentialStore, users repository.UserRepositoryInterface) *AuthService {
	return &AuthService{credentials: credentials, users: users}
}

// Ensure AuthService implements AuthServiceInterface
var _ AuthServiceInterface = (*AuthService)(nil)

// AdminLogin authenticates the admin. The users row is refreshed best effort.
func (s *AuthService) AdminLogin(ctx context.Context, req *models.AdminLoginRequest) (*auth.Identity, error) {
	req.Email = strings.TrimSpace(req.Email)
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	identity, err := s.credentials.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		log.Printf("❌ AdminLogin: Rejected sign-in for %s", req.Email)
		return nil, err
	}

	user := &models.User{
		ID:          "admin:" + strings.ToLower(identity.Email),
		Name:        identity.Name,
		Email:       identity.Email,
		LoginMethod: "password",
		Role:        identity.Role,
	}
	if err := s.users.Upsert(ctx, user); err != nil {
		log.Printf("⚠️ AdminLogin: Could not record user %s: %v", user.ID, err)
	}

	log.Printf("✅ AdminLogin: %s signed in", identity.Email)
	return identity, nil
}
