package auth

import (
	"context"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"koon7r-storefront/apperr"
	"koon7r-storefront/models"
)

// CredentialStore verifies login credentials
type CredentialStore interface {
	Authenticate(ctx context.Context, email, password string) (*Identity, error)
}

// StaticCredentialStore holds a single configured admin account
type StaticCredentialStore struct {
	email        string
	passwordHash []byte
}

// Ensure StaticCredentialStore implements CredentialStore
var _ CredentialStore = (*StaticCredentialStore)(nil)

// NewStaticCredentialStore configures the admin account. passwordHash (bcrypt) wins over
// password; a plaintext password is hashed once here. With neither set, every login fails.
func NewStaticCredentialStore(email, password, passwordHash string) (*StaticCredentialStore, error) {
	store := &StaticCredentialStore{email: strings.TrimSpace(email)}

	switch {
	case passwordHash != "":
		if _, err := bcrypt.Cost([]byte(passwordHash)); err != nil {
			return nil, fmt.Errorf("invalid ADMIN_PASSWORD_HASH: %w", err)
		}
		store.passwordHash = []byte(passwordHash)
	case password != "":
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash admin password: %w", err)
		}
		store.passwordHash = hash
	}

	if store.email == "" || store.passwordHash == nil {
		log.Printf("⚠️ StaticCredentialStore: Admin credentials not configured, admin login is disabled")
	}
	return store, nil
}

// Authenticate checks email and password against the configured admin
func (s *StaticCredentialStore) Authenticate(_ context.Context, email, password string) (*Identity, error) {
	if s.email == "" || s.passwordHash == nil {
		return nil, apperr.ErrUnauthorized
	}

	// Compare the hash regardless of the email match
	hashErr := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password))
	if !strings.EqualFold(strings.TrimSpace(email), s.email) || hashErr != nil {
		return nil, apperr.ErrUnauthorized
	}

	return &Identity{
		Email: s.email,
		Name:  "Admin",
		Role:  models.RoleAdmin,
	}, nil
}
