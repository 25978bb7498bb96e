package repository

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"koon7r-storefront/db"
	"koon7r-storefront/models"
)

// UserRepository handles database operations for users
type UserRepository struct{}

// NewUserRepository creates a new UserRepository
func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

// Ensure UserRepository implements UserRepositoryInterface
var _ UserRepositoryInterface = (*UserRepository)(nil)

// Upsert inserts the user or refreshes its profile and last sign-in time
func (r *UserRepository) Upsert(ctx context.Context, user *models.User) error {
	log.Printf("📦 Upsert: Upserting user id=%s", user.ID)

	if err := db.Require(); err != nil {
		log.Printf("⚠️ Upsert: Cannot upsert user: database not available")
		return err
	}

	role := user.Role
	if role == "" {
		role = models.RoleUser
	}

	query := `
		INSERT INTO users (id, name, email, login_method, role, last_signed_in)
		VALUES ($1, $2, $3, $4, $5, NOW())
		ON CONFLICT (id)
		DO UPDATE SET name = EXCLUDED.name,
		              email = EXCLUDED.email,
		              login_method = EXCLUDED.login_method,
		              role = EXCLUDED.role,
		              last_signed_in = NOW()
		RETURNING created_at, last_signed_in
	`
	err := db.DB.QueryRowContext(ctx, query,
		user.ID,
		nullString(user.Name),
		nullString(user.Email),
		nullString(user.LoginMethod),
		string(role),
	).Scan(&user.CreatedAt, &user.LastSignedIn)
	if err != nil {
		log.Printf("❌ Upsert: Error upserting user: %v", err)
		return fmt.Errorf("failed to upsert user: %w", err)
	}

	user.Role = role
	log.Printf("✅ Upsert: Successfully upserted user id=%s", user.ID)
	return nil
}
