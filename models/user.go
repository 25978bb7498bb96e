package models

import "time"

// Role is the permission level carried by a session
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User represents a signed-in identity in the users table
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name,omitempty"`
	Email        string    `json:"email,omitempty"`
	LoginMethod  string    `json:"loginMethod,omitempty"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	LastSignedIn time.Time `json:"lastSignedIn"`
}

// AdminLoginRequest represents the request body for POST /api/auth/admin-login
// Example: {"email": "owner@koon7r.com", "password": "..."}
type AdminLoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// CustomDesign records where the composites of a custom order line were archived
type CustomDesign struct {
	ID             string    `json:"id"`
	OrderID        string    `json:"orderId"`
	FrontDesignURL string    `json:"frontDesignUrl,omitempty"`
	BackDesignURL  string    `json:"backDesignUrl,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}
