package models

import "time"

// ContactMessage represents a contact form submission
type ContactMessage struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"isRead"`
	CreatedAt time.Time `json:"createdAt"`
}

// CreateMessageRequest represents the request body for POST /api/messages
// Example: {"name": "Omar", "email": "omar@example.com", "message": "Do you ship to Amman?"}
type CreateMessageRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Message string `json:"message" validate:"required"`
}
