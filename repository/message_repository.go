package repository

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"koon7r-storefront/db"
	"koon7r-storefront/models"
)

// MessageRepository handles database operations for contact messages
type MessageRepository struct{}

// NewMessageRepository creates a new MessageRepository
func NewMessageRepository() *MessageRepository {
	return &MessageRepository{}
}

// Ensure MessageRepository implements MessageRepositoryInterface
var _ MessageRepositoryInterface = (*MessageRepository)(nil)

// Create inserts a message and fills its creation time
func (r *MessageRepository) Create(ctx context.Context, msg *models.ContactMessage) error {
	log.Printf("📦 Create: Creating message id=%s from=%s", msg.ID, msg.Email)

	if err := db.Require(); err != nil {
		log.Printf("❌ Create: Cannot create message: %v", err)
		return err
	}

	query := `
		INSERT INTO messages (id, name, email, message)
		VALUES ($1, $2, $3, $4)
		RETURNING is_read, created_at
	`
	err := db.DB.QueryRowContext(ctx, query, msg.ID, msg.Name, msg.Email, msg.Message).
		Scan(&msg.IsRead, &msg.CreatedAt)
	if err != nil {
		log.Printf("❌ Create: Error creating message: %v", err)
		return fmt.Errorf("failed to create message: %w", err)
	}

	log.Printf("✅ Create: Successfully created message id=%s", msg.ID)
	return nil
}

// List returns every message, newest first
func (r *MessageRepository) List(ctx context.Context) ([]models.ContactMessage, error) {
	if !db.Available() {
		log.Printf("⚠️ List: Cannot get messages: database not available")
		return []models.ContactMessage{}, nil
	}

	query := `SELECT id, name, email, message, is_read, created_at FROM messages ORDER BY created_at DESC`
	rows, err := db.DB.QueryContext(ctx, query)
	if err != nil {
		log.Printf("❌ List: Error fetching messages: %v", err)
		return nil, fmt.Errorf("failed to fetch messages: %w", err)
	}
	defer rows.Close()

	messages := []models.ContactMessage{}
	for rows.Next() {
		var msg models.ContactMessage
		if err := rows.Scan(&msg.ID, &msg.Name, &msg.Email, &msg.Message, &msg.IsRead, &msg.CreatedAt); err != nil {
			log.Printf("❌ List: Error scanning message: %v", err)
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		messages = append(messages, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate messages: %w", err)
	}

	log.Printf("✅ List: Successfully fetched %d messages", len(messages))
	return messages, nil
}

// MarkRead flags a message as read
func (r *MessageRepository) MarkRead(ctx context.Context, id string) error {
	log.Printf("📦 MarkRead: Marking message id=%s as read", id)

	if err := db.Require(); err != nil {
		return err
	}

	result, err := db.DB.ExecContext(ctx, `UPDATE messages SET is_read = TRUE WHERE id = $1`, id)
	if err != nil {
		log.Printf("❌ MarkRead: Error updating message: %v", err)
		return fmt.Errorf("failed to mark message as read: %w", err)
	}
	if err := requireAffected(result, "message", id); err != nil {
		log.Printf("❌ MarkRead: %v", err)
		return err
	}

	log.Printf("✅ MarkRead: Successfully marked message id=%s", id)
	return nil
}
