package repository

import (
	"context"
	"database/sql"
	"fmt"

	log "github.com/sirupsen/logrus"

	"koon7r-storefront/db"
	"koon7r-storefront/models"
)

// CustomDesignRepository records where custom order designs were archived
type CustomDesignRepository struct{}

// NewCustomDesignRepository creates a new CustomDesignRepository
func NewCustomDesignRepository() *CustomDesignRepository {
	return &CustomDesignRepository{}
}

// Ensure CustomDesignRepository implements CustomDesignRepositoryInterface
var _ CustomDesignRepositoryInterface = (*CustomDesignRepository)(nil)

// Create inserts a custom design record
func (r *CustomDesignRepository) Create(ctx context.Context, design *models.CustomDesign) error {
	log.Printf("📦 Create: Saving custom design id=%s for order=%s", design.ID, design.OrderID)

	if err := db.Require(); err != nil {
		return err
	}

	query := `
		INSERT INTO custom_designs (id, order_id, front_design_url, back_design_url)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`
	err := db.DB.QueryRowContext(ctx, query,
		design.ID,
		design.OrderID,
		nullString(design.FrontDesignURL),
		nullString(design.BackDesignURL),
	).Scan(&design.CreatedAt)
	if err != nil {
		log.Printf("❌ Create: Error saving custom design: %v", err)
		return fmt.Errorf("failed to save custom design: %w", err)
	}

	log.Printf("✅ Create: Successfully saved custom design id=%s", design.ID)
	return nil
}

// ListByOrder returns the archived designs of an order, oldest first
func (r *CustomDesignRepository) ListByOrder(ctx context.Context, orderID string) ([]models.CustomDesign, error) {
	if !db.Available() {
		log.Printf("⚠️ ListByOrder: Cannot get custom designs: database not available")
		return []models.CustomDesign{}, nil
	}

	query := `
		SELECT id, order_id, front_design_url, back_design_url, created_at
		FROM custom_designs
		WHERE order_id = $1
		ORDER BY created_at ASC
	`
	rows, err := db.DB.QueryContext(ctx, query, orderID)
	if err != nil {
		log.Printf("❌ ListByOrder: Error fetching custom designs: %v", err)
		return nil, fmt.Errorf("failed to fetch custom designs: %w", err)
	}
	defer rows.Close()

	designs := []models.CustomDesign{}
	for rows.Next() {
		var design models.CustomDesign
		var front, back sql.NullString
		if err := rows.Scan(&design.ID, &design.OrderID, &front, &back, &design.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan custom design: %w", err)
		}
		design.FrontDesignURL = front.String
		design.BackDesignURL = back.String
		designs = append(designs, design)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate custom designs: %w", err)
	}
	return designs, nil
}
