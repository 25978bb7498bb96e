package repository

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"koon7r-storefront/db"
	"koon7r-storefront/models"
)

// SettingsRepository handles the key/value settings table
type SettingsRepository struct{}

// NewSettingsRepository creates a new SettingsRepository
func NewSettingsRepository() *SettingsRepository {
	return &SettingsRepository{}
}

// Ensure SettingsRepository implements SettingsRepositoryInterface
var _ SettingsRepositoryInterface = (*SettingsRepository)(nil)

// GetAll loads every recognized setting. Unknown keys in the table are ignored.
func (r *SettingsRepository) GetAll(ctx context.Context) (*models.Settings, error) {
	settings := &models.Settings{}

	if !db.Available() {
		log.Printf("⚠️ GetAll: Cannot get settings: database not available")
		return settings, nil
	}

	rows, err := db.DB.QueryContext(ctx, `SELECT key, value, updated_at FROM settings`)
	if err != nil {
		log.Printf("❌ GetAll: Error fetching settings: %v", err)
		return nil, fmt.Errorf("failed to fetch settings: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var key, value string
		var updatedAt time.Time
		if err := rows.Scan(&key, &value, &updatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan setting: %w", err)
		}

		settingKey, ok := models.ParseSettingKey(key)
		if !ok {
			log.Printf("⚠️ GetAll: Ignoring unknown setting key=%s", key)
			continue
		}
		settings.Set(settingKey, value)
		if updatedAt.After(settings.UpdatedAt) {
			settings.UpdatedAt = updatedAt
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate settings: %w", err)
	}

	return settings, nil
}

// Upsert stores value under key
func (r *SettingsRepository) Upsert(ctx context.Context, key models.SettingKey, value string) error {
	log.Printf("📦 Upsert: Updating setting key=%s", key)

	if err := db.Require(); err != nil {
		return err
	}

	query := `
		INSERT INTO settings (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key)
		DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
	`
	if _, err := db.DB.ExecContext(ctx, query, string(key), value); err != nil {
		log.Printf("❌ Upsert: Error updating setting: %v", err)
		return fmt.Errorf("failed to update setting: %w", err)
	}

	log.Printf("✅ Upsert: Successfully updated setting key=%s", key)
	return nil
}
