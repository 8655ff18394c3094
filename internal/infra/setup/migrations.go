package setup

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/shubhashmahato/kurakani/internal/domain"
)

// MigrateDB applies the schema for all durable models.
func MigrateDB(db *gorm.DB) error {
	err := db.AutoMigrate(
		&domain.User{},
		&domain.Chat{},
		&domain.Message{},
		&domain.Call{},
	)
	if err != nil {
		return fmt.Errorf("setup: migrate database: %w", err)
	}
	return nil
}
