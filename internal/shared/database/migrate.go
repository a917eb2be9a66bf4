package database

import (
	"eventx/internal/images"
	"eventx/internal/settlement"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&settlement.Settlement{},
		&images.EventImage{},
	); err != nil {
		return err
	}
	return MigrateConstraints(db)
}
