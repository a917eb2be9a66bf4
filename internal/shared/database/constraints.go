package database

import (
	"fmt"

	"gorm.io/gorm"
)

type indexDef struct {
	name string
	sql  string
}

var ledgerIndexes = []indexDef{
	// a transaction hash is recorded at most once
	{"idx_settlements_tx_hash", `CREATE UNIQUE INDEX IF NOT EXISTS idx_settlements_tx_hash
		ON settlements (tx_hash) WHERE tx_hash <> ''`},
	{"idx_settlements_event_seat", `CREATE INDEX IF NOT EXISTS idx_settlements_event_seat
		ON settlements (event_id, seat_number)`},
	{"idx_event_images_updated_at", `CREATE INDEX IF NOT EXISTS idx_event_images_updated_at
		ON event_images (updated_at)`},
}

// MigrateConstraints adds the indexes the ledger and image lookups rely on.
func MigrateConstraints(db *gorm.DB) error {
	for _, idx := range ledgerIndexes {
		if err := db.Exec(idx.sql).Error; err != nil {
			return fmt.Errorf("create index %s: %w", idx.name, err)
		}
	}
	return nil
}
