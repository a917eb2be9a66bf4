package settlement

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Status string

const (
	StatusMinted   Status = "MINTED"
	StatusReverted Status = "REVERTED"
	StatusFailed   Status = "FAILED"
)

// Settlement is one server-signed mint attempt.
type Settlement struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	EventID    uint64    `json:"event_id" gorm:"not null;index"`
	SeatNumber uint64    `json:"seat_number" gorm:"not null"`
	PriceWei   string    `json:"price_wei" gorm:"type:varchar(78);not null"`
	TxHash     string    `json:"tx_hash,omitempty" gorm:"type:varchar(66);index"`
	TokenID    *string   `json:"token_id,omitempty" gorm:"type:varchar(78)"`
	Status     Status    `json:"status" gorm:"type:varchar(16);not null"`
	Error      string    `json:"error,omitempty" gorm:"type:text"`
	CreatedAt  time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt  time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Settlement) TableName() string {
	return "settlements"
}

func (s *Settlement) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
