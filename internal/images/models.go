package images

import "time"

// EventImage is the organizer-supplied image URL of an on-chain event.
type EventImage struct {
	EventID   uint64    `json:"event_id" gorm:"primaryKey;autoIncrement:false"`
	URL       string    `json:"url" gorm:"type:text;not null"`
	UpdatedBy string    `json:"updated_by" gorm:"type:varchar(42);not null"`
	UpdatedAt time.Time `json:"updated_at" gorm:"not null;autoUpdateTime:false"`
}

func (EventImage) TableName() string {
	return "event_images"
}
