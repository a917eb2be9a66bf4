package images

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	// Upsert writes img unless a newer row exists. It reports whether it wrote.
	Upsert(ctx context.Context, img *EventImage) (bool, error)
	GetByEventID(ctx context.Context, eventID uint64) (*EventImage, error)
	GetByEventIDs(ctx context.Context, eventIDs []uint64) ([]EventImage, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Upsert(ctx context.Context, img *EventImage) (bool, error) {
	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "event_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"url", "updated_by", "updated_at"}),
		Where: clause.Where{Exprs: []clause.Expression{
			clause.Expr{SQL: "event_images.updated_at <= excluded.updated_at"},
		}},
	}).Create(img)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *repository) GetByEventID(ctx context.Context, eventID uint64) (*EventImage, error) {
	var img EventImage
	err := r.db.WithContext(ctx).Where("event_id = ?", eventID).First(&img).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrImageNotFound
		}
		return nil, err
	}
	return &img, nil
}

func (r *repository) GetByEventIDs(ctx context.Context, eventIDs []uint64) ([]EventImage, error) {
	if len(eventIDs) == 0 {
		return nil, nil
	}
	var imgs []EventImage
	err := r.db.WithContext(ctx).Where("event_id IN ?", eventIDs).Find(&imgs).Error
	return imgs, err
}
