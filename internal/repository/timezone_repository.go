package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"reminder-bot/internal/model"
)

// TimezoneRepository stores per-user UTC offsets.
type TimezoneRepository struct {
	db *gorm.DB
}

func NewTimezoneRepository(db *gorm.DB) *TimezoneRepository {
	return &TimezoneRepository{db: db}
}

// Put inserts or replaces the user's offset.
func (r *TimezoneRepository) Put(ctx context.Context, userID int64, offsetHours int) error {
	tz := model.UserTimezone{UserID: userID, OffsetHours: offsetHours}
	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"offset_hours"}),
	}).Create(&tz).Error; err != nil {
		return fmt.Errorf("save timezone: %w", err)
	}
	return nil
}

// Get returns the user's offset, or gorm.ErrRecordNotFound if unset.
func (r *TimezoneRepository) Get(ctx context.Context, userID int64) (int, error) {
	var tz model.UserTimezone
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&tz).Error; err != nil {
		return 0, err
	}
	return tz.OffsetHours, nil
}
