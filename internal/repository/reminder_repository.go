package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"reminder-bot/internal/model"
)

// ReminderRepository handles persistence of reminders keyed by (user, name).
type ReminderRepository struct {
	db *gorm.DB
}

func NewReminderRepository(db *gorm.DB) *ReminderRepository {
	return &ReminderRepository{db: db}
}

// Create inserts a new reminder. Inserting an existing (user, name) key is
// an error; editing is implemented by callers as delete-then-create.
func (r *ReminderRepository) Create(ctx context.Context, reminder *model.Reminder) error {
	if err := r.db.WithContext(ctx).Create(reminder).Error; err != nil {
		return fmt.Errorf("create reminder: %w", err)
	}
	return nil
}

func (r *ReminderRepository) Get(ctx context.Context, userID int64, name string) (*model.Reminder, error) {
	var reminder model.Reminder
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND reminder_name = ?", userID, name).
		First(&reminder).Error; err != nil {
		return nil, err
	}
	return &reminder, nil
}

func (r *ReminderRepository) Delete(ctx context.Context, userID int64, name string) error {
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND reminder_name = ?", userID, name).
		Delete(&model.Reminder{}).Error; err != nil {
		return fmt.Errorf("delete reminder: %w", err)
	}
	return nil
}

func (r *ReminderRepository) ListNames(ctx context.Context, userID int64) ([]string, error) {
	var names []string
	if err := r.db.WithContext(ctx).Model(&model.Reminder{}).
		Where("user_id = ?", userID).
		Order("reminder_name").
		Pluck("reminder_name", &names).Error; err != nil {
		return nil, err
	}
	return names, nil
}

// ListAll returns every stored reminder across all users.
// Used only by the due-reminder evaluator.
func (r *ReminderRepository) ListAll(ctx context.Context) ([]model.Reminder, error) {
	var reminders []model.Reminder
	if err := r.db.WithContext(ctx).Find(&reminders).Error; err != nil {
		return nil, err
	}
	return reminders, nil
}

// UpdateProperties replaces the properties column of an existing reminder.
func (r *ReminderRepository) UpdateProperties(ctx context.Context, userID int64, name, properties string) error {
	res := r.db.WithContext(ctx).Model(&model.Reminder{}).
		Where("user_id = ? AND reminder_name = ?", userID, name).
		Update("properties", properties)
	if res.Error != nil {
		return fmt.Errorf("update reminder properties: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
