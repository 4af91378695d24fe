package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"reminder-bot/internal/model"
)

// NoteRepository handles CRUD for notes keyed by (user, name).
type NoteRepository struct {
	db *gorm.DB
}

func NewNoteRepository(db *gorm.DB) *NoteRepository {
	return &NoteRepository{db: db}
}

func (r *NoteRepository) Create(ctx context.Context, note *model.Note) error {
	if err := r.db.WithContext(ctx).Create(note).Error; err != nil {
		return fmt.Errorf("create note: %w", err)
	}
	return nil
}

func (r *NoteRepository) Get(ctx context.Context, userID int64, name string) (*model.Note, error) {
	var note model.Note
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND note_name = ?", userID, name).
		First(&note).Error; err != nil {
		return nil, err
	}
	return &note, nil
}

func (r *NoteRepository) Delete(ctx context.Context, userID int64, name string) error {
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND note_name = ?", userID, name).
		Delete(&model.Note{}).Error; err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	return nil
}

func (r *NoteRepository) ListNames(ctx context.Context, userID int64) ([]string, error) {
	var names []string
	if err := r.db.WithContext(ctx).Model(&model.Note{}).
		Where("user_id = ?", userID).
		Order("note_name").
		Pluck("note_name", &names).Error; err != nil {
		return nil, err
	}
	return names, nil
}

// UpdateText replaces the text of an existing note.
func (r *NoteRepository) UpdateText(ctx context.Context, userID int64, name, text string) error {
	res := r.db.WithContext(ctx).Model(&model.Note{}).
		Where("user_id = ? AND note_name = ?", userID, name).
		Update("text", text)
	if res.Error != nil {
		return fmt.Errorf("update note: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
