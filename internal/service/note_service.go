package service

import (
	"context"

	"reminder-bot/internal/model"
	"reminder-bot/internal/repository"
)

// NoteService provides helpers around notes.
type NoteService struct {
	repo *repository.NoteRepository
}

func NewNoteService(repo *repository.NoteRepository) *NoteService {
	return &NoteService{repo: repo}
}

func (s *NoteService) Add(ctx context.Context, userID int64, name, text string) error {
	return s.repo.Create(ctx, &model.Note{UserID: userID, Name: name, Text: text})
}

func (s *NoteService) Get(ctx context.Context, userID int64, name string) (*model.Note, error) {
	return s.repo.Get(ctx, userID, name)
}

func (s *NoteService) Remove(ctx context.Context, userID int64, name string) error {
	return s.repo.Delete(ctx, userID, name)
}

func (s *NoteService) ListNames(ctx context.Context, userID int64) ([]string, error) {
	return s.repo.ListNames(ctx, userID)
}

func (s *NoteService) UpdateText(ctx context.Context, userID int64, name, text string) error {
	return s.repo.UpdateText(ctx, userID, name, text)
}
