package service

import (
	"context"
	"fmt"

	"reminder-bot/internal/repository"
)

// TimezoneService resolves per-user UTC offsets.
type TimezoneService struct {
	repo          *repository.TimezoneRepository
	defaultOffset int
}

func NewTimezoneService(repo *repository.TimezoneRepository, defaultOffset int) *TimezoneService {
	return &TimezoneService{repo: repo, defaultOffset: defaultOffset}
}

// Resolve returns the user's UTC offset in hours. A missing record or a
// storage fault degrades to the configured default; it never fails.
func (s *TimezoneService) Resolve(ctx context.Context, userID int64) int {
	offset, err := s.repo.Get(ctx, userID)
	if err != nil {
		return s.defaultOffset
	}
	return offset
}

// Lookup returns the stored offset and whether the user has one at all.
func (s *TimezoneService) Lookup(ctx context.Context, userID int64) (int, bool) {
	offset, err := s.repo.Get(ctx, userID)
	if err != nil {
		return 0, false
	}
	return offset, true
}

// Set stores the user's offset after range validation.
func (s *TimezoneService) Set(ctx context.Context, userID int64, offsetHours int) error {
	if offsetHours < -12 || offsetHours > 14 {
		return fmt.Errorf("offset %d out of range [-12, 14]", offsetHours)
	}
	return s.repo.Put(ctx, userID, offsetHours)
}

// DefaultOffset exposes the fallback offset for user-facing messages.
func (s *TimezoneService) DefaultOffset() int {
	return s.defaultOffset
}
