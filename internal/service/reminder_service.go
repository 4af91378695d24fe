package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"reminder-bot/internal/model"
	"reminder-bot/internal/repository"
)

// ReminderService owns reminder CRUD and the due-reminder evaluation.
type ReminderService struct {
	repo      *repository.ReminderRepository
	timezones *TimezoneService
	log       *zap.Logger
}

func NewReminderService(repo *repository.ReminderRepository, timezones *TimezoneService, log *zap.Logger) *ReminderService {
	return &ReminderService{repo: repo, timezones: timezones, log: log}
}

// AddOnce stores a one-shot reminder. The fire time arrives in the
// owner's local time and is converted to UTC exactly once, here.
func (s *ReminderService) AddOnce(ctx context.Context, userID int64, name, text string, remindAtLocal time.Time, offsetHours int, deleteAfterSend bool) error {
	utc := remindAtLocal.Add(-time.Duration(offsetHours) * time.Hour)
	props := model.OnceProperties{
		RemindAt:        utc.Format(model.OnceTimeLayout),
		DeleteAfterSend: deleteAfterSend,
		Group:           "",
		Enabled:         true,
	}
	return s.CreateWithProperties(ctx, userID, name, text, model.TypeOnce, props)
}

// AddRecurring stores a weekly reminder with the given schedule entries.
func (s *ReminderService) AddRecurring(ctx context.Context, userID int64, name, text string, entries []model.ScheduleEntry) error {
	props := model.RecurringProperties{
		Schedule: entries,
		Group:    "",
		Enabled:  true,
	}
	return s.CreateWithProperties(ctx, userID, name, text, model.TypeRecurring, props)
}

// CreateWithProperties inserts a reminder with pre-built properties.
// Used by import and by edit commands, which reinsert under the same
// name after deleting while keeping group and enabled flags.
func (s *ReminderService) CreateWithProperties(ctx context.Context, userID int64, name, text string, typ model.ReminderType, props any) error {
	encoded, err := model.EncodeProperties(props)
	if err != nil {
		return err
	}
	return s.repo.Create(ctx, &model.Reminder{
		UserID:     userID,
		Name:       name,
		Text:       text,
		Type:       typ,
		Properties: encoded,
	})
}

func (s *ReminderService) Get(ctx context.Context, userID int64, name string) (*model.Reminder, error) {
	return s.repo.Get(ctx, userID, name)
}

func (s *ReminderService) Remove(ctx context.Context, userID int64, name string) error {
	return s.repo.Delete(ctx, userID, name)
}

func (s *ReminderService) ListNames(ctx context.Context, userID int64) ([]string, error) {
	return s.repo.ListNames(ctx, userID)
}

// NamesOfType returns a user's reminder names restricted to one type,
// in name order.
func (s *ReminderService) NamesOfType(ctx context.Context, userID int64, typ model.ReminderType) ([]string, error) {
	names, err := s.repo.ListNames(ctx, userID)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, name := range names {
		r, err := s.repo.Get(ctx, userID, name)
		if err != nil {
			continue
		}
		if r.Type == typ {
			out = append(out, name)
		}
	}
	return out, nil
}

// Replace removes a reminder and reinserts it with new content, possibly
// under a new name. Edits are modeled as delete-then-insert so the
// composite key stays the single source of identity.
func (s *ReminderService) Replace(ctx context.Context, userID int64, oldName, newName, text string, typ model.ReminderType, props any) error {
	if err := s.repo.Delete(ctx, userID, oldName); err != nil {
		return err
	}
	return s.CreateWithProperties(ctx, userID, newName, text, typ, props)
}

// ListGroups returns the distinct group tags of a user's reminders,
// sorted; the empty string stands for ungrouped reminders.
func (s *ReminderService) ListGroups(ctx context.Context, userID int64) ([]string, error) {
	names, err := s.repo.ListNames(ctx, userID)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{})
	for _, name := range names {
		r, err := s.repo.Get(ctx, userID, name)
		if err != nil {
			continue
		}
		seen[r.Group()] = struct{}{}
	}
	groups := make([]string, 0, len(seen))
	for g := range seen {
		groups = append(groups, g)
	}
	sort.Strings(groups)
	return groups, nil
}

// SetGroup moves a reminder into the given group (empty = ungrouped).
func (s *ReminderService) SetGroup(ctx context.Context, userID int64, name, group string) error {
	r, err := s.repo.Get(ctx, userID, name)
	if err != nil {
		return err
	}
	switch r.Type {
	case model.TypeOnce:
		props, err := r.OnceProps()
		if err != nil {
			return err
		}
		props.Group = group
		return s.updateProps(ctx, userID, name, props)
	case model.TypeRecurring:
		props, err := r.RecurringProps()
		if err != nil {
			return err
		}
		props.Group = group
		return s.updateProps(ctx, userID, name, props)
	}
	return fmt.Errorf("reminder %q has unknown type %s", name, r.Type)
}

// SetEnabledByGroup flips the enabled flag of every reminder in a group
// and returns how many were changed.
func (s *ReminderService) SetEnabledByGroup(ctx context.Context, userID int64, group string, enabled bool) (int, error) {
	names, err := s.repo.ListNames(ctx, userID)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, name := range names {
		r, err := s.repo.Get(ctx, userID, name)
		if err != nil || r.Group() != group {
			continue
		}
		if err := s.setEnabled(ctx, r, enabled); err != nil {
			s.log.Warn("toggle reminder failed",
				zap.Int64("user", userID), zap.String("name", name), zap.Error(err))
			continue
		}
		count++
	}
	return count, nil
}

// RemindersInGroup returns a user's reminders carrying the given group tag.
func (s *ReminderService) RemindersInGroup(ctx context.Context, userID int64, group string) ([]model.Reminder, error) {
	names, err := s.repo.ListNames(ctx, userID)
	if err != nil {
		return nil, err
	}
	var out []model.Reminder
	for _, name := range names {
		r, err := s.repo.Get(ctx, userID, name)
		if err != nil {
			continue
		}
		if r.Group() == group {
			out = append(out, *r)
		}
	}
	return out, nil
}

// CollectDue loads every stored reminder and returns the subset due at
// nowUTC. It never mutates the store; delete-after-send is the caller's
// job once delivery succeeded. A record with corrupt properties is
// logged and skipped, never fatal to the pass.
func (s *ReminderService) CollectDue(ctx context.Context, nowUTC time.Time) ([]model.Reminder, error) {
	all, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list reminders: %w", err)
	}

	var due []model.Reminder
	for _, r := range all {
		offset := s.timezones.Resolve(ctx, r.UserID)
		ok, err := IsDue(r, nowUTC, offset)
		if err != nil {
			s.log.Warn("skipping unreadable reminder",
				zap.Int64("user", r.UserID), zap.String("name", r.Name), zap.Error(err))
			continue
		}
		if ok {
			due = append(due, r)
		}
	}
	return due, nil
}

func (s *ReminderService) setEnabled(ctx context.Context, r *model.Reminder, enabled bool) error {
	switch r.Type {
	case model.TypeOnce:
		props, err := r.OnceProps()
		if err != nil {
			return err
		}
		props.Enabled = enabled
		return s.updateProps(ctx, r.UserID, r.Name, props)
	case model.TypeRecurring:
		props, err := r.RecurringProps()
		if err != nil {
			return err
		}
		props.Enabled = enabled
		return s.updateProps(ctx, r.UserID, r.Name, props)
	}
	return fmt.Errorf("reminder %q has unknown type %s", r.Name, r.Type)
}

func (s *ReminderService) updateProps(ctx context.Context, userID int64, name string, props any) error {
	encoded, err := model.EncodeProperties(props)
	if err != nil {
		return err
	}
	return s.repo.UpdateProperties(ctx, userID, name, encoded)
}
