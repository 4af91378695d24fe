package bot

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"

	"reminder-bot/internal/model"
	"reminder-bot/internal/repository"
	"reminder-bot/internal/service"
)

// failableSender records sends and can be told to reject them.
type failableSender struct {
	fail bool
	sent []string
}

func (s *failableSender) SendText(_ int64, text string) error {
	if s.fail {
		return errors.New("telegram unavailable")
	}
	s.sent = append(s.sent, text)
	return nil
}

func newBotServices(t *testing.T) (*service.ReminderService, *service.TimezoneService) {
	t.Helper()
	db, err := repository.NewDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	timezones := service.NewTimezoneService(repository.NewTimezoneRepository(db), 0)
	reminders := service.NewReminderService(repository.NewReminderRepository(db), timezones, zap.NewNop())
	return reminders, timezones
}

// A failed send must leave the reminder untouched, so it is due again
// on the very next tick.
func TestDeliverDueFailedSendKeepsReminder(t *testing.T) {
	reminders, _ := newBotServices(t)
	ctx := context.Background()
	fireAt := time.Date(2025, 11, 24, 9, 0, 0, 0, time.UTC)

	if err := reminders.AddOnce(ctx, 1, "dentist", "go", fireAt, 0, true); err != nil {
		t.Fatalf("AddOnce: %v", err)
	}

	sender := &failableSender{fail: true}
	n := NewNotifier(sender, reminders, zap.NewNop())

	now := fireAt.Add(time.Minute)
	n.DeliverDue(ctx, now)

	if _, err := reminders.Get(ctx, 1, "dentist"); err != nil {
		t.Fatal("reminder must survive a failed send")
	}
	due, err := reminders.CollectDue(ctx, now.Add(time.Minute))
	if err != nil {
		t.Fatalf("CollectDue: %v", err)
	}
	if len(due) != 1 || due[0].Name != "dentist" {
		t.Fatalf("reminder must be due on the next tick, got %v", due)
	}
}

// A successful send deletes a ONCE reminder exactly when it asks for it.
func TestDeliverDueDeletesAfterSend(t *testing.T) {
	reminders, _ := newBotServices(t)
	ctx := context.Background()
	fireAt := time.Date(2025, 11, 24, 9, 0, 0, 0, time.UTC)

	if err := reminders.AddOnce(ctx, 1, "dentist", "go", fireAt, 0, true); err != nil {
		t.Fatalf("AddOnce: %v", err)
	}

	sender := &failableSender{}
	n := NewNotifier(sender, reminders, zap.NewNop())
	now := fireAt.Add(time.Minute)
	n.DeliverDue(ctx, now)

	if len(sender.sent) != 1 {
		t.Fatalf("sent %d messages, want 1", len(sender.sent))
	}
	if _, err := reminders.Get(ctx, 1, "dentist"); err == nil {
		t.Fatal("fired reminder with deleteAfterSend must be deleted")
	}

	// nothing left to deliver
	sender.sent = nil
	n.DeliverDue(ctx, now.Add(time.Minute))
	if len(sender.sent) != 0 {
		t.Fatalf("deleted reminder fired again: %v", sender.sent)
	}
}

// A ONCE reminder with deleteAfterSend=false keeps firing every tick
// until removed.
func TestDeliverDueKeepsPersistentReminder(t *testing.T) {
	reminders, _ := newBotServices(t)
	ctx := context.Background()
	fireAt := time.Date(2025, 11, 24, 9, 0, 0, 0, time.UTC)

	if err := reminders.AddOnce(ctx, 1, "pills", "take them", fireAt, 0, false); err != nil {
		t.Fatalf("AddOnce: %v", err)
	}

	sender := &failableSender{}
	n := NewNotifier(sender, reminders, zap.NewNop())
	n.DeliverDue(ctx, fireAt.Add(time.Minute))
	n.DeliverDue(ctx, fireAt.Add(2*time.Minute))

	if len(sender.sent) != 2 {
		t.Fatalf("sent %d messages, want one per tick", len(sender.sent))
	}
	if _, err := reminders.Get(ctx, 1, "pills"); err != nil {
		t.Fatal("persistent reminder must not be deleted after send")
	}
}

// Recurring reminders are never deleted by delivery.
func TestDeliverDueNeverDeletesRecurring(t *testing.T) {
	reminders, _ := newBotServices(t)
	ctx := context.Background()

	if err := reminders.AddRecurring(ctx, 1, "standup", "sync",
		[]model.ScheduleEntry{{Day: "MON", Time: "09:00"}}); err != nil {
		t.Fatalf("AddRecurring: %v", err)
	}

	sender := &failableSender{}
	n := NewNotifier(sender, reminders, zap.NewNop())
	// 2025-11-24 is a Monday; user offset is 0
	n.DeliverDue(ctx, time.Date(2025, 11, 24, 9, 0, 0, 0, time.UTC))

	if len(sender.sent) != 1 {
		t.Fatalf("sent %d messages, want 1", len(sender.sent))
	}
	if _, err := reminders.Get(ctx, 1, "standup"); err != nil {
		t.Fatal("recurring reminder must survive delivery")
	}
}
