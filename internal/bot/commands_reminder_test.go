package bot

import (
	"context"
	"strings"
	"testing"
	"time"

	"reminder-bot/internal/conversation"
)

// resumeAll feeds wizard answers the way the dispatcher would: each
// answer consumes the pending state and hands it to the command.
func resumeAll(t *testing.T, conv *conversation.Registry, cmd Resumer, chatID int64, answers ...string) {
	t.Helper()
	ctx := context.Background()
	for _, answer := range answers {
		st, ok := conv.ConsumePending(chatID)
		if !ok {
			t.Fatalf("no pending state before answer %q", answer)
		}
		if err := cmd.Resume(ctx, chatID, answer, st); err != nil {
			t.Fatalf("resume %q: %v", answer, err)
		}
	}
}

// The persistent wizard stores a ONCE reminder that delivery must not
// delete: deleteAfterSend is off, everything else matches /addOnceReminder.
func TestAddPersistentReminderWizard(t *testing.T) {
	reminders, timezones := newBotServices(t)
	ctx := context.Background()
	if err := timezones.Set(ctx, 1, 3); err != nil {
		t.Fatalf("set timezone: %v", err)
	}

	sender := &failableSender{}
	conv := conversation.NewRegistry()
	cmd := &AddPersistentReminderCommand{sender: sender, conv: conv, reminders: reminders, timezones: timezones}

	if err := cmd.Execute(ctx, 1, nil); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	future := time.Now().UTC().Add(3 * time.Hour).Add(48 * time.Hour).Format(dateTimeLayout)
	resumeAll(t, conv, cmd, 1, "pills", future, "take them")

	r, err := reminders.Get(ctx, 1, "pills")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	props, err := r.OnceProps()
	if err != nil {
		t.Fatalf("OnceProps: %v", err)
	}
	if props.DeleteAfterSend {
		t.Fatal("persistent reminder must have deleteAfterSend off")
	}
	if !props.Enabled {
		t.Fatal("new reminder must be enabled")
	}
	last := sender.sent[len(sender.sent)-1]
	if !strings.Contains(last, "повторяться") {
		t.Fatalf("confirmation = %q", last)
	}
}

// Removing a name that does not exist must say so, not report success.
func TestRemoveReminderUnknownName(t *testing.T) {
	reminders, _ := newBotServices(t)
	ctx := context.Background()
	fireAt := time.Date(2030, 1, 1, 10, 0, 0, 0, time.UTC)
	if err := reminders.AddOnce(ctx, 1, "real", "x", fireAt, 0, true); err != nil {
		t.Fatalf("AddOnce: %v", err)
	}

	sender := &failableSender{}
	conv := conversation.NewRegistry()
	cmd := &RemoveReminderCommand{sender: sender, conv: conv, reminders: reminders}

	if err := cmd.Execute(ctx, 1, nil); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	resumeAll(t, conv, cmd, 1, "ghost")

	last := sender.sent[len(sender.sent)-1]
	if !strings.Contains(last, "не найдено") {
		t.Fatalf("reply = %q, want a not-found message", last)
	}
	if _, err := reminders.Get(ctx, 1, "real"); err != nil {
		t.Fatal("existing reminder must be untouched")
	}

	// the real one is removable
	if err := cmd.Execute(ctx, 1, nil); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	resumeAll(t, conv, cmd, 1, "real")
	if _, err := reminders.Get(ctx, 1, "real"); err == nil {
		t.Fatal("reminder must be gone after removal")
	}
	last = sender.sent[len(sender.sent)-1]
	if !strings.Contains(last, "удалено") {
		t.Fatalf("reply = %q, want a deletion confirmation", last)
	}
}
