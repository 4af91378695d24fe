package service

import (
	"testing"
	"time"

	"reminder-bot/internal/model"
)

func onceReminder(t *testing.T, remindAt string, enabled bool) model.Reminder {
	t.Helper()
	props, err := model.EncodeProperties(model.OnceProperties{
		RemindAt: remindAt, DeleteAfterSend: true, Enabled: enabled,
	})
	if err != nil {
		t.Fatalf("encode once props: %v", err)
	}
	return model.Reminder{UserID: 1, Name: "r", Text: "t", Type: model.TypeOnce, Properties: props}
}

func recurringReminder(t *testing.T, enabled bool, entries ...model.ScheduleEntry) model.Reminder {
	t.Helper()
	props, err := model.EncodeProperties(model.RecurringProperties{
		Schedule: entries, Enabled: enabled,
	})
	if err != nil {
		t.Fatalf("encode recurring props: %v", err)
	}
	return model.Reminder{UserID: 1, Name: "r", Text: "t", Type: model.TypeRecurring, Properties: props}
}

func utc(t *testing.T, value string) time.Time {
	t.Helper()
	ts, err := time.ParseInLocation("2006-01-02 15:04:05", value, time.UTC)
	if err != nil {
		t.Fatalf("parse %q: %v", value, err)
	}
	return ts
}

// A one-shot entered as 26.11.2025 15:30 in UTC+3 is stored as
// 2025-11-26 12:30:00 UTC; it becomes due at exactly that instant and
// stays due afterwards.
func TestIsDueOnceBoundary(t *testing.T) {
	r := onceReminder(t, "2025-11-26 12:30:00", true)

	tests := []struct {
		now  string
		want bool
	}{
		{"2025-11-26 12:29:59", false},
		{"2025-11-26 12:30:00", true},
		{"2025-11-26 12:30:01", true},
		{"2025-12-24 08:00:00", true},
	}
	for _, tc := range tests {
		got, err := IsDue(r, utc(t, tc.now), 3)
		if err != nil {
			t.Fatalf("IsDue at %s: %v", tc.now, err)
		}
		if got != tc.want {
			t.Errorf("IsDue at %s = %v, want %v", tc.now, got, tc.want)
		}
	}
}

// The user's offset never affects a ONCE reminder once stored: the
// fire instant is absolute UTC.
func TestIsDueOnceIgnoresOffset(t *testing.T) {
	r := onceReminder(t, "2025-11-26 12:30:00", true)
	now := utc(t, "2025-11-26 12:30:00")
	for _, offset := range []int{-12, 0, 3, 14} {
		got, err := IsDue(r, now, offset)
		if err != nil {
			t.Fatalf("IsDue offset %d: %v", offset, err)
		}
		if !got {
			t.Errorf("IsDue offset %d = false, want true", offset)
		}
	}
}

// "Every Monday at 09:00" for a UTC+5 user means UTC Monday 04:00.
// 2025-11-24 is a Monday.
func TestIsDueRecurringLocalMinute(t *testing.T) {
	r := recurringReminder(t, true, model.ScheduleEntry{Day: "MON", Time: "09:00"})

	tests := []struct {
		now    string
		offset int
		want   bool
	}{
		{"2025-11-24 03:59:30", 5, false}, // local 08:59
		{"2025-11-24 04:00:00", 5, true},  // local 09:00
		{"2025-11-24 04:00:30", 5, true},  // still the same minute
		{"2025-11-24 04:01:00", 5, false}, // local 09:01
		{"2025-11-24 09:00:00", 0, true},  // UTC user
		{"2025-11-25 04:00:00", 5, false}, // Tuesday
	}
	for _, tc := range tests {
		got, err := IsDue(r, utc(t, tc.now), tc.offset)
		if err != nil {
			t.Fatalf("IsDue at %s: %v", tc.now, err)
		}
		if got != tc.want {
			t.Errorf("IsDue at %s offset %d = %v, want %v", tc.now, tc.offset, got, tc.want)
		}
	}
}

// A negative offset can shift the local weekday behind UTC: Sunday
// 23:30 for a UTC-2 user is Monday 01:30 UTC.
func TestIsDueRecurringDayRollover(t *testing.T) {
	r := recurringReminder(t, true, model.ScheduleEntry{Day: "SUN", Time: "23:30"})

	got, err := IsDue(r, utc(t, "2025-11-24 01:30:00"), -2)
	if err != nil {
		t.Fatalf("IsDue: %v", err)
	}
	if !got {
		t.Error("expected due: local clock is still Sunday 23:30")
	}

	got, err = IsDue(r, utc(t, "2025-11-23 23:30:00"), -2)
	if err != nil {
		t.Fatalf("IsDue: %v", err)
	}
	if got {
		t.Error("expected not due: local clock is Sunday 21:30")
	}
}

func TestIsDueDisabledNeverFires(t *testing.T) {
	once := onceReminder(t, "2020-01-01 00:00:00", false)
	rec := recurringReminder(t, false, model.ScheduleEntry{Day: "MON", Time: "09:00"})

	now := utc(t, "2025-11-24 09:00:00")
	for _, r := range []model.Reminder{once, rec} {
		got, err := IsDue(r, now, 0)
		if err != nil {
			t.Fatalf("IsDue: %v", err)
		}
		if got {
			t.Errorf("disabled %s reminder reported due", r.Type)
		}
	}
}

func TestIsDueCorruptProperties(t *testing.T) {
	r := model.Reminder{UserID: 1, Name: "broken", Type: model.TypeOnce, Properties: "{not json"}
	if _, err := IsDue(r, utc(t, "2025-11-24 09:00:00"), 0); err == nil {
		t.Fatal("expected error for corrupt properties")
	}

	r = onceReminder(t, "yesterday", true)
	if _, err := IsDue(r, utc(t, "2025-11-24 09:00:00"), 0); err == nil {
		t.Fatal("expected error for unparseable remind_at")
	}
}
