package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// ReminderType distinguishes one-shot and weekly reminders.
type ReminderType string

const (
	TypeOnce      ReminderType = "ONCE"
	TypeRecurring ReminderType = "RECURRING"
)

// OnceTimeLayout is the storage format of a one-shot fire time (always UTC).
const OnceTimeLayout = "2006-01-02 15:04:05"

// Reminder is a stored reminder keyed by (user, name).
// Type-specific settings live in the Properties JSON column.
type Reminder struct {
	UserID     int64        `gorm:"primaryKey;column:user_id"`
	Name       string       `gorm:"primaryKey;column:reminder_name"`
	Text       string       `gorm:"not null"`
	Type       ReminderType `gorm:"not null"`
	Properties string       `gorm:"not null"`
	CreatedAt  time.Time
}

func (Reminder) TableName() string { return "reminders" }

// OnceProperties holds settings of a ONCE reminder.
// RemindAt is stored in UTC regardless of the user's timezone.
type OnceProperties struct {
	RemindAt        string `json:"remind_at"`
	DeleteAfterSend bool   `json:"deleteAfterSend"`
	Group           string `json:"group"`
	Enabled         bool   `json:"enabled"`
}

// ScheduleEntry is one (weekday, local time) pair of a recurring schedule.
// Day is a 3-letter uppercase abbreviation (MON..SUN), Time is "HH:mm".
type ScheduleEntry struct {
	Day  string `json:"day"`
	Time string `json:"time"`
}

// RecurringProperties holds settings of a RECURRING reminder.
type RecurringProperties struct {
	Schedule []ScheduleEntry `json:"schedule"`
	Group    string          `json:"group"`
	Enabled  bool            `json:"enabled"`
}

// FireAtUTC parses the stored fire time as a UTC instant.
func (p OnceProperties) FireAtUTC() (time.Time, error) {
	t, err := time.ParseInLocation(OnceTimeLayout, p.RemindAt, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse remind_at %q: %w", p.RemindAt, err)
	}
	return t, nil
}

// OnceProps decodes the properties column of a ONCE reminder.
func (r Reminder) OnceProps() (OnceProperties, error) {
	var p OnceProperties
	if r.Type != TypeOnce {
		return p, fmt.Errorf("reminder %q is %s, not ONCE", r.Name, r.Type)
	}
	if err := json.Unmarshal([]byte(r.Properties), &p); err != nil {
		return p, fmt.Errorf("decode once properties of %q: %w", r.Name, err)
	}
	return p, nil
}

// RecurringProps decodes the properties column of a RECURRING reminder.
func (r Reminder) RecurringProps() (RecurringProperties, error) {
	var p RecurringProperties
	if r.Type != TypeRecurring {
		return p, fmt.Errorf("reminder %q is %s, not RECURRING", r.Name, r.Type)
	}
	if err := json.Unmarshal([]byte(r.Properties), &p); err != nil {
		return p, fmt.Errorf("decode recurring properties of %q: %w", r.Name, err)
	}
	return p, nil
}

// Enabled reports whether the reminder may fire at all.
func (r Reminder) Enabled() bool {
	switch r.Type {
	case TypeOnce:
		p, err := r.OnceProps()
		return err == nil && p.Enabled
	case TypeRecurring:
		p, err := r.RecurringProps()
		return err == nil && p.Enabled
	}
	return false
}

// Group returns the reminder's group tag; empty means ungrouped.
func (r Reminder) Group() string {
	switch r.Type {
	case TypeOnce:
		if p, err := r.OnceProps(); err == nil {
			return p.Group
		}
	case TypeRecurring:
		if p, err := r.RecurringProps(); err == nil {
			return p.Group
		}
	}
	return ""
}

// EncodeProperties serializes a properties value for storage.
func EncodeProperties(props any) (string, error) {
	raw, err := json.Marshal(props)
	if err != nil {
		return "", fmt.Errorf("encode properties: %w", err)
	}
	return string(raw), nil
}
