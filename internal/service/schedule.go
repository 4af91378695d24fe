package service

import (
	"strings"
	"time"

	"reminder-bot/internal/model"
)

// IsDue decides whether a single reminder must fire at nowUTC.
//
// ONCE reminders are matched in absolute UTC: due as soon as the stored
// fire instant is not in the future, and for every instant after that.
// RECURRING reminders are matched against the owner's current local
// clock: due only during the exact minute a schedule entry names, in the
// owner's timezone. The asymmetry is deliberate ("every Monday at 9am,
// your time" vs. "at this instant") and mirrors how the records are
// created.
//
// A decode failure of the properties column is returned as an error so
// the caller can skip the record without aborting its whole pass.
func IsDue(r model.Reminder, nowUTC time.Time, offsetHours int) (bool, error) {
	switch r.Type {
	case model.TypeOnce:
		props, err := r.OnceProps()
		if err != nil {
			return false, err
		}
		fireAt, err := props.FireAtUTC()
		if err != nil {
			return false, err
		}
		if !props.Enabled {
			return false, nil
		}
		return !fireAt.After(nowUTC), nil

	case model.TypeRecurring:
		props, err := r.RecurringProps()
		if err != nil {
			return false, err
		}
		if !props.Enabled {
			return false, nil
		}
		local := nowUTC.UTC().Add(time.Duration(offsetHours) * time.Hour)
		day := strings.ToUpper(local.Weekday().String()[:3])
		clock := local.Format("15:04")
		for _, entry := range props.Schedule {
			if entry.Day == day && entry.Time == clock {
				return true, nil
			}
		}
		return false, nil
	}

	return false, nil
}
