package bot

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"reminder-bot/internal/conversation"
	"reminder-bot/internal/service"
)

const dateTimeLayout = "02.01.2006 15:04"

// timePattern accepts 24-hour "H:mm" / "HH:mm" clock values.
var timePattern = regexp.MustCompile(`^([0-1]?[0-9]|2[0-3]):[0-5][0-9]$`)

// dayAliasToISO maps user day abbreviations to the stored 3-letter form.
var dayAliasToISO = map[string]string{
	"пн": "MON", "вт": "TUE", "ср": "WED", "чт": "THU",
	"пт": "FRI", "сб": "SAT", "вс": "SUN",
	"mon": "MON", "tue": "TUE", "wed": "WED", "thu": "THU",
	"fri": "FRI", "sat": "SAT", "sun": "SUN",
}

var isoDayToRu = map[string]string{
	"MON": "Пн", "TUE": "Вт", "WED": "Ср", "THU": "Чт",
	"FRI": "Пт", "SAT": "Сб", "SUN": "Вс",
}

var daySplitter = regexp.MustCompile(`[,;\s]+`)

// parseDays turns "пн,вт,чт" into ["MON","TUE","THU"], keeping the input
// order and dropping duplicates. Unknown aliases are skipped; an empty
// result means nothing was recognized.
func parseDays(input string) []string {
	var result []string
	seen := make(map[string]struct{})
	for _, part := range daySplitter.Split(strings.ToLower(strings.TrimSpace(input)), -1) {
		iso, ok := dayAliasToISO[strings.TrimSpace(part)]
		if !ok {
			continue
		}
		if _, dup := seen[iso]; dup {
			continue
		}
		seen[iso] = struct{}{}
		result = append(result, iso)
	}
	return result
}

func formatDay(isoDay string) string {
	if ru, ok := isoDayToRu[isoDay]; ok {
		return ru
	}
	return isoDay
}

// localNow returns the current wall clock of a user with the given
// UTC offset.
func localNow(offsetHours int) time.Time {
	return time.Now().UTC().Add(time.Duration(offsetHours) * time.Hour)
}

// resolveOffsetVerbose resolves the user's offset for a wizard start and
// tells the user which timezone will apply.
func resolveOffsetVerbose(ctx context.Context, sender Sender, timezones *service.TimezoneService, chatID int64) int {
	if offset, ok := timezones.Lookup(ctx, chatID); ok {
		_ = sender.SendText(chatID, fmt.Sprintf("Ваш часовой пояс: UTC%+d", offset))
		return offset
	}
	offset := timezones.DefaultOffset()
	_ = sender.SendText(chatID, fmt.Sprintf(
		"Часовой пояс не указан. Будет использован UTC%+d.\n"+
			"Используйте /setOrEditTimezone для установки или изменения часового пояса.", offset))
	return offset
}

// RegisterCommands builds the command table. Registration order is
// fixed here; the help command goes last so it sees every other command
// already registered.
func RegisterCommands(d *Dispatcher, sender Sender, conv *conversation.Registry,
	reminders *service.ReminderService, timezones *service.TimezoneService, notes *service.NoteService) {

	d.Register(&AboutCommand{sender: sender})
	d.Register(&AuthorsCommand{sender: sender})

	// Notes
	d.Register(&AddNoteCommand{sender: sender, conv: conv, notes: notes})
	d.Register(&RemoveNoteCommand{sender: sender, conv: conv, notes: notes})
	d.Register(&EditNoteCommand{sender: sender, conv: conv, notes: notes})
	d.Register(&ShowNoteCommand{sender: sender, conv: conv, notes: notes})

	// Reminders
	d.Register(&AddOnceReminderCommand{sender: sender, conv: conv, reminders: reminders, timezones: timezones})
	d.Register(&EditOnceReminderCommand{sender: sender, conv: conv, reminders: reminders, timezones: timezones})
	d.Register(&AddPersistentReminderCommand{sender: sender, conv: conv, reminders: reminders, timezones: timezones})
	d.Register(&AddDelayedReminderCommand{sender: sender, conv: conv, reminders: reminders, timezones: timezones})
	d.Register(&EditDelayedReminderCommand{sender: sender, conv: conv, reminders: reminders, timezones: timezones})
	d.Register(&AddRecurringReminderCommand{sender: sender, conv: conv, reminders: reminders})
	d.Register(&EditRecurringReminderCommand{sender: sender, conv: conv, reminders: reminders})
	d.Register(&RemoveReminderCommand{sender: sender, conv: conv, reminders: reminders})
	d.Register(&ShowReminderCommand{sender: sender, conv: conv, reminders: reminders})

	// Timezone
	d.Register(&SetOrEditTimezoneCommand{sender: sender, conv: conv, timezones: timezones})

	// Import/export
	d.Register(&ImportReminderCommand{sender: sender, conv: conv, reminders: reminders})
	d.Register(&ExportReminderCommand{sender: sender, reminders: reminders})

	// Groups
	d.Register(&AddGroupCommand{sender: sender})
	d.Register(&AddToGroupCommand{sender: sender, conv: conv, reminders: reminders})
	d.Register(&RemoveFromGroupCommand{sender: sender, conv: conv, reminders: reminders})
	d.Register(&ListGroupsCommand{sender: sender, reminders: reminders})
	d.Register(&ShowGroupCommand{sender: sender, reminders: reminders})
	d.Register(&EnableGroupCommand{sender: sender, reminders: reminders})
	d.Register(&DisableGroupCommand{sender: sender, reminders: reminders})

	// Help is registered last so it can enumerate everything above.
	d.Register(NewHelpCommand(sender, d.Commands()))
}
