package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"reminder-bot/internal/conversation"
	"reminder-bot/internal/model"
	"reminder-bot/internal/service"
)

// Wizard steps of /addOnceReminder.
const (
	addOnceStepName = iota
	addOnceStepTime
	addOnceStepText
)

// AddOnceReminderCommand creates a one-shot reminder through a
// name → date/time → text wizard.
type AddOnceReminderCommand struct {
	sender    Sender
	conv      *conversation.Registry
	reminders *service.ReminderService
	timezones *service.TimezoneService
}

func (c *AddOnceReminderCommand) Name() string        { return "addOnceReminder" }
func (c *AddOnceReminderCommand) Description() string { return "Добавить однократное напоминание" }
func (c *AddOnceReminderCommand) Usage() string       { return "/addOnceReminder" }

func (c *AddOnceReminderCommand) Execute(ctx context.Context, chatID int64, _ []string) error {
	offset := resolveOffsetVerbose(ctx, c.sender, c.timezones, chatID)
	c.conv.SetPending(chatID, &conversation.State{Command: c.Name(), Step: addOnceStepName, Offset: offset})
	return c.sender.SendText(chatID, "Введите имя напоминания.")
}

func (c *AddOnceReminderCommand) Resume(ctx context.Context, chatID int64, text string, st *conversation.State) error {
	switch st.Step {
	case addOnceStepName:
		st.Name = text
		st.Step = addOnceStepTime
		c.conv.SetPending(chatID, st)
		return c.sender.SendText(chatID,
			"Введите дату и время напоминания в формате:\n"+
				"dd.MM.yyyy HH:mm\n"+
				"Например: 26.11.2025 15:30")

	case addOnceStepTime:
		remindAt, err := time.Parse(dateTimeLayout, text)
		if err != nil {
			return c.sender.SendText(chatID, "Неверный формат даты. Используйте: dd.MM.yyyy HH:mm\nОперация отменена.")
		}
		if remindAt.Before(localNow(st.Offset)) {
			return c.sender.SendText(chatID, "Нельзя создать напоминание в прошлом. Операция отменена.")
		}
		st.RemindAt = remindAt
		st.Step = addOnceStepText
		c.conv.SetPending(chatID, st)
		return c.sender.SendText(chatID, "Введите текст напоминания.")

	case addOnceStepText:
		if err := c.reminders.AddOnce(ctx, chatID, st.Name, text, st.RemindAt, st.Offset, true); err != nil {
			return c.sender.SendText(chatID, "Ошибка при создании напоминания. Попробуйте позже.")
		}
		return c.sender.SendText(chatID, fmt.Sprintf(
			"Напоминание \"%s\" установлено на %s!", st.Name, st.RemindAt.Format(dateTimeLayout)))
	}
	return nil
}

// Wizard steps of /addPersistentReminder.
const (
	addPersistentStepName = iota
	addPersistentStepTime
	addPersistentStepText
)

// AddPersistentReminderCommand creates a one-shot reminder that is not
// deleted after delivery: once due, it fires on every tick until the
// user removes it.
type AddPersistentReminderCommand struct {
	sender    Sender
	conv      *conversation.Registry
	reminders *service.ReminderService
	timezones *service.TimezoneService
}

func (c *AddPersistentReminderCommand) Name() string { return "addPersistentReminder" }
func (c *AddPersistentReminderCommand) Description() string {
	return "Добавить напоминание, повторяющееся до удаления"
}
func (c *AddPersistentReminderCommand) Usage() string { return "/addPersistentReminder" }

func (c *AddPersistentReminderCommand) Execute(ctx context.Context, chatID int64, _ []string) error {
	offset := resolveOffsetVerbose(ctx, c.sender, c.timezones, chatID)
	c.conv.SetPending(chatID, &conversation.State{Command: c.Name(), Step: addPersistentStepName, Offset: offset})
	return c.sender.SendText(chatID, "Введите имя напоминания.")
}

func (c *AddPersistentReminderCommand) Resume(ctx context.Context, chatID int64, text string, st *conversation.State) error {
	switch st.Step {
	case addPersistentStepName:
		st.Name = text
		st.Step = addPersistentStepTime
		c.conv.SetPending(chatID, st)
		return c.sender.SendText(chatID,
			"Введите дату и время напоминания в формате:\n"+
				"dd.MM.yyyy HH:mm\n"+
				"Например: 26.11.2025 15:30")

	case addPersistentStepTime:
		remindAt, err := time.Parse(dateTimeLayout, text)
		if err != nil {
			return c.sender.SendText(chatID, "Неверный формат даты. Используйте: dd.MM.yyyy HH:mm\nОперация отменена.")
		}
		if remindAt.Before(localNow(st.Offset)) {
			return c.sender.SendText(chatID, "Нельзя создать напоминание в прошлом. Операция отменена.")
		}
		st.RemindAt = remindAt
		st.Step = addPersistentStepText
		c.conv.SetPending(chatID, st)
		return c.sender.SendText(chatID, "Введите текст напоминания.")

	case addPersistentStepText:
		if err := c.reminders.AddOnce(ctx, chatID, st.Name, text, st.RemindAt, st.Offset, false); err != nil {
			return c.sender.SendText(chatID, "Ошибка при создании напоминания. Попробуйте позже.")
		}
		return c.sender.SendText(chatID, fmt.Sprintf(
			"Напоминание \"%s\" установлено на %s и будет повторяться, пока вы его не удалите!",
			st.Name, st.RemindAt.Format(dateTimeLayout)))
	}
	return nil
}

// Wizard steps of /addDelayedReminder.
const (
	addDelayedStepName = iota
	addDelayedStepDelay
	addDelayedStepText
)

// AddDelayedReminderCommand creates a one-shot reminder that fires
// after a "H:mm" delay from now.
type AddDelayedReminderCommand struct {
	sender    Sender
	conv      *conversation.Registry
	reminders *service.ReminderService
	timezones *service.TimezoneService
}

func (c *AddDelayedReminderCommand) Name() string { return "addDelayedReminder" }
func (c *AddDelayedReminderCommand) Description() string {
	return "Назначить напоминание через указанный интервал"
}
func (c *AddDelayedReminderCommand) Usage() string { return "/addDelayedReminder" }

func (c *AddDelayedReminderCommand) Execute(ctx context.Context, chatID int64, _ []string) error {
	offset := resolveOffsetVerbose(ctx, c.sender, c.timezones, chatID)
	c.conv.SetPending(chatID, &conversation.State{Command: c.Name(), Step: addDelayedStepName, Offset: offset})
	return c.sender.SendText(chatID, "Введите имя напоминания.")
}

func (c *AddDelayedReminderCommand) Resume(ctx context.Context, chatID int64, text string, st *conversation.State) error {
	switch st.Step {
	case addDelayedStepName:
		st.Name = text
		st.Step = addDelayedStepDelay
		c.conv.SetPending(chatID, st)
		return c.sender.SendText(chatID,
			"Время, через которое сработает напоминание, в формате:\n"+
				"HH:mm\n"+
				"Например: 1:30")

	case addDelayedStepDelay:
		hours, minutes, ok := parseDelay(text)
		if !ok {
			return c.sender.SendText(chatID,
				"Неверные значения времени. Часы >= 0, минуты от 0 до 59.\nОперация отменена.")
		}
		st.RemindAt = localNow(st.Offset).
			Add(time.Duration(hours)*time.Hour + time.Duration(minutes)*time.Minute)
		st.Step = addDelayedStepText
		c.conv.SetPending(chatID, st)
		return c.sender.SendText(chatID, "Введите текст напоминания.")

	case addDelayedStepText:
		if err := c.reminders.AddOnce(ctx, chatID, st.Name, text, st.RemindAt, st.Offset, true); err != nil {
			return c.sender.SendText(chatID, "Ошибка при создании напоминания. Попробуйте позже.")
		}
		return c.sender.SendText(chatID, fmt.Sprintf(
			"Напоминание \"%s\" установлено на %s!", st.Name, st.RemindAt.Format(dateTimeLayout)))
	}
	return nil
}

func parseDelay(text string) (hours, minutes int, ok bool) {
	parts := strings.Split(strings.TrimSpace(text), ":")
	if len(parts) != 2 {
		return 0, 0, false
	}
	hours, errH := strconv.Atoi(parts[0])
	minutes, errM := strconv.Atoi(parts[1])
	if errH != nil || errM != nil || hours < 0 || minutes < 0 || minutes > 59 {
		return 0, 0, false
	}
	return hours, minutes, true
}

// Wizard steps of /addRecurringReminder.
const (
	addRecurringStepName = iota
	addRecurringStepText
	addRecurringStepDays
	addRecurringStepTime
)

// AddRecurringReminderCommand creates a weekly reminder through a
// name → text → weekdays → time wizard. Every chosen day fires at the
// same time of day, in the owner's local time.
type AddRecurringReminderCommand struct {
	sender    Sender
	conv      *conversation.Registry
	reminders *service.ReminderService
}

func (c *AddRecurringReminderCommand) Name() string { return "addRecurringReminder" }
func (c *AddRecurringReminderCommand) Description() string {
	return "Добавить повторяющееся напоминание"
}
func (c *AddRecurringReminderCommand) Usage() string { return "/addRecurringReminder" }

func (c *AddRecurringReminderCommand) Execute(_ context.Context, chatID int64, _ []string) error {
	c.conv.SetPending(chatID, &conversation.State{Command: c.Name(), Step: addRecurringStepName})
	return c.sender.SendText(chatID, "Введите имя повторяющегося напоминания.")
}

func (c *AddRecurringReminderCommand) Resume(ctx context.Context, chatID int64, text string, st *conversation.State) error {
	switch st.Step {
	case addRecurringStepName:
		st.Name = text
		st.Step = addRecurringStepText
		c.conv.SetPending(chatID, st)
		return c.sender.SendText(chatID, "Введите текст напоминания.")

	case addRecurringStepText:
		st.Text = text
		st.Step = addRecurringStepDays
		c.conv.SetPending(chatID, st)
		return c.sender.SendText(chatID,
			"Укажите дни недели через запятую.\n"+
				"Пример: пн,вт,чт,вс\n"+
				"Допустимые значения: пн, вт, ср, чт, пт, сб, вс")

	case addRecurringStepDays:
		days := parseDays(text)
		if len(days) == 0 {
			return c.sender.SendText(chatID,
				"Не удалось распознать дни. Используйте: пн, вт, ср, чт, пт, сб, вс\nОперация отменена.")
		}
		st.Days = days
		st.Step = addRecurringStepTime
		c.conv.SetPending(chatID, st)
		return c.sender.SendText(chatID, "Введите время напоминания в формате HH:mm (24-часовой).\nПример: 09:00")

	case addRecurringStepTime:
		clock := strings.TrimSpace(text)
		if !timePattern.MatchString(clock) {
			return c.sender.SendText(chatID, "Неверный формат времени. Используйте: HH:mm (например, 09:00)\nОперация отменена.")
		}
		entries := make([]model.ScheduleEntry, 0, len(st.Days))
		for _, day := range st.Days {
			entries = append(entries, model.ScheduleEntry{Day: day, Time: clock})
		}
		if err := c.reminders.AddRecurring(ctx, chatID, st.Name, st.Text, entries); err != nil {
			return c.sender.SendText(chatID, "Ошибка при создании напоминания. Попробуйте позже.")
		}
		return c.sender.SendText(chatID, fmt.Sprintf(
			"Повторяющееся напоминание \"%s\" создано!\nДни: %s\nВремя: %s",
			st.Name, strings.Join(st.Days, ", "), clock))
	}
	return nil
}
