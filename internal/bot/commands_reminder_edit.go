package bot

import (
	"context"
	"fmt"
	"strings"
	"time"

	"reminder-bot/internal/conversation"
	"reminder-bot/internal/model"
	"reminder-bot/internal/service"
)

// keepMarker leaves a field unchanged during an edit wizard.
const keepMarker = "-"

func promptPickOfType(ctx context.Context, sender Sender, reminders *service.ReminderService,
	chatID int64, typ model.ReminderType, question, emptyMsg string) ([]string, error) {

	names, err := reminders.NamesOfType(ctx, chatID, typ)
	if err != nil {
		return nil, sender.SendText(chatID, "Не удалось загрузить список напоминаний. Попробуйте позже.")
	}
	if len(names) == 0 {
		return nil, sender.SendText(chatID, emptyMsg)
	}
	var b strings.Builder
	b.WriteString(question + "\n")
	for i, name := range names {
		b.WriteString(fmt.Sprintf("%d. %s\n", i+1, name))
	}
	return names, sender.SendText(chatID, strings.TrimSpace(b.String()))
}

// Wizard steps shared by /editOnceReminder and /editDelayedReminder.
const (
	editOnceStepPick = iota
	editOnceStepName
	editOnceStepTime
	editOnceStepText
)

// EditOnceReminderCommand rewrites a one-shot reminder. Every field can
// be kept by answering "-"; the record is reinserted under the (possibly
// new) name with its group, enabled and delete-after-send flags intact.
type EditOnceReminderCommand struct {
	sender    Sender
	conv      *conversation.Registry
	reminders *service.ReminderService
	timezones *service.TimezoneService
}

func (c *EditOnceReminderCommand) Name() string        { return "editOnceReminder" }
func (c *EditOnceReminderCommand) Description() string { return "Изменить однократное напоминание" }
func (c *EditOnceReminderCommand) Usage() string       { return "/editOnceReminder" }

func (c *EditOnceReminderCommand) Execute(ctx context.Context, chatID int64, _ []string) error {
	names, err := promptPickOfType(ctx, c.sender, c.reminders, chatID, model.TypeOnce,
		"Какое напоминание хотите изменить?",
		"У вас нет однократных напоминаний. Добавьте первое с помощью /addOnceReminder")
	if err != nil || len(names) == 0 {
		return err
	}
	offset := resolveOffsetVerbose(ctx, c.sender, c.timezones, chatID)
	c.conv.SetPending(chatID, &conversation.State{Command: c.Name(), Step: editOnceStepPick, Offset: offset})
	return nil
}

func (c *EditOnceReminderCommand) Resume(ctx context.Context, chatID int64, text string, st *conversation.State) error {
	switch st.Step {
	case editOnceStepPick:
		r, err := c.reminders.Get(ctx, chatID, text)
		if err != nil || r.Type != model.TypeOnce {
			return c.sender.SendText(chatID, fmt.Sprintf("Напоминание \"%s\" не найдено. Операция отменена.", text))
		}
		st.Name = text
		st.Step = editOnceStepName
		c.conv.SetPending(chatID, st)
		return c.sender.SendText(chatID, "Введите новое имя напоминания или \"-\", чтобы оставить прежнее.")

	case editOnceStepName:
		st.NewName = text
		if text == keepMarker {
			st.NewName = st.Name
		}
		st.Step = editOnceStepTime
		c.conv.SetPending(chatID, st)
		return c.sender.SendText(chatID,
			"Введите новые дату и время в формате dd.MM.yyyy HH:mm или \"-\", чтобы оставить прежние.")

	case editOnceStepTime:
		if text != keepMarker {
			remindAt, err := time.Parse(dateTimeLayout, text)
			if err != nil {
				return c.sender.SendText(chatID, "Неверный формат даты. Используйте: dd.MM.yyyy HH:mm\nОперация отменена.")
			}
			if remindAt.Before(localNow(st.Offset)) {
				return c.sender.SendText(chatID, "Нельзя перенести напоминание в прошлое. Операция отменена.")
			}
			st.RemindAt = remindAt
		}
		st.Step = editOnceStepText
		c.conv.SetPending(chatID, st)
		return c.sender.SendText(chatID, "Введите новый текст напоминания или \"-\", чтобы оставить прежний.")

	case editOnceStepText:
		return applyOnceEdit(ctx, c.sender, c.reminders, chatID, st, text)
	}
	return nil
}

// applyOnceEdit reinserts a ONCE reminder with the accumulated changes.
// A zero st.RemindAt keeps the stored fire time.
func applyOnceEdit(ctx context.Context, sender Sender, reminders *service.ReminderService,
	chatID int64, st *conversation.State, newText string) error {

	r, err := reminders.Get(ctx, chatID, st.Name)
	if err != nil {
		return sender.SendText(chatID, fmt.Sprintf("Напоминание \"%s\" не найдено. Операция отменена.", st.Name))
	}
	props, err := r.OnceProps()
	if err != nil {
		return sender.SendText(chatID, "Не удалось прочитать свойства напоминания. Операция отменена.")
	}

	if !st.RemindAt.IsZero() {
		utc := st.RemindAt.Add(-time.Duration(st.Offset) * time.Hour)
		props.RemindAt = utc.Format(model.OnceTimeLayout)
	}
	text := r.Text
	if newText != keepMarker {
		text = newText
	}

	if err := reminders.Replace(ctx, chatID, st.Name, st.NewName, text, model.TypeOnce, props); err != nil {
		return sender.SendText(chatID, "Ошибка при изменении напоминания. Попробуйте позже.")
	}
	return sender.SendText(chatID, fmt.Sprintf("Напоминание \"%s\" изменено!", st.NewName))
}

// Wizard steps of /editDelayedReminder.
const (
	editDelayedStepPick = iota
	editDelayedStepName
	editDelayedStepDelay
	editDelayedStepText
)

// EditDelayedReminderCommand rewrites a one-shot reminder, taking the
// new fire time as a "H:mm" delay from now instead of an absolute date.
type EditDelayedReminderCommand struct {
	sender    Sender
	conv      *conversation.Registry
	reminders *service.ReminderService
	timezones *service.TimezoneService
}

func (c *EditDelayedReminderCommand) Name() string { return "editDelayedReminder" }
func (c *EditDelayedReminderCommand) Description() string {
	return "Перенести напоминание на интервал от текущего момента"
}
func (c *EditDelayedReminderCommand) Usage() string { return "/editDelayedReminder" }

func (c *EditDelayedReminderCommand) Execute(ctx context.Context, chatID int64, _ []string) error {
	names, err := promptPickOfType(ctx, c.sender, c.reminders, chatID, model.TypeOnce,
		"Какое напоминание хотите изменить?",
		"У вас нет однократных напоминаний. Добавьте первое с помощью /addDelayedReminder")
	if err != nil || len(names) == 0 {
		return err
	}
	offset := resolveOffsetVerbose(ctx, c.sender, c.timezones, chatID)
	c.conv.SetPending(chatID, &conversation.State{Command: c.Name(), Step: editDelayedStepPick, Offset: offset})
	return nil
}

func (c *EditDelayedReminderCommand) Resume(ctx context.Context, chatID int64, text string, st *conversation.State) error {
	switch st.Step {
	case editDelayedStepPick:
		r, err := c.reminders.Get(ctx, chatID, text)
		if err != nil || r.Type != model.TypeOnce {
			return c.sender.SendText(chatID, fmt.Sprintf("Напоминание \"%s\" не найдено. Операция отменена.", text))
		}
		st.Name = text
		st.Step = editDelayedStepName
		c.conv.SetPending(chatID, st)
		return c.sender.SendText(chatID, "Введите новое имя напоминания или \"-\", чтобы оставить прежнее.")

	case editDelayedStepName:
		st.NewName = text
		if text == keepMarker {
			st.NewName = st.Name
		}
		st.Step = editDelayedStepDelay
		c.conv.SetPending(chatID, st)
		return c.sender.SendText(chatID,
			"Время, через которое сработает напоминание, в формате HH:mm, или \"-\", чтобы оставить прежнее.")

	case editDelayedStepDelay:
		if text != keepMarker {
			hours, minutes, ok := parseDelay(text)
			if !ok {
				return c.sender.SendText(chatID,
					"Неверные значения времени. Часы >= 0, минуты от 0 до 59.\nОперация отменена.")
			}
			st.RemindAt = localNow(st.Offset).
				Add(time.Duration(hours)*time.Hour + time.Duration(minutes)*time.Minute)
		}
		st.Step = editDelayedStepText
		c.conv.SetPending(chatID, st)
		return c.sender.SendText(chatID, "Введите новый текст напоминания или \"-\", чтобы оставить прежний.")

	case editDelayedStepText:
		return applyOnceEdit(ctx, c.sender, c.reminders, chatID, st, text)
	}
	return nil
}

// Wizard steps of /editRecurringReminder.
const (
	editRecurringStepPick = iota
	editRecurringStepName
	editRecurringStepText
	editRecurringStepDays
	editRecurringStepTime
)

// EditRecurringReminderCommand rewrites a weekly reminder. Days and time
// are answered separately; a single time applies to every day, a
// comma-separated list must match the days one-to-one.
type EditRecurringReminderCommand struct {
	sender    Sender
	conv      *conversation.Registry
	reminders *service.ReminderService
}

func (c *EditRecurringReminderCommand) Name() string { return "editRecurringReminder" }
func (c *EditRecurringReminderCommand) Description() string {
	return "Изменить повторяющееся напоминание"
}
func (c *EditRecurringReminderCommand) Usage() string { return "/editRecurringReminder" }

func (c *EditRecurringReminderCommand) Execute(ctx context.Context, chatID int64, _ []string) error {
	names, err := promptPickOfType(ctx, c.sender, c.reminders, chatID, model.TypeRecurring,
		"Какое напоминание хотите изменить?",
		"У вас нет повторяющихся напоминаний. Добавьте первое с помощью /addRecurringReminder")
	if err != nil || len(names) == 0 {
		return err
	}
	c.conv.SetPending(chatID, &conversation.State{Command: c.Name(), Step: editRecurringStepPick})
	return nil
}

func (c *EditRecurringReminderCommand) Resume(ctx context.Context, chatID int64, text string, st *conversation.State) error {
	switch st.Step {
	case editRecurringStepPick:
		r, err := c.reminders.Get(ctx, chatID, text)
		if err != nil || r.Type != model.TypeRecurring {
			return c.sender.SendText(chatID, fmt.Sprintf("Напоминание \"%s\" не найдено. Операция отменена.", text))
		}
		st.Name = text
		st.Step = editRecurringStepName
		c.conv.SetPending(chatID, st)
		return c.sender.SendText(chatID, "Введите новое имя напоминания или \"-\", чтобы оставить прежнее.")

	case editRecurringStepName:
		st.NewName = text
		if text == keepMarker {
			st.NewName = st.Name
		}
		st.Step = editRecurringStepText
		c.conv.SetPending(chatID, st)
		return c.sender.SendText(chatID, "Введите новый текст напоминания или \"-\", чтобы оставить прежний.")

	case editRecurringStepText:
		st.Text = text
		st.Step = editRecurringStepDays
		c.conv.SetPending(chatID, st)
		return c.sender.SendText(chatID,
			"Укажите новые дни недели через запятую (пн, вт, ср, чт, пт, сб, вс) или \"-\", чтобы оставить прежние.")

	case editRecurringStepDays:
		if text != keepMarker {
			days := parseDays(text)
			if len(days) == 0 {
				return c.sender.SendText(chatID,
					"Не удалось распознать дни. Используйте: пн, вт, ср, чт, пт, сб, вс\nОперация отменена.")
			}
			st.Days = days
		}
		st.Step = editRecurringStepTime
		c.conv.SetPending(chatID, st)
		return c.sender.SendText(chatID,
			"Введите время в формате HH:mm (одно на все дни или список через запятую по числу дней),\n"+
				"или \"-\", чтобы оставить прежнее.")

	case editRecurringStepTime:
		return c.apply(ctx, chatID, st, strings.TrimSpace(text))
	}
	return nil
}

func (c *EditRecurringReminderCommand) apply(ctx context.Context, chatID int64, st *conversation.State, timeInput string) error {
	r, err := c.reminders.Get(ctx, chatID, st.Name)
	if err != nil {
		return c.sender.SendText(chatID, fmt.Sprintf("Напоминание \"%s\" не найдено. Операция отменена.", st.Name))
	}
	props, err := r.RecurringProps()
	if err != nil {
		return c.sender.SendText(chatID, "Не удалось прочитать свойства напоминания. Операция отменена.")
	}

	days := st.Days
	if days == nil {
		days = make([]string, 0, len(props.Schedule))
		for _, entry := range props.Schedule {
			days = append(days, entry.Day)
		}
	}

	switch {
	case timeInput == keepMarker && st.Days == nil:
		// schedule untouched
	case timeInput == keepMarker:
		return c.sender.SendText(chatID,
			"Для новых дней нужно указать время (HH:mm). Операция отменена.")
	default:
		times := parseTimes(timeInput)
		if len(times) == 0 || (len(times) != 1 && len(times) != len(days)) {
			return c.sender.SendText(chatID,
				"Неверное время. Укажите одно значение HH:mm или столько же значений, сколько дней.\nОперация отменена.")
		}
		schedule := make([]model.ScheduleEntry, 0, len(days))
		for i, day := range days {
			clock := times[0]
			if len(times) > 1 {
				clock = times[i]
			}
			schedule = append(schedule, model.ScheduleEntry{Day: day, Time: clock})
		}
		props.Schedule = schedule
	}

	text := r.Text
	if st.Text != keepMarker {
		text = st.Text
	}

	if err := c.reminders.Replace(ctx, chatID, st.Name, st.NewName, text, model.TypeRecurring, props); err != nil {
		return c.sender.SendText(chatID, "Ошибка при изменении напоминания. Попробуйте позже.")
	}
	return c.sender.SendText(chatID, fmt.Sprintf("Напоминание \"%s\" изменено!", st.NewName))
}

// parseTimes splits "09:00, 18:30" into validated "HH:mm" values; any
// malformed entry makes the whole input invalid.
func parseTimes(input string) []string {
	parts := daySplitter.Split(strings.TrimSpace(input), -1)
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		clock := strings.TrimSpace(part)
		if clock == "" {
			continue
		}
		if !timePattern.MatchString(clock) {
			return nil
		}
		out = append(out, clock)
	}
	return out
}
