package bot

import (
	"context"
	"fmt"
	"strings"

	"reminder-bot/internal/conversation"
	"reminder-bot/internal/model"
	"reminder-bot/internal/service"
)

// RemoveReminderCommand deletes a reminder chosen from a list.
type RemoveReminderCommand struct {
	sender    Sender
	conv      *conversation.Registry
	reminders *service.ReminderService
}

func (c *RemoveReminderCommand) Name() string        { return "removeReminder" }
func (c *RemoveReminderCommand) Description() string { return "Удалить напоминание" }
func (c *RemoveReminderCommand) Usage() string       { return "/removeReminder" }

func (c *RemoveReminderCommand) Execute(ctx context.Context, chatID int64, _ []string) error {
	names, err := c.reminders.ListNames(ctx, chatID)
	if err != nil {
		return c.sender.SendText(chatID, "Не удалось загрузить список напоминаний. Попробуйте позже.")
	}
	if len(names) == 0 {
		return c.sender.SendText(chatID,
			"У вас пока нет напоминаний. Добавьте первое с помощью /addOnceReminder или /addRecurringReminder")
	}

	var b strings.Builder
	b.WriteString("Какое напоминание хотите удалить?\n")
	for i, name := range names {
		b.WriteString(fmt.Sprintf("%d. %s\n", i+1, name))
	}
	c.conv.SetPending(chatID, &conversation.State{Command: c.Name()})
	return c.sender.SendText(chatID, strings.TrimSpace(b.String()))
}

func (c *RemoveReminderCommand) Resume(ctx context.Context, chatID int64, text string, _ *conversation.State) error {
	// Delete of an absent row is a silent no-op in gorm, so check first.
	if _, err := c.reminders.Get(ctx, chatID, text); err != nil {
		return c.sender.SendText(chatID, fmt.Sprintf("Напоминание \"%s\" не найдено.", text))
	}
	if err := c.reminders.Remove(ctx, chatID, text); err != nil {
		return c.sender.SendText(chatID, "Не удалось удалить напоминание. Попробуйте позже.")
	}
	return c.sender.SendText(chatID, fmt.Sprintf("Напоминание \"%s\" удалено!", text))
}

// ShowReminderCommand prints the details of a reminder chosen from a list.
type ShowReminderCommand struct {
	sender    Sender
	conv      *conversation.Registry
	reminders *service.ReminderService
}

func (c *ShowReminderCommand) Name() string        { return "showReminder" }
func (c *ShowReminderCommand) Description() string { return "Показать детали напоминания" }
func (c *ShowReminderCommand) Usage() string       { return "/showReminder" }

func (c *ShowReminderCommand) Execute(ctx context.Context, chatID int64, _ []string) error {
	names, err := c.reminders.ListNames(ctx, chatID)
	if err != nil {
		return c.sender.SendText(chatID, "Не удалось загрузить список напоминаний.")
	}
	if len(names) == 0 {
		return c.sender.SendText(chatID,
			"У вас нет напоминаний. Добавьте первое с помощью /addOnceReminder или /addRecurringReminder")
	}

	var b strings.Builder
	b.WriteString("Какое напоминание показать?\n")
	for i, name := range names {
		b.WriteString(fmt.Sprintf("%d. %s\n", i+1, name))
	}
	c.conv.SetPending(chatID, &conversation.State{Command: c.Name()})
	return c.sender.SendText(chatID, strings.TrimSpace(b.String()))
}

func (c *ShowReminderCommand) Resume(ctx context.Context, chatID int64, text string, _ *conversation.State) error {
	reminder, err := c.reminders.Get(ctx, chatID, text)
	if err != nil {
		return c.sender.SendText(chatID, fmt.Sprintf("Напоминание \"%s\" не найдено.", text))
	}
	return c.sender.SendText(chatID, formatReminderDetails(*reminder))
}

func formatReminderDetails(r model.Reminder) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("\"%s\"\n", r.Name))
	b.WriteString(fmt.Sprintf("Текст: %s\n", r.Text))
	b.WriteString(fmt.Sprintf("Тип: %s\n", formatType(r.Type)))

	switch r.Type {
	case model.TypeOnce:
		props, err := r.OnceProps()
		if err != nil {
			b.WriteString("Ошибка при загрузке свойств")
			break
		}
		fireAt, err := props.FireAtUTC()
		if err != nil {
			b.WriteString("Ошибка при загрузке свойств")
			break
		}
		b.WriteString(fmt.Sprintf("Дата и время: %s (UTC)", fireAt.Format(dateTimeLayout)))
	case model.TypeRecurring:
		props, err := r.RecurringProps()
		if err != nil {
			b.WriteString("Ошибка при загрузке свойств")
			break
		}
		if len(props.Schedule) == 0 {
			b.WriteString("Расписание: (не задано)")
			break
		}
		parts := make([]string, 0, len(props.Schedule))
		for _, entry := range props.Schedule {
			parts = append(parts, fmt.Sprintf("%s в %s", formatDay(entry.Day), entry.Time))
		}
		b.WriteString("Расписание: " + strings.Join(parts, ", "))
	}
	return b.String()
}

func formatType(t model.ReminderType) string {
	switch t {
	case model.TypeOnce:
		return "Однократное"
	case model.TypeRecurring:
		return "Повторяющееся"
	}
	return string(t)
}
