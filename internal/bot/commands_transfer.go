package bot

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"reminder-bot/internal/conversation"
	"reminder-bot/internal/model"
	"reminder-bot/internal/service"
)

// reminderDTO is the JSON shape of one reminder in an export dump.
// Properties is carried verbatim so dumps survive round trips without
// a second time conversion.
type reminderDTO struct {
	Name       string          `json:"name"`
	Text       string          `json:"text"`
	Type       string          `json:"type"`
	Properties json.RawMessage `json:"properties"`
}

// ExportReminderCommand dumps all of the user's reminders as JSON.
type ExportReminderCommand struct {
	sender    Sender
	reminders *service.ReminderService
}

func (c *ExportReminderCommand) Name() string        { return "exportReminder" }
func (c *ExportReminderCommand) Description() string { return "Выгрузить все напоминания в JSON" }
func (c *ExportReminderCommand) Usage() string       { return "/exportReminder" }

func (c *ExportReminderCommand) Execute(ctx context.Context, chatID int64, _ []string) error {
	names, err := c.reminders.ListNames(ctx, chatID)
	if err != nil {
		return c.sender.SendText(chatID, "Не удалось загрузить напоминания. Попробуйте позже.")
	}
	if len(names) == 0 {
		return c.sender.SendText(chatID, "У вас нет напоминаний, экспортировать нечего.")
	}

	dump := make([]reminderDTO, 0, len(names))
	for _, name := range names {
		r, err := c.reminders.Get(ctx, chatID, name)
		if err != nil {
			continue
		}
		dump = append(dump, reminderDTO{
			Name:       r.Name,
			Text:       r.Text,
			Type:       string(r.Type),
			Properties: json.RawMessage(r.Properties),
		})
	}

	encoded, err := json.MarshalIndent(dump, "", "  ")
	if err != nil {
		return c.sender.SendText(chatID, "Не удалось сформировать выгрузку.")
	}
	return c.sender.SendText(chatID,
		"Сохраните этот JSON — его можно загрузить через /importReminder:\n```json\n"+string(encoded)+"\n```")
}

// ImportReminderCommand loads reminders from a JSON dump produced by
// /exportReminder. Existing names are reported and skipped, the rest
// are inserted unchanged.
type ImportReminderCommand struct {
	sender    Sender
	conv      *conversation.Registry
	reminders *service.ReminderService
}

func (c *ImportReminderCommand) Name() string        { return "importReminder" }
func (c *ImportReminderCommand) Description() string { return "Загрузить напоминания из JSON" }
func (c *ImportReminderCommand) Usage() string       { return "/importReminder" }

func (c *ImportReminderCommand) Execute(_ context.Context, chatID int64, _ []string) error {
	c.conv.SetPending(chatID, &conversation.State{Command: c.Name()})
	return c.sender.SendText(chatID, "Пришлите JSON, полученный командой /exportReminder.")
}

func (c *ImportReminderCommand) Resume(ctx context.Context, chatID int64, text string, _ *conversation.State) error {
	payload := strings.TrimSpace(text)
	payload = strings.TrimPrefix(payload, "```json")
	payload = strings.TrimPrefix(payload, "```")
	payload = strings.TrimSuffix(payload, "```")

	var dump []reminderDTO
	if err := json.Unmarshal([]byte(payload), &dump); err != nil {
		return c.sender.SendText(chatID, "Не удалось разобрать JSON. Операция отменена.")
	}
	if len(dump) == 0 {
		return c.sender.SendText(chatID, "В выгрузке нет напоминаний. Операция отменена.")
	}

	imported, skipped := 0, 0
	for _, dto := range dump {
		props, typ, err := decodeImportedProperties(dto)
		if err != nil {
			skipped++
			continue
		}
		if err := c.reminders.CreateWithProperties(ctx, chatID, dto.Name, dto.Text, typ, props); err != nil {
			skipped++
			continue
		}
		imported++
	}

	msg := fmt.Sprintf("Импортировано напоминаний: %d.", imported)
	if skipped > 0 {
		msg += fmt.Sprintf(" Пропущено (ошибки или совпадающие имена): %d.", skipped)
	}
	return c.sender.SendText(chatID, msg)
}

// decodeImportedProperties validates one dump entry and returns its
// properties in the typed form used for storage.
func decodeImportedProperties(dto reminderDTO) (any, model.ReminderType, error) {
	if dto.Name == "" {
		return nil, "", fmt.Errorf("empty reminder name")
	}
	switch model.ReminderType(dto.Type) {
	case model.TypeOnce:
		var p model.OnceProperties
		if err := json.Unmarshal(dto.Properties, &p); err != nil {
			return nil, "", err
		}
		if _, err := p.FireAtUTC(); err != nil {
			return nil, "", err
		}
		return p, model.TypeOnce, nil
	case model.TypeRecurring:
		var p model.RecurringProperties
		if err := json.Unmarshal(dto.Properties, &p); err != nil {
			return nil, "", err
		}
		if p.Schedule == nil {
			p.Schedule = []model.ScheduleEntry{}
		}
		for _, entry := range p.Schedule {
			if _, ok := isoDayToRu[entry.Day]; !ok {
				return nil, "", fmt.Errorf("unknown weekday %q", entry.Day)
			}
			if !timePattern.MatchString(entry.Time) {
				return nil, "", fmt.Errorf("bad time %q", entry.Time)
			}
		}
		return p, model.TypeRecurring, nil
	}
	return nil, "", fmt.Errorf("unknown reminder type %q", dto.Type)
}
