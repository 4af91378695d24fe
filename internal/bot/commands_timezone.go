package bot

import (
	"context"
	"fmt"
	"regexp"
	"strconv"

	"reminder-bot/internal/conversation"
	"reminder-bot/internal/service"
)

var offsetPattern = regexp.MustCompile(`[+-]?\d+`)

// SetOrEditTimezoneCommand stores the user's fixed UTC offset. The
// offset is the single timezone primitive: no DST, no tz database names.
type SetOrEditTimezoneCommand struct {
	sender    Sender
	conv      *conversation.Registry
	timezones *service.TimezoneService
}

func (c *SetOrEditTimezoneCommand) Name() string        { return "setOrEditTimezone" }
func (c *SetOrEditTimezoneCommand) Description() string { return "Установить или изменить часовой пояс" }
func (c *SetOrEditTimezoneCommand) Usage() string       { return "/setOrEditTimezone" }

func (c *SetOrEditTimezoneCommand) Execute(ctx context.Context, chatID int64, _ []string) error {
	if offset, ok := c.timezones.Lookup(ctx, chatID); ok {
		_ = c.sender.SendText(chatID, fmt.Sprintf("Текущий часовой пояс: UTC%+d", offset))
	}
	c.conv.SetPending(chatID, &conversation.State{Command: c.Name()})
	return c.sender.SendText(chatID,
		"Введите смещение от UTC в часах, от -12 до +14.\n"+
			"Например: +3 (Москва), +5 (Екатеринбург), -5 (Нью-Йорк)")
}

func (c *SetOrEditTimezoneCommand) Resume(ctx context.Context, chatID int64, text string, _ *conversation.State) error {
	raw := offsetPattern.FindString(text)
	if raw == "" {
		return c.sender.SendText(chatID, "Не удалось распознать смещение. Операция отменена.")
	}
	offset, err := strconv.Atoi(raw)
	if err != nil {
		return c.sender.SendText(chatID, "Не удалось распознать смещение. Операция отменена.")
	}
	if err := c.timezones.Set(ctx, chatID, offset); err != nil {
		return c.sender.SendText(chatID, "Смещение должно быть от -12 до +14. Операция отменена.")
	}
	return c.sender.SendText(chatID, fmt.Sprintf("Часовой пояс установлен: UTC%+d", offset))
}
