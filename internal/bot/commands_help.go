package bot

import (
	"context"
	"fmt"
	"strings"
)

// AboutCommand describes the bot.
type AboutCommand struct {
	sender Sender
}

func (c *AboutCommand) Name() string        { return "about" }
func (c *AboutCommand) Description() string { return "Информация о боте" }
func (c *AboutCommand) Usage() string       { return "/about" }

func (c *AboutCommand) Execute(_ context.Context, chatID int64, _ []string) error {
	return c.sender.SendText(chatID,
		"Бот-напоминалка: однократные и повторяющиеся напоминания, заметки и группы.\n"+
			"Список команд: /help")
}

// AuthorsCommand names the maintainers.
type AuthorsCommand struct {
	sender Sender
}

func (c *AuthorsCommand) Name() string        { return "authors" }
func (c *AuthorsCommand) Description() string { return "Авторы бота" }
func (c *AuthorsCommand) Usage() string       { return "/authors" }

func (c *AuthorsCommand) Execute(_ context.Context, chatID int64, _ []string) error {
	return c.sender.SendText(chatID, "Разработано командой Unterrichtung.")
}

// HelpCommand lists every command known at its registration time.
// It must be registered after all others.
type HelpCommand struct {
	sender   Sender
	commands []Command
}

func NewHelpCommand(sender Sender, commands []Command) *HelpCommand {
	return &HelpCommand{sender: sender, commands: commands}
}

func (c *HelpCommand) Name() string        { return "help" }
func (c *HelpCommand) Description() string { return "Список всех команд" }
func (c *HelpCommand) Usage() string       { return "/help" }

func (c *HelpCommand) Execute(_ context.Context, chatID int64, _ []string) error {
	var b strings.Builder
	b.WriteString("Доступные команды:\n")
	for _, cmd := range c.commands {
		b.WriteString(fmt.Sprintf("%s — %s\n", cmd.Usage(), cmd.Description()))
	}
	b.WriteString("/help — Список всех команд")
	return c.sender.SendText(chatID, b.String())
}
