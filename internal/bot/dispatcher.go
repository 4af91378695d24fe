package bot

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"reminder-bot/internal/conversation"
)

const commandPrefix = "/"

// Sender delivers a plain text message to a chat.
type Sender interface {
	SendText(chatID int64, text string) error
}

// Command is a registered bot command.
type Command interface {
	Name() string
	Description() string
	Usage() string
	Execute(ctx context.Context, chatID int64, args []string) error
}

// Resumer is implemented by wizard commands that collect input across
// several messages. Resume receives the full trimmed text of the next
// message together with the state accumulated so far.
type Resumer interface {
	Resume(ctx context.Context, chatID int64, text string, st *conversation.State) error
}

// Dispatcher routes inbound text either to a pending wizard step or to
// a registered command. The command table is built once at startup via
// ordered Register calls.
type Dispatcher struct {
	sender   Sender
	conv     *conversation.Registry
	commands map[string]Command
	order    []string
	log      *zap.Logger
}

func NewDispatcher(sender Sender, conv *conversation.Registry, log *zap.Logger) *Dispatcher {
	return &Dispatcher{
		sender:   sender,
		conv:     conv,
		commands: make(map[string]Command),
		log:      log,
	}
}

func (d *Dispatcher) Register(cmd Command) {
	if _, dup := d.commands[cmd.Name()]; dup {
		d.log.Fatal("duplicate command registration", zap.String("name", cmd.Name()))
	}
	d.commands[cmd.Name()] = cmd
	d.order = append(d.order, cmd.Name())
}

// Commands returns the registered commands in registration order.
func (d *Dispatcher) Commands() []Command {
	out := make([]Command, 0, len(d.order))
	for _, name := range d.order {
		out = append(out, d.commands[name])
	}
	return out
}

// Dispatch handles one inbound message.
//
// A pending wizard always wins: the text is fed to the wizard step and
// is never also interpreted as a command, even if it starts with "/".
// Without a pending wizard, "/"-prefixed text is parsed into a command
// name and whitespace-separated arguments (case-sensitive exact match);
// anything else is ignored.
func (d *Dispatcher) Dispatch(ctx context.Context, chatID int64, text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}

	if st, ok := d.conv.ConsumePending(chatID); ok {
		cmd := d.commands[st.Command]
		wizard, isWizard := cmd.(Resumer)
		if !isWizard {
			d.log.Error("pending state owned by unknown wizard",
				zap.Int64("chat", chatID), zap.String("command", st.Command))
			return
		}
		if err := wizard.Resume(ctx, chatID, text, st); err != nil {
			d.log.Error("wizard step failed",
				zap.Int64("chat", chatID), zap.String("command", st.Command), zap.Error(err))
		}
		return
	}

	if !strings.HasPrefix(text, commandPrefix) {
		return
	}

	fields := strings.Fields(strings.TrimPrefix(text, commandPrefix))
	if len(fields) == 0 {
		return
	}
	name, args := fields[0], fields[1:]

	cmd, ok := d.commands[name]
	if !ok {
		if err := d.sender.SendText(chatID, "Неизвестная команда. Введите /help для списка."); err != nil {
			d.log.Warn("send failed", zap.Int64("chat", chatID), zap.Error(err))
		}
		return
	}

	d.log.Info("command", zap.Int64("chat", chatID), zap.String("name", name))
	if err := cmd.Execute(ctx, chatID, args); err != nil {
		d.log.Error("command failed",
			zap.Int64("chat", chatID), zap.String("name", name), zap.Error(err))
	}
}
