package bot

import (
	"context"
	"strings"
	"testing"

	"go.uber.org/zap"

	"reminder-bot/internal/conversation"
)

type recordingSender struct {
	messages []string
}

func (s *recordingSender) SendText(_ int64, text string) error {
	s.messages = append(s.messages, text)
	return nil
}

// echoCommand is a wizard that asks one question and echoes the answer.
type echoCommand struct {
	sender   Sender
	conv     *conversation.Registry
	executed [][]string
	resumed  []string
}

func (c *echoCommand) Name() string        { return "echo" }
func (c *echoCommand) Description() string { return "echo" }
func (c *echoCommand) Usage() string       { return "/echo" }

func (c *echoCommand) Execute(_ context.Context, chatID int64, args []string) error {
	c.executed = append(c.executed, args)
	c.conv.SetPending(chatID, &conversation.State{Command: c.Name()})
	return c.sender.SendText(chatID, "say something")
}

func (c *echoCommand) Resume(_ context.Context, chatID int64, text string, _ *conversation.State) error {
	c.resumed = append(c.resumed, text)
	return c.sender.SendText(chatID, text)
}

func newTestDispatcher(t *testing.T) (*Dispatcher, *recordingSender, *echoCommand, *conversation.Registry) {
	t.Helper()
	sender := &recordingSender{}
	conv := conversation.NewRegistry()
	d := NewDispatcher(sender, conv, zap.NewNop())
	cmd := &echoCommand{sender: sender, conv: conv}
	d.Register(cmd)
	return d, sender, cmd, conv
}

func TestDispatchCommandWithArgs(t *testing.T) {
	d, _, cmd, _ := newTestDispatcher(t)

	d.Dispatch(context.Background(), 1, "/echo one two")

	if len(cmd.executed) != 1 {
		t.Fatalf("executed %d times, want 1", len(cmd.executed))
	}
	if got := strings.Join(cmd.executed[0], ","); got != "one,two" {
		t.Fatalf("args = %q", got)
	}
}

func TestDispatchUnknownCommand(t *testing.T) {
	d, sender, _, _ := newTestDispatcher(t)

	d.Dispatch(context.Background(), 1, "/nosuch")

	if len(sender.messages) != 1 || !strings.Contains(sender.messages[0], "Неизвестная команда") {
		t.Fatalf("messages = %v", sender.messages)
	}
}

func TestDispatchIgnoresPlainText(t *testing.T) {
	d, sender, cmd, _ := newTestDispatcher(t)

	d.Dispatch(context.Background(), 1, "hello there")
	d.Dispatch(context.Background(), 1, "   ")

	if len(sender.messages) != 0 || len(cmd.executed) != 0 {
		t.Fatalf("plain text should be dropped: messages=%v executed=%v", sender.messages, cmd.executed)
	}
}

// While a wizard is pending, every message feeds the wizard, including
// one that looks like a command.
func TestDispatchPendingWins(t *testing.T) {
	d, _, cmd, _ := newTestDispatcher(t)
	ctx := context.Background()

	d.Dispatch(ctx, 1, "/echo")
	d.Dispatch(ctx, 1, "/help")

	if len(cmd.resumed) != 1 || cmd.resumed[0] != "/help" {
		t.Fatalf("resumed = %v, want the raw /help text", cmd.resumed)
	}
	if len(cmd.executed) != 1 {
		t.Fatalf("executed %d times, want 1", len(cmd.executed))
	}
}

// A wizard that does not re-arm the registry is over after one answer;
// the next message is routed as a command again.
func TestDispatchWizardEndsAfterConsume(t *testing.T) {
	d, _, cmd, conv := newTestDispatcher(t)
	ctx := context.Background()

	d.Dispatch(ctx, 1, "/echo")
	d.Dispatch(ctx, 1, "first answer")
	d.Dispatch(ctx, 1, "/echo again")

	if len(cmd.resumed) != 1 {
		t.Fatalf("resumed = %v", cmd.resumed)
	}
	if len(cmd.executed) != 2 {
		t.Fatalf("executed %d times, want 2", len(cmd.executed))
	}
	// second /echo re-armed the wizard
	if _, ok := conv.ConsumePending(1); !ok {
		t.Fatal("expected pending state from the second /echo")
	}
}

func TestDispatchPendingIsPerChat(t *testing.T) {
	d, _, cmd, _ := newTestDispatcher(t)
	ctx := context.Background()

	d.Dispatch(ctx, 1, "/echo")
	d.Dispatch(ctx, 2, "some text from another chat")

	if len(cmd.resumed) != 0 {
		t.Fatalf("chat 2 must not resume chat 1's wizard: %v", cmd.resumed)
	}
}

func TestRegisterKeepsOrder(t *testing.T) {
	sender := &recordingSender{}
	conv := conversation.NewRegistry()
	d := NewDispatcher(sender, conv, zap.NewNop())

	d.Register(&AboutCommand{sender: sender})
	d.Register(&AuthorsCommand{sender: sender})
	d.Register(&echoCommand{sender: sender, conv: conv})

	got := d.Commands()
	want := []string{"about", "authors", "echo"}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i, cmd := range got {
		if cmd.Name() != want[i] {
			t.Errorf("commands[%d] = %s, want %s", i, cmd.Name(), want[i])
		}
	}
}
