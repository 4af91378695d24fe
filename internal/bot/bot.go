package bot

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"reminder-bot/internal/conversation"
	"reminder-bot/internal/service"
)

// Bot is the Telegram transport: it polls updates and hands message
// text to the dispatcher. All chat semantics live behind the dispatcher.
type Bot struct {
	api        *tgbotapi.BotAPI
	dispatcher *Dispatcher
	log        *zap.Logger
}

func New(token string, conv *conversation.Registry,
	reminders *service.ReminderService, timezones *service.TimezoneService,
	notes *service.NoteService, log *zap.Logger) (*Bot, error) {

	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create bot api: %w", err)
	}
	log.Info("bot authorized", zap.String("account", api.Self.UserName))

	b := &Bot{api: api, log: log}
	b.dispatcher = NewDispatcher(b, conv, log)
	RegisterCommands(b.dispatcher, b, conv, reminders, timezones, notes)
	return b, nil
}

// SendText implements Sender.
func (b *Bot) SendText(chatID int64, text string) error {
	if _, err := b.api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		return fmt.Errorf("send to %d: %w", chatID, err)
	}
	return nil
}

// Start polls updates until ctx is cancelled. Only text messages from
// private chats are handled; everything else is dropped.
func (b *Bot) Start(ctx context.Context) error {
	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 60
	updates := b.api.GetUpdatesChan(updateConfig)

	b.log.Info("start polling updates")

	go func() {
		<-ctx.Done()
		b.api.StopReceivingUpdates()
	}()

	for update := range updates {
		msg := update.Message
		if msg == nil || msg.Chat == nil || !msg.Chat.IsPrivate() || msg.Text == "" {
			continue
		}
		b.dispatcher.Dispatch(ctx, msg.Chat.ID, msg.Text)
	}

	return nil
}
