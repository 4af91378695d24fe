package bot

import (
	"context"
	"time"

	"go.uber.org/zap"

	"reminder-bot/internal/model"
	"reminder-bot/internal/service"
)

// Notifier runs one delivery pass per scheduler tick: collect the due
// reminders, send each to its owner, and delete fired one-shots that
// ask for it.
type Notifier struct {
	sender    Sender
	reminders *service.ReminderService
	log       *zap.Logger
}

func NewNotifier(sender Sender, reminders *service.ReminderService, log *zap.Logger) *Notifier {
	return &Notifier{sender: sender, reminders: reminders, log: log}
}

// DeliverDue sends every reminder due at nowUTC. A failed send is
// logged and the reminder is left untouched, so a ONCE that could not
// be delivered fires again on the next tick.
func (n *Notifier) DeliverDue(ctx context.Context, nowUTC time.Time) {
	due, err := n.reminders.CollectDue(ctx, nowUTC)
	if err != nil {
		n.log.Error("collect due reminders", zap.Error(err))
		return
	}
	if len(due) == 0 {
		return
	}
	n.log.Info("delivering due reminders", zap.Int("count", len(due)))

	for _, r := range due {
		if err := n.sender.SendText(r.UserID, "Напоминание: "+r.Name+"\n"+r.Text); err != nil {
			n.log.Warn("deliver reminder failed",
				zap.Int64("user", r.UserID), zap.String("name", r.Name), zap.Error(err))
			continue
		}
		n.cleanupAfterSend(ctx, r)
	}
}

func (n *Notifier) cleanupAfterSend(ctx context.Context, r model.Reminder) {
	if r.Type != model.TypeOnce {
		return
	}
	props, err := r.OnceProps()
	if err != nil || !props.DeleteAfterSend {
		return
	}
	if err := n.reminders.Remove(ctx, r.UserID, r.Name); err != nil {
		// left in place; it will fire and retry deletion next tick
		n.log.Warn("delete fired reminder failed",
			zap.Int64("user", r.UserID), zap.String("name", r.Name), zap.Error(err))
	}
}
