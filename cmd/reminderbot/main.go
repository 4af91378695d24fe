package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"reminder-bot/internal/bot"
	"reminder-bot/internal/config"
	"reminder-bot/internal/conversation"
	"reminder-bot/internal/logger"
	"reminder-bot/internal/repository"
	"reminder-bot/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	zl, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer zl.Sync() //nolint:errcheck

	db, err := repository.NewDB(cfg.DatabaseURL)
	if err != nil {
		zl.Fatal("open database", zap.Error(err))
	}
	sqlDB, err := db.DB()
	if err == nil {
		defer sqlDB.Close()
	}

	reminderRepo := repository.NewReminderRepository(db)
	timezoneRepo := repository.NewTimezoneRepository(db)
	noteRepo := repository.NewNoteRepository(db)

	timezoneSvc := service.NewTimezoneService(timezoneRepo, cfg.DefaultOffsetHours())
	reminderSvc := service.NewReminderService(reminderRepo, timezoneSvc, zl)
	noteSvc := service.NewNoteService(noteRepo)

	conv := conversation.NewRegistry()
	telegramBot, err := bot.New(cfg.BotToken, conv, reminderSvc, timezoneSvc, noteSvc, zl)
	if err != nil {
		zl.Fatal("create bot", zap.Error(err))
	}

	notifier := bot.NewNotifier(telegramBot, reminderSvc, zl)

	scheduler := service.NewSchedulerService(time.UTC)
	if _, err := scheduler.ScheduleInterval(cfg.PollInterval, func() {
		tickCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		notifier.DeliverDue(tickCtx, time.Now().UTC())
	}); err != nil {
		zl.Fatal("schedule delivery", zap.Error(err))
	}
	scheduler.Start()
	defer scheduler.Stop()

	zl.Info("reminder bot started", zap.Duration("poll_interval", cfg.PollInterval))
	if err := telegramBot.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		zl.Fatal("bot stopped", zap.Error(err))
	}
	zl.Info("shutdown complete")
}
