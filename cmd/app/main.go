package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"watchpoint/internal/application"
	"watchpoint/internal/delivery/discord"
	"watchpoint/internal/delivery/telegram"
	"watchpoint/internal/repository"
	"watchpoint/pkg/config"
	"watchpoint/pkg/logger"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Config{}
	if err := config.ReadEnvConfig(&cfg); err != nil {
		panic(err)
	}

	log := logger.NewLogger(cfg.LogLevel)

	db, err := repository.NewSQLiteDB(cfg.SQLitePath)
	if err != nil {
		log.Error("failed to init db: %s", err.Error())
		return
	}
	defer db.Close()

	log.Info("Running migrations...")
	if err := repository.RunMigrations(db); err != nil {
		log.Error("failed to run migrations: %s", err.Error())
		return
	}
	log.Info("Migrations applied successfully")

	repos := repository.NewRepository(db)
	services := application.NewService(repos, log)

	var notifier discord.Notifier
	if cfg.TelegramToken != "" && cfg.TelegramChatID != 0 {
		tg, err := telegram.NewNotifier(cfg.TelegramToken, cfg.TelegramChatID, log)
		if err != nil {
			log.Error("failed to init telegram notifier: %s", err.Error())
			return
		}
		notifier = tg
	}

	sched, err := application.NewScheduler(services, repos.Scrim.CloseExpired, log)
	if err != nil {
		log.Error("failed to init scheduler: %s", err.Error())
		return
	}
	if err := sched.Start(); err != nil {
		log.Error("failed to start scheduler: %s", err.Error())
		return
	}

	bot := discord.NewBot(&cfg, services, notifier, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := bot.Init(); err != nil {
		log.Error("failed to init bot: %s", err.Error())
		return
	}

	go func() {
		if err := bot.Run(ctx); err != nil {
			log.Error("bot run error: %s", err.Error())
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	bot.Stop()
	if err := sched.Shutdown(); err != nil {
		log.Error("scheduler shutdown error: %s", err.Error())
	}
	log.Info("Bot Stopped")
}
