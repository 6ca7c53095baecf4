// Package main contains the entrypoint for the feedback bot application.
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbot "github.com/go-telegram/bot"

	"github.com/usat/taklifbot/internal/api"
	"github.com/usat/taklifbot/internal/bot"
	"github.com/usat/taklifbot/internal/bot/handlers"
	"github.com/usat/taklifbot/internal/config"
	"github.com/usat/taklifbot/internal/feedback"
	"github.com/usat/taklifbot/internal/logger"
	"github.com/usat/taklifbot/internal/storage"
	"github.com/usat/taklifbot/internal/syncer"
	"github.com/usat/taklifbot/internal/telegram"

	_ "modernc.org/sqlite"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	exitCode := run(ctx)
	stop() // Ensure context cancellation is signaled before exit
	os.Exit(exitCode)
}

// run initializes and starts all application components (config, logger,
// db, backend client, submission service, bot, reconciliation loop),
// handles graceful shutdown, and returns an exit code.
func run(ctx context.Context) int {
	configPath := flag.String("config", "./config.yaml", "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load configuration", "path", *configPath, "error", err)
		return 1
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Format == "json")
	slog.SetDefault(log)
	log.Info("Logger initialized", "level", cfg.Log.Level, "format", cfg.Log.Format)

	db, err := storage.NewDB(cfg.Database.Path)
	if err != nil {
		log.Error("Failed to open database", "path", cfg.Database.Path, "error", err)
		return 1
	}
	defer storage.CloseDB(db)
	store := storage.NewStore(db, log)

	backend := api.NewClient(cfg.API.BaseURL, cfg.API.RequestTimeout, log)
	service := feedback.NewService(log, store, backend, cfg.API)

	hDeps := handlers.HandlerDeps{
		Logger:   log,
		Config:   cfg,
		Store:    store,
		Feedback: service,
		Backend:  backend,
		States:   handlers.NewConversations(),
	}

	botOpts := []tgbot.Option{
		tgbot.WithMiddlewares(logger.Middleware(log)),
		tgbot.WithDefaultHandler(handlers.NewMessageHandler(hDeps)),
	}
	tg, err := telegram.NewTelegramBot(cfg.Telegram.Token, log, botOpts...)
	if err != nil {
		log.Error("Failed to create Telegram bot", "error", err)
		return 1
	}

	routes := handlers.RegisterAllCommands(hDeps)
	if err := telegram.RegisterHandlers(tg, log, routes); err != nil {
		log.Error("Failed to register Telegram handlers", "error", err)
		return 1
	}

	sync, err := syncer.New(log, backend, store, cfg.Sync.Interval)
	if err != nil {
		log.Error("Failed to create reconciliation loop", "error", err)
		return 1
	}

	app := bot.NewBot(log, cfg, db, store, tg, sync)

	log.Info("Starting bot...", "backend", cfg.API.BaseURL)
	runErr := app.Run(ctx)
	log.Info("Bot run loop finished. Initiating shutdown...")

	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		log.Error("Bot stopped due to error", "error", runErr)
		time.Sleep(time.Second)
		return 1
	}

	log.Info("Bot stopped gracefully.")
	time.Sleep(time.Second)
	return 0
}
