// Package main contains the entrypoint for the channel posting bot.
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

	"github.com/redteam-region722/TG-bot/internal/bot"
	"github.com/redteam-region722/TG-bot/internal/bot/handlers"
	"github.com/redteam-region722/TG-bot/internal/bot/session"
	"github.com/redteam-region722/TG-bot/internal/bot/tasks"
	"github.com/redteam-region722/TG-bot/internal/config"
	"github.com/redteam-region722/TG-bot/internal/database"
	"github.com/redteam-region722/TG-bot/internal/logger"
	"github.com/redteam-region722/TG-bot/internal/posting"
	"github.com/redteam-region722/TG-bot/internal/telegram"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	exitCode := run(ctx)
	stop() // Ensure context cancellation is signaled before exit
	os.Exit(exitCode)
}

// run initializes and starts all application components (config, logger, db, bot, scheduler),
// handles graceful shutdown, and returns an exit code (0 for success, 1 for failure).
func run(ctx context.Context) int {
	configPath := flag.String("config", "./config.yaml", "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load configuration", "path", *configPath, "error", err)
		return 1
	}

	log := logger.NewLogger(cfg.Logger.Level, cfg.Logger.JSON)
	slog.SetDefault(log)
	log.Info("Logger initialized", "level", cfg.Logger.Level, "json", cfg.Logger.JSON)

	client, err := database.NewDB(ctx, cfg.MongoURI)
	if err != nil {
		log.Error("Failed to connect to MongoDB", "error", err)
		return 1
	}
	defer database.CloseDB(client) // Ensure DB is closed on function exit

	db := client.Database(cfg.DatabaseName)
	if err := database.EnsureIndexes(ctx, db); err != nil {
		log.Error("Failed to ensure database indexes", "error", err)
		return 1
	}
	store := database.NewStore(db, log)

	if err := seedManagers(ctx, store, cfg); err != nil {
		log.Error("Failed to seed managers from configuration", "error", err)
		return 1
	}
	log.Info("Managers synced from configuration", "count", len(cfg.ManagerIDs))

	sessions := session.NewManager()

	hDeps := handlers.HandlerDeps{
		Logger:   log,
		Config:   cfg,
		Store:    store,
		Sessions: sessions,
	}

	// The catch-all message handler drives the stateful dialog flows; it
	// never publishes to channels, so it does not need the publisher that
	// can only be built once the bot client exists.
	botOpts := []tgbot.Option{
		tgbot.WithMiddlewares(logger.Middleware(log)),
		tgbot.WithDefaultHandler(handlers.NewDefaultHandler(hDeps)),
	}
	tg, err := telegram.NewTelegramBot(cfg.BotToken, log, botOpts...)
	if err != nil {
		log.Error("Failed to create Telegram bot", "error", err)
		return 1
	}

	me, err := tg.GetMe(ctx)
	if err != nil {
		log.Error("Failed to get bot info", "error", err)
		return 1
	}
	log.Info("Retrieved bot info", "bot_id", me.ID, "bot_username", me.Username)

	hDeps.Publisher = posting.NewPublisher(tg, store, cfg.ChannelIDs, log)

	cmdHandlers := handlers.RegisterAllCommands(hDeps)
	if err := handlers.RegisterHandlers(tg, log, cmdHandlers); err != nil {
		log.Error("Failed to register Telegram handlers", "error", err)
		return 1
	}

	tDeps := tasks.TaskDeps{
		Logger:    log,
		Store:     store,
		Config:    cfg,
		Publisher: hDeps.Publisher,
		TgBot:     tg,
	}
	sched, err := bot.NewScheduler(log, &cfg.Scheduler, tasks.RegisterAllTasks(tDeps))
	if err != nil {
		log.Error("Failed to create scheduler", "error", err)
		return 1
	}

	app := bot.NewBot(log, cfg, store, tg, sched)

	log.Info("Starting bot...")
	runErr := app.Run(ctx) // Run blocks until context is cancelled or an error occurs
	log.Info("Bot run loop finished. Initiating shutdown...")

	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		log.Error("Bot stopped due to error", "error", runErr)
		// Allow logs to flush before exiting on error
		time.Sleep(time.Second)
		return 1
	}

	log.Info("Bot stopped gracefully.")
	return 0
}

// seedManagers makes sure every configured manager exists in the database,
// updating stored passwords when the configuration changed. Existing
// authentication state is preserved across restarts.
func seedManagers(ctx context.Context, store database.Store, cfg *config.Config) error {
	for idx, userID := range cfg.ManagerIDs {
		password := cfg.ManagerPassword(idx)

		existing, err := store.GetManager(ctx, userID)
		if err != nil {
			return err
		}
		if existing == nil {
			if err := store.SaveManager(ctx, &database.Manager{UserID: userID, Password: password}); err != nil {
				return err
			}
			continue
		}
		if existing.Password != password {
			if err := store.UpdateManagerPassword(ctx, userID, password); err != nil {
				return err
			}
		}
	}
	return nil
}
