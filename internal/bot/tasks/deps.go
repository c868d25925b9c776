// Package tasks implements scheduled tasks for the channel posting bot.
// It includes task definitions, dependencies, and registration mechanisms.
package tasks

import (
	"log/slog"

	tgbot "github.com/go-telegram/bot"

	"github.com/redteam-region722/TG-bot/internal/config"
	"github.com/redteam-region722/TG-bot/internal/database"
	"github.com/redteam-region722/TG-bot/internal/posting"
)

// TaskDeps contains all dependencies required by scheduled tasks.
type TaskDeps struct {
	Logger    *slog.Logger
	Store     database.Store
	Config    *config.Config
	Publisher *posting.Publisher
	TgBot     *tgbot.Bot
}
