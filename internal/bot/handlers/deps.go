package handlers

import (
	"log/slog"

	"github.com/redteam-region722/TG-bot/internal/bot/session"
	"github.com/redteam-region722/TG-bot/internal/config"
	"github.com/redteam-region722/TG-bot/internal/database"
	"github.com/redteam-region722/TG-bot/internal/posting"
)

// HandlerDeps provides dependencies for Telegram command handlers.
type HandlerDeps struct {
	Logger    *slog.Logger
	Config    *config.Config
	Store     database.Store
	Publisher *posting.Publisher
	Sessions  *session.Manager
}
