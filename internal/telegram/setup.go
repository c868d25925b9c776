// Package telegram handles Telegram bot construction, handler registration,
// and the keyboard layouts used across the bot's menus.
package telegram

import (
	"fmt"
	"log/slog"

	"github.com/go-telegram/bot"
)

// NewTelegramBot creates the bot client for the given token.
func NewTelegramBot(token string, logger *slog.Logger, opts ...bot.Option) (*bot.Bot, error) {
	if token == "" {
		return nil, fmt.Errorf("telegram bot token cannot be empty")
	}
	if logger == nil {
		logger = slog.Default()
	}
	log := logger.With("component", "telegram_bot")

	b, err := bot.New(token, opts...)
	if err != nil {
		log.Error("Failed to create Telegram bot instance", "error", err)
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	prefix := token
	if len(prefix) > 8 {
		prefix = prefix[:8] + "..."
	}
	log.Info("Telegram bot instance created successfully", "token_prefix", prefix)
	return b, nil
}
