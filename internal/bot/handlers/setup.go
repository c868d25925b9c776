package handlers

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/go-telegram/bot"
)

// applyMiddleware wraps a handler with its middleware chain. The first
// middleware in the slice ends up outermost.
func applyMiddleware(handler bot.HandlerFunc, mw []bot.Middleware) bot.HandlerFunc {
	for i := len(mw) - 1; i >= 0; i-- {
		handler = mw[i](handler)
	}
	return handler
}

// RegisterHandlers attaches every registered handler to the bot, wrapped in
// its middleware chain. Handlers are registered in deterministic name order.
func RegisterHandlers(b *bot.Bot, logger *slog.Logger, registered map[string]RegisteredHandler) error {
	if b == nil {
		return fmt.Errorf("bot instance cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	log := logger.With("component", "handler_registry")

	if len(registered) == 0 {
		log.Warn("No handlers provided for registration.")
		return nil
	}

	names := make([]string, 0, len(registered))
	for name := range registered {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		h := registered[name]
		if h.Handler == nil {
			log.Warn("Skipping registration for nil handler", "name", name)
			continue
		}

		b.RegisterHandler(h.HandlerType, h.Pattern, h.MatchType, applyMiddleware(h.Handler, h.Middleware))
		log.Debug("Registered handler",
			"name", name, "pattern", h.Pattern, "middleware_count", len(h.Middleware))
	}

	log.Info("Registered Telegram handlers successfully", "count", len(registered))
	return nil
}
