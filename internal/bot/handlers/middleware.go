// Package handlers contains Telegram bot command and message handlers,
// along with their registration logic and middleware.
package handlers

import (
	"context"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// AuthorizedOnly creates a middleware that rejects users who are neither the
// admin nor a configured manager.
func AuthorizedOnly(deps HandlerDeps) tgbot.Middleware {
	return func(next tgbot.HandlerFunc) tgbot.HandlerFunc {
		return func(ctx context.Context, b *tgbot.Bot, update *models.Update) {
			if update.Message == nil || update.Message.From == nil {
				next(ctx, b, update)
				return
			}

			userID := update.Message.From.ID
			if !deps.Config.IsAuthorized(userID) {
				log := deps.Logger.With("middleware", "AuthorizedOnly")
				log.WarnContext(ctx, "Unauthorized access attempt",
					"user_id", userID, "username", update.Message.From.Username)

				sendHTML(ctx, deps, b, update.Message.Chat.ID,
					"🚫 <b>Access Denied</b>\n\nYou are not authorized to use this bot.")
				return
			}

			next(ctx, b, update)
		}
	}
}

// AdminOnly creates a middleware that checks if the message sender is the
// configured admin user.
func AdminOnly(deps HandlerDeps) tgbot.Middleware {
	return func(next tgbot.HandlerFunc) tgbot.HandlerFunc {
		return func(ctx context.Context, b *tgbot.Bot, update *models.Update) {
			if update.Message == nil || update.Message.From == nil {
				next(ctx, b, update)
				return
			}

			userID := update.Message.From.ID
			if userID != deps.Config.AdminID {
				log := deps.Logger.With("middleware", "AdminOnly")
				log.WarnContext(ctx, "Admin command from non-admin user", "user_id", userID)

				sendHTML(ctx, deps, b, update.Message.Chat.ID, "❌ You don't have admin access.")
				return
			}

			next(ctx, b, update)
		}
	}
}

// ManagerSession creates a middleware that requires an authenticated manager
// login. The admin passes without one.
func ManagerSession(deps HandlerDeps) tgbot.Middleware {
	return func(next tgbot.HandlerFunc) tgbot.HandlerFunc {
		return func(ctx context.Context, b *tgbot.Bot, update *models.Update) {
			if update.Message == nil || update.Message.From == nil {
				next(ctx, b, update)
				return
			}

			userID := update.Message.From.ID
			if userID != deps.Config.AdminID {
				authed, err := deps.Store.IsManagerAuthenticated(ctx, userID)
				if err != nil {
					deps.Logger.ErrorContext(ctx, "Failed to check manager session", "user_id", userID, "error", err)
				}
				if !authed {
					sendHTML(ctx, deps, b, update.Message.Chat.ID,
						"❌ Please login as a manager first. Use /manager")
					return
				}
			}

			next(ctx, b, update)
		}
	}
}
