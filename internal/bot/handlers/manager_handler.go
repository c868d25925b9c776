package handlers

import (
	"context"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/redteam-region722/TG-bot/internal/telegram"
)

// NewManagerLoginHandler handles /manager: it shows the manager slot
// selection for managers who are not yet logged in.
func NewManagerLoginHandler(deps HandlerDeps) tgbot.HandlerFunc {
	log := deps.Logger.With("handler", "manager_login")

	return func(ctx context.Context, b *tgbot.Bot, update *models.Update) {
		user := update.Message.From
		chatID := update.Message.Chat.ID

		if !deps.Config.IsManager(user.ID) && user.ID != deps.Config.AdminID {
			sendHTML(ctx, deps, b, chatID, "❌ You don't have manager access.")
			return
		}

		authed, err := deps.Store.IsManagerAuthenticated(ctx, user.ID)
		if err != nil {
			log.ErrorContext(ctx, "Failed to check manager session", "user_id", user.ID, "error", err)
		}
		if authed {
			sendHTMLMarkup(ctx, deps, b, chatID,
				"✅ You're already logged in as a manager!", telegram.ManagerMenuKeyboard())
			return
		}

		sendHTMLMarkup(ctx, deps, b, chatID,
			"🔐 <b>Manager Login</b>\n\nSelect your manager account:",
			telegram.ManagerSelectionKeyboard(len(deps.Config.ManagerIDs)))
	}
}

// NewLogoutHandler handles /logout.
func NewLogoutHandler(deps HandlerDeps) tgbot.HandlerFunc {
	log := deps.Logger.With("handler", "logout")

	return func(ctx context.Context, b *tgbot.Bot, update *models.Update) {
		user := update.Message.From

		if err := deps.Store.LogoutManager(ctx, user.ID); err != nil {
			log.ErrorContext(ctx, "Failed to log out manager", "user_id", user.ID, "error", err)
		}
		deps.Sessions.Clear(user.ID)

		sendHTMLMarkup(ctx, deps, b, update.Message.Chat.ID,
			"👋 <b>Logged Out</b>\n\nYou've been logged out from manager mode.",
			telegram.MainMenuKeyboard())
	}
}
