package handlers

import (
	"context"
	"fmt"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/redteam-region722/TG-bot/internal/bot/session"
	"github.com/redteam-region722/TG-bot/internal/database"
	"github.com/redteam-region722/TG-bot/internal/telegram"
)

// NewStartHandler handles /start: it records the user and greets them
// according to their role. Managers without an active login are asked for
// their password before any menu is shown.
func NewStartHandler(deps HandlerDeps) tgbot.HandlerFunc {
	log := deps.Logger.With("handler", "start")

	return func(ctx context.Context, b *tgbot.Bot, update *models.Update) {
		user := update.Message.From
		chatID := update.Message.Chat.ID

		err := deps.Store.SaveUser(ctx, &database.User{
			UserID:    user.ID,
			Username:  user.Username,
			FirstName: user.FirstName,
			LastName:  user.LastName,
		})
		if err != nil {
			log.ErrorContext(ctx, "Failed to save user", "user_id", user.ID, "error", err)
		}

		switch {
		case user.ID == deps.Config.AdminID:
			sendHTMLMarkup(ctx, deps, b, chatID, fmt.Sprintf(
				"👋 <b>Welcome %s!</b>\n\nRole: <b>Administrator</b>\n\nUse the menu below to manage the bot.",
				user.FirstName), telegram.AdminMenuKeyboard())

		case deps.Config.IsManager(user.ID):
			authed, err := deps.Store.IsManagerAuthenticated(ctx, user.ID)
			if err != nil {
				log.ErrorContext(ctx, "Failed to check manager session", "user_id", user.ID, "error", err)
			}
			if authed {
				sendHTMLMarkup(ctx, deps, b, chatID, fmt.Sprintf(
					"👋 <b>Welcome back %s!</b>\n\nRole: <b>Manager</b>\n\nUse the menu below to manage posts.",
					user.FirstName), telegram.ManagerMenuKeyboard())
				return
			}

			deps.Sessions.Set(user.ID, session.State{Step: session.StepAwaitingPassword})
			sendHTML(ctx, deps, b, chatID, fmt.Sprintf(
				"👋 <b>Welcome %s!</b>\n\n🔐 <b>Manager Authentication</b>\n\nPlease enter your password:\n\nType /cancel to cancel.",
				user.FirstName))
		}
	}
}
