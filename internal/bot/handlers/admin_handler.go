package handlers

import (
	"context"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/redteam-region722/TG-bot/internal/bot/session"
	"github.com/redteam-region722/TG-bot/internal/telegram"
)

// NewAdminHandler handles /admin.
func NewAdminHandler(deps HandlerDeps) tgbot.HandlerFunc {
	return func(ctx context.Context, b *tgbot.Bot, update *models.Update) {
		sendHTMLMarkup(ctx, deps, b, update.Message.Chat.ID,
			"👑 <b>Admin Panel</b>\n\nWelcome to the admin panel!",
			telegram.AdminMenuKeyboard())
	}
}

// NewAdminSettingsHandler handles /setting: the entry point for server
// configuration, manager management, and post withdrawal.
func NewAdminSettingsHandler(deps HandlerDeps) tgbot.HandlerFunc {
	return func(ctx context.Context, b *tgbot.Bot, update *models.Update) {
		sendHTMLMarkup(ctx, deps, b, update.Message.Chat.ID,
			"⚙️ <b>Admin Settings</b>\n\nSelect an option:",
			telegram.AdminSettingsKeyboard())
	}
}

// NewBroadcastHandler handles /broadcast: it prompts for the announcement
// text, which the default handler then delivers to every active user.
func NewBroadcastHandler(deps HandlerDeps) tgbot.HandlerFunc {
	return func(ctx context.Context, b *tgbot.Bot, update *models.Update) {
		deps.Sessions.Update(update.Message.From.ID, func(s *session.State) {
			s.Step = session.StepAwaitingBroadcast
		})

		sendHTML(ctx, deps, b, update.Message.Chat.ID,
			"📢 <b>Broadcast Message</b>\n\nType your message below to send it to all users.\n\nType /cancel to cancel.")
	}
}

// NewCancelHandler handles /cancel: it abandons any flow in progress.
func NewCancelHandler(deps HandlerDeps) tgbot.HandlerFunc {
	return func(ctx context.Context, b *tgbot.Bot, update *models.Update) {
		deps.Sessions.Clear(update.Message.From.ID)

		sendHTMLMarkup(ctx, deps, b, update.Message.Chat.ID,
			"❌ Operation cancelled.", telegram.MainMenuKeyboard())
	}
}
