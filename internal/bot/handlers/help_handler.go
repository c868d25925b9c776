package handlers

import (
	"context"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// NewHelpHandler handles /help with role-specific command lists.
func NewHelpHandler(deps HandlerDeps) tgbot.HandlerFunc {
	return func(ctx context.Context, b *tgbot.Bot, update *models.Update) {
		user := update.Message.From

		var helpText string
		switch {
		case user.ID == deps.Config.AdminID:
			helpText = "<b>📖 Admin Help & Commands</b>\n\n" +
				"<b>Admin Commands:</b>\n" +
				"/start - Start the bot\n" +
				"/admin - Access admin panel\n" +
				"/setting - Configure servers and managers\n" +
				"/broadcast - Send message to all users\n" +
				"/stats - View statistics\n" +
				"/help - Show this help message\n\n" +
				"<b>Manager Commands:</b>\n" +
				"/manager - Access manager panel\n" +
				"/logout - Logout from manager mode\n\n" +
				"You have full access to all features."
		case deps.Config.IsManager(user.ID):
			helpText = "<b>📖 Manager Help & Commands</b>\n\n" +
				"<b>Manager Commands:</b>\n" +
				"/start - Start the bot\n" +
				"/manager - Login as manager\n" +
				"/logout - Logout from manager mode\n" +
				"/post - Post to a server channel\n" +
				"/pending - View scheduled posts\n" +
				"/status - View statistics\n" +
				"/help - Show this help message\n\n" +
				"Use the manager panel to manage the system."
		default:
			helpText = "<b>📖 Help & Commands</b>\n\n" +
				"<b>User Commands:</b>\n" +
				"/start - Start the bot\n" +
				"/settings - Manage your settings\n" +
				"/help - Show this help message\n\n" +
				"Need more help? Contact the administrator."
		}

		sendHTML(ctx, deps, b, update.Message.Chat.ID, helpText)
	}
}

// NewSettingsHandler handles /settings for regular users.
func NewSettingsHandler(deps HandlerDeps) tgbot.HandlerFunc {
	return func(ctx context.Context, b *tgbot.Bot, update *models.Update) {
		sendHTML(ctx, deps, b, update.Message.Chat.ID,
			"⚙️ <b>Settings</b>\n\nNo settings available at the moment.")
	}
}
