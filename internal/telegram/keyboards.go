package telegram

import (
	"fmt"

	"github.com/go-telegram/bot/models"
)

// MainMenuKeyboard is the reply keyboard shown to regular users.
func MainMenuKeyboard() *models.ReplyKeyboardMarkup {
	return &models.ReplyKeyboardMarkup{
		Keyboard: [][]models.KeyboardButton{
			{{Text: "ℹ️ Help"}, {Text: "⚙️ Settings"}},
		},
		ResizeKeyboard: true,
	}
}

// ManagerMenuKeyboard is the reply keyboard shown to authenticated managers.
func ManagerMenuKeyboard() *models.ReplyKeyboardMarkup {
	return &models.ReplyKeyboardMarkup{
		Keyboard: [][]models.KeyboardButton{
			{{Text: "/post"}},
			{{Text: "/pending"}, {Text: "/status"}},
			{{Text: "/logout"}},
		},
		ResizeKeyboard: true,
	}
}

// AdminMenuKeyboard is the reply keyboard shown to the admin.
func AdminMenuKeyboard() *models.ReplyKeyboardMarkup {
	return &models.ReplyKeyboardMarkup{
		Keyboard: [][]models.KeyboardButton{
			{{Text: "/post"}, {Text: "/pending"}},
			{{Text: "/status"}, {Text: "/setting"}},
		},
		ResizeKeyboard: true,
	}
}

// ManagerSelectionKeyboard lets a user pick which manager slot to log in as.
func ManagerSelectionKeyboard(count int) *models.InlineKeyboardMarkup {
	rows := make([][]models.InlineKeyboardButton, 0, count+1)
	for i := 1; i <= count; i++ {
		rows = append(rows, []models.InlineKeyboardButton{
			{Text: fmt.Sprintf("👤 Manager %d", i), CallbackData: fmt.Sprintf("select_manager_%d", i)},
		})
	}
	rows = append(rows, []models.InlineKeyboardButton{
		{Text: "« Cancel", CallbackData: "cancel_login"},
	})
	return &models.InlineKeyboardMarkup{InlineKeyboard: rows}
}

// PostServerKeyboard lets a manager pick the posting target.
func PostServerKeyboard(serverNames []string) *models.InlineKeyboardMarkup {
	rows := make([][]models.InlineKeyboardButton, 0, len(serverNames)+1)
	for i, name := range serverNames {
		rows = append(rows, []models.InlineKeyboardButton{
			{Text: "🖥️ Post to " + name, CallbackData: fmt.Sprintf("post_server_%d", i+1)},
		})
	}
	rows = append(rows, []models.InlineKeyboardButton{
		{Text: "« Cancel", CallbackData: "cancel_post"},
	})
	return &models.InlineKeyboardMarkup{InlineKeyboard: rows}
}

// ServerSelectionKeyboard lets the admin pick a server to configure.
func ServerSelectionKeyboard(serverNames []string) *models.InlineKeyboardMarkup {
	rows := make([][]models.InlineKeyboardButton, 0, len(serverNames)+1)
	for i, name := range serverNames {
		rows = append(rows, []models.InlineKeyboardButton{
			{Text: "🖥️ " + name, CallbackData: fmt.Sprintf("config_server_%d", i+1)},
		})
	}
	rows = append(rows, []models.InlineKeyboardButton{
		{Text: "« Back", CallbackData: "back_to_admin_settings"},
	})
	return &models.InlineKeyboardMarkup{InlineKeyboard: rows}
}

// ServerConfigKeyboard offers the per-server configuration actions.
func ServerConfigKeyboard(serverID int) *models.InlineKeyboardMarkup {
	return &models.InlineKeyboardMarkup{
		InlineKeyboard: [][]models.InlineKeyboardButton{
			{{Text: "📝 Edit Footer Text", CallbackData: fmt.Sprintf("edit_footer_%d", serverID)}},
			{{Text: "🔘 Edit Button 1", CallbackData: fmt.Sprintf("edit_button1_%d", serverID)}},
			{{Text: "🔘 Edit Button 2", CallbackData: fmt.Sprintf("edit_button2_%d", serverID)}},
			{{Text: "⏱️ Edit Time Gap", CallbackData: fmt.Sprintf("edit_timegap_%d", serverID)}},
			{{Text: "🔒 Toggle Post Permission", CallbackData: fmt.Sprintf("toggle_posting_%d", serverID)}},
			{{Text: "👁️ View Current Config", CallbackData: fmt.Sprintf("view_config_%d", serverID)}},
			{{Text: "« Back to Servers", CallbackData: "back_to_servers"}},
		},
	}
}

// AdminSettingsKeyboard is the top-level admin settings menu.
func AdminSettingsKeyboard() *models.InlineKeyboardMarkup {
	return &models.InlineKeyboardMarkup{
		InlineKeyboard: [][]models.InlineKeyboardButton{
			{{Text: "🖥️ Server Configuration", CallbackData: "admin_server_config"}},
			{{Text: "👔 Manager Management", CallbackData: "admin_manager_management"}},
			{{Text: "🗑️ Withdraw Posts", CallbackData: "admin_withdraw_posts"}},
		},
	}
}

// ManagerManagementKeyboard offers the manager administration actions.
func ManagerManagementKeyboard() *models.InlineKeyboardMarkup {
	return &models.InlineKeyboardMarkup{
		InlineKeyboard: [][]models.InlineKeyboardButton{
			{{Text: "➕ Add Manager", CallbackData: "admin_add_manager"}},
			{{Text: "✏️ Edit Manager Password", CallbackData: "admin_edit_manager_password"}},
			{{Text: "🗑️ Remove Manager", CallbackData: "admin_remove_manager"}},
			{{Text: "« Back", CallbackData: "back_to_admin_settings"}},
		},
	}
}

// ConfirmPostKeyboard asks for final confirmation before publishing.
func ConfirmPostKeyboard(serverID int) *models.InlineKeyboardMarkup {
	return &models.InlineKeyboardMarkup{
		InlineKeyboard: [][]models.InlineKeyboardButton{
			{
				{Text: "✅ Confirm & Post", CallbackData: fmt.Sprintf("confirm_post_%d", serverID)},
				{Text: "❌ Cancel", CallbackData: "cancel_post_confirm"},
			},
		},
	}
}
