package telegram

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManagerSelectionKeyboard(t *testing.T) {
	t.Parallel()

	kb := ManagerSelectionKeyboard(3)
	require.Len(t, kb.InlineKeyboard, 4)
	assert.Equal(t, "select_manager_1", kb.InlineKeyboard[0][0].CallbackData)
	assert.Equal(t, "select_manager_3", kb.InlineKeyboard[2][0].CallbackData)
	assert.Equal(t, "cancel_login", kb.InlineKeyboard[3][0].CallbackData)
}

func TestPostServerKeyboard(t *testing.T) {
	t.Parallel()

	kb := PostServerKeyboard([]string{"Alpha", "Beta"})
	require.Len(t, kb.InlineKeyboard, 3)
	assert.Equal(t, "🖥️ Post to Alpha", kb.InlineKeyboard[0][0].Text)
	assert.Equal(t, "post_server_1", kb.InlineKeyboard[0][0].CallbackData)
	assert.Equal(t, "post_server_2", kb.InlineKeyboard[1][0].CallbackData)
	assert.Equal(t, "cancel_post", kb.InlineKeyboard[2][0].CallbackData)
}

func TestServerSelectionKeyboard(t *testing.T) {
	t.Parallel()

	kb := ServerSelectionKeyboard([]string{"Alpha", "Beta", "Gamma"})
	require.Len(t, kb.InlineKeyboard, 4)
	assert.Equal(t, "config_server_2", kb.InlineKeyboard[1][0].CallbackData)
	assert.Equal(t, "back_to_admin_settings", kb.InlineKeyboard[3][0].CallbackData)
}

func TestServerConfigKeyboard(t *testing.T) {
	t.Parallel()

	kb := ServerConfigKeyboard(2)
	require.Len(t, kb.InlineKeyboard, 7)

	var data []string
	for _, row := range kb.InlineKeyboard {
		for _, btn := range row {
			data = append(data, btn.CallbackData)
		}
	}
	assert.Equal(t, []string{
		"edit_footer_2",
		"edit_button1_2",
		"edit_button2_2",
		"edit_timegap_2",
		"toggle_posting_2",
		"view_config_2",
		"back_to_servers",
	}, data)
}

func TestConfirmPostKeyboard(t *testing.T) {
	t.Parallel()

	kb := ConfirmPostKeyboard(3)
	require.Len(t, kb.InlineKeyboard, 1)
	require.Len(t, kb.InlineKeyboard[0], 2)
	assert.Equal(t, "confirm_post_3", kb.InlineKeyboard[0][0].CallbackData)
	assert.Equal(t, "cancel_post_confirm", kb.InlineKeyboard[0][1].CallbackData)
}

func TestReplyKeyboardsResize(t *testing.T) {
	t.Parallel()

	assert.True(t, MainMenuKeyboard().ResizeKeyboard)
	assert.True(t, ManagerMenuKeyboard().ResizeKeyboard)
	assert.True(t, AdminMenuKeyboard().ResizeKeyboard)
}
