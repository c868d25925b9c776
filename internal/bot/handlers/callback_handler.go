package handlers

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/redteam-region722/TG-bot/internal/bot/session"
	"github.com/redteam-region722/TG-bot/internal/database"
	"github.com/redteam-region722/TG-bot/internal/posting"
	"github.com/redteam-region722/TG-bot/internal/telegram"
	"github.com/redteam-region722/TG-bot/internal/timeutil"
)

// Admin manager-management actions carried in session state.
const (
	adminActionAddManager    = "add_manager"
	adminActionEditPassword  = "edit_manager_password"
	adminActionRemoveManager = "remove_manager"
)

const maxWithdrawListed = 20

// NewCallbackHandler routes every inline keyboard callback to its flow.
func NewCallbackHandler(deps HandlerDeps) tgbot.HandlerFunc {
	log := deps.Logger.With("handler", "callback")

	return func(ctx context.Context, b *tgbot.Bot, update *models.Update) {
		query := update.CallbackQuery
		if query == nil {
			return
		}
		data := query.Data
		userID := query.From.ID

		if !deps.Config.IsAuthorized(userID) {
			answerCallback(ctx, deps, b, query.ID, "❌ Not authorized", true)
			return
		}

		switch {
		case strings.HasPrefix(data, "select_manager_"):
			handleSelectManager(ctx, deps, b, query)
		case data == "cancel_login":
			editCallbackMessage(ctx, deps, b, query, "❌ Login cancelled.", nil)
			answerCallback(ctx, deps, b, query.ID, "", false)
		case data == "back_to_menu":
			deleteCallbackMessage(ctx, deps, b, query)
			answerCallback(ctx, deps, b, query.ID, "", false)

		case strings.HasPrefix(data, "config_server_"):
			handleConfigServer(ctx, deps, b, query, trailingID(data))
		case strings.HasPrefix(data, "edit_footer_"):
			handleEditFooter(ctx, deps, b, query, trailingID(data))
		case strings.HasPrefix(data, "edit_button"):
			handleEditButton(ctx, deps, b, query, data)
		case strings.HasPrefix(data, "edit_timegap_"):
			handleEditTimeGap(ctx, deps, b, query, trailingID(data))
		case strings.HasPrefix(data, "toggle_posting_"):
			handleTogglePosting(ctx, deps, b, query, trailingID(data))
		case strings.HasPrefix(data, "view_config_"):
			handleViewConfig(ctx, deps, b, query, trailingID(data))
		case data == "back_to_servers", data == "admin_server_config":
			editCallbackMessage(ctx, deps, b, query,
				"⚙️ <b>Server Configuration</b>\n\nSelect a server to configure:",
				telegram.ServerSelectionKeyboard(deps.Config.ServerNames))
			answerCallback(ctx, deps, b, query.ID, "", false)

		case data == "admin_manager_management":
			handleManagerManagement(ctx, deps, b, query)
		case data == "admin_add_manager":
			handleManagerAction(ctx, deps, b, query, adminActionAddManager,
				"➕ <b>Add Manager</b>\n\nSend the Telegram User ID of the manager:\n\nType /cancel to cancel.")
		case data == "admin_edit_manager_password":
			handleManagerAction(ctx, deps, b, query, adminActionEditPassword,
				"✏️ <b>Edit Manager Password</b>\n\nSend the Telegram User ID of the manager:\n\nType /cancel to cancel.")
		case data == "admin_remove_manager":
			handleManagerAction(ctx, deps, b, query, adminActionRemoveManager,
				"🗑️ <b>Remove Manager</b>\n\nSend the Telegram User ID of the manager to remove:\n\nType /cancel to cancel.")
		case data == "admin_withdraw_posts":
			handleWithdrawList(ctx, deps, b, query)
		case strings.HasPrefix(data, "withdraw_post_"):
			handleWithdrawPost(ctx, deps, b, query, strings.TrimPrefix(data, "withdraw_post_"))
		case data == "back_to_admin_settings":
			editCallbackMessage(ctx, deps, b, query,
				"⚙️ <b>Admin Settings</b>\n\nSelect an option:", telegram.AdminSettingsKeyboard())
			answerCallback(ctx, deps, b, query.ID, "", false)

		case strings.HasPrefix(data, "post_server_"):
			handlePostServer(ctx, deps, b, query, trailingID(data))
		case data == "cancel_post":
			deleteCallbackMessage(ctx, deps, b, query)
			answerCallback(ctx, deps, b, query.ID, "Post cancelled", false)
		case strings.HasPrefix(data, "delete_pending_"):
			handleDeletePending(ctx, deps, b, query, strings.TrimPrefix(data, "delete_pending_"))
		case strings.HasPrefix(data, "confirm_post_"):
			handleConfirmPost(ctx, deps, b, query, trailingID(data))
		case data == "cancel_post_confirm":
			handleCancelPostConfirm(ctx, deps, b, query)

		default:
			log.WarnContext(ctx, "Unknown callback data", "data", data, "user_id", userID)
			answerCallback(ctx, deps, b, query.ID, "", false)
		}
	}
}

// trailingID parses the numeric suffix of callback data like "post_server_2".
func trailingID(data string) int {
	parts := strings.Split(data, "_")
	id, _ := strconv.Atoi(parts[len(parts)-1])
	return id
}

func editCallbackMessage(ctx context.Context, deps HandlerDeps, b *tgbot.Bot, query *models.CallbackQuery, text string, markup models.ReplyMarkup) {
	msg := callbackMessage(query)
	if msg == nil {
		return
	}
	editHTML(ctx, deps, b, msg.Chat.ID, msg.ID, text, markup)
}

func deleteCallbackMessage(ctx context.Context, deps HandlerDeps, b *tgbot.Bot, query *models.CallbackQuery) {
	msg := callbackMessage(query)
	if msg == nil {
		return
	}
	_, err := b.DeleteMessage(ctx, &tgbot.DeleteMessageParams{ChatID: msg.Chat.ID, MessageID: msg.ID})
	if err != nil {
		deps.Logger.ErrorContext(ctx, "Failed to delete message", "error", err)
	}
}

// replyToCallback sends a new message into the chat the callback came from.
func replyToCallback(ctx context.Context, deps HandlerDeps, b *tgbot.Bot, query *models.CallbackQuery, text string) {
	msg := callbackMessage(query)
	if msg == nil {
		return
	}
	sendHTML(ctx, deps, b, msg.Chat.ID, text)
}

func handleSelectManager(ctx context.Context, deps HandlerDeps, b *tgbot.Bot, query *models.CallbackQuery) {
	num := trailingID(query.Data)

	deps.Sessions.Set(query.From.ID, session.State{Step: session.StepAwaitingPassword})

	editCallbackMessage(ctx, deps, b, query, fmt.Sprintf(
		"🔐 <b>Manager %d Login</b>\n\nPlease enter your password:\n\nType /cancel to cancel.", num), nil)
	answerCallback(ctx, deps, b, query.ID, "", false)
}

// serverConfigText renders the short per-server settings summary shown in
// the configuration menu.
func serverConfigText(deps HandlerDeps, cfg *database.ServerConfig) string {
	permission := "✅ Enabled"
	if !cfg.PostingEnabled {
		permission = "❌ Disabled"
	}
	return fmt.Sprintf(
		"⚙️ <b>%s Configuration</b>\n\n<b>Current Settings:</b>\nPost Permission: %s\nFooter: %s\nButton 1: %s\nButton 2: %s\nTime Gap: %d minutes\n\nSelect what to configure:",
		deps.Config.ServerName(cfg.ServerID), permission,
		orNotSet(posting.Preview(cfg.FooterText, 50)),
		orNotSet(cfg.Button1Text), orNotSet(cfg.Button2Text), cfg.MinTimeGap)
}

func handleConfigServer(ctx context.Context, deps HandlerDeps, b *tgbot.Bot, query *models.CallbackQuery, serverID int) {
	cfg, err := deps.Store.GetServerConfig(ctx, serverID)
	if err != nil {
		deps.Logger.ErrorContext(ctx, "Failed to load server config", "server_id", serverID, "error", err)
		answerCallback(ctx, deps, b, query.ID, "❌ Could not load configuration", true)
		return
	}

	editCallbackMessage(ctx, deps, b, query, serverConfigText(deps, cfg), telegram.ServerConfigKeyboard(serverID))
	answerCallback(ctx, deps, b, query.ID, "", false)
}

func handleEditFooter(ctx context.Context, deps HandlerDeps, b *tgbot.Bot, query *models.CallbackQuery, serverID int) {
	deps.Sessions.Update(query.From.ID, func(s *session.State) {
		s.ConfigServerID = serverID
		s.Step = session.StepAwaitingFooter
	})

	replyToCallback(ctx, deps, b, query, fmt.Sprintf(
		"📝 <b>Edit Footer for %s</b>\n\nSend the footer text that will be automatically appended to every post.\n\nType /cancel to cancel.",
		deps.Config.ServerName(serverID)))
	answerCallback(ctx, deps, b, query.ID, "", false)
}

func handleEditButton(ctx context.Context, deps HandlerDeps, b *tgbot.Bot, query *models.CallbackQuery, data string) {
	// Data forms: edit_button1_2 / edit_button2_1.
	parts := strings.Split(data, "_")
	if len(parts) != 3 {
		answerCallback(ctx, deps, b, query.ID, "", false)
		return
	}
	buttonNum, _ := strconv.Atoi(parts[1][len(parts[1])-1:])
	serverID, _ := strconv.Atoi(parts[2])

	deps.Sessions.Update(query.From.ID, func(s *session.State) {
		s.ConfigServerID = serverID
		s.ButtonNum = buttonNum
		s.Step = session.StepAwaitingButtonText
	})

	replyToCallback(ctx, deps, b, query, fmt.Sprintf(
		"🔘 <b>Edit Button %d for %s</b>\n\nSend the button text (label):\n\nType /cancel to cancel.",
		buttonNum, deps.Config.ServerName(serverID)))
	answerCallback(ctx, deps, b, query.ID, "", false)
}

func handleEditTimeGap(ctx context.Context, deps HandlerDeps, b *tgbot.Bot, query *models.CallbackQuery, serverID int) {
	deps.Sessions.Update(query.From.ID, func(s *session.State) {
		s.ConfigServerID = serverID
		s.Step = session.StepAwaitingTimeGap
	})

	replyToCallback(ctx, deps, b, query, fmt.Sprintf(
		"⏱️ <b>Edit Time Gap for %s</b>\n\nSend the minimum time gap in minutes between posts.\n\nExample: 30 (for 30 minutes)\n\nType /cancel to cancel.",
		deps.Config.ServerName(serverID)))
	answerCallback(ctx, deps, b, query.ID, "", false)
}

func handleTogglePosting(ctx context.Context, deps HandlerDeps, b *tgbot.Bot, query *models.CallbackQuery, serverID int) {
	if query.From.ID != deps.Config.AdminID {
		answerCallback(ctx, deps, b, query.ID, "❌ Only admin can toggle posting permission", true)
		return
	}

	enabled, err := deps.Store.IsServerPostingEnabled(ctx, serverID)
	if err != nil {
		deps.Logger.ErrorContext(ctx, "Failed to read posting permission", "server_id", serverID, "error", err)
		answerCallback(ctx, deps, b, query.ID, "❌ Could not load configuration", true)
		return
	}

	if err := deps.Store.SetServerPostingEnabled(ctx, serverID, !enabled); err != nil {
		deps.Logger.ErrorContext(ctx, "Failed to toggle posting permission", "server_id", serverID, "error", err)
		answerCallback(ctx, deps, b, query.ID, "❌ Could not update configuration", true)
		return
	}

	if enabled {
		answerCallback(ctx, deps, b, query.ID, "❌ Posting disabled for this server", true)
	} else {
		answerCallback(ctx, deps, b, query.ID, "✅ Posting enabled for this server", true)
	}

	cfg, err := deps.Store.GetServerConfig(ctx, serverID)
	if err != nil {
		return
	}
	editCallbackMessage(ctx, deps, b, query, serverConfigText(deps, cfg), telegram.ServerConfigKeyboard(serverID))
}

func handleViewConfig(ctx context.Context, deps HandlerDeps, b *tgbot.Bot, query *models.CallbackQuery, serverID int) {
	cfg, err := deps.Store.GetServerConfig(ctx, serverID)
	if err != nil {
		deps.Logger.ErrorContext(ctx, "Failed to load server config", "server_id", serverID, "error", err)
		answerCallback(ctx, deps, b, query.ID, "❌ Could not load configuration", true)
		return
	}

	status := "✅ Ready to post"
	if canPost, remaining, err := deps.Store.CanPostNow(ctx, serverID, time.Now().UTC()); err == nil && !canPost {
		status = fmt.Sprintf("⏳ Wait %d minutes", remaining)
	}
	permission := "✅ Enabled"
	if !cfg.PostingEnabled {
		permission = "❌ Disabled"
	}

	answerCallback(ctx, deps, b, query.ID, "", false)
	replyToCallback(ctx, deps, b, query, fmt.Sprintf(
		"👁️ <b>%s - Full Configuration</b>\n\n<b>Post Permission:</b> %s\n<b>Status:</b> %s\n\n"+
			"<b>Footer Text:</b>\n%s\n\n<b>Button 1:</b>\nText: %s\nURL: %s\n\n<b>Button 2:</b>\nText: %s\nURL: %s\n\n"+
			"<b>Minimum Time Gap:</b> %d minutes",
		deps.Config.ServerName(serverID), permission, status,
		orNotSet(cfg.FooterText),
		orNotSet(cfg.Button1Text), orNotSet(cfg.Button1URL),
		orNotSet(cfg.Button2Text), orNotSet(cfg.Button2URL),
		cfg.MinTimeGap))
}

func handleManagerManagement(ctx context.Context, deps HandlerDeps, b *tgbot.Bot, query *models.CallbackQuery) {
	if query.From.ID != deps.Config.AdminID {
		answerCallback(ctx, deps, b, query.ID, "❌ Only admin can manage managers", true)
		return
	}

	managers, err := deps.Store.GetAllManagers(ctx)
	if err != nil {
		deps.Logger.ErrorContext(ctx, "Failed to load managers", "error", err)
		answerCallback(ctx, deps, b, query.ID, "❌ Could not load managers", true)
		return
	}

	var sb strings.Builder
	sb.WriteString("👔 <b>Manager Management</b>\n\n")
	if len(managers) == 0 {
		sb.WriteString("No managers found.\n\n")
	}
	for idx, mgr := range managers {
		username := mgr.Username
		if username == "" {
			// Managers added by ID only; the users collection may know them
			// from a /start.
			if u, err := deps.Store.GetUser(ctx, mgr.UserID); err == nil && u != nil {
				username = u.Username
			}
		}
		if username == "" {
			username = "N/A"
		}
		fmt.Fprintf(&sb, "<b>%d. Manager %d</b>\nUsername: @%s\nAdded: %s\n\n",
			idx+1, mgr.UserID, username, mgr.AddedAt.Format("2006-01-02"))
	}
	sb.WriteString("Use buttons below to manage:")

	editCallbackMessage(ctx, deps, b, query, sb.String(), telegram.ManagerManagementKeyboard())
	answerCallback(ctx, deps, b, query.ID, "", false)
}

func handleManagerAction(ctx context.Context, deps HandlerDeps, b *tgbot.Bot, query *models.CallbackQuery, action, prompt string) {
	if query.From.ID != deps.Config.AdminID {
		answerCallback(ctx, deps, b, query.ID, "❌ Only admin can manage managers", true)
		return
	}

	deps.Sessions.Update(query.From.ID, func(s *session.State) {
		s.AdminAction = action
		s.Step = session.StepAwaitingManagerID
	})

	replyToCallback(ctx, deps, b, query, prompt)
	answerCallback(ctx, deps, b, query.ID, "", false)
}

func handleWithdrawList(ctx context.Context, deps HandlerDeps, b *tgbot.Bot, query *models.CallbackQuery) {
	if query.From.ID != deps.Config.AdminID {
		answerCallback(ctx, deps, b, query.ID, "❌ Only admin can withdraw posts", true)
		return
	}

	pending, err := collectPendingPosts(ctx, deps, 0)
	if err != nil {
		deps.Logger.ErrorContext(ctx, "Failed to load pending posts", "error", err)
		answerCallback(ctx, deps, b, query.ID, "❌ Could not load pending posts", true)
		return
	}
	if len(pending) == 0 {
		answerCallback(ctx, deps, b, query.ID, "✅ No pending posts to withdraw", true)
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "🗑️ <b>Withdraw Posts (%d)</b>\n\n", len(pending))

	listed := pending
	if len(listed) > maxWithdrawListed {
		listed = listed[:maxWithdrawListed]
	}

	var rows [][]models.InlineKeyboardButton
	for idx, post := range listed {
		contentType := "Text"
		if post.HasPhoto() {
			contentType = "Photo"
		}
		preview := post.MessageText
		if preview == "" {
			preview = "[No text]"
		}

		fmt.Fprintf(&sb, "<b>%d. %s</b> - %s\nManager: %d | %s\n%s\n\n",
			idx+1, deps.Config.ServerName(post.ServerID), contentType,
			post.UserID, timeutil.FormatDayClock(post.ScheduledTime, deps.Config.Location),
			posting.Preview(preview, 30))

		rows = append(rows, []models.InlineKeyboardButton{{
			Text:         fmt.Sprintf("🗑️ Withdraw Post #%d", idx+1),
			CallbackData: "withdraw_post_" + post.ID.Hex(),
		}})
	}
	if len(pending) > maxWithdrawListed {
		fmt.Fprintf(&sb, "... and %d more posts\n\n", len(pending)-maxWithdrawListed)
	}
	sb.WriteString("Click a button below to withdraw a post:")

	editCallbackMessage(ctx, deps, b, query, sb.String(), &models.InlineKeyboardMarkup{InlineKeyboard: rows})
	answerCallback(ctx, deps, b, query.ID, "", false)
}

func handleWithdrawPost(ctx context.Context, deps HandlerDeps, b *tgbot.Bot, query *models.CallbackQuery, idHex string) {
	if query.From.ID != deps.Config.AdminID {
		answerCallback(ctx, deps, b, query.ID, "❌ Only admin can withdraw posts", true)
		return
	}

	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		answerCallback(ctx, deps, b, query.ID, "❌ Invalid post ID", true)
		return
	}

	post, err := deps.Store.GetPendingPost(ctx, id)
	if err != nil {
		deps.Logger.ErrorContext(ctx, "Failed to load pending post", "pending_id", idHex, "error", err)
		answerCallback(ctx, deps, b, query.ID, "❌ Error loading post", true)
		return
	}
	if post == nil {
		answerCallback(ctx, deps, b, query.ID, "❌ Post not found or already deleted", true)
		return
	}

	if err := deps.Store.DeletePendingPost(ctx, id); err != nil {
		deps.Logger.ErrorContext(ctx, "Failed to withdraw post", "pending_id", idHex, "error", err)
		answerCallback(ctx, deps, b, query.ID, "❌ Error withdrawing post", true)
		return
	}

	answerCallback(ctx, deps, b, query.ID, "✅ Post withdrawn successfully!", true)
	editCallbackMessage(ctx, deps, b, query, fmt.Sprintf(
		"✅ <b>Post Withdrawn</b>\n\nPost from Manager %d to %s has been withdrawn.\n\nUse /setting to withdraw more posts.",
		post.UserID, deps.Config.ServerName(post.ServerID)), nil)

	sendHTML(ctx, deps, b, post.UserID, fmt.Sprintf(
		"⚠️ <b>Post Withdrawn</b>\n\nYour scheduled post to %s has been withdrawn by admin.",
		deps.Config.ServerName(post.ServerID)))

	deps.Logger.InfoContext(ctx, "Pending post withdrawn by admin",
		"pending_id", idHex, "manager_id", post.UserID, "server_id", post.ServerID)
}

func handlePostServer(ctx context.Context, deps HandlerDeps, b *tgbot.Bot, query *models.CallbackQuery, serverID int) {
	serverName := deps.Config.ServerName(serverID)

	enabled, err := deps.Store.IsServerPostingEnabled(ctx, serverID)
	if err != nil {
		deps.Logger.ErrorContext(ctx, "Failed to read posting permission", "server_id", serverID, "error", err)
		answerCallback(ctx, deps, b, query.ID, "❌ Could not load configuration", true)
		return
	}
	if !enabled {
		answerCallback(ctx, deps, b, query.ID, "❌ Posting is disabled for this server. Contact admin.", true)
		replyToCallback(ctx, deps, b, query, fmt.Sprintf(
			"❌ <b>Posting Disabled</b>\n\nPosting is currently disabled for %s.\n\nPlease contact the admin to enable posting for this server.",
			serverName))
		return
	}

	deps.Sessions.Set(query.From.ID, session.State{
		Step:         session.StepAwaitingTime,
		PostServerID: serverID,
	})

	cfg, err := deps.Store.GetServerConfig(ctx, serverID)
	if err != nil {
		deps.Logger.ErrorContext(ctx, "Failed to load server config", "server_id", serverID, "error", err)
		answerCallback(ctx, deps, b, query.ID, "❌ Could not load configuration", true)
		return
	}

	timeInfo := "✅ <b>No previous posts</b> - You can post anytime!\n\n"
	if last, err := deps.Store.GetLastPost(ctx, serverID); err == nil && last != nil {
		next := database.NextAvailable(last.PostedAt, cfg.MinTimeGap)
		timeInfo = fmt.Sprintf(
			"⏰ <b>Last post:</b> %s\n⏱️ <b>Minimum gap:</b> %d minutes\n✅ <b>Next available:</b> %s\n\n",
			timeutil.FormatClock(last.PostedAt, deps.Config.Location), cfg.MinTimeGap,
			timeutil.FormatClock(next, deps.Config.Location))
	}

	pendingInfo := ""
	if count, err := deps.Store.CountPendingPosts(ctx, serverID, 0); err == nil && count > 0 {
		pendingInfo = fmt.Sprintf("📋 <b>Pending posts:</b> %d", count)
	}

	replyToCallback(ctx, deps, b, query, fmt.Sprintf(
		"📤 <b>Posting to %s</b>\n\n%s🕐 <b>Current time (%s):</b> %s\n%s\n\n"+
			"<b>Server Configuration:</b>\nFooter: %s\nButton 1: %s\nButton 2: %s\n\n"+
			"⏰ <b>Please enter posting time:</b>\n\n"+
			"<b>Time only (today/tomorrow):</b>\n• <code>14:30</code> - Post at 2:30 PM\n• <code>09:00</code> - Post at 9:00 AM\n\n"+
			"<b>Date + Time:</b>\n• <code>25/01 14:30</code> - Jan 25 at 2:30 PM\n• <code>25/01/2026 14:30</code> - Jan 25, 2026 at 2:30 PM\n\n"+
			"<b>Immediate:</b>\n• <code>now</code> - Post immediately\n\nType /cancel to cancel.",
		serverName, timeInfo, deps.Config.Timezone,
		time.Now().In(deps.Config.Location).Format("15:04"), pendingInfo,
		orNotSet(posting.Preview(cfg.FooterText, 30)),
		orNotSet(cfg.Button1Text), orNotSet(cfg.Button2Text)))
	answerCallback(ctx, deps, b, query.ID, "", false)
}

func handleDeletePending(ctx context.Context, deps HandlerDeps, b *tgbot.Bot, query *models.CallbackQuery, idHex string) {
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		answerCallback(ctx, deps, b, query.ID, "❌ Invalid post ID", true)
		return
	}

	post, err := deps.Store.GetPendingPost(ctx, id)
	if err != nil {
		deps.Logger.ErrorContext(ctx, "Failed to load pending post", "pending_id", idHex, "error", err)
		answerCallback(ctx, deps, b, query.ID, "❌ Error deleting post", true)
		return
	}
	if post == nil {
		answerCallback(ctx, deps, b, query.ID, "❌ Post not found or already deleted", true)
		return
	}

	if post.UserID != query.From.ID && query.From.ID != deps.Config.AdminID {
		answerCallback(ctx, deps, b, query.ID, "❌ You can only delete your own posts", true)
		return
	}

	if err := deps.Store.DeletePendingPost(ctx, id); err != nil {
		deps.Logger.ErrorContext(ctx, "Failed to delete pending post", "pending_id", idHex, "error", err)
		answerCallback(ctx, deps, b, query.ID, "❌ Error deleting post", true)
		return
	}

	contentType := "text post"
	if post.HasPhoto() {
		contentType = "photo post"
	}
	preview := post.MessageText
	if preview == "" {
		preview = "[Photo only]"
	}

	answerCallback(ctx, deps, b, query.ID, "✅ Post deleted successfully!", true)
	editCallbackMessage(ctx, deps, b, query, fmt.Sprintf(
		"🗑️ <b>Post Deleted</b>\n\nYour %s to %s has been cancelled.\n\n"+
			"⏰ <b>Was scheduled for:</b> %s\n💬 <b>Content:</b> %s\n\nUse /pending to view remaining scheduled posts.",
		contentType, deps.Config.ServerName(post.ServerID),
		timeutil.FormatClock(post.ScheduledTime, deps.Config.Location),
		posting.Preview(preview, 50)), nil)

	deps.Logger.InfoContext(ctx, "Pending post deleted",
		"pending_id", idHex, "user_id", query.From.ID)
}

// handleConfirmPost publishes immediately or stores a pending post, based on
// the schedule captured earlier in the flow.
func handleConfirmPost(ctx context.Context, deps HandlerDeps, b *tgbot.Bot, query *models.CallbackQuery, callbackServerID int) {
	userID := query.From.ID
	state := deps.Sessions.Get(userID)
	log := deps.Logger.With("handler", "confirm_post")

	serverID := state.PostServerID
	if serverID == 0 {
		// Session may have been lost between preview and confirmation; the
		// callback data carries the server as a fallback.
		serverID = callbackServerID
	}
	if serverID == 0 || state.Step != session.StepConfirmingPost {
		editCallbackMessage(ctx, deps, b, query,
			"❌ <b>Error: Missing Server Information</b>\n\nServer ID was not found. This might happen if the session expired.\n\n"+
				"Please try again:\n1. Use /post\n2. Select a server\n3. Enter time and content\n4. Click Confirm", nil)
		answerCallback(ctx, deps, b, query.ID, "❌ Error: Missing server ID", true)
		return
	}

	enabled, err := deps.Store.IsServerPostingEnabled(ctx, serverID)
	if err == nil && !enabled {
		editCallbackMessage(ctx, deps, b, query, fmt.Sprintf(
			"❌ <b>Posting Disabled</b>\n\nPosting is disabled for %s.\n\nContact admin to enable posting for this server.",
			deps.Config.ServerName(serverID)), nil)
		answerCallback(ctx, deps, b, query.ID, "❌ Posting disabled for this server", true)
		return
	}

	now := time.Now().UTC()
	if state.Immediate || !state.ScheduledTime.After(now) {
		if err := publishNow(ctx, deps, b, query, serverID, state); err != nil {
			answerCallback(ctx, deps, b, query.ID, "❌ Posting failed", true)
			return
		}
	} else {
		if err := schedulePost(ctx, deps, b, query, serverID, state); err != nil {
			answerCallback(ctx, deps, b, query.ID, "❌ Scheduling failed", true)
			return
		}
	}

	deps.Sessions.Clear(userID)
	answerCallback(ctx, deps, b, query.ID, "✅ Confirmed!", false)
	log.InfoContext(ctx, "Post confirmed", "server_id", serverID, "user_id", userID, "immediate", state.Immediate)
}

func publishNow(ctx context.Context, deps HandlerDeps, b *tgbot.Bot, query *models.CallbackQuery, serverID int, state session.State) error {
	userID := query.From.ID
	serverName := deps.Config.ServerName(serverID)

	_, err := deps.Publisher.Publish(ctx, serverID, userID, state.TextContent, state.PhotoID)
	if err != nil {
		deps.Logger.ErrorContext(ctx, "Failed to publish post", "server_id", serverID, "error", err)

		detail := "Please try again later."
		if errors.Is(err, posting.ErrChannelNotFound) {
			detail = "Please check:\n• Channel ID is correct in .env file\n• Bot is added to the channel as admin\n• Channel ID format is correct"
		}
		editCallbackMessage(ctx, deps, b, query, fmt.Sprintf(
			"❌ <b>Error Posting to Channel</b>\n\nFailed to post to channel for %s.\n\n%s\n\nThe post was not saved.",
			serverName, detail), nil)
		return err
	}

	if state.PhotoID != "" {
		caption := state.TextContent
		if caption == "" {
			caption = "[No caption]"
		}
		editCallbackMessage(ctx, deps, b, query, fmt.Sprintf(
			"✅ <b>Photo Posted Successfully!</b>\n\nYour photo has been posted to %s.\n\n📸 Caption: %s",
			serverName, posting.Preview(caption, 50)), nil)
	} else {
		editCallbackMessage(ctx, deps, b, query, fmt.Sprintf(
			"✅ <b>Post Sent Successfully!</b>\n\nYour post has been sent to %s.\n\n📝 Content: %s",
			serverName, posting.Preview(state.TextContent, 50)), nil)
	}
	return nil
}

func schedulePost(ctx context.Context, deps HandlerDeps, b *tgbot.Bot, query *models.CallbackQuery, serverID int, state session.State) error {
	userID := query.From.ID
	serverName := deps.Config.ServerName(serverID)

	id, err := deps.Store.SavePendingPost(ctx, &database.PendingPost{
		ServerID:      serverID,
		UserID:        userID,
		MessageText:   state.TextContent,
		PhotoID:       state.PhotoID,
		ScheduledTime: state.ScheduledTime,
	})
	if err != nil {
		deps.Logger.ErrorContext(ctx, "Failed to schedule post", "server_id", serverID, "error", err)
		editCallbackMessage(ctx, deps, b, query,
			"❌ <b>Error Scheduling Post</b>\n\nYour post could not be scheduled. Please try again.", nil)
		return err
	}

	postKind := "Post"
	contentLabel := "📝 Content"
	preview := state.TextContent
	if state.PhotoID != "" {
		postKind = "Photo Post"
		contentLabel = "📸 Caption"
		if preview == "" {
			preview = "[No caption]"
		}
	}

	editCallbackMessage(ctx, deps, b, query, fmt.Sprintf(
		"⏰ <b>%s Scheduled!</b>\n\nYour post to %s has been scheduled.\n\n%s: %s\n\n"+
			"📅 <b>Will post at:</b> %s\n⏱️ <b>In approximately:</b> %s\n\n"+
			"✅ You'll be notified when it's published!\n\nUse /pending to view or cancel scheduled posts.",
		postKind, serverName, contentLabel, posting.Preview(preview, 50),
		state.ScheduledDisplay, timeutil.Until(time.Now().UTC(), state.ScheduledTime)), nil)

	deps.Logger.InfoContext(ctx, "Post scheduled",
		"pending_id", id.Hex(), "server_id", serverID, "user_id", userID)
	return nil
}

func handleCancelPostConfirm(ctx context.Context, deps HandlerDeps, b *tgbot.Bot, query *models.CallbackQuery) {
	deps.Sessions.Clear(query.From.ID)

	editCallbackMessage(ctx, deps, b, query,
		"❌ <b>Post Cancelled</b>\n\nYour post has been cancelled and will not be published.", nil)
	answerCallback(ctx, deps, b, query.ID, "Cancelled", false)
}
