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

	"github.com/redteam-region722/TG-bot/internal/bot/session"
	"github.com/redteam-region722/TG-bot/internal/database"
	"github.com/redteam-region722/TG-bot/internal/posting"
	"github.com/redteam-region722/TG-bot/internal/telegram"
	"github.com/redteam-region722/TG-bot/internal/timeutil"
)

const maxPasswordAttempts = 3

// NewDefaultHandler serves every update no registered handler claimed. It
// drives the multi-step input flows: manager passwords, schedule times, post
// content (text or photo), server configuration values, manager management,
// and broadcast text.
func NewDefaultHandler(deps HandlerDeps) tgbot.HandlerFunc {
	return func(ctx context.Context, b *tgbot.Bot, update *models.Update) {
		msg := update.Message
		if msg == nil || msg.From == nil {
			return
		}
		if !deps.Config.IsAuthorized(msg.From.ID) {
			return
		}

		if len(msg.Photo) > 0 {
			handlePhotoInput(ctx, deps, b, msg)
			return
		}
		if msg.Text != "" {
			handleTextInput(ctx, deps, b, msg)
		}
	}
}

func handleTextInput(ctx context.Context, deps HandlerDeps, b *tgbot.Bot, msg *models.Message) {
	userID := msg.From.ID
	state := deps.Sessions.Get(userID)

	switch state.Step {
	case session.StepAwaitingPassword:
		handlePasswordInput(ctx, deps, b, msg, state)
	case session.StepAwaitingTime:
		handleTimeInput(ctx, deps, b, msg, state)
	case session.StepAwaitingContent:
		handleTextContent(ctx, deps, b, msg, state)
	case session.StepAwaitingFooter:
		handleFooterInput(ctx, deps, b, msg, state)
	case session.StepAwaitingButtonText:
		handleButtonTextInput(ctx, deps, b, msg, state)
	case session.StepAwaitingButtonURL:
		handleButtonURLInput(ctx, deps, b, msg, state)
	case session.StepAwaitingTimeGap:
		handleTimeGapInput(ctx, deps, b, msg, state)
	case session.StepAwaitingManagerID:
		handleManagerIDInput(ctx, deps, b, msg, state)
	case session.StepAwaitingManagerPassword:
		handleManagerPasswordInput(ctx, deps, b, msg, state)
	case session.StepAwaitingBroadcast:
		handleBroadcastInput(ctx, deps, b, msg)
	}
}

// handlePasswordInput verifies a manager login password. The message is
// deleted immediately so the password never stays visible in the chat.
func handlePasswordInput(ctx context.Context, deps HandlerDeps, b *tgbot.Bot, msg *models.Message, state session.State) {
	userID := msg.From.ID
	password := msg.Text
	log := deps.Logger.With("handler", "password_input")

	_, err := b.DeleteMessage(ctx, &tgbot.DeleteMessageParams{
		ChatID:    msg.Chat.ID,
		MessageID: msg.ID,
	})
	if err != nil {
		log.WarnContext(ctx, "Could not delete password message", "user_id", userID, "error", err)
	}

	ok, err := deps.Store.AuthenticateManager(ctx, userID, password)
	if err != nil {
		log.ErrorContext(ctx, "Authentication check failed", "user_id", userID, "error", err)
		sendHTML(ctx, deps, b, userID, "❌ Something went wrong. Please try again.")
		return
	}

	if ok {
		deps.Sessions.Clear(userID)
		sendHTMLMarkup(ctx, deps, b, userID, fmt.Sprintf(
			"✅ <b>Authentication Successful!</b>\n\nWelcome %s!\n\nUse the menu below to manage posts.",
			msg.From.FirstName), telegram.ManagerMenuKeyboard())
		return
	}

	retries := state.PasswordRetries + 1
	if retries >= maxPasswordAttempts {
		deps.Sessions.Clear(userID)
		sendHTML(ctx, deps, b, userID, fmt.Sprintf(
			"❌ <b>Authentication Failed</b>\n\nMaximum password attempts (%d) exceeded.\nPlease try again later with /start or /manager.",
			maxPasswordAttempts))
		return
	}

	deps.Sessions.Update(userID, func(s *session.State) { s.PasswordRetries = retries })
	sendHTML(ctx, deps, b, userID, fmt.Sprintf(
		"❌ <b>Invalid Password</b>\n\nRemaining attempts: %d\n\nPlease try again or type /cancel.",
		maxPasswordAttempts-retries))
}

// handleTimeInput parses the requested posting time and checks it against
// the server's minimum-gap rule before asking for content.
func handleTimeInput(ctx context.Context, deps HandlerDeps, b *tgbot.Bot, msg *models.Message, state session.State) {
	chatID := msg.Chat.ID
	serverID := state.PostServerID
	log := deps.Logger.With("handler", "time_input")

	sched, err := timeutil.ParsePostTime(msg.Text, time.Now(), deps.Config.Location)
	switch {
	case err == nil:
	case errors.Is(err, timeutil.ErrPastTime):
		sendHTML(ctx, deps, b, chatID,
			"❌ <b>Date/Time in the Past!</b>\n\nPlease choose a future date and time.\n\nTry again or type /cancel:")
		return
	case errors.Is(err, timeutil.ErrInvalidDate):
		sendHTML(ctx, deps, b, chatID,
			"❌ <b>Invalid Date!</b>\n\nPlease check the date and try again.\n\n<b>Format:</b> DD/MM HH:MM or DD/MM/YYYY HH:MM")
		return
	default:
		sendHTML(ctx, deps, b, chatID,
			"❌ <b>Invalid format!</b>\n\nPlease use one of these formats:\n\n"+
				"<b>Time only (today/tomorrow):</b>\n• <code>14:30</code> - 2:30 PM\n• <code>09:00</code> - 9:00 AM\n\n"+
				"<b>Date + Time:</b>\n• <code>25/01 14:30</code> - Jan 25 at 2:30 PM\n• <code>25/01/2026 14:30</code> - Jan 25, 2026 at 2:30 PM\n\n"+
				"<b>Immediate:</b>\n• <code>now</code> - Post immediately\n\nTry again or type /cancel:")
		return
	}

	if !sched.Immediate {
		ok, next, err := deps.Store.CheckTimeConflict(ctx, serverID, sched.Time)
		if err != nil {
			log.ErrorContext(ctx, "Conflict check failed", "server_id", serverID, "error", err)
			sendHTML(ctx, deps, b, chatID, "❌ Something went wrong. Please try again or type /cancel.")
			return
		}
		if !ok {
			minGap := 0
			if cfg, err := deps.Store.GetServerConfig(ctx, serverID); err == nil {
				minGap = cfg.MinTimeGap
			}
			nextStr := timeutil.FormatDayClock(next, deps.Config.Location)
			sendHTML(ctx, deps, b, chatID, fmt.Sprintf(
				"⚠️ <b>Time Slot Busy!</b>\n\nYour requested time conflicts with another post.\n\n"+
					"⏱️ <b>Minimum gap:</b> %d minutes\n✅ <b>Next available:</b> %s\n\n"+
					"Please choose a time after <b>%s</b> or type <code>now</code> to post immediately:",
				minGap, nextStr, nextStr))
			return
		}
	}

	deps.Sessions.Update(msg.From.ID, func(s *session.State) {
		s.ScheduledTime = sched.Time
		s.ScheduledDisplay = sched.Display
		s.Immediate = sched.Immediate
		s.Step = session.StepAwaitingContent
	})

	sendHTML(ctx, deps, b, chatID, fmt.Sprintf(
		"✅ <b>Time Confirmed!</b>\n\n📅 <b>Scheduled for:</b> %s\n\n"+
			"Now send your content:\n📝 Type a text message OR\n📸 Upload a photo (with optional caption)\n\n"+
			"The footer and buttons will be added automatically.\n\nType /cancel to cancel.",
		sched.Display))

	log.InfoContext(ctx, "Schedule time confirmed", "server_id", serverID, "display", sched.Display)
}

// handleTextContent previews a text post and asks for confirmation.
func handleTextContent(ctx context.Context, deps HandlerDeps, b *tgbot.Bot, msg *models.Message, state session.State) {
	content := strings.TrimSpace(msg.Text)
	deps.Sessions.Update(msg.From.ID, func(s *session.State) {
		s.TextContent = content
		s.PhotoID = ""
		s.Step = session.StepConfirmingPost
	})
	state.TextContent = content

	showPostPreview(ctx, deps, b, msg.Chat.ID, state, "")
}

// handlePhotoInput previews a photo post during the content step.
func handlePhotoInput(ctx context.Context, deps HandlerDeps, b *tgbot.Bot, msg *models.Message) {
	state := deps.Sessions.Get(msg.From.ID)
	if state.Step != session.StepAwaitingContent {
		sendHTML(ctx, deps, b, msg.Chat.ID,
			"📸 To post a photo, first use /post and select a server.")
		return
	}

	photoID := msg.Photo[len(msg.Photo)-1].FileID
	caption := msg.Caption

	deps.Sessions.Update(msg.From.ID, func(s *session.State) {
		s.PhotoID = photoID
		s.TextContent = caption
		s.Step = session.StepConfirmingPost
	})
	state.TextContent = caption

	showPostPreview(ctx, deps, b, msg.Chat.ID, state, photoID)
}

// showPostPreview renders the composed post (footer and buttons applied) and
// asks for the final confirmation. A button URL Telegram rejects drops the
// buttons from the preview rather than failing the flow.
func showPostPreview(ctx context.Context, deps HandlerDeps, b *tgbot.Bot, chatID int64, state session.State, photoID string) {
	serverID := state.PostServerID
	log := deps.Logger.With("handler", "post_preview")

	cfg, err := deps.Store.GetServerConfig(ctx, serverID)
	if err != nil {
		log.ErrorContext(ctx, "Failed to load server config", "server_id", serverID, "error", err)
		sendHTML(ctx, deps, b, chatID, "❌ Could not load server configuration. Please try again.")
		return
	}

	full := posting.ComposeContent(state.TextContent, cfg.FooterText)
	buttons := posting.BuildButtons(cfg)
	serverName := deps.Config.ServerName(serverID)

	postType := "📝 Text post"
	if photoID != "" {
		postType = "📸 Photo with caption"
		err = sendPhotoPreview(ctx, b, chatID, photoID,
			fmt.Sprintf("📸 <b>PREVIEW - %s</b>\n\n%s", serverName, full), buttons)
	} else {
		err = sendTextPreview(ctx, b, chatID,
			fmt.Sprintf("📝 <b>PREVIEW - %s</b>\n\n%s", serverName, full), buttons)
	}
	if err != nil {
		log.ErrorContext(ctx, "Failed to send preview", "server_id", serverID, "error", err)
	}

	timeInfo := "Will post <b>immediately</b>"
	if !state.Immediate && state.ScheduledTime.After(time.Now().UTC()) {
		timeInfo = fmt.Sprintf("Will post at <b>%s</b> (in %s)",
			state.ScheduledDisplay, timeutil.Until(time.Now().UTC(), state.ScheduledTime))
	}

	sendHTMLMarkup(ctx, deps, b, chatID, fmt.Sprintf(
		"👆 <b>Preview Above</b>\n\n📤 <b>Server:</b> %s\n%s\n⏰ <b>Schedule:</b> %s\n\n<b>Confirm to proceed:</b>",
		serverName, "<b>Type:</b> "+postType, timeInfo),
		telegram.ConfirmPostKeyboard(serverID))
}

func sendTextPreview(ctx context.Context, b *tgbot.Bot, chatID int64, text string, buttons *models.InlineKeyboardMarkup) error {
	params := &tgbot.SendMessageParams{ChatID: chatID, Text: text, ParseMode: models.ParseModeHTML}
	if buttons != nil {
		params.ReplyMarkup = buttons
	}
	_, err := b.SendMessage(ctx, params)
	if err != nil && buttons != nil && posting.IsInvalidURLErr(err) {
		params.ReplyMarkup = nil
		_, err = b.SendMessage(ctx, params)
	}
	return err
}

func sendPhotoPreview(ctx context.Context, b *tgbot.Bot, chatID int64, photoID, caption string, buttons *models.InlineKeyboardMarkup) error {
	params := &tgbot.SendPhotoParams{
		ChatID:    chatID,
		Photo:     &models.InputFileString{Data: photoID},
		Caption:   caption,
		ParseMode: models.ParseModeHTML,
	}
	if buttons != nil {
		params.ReplyMarkup = buttons
	}
	_, err := b.SendPhoto(ctx, params)
	if err != nil && buttons != nil && posting.IsInvalidURLErr(err) {
		params.ReplyMarkup = nil
		_, err = b.SendPhoto(ctx, params)
	}
	return err
}

func handleFooterInput(ctx context.Context, deps HandlerDeps, b *tgbot.Bot, msg *models.Message, state session.State) {
	footer := strings.TrimSpace(msg.Text)

	if err := deps.Store.UpdateServerFooter(ctx, state.ConfigServerID, footer); err != nil {
		deps.Logger.ErrorContext(ctx, "Failed to update footer", "server_id", state.ConfigServerID, "error", err)
		sendHTML(ctx, deps, b, msg.Chat.ID, "❌ Could not update the footer. Please try again.")
		return
	}
	deps.Sessions.Update(msg.From.ID, func(s *session.State) { s.Step = session.StepNone })

	sendHTML(ctx, deps, b, msg.Chat.ID, fmt.Sprintf(
		"✅ <b>Footer Updated!</b>\n\n%s footer text:\n<code>%s</code>",
		deps.Config.ServerName(state.ConfigServerID), footer))
}

func handleButtonTextInput(ctx context.Context, deps HandlerDeps, b *tgbot.Bot, msg *models.Message, state session.State) {
	text := strings.TrimSpace(msg.Text)

	deps.Sessions.Update(msg.From.ID, func(s *session.State) {
		s.ButtonText = text
		s.Step = session.StepAwaitingButtonURL
	})

	sendHTML(ctx, deps, b, msg.Chat.ID, fmt.Sprintf(
		"✅ Button text saved: <b>%s</b>\n\nNow send the URL for Button %d:", text, state.ButtonNum))
}

func handleButtonURLInput(ctx context.Context, deps HandlerDeps, b *tgbot.Bot, msg *models.Message, state session.State) {
	url := strings.TrimSpace(msg.Text)

	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		sendHTML(ctx, deps, b, msg.Chat.ID,
			"❌ Invalid URL! Must start with http:// or https://\nPlease send a valid URL:")
		return
	}

	err := deps.Store.UpdateServerButton(ctx, state.ConfigServerID, state.ButtonNum, state.ButtonText, url)
	if err != nil {
		deps.Logger.ErrorContext(ctx, "Failed to update button", "server_id", state.ConfigServerID, "error", err)
		sendHTML(ctx, deps, b, msg.Chat.ID, "❌ Could not update the button. Please try again.")
		return
	}
	deps.Sessions.Update(msg.From.ID, func(s *session.State) { s.Step = session.StepNone })

	sendHTML(ctx, deps, b, msg.Chat.ID, fmt.Sprintf(
		"✅ <b>Button %d Updated!</b>\n\nText: %s\nURL: %s", state.ButtonNum, state.ButtonText, url))
}

func handleTimeGapInput(ctx context.Context, deps HandlerDeps, b *tgbot.Bot, msg *models.Message, state session.State) {
	minutes, err := strconv.Atoi(strings.TrimSpace(msg.Text))
	if err != nil || minutes < 0 {
		sendHTML(ctx, deps, b, msg.Chat.ID,
			"❌ Invalid number! Please enter a positive number (minutes):")
		return
	}

	if err := deps.Store.UpdateServerTimeGap(ctx, state.ConfigServerID, minutes); err != nil {
		deps.Logger.ErrorContext(ctx, "Failed to update time gap", "server_id", state.ConfigServerID, "error", err)
		sendHTML(ctx, deps, b, msg.Chat.ID, "❌ Could not update the time gap. Please try again.")
		return
	}
	deps.Sessions.Update(msg.From.ID, func(s *session.State) { s.Step = session.StepNone })

	sendHTML(ctx, deps, b, msg.Chat.ID, fmt.Sprintf(
		"✅ <b>Time Gap Updated!</b>\n\n%s minimum time gap: %d minutes",
		deps.Config.ServerName(state.ConfigServerID), minutes))
}

// handleManagerIDInput resolves the Telegram ID step of the admin's manager
// management flows (add, edit password, remove).
func handleManagerIDInput(ctx context.Context, deps HandlerDeps, b *tgbot.Bot, msg *models.Message, state session.State) {
	chatID := msg.Chat.ID
	log := deps.Logger.With("handler", "manager_management")

	targetID, err := strconv.ParseInt(strings.TrimSpace(msg.Text), 10, 64)
	if err != nil {
		sendHTML(ctx, deps, b, chatID,
			"❌ Invalid user ID. Please send a valid Telegram User ID (number):")
		return
	}

	switch state.AdminAction {
	case adminActionAddManager:
		deps.Sessions.Update(msg.From.ID, func(s *session.State) {
			s.TargetManagerID = targetID
			s.Step = session.StepAwaitingManagerPassword
		})
		sendHTML(ctx, deps, b, chatID, fmt.Sprintf(
			"✅ User ID: %d\n\nNow send the password for this manager:\n\nType /cancel to cancel.", targetID))

	case adminActionEditPassword:
		manager, err := deps.Store.GetManager(ctx, targetID)
		if err != nil {
			log.ErrorContext(ctx, "Failed to look up manager", "user_id", targetID, "error", err)
			sendHTML(ctx, deps, b, chatID, "❌ Something went wrong. Please try again.")
			return
		}
		if manager == nil {
			sendHTML(ctx, deps, b, chatID, fmt.Sprintf(
				"❌ Manager with User ID %d not found.\n\nPlease send a valid manager User ID or /cancel:", targetID))
			return
		}
		deps.Sessions.Update(msg.From.ID, func(s *session.State) {
			s.TargetManagerID = targetID
			s.Step = session.StepAwaitingManagerPassword
		})
		sendHTML(ctx, deps, b, chatID, fmt.Sprintf(
			"✅ Manager found: %d\n\nNow send the new password:\n\nType /cancel to cancel.", targetID))

	case adminActionRemoveManager:
		manager, err := deps.Store.GetManager(ctx, targetID)
		if err != nil {
			log.ErrorContext(ctx, "Failed to look up manager", "user_id", targetID, "error", err)
			sendHTML(ctx, deps, b, chatID, "❌ Something went wrong. Please try again.")
			return
		}
		if manager == nil {
			sendHTML(ctx, deps, b, chatID, fmt.Sprintf(
				"❌ Manager with User ID %d not found.\n\nPlease send a valid manager User ID or /cancel:", targetID))
			return
		}

		if err := deps.Store.RemoveManager(ctx, targetID); err != nil {
			log.ErrorContext(ctx, "Failed to remove manager", "user_id", targetID, "error", err)
			sendHTML(ctx, deps, b, chatID, "❌ Could not remove the manager. Please try again.")
			return
		}
		deps.Sessions.Clear(msg.From.ID)

		sendHTML(ctx, deps, b, chatID, fmt.Sprintf(
			"✅ <b>Manager Removed!</b>\n\nManager %d has been removed from the system.", targetID))
		sendHTML(ctx, deps, b, targetID,
			"⚠️ <b>Access Revoked</b>\n\nYour manager access has been revoked by admin.")
	}
}

// handleManagerPasswordInput finishes the add-manager and edit-password flows.
func handleManagerPasswordInput(ctx context.Context, deps HandlerDeps, b *tgbot.Bot, msg *models.Message, state session.State) {
	chatID := msg.Chat.ID
	password := strings.TrimSpace(msg.Text)
	targetID := state.TargetManagerID
	log := deps.Logger.With("handler", "manager_management")

	switch state.AdminAction {
	case adminActionAddManager:
		err := deps.Store.SaveManager(ctx, &database.Manager{UserID: targetID, Password: password})
		if err != nil {
			log.ErrorContext(ctx, "Failed to add manager", "user_id", targetID, "error", err)
			sendHTML(ctx, deps, b, chatID, "❌ Could not add the manager. Please try again.")
			return
		}
		deps.Sessions.Clear(msg.From.ID)
		sendHTML(ctx, deps, b, chatID, fmt.Sprintf(
			"✅ <b>Manager Added!</b>\n\nUser ID: %d\nPassword: %s\n\nManager can now login with /manager",
			targetID, password))

	case adminActionEditPassword:
		if err := deps.Store.UpdateManagerPassword(ctx, targetID, password); err != nil {
			log.ErrorContext(ctx, "Failed to update manager password", "user_id", targetID, "error", err)
			sendHTML(ctx, deps, b, chatID, "❌ Could not update the password. Please try again.")
			return
		}
		deps.Sessions.Clear(msg.From.ID)
		sendHTML(ctx, deps, b, chatID, fmt.Sprintf(
			"✅ <b>Password Updated!</b>\n\nManager %d password has been updated.\n\nNew password: %s",
			targetID, password))
	}
}

// handleBroadcastInput delivers the announcement to every active user and
// reports delivery counts back to the admin.
func handleBroadcastInput(ctx context.Context, deps HandlerDeps, b *tgbot.Bot, msg *models.Message) {
	chatID := msg.Chat.ID
	text := msg.Text
	log := deps.Logger.With("handler", "broadcast")

	deps.Sessions.Clear(msg.From.ID)

	users, err := deps.Store.GetActiveUsers(ctx)
	if err != nil {
		log.ErrorContext(ctx, "Failed to load active users", "error", err)
		sendHTML(ctx, deps, b, chatID, "❌ Could not load the user list. Please try again.")
		return
	}

	var success, failed int
	for _, u := range users {
		_, err := b.SendMessage(ctx, &tgbot.SendMessageParams{
			ChatID:    u.UserID,
			Text:      "📢 <b>Announcement</b>\n\n" + text,
			ParseMode: models.ParseModeHTML,
		})
		if err != nil {
			log.ErrorContext(ctx, "Failed to deliver announcement", "user_id", u.UserID, "error", err)
			failed++
			continue
		}
		success++
	}

	err = deps.Store.SaveAnnouncement(ctx, &database.Announcement{Text: text, CreatedBy: msg.From.ID})
	if err != nil {
		log.ErrorContext(ctx, "Failed to save announcement", "error", err)
	}

	sendHTML(ctx, deps, b, chatID, fmt.Sprintf(
		"✅ <b>Broadcast Complete!</b>\n\n📊 <b>Results:</b>\n✅ Successfully sent: %d\n❌ Failed: %d\n\n💬 <b>Message:</b>\n%s",
		success, failed, posting.Preview(text, 100)))
}
