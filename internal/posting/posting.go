// Package posting composes channel posts and publishes them to Telegram,
// applying per-server footers and URL buttons.
package posting

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/redteam-region722/TG-bot/internal/database"
)

// ErrChannelNotFound indicates Telegram rejected the configured channel,
// usually because the bot was never added to it as an administrator.
var ErrChannelNotFound = fmt.Errorf("channel not found")

// ChannelSender is the subset of the Telegram client used for publishing.
type ChannelSender interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
	SendPhoto(ctx context.Context, params *bot.SendPhotoParams) (*models.Message, error)
}

// ResolveChannel converts a configured channel identifier into a value the
// Telegram API accepts: numeric IDs become int64, bare usernames gain an "@"
// prefix, and anything else passes through unchanged.
func ResolveChannel(channelIDs []string, serverID int) (any, bool) {
	idx := serverID - 1
	if idx < 0 || idx >= len(channelIDs) {
		return nil, false
	}

	raw := strings.TrimSpace(channelIDs[idx])
	if raw == "" {
		return nil, false
	}

	if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return id, true
	}
	if !strings.HasPrefix(raw, "@") && !strings.Contains(raw, "/") {
		return "@" + raw, true
	}
	return raw, true
}

// ComposeContent appends the server footer to the post text when one is set.
func ComposeContent(text, footer string) string {
	footer = strings.TrimSpace(footer)
	if footer == "" {
		return text
	}
	return text + "\n\n" + footer
}

// BuildButtons assembles the server's inline URL buttons, one per row.
// It returns nil when no button is fully configured.
func BuildButtons(cfg *database.ServerConfig) *models.InlineKeyboardMarkup {
	if cfg == nil {
		return nil
	}

	var rows [][]models.InlineKeyboardButton
	if cfg.Button1Text != "" && cfg.Button1URL != "" {
		rows = append(rows, []models.InlineKeyboardButton{
			{Text: cfg.Button1Text, URL: cfg.Button1URL},
		})
	}
	if cfg.Button2Text != "" && cfg.Button2URL != "" {
		rows = append(rows, []models.InlineKeyboardButton{
			{Text: cfg.Button2Text, URL: cfg.Button2URL},
		})
	}
	if len(rows) == 0 {
		return nil
	}
	return &models.InlineKeyboardMarkup{InlineKeyboard: rows}
}

// Preview truncates text to n characters for display in lists and
// confirmations. Truncation happens on rune boundaries so the result stays
// valid UTF-8.
func Preview(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}

// IsInvalidURLErr reports whether the send failed because Telegram rejected
// one of the button URLs.
func IsInvalidURLErr(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "wrong remote file identifier") ||
		strings.Contains(msg, "url host is empty") ||
		strings.Contains(msg, "invalid url") ||
		strings.Contains(msg, "button_url invalid") ||
		strings.Contains(msg, "wrong http url")
}

// IsChatNotFoundErr reports whether the send failed because the channel is
// unknown to the bot.
func IsChatNotFoundErr(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "chat not found") ||
		strings.Contains(msg, "chat_id is empty")
}

// Publisher sends composed posts to their configured channels and records
// each successful publication.
type Publisher struct {
	sender     ChannelSender
	store      database.Store
	channelIDs []string
	logger     *slog.Logger
}

// NewPublisher creates a Publisher.
func NewPublisher(sender ChannelSender, store database.Store, channelIDs []string, logger *slog.Logger) *Publisher {
	return &Publisher{
		sender:     sender,
		store:      store,
		channelIDs: channelIDs,
		logger:     logger.With("component", "publisher"),
	}
}

// Publish composes and sends a post to the server's channel, then records it.
// Photo posts carry the text as a caption. When Telegram rejects a configured
// button URL the post is retried without buttons so content is never lost.
func (p *Publisher) Publish(ctx context.Context, serverID int, userID int64, text, photoID string) (*models.Message, error) {
	channel, ok := ResolveChannel(p.channelIDs, serverID)
	if !ok {
		return nil, fmt.Errorf("no channel configured for server %d", serverID)
	}

	cfg, err := p.store.GetServerConfig(ctx, serverID)
	if err != nil {
		return nil, fmt.Errorf("failed to load config for server %d: %w", serverID, err)
	}

	content := ComposeContent(text, cfg.FooterText)
	buttons := BuildButtons(cfg)

	msg, err := p.send(ctx, channel, content, photoID, buttons)
	if err != nil && buttons != nil && IsInvalidURLErr(err) {
		p.logger.WarnContext(ctx, "Send failed due to invalid button URL, retrying without buttons",
			"server_id", serverID, "error", err)
		msg, err = p.send(ctx, channel, content, photoID, nil)
	}
	if err != nil {
		if IsChatNotFoundErr(err) {
			p.logger.ErrorContext(ctx, "Channel not found",
				"server_id", serverID, "channel", channel, "error", err)
			return nil, fmt.Errorf("%w: server %d channel %v", ErrChannelNotFound, serverID, channel)
		}
		return nil, fmt.Errorf("failed to publish to server %d: %w", serverID, err)
	}

	post := &database.Post{
		ServerID:         serverID,
		UserID:           userID,
		MessageText:      text,
		PhotoID:          photoID,
		ChannelMessageID: msg.ID,
		PostedAt:         time.Now().UTC(),
	}
	if err := p.store.SavePost(ctx, post); err != nil {
		// The message is live in the channel; log and keep going so the
		// author still gets a confirmation.
		p.logger.ErrorContext(ctx, "Failed to record published post",
			"server_id", serverID, "channel_message_id", msg.ID, "error", err)
	}

	p.logger.InfoContext(ctx, "Post published",
		"server_id", serverID, "user_id", userID,
		"channel_message_id", msg.ID, "has_photo", photoID != "")
	return msg, nil
}

func (p *Publisher) send(ctx context.Context, channel any, content, photoID string, buttons *models.InlineKeyboardMarkup) (*models.Message, error) {
	var markup models.ReplyMarkup
	if buttons != nil {
		markup = buttons
	}

	if photoID != "" {
		return p.sender.SendPhoto(ctx, &bot.SendPhotoParams{
			ChatID:      channel,
			Photo:       &models.InputFileString{Data: photoID},
			Caption:     content,
			ReplyMarkup: markup,
		})
	}
	return p.sender.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      channel,
		Text:        content,
		ReplyMarkup: markup,
	})
}
