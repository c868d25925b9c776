package handlers

import (
	"context"
	"fmt"
	"strings"
	"time"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/redteam-region722/TG-bot/internal/posting"
	"github.com/redteam-region722/TG-bot/internal/telegram"
)

// NewPostMenuHandler handles /post: it shows every server's current
// configuration and posting status, then asks which server to post to.
func NewPostMenuHandler(deps HandlerDeps) tgbot.HandlerFunc {
	log := deps.Logger.With("handler", "post_menu")

	return func(ctx context.Context, b *tgbot.Bot, update *models.Update) {
		chatID := update.Message.Chat.ID

		configs, err := deps.Store.GetAllServerConfigs(ctx, deps.Config.ServerCount())
		if err != nil {
			log.ErrorContext(ctx, "Failed to load server configs", "error", err)
			sendHTML(ctx, deps, b, chatID, "❌ Could not load server configurations. Please try again.")
			return
		}

		var sb strings.Builder
		sb.WriteString("📤 <b>Post to Server</b>\n\n<b>Current Server Configurations:</b>\n\n")

		now := time.Now().UTC()
		for _, cfg := range configs {
			permission := "✅ Enabled"
			if !cfg.PostingEnabled {
				permission = "❌ Disabled"
			}

			status := "✅ Ready"
			canPost, remaining, err := deps.Store.CanPostNow(ctx, cfg.ServerID, now)
			if err != nil {
				log.ErrorContext(ctx, "Failed to check post gap", "server_id", cfg.ServerID, "error", err)
			} else if !canPost {
				status = fmt.Sprintf("⏳ Wait %d min", remaining)
			}

			pendingInfo := ""
			if count, err := deps.Store.CountPendingPosts(ctx, cfg.ServerID, 0); err == nil && count > 0 {
				pendingInfo = fmt.Sprintf(" | 📋 %d pending", count)
			}

			fmt.Fprintf(&sb,
				"<b>🖥️ %s</b>\nPost Permission: %s\nStatus: %s%s\nFooter: %s\nButton 1: %s\nButton 2: %s\nTime Gap: %d minutes\n\n",
				deps.Config.ServerName(cfg.ServerID), permission, status, pendingInfo,
				orNotSet(posting.Preview(cfg.FooterText, 30)),
				orNotSet(cfg.Button1Text), orNotSet(cfg.Button2Text), cfg.MinTimeGap)
		}

		sb.WriteString("Select a server to post:")

		sendHTMLMarkup(ctx, deps, b, chatID, sb.String(),
			telegram.PostServerKeyboard(deps.Config.ServerNames))
	}
}

func orNotSet(s string) string {
	if strings.TrimSpace(s) == "" {
		return "Not set"
	}
	return s
}
