package handlers

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/redteam-region722/TG-bot/internal/database"
	"github.com/redteam-region722/TG-bot/internal/posting"
	"github.com/redteam-region722/TG-bot/internal/timeutil"
)

// NewPendingHandler handles /pending: it lists the caller's scheduled posts
// with a delete button per post. The admin sees every manager's posts.
func NewPendingHandler(deps HandlerDeps) tgbot.HandlerFunc {
	log := deps.Logger.With("handler", "pending")

	return func(ctx context.Context, b *tgbot.Bot, update *models.Update) {
		user := update.Message.From
		chatID := update.Message.Chat.ID

		pending, err := collectPendingPosts(ctx, deps, user.ID)
		if err != nil {
			log.ErrorContext(ctx, "Failed to load pending posts", "user_id", user.ID, "error", err)
			sendHTML(ctx, deps, b, chatID, "❌ Could not load pending posts. Please try again.")
			return
		}

		if len(pending) == 0 {
			sendHTML(ctx, deps, b, chatID,
				"📋 <b>Pending Posts</b>\n\nYou have no pending posts scheduled.\n\nAll your posts have been published!")
			return
		}

		now := time.Now().UTC()
		var sb strings.Builder
		fmt.Fprintf(&sb, "📋 <b>Pending Posts (%d)</b>\n\n", len(pending))

		var rows [][]models.InlineKeyboardButton
		for idx, post := range pending {
			contentType := "📝 Text"
			if post.HasPhoto() {
				contentType = "📸 Photo"
			}
			preview := post.MessageText
			if preview == "" {
				preview = "[No text]"
			}

			fmt.Fprintf(&sb, "<b>%d. %s</b> - %s\n⏰ %s (in %s)\n💬 %s\n\n",
				idx+1, deps.Config.ServerName(post.ServerID), contentType,
				timeutil.FormatClock(post.ScheduledTime, deps.Config.Location),
				timeutil.Until(now, post.ScheduledTime),
				posting.Preview(preview, 30))

			rows = append(rows, []models.InlineKeyboardButton{{
				Text:         fmt.Sprintf("🗑️ Delete Post #%d", idx+1),
				CallbackData: "delete_pending_" + post.ID.Hex(),
			}})
		}

		sb.WriteString("Click a button below to delete a scheduled post:")

		sendHTMLMarkup(ctx, deps, b, chatID, sb.String(),
			&models.InlineKeyboardMarkup{InlineKeyboard: rows})
	}
}

// collectPendingPosts gathers pending posts across all servers ordered by
// scheduled time. A zero userID returns every manager's posts.
func collectPendingPosts(ctx context.Context, deps HandlerDeps, userID int64) ([]*database.PendingPost, error) {
	var all []*database.PendingPost
	for serverID := 1; serverID <= deps.Config.ServerCount(); serverID++ {
		posts, err := deps.Store.GetPendingPostsByServer(ctx, serverID)
		if err != nil {
			return nil, err
		}
		for _, p := range posts {
			if userID != 0 && userID != deps.Config.AdminID && p.UserID != userID {
				continue
			}
			all = append(all, p)
		}
	}

	sort.Slice(all, func(i, j int) bool {
		return all[i].ScheduledTime.Before(all[j].ScheduledTime)
	})
	return all, nil
}
