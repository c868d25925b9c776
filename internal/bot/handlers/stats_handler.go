package handlers

import (
	"context"
	"fmt"
	"strings"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/redteam-region722/TG-bot/internal/timeutil"
)

// NewManagerStatsHandler handles /status: overall and per-server post counts.
func NewManagerStatsHandler(deps HandlerDeps) tgbot.HandlerFunc {
	log := deps.Logger.With("handler", "manager_stats")

	return func(ctx context.Context, b *tgbot.Bot, update *models.Update) {
		chatID := update.Message.Chat.ID

		totalPosts, err := deps.Store.CountPosts(ctx, 0, 0)
		if err != nil {
			log.ErrorContext(ctx, "Failed to count posts", "error", err)
			sendHTML(ctx, deps, b, chatID, "❌ Could not load statistics. Please try again.")
			return
		}
		totalPending, err := deps.Store.CountPendingPosts(ctx, 0, 0)
		if err != nil {
			log.ErrorContext(ctx, "Failed to count pending posts", "error", err)
			sendHTML(ctx, deps, b, chatID, "❌ Could not load statistics. Please try again.")
			return
		}

		var sb strings.Builder
		fmt.Fprintf(&sb,
			"📊 <b>Statistics</b>\n\n<b>📤 Post Statistics:</b>\n✅ Total Posts: %d\n⏳ Pending Posts: %d\n\n<b>By Server:</b>\n",
			totalPosts, totalPending)

		for serverID := 1; serverID <= deps.Config.ServerCount(); serverID++ {
			posted, _ := deps.Store.CountPosts(ctx, serverID, 0)
			pending, _ := deps.Store.CountPendingPosts(ctx, serverID, 0)
			fmt.Fprintf(&sb, "%s: %d posted, %d pending\n",
				deps.Config.ServerName(serverID), posted, pending)
		}

		sendHTML(ctx, deps, b, chatID, sb.String())
	}
}

// NewAdminStatsHandler handles /stats: the admin breakdown per manager and
// per server.
func NewAdminStatsHandler(deps HandlerDeps) tgbot.HandlerFunc {
	log := deps.Logger.With("handler", "admin_stats")

	return func(ctx context.Context, b *tgbot.Bot, update *models.Update) {
		chatID := update.Message.Chat.ID

		totalPosts, err := deps.Store.CountPosts(ctx, 0, 0)
		if err != nil {
			log.ErrorContext(ctx, "Failed to count posts", "error", err)
			sendHTML(ctx, deps, b, chatID, "❌ Could not load statistics. Please try again.")
			return
		}
		totalPending, _ := deps.Store.CountPendingPosts(ctx, 0, 0)
		activeUsers, _ := deps.Store.CountActiveUsers(ctx)

		var sb strings.Builder
		fmt.Fprintf(&sb,
			"📊 <b>Full Statistics</b>\n\n📤 <b>Total Posts:</b> %d\n⏳ <b>Total Pending:</b> %d\n👔 <b>Managers:</b> %d\n👥 <b>Active Users:</b> %d\n\n<b>📊 Posts by Manager:</b>\n\n",
			totalPosts, totalPending, len(deps.Config.ManagerIDs), activeUsers)

		for idx, managerID := range deps.Config.ManagerIDs {
			posted, _ := deps.Store.CountPosts(ctx, 0, managerID)
			pending, _ := deps.Store.CountPendingPosts(ctx, 0, managerID)

			fmt.Fprintf(&sb, "<b>👤 Manager %d:</b>\n   Total: %d posted, %d pending\n", idx+1, posted, pending)
			for serverID := 1; serverID <= deps.Config.ServerCount(); serverID++ {
				sp, _ := deps.Store.CountPosts(ctx, serverID, managerID)
				spp, _ := deps.Store.CountPendingPosts(ctx, serverID, managerID)
				fmt.Fprintf(&sb, "   %s: %d posted, %d pending\n", deps.Config.ServerName(serverID), sp, spp)
			}
			sb.WriteString("\n")
		}

		if recent, err := deps.Store.GetRecentAnnouncements(ctx, 1); err == nil && len(recent) > 0 {
			fmt.Fprintf(&sb, "📢 <b>Last Broadcast:</b> %s\n",
				timeutil.FormatDayClock(recent[0].CreatedAt, deps.Config.Location))
		}

		sendHTML(ctx, deps, b, chatID, sb.String())
	}
}
