package tasks

import (
	"context"
	"fmt"
	"time"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/redteam-region722/TG-bot/internal/database"
	"github.com/redteam-region722/TG-bot/internal/posting"
)

// newPendingPostsTask returns the task that publishes scheduled posts whose
// time has come. Each run drains all due posts; a failure on one post is
// logged and does not block the rest.
func newPendingPostsTask(deps TaskDeps) ScheduledTaskFunc {
	log := deps.Logger.With("task", "pending_posts")

	return func(ctx context.Context) error {
		now := time.Now().UTC()
		posts, err := deps.Store.GetPendingPostsReady(ctx, now)
		if err != nil {
			return fmt.Errorf("failed to fetch ready pending posts: %w", err)
		}
		if len(posts) == 0 {
			return nil
		}

		log.InfoContext(ctx, "Processing pending posts", "count", len(posts))

		for _, post := range posts {
			if err := sendPendingPost(ctx, deps, post); err != nil {
				log.ErrorContext(ctx, "Error sending pending post",
					"pending_id", post.ID.Hex(), "server_id", post.ServerID, "error", err)
			}
		}
		return nil
	}
}

func sendPendingPost(ctx context.Context, deps TaskDeps, post *database.PendingPost) error {
	msg, err := deps.Publisher.Publish(ctx, post.ServerID, post.UserID, post.MessageText, post.PhotoID)
	if err != nil {
		return err
	}

	notifyAuthor(ctx, deps, post)

	if err := deps.Store.MarkPendingPostSent(ctx, post.ID); err != nil {
		return fmt.Errorf("published but failed to mark sent: %w", err)
	}

	deps.Logger.InfoContext(ctx, "Sent pending post",
		"pending_id", post.ID.Hex(), "server_id", post.ServerID, "channel_message_id", msg.ID)
	return nil
}

// notifyAuthor tells the post's author their scheduled post went out.
// Notification failures are logged only; the post is already live.
func notifyAuthor(ctx context.Context, deps TaskDeps, post *database.PendingPost) {
	postType := "Post"
	if post.HasPhoto() {
		postType = "Photo Post"
	}

	preview := post.MessageText
	if preview == "" {
		preview = "[Photo only]"
	}
	preview = posting.Preview(preview, 100)

	text := fmt.Sprintf(
		"✅ <b>Pending %s Sent!</b>\n\nYour post to %s has been published.\n\n<b>Content:</b>\n%s",
		postType, deps.Config.ServerName(post.ServerID), preview,
	)

	_, err := deps.TgBot.SendMessage(ctx, &tgbot.SendMessageParams{
		ChatID:    post.UserID,
		Text:      text,
		ParseMode: models.ParseModeHTML,
	})
	if err != nil {
		deps.Logger.ErrorContext(ctx, "Could not notify post author",
			"user_id", post.UserID, "pending_id", post.ID.Hex(), "error", err)
	}
}
