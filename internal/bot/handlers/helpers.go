package handlers

import (
	"context"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// sendHTML sends an HTML-formatted message, logging send failures.
func sendHTML(ctx context.Context, deps HandlerDeps, b *tgbot.Bot, chatID any, text string) {
	sendHTMLMarkup(ctx, deps, b, chatID, text, nil)
}

// sendHTMLMarkup sends an HTML-formatted message with a reply markup.
func sendHTMLMarkup(ctx context.Context, deps HandlerDeps, b *tgbot.Bot, chatID any, text string, markup models.ReplyMarkup) {
	_, err := b.SendMessage(ctx, &tgbot.SendMessageParams{
		ChatID:      chatID,
		Text:        text,
		ParseMode:   models.ParseModeHTML,
		ReplyMarkup: markup,
	})
	if err != nil {
		deps.Logger.ErrorContext(ctx, "Failed to send message", "chat_id", chatID, "error", err)
	}
}

// editHTML edits a message in place, logging edit failures.
func editHTML(ctx context.Context, deps HandlerDeps, b *tgbot.Bot, chatID any, messageID int, text string, markup models.ReplyMarkup) {
	_, err := b.EditMessageText(ctx, &tgbot.EditMessageTextParams{
		ChatID:      chatID,
		MessageID:   messageID,
		Text:        text,
		ParseMode:   models.ParseModeHTML,
		ReplyMarkup: markup,
	})
	if err != nil {
		deps.Logger.ErrorContext(ctx, "Failed to edit message", "chat_id", chatID, "message_id", messageID, "error", err)
	}
}

// answerCallback acknowledges a callback query, optionally with an alert.
func answerCallback(ctx context.Context, deps HandlerDeps, b *tgbot.Bot, queryID, text string, alert bool) {
	_, err := b.AnswerCallbackQuery(ctx, &tgbot.AnswerCallbackQueryParams{
		CallbackQueryID: queryID,
		Text:            text,
		ShowAlert:       alert,
	})
	if err != nil {
		deps.Logger.ErrorContext(ctx, "Failed to answer callback query", "error", err)
	}
}

// callbackMessage extracts the accessible message a callback query was
// attached to, or nil when Telegram no longer exposes it.
func callbackMessage(q *models.CallbackQuery) *models.Message {
	if q == nil {
		return nil
	}
	return q.Message.Message
}
