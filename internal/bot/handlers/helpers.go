// Package handlers contains the Telegram conversation handlers, their
// registration logic, and middleware.
package handlers

import (
	"context"
	"log/slog"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

func sendText(ctx context.Context, b *bot.Bot, log *slog.Logger, chatID int64, text string) {
	_, err := b.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: text})
	if err != nil {
		log.ErrorContext(ctx, "Failed to send message", "error", err, "chat_id", chatID)
	}
}

func sendKeyboard(ctx context.Context, b *bot.Bot, log *slog.Logger, chatID int64, text string, kb *models.InlineKeyboardMarkup) {
	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        text,
		ReplyMarkup: kb,
	})
	if err != nil {
		log.ErrorContext(ctx, "Failed to send keyboard message", "error", err, "chat_id", chatID)
	}
}

// callbackChatID extracts the chat ID from a callback update, covering the
// inaccessible-message case.
func callbackChatID(update *models.Update) int64 {
	if update.CallbackQuery.Message.Message.Date != 0 {
		return update.CallbackQuery.Message.Message.Chat.ID
	}
	return update.CallbackQuery.Message.InaccessibleMessage.Chat.ID
}
