package handlers

import (
	"context"
	"slices"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/usat/taklifbot/internal/bot/texts"
)

// AdminOnly creates a middleware that rejects senders not in the
// configured admin list.
func AdminOnly(deps HandlerDeps) tgbot.Middleware {
	return func(next tgbot.HandlerFunc) tgbot.HandlerFunc {
		return func(ctx context.Context, b *tgbot.Bot, update *models.Update) {
			if update.Message == nil || update.Message.From == nil {
				next(ctx, b, update)
				return
			}

			userID := update.Message.From.ID
			if !slices.Contains(deps.Config.Telegram.AdminIDs, userID) {
				chatID := update.Message.Chat.ID
				log := deps.Logger.With("middleware", "AdminOnly")
				log.WarnContext(ctx, "Unauthorized access attempt", "user_id", userID, "chat_id", chatID)

				conv := deps.States.Get(chatID)
				sendText(ctx, b, log, chatID, texts.For(conv.Language).AdminOnly)
				return
			}

			next(ctx, b, update)
		}
	}
}
