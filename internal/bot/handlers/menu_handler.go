package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/usat/taklifbot/internal/bot/texts"
)

// NewMenuHandler returns a handler for the /menu command. Registered users
// get the main menu; everyone else is pointed at /start.
func NewMenuHandler(deps HandlerDeps) bot.HandlerFunc {
	return menuHandler{deps}.Handle
}

type menuHandler struct {
	deps HandlerDeps
}

func (h menuHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "menu")

	if update.Message == nil {
		log.WarnContext(ctx, "Menu handler received update with nil message", "update_id", update.ID)
		return
	}

	chatID := update.Message.Chat.ID
	conv := h.deps.States.Get(chatID)
	t := texts.For(conv.Language)

	if !conv.Registered {
		// State is in-memory only; after a restart the local store still
		// knows the user.
		user, err := h.deps.Store.FindUser(ctx, chatID)
		if err != nil || user == nil {
			sendText(ctx, b, log, chatID, t.PleaseRegister)
			return
		}
		conv.Registered = true
		conv.Language = user.Language
		conv.FullName = user.FullName
		t = texts.For(conv.Language)
	}

	conv.State = StateIdle
	h.deps.States.Set(chatID, conv)

	sendKeyboard(ctx, b, log, chatID, t.WelcomeText(conv.FullName), mainMenuKeyboard(t))
}
