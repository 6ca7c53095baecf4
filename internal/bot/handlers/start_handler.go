package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/usat/taklifbot/internal/bot/texts"
)

// NewStartHandler returns a handler for the /start command. It looks the
// user up, backend first with a local fallback, and routes to the main
// menu or the registration flow accordingly.
func NewStartHandler(deps HandlerDeps) bot.HandlerFunc {
	return startHandler{deps}.Handle
}

type startHandler struct {
	deps HandlerDeps
}

func (h startHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "start")

	if update.Message == nil || update.Message.From == nil {
		log.WarnContext(ctx, "Start handler received update with nil message or sender", "update_id", update.ID)
		return
	}

	chatID := update.Message.Chat.ID
	log.InfoContext(ctx, "Handling /start command", "chat_id", chatID, "user_id", update.Message.From.ID)

	user, offline, err := h.deps.Feedback.LookupUser(ctx, chatID)
	if err != nil {
		log.ErrorContext(ctx, "User lookup failed", "chat_id", chatID, "error", err)
		sendText(ctx, b, log, chatID, texts.For(texts.DefaultLanguage).ErrorOccurred)
		return
	}

	if user != nil {
		conv := h.deps.States.Get(chatID)
		conv.State = StateIdle
		conv.Registered = true
		conv.Language = user.Language
		conv.FullName = user.FullName
		h.deps.States.Set(chatID, conv)

		h.deps.Feedback.TouchActivity(ctx, chatID)

		t := texts.For(user.Language)
		greeting := t.WelcomeText(user.FullName)
		if offline {
			greeting += "\n\n" + t.OfflineModeMenu
		}
		sendKeyboard(ctx, b, log, chatID, greeting, mainMenuKeyboard(t))
		return
	}

	conv := h.deps.States.Get(chatID)
	conv.State = StateWaitingLanguage
	conv.Registered = false
	h.deps.States.Set(chatID, conv)

	t := texts.For(texts.DefaultLanguage)
	sendKeyboard(ctx, b, log, chatID, t.LanguageSelection, languageKeyboard())
}
