package handlers

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/usat/taklifbot/internal/bot/texts"
)

// NewStatusHandler returns a handler for the /status command, which shows
// whether the backend is reachable and how many records are waiting for
// reconciliation.
func NewStatusHandler(deps HandlerDeps) bot.HandlerFunc {
	return statusHandler{deps}.Handle
}

type statusHandler struct {
	deps HandlerDeps
}

func (h statusHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "status")

	if update.Message == nil {
		log.WarnContext(ctx, "Status handler received update with nil message", "update_id", update.ID)
		return
	}

	chatID := update.Message.Chat.ID
	t := texts.For(h.deps.States.Get(chatID).Language)

	backend := t.StatusBackendOffline
	if h.deps.Backend.GetStatus().IsOnline {
		backend = t.StatusBackendOnline
	}

	pendingMessages := 0
	if msgs, err := h.deps.Store.PendingMessages(ctx); err == nil {
		pendingMessages = len(msgs)
	}
	pendingUsers := 0
	if users, err := h.deps.Store.UnsyncedUsers(ctx); err == nil {
		pendingUsers = len(users)
	}

	sendText(ctx, b, log, chatID, fmt.Sprintf(t.StatusBody, backend, pendingMessages, pendingUsers))
}
