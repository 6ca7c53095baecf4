package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/usat/taklifbot/internal/bot/texts"
)

const adminRecentLimit = 5

// NewAdminHandler returns a handler for the /admin command. It summarizes
// the local store: totals plus the most recent users and tickets. Access
// is restricted by the AdminOnly middleware at registration time.
func NewAdminHandler(deps HandlerDeps) bot.HandlerFunc {
	return adminHandler{deps}.Handle
}

type adminHandler struct {
	deps HandlerDeps
}

func (h adminHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "admin")

	if update.Message == nil || update.Message.From == nil {
		log.WarnContext(ctx, "Admin handler received update with nil message or sender", "update_id", update.ID)
		return
	}

	chatID := update.Message.Chat.ID
	conv := h.deps.States.Get(chatID)
	t := texts.For(conv.Language)

	var sb strings.Builder
	fmt.Fprintf(&sb, t.AdminStats,
		h.deps.Store.CountUsers(ctx), h.deps.Store.CountMessages(ctx))

	sb.WriteString(t.AdminRecentUsers)
	users, err := h.deps.Store.RecentUsers(ctx, adminRecentLimit)
	if err != nil || len(users) == 0 {
		sb.WriteString(t.NoUsers + "\n")
	} else {
		for _, u := range users {
			synced := "⏳"
			if u.Synced {
				synced = "✅"
			}
			fmt.Fprintf(&sb, "%s %s - %s, %s\n", synced, u.FullName, u.Course, u.Direction)
		}
	}

	sb.WriteString(t.AdminRecentMessages)
	messages, err := h.deps.Store.RecentMessages(ctx, adminRecentLimit)
	if err != nil || len(messages) == 0 {
		sb.WriteString(t.NoMessages + "\n")
	} else {
		for _, m := range messages {
			fmt.Fprintf(&sb, "%s [%s] %s: %s\n",
				m.TicketNumber, m.Priority, m.TicketType, truncate(m.Text, 60))
		}
	}

	sendText(ctx, b, log, chatID, sb.String())
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
