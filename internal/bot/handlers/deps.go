package handlers

import (
	"log/slog"

	"github.com/usat/taklifbot/internal/config"
	"github.com/usat/taklifbot/internal/feedback"
	"github.com/usat/taklifbot/internal/storage"
)

// HandlerDeps provides dependencies for Telegram command handlers.
type HandlerDeps struct {
	Logger   *slog.Logger
	Config   *config.Config
	Store    storage.Store
	Feedback *feedback.Service
	Backend  feedback.Backend
	States   *Conversations
}
