package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/usat/taklifbot/internal/bot/texts"
	"github.com/usat/taklifbot/internal/feedback"
	"github.com/usat/taklifbot/internal/storage"
)

// NewCallbackHandler returns the handler for all inline keyboard
// callbacks. Routing is by data prefix; unknown data resets the user to
// the menu hint rather than failing silently.
func NewCallbackHandler(deps HandlerDeps) bot.HandlerFunc {
	return callbackHandler{deps}.Handle
}

type callbackHandler struct {
	deps HandlerDeps
}

func (h callbackHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "callback")

	if update.CallbackQuery == nil {
		return
	}

	// Acknowledge immediately so the client stops its spinner.
	_, err := b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: update.CallbackQuery.ID,
	})
	if err != nil {
		log.WarnContext(ctx, "Failed to answer callback query", "error", err)
	}

	chatID := callbackChatID(update)
	data := update.CallbackQuery.Data
	conv := h.deps.States.Get(chatID)
	t := texts.For(conv.Language)

	switch {
	case strings.HasPrefix(data, "lang_"):
		h.handleLanguage(ctx, b, log, chatID, conv, strings.TrimPrefix(data, "lang_"))
	case data == "menu_suggestion":
		h.handleTicketStart(ctx, b, log, chatID, conv, t, storage.TicketSuggestion)
	case data == "menu_complaint":
		h.handleTicketStart(ctx, b, log, chatID, conv, t, storage.TicketComplaint)
	case strings.HasPrefix(data, "course_"):
		h.handleCourse(ctx, b, log, chatID, conv, t, strings.TrimPrefix(data, "course_"))
	case strings.HasPrefix(data, "dir_page_"):
		h.handleDirectionPage(ctx, b, log, update, conv, t, strings.TrimPrefix(data, "dir_page_"))
	case strings.HasPrefix(data, "dir_"):
		h.handleDirection(ctx, b, log, chatID, conv, t, strings.TrimPrefix(data, "dir_"))
	case strings.HasPrefix(data, "cat_"):
		h.handleCategory(ctx, b, log, chatID, conv, t, strings.TrimPrefix(data, "cat_"))
	case data == "back_to_menu":
		h.deps.States.Reset(chatID)
		conv = h.deps.States.Get(chatID)
		sendKeyboard(ctx, b, log, chatID, t.WelcomeText(conv.FullName), mainMenuKeyboard(t))
	default:
		log.WarnContext(ctx, "Unknown callback data", "chat_id", chatID, "data", data)
		sendText(ctx, b, log, chatID, t.CallbackError)
	}
}

func (h callbackHandler) handleLanguage(ctx context.Context, b *bot.Bot, log *slog.Logger, chatID int64, conv Conversation, lang string) {
	if lang != "uz" && lang != "ru" {
		lang = texts.DefaultLanguage
	}
	conv.Language = lang
	t := texts.For(lang)

	if conv.Registered {
		conv.State = StateIdle
		h.deps.States.Set(chatID, conv)
		sendKeyboard(ctx, b, log, chatID, t.WelcomeText(conv.FullName), mainMenuKeyboard(t))
		return
	}

	conv.State = StateWaitingName
	h.deps.States.Set(chatID, conv)
	sendText(ctx, b, log, chatID, t.WelcomeRegistration)
}

func (h callbackHandler) handleTicketStart(ctx context.Context, b *bot.Bot, log *slog.Logger, chatID int64, conv Conversation, t *texts.Table, ticketType storage.TicketType) {
	if !conv.Registered {
		sendText(ctx, b, log, chatID, t.PleaseRegister)
		return
	}

	conv.TicketType = ticketType
	conv.Category = ""
	conv.Substatus = ""

	if ticketType == storage.TicketComplaint {
		h.deps.States.Set(chatID, conv)
		prompt := fmt.Sprintf(t.SelectCategory, t.TicketTypeName(string(ticketType)))
		sendKeyboard(ctx, b, log, chatID, prompt, categoryKeyboard(t))
		return
	}

	conv.State = StateWaitingText
	h.deps.States.Set(chatID, conv)
	prompt := fmt.Sprintf(t.EnterMessage, t.TicketTypeName(string(ticketType)))
	sendKeyboard(ctx, b, log, chatID, prompt, backKeyboard(t))
}

func (h callbackHandler) handleCourse(ctx context.Context, b *bot.Bot, log *slog.Logger, chatID int64, conv Conversation, t *texts.Table, idxStr string) {
	idx, err := strconv.Atoi(idxStr)
	if err != nil || idx < 0 || idx >= len(t.Courses) {
		sendText(ctx, b, log, chatID, t.CallbackError)
		return
	}

	conv.Course = t.Courses[idx]
	conv.State = StateWaitingDirection
	conv.DirectionPage = 0
	h.deps.States.Set(chatID, conv)

	sendText(ctx, b, log, chatID, fmt.Sprintf(t.CourseSelected, conv.Course))
	sendKeyboard(ctx, b, log, chatID, t.SelectDirection, directionKeyboard(t, 0))
}

func (h callbackHandler) handleDirectionPage(ctx context.Context, b *bot.Bot, log *slog.Logger, update *models.Update, conv Conversation, t *texts.Table, pageStr string) {
	chatID := callbackChatID(update)

	page, err := strconv.Atoi(pageStr)
	if err != nil {
		sendText(ctx, b, log, chatID, t.CallbackError)
		return
	}

	conv.DirectionPage = page
	h.deps.States.Set(chatID, conv)

	// Swap the keyboard in place instead of stacking a new message per page.
	_, err = b.EditMessageReplyMarkup(ctx, &bot.EditMessageReplyMarkupParams{
		ChatID:      chatID,
		MessageID:   update.CallbackQuery.Message.Message.ID,
		ReplyMarkup: directionKeyboard(t, page),
	})
	if err != nil {
		log.WarnContext(ctx, "Failed to edit direction keyboard", "chat_id", chatID, "error", err)
	}
}

func (h callbackHandler) handleDirection(ctx context.Context, b *bot.Bot, log *slog.Logger, chatID int64, conv Conversation, t *texts.Table, key string) {
	label, ok := t.Directions[key]
	if !ok {
		sendText(ctx, b, log, chatID, t.CallbackError)
		return
	}

	conv.Direction = label
	sendText(ctx, b, log, chatID, fmt.Sprintf(t.DirectionSelected, label))
	sendText(ctx, b, log, chatID, t.RegistrationCompleting)

	res, err := h.deps.Feedback.CompleteRegistration(ctx, feedback.Registration{
		ChatID:    chatID,
		FullName:  conv.FullName,
		Phone:     conv.Phone,
		Course:    conv.Course,
		Direction: conv.Direction,
		Language:  conv.Language,
	})
	if err != nil {
		log.ErrorContext(ctx, "Registration failed", "chat_id", chatID, "error", err)
		conv.State = StateWaitingName
		h.deps.States.Set(chatID, conv)
		sendText(ctx, b, log, chatID, t.RegistrationError)
		return
	}

	conv.State = StateIdle
	conv.Registered = true
	h.deps.States.Set(chatID, conv)

	done := t.RegistrationComplete
	if res.Offline {
		done = t.RegistrationCompleteOffline
	}
	sendText(ctx, b, log, chatID, done)
	sendKeyboard(ctx, b, log, chatID, t.WelcomeText(conv.FullName), mainMenuKeyboard(t))
}

func (h callbackHandler) handleCategory(ctx context.Context, b *bot.Bot, log *slog.Logger, chatID int64, conv Conversation, t *texts.Table, key string) {
	label, ok := t.Categories[key]
	if !ok {
		sendText(ctx, b, log, chatID, t.CallbackError)
		return
	}

	conv.Category = label
	conv.Substatus = texts.CategoryCodes[key]
	conv.State = StateWaitingText
	h.deps.States.Set(chatID, conv)

	prompt := fmt.Sprintf(t.EnterMessage, t.TicketTypeName(string(conv.TicketType)))
	sendKeyboard(ctx, b, log, chatID, prompt, backKeyboard(t))
}
