package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/usat/taklifbot/internal/bot/texts"
	"github.com/usat/taklifbot/internal/feedback"
	"github.com/usat/taklifbot/internal/validate"
)

// NewMessageHandler returns the default handler for free-form text. It
// routes the message by the conversation state: registration steps collect
// and validate fields, the submission step validates the ticket body and
// hands it to the submission pipeline. During keyboard-only steps the
// current step's keyboard is shown again; outside a flow the user is
// pointed back at the menu.
func NewMessageHandler(deps HandlerDeps) bot.HandlerFunc {
	return messageHandler{deps}.Handle
}

type messageHandler struct {
	deps HandlerDeps
}

func (h messageHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "message")

	if update.Message == nil || update.Message.From == nil {
		return
	}
	text := strings.TrimSpace(update.Message.Text)
	if text == "" || strings.HasPrefix(text, "/") {
		return
	}

	chatID := update.Message.Chat.ID
	conv := h.deps.States.Get(chatID)
	t := texts.For(conv.Language)

	switch conv.State {
	case StateWaitingName:
		h.handleName(ctx, b, log, chatID, conv, t, text)
	case StateWaitingPhone:
		h.handlePhone(ctx, b, log, chatID, conv, t, text)
	case StateWaitingText:
		h.handleTicketText(ctx, b, log, chatID, conv, t, text)
	case StateWaitingLanguage, StateWaitingCourse, StateWaitingDirection:
		prompt, kb := repromptKeyboard(conv, t)
		sendKeyboard(ctx, b, log, chatID, prompt, kb)
	default:
		if conv.Registered {
			h.deps.Feedback.TouchActivity(ctx, chatID)
			sendKeyboard(ctx, b, log, chatID, t.UseMenu, mainMenuKeyboard(t))
			return
		}
		sendText(ctx, b, log, chatID, t.PleaseRegister)
	}
}

// repromptKeyboard picks the prompt and keyboard for a keyboard-only step,
// so stray text re-shows the step instead of derailing the flow.
func repromptKeyboard(conv Conversation, t *texts.Table) (string, *models.InlineKeyboardMarkup) {
	switch conv.State {
	case StateWaitingCourse:
		return t.SelectCourse, courseKeyboard(t)
	case StateWaitingDirection:
		return t.SelectDirection, directionKeyboard(t, conv.DirectionPage)
	default:
		return t.LanguageSelection, languageKeyboard()
	}
}

func (h messageHandler) handleName(ctx context.Context, b *bot.Bot, log *slog.Logger, chatID int64, conv Conversation, t *texts.Table, text string) {
	if !validate.FullName(text) {
		sendText(ctx, b, log, chatID, t.InvalidName)
		return
	}

	conv.FullName = text
	conv.State = StateWaitingPhone
	h.deps.States.Set(chatID, conv)
	sendText(ctx, b, log, chatID, t.EnterPhone)
}

func (h messageHandler) handlePhone(ctx context.Context, b *bot.Bot, log *slog.Logger, chatID int64, conv Conversation, t *texts.Table, text string) {
	if !validate.Phone(text) {
		sendText(ctx, b, log, chatID, t.InvalidPhone)
		return
	}

	conv.Phone = text
	conv.State = StateWaitingCourse
	h.deps.States.Set(chatID, conv)
	sendKeyboard(ctx, b, log, chatID, t.SelectCourse, courseKeyboard(t))
}

func (h messageHandler) handleTicketText(ctx context.Context, b *bot.Bot, log *slog.Logger, chatID int64, conv Conversation, t *texts.Table, text string) {
	switch validate.TicketText(text) {
	case validate.TextTooShort:
		sendText(ctx, b, log, chatID, t.MessageTooShort)
		return
	case validate.TextTooLong:
		sendText(ctx, b, log, chatID, t.MessageTooLong)
		return
	case validate.TextSpam:
		sendText(ctx, b, log, chatID, t.MessageSpam)
		return
	}

	res, err := h.deps.Feedback.SubmitTicket(ctx, feedback.Ticket{
		ChatID:     chatID,
		Language:   conv.Language,
		TicketType: conv.TicketType,
		Category:   conv.Category,
		Substatus:  conv.Substatus,
		Text:       text,
	})
	if err != nil {
		log.ErrorContext(ctx, "Ticket submission failed", "chat_id", chatID, "error", err)
		sendText(ctx, b, log, chatID, t.MessageError)
		return
	}

	typeName := t.TicketTypeName(string(conv.TicketType))
	confirmation := t.MessageSubmitted
	if res.Offline {
		confirmation = t.MessageSubmittedOffline
	}
	sendText(ctx, b, log, chatID, fmt.Sprintf(confirmation, typeName))

	h.deps.States.Reset(chatID)
	conv = h.deps.States.Get(chatID)
	sendKeyboard(ctx, b, log, chatID, t.WelcomeText(conv.FullName), mainMenuKeyboard(t))
}
