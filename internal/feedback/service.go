// Package feedback implements the submission pipeline: attempt the remote
// backend first, fall back to the local durable store when it is
// unreachable, and leave the staged records for the reconciliation loop.
package feedback

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/usat/taklifbot/internal/api"
	"github.com/usat/taklifbot/internal/config"
	"github.com/usat/taklifbot/internal/retry"
	"github.com/usat/taklifbot/internal/storage"
)

// Backend is the remote service surface the submission pipeline needs.
type Backend interface {
	CheckUserExists(ctx context.Context, chatID int64) (*storage.User, error)
	RegisterUser(ctx context.Context, user *storage.User) error
	SaveMessage(ctx context.Context, message *storage.Message) error
	UpdateUserActivity(ctx context.Context, chatID int64)
	GetStatus() api.Status
}

// Service coordinates remote submission with the local fallback path.
type Service struct {
	logger  *slog.Logger
	store   storage.Store
	backend Backend
	cfg     config.APIConfig
}

// NewService creates the submission service.
func NewService(logger *slog.Logger, store storage.Store, backend Backend, cfg config.APIConfig) *Service {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{
		logger:  logger.With("component", "feedback"),
		store:   store,
		backend: backend,
		cfg:     cfg,
	}
}

// Registration carries the fields collected by the registration flow.
type Registration struct {
	ChatID    int64
	FullName  string
	Phone     string
	Course    string
	Direction string
	Language  string
}

// Ticket carries the fields collected by the ticket submission flow.
// Category and Substatus are empty for suggestions.
type Ticket struct {
	ChatID     int64
	Language   string
	TicketType storage.TicketType
	Category   string
	Substatus  string
	Text       string
}

// Result reports how a submission was resolved.
type Result struct {
	// Offline is true when the record was staged locally because the
	// backend was unreachable.
	Offline bool
	// AlreadyRegistered is true when the backend reported a duplicate
	// registration. The conflict is not fatal to the conversation.
	AlreadyRegistered bool
}

// LookupUser finds a user by conversation identity, preferring the backend
// and falling back to the local store when it is unreachable. The second
// return value is true when the lookup was served from the local store.
func (s *Service) LookupUser(ctx context.Context, chatID int64) (*storage.User, bool, error) {
	user, err := retry.Do(ctx, s.cfg.CheckAttempts, s.cfg.CheckBaseDelay,
		func(ctx context.Context) (*storage.User, error) {
			return s.backend.CheckUserExists(ctx, chatID)
		})
	if err == nil {
		return user, false, nil
	}

	s.logger.WarnContext(ctx, "Backend unavailable for lookup, checking local store",
		"chat_id", chatID, "error", err)

	local, lerr := s.store.FindUser(ctx, chatID)
	if lerr != nil {
		return nil, true, fmt.Errorf("local lookup failed after backend failure: %w", lerr)
	}
	return local, true, nil
}

// TouchActivity updates the user's last activity stamp, remotely when the
// backend is believed online, locally otherwise. Best-effort on both paths.
func (s *Service) TouchActivity(ctx context.Context, chatID int64) {
	if s.backend.GetStatus().IsOnline {
		s.backend.UpdateUserActivity(ctx, chatID)
		return
	}
	if _, err := s.store.UpdateActivity(ctx, chatID); err != nil {
		s.logger.WarnContext(ctx, "Local activity update failed", "chat_id", chatID, "error", err)
	}
}

// CompleteRegistration finishes the registration flow: the record is pushed
// to the backend through the retry policy and persisted locally either way,
// synced when the backend accepted it, unsynced when it was unreachable.
// Exactly one stored UserRecord results from every completed flow.
func (s *Service) CompleteRegistration(ctx context.Context, reg Registration) (Result, error) {
	now := time.Now().UTC()
	user := &storage.User{
		UserID:       reg.ChatID,
		ChatID:       reg.ChatID,
		FullName:     reg.FullName,
		Phone:        reg.Phone,
		Course:       reg.Course,
		Direction:    reg.Direction,
		Language:     reg.Language,
		LastActivity: now,
		Synced:       false,
	}

	var res Result
	_, err := retry.Do(ctx, s.cfg.SubmitAttempts, s.cfg.SubmitBaseDelay,
		func(ctx context.Context) (struct{}, error) {
			err := s.backend.RegisterUser(ctx, user)
			if errors.Is(err, api.ErrConflict) {
				// Duplicate registration: the record already exists remotely.
				// Reported distinctly, never retried, not fatal to the flow.
				res.AlreadyRegistered = true
				return struct{}{}, nil
			}
			return struct{}{}, err
		})

	if err == nil {
		user.Synced = true
		user.SyncedAt = sql.NullTime{Time: now, Valid: true}
	} else {
		s.logger.WarnContext(ctx, "Backend registration failed, saving locally",
			"chat_id", reg.ChatID, "error", err)
		res.Offline = true
	}

	if saveErr := s.store.SaveUser(ctx, user); saveErr != nil {
		if err == nil {
			// Remote accepted the record; a failed local mirror is not fatal
			s.logger.ErrorContext(ctx, "Failed to mirror registered user locally",
				"chat_id", reg.ChatID, "error", saveErr)
			return res, nil
		}
		// No remote copy and no local copy: the one unrecoverable case
		return res, fmt.Errorf("failed to persist registration: %w", saveErr)
	}

	s.logger.InfoContext(ctx, "Registration completed",
		"chat_id", reg.ChatID, "offline", res.Offline, "already_registered", res.AlreadyRegistered)
	return res, nil
}

// SubmitTicket submits a ticket: remote first through the retry policy,
// local staging with status offline_pending when the backend is
// unreachable. A submission never silently drops: it either reaches the
// backend, lands in the local store, or returns an error.
func (s *Service) SubmitTicket(ctx context.Context, t Ticket) (Result, error) {
	if t.TicketType == storage.TicketComplaint && t.Substatus == "" {
		return Result{}, fmt.Errorf("complaint requires a category")
	}

	now := time.Now().UTC()
	msg := &storage.Message{
		MessageID:    now.UnixMilli(),
		UserID:       t.ChatID,
		ChatID:       t.ChatID,
		Timestamp:    now,
		Status:       storage.StatusPending,
		TicketType:   t.TicketType,
		Text:         t.Text,
		Language:     t.Language,
		IsActive:     false,
		TicketNumber: ticketNumber(now),
		Priority:     determinePriority(t.Category, t.Text),
	}
	if t.TicketType == storage.TicketComplaint {
		msg.Category = sql.NullString{String: t.Category, Valid: true}
		msg.Substatus = sql.NullString{String: t.Substatus, Valid: true}
	}

	var res Result
	_, err := retry.Do(ctx, s.cfg.SubmitAttempts, s.cfg.SubmitBaseDelay,
		func(ctx context.Context) (struct{}, error) {
			return struct{}{}, s.backend.SaveMessage(ctx, msg)
		})

	if err == nil {
		msg.Status = storage.StatusSynced
		msg.SyncedAt = sql.NullTime{Time: now, Valid: true}
		if saveErr := s.store.SaveMessage(ctx, msg); saveErr != nil {
			// Backend has the ticket; the local mirror is bookkeeping only
			s.logger.ErrorContext(ctx, "Failed to mirror submitted ticket locally",
				"message_id", msg.MessageID, "error", saveErr)
		}
		s.logger.InfoContext(ctx, "Ticket submitted",
			"message_id", msg.MessageID, "ticket_type", msg.TicketType)
		return res, nil
	}

	s.logger.WarnContext(ctx, "Backend submission failed, staging locally",
		"message_id", msg.MessageID, "error", err)

	msg.Status = storage.StatusOfflinePending
	if saveErr := s.store.SaveMessage(ctx, msg); saveErr != nil {
		return res, fmt.Errorf("failed to stage ticket locally: %w", saveErr)
	}

	res.Offline = true
	s.logger.InfoContext(ctx, "Ticket staged for reconciliation",
		"message_id", msg.MessageID, "ticket_type", msg.TicketType)
	return res, nil
}

// ticketNumber derives the human-facing ticket reference from the
// submission time.
func ticketNumber(at time.Time) string {
	millis := fmt.Sprintf("%d", at.UnixMilli())
	return "USAT-" + millis[len(millis)-6:]
}

var highPriorityKeywords = []string{"shoshilinch", "muhim", "zudlik", "tezkor"}

// Category labels carry emoji prefixes, so match on the name itself.
var highPriorityCategories = []string{"Dekanat", "O'qituvchi", "Деканат", "Преподаватель"}

// determinePriority applies the triage heuristic: urgency keywords or a
// high-priority category raise the ticket, long texts get medium priority.
func determinePriority(category, text string) string {
	lower := strings.ToLower(text)
	for _, kw := range highPriorityKeywords {
		if strings.Contains(lower, kw) {
			return "Yuqori"
		}
	}
	for _, name := range highPriorityCategories {
		if strings.Contains(category, name) {
			return "Yuqori"
		}
	}
	if len([]rune(text)) > 200 {
		return "O'rta"
	}
	return "Past"
}
