package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
)

// Store defines the interface for local durable storage operations.
// Reads favor availability: a failed read logs and returns an empty
// collection instead of propagating. Writes return errors; a write failure
// is the one case with no further fallback and must be surfaced.
type Store interface {
	// Ping checks the database connection.
	Ping(ctx context.Context) error

	// ReadUsers returns all stored users. Returns an empty slice on read failure.
	ReadUsers(ctx context.Context) []User

	// WriteUsers replaces the whole users collection in one transaction.
	WriteUsers(ctx context.Context, users []User) error

	// ReadMessages returns all stored messages. Returns an empty slice on read failure.
	ReadMessages(ctx context.Context) []Message

	// WriteMessages replaces the whole messages collection in one transaction.
	WriteMessages(ctx context.Context, messages []Message) error

	// FindUser retrieves a user by chat ID. Returns nil, nil if not found.
	FindUser(ctx context.Context, chatID int64) (*User, error)

	// SaveUser upserts a user by chat ID, merging non-zero incoming fields
	// into any existing record.
	SaveUser(ctx context.Context, user *User) error

	// SaveMessage appends a new message record.
	SaveMessage(ctx context.Context, message *Message) error

	// UpdateActivity sets the user's last activity to now. Returns false
	// without error if the user is absent.
	UpdateActivity(ctx context.Context, chatID int64) (bool, error)

	// UnsyncedUsers returns users not yet accepted by the backend.
	UnsyncedUsers(ctx context.Context) ([]User, error)

	// PendingMessages returns messages staged with status offline_pending.
	PendingMessages(ctx context.Context) ([]Message, error)

	// MarkUserSynced flips the user's sync flag and records the sync time.
	MarkUserSynced(ctx context.Context, chatID int64, at time.Time) error

	// MarkMessageSynced sets the message status to synced and records the sync time.
	MarkMessageSynced(ctx context.Context, messageID int64, at time.Time) error

	// CountUsers returns the number of stored users.
	CountUsers(ctx context.Context) int

	// CountMessages returns the number of stored messages.
	CountMessages(ctx context.Context) int

	// RecentUsers returns the most recently created users, newest first.
	RecentUsers(ctx context.Context, limit int) ([]User, error)

	// RecentMessages returns the most recently created messages, newest first.
	RecentMessages(ctx context.Context, limit int) ([]Message, error)
}

// sqlxStore implements Store using sqlx over SQLite.
type sqlxStore struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewStore creates a new Store backed by sqlx. It requires a connected
// sqlx.DB instance and a logger.
func NewStore(db *sqlx.DB, logger *slog.Logger) Store {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &sqlxStore{
		db:     db,
		logger: logger.With("component", "store"),
	}
}

const userColumns = `chat_id, user_id, full_name, phone, course, direction, language, last_activity, synced, synced_at, created_at`

const messageColumns = `message_id, user_id, chat_id, timestamp, status, ticket_type, text, language, category, substatus, isactive, ticket_number, priority, synced_at, created_at`

func (s *sqlxStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *sqlxStore) ReadUsers(ctx context.Context) []User {
	var users []User
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at`
	if err := s.db.SelectContext(ctx, &users, query); err != nil {
		s.logger.ErrorContext(ctx, "Error reading users, returning empty collection", "error", err)
		return []User{}
	}
	return users
}

func (s *sqlxStore) WriteUsers(ctx context.Context, users []User) error {
	return s.replaceAll(ctx, "users", `DELETE FROM users`,
		`INSERT INTO users (`+userColumns+`) VALUES
		 (:chat_id, :user_id, :full_name, :phone, :course, :direction, :language, :last_activity, :synced, :synced_at, :created_at)`,
		func(tx *sqlx.Tx, insert string) error {
			for i := range users {
				if _, err := tx.NamedExecContext(ctx, insert, &users[i]); err != nil {
					return fmt.Errorf("failed to insert user (chat %d): %w", users[i].ChatID, err)
				}
			}
			return nil
		})
}

func (s *sqlxStore) ReadMessages(ctx context.Context) []Message {
	var messages []Message
	query := `SELECT ` + messageColumns + ` FROM messages ORDER BY created_at`
	if err := s.db.SelectContext(ctx, &messages, query); err != nil {
		s.logger.ErrorContext(ctx, "Error reading messages, returning empty collection", "error", err)
		return []Message{}
	}
	return messages
}

func (s *sqlxStore) WriteMessages(ctx context.Context, messages []Message) error {
	return s.replaceAll(ctx, "messages", `DELETE FROM messages`,
		`INSERT INTO messages (`+messageColumns+`) VALUES
		 (:message_id, :user_id, :chat_id, :timestamp, :status, :ticket_type, :text, :language, :category, :substatus, :isactive, :ticket_number, :priority, :synced_at, :created_at)`,
		func(tx *sqlx.Tx, insert string) error {
			for i := range messages {
				if _, err := tx.NamedExecContext(ctx, insert, &messages[i]); err != nil {
					return fmt.Errorf("failed to insert message %d: %w", messages[i].MessageID, err)
				}
			}
			return nil
		})
}

// replaceAll swaps a whole collection inside one transaction. Last writer
// wins at collection granularity; callers must not assume finer atomicity.
func (s *sqlxStore) replaceAll(ctx context.Context, name, del, insert string, fill func(*sqlx.Tx, string) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if tx != nil {
			if rollbackErr := tx.Rollback(); rollbackErr != nil && !errors.Is(rollbackErr, sql.ErrTxDone) {
				s.logger.WarnContext(ctx, "Error rolling back transaction", "error", rollbackErr)
			}
		}
	}()

	if _, err := tx.ExecContext(ctx, del); err != nil {
		return fmt.Errorf("failed to clear %s: %w", name, err)
	}
	if err := fill(tx, insert); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	tx = nil
	return nil
}

func (s *sqlxStore) FindUser(ctx context.Context, chatID int64) (*User, error) {
	if chatID == 0 {
		return nil, fmt.Errorf("chat_id cannot be zero")
	}

	var user User
	query := `SELECT ` + userColumns + ` FROM users WHERE chat_id = ?`
	err := s.db.GetContext(ctx, &user, query, chatID)

	switch {
	case errors.Is(err, sql.ErrNoRows):
		// Absence is a legitimate outcome, not an error
		return nil, nil
	case err != nil:
		s.logger.ErrorContext(ctx, "Error finding user", "chat_id", chatID, "error", err)
		return nil, fmt.Errorf("failed to find user for chat %d: %w", chatID, err)
	}

	return &user, nil
}

func (s *sqlxStore) SaveUser(ctx context.Context, user *User) error {
	if user == nil {
		return fmt.Errorf("cannot save nil user")
	}
	if user.ChatID == 0 {
		return fmt.Errorf("user must have a non-zero chat_id")
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to begin transaction for saving user",
			"chat_id", user.ChatID, "error", err)
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if tx != nil {
			if rollbackErr := tx.Rollback(); rollbackErr != nil && !errors.Is(rollbackErr, sql.ErrTxDone) {
				s.logger.WarnContext(ctx, "Error rolling back transaction", "error", rollbackErr)
			}
		}
	}()

	var existing User
	err = tx.GetContext(ctx, &existing, `SELECT `+userColumns+` FROM users WHERE chat_id = ?`, user.ChatID)

	switch {
	case errors.Is(err, sql.ErrNoRows):
		if user.CreatedAt.IsZero() {
			user.CreatedAt = time.Now().UTC()
		}
		query := `INSERT INTO users (` + userColumns + `) VALUES
			(:chat_id, :user_id, :full_name, :phone, :course, :direction, :language, :last_activity, :synced, :synced_at, :created_at)`
		if _, err := tx.NamedExecContext(ctx, query, user); err != nil {
			s.logger.ErrorContext(ctx, "Error inserting user", "chat_id", user.ChatID, "error", err)
			return fmt.Errorf("failed to insert user for chat %d: %w", user.ChatID, err)
		}

	case err != nil:
		return fmt.Errorf("failed to check existing user for chat %d: %w", user.ChatID, err)

	default:
		// Merge: fields absent from the incoming patch keep their stored value
		merged := mergeUser(existing, *user)
		query := `UPDATE users SET
				user_id = :user_id,
				full_name = :full_name,
				phone = :phone,
				course = :course,
				direction = :direction,
				language = :language,
				last_activity = :last_activity,
				synced = :synced,
				synced_at = :synced_at
			WHERE chat_id = :chat_id`
		if _, err := tx.NamedExecContext(ctx, query, &merged); err != nil {
			s.logger.ErrorContext(ctx, "Error updating user", "chat_id", user.ChatID, "error", err)
			return fmt.Errorf("failed to update user for chat %d: %w", user.ChatID, err)
		}
		*user = merged
	}

	if err := tx.Commit(); err != nil {
		s.logger.ErrorContext(ctx, "Failed to commit transaction", "chat_id", user.ChatID, "error", err)
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	tx = nil

	s.logger.DebugContext(ctx, "User saved", "chat_id", user.ChatID, "synced", user.Synced)
	return nil
}

// mergeUser overlays the non-zero fields of patch onto base.
func mergeUser(base, patch User) User {
	merged := base
	if patch.UserID != 0 {
		merged.UserID = patch.UserID
	}
	if patch.FullName != "" {
		merged.FullName = patch.FullName
	}
	if patch.Phone != "" {
		merged.Phone = patch.Phone
	}
	if patch.Course != "" {
		merged.Course = patch.Course
	}
	if patch.Direction != "" {
		merged.Direction = patch.Direction
	}
	if patch.Language != "" {
		merged.Language = patch.Language
	}
	if !patch.LastActivity.IsZero() {
		merged.LastActivity = patch.LastActivity
	}
	merged.Synced = patch.Synced
	merged.SyncedAt = patch.SyncedAt
	return merged
}

func (s *sqlxStore) SaveMessage(ctx context.Context, message *Message) error {
	if message == nil {
		return fmt.Errorf("cannot save nil message")
	}
	if message.ChatID == 0 {
		return fmt.Errorf("message must have a non-zero chat_id")
	}
	if message.Text == "" {
		return fmt.Errorf("message must have non-empty text")
	}
	if message.Timestamp.IsZero() {
		return fmt.Errorf("message must have a non-zero timestamp")
	}

	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now().UTC()
	}

	query := `INSERT INTO messages (` + messageColumns + `) VALUES
		(:message_id, :user_id, :chat_id, :timestamp, :status, :ticket_type, :text, :language, :category, :substatus, :isactive, :ticket_number, :priority, :synced_at, :created_at)`

	if _, err := s.db.NamedExecContext(ctx, query, message); err != nil {
		s.logger.ErrorContext(ctx, "Error saving message",
			"message_id", message.MessageID, "chat_id", message.ChatID, "error", err)
		return fmt.Errorf("failed to save message %d: %w", message.MessageID, err)
	}

	s.logger.DebugContext(ctx, "Message saved",
		"message_id", message.MessageID, "chat_id", message.ChatID, "status", message.Status)
	return nil
}

func (s *sqlxStore) UpdateActivity(ctx context.Context, chatID int64) (bool, error) {
	result, err := s.db.ExecContext(ctx,
		`UPDATE users SET last_activity = ? WHERE chat_id = ?`, time.Now().UTC(), chatID)
	if err != nil {
		s.logger.ErrorContext(ctx, "Error updating user activity", "chat_id", chatID, "error", err)
		return false, fmt.Errorf("failed to update activity for chat %d: %w", chatID, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		s.logger.WarnContext(ctx, "Could not get affected row count", "chat_id", chatID, "error", err)
		return false, nil
	}
	return affected > 0, nil
}

func (s *sqlxStore) UnsyncedUsers(ctx context.Context) ([]User, error) {
	var users []User
	query := `SELECT ` + userColumns + ` FROM users WHERE synced = 0 ORDER BY created_at`
	if err := s.db.SelectContext(ctx, &users, query); err != nil {
		return nil, fmt.Errorf("failed to get unsynced users: %w", err)
	}
	return users, nil
}

func (s *sqlxStore) PendingMessages(ctx context.Context) ([]Message, error) {
	var messages []Message
	query := `SELECT ` + messageColumns + ` FROM messages WHERE status = ? ORDER BY created_at`
	if err := s.db.SelectContext(ctx, &messages, query, StatusOfflinePending); err != nil {
		return nil, fmt.Errorf("failed to get pending messages: %w", err)
	}
	return messages, nil
}

func (s *sqlxStore) MarkUserSynced(ctx context.Context, chatID int64, at time.Time) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE users SET synced = 1, synced_at = ? WHERE chat_id = ?`, at.UTC(), chatID)
	if err != nil {
		return fmt.Errorf("failed to mark user synced for chat %d: %w", chatID, err)
	}
	return nil
}

func (s *sqlxStore) MarkMessageSynced(ctx context.Context, messageID int64, at time.Time) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE messages SET status = ?, synced_at = ? WHERE message_id = ?`,
		StatusSynced, at.UTC(), messageID)
	if err != nil {
		return fmt.Errorf("failed to mark message %d synced: %w", messageID, err)
	}
	return nil
}

func (s *sqlxStore) CountUsers(ctx context.Context) int {
	var count int
	if err := s.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM users`); err != nil {
		s.logger.ErrorContext(ctx, "Error counting users", "error", err)
		return 0
	}
	return count
}

func (s *sqlxStore) CountMessages(ctx context.Context) int {
	var count int
	if err := s.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM messages`); err != nil {
		s.logger.ErrorContext(ctx, "Error counting messages", "error", err)
		return 0
	}
	return count
}

func (s *sqlxStore) RecentUsers(ctx context.Context, limit int) ([]User, error) {
	if limit <= 0 {
		limit = 5
	}
	var users []User
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC LIMIT ?`
	if err := s.db.SelectContext(ctx, &users, query, limit); err != nil {
		return nil, fmt.Errorf("failed to get recent users: %w", err)
	}
	return users, nil
}

func (s *sqlxStore) RecentMessages(ctx context.Context, limit int) ([]Message, error) {
	if limit <= 0 {
		limit = 3
	}
	var messages []Message
	query := `SELECT ` + messageColumns + ` FROM messages ORDER BY created_at DESC LIMIT ?`
	if err := s.db.SelectContext(ctx, &messages, query, limit); err != nil {
		return nil, fmt.Errorf("failed to get recent messages: %w", err)
	}
	return messages, nil
}
