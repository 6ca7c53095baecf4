package storage

import (
	"database/sql"
	"time"
)

// MessageStatus tracks a ticket's position in the synchronization lifecycle.
type MessageStatus string

const (
	// StatusPending marks a fresh ticket being pushed to the backend.
	StatusPending MessageStatus = "pending"
	// StatusOfflinePending marks a ticket staged locally because the backend
	// was unreachable at submission time.
	StatusOfflinePending MessageStatus = "offline_pending"
	// StatusSynced marks a ticket the backend has accepted.
	StatusSynced MessageStatus = "synced"
)

// TicketType distinguishes the two kinds of submissions.
type TicketType string

const (
	TicketSuggestion TicketType = "suggestion"
	TicketComplaint  TicketType = "complaint"
)

// User represents a registered end user. UserID and ChatID carry the same
// value; both names exist for compatibility with the backend's conventions.
// Synced is false until the backend has accepted the record.
type User struct {
	UserID       int64        `db:"user_id"`
	ChatID       int64        `db:"chat_id"`
	FullName     string       `db:"full_name"`
	Phone        string       `db:"phone"`
	Course       string       `db:"course"`
	Direction    string       `db:"direction"`
	Language     string       `db:"language"`
	LastActivity time.Time    `db:"last_activity"`
	Synced       bool         `db:"synced"`
	SyncedAt     sql.NullTime `db:"synced_at"`
	CreatedAt    time.Time    `db:"created_at"`
}

// Message represents one ticket (suggestion or complaint). Category and
// Substatus are null for suggestions; for complaints Substatus carries the
// category's mapped code and must be present. Only Status and SyncedAt
// mutate after creation.
type Message struct {
	MessageID    int64          `db:"message_id"`
	UserID       int64          `db:"user_id"`
	ChatID       int64          `db:"chat_id"`
	Timestamp    time.Time      `db:"timestamp"`
	Status       MessageStatus  `db:"status"`
	TicketType   TicketType     `db:"ticket_type"`
	Text         string         `db:"text"`
	Language     string         `db:"language"`
	Category     sql.NullString `db:"category"`
	Substatus    sql.NullString `db:"substatus"`
	IsActive     bool           `db:"isactive"`
	TicketNumber string         `db:"ticket_number"`
	Priority     string         `db:"priority"`
	SyncedAt     sql.NullTime   `db:"synced_at"`
	CreatedAt    time.Time      `db:"created_at"`
}
