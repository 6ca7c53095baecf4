// Package api implements the client for the remote feedback backend.
// Every call enforces a bounded request timeout and updates the client's
// isOnline flag, which is the sole availability signal other components
// consult before attempting remote work.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"sync/atomic"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/usat/taklifbot/internal/storage"
)

const userAgent = "USAT-Telegram-Bot/1.0"

// Client talks to the remote backend over JSON HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
	online     atomic.Bool
}

// Status reports the client's availability signal and endpoint.
type Status struct {
	IsOnline bool
	Endpoint string
}

// NewClient creates a backend client with the given base URL and per-request timeout.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger.With("component", "api_client"),
	}
}

// GetStatus returns the current availability flag and configured endpoint.
func (c *Client) GetStatus() Status {
	return Status{IsOnline: c.online.Load(), Endpoint: c.baseURL}
}

// userPayload is the wire shape for user records. Bookkeeping-only fields
// (synced, syncedAt) are excluded so they are never transmitted.
type userPayload struct {
	UserID       string `json:"userId"`
	ChatID       string `json:"chatId"`
	FullName     string `json:"fullName"`
	Phone        string `json:"phone"`
	Course       string `json:"course"`
	Direction    string `json:"direction"`
	Language     string `json:"language"`
	LastActivity string `json:"lastActivity"`
}

// messagePayload is the wire shape for ticket records. Local bookkeeping
// fields (synced, category, fullName, ticketNumber, priority) are excluded.
type messagePayload struct {
	MessageID  int64   `json:"messageId"`
	UserID     string  `json:"userId"`
	ChatID     string  `json:"chatId"`
	Timestamp  string  `json:"timestamp"`
	Status     string  `json:"status"`
	TicketType string  `json:"ticketType"`
	Text       string  `json:"text"`
	Language   string  `json:"language"`
	IsActive   bool    `json:"isactive"`
	Substatus  *string `json:"substatus"`
}

// apiUser is the user shape returned by the backend.
type apiUser struct {
	UserID       string `json:"userId"`
	ChatID       string `json:"chatId"`
	FullName     string `json:"fullName"`
	Phone        string `json:"phone"`
	Course       string `json:"course"`
	Direction    string `json:"direction"`
	Language     string `json:"language"`
	LastActivity string `json:"lastActivity"`
}

type usersResponse struct {
	Success bool `json:"success"`
	Data    struct {
		Users []apiUser `json:"users"`
	} `json:"data"`
}

// CheckUserExists looks up a user by chat ID. Absence (no matching record
// or 404) returns nil, nil; it is a legitimate outcome, not a failure.
func (c *Client) CheckUserExists(ctx context.Context, chatID int64) (*storage.User, error) {
	var resp usersResponse
	status, err := c.doRequest(ctx, http.MethodGet, "/users", nil, &resp)
	if err != nil {
		return nil, fmt.Errorf("failed to check user existence: %w", err)
	}
	if status == http.StatusNotFound {
		c.logger.DebugContext(ctx, "Users endpoint reported not found", "chat_id", chatID)
		return nil, nil
	}
	if status < 200 || status >= 300 {
		return nil, fmt.Errorf("failed to check user existence (status %d): %w", status, ErrUnavailable)
	}

	if !resp.Success {
		c.logger.WarnContext(ctx, "Unexpected users response format", "chat_id", chatID)
		return nil, nil
	}

	want := strconv.FormatInt(chatID, 10)
	for _, u := range resp.Data.Users {
		if u.ChatID == want {
			found := u.toRecord()
			found.Synced = true
			return found, nil
		}
	}
	return nil, nil
}

// RegisterUser creates the user on the backend. Required fields are
// validated locally before any network round-trip.
func (c *Client) RegisterUser(ctx context.Context, user *storage.User) error {
	if user == nil {
		return fmt.Errorf("%w: nil user", ErrValidation)
	}
	for field, value := range map[string]string{
		"chatId":    strconv.FormatInt(user.ChatID, 10),
		"fullName":  user.FullName,
		"phone":     user.Phone,
		"course":    user.Course,
		"direction": user.Direction,
	} {
		if value == "" || value == "0" {
			return fmt.Errorf("%w: missing required field: %s", ErrValidation, field)
		}
	}

	payload := userPayload{
		UserID:       strconv.FormatInt(user.UserID, 10),
		ChatID:       strconv.FormatInt(user.ChatID, 10),
		FullName:     user.FullName,
		Phone:        user.Phone,
		Course:       user.Course,
		Direction:    user.Direction,
		Language:     user.Language,
		LastActivity: user.LastActivity.UTC().Format(time.RFC3339),
	}

	status, err := c.doRequest(ctx, http.MethodPost, "/users", payload, nil)
	if err != nil {
		return fmt.Errorf("failed to register user: %w", err)
	}

	switch {
	case status == http.StatusConflict:
		return fmt.Errorf("failed to register user: %w", ErrConflict)
	case status == http.StatusBadRequest:
		return fmt.Errorf("failed to register user: %w", ErrValidation)
	case status < 200 || status >= 300:
		return fmt.Errorf("failed to register user (status %d): %w", status, ErrUnavailable)
	}

	c.logger.InfoContext(ctx, "User registered on backend", "chat_id", user.ChatID)
	return nil
}

// SaveMessage submits a ticket to the backend. Required fields are
// validated locally before any network round-trip; for complaints a
// substatus is mandatory.
func (c *Client) SaveMessage(ctx context.Context, message *storage.Message) error {
	if message == nil {
		return fmt.Errorf("%w: nil message", ErrValidation)
	}
	if message.MessageID == 0 || message.ChatID == 0 || message.Timestamp.IsZero() ||
		message.Status == "" || message.TicketType == "" || message.Language == "" {
		return fmt.Errorf("%w: missing required message field", ErrValidation)
	}
	if message.Text == "" {
		return fmt.Errorf("%w: message text cannot be empty", ErrValidation)
	}
	if utf8.RuneCountInString(message.Text) > 1000 {
		return fmt.Errorf("%w: message text too long (max 1000 characters)", ErrValidation)
	}
	if message.TicketType == storage.TicketComplaint && !message.Substatus.Valid {
		return fmt.Errorf("%w: missing required field: substatus", ErrValidation)
	}

	payload := messagePayload{
		MessageID:  message.MessageID,
		UserID:     strconv.FormatInt(message.UserID, 10),
		ChatID:     strconv.FormatInt(message.ChatID, 10),
		Timestamp:  message.Timestamp.UTC().Format(time.RFC3339),
		Status:     string(message.Status),
		TicketType: string(message.TicketType),
		Text:       message.Text,
		Language:   message.Language,
		IsActive:   message.IsActive,
	}
	if message.Substatus.Valid {
		payload.Substatus = &message.Substatus.String
	}

	status, err := c.doRequest(ctx, http.MethodPost, "/messages", payload, nil)
	if err != nil {
		return fmt.Errorf("failed to save message: %w", err)
	}

	switch {
	case status == http.StatusBadRequest:
		return fmt.Errorf("failed to save message: %w", ErrValidation)
	case status == http.StatusRequestEntityTooLarge:
		return fmt.Errorf("failed to save message: %w", ErrPayloadTooLarge)
	case status < 200 || status >= 300:
		return fmt.Errorf("failed to save message (status %d): %w", status, ErrUnavailable)
	}

	c.logger.InfoContext(ctx, "Message saved on backend",
		"message_id", message.MessageID, "ticket_type", message.TicketType)
	return nil
}

// UpdateUserActivity patches the user's lastActivity timestamp. It is
// best-effort: failures are logged and deliberately discarded, never
// propagated to the caller.
func (c *Client) UpdateUserActivity(ctx context.Context, chatID int64) {
	body := map[string]string{
		"lastActivity": time.Now().UTC().Format(time.RFC3339),
	}
	path := "/users/" + strconv.FormatInt(chatID, 10)

	status, err := c.doRequest(ctx, http.MethodPatch, path, body, nil)
	if err != nil {
		c.logger.WarnContext(ctx, "Error updating user activity", "chat_id", chatID, "error", err)
		return
	}
	if status < 200 || status >= 300 {
		c.logger.WarnContext(ctx, "Activity update rejected", "chat_id", chatID, "status", status)
	}
}

// HealthCheck probes the backend. On failure of the primary endpoint it
// probes the root endpoint before declaring the backend down. Side effect:
// updates the isOnline flag.
func (c *Client) HealthCheck(ctx context.Context) bool {
	status, err := c.doRequest(ctx, http.MethodGet, "/users", nil, nil)
	if err == nil && status == http.StatusOK {
		return true
	}
	c.logger.WarnContext(ctx, "Health check on primary endpoint failed, trying root",
		"status", status, "error", err)

	status, err = c.doRequest(ctx, http.MethodGet, "/", nil, nil)
	if err == nil && status == http.StatusOK {
		return true
	}
	c.logger.WarnContext(ctx, "Health check failed on both endpoints", "status", status, "error", err)
	return false
}

// doRequest handles one HTTP round-trip. Transport-level failures are
// classified as Timeout or Unavailable and flip isOnline to false; any 2xx
// response flips it to true and decodes the body into out when non-nil.
// Non-2xx statuses are returned to the caller for classification.
func (c *Client) doRequest(ctx context.Context, method, path string, body, out any) (int, error) {
	req, err := c.buildRequest(ctx, method, path, body)
	if err != nil {
		return 0, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.online.Store(false)
		if errors.Is(err, context.DeadlineExceeded) || os.IsTimeout(err) {
			return 0, fmt.Errorf("%w: %v", ErrTimeout, err)
		}
		return 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		c.online.Store(true)
		if out != nil {
			if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
				return resp.StatusCode, fmt.Errorf("failed to decode response: %w", err)
			}
		}
	} else {
		c.online.Store(false)
	}

	return resp.StatusCode, nil
}

// buildRequest creates a new HTTP request with standard headers and a
// per-request correlation id.
func (c *Client) buildRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("X-Request-ID", uuid.NewString())

	return req, nil
}

func (u apiUser) toRecord() *storage.User {
	chatID, _ := strconv.ParseInt(u.ChatID, 10, 64)
	userID, _ := strconv.ParseInt(u.UserID, 10, 64)
	if userID == 0 {
		userID = chatID
	}

	rec := &storage.User{
		UserID:    userID,
		ChatID:    chatID,
		FullName:  u.FullName,
		Phone:     u.Phone,
		Course:    u.Course,
		Direction: u.Direction,
		Language:  u.Language,
	}
	if ts, err := time.Parse(time.RFC3339, u.LastActivity); err == nil {
		rec.LastActivity = ts
	}
	return rec
}
