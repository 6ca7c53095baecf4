package feedback

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usat/taklifbot/internal/api"
	"github.com/usat/taklifbot/internal/config"
	"github.com/usat/taklifbot/internal/storage"
)

var errBackendDown = fmt.Errorf("dial: %w", api.ErrUnavailable)

type fakeBackend struct {
	online        bool
	checkErr      error
	checkResult   *storage.User
	registerErr   error
	saveErr       error
	registerCalls int
	saveCalls     int
	lastMessage   *storage.Message
}

func (f *fakeBackend) CheckUserExists(ctx context.Context, chatID int64) (*storage.User, error) {
	if f.checkErr != nil {
		return nil, f.checkErr
	}
	return f.checkResult, nil
}

func (f *fakeBackend) RegisterUser(ctx context.Context, user *storage.User) error {
	f.registerCalls++
	return f.registerErr
}

func (f *fakeBackend) SaveMessage(ctx context.Context, message *storage.Message) error {
	f.saveCalls++
	cp := *message
	f.lastMessage = &cp
	return f.saveErr
}

func (f *fakeBackend) UpdateUserActivity(ctx context.Context, chatID int64) {}

func (f *fakeBackend) GetStatus() api.Status {
	return api.Status{IsOnline: f.online}
}

// memStore is a minimal in-memory storage.Store for exercising the
// service's fallback paths.
type memStore struct {
	users    map[int64]*storage.User
	messages []*storage.Message
	saveErr  error
	findErr  error
}

func newMemStore() *memStore {
	return &memStore{users: make(map[int64]*storage.User)}
}

func (m *memStore) Ping(ctx context.Context) error { return nil }

func (m *memStore) ReadUsers(ctx context.Context) []storage.User {
	out := make([]storage.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, *u)
	}
	return out
}

func (m *memStore) WriteUsers(ctx context.Context, users []storage.User) error {
	m.users = make(map[int64]*storage.User, len(users))
	for i := range users {
		u := users[i]
		m.users[u.ChatID] = &u
	}
	return nil
}

func (m *memStore) ReadMessages(ctx context.Context) []storage.Message {
	out := make([]storage.Message, 0, len(m.messages))
	for _, msg := range m.messages {
		out = append(out, *msg)
	}
	return out
}

func (m *memStore) WriteMessages(ctx context.Context, messages []storage.Message) error {
	m.messages = nil
	for i := range messages {
		msg := messages[i]
		m.messages = append(m.messages, &msg)
	}
	return nil
}

func (m *memStore) FindUser(ctx context.Context, chatID int64) (*storage.User, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	u, ok := m.users[chatID]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (m *memStore) SaveUser(ctx context.Context, user *storage.User) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	cp := *user
	m.users[user.ChatID] = &cp
	return nil
}

func (m *memStore) SaveMessage(ctx context.Context, message *storage.Message) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	cp := *message
	m.messages = append(m.messages, &cp)
	return nil
}

func (m *memStore) UpdateActivity(ctx context.Context, chatID int64) (bool, error) {
	u, ok := m.users[chatID]
	if !ok {
		return false, nil
	}
	u.LastActivity = time.Now().UTC()
	return true, nil
}

func (m *memStore) UnsyncedUsers(ctx context.Context) ([]storage.User, error) {
	var out []storage.User
	for _, u := range m.users {
		if !u.Synced {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (m *memStore) PendingMessages(ctx context.Context) ([]storage.Message, error) {
	var out []storage.Message
	for _, msg := range m.messages {
		if msg.Status == storage.StatusOfflinePending {
			out = append(out, *msg)
		}
	}
	return out, nil
}

func (m *memStore) MarkUserSynced(ctx context.Context, chatID int64, at time.Time) error {
	if u, ok := m.users[chatID]; ok {
		u.Synced = true
	}
	return nil
}

func (m *memStore) MarkMessageSynced(ctx context.Context, messageID int64, at time.Time) error {
	for _, msg := range m.messages {
		if msg.MessageID == messageID {
			msg.Status = storage.StatusSynced
		}
	}
	return nil
}

func (m *memStore) CountUsers(ctx context.Context) int    { return len(m.users) }
func (m *memStore) CountMessages(ctx context.Context) int { return len(m.messages) }

func (m *memStore) RecentUsers(ctx context.Context, limit int) ([]storage.User, error) {
	return m.ReadUsers(ctx), nil
}

func (m *memStore) RecentMessages(ctx context.Context, limit int) ([]storage.Message, error) {
	return m.ReadMessages(ctx), nil
}

func testAPIConfig() config.APIConfig {
	return config.APIConfig{
		CheckAttempts:   2,
		CheckBaseDelay:  time.Millisecond,
		SubmitAttempts:  2,
		SubmitBaseDelay: time.Millisecond,
	}
}

func testRegistration() Registration {
	return Registration{
		ChatID:    100,
		FullName:  "Ali Valiyev",
		Phone:     "+998901234567",
		Course:    "1-kurs",
		Direction: "Dasturiy injiniring",
		Language:  "uz",
	}
}

func TestLookupUser_BackendFirst(t *testing.T) {
	t.Parallel()

	remote := &storage.User{ChatID: 100, FullName: "Ali Valiyev", Synced: true}
	backend := &fakeBackend{checkResult: remote}
	svc := NewService(nil, newMemStore(), backend, testAPIConfig())

	user, offline, err := svc.LookupUser(context.Background(), 100)
	require.NoError(t, err)
	assert.False(t, offline)
	require.NotNil(t, user)
	assert.True(t, user.Synced)
}

func TestLookupUser_FallsBackToLocalStore(t *testing.T) {
	t.Parallel()

	backend := &fakeBackend{checkErr: errBackendDown}
	store := newMemStore()
	require.NoError(t, store.SaveUser(context.Background(), &storage.User{ChatID: 100, FullName: "Ali Valiyev"}))
	svc := NewService(nil, store, backend, testAPIConfig())

	user, offline, err := svc.LookupUser(context.Background(), 100)
	require.NoError(t, err)
	assert.True(t, offline, "lookup served from the local store")
	require.NotNil(t, user)
	assert.Equal(t, "Ali Valiyev", user.FullName)
}

func TestLookupUser_AbsentEverywhere(t *testing.T) {
	t.Parallel()

	backend := &fakeBackend{checkErr: errBackendDown}
	svc := NewService(nil, newMemStore(), backend, testAPIConfig())

	user, offline, err := svc.LookupUser(context.Background(), 100)
	require.NoError(t, err)
	assert.True(t, offline)
	assert.Nil(t, user)
}

func TestCompleteRegistration_Online(t *testing.T) {
	t.Parallel()

	backend := &fakeBackend{online: true}
	store := newMemStore()
	svc := NewService(nil, store, backend, testAPIConfig())

	res, err := svc.CompleteRegistration(context.Background(), testRegistration())
	require.NoError(t, err)
	assert.False(t, res.Offline)
	assert.False(t, res.AlreadyRegistered)

	saved, err := store.FindUser(context.Background(), 100)
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.True(t, saved.Synced, "backend accepted the record, local mirror is synced")
	assert.True(t, saved.SyncedAt.Valid)
}

func TestCompleteRegistration_OfflineFallback(t *testing.T) {
	t.Parallel()

	backend := &fakeBackend{registerErr: errBackendDown}
	store := newMemStore()
	svc := NewService(nil, store, backend, testAPIConfig())

	res, err := svc.CompleteRegistration(context.Background(), testRegistration())
	require.NoError(t, err, "offline degradation is not an error for the caller")
	assert.True(t, res.Offline)
	assert.Equal(t, 2, backend.registerCalls, "all submit attempts are used before falling back")

	saved, err := store.FindUser(context.Background(), 100)
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.False(t, saved.Synced, "staged for the reconciliation loop")
}

func TestCompleteRegistration_ConflictNotRetried(t *testing.T) {
	t.Parallel()

	backend := &fakeBackend{registerErr: fmt.Errorf("register: %w", api.ErrConflict)}
	store := newMemStore()
	svc := NewService(nil, store, backend, testAPIConfig())

	res, err := svc.CompleteRegistration(context.Background(), testRegistration())
	require.NoError(t, err)
	assert.True(t, res.AlreadyRegistered)
	assert.False(t, res.Offline)
	assert.Equal(t, 1, backend.registerCalls, "a duplicate is not retried")
}

func TestCompleteRegistration_LocalWriteFailureIsFatal(t *testing.T) {
	t.Parallel()

	backend := &fakeBackend{registerErr: errBackendDown}
	store := newMemStore()
	store.saveErr = errors.New("disk full")
	svc := NewService(nil, store, backend, testAPIConfig())

	_, err := svc.CompleteRegistration(context.Background(), testRegistration())
	require.Error(t, err, "no remote copy and no local copy must surface")
}

func TestSubmitTicket_Online(t *testing.T) {
	t.Parallel()

	backend := &fakeBackend{online: true}
	store := newMemStore()
	svc := NewService(nil, store, backend, testAPIConfig())

	res, err := svc.SubmitTicket(context.Background(), Ticket{
		ChatID:     100,
		Language:   "uz",
		TicketType: storage.TicketSuggestion,
		Text:       "Kutubxonada yangi kitoblar kerak.",
	})
	require.NoError(t, err)
	assert.False(t, res.Offline)

	require.NotNil(t, backend.lastMessage)
	assert.Equal(t, storage.StatusPending, backend.lastMessage.Status)
	assert.False(t, backend.lastMessage.Category.Valid, "suggestions carry no category")
	assert.False(t, backend.lastMessage.Substatus.Valid)

	messages := store.ReadMessages(context.Background())
	require.Len(t, messages, 1)
	assert.Equal(t, storage.StatusSynced, messages[0].Status)
}

func TestSubmitTicket_OfflineStaging(t *testing.T) {
	t.Parallel()

	backend := &fakeBackend{saveErr: errBackendDown}
	store := newMemStore()
	svc := NewService(nil, store, backend, testAPIConfig())

	res, err := svc.SubmitTicket(context.Background(), Ticket{
		ChatID:     100,
		Language:   "uz",
		TicketType: storage.TicketComplaint,
		Category:   "🏛️ Dekanat",
		Substatus:  "Dean Office",
		Text:       "Yotoqxonada issiq suv yo'q.",
	})
	require.NoError(t, err)
	assert.True(t, res.Offline)
	assert.Equal(t, 2, backend.saveCalls)

	pending, err := store.PendingMessages(context.Background())
	require.NoError(t, err)
	require.Len(t, pending, 1)
	got := pending[0]
	assert.Equal(t, storage.StatusOfflinePending, got.Status)
	assert.Equal(t, "Dean Office", got.Substatus.String)
	assert.Equal(t, "Yuqori", got.Priority, "dean office complaints are high priority")
	assert.Contains(t, got.TicketNumber, "USAT-")
}

func TestSubmitTicket_ComplaintWithoutCategoryRejected(t *testing.T) {
	t.Parallel()

	backend := &fakeBackend{}
	svc := NewService(nil, newMemStore(), backend, testAPIConfig())

	_, err := svc.SubmitTicket(context.Background(), Ticket{
		ChatID:     100,
		Language:   "uz",
		TicketType: storage.TicketComplaint,
		Text:       "Yotoqxonada issiq suv yo'q.",
	})
	require.Error(t, err)
	assert.Zero(t, backend.saveCalls, "rejected before any remote attempt")
}

func TestSubmitTicket_BothSidesFailing(t *testing.T) {
	t.Parallel()

	backend := &fakeBackend{saveErr: errBackendDown}
	store := newMemStore()
	store.saveErr = errors.New("disk full")
	svc := NewService(nil, store, backend, testAPIConfig())

	_, err := svc.SubmitTicket(context.Background(), Ticket{
		ChatID:     100,
		Language:   "uz",
		TicketType: storage.TicketSuggestion,
		Text:       "Kutubxonada yangi kitoblar kerak.",
	})
	require.Error(t, err, "a submission never silently drops")
}

func TestDeterminePriority(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		category string
		text     string
		want     string
	}{
		{"urgency keyword", "", "Bu juda shoshilinch masala", "Yuqori"},
		{"dean office category", "🏛️ Dekanat", "oddiy matn", "Yuqori"},
		{"teacher category", "👨‍🏫 O'qituvchi", "oddiy matn", "Yuqori"},
		{"long text", "", strings.Repeat("a", 201), "O'rta"},
		{"default", "🏢 Sharoit", "oddiy qisqa matn", "Past"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, determinePriority(tt.category, tt.text))
		})
	}
}
