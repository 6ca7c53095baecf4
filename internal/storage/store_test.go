package storage

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) Store {
	t.Helper()
	db, err := NewDB(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { CloseDB(db) })
	return NewStore(db, nil)
}

func sampleUser(chatID int64) *User {
	return &User{
		UserID:       chatID,
		ChatID:       chatID,
		FullName:     "Ali Valiyev",
		Phone:        "+998901234567",
		Course:       "1-kurs",
		Direction:    "Dasturiy injiniring",
		Language:     "uz",
		LastActivity: time.Now().UTC(),
	}
}

func sampleMessage(messageID, chatID int64, status MessageStatus) *Message {
	return &Message{
		MessageID:    messageID,
		UserID:       chatID,
		ChatID:       chatID,
		Timestamp:    time.Now().UTC(),
		Status:       status,
		TicketType:   TicketSuggestion,
		Text:         "Kutubxonada yangi kitoblar kerak.",
		Language:     "uz",
		TicketNumber: "USAT-000001",
		Priority:     "Past",
	}
}

func TestSaveAndFindUser(t *testing.T) {
	t.Parallel()
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveUser(ctx, sampleUser(100)))

	found, err := store.FindUser(ctx, 100)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Ali Valiyev", found.FullName)
	assert.Equal(t, "1-kurs", found.Course)
	assert.False(t, found.Synced)
}

func TestFindUser_AbsentReturnsNilNil(t *testing.T) {
	t.Parallel()
	store := newTestStore(t)

	found, err := store.FindUser(context.Background(), 404)
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestSaveUser_UpsertMergePreservesFields(t *testing.T) {
	t.Parallel()
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveUser(ctx, sampleUser(100)))

	// A partial patch must not wipe the fields it omits.
	patch := &User{
		ChatID:   100,
		Language: "ru",
		Synced:   true,
		SyncedAt: sql.NullTime{Time: time.Now().UTC(), Valid: true},
	}
	require.NoError(t, store.SaveUser(ctx, patch))

	found, err := store.FindUser(ctx, 100)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Ali Valiyev", found.FullName)
	assert.Equal(t, "+998901234567", found.Phone)
	assert.Equal(t, "ru", found.Language)
	assert.True(t, found.Synced)
	assert.True(t, found.SyncedAt.Valid)
}

func TestSaveUser_SyncFlagsAlwaysTakenFromPatch(t *testing.T) {
	t.Parallel()
	store := newTestStore(t)
	ctx := context.Background()

	u := sampleUser(100)
	u.Synced = true
	u.SyncedAt = sql.NullTime{Time: time.Now().UTC(), Valid: true}
	require.NoError(t, store.SaveUser(ctx, u))

	// Re-saving unsynced must clear the flag, not merge around it.
	patch := sampleUser(100)
	require.NoError(t, store.SaveUser(ctx, patch))

	found, err := store.FindUser(ctx, 100)
	require.NoError(t, err)
	assert.False(t, found.Synced)
	assert.False(t, found.SyncedAt.Valid)
}

func TestUpdateActivity(t *testing.T) {
	t.Parallel()
	store := newTestStore(t)
	ctx := context.Background()

	ok, err := store.UpdateActivity(ctx, 100)
	require.NoError(t, err)
	assert.False(t, ok, "absent user reports false without error")

	require.NoError(t, store.SaveUser(ctx, sampleUser(100)))
	ok, err = store.UpdateActivity(ctx, 100)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestUnsyncedUsers(t *testing.T) {
	t.Parallel()
	store := newTestStore(t)
	ctx := context.Background()

	synced := sampleUser(1)
	synced.Synced = true
	synced.SyncedAt = sql.NullTime{Time: time.Now().UTC(), Valid: true}
	require.NoError(t, store.SaveUser(ctx, synced))
	require.NoError(t, store.SaveUser(ctx, sampleUser(2)))
	require.NoError(t, store.SaveUser(ctx, sampleUser(3)))

	unsynced, err := store.UnsyncedUsers(ctx)
	require.NoError(t, err)
	require.Len(t, unsynced, 2)
	for _, u := range unsynced {
		assert.False(t, u.Synced)
	}
}

func TestPendingMessagesAndMarkSynced(t *testing.T) {
	t.Parallel()
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveMessage(ctx, sampleMessage(1, 100, StatusOfflinePending)))
	require.NoError(t, store.SaveMessage(ctx, sampleMessage(2, 100, StatusSynced)))
	require.NoError(t, store.SaveMessage(ctx, sampleMessage(3, 100, StatusOfflinePending)))

	pending, err := store.PendingMessages(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 2)

	at := time.Now().UTC()
	require.NoError(t, store.MarkMessageSynced(ctx, 1, at))

	pending, err = store.PendingMessages(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, int64(3), pending[0].MessageID)
}

func TestMarkUserSynced(t *testing.T) {
	t.Parallel()
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveUser(ctx, sampleUser(100)))
	require.NoError(t, store.MarkUserSynced(ctx, 100, time.Now().UTC()))

	found, err := store.FindUser(ctx, 100)
	require.NoError(t, err)
	assert.True(t, found.Synced)
	assert.True(t, found.SyncedAt.Valid)

	unsynced, err := store.UnsyncedUsers(ctx)
	require.NoError(t, err)
	assert.Empty(t, unsynced)
}

func TestSaveMessage_PreservesFields(t *testing.T) {
	t.Parallel()
	store := newTestStore(t)
	ctx := context.Background()

	msg := sampleMessage(7, 100, StatusOfflinePending)
	msg.TicketType = TicketComplaint
	msg.Category = sql.NullString{String: "🏛️ Dekanat", Valid: true}
	msg.Substatus = sql.NullString{String: "Dean Office", Valid: true}
	msg.Priority = "Yuqori"
	require.NoError(t, store.SaveMessage(ctx, msg))

	messages := store.ReadMessages(ctx)
	require.Len(t, messages, 1)
	got := messages[0]
	assert.Equal(t, TicketComplaint, got.TicketType)
	assert.Equal(t, "Dean Office", got.Substatus.String)
	assert.Equal(t, "🏛️ Dekanat", got.Category.String)
	assert.Equal(t, "Yuqori", got.Priority)
	assert.Equal(t, StatusOfflinePending, got.Status)
}

func TestWriteUsersReplacesCollection(t *testing.T) {
	t.Parallel()
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveUser(ctx, sampleUser(1)))
	require.NoError(t, store.SaveUser(ctx, sampleUser(2)))

	replacement := []User{*sampleUser(9)}
	replacement[0].CreatedAt = time.Now().UTC()
	require.NoError(t, store.WriteUsers(ctx, replacement))

	users := store.ReadUsers(ctx)
	require.Len(t, users, 1)
	assert.Equal(t, int64(9), users[0].ChatID)
}

func TestCountsAndRecent(t *testing.T) {
	t.Parallel()
	store := newTestStore(t)
	ctx := context.Background()

	for i := int64(1); i <= 4; i++ {
		require.NoError(t, store.SaveUser(ctx, sampleUser(i)))
		require.NoError(t, store.SaveMessage(ctx, sampleMessage(i, i, StatusSynced)))
	}

	assert.Equal(t, 4, store.CountUsers(ctx))
	assert.Equal(t, 4, store.CountMessages(ctx))

	users, err := store.RecentUsers(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, users, 2)

	messages, err := store.RecentMessages(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, messages, 3)
}

func TestPing(t *testing.T) {
	t.Parallel()
	store := newTestStore(t)
	require.NoError(t, store.Ping(context.Background()))
}
