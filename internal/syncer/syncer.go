// Package syncer runs the background reconciliation loop that pushes
// locally staged users and tickets to the backend once it is reachable.
package syncer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/usat/taklifbot/internal/api"
	"github.com/usat/taklifbot/internal/storage"
)

// Backend is the remote surface the reconciliation loop pushes to.
type Backend interface {
	HealthCheck(ctx context.Context) bool
	RegisterUser(ctx context.Context, user *storage.User) error
	SaveMessage(ctx context.Context, message *storage.Message) error
}

// Store is the local surface the loop drains and marks.
type Store interface {
	PendingMessages(ctx context.Context) ([]storage.Message, error)
	UnsyncedUsers(ctx context.Context) ([]storage.User, error)
	MarkMessageSynced(ctx context.Context, messageID int64, at time.Time) error
	MarkUserSynced(ctx context.Context, chatID int64, at time.Time) error
}

// Syncer periodically reconciles the local store with the backend.
type Syncer struct {
	scheduler gocron.Scheduler
	logger    *slog.Logger
	backend   Backend
	store     Store
	interval  time.Duration
	mu        sync.Mutex
	running   bool
}

// New creates a reconciliation loop with the given interval.
func New(logger *slog.Logger, backend Backend, store Store, interval time.Duration) (*Syncer, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	log := logger.With("component", "syncer")

	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	return &Syncer{
		scheduler: s,
		logger:    log,
		backend:   backend,
		store:     store,
		interval:  interval,
	}, nil
}

// Start schedules the reconciliation job and begins ticking. The first pass
// runs immediately so records staged while the process was down are pushed
// without waiting a full interval.
func (s *Syncer) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return errors.New("syncer is already running")
	}

	_, err := s.scheduler.NewJob(
		gocron.DurationJob(s.interval),
		gocron.NewTask(func(ctx context.Context) {
			start := time.Now()
			s.Sync(ctx)
			s.logger.Debug("Reconciliation pass finished", "duration", time.Since(start))
		}, context.Background()),
		gocron.WithName("reconciliation"),
		gocron.WithStartAt(gocron.WithStartImmediately()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("failed to schedule reconciliation job: %w", err)
	}

	s.scheduler.Start()
	s.running = true
	s.logger.Info("Reconciliation loop started", "interval", s.interval)
	return nil
}

// Stop gracefully stops the loop, waiting for an in-flight pass to finish.
func (s *Syncer) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return nil
	}

	err := s.scheduler.Shutdown()
	if err != nil {
		s.logger.Error("Error during syncer shutdown", "error", err)
	} else {
		s.logger.Info("Reconciliation loop stopped")
	}

	s.running = false
	return err
}

// Sync runs one reconciliation pass. The whole pass is gated on a health
// check: when the backend is unreachable nothing is attempted and the
// staged records stay untouched for the next tick. Each record is pushed
// independently, so one failure never aborts the rest of the batch.
func (s *Syncer) Sync(ctx context.Context) {
	if !s.backend.HealthCheck(ctx) {
		s.logger.Debug("Backend unhealthy, skipping reconciliation pass")
		return
	}

	synced, failed := s.syncMessages(ctx)
	usersSynced, usersFailed := s.syncUsers(ctx)

	if synced+failed+usersSynced+usersFailed > 0 {
		s.logger.Info("Reconciliation pass complete",
			"messages_synced", synced, "messages_failed", failed,
			"users_synced", usersSynced, "users_failed", usersFailed)
	}
}

func (s *Syncer) syncMessages(ctx context.Context) (synced, failed int) {
	pending, err := s.store.PendingMessages(ctx)
	if err != nil {
		s.logger.Error("Failed to read pending messages", "error", err)
		return 0, 0
	}

	for i := range pending {
		msg := pending[i]
		// Resent with the ordinary pending status: the backend never
		// sees the offline staging marker.
		msg.Status = storage.StatusPending
		if err := s.backend.SaveMessage(ctx, &msg); err != nil {
			s.logger.Warn("Failed to sync staged message",
				"message_id", msg.MessageID, "error", err)
			failed++
			continue
		}

		if err := s.store.MarkMessageSynced(ctx, msg.MessageID, time.Now().UTC()); err != nil {
			s.logger.Error("Failed to mark message synced",
				"message_id", msg.MessageID, "error", err)
			failed++
			continue
		}
		synced++
	}
	return synced, failed
}

func (s *Syncer) syncUsers(ctx context.Context) (synced, failed int) {
	unsynced, err := s.store.UnsyncedUsers(ctx)
	if err != nil {
		s.logger.Error("Failed to read unsynced users", "error", err)
		return 0, 0
	}

	for i := range unsynced {
		user := unsynced[i]
		err := s.backend.RegisterUser(ctx, &user)
		if err != nil && !errors.Is(err, api.ErrConflict) {
			s.logger.Warn("Failed to sync staged user",
				"chat_id", user.ChatID, "error", err)
			failed++
			continue
		}
		// A duplicate means the backend already has the record, which is
		// exactly the state reconciliation is after.

		if err := s.store.MarkUserSynced(ctx, user.ChatID, time.Now().UTC()); err != nil {
			s.logger.Error("Failed to mark user synced",
				"chat_id", user.ChatID, "error", err)
			failed++
			continue
		}
		synced++
	}
	return synced, failed
}
