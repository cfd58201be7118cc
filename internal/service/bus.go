package service

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/tmarek/nutrilog/backend/internal/models"
)

// SnapshotFunc re-reads the canonical entry list for a user. Every
// notification goes through it: subscribers always receive freshly persisted
// state, never an optimistic in-memory echo.
type SnapshotFunc func(ctx context.Context, userID uuid.UUID) ([]models.LogEntry, error)

// EntryBus fans the current entry list out to all subscribers of a user
// whenever the store mutates. Delivery is in subscription order, and the
// deliver lock keeps per-user notifications in mutation order: a subscriber
// never observes a snapshot older than one it has already received.
type EntryBus struct {
	snapshot SnapshotFunc

	mu     sync.RWMutex // guards subs
	subs   map[uuid.UUID][]*Subscription
	nextID uint64

	deliver sync.Mutex // serializes re-read + fan-out
}

// Subscription is the unsubscribe handle returned by Subscribe.
type Subscription struct {
	bus    *EntryBus
	userID uuid.UUID
	id     uint64
	fn     func([]models.LogEntry)
	once   sync.Once
}

// Unsubscribe removes the registration. Idempotent: calling it twice, or
// after teardown, is a no-op.
func (s *Subscription) Unsubscribe() {
	s.once.Do(func() {
		s.bus.remove(s)
	})
}

func NewEntryBus(snapshot SnapshotFunc) *EntryBus {
	return &EntryBus{
		snapshot: snapshot,
		subs:     make(map[uuid.UUID][]*Subscription),
	}
}

// Subscribe registers a callback for the user's entry list and immediately
// pushes the current snapshot, so a new subscriber is never left without
// data. The returned subscription survives until Unsubscribe.
func (b *EntryBus) Subscribe(ctx context.Context, userID uuid.UUID, fn func([]models.LogEntry)) (*Subscription, error) {
	b.mu.Lock()
	b.nextID++
	sub := &Subscription{bus: b, userID: userID, id: b.nextID, fn: fn}
	b.subs[userID] = append(b.subs[userID], sub)
	b.mu.Unlock()

	b.deliver.Lock()
	defer b.deliver.Unlock()
	entries, err := b.snapshot(ctx, userID)
	if err != nil {
		sub.Unsubscribe()
		return nil, err
	}
	sub.fn(entries)
	return sub, nil
}

// Publish re-reads the canonical list for the user and invokes every active
// callback, in subscription order.
func (b *EntryBus) Publish(ctx context.Context, userID uuid.UUID) error {
	b.deliver.Lock()
	defer b.deliver.Unlock()
	return b.publishLocked(ctx, userID)
}

// PublishAll refreshes every user that currently has subscribers. Used after
// the global data clear so live views converge immediately.
func (b *EntryBus) PublishAll(ctx context.Context) error {
	b.mu.RLock()
	users := make([]uuid.UUID, 0, len(b.subs))
	for userID := range b.subs {
		users = append(users, userID)
	}
	b.mu.RUnlock()

	b.deliver.Lock()
	defer b.deliver.Unlock()
	var firstErr error
	for _, userID := range users {
		if err := b.publishLocked(ctx, userID); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (b *EntryBus) publishLocked(ctx context.Context, userID uuid.UUID) error {
	entries, err := b.snapshot(ctx, userID)
	if err != nil {
		return err
	}

	b.mu.RLock()
	subs := make([]*Subscription, len(b.subs[userID]))
	copy(subs, b.subs[userID])
	b.mu.RUnlock()

	for _, sub := range subs {
		sub.fn(entries)
	}
	return nil
}

func (b *EntryBus) remove(sub *Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()
	list := b.subs[sub.userID]
	for i, s := range list {
		if s.id == sub.id {
			list = append(list[:i], list[i+1:]...)
			break
		}
	}
	if len(list) == 0 {
		delete(b.subs, sub.userID)
	} else {
		b.subs[sub.userID] = list
	}
}
