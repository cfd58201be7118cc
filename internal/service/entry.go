package service

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tmarek/nutrilog/backend/internal/models"
)

// EntryService owns durable CRUD of log entries, scoped by user, and drives
// the notification bus after every successful mutation.
type EntryService struct {
	db    *gorm.DB
	bus   *EntryBus
	ids   IDGenerator
	relay *Relay

	// Mutations run to completion, including their fan-out, before the next
	// one is accepted.
	mu sync.Mutex
}

// Ensure EntryService implements IEntryService
var _ IEntryService = (*EntryService)(nil)

// NewEntryService creates a new EntryService instance
func NewEntryService(db *gorm.DB, ids IDGenerator) *EntryService {
	if ids == nil {
		ids = UUIDGenerator{}
	}
	s := &EntryService{db: db, ids: ids}
	s.bus = NewEntryBus(s.ListEntries)
	return s
}

// AttachRelay enables cross-instance notification fan-out via redis.
func (s *EntryService) AttachRelay(r *Relay) {
	s.relay = r
}

// Subscribe registers a callback for the user's entries with an immediate
// initial push of the current snapshot. Callbacks run on the mutating
// goroutine and must not mutate the store synchronously.
func (s *EntryService) Subscribe(ctx context.Context, userID uuid.UUID, fn func([]models.LogEntry)) (*Subscription, error) {
	return s.bus.Subscribe(ctx, userID, fn)
}

// AddEntry persists one entry into the user's collection and triggers a
// notification refresh.
func (s *EntryService) AddEntry(ctx context.Context, userID uuid.UUID, entry *models.LogEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addOne(ctx, userID, entry)
}

// BatchItemResult reports the outcome of one entry in a batch add.
type BatchItemResult struct {
	EntryID string `json:"id"`
	OK      bool   `json:"ok"`
	Error   string `json:"error,omitempty"`
}

// BatchResult reports per-item outcomes of a batch add. Successes are
// durable and have already notified even when later items failed.
type BatchResult struct {
	Results []BatchItemResult `json:"results"`
	Failed  int               `json:"failed"`
}

// Partial reports whether some, but not all, items persisted.
func (r *BatchResult) Partial() bool {
	return r.Failed > 0 && r.Failed < len(r.Results)
}

// AddEntries persists each entry independently, in order. A mid-batch
// failure does not roll back or hide prior successes; the result tells the
// caller exactly which items failed.
func (s *EntryService) AddEntries(ctx context.Context, userID uuid.UUID, entries []*models.LogEntry) *BatchResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	res := &BatchResult{Results: make([]BatchItemResult, 0, len(entries))}
	for _, entry := range entries {
		err := s.addOne(ctx, userID, entry)
		item := BatchItemResult{EntryID: entry.EntryID, OK: err == nil}
		if err != nil {
			item.Error = err.Error()
			res.Failed++
		}
		res.Results = append(res.Results, item)
	}
	return res
}

func (s *EntryService) addOne(ctx context.Context, userID uuid.UUID, entry *models.LogEntry) error {
	if entry == nil || entry.Name == "" {
		return ErrInvalidEntry
	}
	if entry.Calories < 0 || entry.Protein < 0 || entry.Carbs < 0 || entry.Fat < 0 {
		return ErrInvalidEntry
	}

	entry.ID = 0
	entry.UserID = userID
	if entry.EntryID == "" {
		entry.EntryID = s.ids.NewID()
	}
	if entry.Portion == "" {
		entry.Portion = models.DefaultPortion
	}
	if entry.Timestamp == nil {
		now := time.Now().UnixMilli()
		entry.Timestamp = &now
	}

	if err := s.db.WithContext(ctx).Create(entry).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateEntry
		}
		return persistenceError("add entry", err)
	}

	s.notify(ctx, userID)
	return nil
}

// RemoveEntry deletes the entry with the given id if present. Removing a
// missing id is a no-op, not an error, and fires no notification.
func (s *EntryService) RemoveEntry(ctx context.Context, userID uuid.UUID, entryID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := s.db.WithContext(ctx).
		Where("user_id = ? AND entry_id = ?", userID, entryID).
		Delete(&models.LogEntry{})
	if tx.Error != nil {
		return persistenceError("remove entry", tx.Error)
	}
	if tx.RowsAffected > 0 {
		s.notify(ctx, userID)
	}
	return nil
}

// ListEntries returns the user's full entry set in insertion order. This is
// the canonical snapshot behind every notification.
func (s *EntryService) ListEntries(ctx context.Context, userID uuid.UUID) ([]models.LogEntry, error) {
	var entries []models.LogEntry
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&entries).Error; err != nil {
		return nil, persistenceError("list entries", err)
	}
	return entries, nil
}

// ClearAllData irreversibly erases all persisted state for all users.
// Confirmation is the caller's responsibility.
func (s *EntryService) ClearAllData(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		wipe := tx.Session(&gorm.Session{AllowGlobalUpdate: true})
		for _, model := range []interface{}{&models.LogEntry{}, &models.UserProfile{}, &models.User{}} {
			if err := wipe.Delete(model).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return persistenceError("clear all data", err)
	}

	if err := s.bus.PublishAll(ctx); err != nil {
		log.Printf("post-clear refresh failed: %v", err)
	}
	if s.relay != nil {
		if err := s.relay.Announce(ctx, uuid.Nil); err != nil {
			log.Printf("relay announce failed: %v", err)
		}
	}
	return nil
}

// Refresh re-reads and fans out the user's snapshot without announcing to
// the relay. Called for changes that originated on another instance;
// uuid.Nil refreshes every subscribed user.
func (s *EntryService) Refresh(ctx context.Context, userID uuid.UUID) {
	var err error
	if userID == uuid.Nil {
		err = s.bus.PublishAll(ctx)
	} else {
		err = s.bus.Publish(ctx, userID)
	}
	if err != nil {
		log.Printf("refresh for %s failed: %v", userID, err)
	}
}

// notify distributes the freshly persisted list. The write has already
// succeeded, so a failed re-read is logged rather than surfaced.
func (s *EntryService) notify(ctx context.Context, userID uuid.UUID) {
	if err := s.bus.Publish(ctx, userID); err != nil {
		log.Printf("notification refresh for %s failed: %v", userID, err)
	}
	if s.relay != nil {
		if err := s.relay.Announce(ctx, userID); err != nil {
			log.Printf("relay announce failed: %v", err)
		}
	}
}
