package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tmarek/nutrilog/backend/internal/models"
)

func TestAddEntryAndList(t *testing.T) {
	svc := NewEntryService(newTestDB(t), nil)
	userID := uuid.New()
	ctx := context.Background()

	first := &models.LogEntry{Name: "Oatmeal", Calories: 300, Protein: 10, Carbs: 54, Fat: 5}
	second := &models.LogEntry{Name: "Greek Yogurt", Portion: "200 g", Calories: 120, Protein: 20, Carbs: 8, Fat: 0}

	require.NoError(t, svc.AddEntry(ctx, userID, first))
	require.NoError(t, svc.AddEntry(ctx, userID, second))

	entries, err := svc.ListEntries(ctx, userID)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// insertion order, not timestamp order
	assert.Equal(t, "Oatmeal", entries[0].Name)
	assert.Equal(t, "Greek Yogurt", entries[1].Name)

	assert.Equal(t, models.DefaultPortion, entries[0].Portion)
	assert.Equal(t, "200 g", entries[1].Portion)

	assert.NotEmpty(t, entries[0].EntryID)
	assert.NotEmpty(t, entries[1].EntryID)
	assert.NotEqual(t, entries[0].EntryID, entries[1].EntryID)
	assert.NotNil(t, entries[0].Timestamp)
}

func TestAddEntryRejectsInvalid(t *testing.T) {
	svc := NewEntryService(newTestDB(t), nil)
	userID := uuid.New()
	ctx := context.Background()

	err := svc.AddEntry(ctx, userID, &models.LogEntry{Name: "Mystery", Calories: -10})
	assert.ErrorIs(t, err, ErrInvalidEntry)

	err = svc.AddEntry(ctx, userID, &models.LogEntry{})
	assert.ErrorIs(t, err, ErrInvalidEntry)

	entries, listErr := svc.ListEntries(ctx, userID)
	require.NoError(t, listErr)
	assert.Empty(t, entries)
}

func TestAddEntryDuplicateID(t *testing.T) {
	svc := NewEntryService(newTestDB(t), nil)
	userID := uuid.New()
	ctx := context.Background()

	require.NoError(t, svc.AddEntry(ctx, userID, &models.LogEntry{EntryID: "e-1", Name: "Apple", Calories: 95}))

	err := svc.AddEntry(ctx, userID, &models.LogEntry{EntryID: "e-1", Name: "Another Apple", Calories: 95})
	assert.ErrorIs(t, err, ErrDuplicateEntry)

	entries, listErr := svc.ListEntries(ctx, userID)
	require.NoError(t, listErr)
	require.Len(t, entries, 1)
	assert.Equal(t, "Apple", entries[0].Name)
}

func TestDuplicateIDAllowedAcrossUsers(t *testing.T) {
	svc := NewEntryService(newTestDB(t), nil)
	ctx := context.Background()

	require.NoError(t, svc.AddEntry(ctx, uuid.New(), &models.LogEntry{EntryID: "shared", Name: "Apple", Calories: 95}))
	require.NoError(t, svc.AddEntry(ctx, uuid.New(), &models.LogEntry{EntryID: "shared", Name: "Banana", Calories: 105}))
}

func TestRemoveEntry(t *testing.T) {
	svc := NewEntryService(newTestDB(t), nil)
	userID := uuid.New()
	ctx := context.Background()

	require.NoError(t, svc.AddEntry(ctx, userID, &models.LogEntry{EntryID: "e-1", Name: "Apple", Calories: 95}))
	require.NoError(t, svc.RemoveEntry(ctx, userID, "e-1"))

	entries, err := svc.ListEntries(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRemoveMissingEntryIsNoop(t *testing.T) {
	svc := NewEntryService(newTestDB(t), nil)
	userID := uuid.New()
	ctx := context.Background()

	require.NoError(t, svc.AddEntry(ctx, userID, &models.LogEntry{EntryID: "e-1", Name: "Apple", Calories: 95}))

	var pushes int
	sub, err := svc.Subscribe(ctx, userID, func([]models.LogEntry) { pushes++ })
	require.NoError(t, err)
	defer sub.Unsubscribe()
	require.Equal(t, 1, pushes) // initial push only

	require.NoError(t, svc.RemoveEntry(ctx, userID, "no-such-id"))

	entries, err := svc.ListEntries(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Equal(t, 1, pushes, "a no-op remove should not notify")
}

func TestRemoveScopedToUser(t *testing.T) {
	svc := NewEntryService(newTestDB(t), nil)
	ctx := context.Background()
	alice, bob := uuid.New(), uuid.New()

	require.NoError(t, svc.AddEntry(ctx, alice, &models.LogEntry{EntryID: "e-1", Name: "Apple", Calories: 95}))
	require.NoError(t, svc.RemoveEntry(ctx, bob, "e-1"))

	entries, err := svc.ListEntries(ctx, alice)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestBatchPartialFailure(t *testing.T) {
	svc := NewEntryService(newTestDB(t), nil)
	userID := uuid.New()
	ctx := context.Background()

	// occupy the id that item 2 will collide with
	require.NoError(t, svc.AddEntry(ctx, userID, &models.LogEntry{EntryID: "taken", Name: "Earlier", Calories: 100}))

	var snapshots [][]models.LogEntry
	sub, err := svc.Subscribe(ctx, userID, func(entries []models.LogEntry) {
		snapshots = append(snapshots, entries)
	})
	require.NoError(t, err)
	defer sub.Unsubscribe()

	result := svc.AddEntries(ctx, userID, []*models.LogEntry{
		{EntryID: "b-1", Name: "Toast", Calories: 150},
		{EntryID: "taken", Name: "Collision", Calories: 1},
		{EntryID: "b-3", Name: "Eggs", Calories: 140},
	})

	require.Len(t, result.Results, 3)
	assert.True(t, result.Partial())
	assert.Equal(t, 1, result.Failed)
	assert.True(t, result.Results[0].OK)
	assert.False(t, result.Results[1].OK)
	assert.NotEmpty(t, result.Results[1].Error)
	assert.True(t, result.Results[2].OK)

	// items 1 and 3 are durable and visible in the latest notification
	latest := snapshots[len(snapshots)-1]
	names := make([]string, 0, len(latest))
	for _, e := range latest {
		names = append(names, e.Name)
	}
	assert.Contains(t, names, "Toast")
	assert.Contains(t, names, "Eggs")
	assert.NotContains(t, names, "Collision")
}

func TestBatchSuccessNotifiesPerItem(t *testing.T) {
	svc := NewEntryService(newTestDB(t), nil)
	userID := uuid.New()
	ctx := context.Background()

	var sizes []int
	sub, err := svc.Subscribe(ctx, userID, func(entries []models.LogEntry) {
		sizes = append(sizes, len(entries))
	})
	require.NoError(t, err)
	defer sub.Unsubscribe()

	result := svc.AddEntries(ctx, userID, []*models.LogEntry{
		{Name: "One", Calories: 1},
		{Name: "Two", Calories: 2},
	})
	assert.Zero(t, result.Failed)
	assert.False(t, result.Partial())

	// initial push, then one notification per persisted item, in order
	assert.Equal(t, []int{0, 1, 2}, sizes)
}

func TestClearAllData(t *testing.T) {
	db := newTestDB(t)
	entries := NewEntryService(db, nil)
	profiles := NewProfileService(db)
	ctx := context.Background()
	alice, bob := uuid.New(), uuid.New()

	require.NoError(t, entries.AddEntry(ctx, alice, &models.LogEntry{Name: "Apple", Calories: 95}))
	require.NoError(t, entries.AddEntry(ctx, bob, &models.LogEntry{Name: "Banana", Calories: 105}))
	_, err := profiles.UpdateProfile(ctx, alice, &ProfileUpdate{})
	require.NoError(t, err)

	var lastSnapshot []models.LogEntry
	sub, err := entries.Subscribe(ctx, alice, func(s []models.LogEntry) { lastSnapshot = s })
	require.NoError(t, err)
	defer sub.Unsubscribe()
	require.Len(t, lastSnapshot, 1)

	require.NoError(t, entries.ClearAllData(ctx))

	for _, userID := range []uuid.UUID{alice, bob} {
		list, err := entries.ListEntries(ctx, userID)
		require.NoError(t, err)
		assert.Empty(t, list)

		_, err = profiles.GetProfile(ctx, userID)
		assert.ErrorIs(t, err, ErrProfileNotFound)
	}

	// live subscribers converge to the cleared state immediately
	assert.Empty(t, lastSnapshot)
}
