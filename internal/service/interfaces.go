package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/tmarek/nutrilog/backend/internal/models"
	"github.com/tmarek/nutrilog/backend/internal/types"
)

// IEntryService defines the interface for the observable entry store
type IEntryService interface {
	AddEntry(ctx context.Context, userID uuid.UUID, entry *models.LogEntry) error
	AddEntries(ctx context.Context, userID uuid.UUID, entries []*models.LogEntry) *BatchResult
	RemoveEntry(ctx context.Context, userID uuid.UUID, entryID string) error
	ListEntries(ctx context.Context, userID uuid.UUID) ([]models.LogEntry, error)
	Subscribe(ctx context.Context, userID uuid.UUID, fn func([]models.LogEntry)) (*Subscription, error)
	ClearAllData(ctx context.Context) error
}

// IProfileService defines the interface for profile operations
type IProfileService interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*models.UserProfile, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, upd *ProfileUpdate) (*models.UserProfile, error)
}

// IAuthService defines the interface for authentication operations
type IAuthService interface {
	Register(ctx context.Context, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (string, *models.User, error)
	GenerateToken(claims *types.TokenClaims) (string, error)
	ValidateToken(token string) (*types.TokenClaims, error)
}
