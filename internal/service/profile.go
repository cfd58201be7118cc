package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tmarek/nutrilog/backend/internal/models"
)

// ProfileUpdate carries the fields of a partial profile update. Nil fields
// are left untouched.
type ProfileUpdate struct {
	DisplayName *string            `json:"display_name"`
	Timezone    *string            `json:"timezone"`
	MacroGoals  *models.MacroGoals `json:"macro_goals"`
}

// ProfileService handles the single-record-per-user profile store.
type ProfileService struct {
	db *gorm.DB
}

// Ensure ProfileService implements IProfileService
var _ IProfileService = (*ProfileService)(nil)

// NewProfileService creates a new ProfileService instance
func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{db: db}
}

// GetProfile retrieves a user's profile. ErrProfileNotFound signals that
// onboarding is required; it is an outcome, not a failure.
func (s *ProfileService) GetProfile(ctx context.Context, userID uuid.UUID) (*models.UserProfile, error) {
	var profile models.UserProfile
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, persistenceError("get profile", err)
	}
	return &profile, nil
}

// UpdateProfile merges the given fields into the stored profile, lazily
// creating one with default goals on first write. Unrelated stored fields
// are preserved; this is never a full-record overwrite.
func (s *ProfileService) UpdateProfile(ctx context.Context, userID uuid.UUID, upd *ProfileUpdate) (*models.UserProfile, error) {
	var profile models.UserProfile
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		profile = models.UserProfile{
			UserID:     userID,
			MacroGoals: models.DefaultMacroGoals(),
		}
	case err != nil:
		return nil, persistenceError("load profile", err)
	}

	if upd.DisplayName != nil {
		profile.DisplayName = *upd.DisplayName
	}
	if upd.Timezone != nil {
		profile.Timezone = *upd.Timezone
	}
	if upd.MacroGoals != nil {
		profile.MacroGoals = *upd.MacroGoals
	}

	if err := s.db.WithContext(ctx).Save(&profile).Error; err != nil {
		return nil, persistenceError("save profile", err)
	}
	return &profile, nil
}
