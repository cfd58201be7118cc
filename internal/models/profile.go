package models

import (
	"time"

	"github.com/google/uuid"
)

// MacroGoals holds a user's daily macro-nutrient targets.
type MacroGoals struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

// DefaultMacroGoals returns the targets assigned to a freshly created profile.
func DefaultMacroGoals() MacroGoals {
	return MacroGoals{Calories: 2000, Protein: 150, Carbs: 250, Fat: 65}
}

// UserProfile is the single per-user settings record. Updates are field-level
// merges; unrelated stored fields survive a partial update.
type UserProfile struct {
	ID          uint       `gorm:"primarykey" json:"-"`
	UserID      uuid.UUID  `gorm:"type:varchar(36);not null;uniqueIndex" json:"user_id"`
	DisplayName string     `gorm:"size:255" json:"display_name"`
	Timezone    string     `gorm:"size:64" json:"timezone"`
	MacroGoals  MacroGoals `gorm:"embedded;embeddedPrefix:goal_" json:"macro_goals"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
