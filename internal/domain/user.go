package domain

import "time"

// Rank is the coarse letter grade derived from level.
type Rank string

const (
	RankE Rank = "E"
	RankD Rank = "D"
	RankC Rank = "C"
	RankB Rank = "B"
	RankA Rank = "A"
	RankS Rank = "S"
)

// Attribute identifies one of the three trainable stats.
type Attribute string

const (
	AttributeStrength  Attribute = "strength"
	AttributeIntellect Attribute = "intellect"
	AttributeStamina   Attribute = "stamina"
)

// ValidAttribute reports whether a is one of the known attributes.
func ValidAttribute(a Attribute) bool {
	switch a {
	case AttributeStrength, AttributeIntellect, AttributeStamina:
		return true
	}
	return false
}

// Progress counter keys tracked per user.
const (
	StatLevel            = "level"
	StatTasksCompleted   = "tasksCompleted"
	StatTotalCoinsEarned = "totalCoinsEarned"
)

// Attributes holds the per-user attribute levels.
type Attributes struct {
	Strength  int `json:"strength"`
	Intellect int `json:"intellect"`
	Stamina   int `json:"stamina"`
}

// Level returns the level of the named attribute, defaulting to 1 for
// unknown or unset values so attribute bonuses never drop below the base.
func (a Attributes) Level(attr Attribute) int {
	var v int
	switch attr {
	case AttributeStrength:
		v = a.Strength
	case AttributeIntellect:
		v = a.Intellect
	case AttributeStamina:
		v = a.Stamina
	}
	if v < 1 {
		return 1
	}
	return v
}

// Progression is the portion of UserStats mutated by XP grants. It is kept
// separate so the level calculator can stay a pure function over it.
type Progression struct {
	Level           int  `json:"level"`
	CurrentXP       int  `json:"current_xp"`
	XPToNextLevel   int  `json:"xp_to_next_level"`
	AttributePoints int  `json:"attribute_points"`
	Rank            Rank `json:"rank"`
}

// UserStats is the per-user progression document.
type UserStats struct {
	UID   string `json:"uid"`
	Email string `json:"email"`

	Progression

	Coins         int    `json:"coins"`
	SelectedTitle string `json:"selected_title"`
	ActiveTheme   string `json:"active_theme"`

	Attributes Attributes `json:"attributes"`

	// Progress holds monotonically increasing counters keyed by stat name
	// (tasksCompleted, totalCoinsEarned). Stored as JSONB so new counters
	// need no schema change.
	Progress map[string]int `json:"progress"`

	CurrentStreak     int    `json:"current_streak"`
	LastCompletedDate string `json:"last_completed_date"`
	LastResetDate     string `json:"last_reset_date"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProgressValue returns the named counter, treating missing keys as zero.
func (s *UserStats) ProgressValue(stat string) int {
	if s.Progress == nil {
		return 0
	}
	return s.Progress[stat]
}

// NewUserStats returns the stats document created at registration.
func NewUserStats(uid, email string) *UserStats {
	return &UserStats{
		UID:   uid,
		Email: email,
		Progression: Progression{
			Level:         1,
			CurrentXP:     0,
			XPToNextLevel: InitialXPToNextLevel,
			Rank:          RankE,
		},
		Attributes: Attributes{Strength: 1, Intellect: 1, Stamina: 1},
		Progress:   map[string]int{},
	}
}

// RewardResult reports the outcome of a reward grant.
type RewardResult struct {
	XPGranted      int  `json:"xp_granted"`
	CoinsGranted   int  `json:"coins_granted"`
	OldLevel       int  `json:"old_level"`
	NewLevel       int  `json:"new_level"`
	LeveledUp      bool `json:"leveled_up"`
	NewRank        Rank `json:"new_rank"`
	NewCoins       int  `json:"new_coins"`
	CurrentStreak  int  `json:"current_streak"`
	StreakAdvanced bool `json:"streak_advanced"`
}
