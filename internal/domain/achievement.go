package domain

import "time"

// Achievement is a catalog entry, read-only to users. StatToTrack is either
// StatLevel or the name of a progress counter.
type Achievement struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	UnlockedTitle   string `json:"unlocked_title"`
	StatToTrack     string `json:"stat_to_track"`
	UnlockThreshold int    `json:"unlock_threshold"`
}

// Qualifies reports whether the achievement's threshold is met by the stats.
func (a Achievement) Qualifies(stats *UserStats) bool {
	if a.StatToTrack == StatLevel {
		return stats.Level >= a.UnlockThreshold
	}
	return stats.ProgressValue(a.StatToTrack) >= a.UnlockThreshold
}

// UnlockedAchievement records one granted catalog entry for one user.
// The existence of the row is itself the "already unlocked" flag.
type UnlockedAchievement struct {
	AchievementID string    `json:"achievement_id"`
	UserID        string    `json:"user_id"`
	Title         string    `json:"title"`
	UnlockedTitle string    `json:"unlocked_title"`
	UnlockedAt    time.Time `json:"unlocked_at"`
}
