package domain

// Event type names published on the internal bus and fanned out over SSE.
const (
	EventTypeTaskCompleted       = "task.completed"
	EventTypeLevelUp             = "stats.level_up"
	EventTypeRewardGranted       = "stats.reward_granted"
	EventTypeAchievementUnlocked = "achievement.unlocked"
	EventTypeStreakAdvanced      = "streak.advanced"
	EventTypeStreakBroken        = "streak.broken"
	EventTypeBossDamaged         = "boss.damaged"
	EventTypeBossDefeated        = "boss.defeated"
	EventTypeItemPurchased       = "shop.item_purchased"
	EventTypeDailyReset          = "daily.reset_complete"
)

// AllEventTypes lists every event type the bus carries, in publish-site
// order. Cross-cutting subscribers range over this instead of keeping
// their own copy.
var AllEventTypes = []string{
	EventTypeTaskCompleted,
	EventTypeLevelUp,
	EventTypeRewardGranted,
	EventTypeAchievementUnlocked,
	EventTypeStreakAdvanced,
	EventTypeStreakBroken,
	EventTypeBossDamaged,
	EventTypeBossDefeated,
	EventTypeItemPurchased,
	EventTypeDailyReset,
}

// PayloadUserID returns the owning user of an event payload, or "" when
// the payload is not one of the known types.
func PayloadUserID(payload interface{}) string {
	switch p := payload.(type) {
	case TaskCompletedPayload:
		return p.UserID
	case LevelUpPayload:
		return p.UserID
	case RewardGrantedPayload:
		return p.UserID
	case AchievementUnlockedPayload:
		return p.UserID
	case StreakPayload:
		return p.UserID
	case BossDamagedPayload:
		return p.UserID
	case BossDefeatedPayload:
		return p.UserID
	case ItemPurchasedPayload:
		return p.UserID
	case DailyResetPayload:
		return p.UserID
	}
	return ""
}

// TaskCompletedPayload is published when a task or daily quest completion
// commits.
type TaskCompletedPayload struct {
	UserID       string `json:"user_id"`
	TaskID       string `json:"task_id"`
	Title        string `json:"title"`
	XPGranted    int    `json:"xp_granted"`
	CoinsGranted int    `json:"coins_granted"`
}

// RewardGrantedPayload is published after every committed reward grant,
// whatever its source.
type RewardGrantedPayload struct {
	UserID       string `json:"user_id"`
	XPGranted    int    `json:"xp_granted"`
	CoinsGranted int    `json:"coins_granted"`
	NewLevel     int    `json:"new_level"`
	NewCoins     int    `json:"new_coins"`
}

// LevelUpPayload is published when a reward grant crosses a level threshold.
type LevelUpPayload struct {
	UserID   string `json:"user_id"`
	OldLevel int    `json:"old_level"`
	NewLevel int    `json:"new_level"`
	NewRank  Rank   `json:"new_rank"`
}

// AchievementUnlockedPayload is published exactly once per unlock.
type AchievementUnlockedPayload struct {
	UserID        string `json:"user_id"`
	AchievementID string `json:"achievement_id"`
	Title         string `json:"title"`
	UnlockedTitle string `json:"unlocked_title"`
	TitleGranted  bool   `json:"title_granted"`
}

// BossDamagedPayload is published after a non-lethal attack commits.
type BossDamagedPayload struct {
	UserID      string `json:"user_id"`
	BossID      string `json:"boss_id"`
	AttackID    string `json:"attack_id"`
	TotalDamage int    `json:"total_damage"`
	RemainingHP int    `json:"remaining_hp"`
}

// BossDefeatedPayload is published once when a boss reaches zero HP.
type BossDefeatedPayload struct {
	UserID     string `json:"user_id"`
	BossID     string `json:"boss_id"`
	BossName   string `json:"boss_name"`
	BonusXP    int    `json:"bonus_xp"`
	BonusCoins int    `json:"bonus_coins"`
}

// ItemPurchasedPayload is published after a purchase transaction commits.
type ItemPurchasedPayload struct {
	UserID         string `json:"user_id"`
	ItemID         string `json:"item_id"`
	ItemName       string `json:"item_name"`
	Cost           int    `json:"cost"`
	CoinsRemaining int    `json:"coins_remaining"`
}

// DailyResetPayload is published after a day rollover commits.
type DailyResetPayload struct {
	UserID       string `json:"user_id"`
	TasksReset   int    `json:"tasks_reset"`
	QuestsRolled int    `json:"quests_rolled"`
	ResetDate    string `json:"reset_date"`
}

// StreakPayload is published when a streak advances or breaks.
type StreakPayload struct {
	UserID        string `json:"user_id"`
	CurrentStreak int    `json:"current_streak"`
}
