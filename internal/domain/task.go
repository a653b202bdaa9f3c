package domain

import "time"

// Task is a user-owned unit of work, either a recurring daily or a one-off
// todo. Dailies are reset to incomplete at day rollover; todos persist until
// deleted.
type Task struct {
	ID         string    `json:"id"`
	OwnerID    string    `json:"owner_id"`
	Title      string    `json:"title"`
	IsComplete bool      `json:"is_complete"`
	XP         int       `json:"xp"`
	Type       string    `json:"type"` // 'daily' | 'todo'
	CreatedAt  time.Time `json:"created_at"`
}

// RewardXP returns the task's XP value with the legacy zero-value fallback.
func (t Task) RewardXP() int {
	if t.XP <= 0 {
		return DefaultTaskXP
	}
	return t.XP
}

// QuestTemplate is an entry in the shared daily quest pool.
type QuestTemplate struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	XP    int    `json:"xp"`
}

// ActiveQuest is one user's rolled instance of a pool quest, valid for a
// single calendar day. The whole set is discarded and re-rolled at the next
// rollover.
type ActiveQuest struct {
	ID              string    `json:"id"`
	OwnerID         string    `json:"owner_id"`
	OriginalQuestID string    `json:"original_quest_id"`
	Title           string    `json:"title"`
	XP              int       `json:"xp"`
	IsComplete      bool      `json:"is_complete"`
	CreatedAt       time.Time `json:"created_at"`
}

// DailyResetResult reports what a day rollover changed.
type DailyResetResult struct {
	DidReset     bool   `json:"did_reset"`
	TasksReset   int    `json:"tasks_reset"`
	QuestsRolled int    `json:"quests_rolled"`
	ResetDate    string `json:"reset_date"`
}
