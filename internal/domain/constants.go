package domain

// Progression tuning constants.
const (
	// InitialXPToNextLevel is the level-2 threshold seeded at registration.
	InitialXPToNextLevel = 100

	// LevelGrowthFactor scales the XP threshold on each level-up
	// (floored after multiplication: 100, 150, 225, ...).
	LevelGrowthFactor = 1.5

	// AttributePointsPerLevel is granted on every level-up.
	AttributePointsPerLevel = 1
)

// Task and quest constants.
const (
	// DefaultTaskXP is used when a task carries no XP value.
	DefaultTaskXP = 20

	// DefaultTaskCoins is the coin reward for completing any task.
	DefaultTaskCoins = 5

	// DailyQuestCount is the number of quests rolled at each daily reset.
	DailyQuestCount = 3
)

// Boss combat constants.
const (
	// BonusDamagePerAttributeLevel scales attribute levels into bonus damage.
	BonusDamagePerAttributeLevel = 5

	// DefaultAttackDamage is used when an attack carries no base damage.
	DefaultAttackDamage = 20

	// BossDefeatBonusXP and BossDefeatBonusCoins are granted once when a
	// boss reaches zero HP, on top of the finishing attack's own reward.
	BossDefeatBonusXP    = 500
	BossDefeatBonusCoins = 100
)

// Task types.
const (
	TaskTypeDaily = "daily"
	TaskTypeTodo  = "todo"
)
