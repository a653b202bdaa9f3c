package domain

import "time"

// Difficulty scales a boss's total HP against the owner's level at creation.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// HPMultiplier returns the per-owner-level HP scale for the difficulty.
func (d Difficulty) HPMultiplier() int {
	switch d {
	case DifficultyMedium:
		return 200
	case DifficultyHard:
		return 350
	default:
		return 100
	}
}

// ValidDifficulty reports whether d is a known difficulty.
func ValidDifficulty(d Difficulty) bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// Boss is a multi-stage project with an aggregate HP pool that depletes as
// its attacks are completed. TotalHP is fixed at creation.
type Boss struct {
	ID         string     `json:"id"`
	OwnerID    string     `json:"owner_id"`
	Name       string     `json:"name"`
	TotalHP    int        `json:"total_hp"`
	CurrentHP  int        `json:"current_hp"`
	IsComplete bool       `json:"is_complete"`
	Difficulty Difficulty `json:"difficulty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// BossAttack is a sub-task of a boss. Completing it deals
// baseDamage + attributeLevel*BonusDamagePerAttributeLevel damage.
// Once complete it is terminal and must never be re-applied.
type BossAttack struct {
	ID         string    `json:"id"`
	BossID     string    `json:"boss_id"`
	Title      string    `json:"title"`
	BaseDamage int       `json:"base_damage"`
	Attribute  Attribute `json:"attribute"`
	XP         int       `json:"xp"`
	Coins      int       `json:"coins"`
	IsComplete bool      `json:"is_complete"`
	CreatedAt  time.Time `json:"created_at"`
}

// Damage returns the attack's base damage with the legacy zero-value fallback.
func (a BossAttack) Damage() int {
	if a.BaseDamage <= 0 {
		return DefaultAttackDamage
	}
	return a.BaseDamage
}

// SuggestedAttackXP derives an attack's XP reward from its base damage,
// used when the attack was created without an explicit reward.
func SuggestedAttackXP(damage int) int {
	return damage/5 + 10
}

// SuggestedAttackCoins derives an attack's coin reward from its base damage.
func SuggestedAttackCoins(damage int) int {
	return damage/20 + 5
}

// RewardXP returns the attack's XP reward, deriving it from damage when unset.
func (a BossAttack) RewardXP() int {
	if a.XP <= 0 {
		return SuggestedAttackXP(a.Damage())
	}
	return a.XP
}

// RewardCoins returns the attack's coin reward, deriving it from damage when
// unset.
func (a BossAttack) RewardCoins() int {
	if a.Coins <= 0 {
		return SuggestedAttackCoins(a.Damage())
	}
	return a.Coins
}

// AttackResult reports the outcome of executing a boss attack.
type AttackResult struct {
	BaseDamage   int           `json:"base_damage"`
	BonusDamage  int           `json:"bonus_damage"`
	TotalDamage  int           `json:"total_damage"`
	BossHP       int           `json:"boss_hp"`
	BossDefeated bool          `json:"boss_defeated"`
	Reward       *RewardResult `json:"reward,omitempty"`
	DefeatBonus  *RewardResult `json:"defeat_bonus,omitempty"`
}
