package progression

import (
	"math"

	"github.com/JackRiiley/life-rpg-app/internal/domain"
)

// RankFor returns the letter rank for a level. A new rank is earned every
// ten levels, capping at S from level 50.
func RankFor(level int) domain.Rank {
	switch {
	case level >= 50:
		return domain.RankS
	case level >= 40:
		return domain.RankA
	case level >= 30:
		return domain.RankB
	case level >= 20:
		return domain.RankC
	case level >= 10:
		return domain.RankD
	default:
		return domain.RankE
	}
}

// NextThreshold returns the XP required for the level after one whose
// threshold was current.
func NextThreshold(current int) int {
	return int(math.Floor(float64(current) * domain.LevelGrowthFactor))
}

// normalize repairs out-of-range persisted values. A non-positive
// threshold would keep the level-up loop from terminating.
func normalize(p domain.Progression) domain.Progression {
	if p.Level < 1 {
		p.Level = 1
	}
	if p.CurrentXP < 0 {
		p.CurrentXP = 0
	}
	if p.XPToNextLevel <= 0 {
		p.XPToNextLevel = domain.InitialXPToNextLevel
	}
	if p.AttributePoints < 0 {
		p.AttributePoints = 0
	}
	return p
}

// ApplyXP adds xp to p and resolves every level-up it causes. Overflow XP
// carries into the next level, so a single large grant can cross several
// thresholds. Each level crossed grants attribute points and the rank is
// recomputed from the final level. It returns the new progression state and
// whether at least one level was gained. Negative grants are ignored.
func ApplyXP(p domain.Progression, xp int) (domain.Progression, bool) {
	p = normalize(p)
	if xp < 0 {
		xp = 0
	}
	p.CurrentXP += xp

	leveled := false
	for p.CurrentXP >= p.XPToNextLevel {
		p.CurrentXP -= p.XPToNextLevel
		p.Level++
		p.XPToNextLevel = NextThreshold(p.XPToNextLevel)
		p.AttributePoints += domain.AttributePointsPerLevel
		leveled = true
	}

	p.Rank = RankFor(p.Level)
	return p, leveled
}
