package progression

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/JackRiiley/life-rpg-app/internal/domain"
)

func TestRankFor(t *testing.T) {
	assert.Equal(t, domain.RankE, RankFor(1))
	assert.Equal(t, domain.RankE, RankFor(9))
	assert.Equal(t, domain.RankD, RankFor(10))
	assert.Equal(t, domain.RankC, RankFor(20))
	assert.Equal(t, domain.RankB, RankFor(30))
	assert.Equal(t, domain.RankA, RankFor(40))
	assert.Equal(t, domain.RankS, RankFor(50))
	assert.Equal(t, domain.RankS, RankFor(99))
}

func TestNextThreshold(t *testing.T) {
	assert.Equal(t, 150, NextThreshold(100))
	assert.Equal(t, 225, NextThreshold(150))
	// Floors, never rounds.
	assert.Equal(t, 337, NextThreshold(225))
}

func newProgression() domain.Progression {
	return domain.Progression{
		Level:         1,
		CurrentXP:     0,
		XPToNextLevel: domain.InitialXPToNextLevel,
		Rank:          domain.RankE,
	}
}

func TestApplyXP_NoLevelUp(t *testing.T) {
	p, leveled := ApplyXP(newProgression(), 99)

	assert.False(t, leveled)
	assert.Equal(t, 1, p.Level)
	assert.Equal(t, 99, p.CurrentXP)
	assert.Equal(t, 100, p.XPToNextLevel)
	assert.Equal(t, 0, p.AttributePoints)
}

func TestApplyXP_ExactThreshold(t *testing.T) {
	p, leveled := ApplyXP(newProgression(), 100)

	assert.True(t, leveled)
	assert.Equal(t, 2, p.Level)
	assert.Equal(t, 0, p.CurrentXP)
	assert.Equal(t, 150, p.XPToNextLevel)
	assert.Equal(t, 1, p.AttributePoints)
}

func TestApplyXP_OverflowCarries(t *testing.T) {
	p, leveled := ApplyXP(newProgression(), 130)

	assert.True(t, leveled)
	assert.Equal(t, 2, p.Level)
	assert.Equal(t, 30, p.CurrentXP)
	assert.Equal(t, 150, p.XPToNextLevel)
}

func TestApplyXP_MultipleLevelsInOneGrant(t *testing.T) {
	// 100 + 150 = 250 consumed, 10 carried into level 3.
	p, leveled := ApplyXP(newProgression(), 260)

	assert.True(t, leveled)
	assert.Equal(t, 3, p.Level)
	assert.Equal(t, 10, p.CurrentXP)
	assert.Equal(t, 225, p.XPToNextLevel)
	assert.Equal(t, 2, p.AttributePoints)
}

func TestApplyXP_ZeroGrantIsNoOp(t *testing.T) {
	start := newProgression()
	start.CurrentXP = 40

	p, leveled := ApplyXP(start, 0)

	assert.False(t, leveled)
	assert.Equal(t, start, p)
}

func TestApplyXP_RepairsCorruptState(t *testing.T) {
	p := domain.Progression{Level: 0, CurrentXP: -50, XPToNextLevel: 0}

	p, leveled := ApplyXP(p, 100)

	// A zero threshold would never terminate the loop; it is reset to
	// the registration default before the grant applies.
	assert.True(t, leveled)
	assert.Equal(t, 2, p.Level)
	assert.Equal(t, 0, p.CurrentXP)
	assert.Equal(t, 150, p.XPToNextLevel)
}

func TestApplyXP_NegativeGrantIgnored(t *testing.T) {
	start := newProgression()
	start.CurrentXP = 40

	p, leveled := ApplyXP(start, -500)

	assert.False(t, leveled)
	assert.Equal(t, 40, p.CurrentXP)
	assert.Equal(t, 1, p.Level)
}

func TestApplyXP_RankFollowsLevel(t *testing.T) {
	p := newProgression()
	p.Level = 9
	p.XPToNextLevel = 100

	p, leveled := ApplyXP(p, 100)

	assert.True(t, leveled)
	assert.Equal(t, 10, p.Level)
	assert.Equal(t, domain.RankD, p.Rank)
}
