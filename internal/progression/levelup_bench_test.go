package progression

import (
	"testing"

	"github.com/JackRiiley/life-rpg-app/internal/domain"
)

func benchProgression() domain.Progression {
	return domain.Progression{
		Level:         1,
		CurrentXP:     0,
		XPToNextLevel: domain.InitialXPToNextLevel,
		Rank:          domain.RankE,
	}
}

func BenchmarkApplyXP_SingleLevel(b *testing.B) {
	p := benchProgression()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ApplyXP(p, domain.InitialXPToNextLevel)
	}
}

func BenchmarkApplyXP_ManyLevels(b *testing.B) {
	p := benchProgression()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		// Enough XP to cross dozens of thresholds in one grant
		ApplyXP(p, 1_000_000)
	}
}

func BenchmarkRankFor(b *testing.B) {
	for i := 0; i < b.N; i++ {
		RankFor(i % 60)
	}
}
