package progression

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/JackRiiley/life-rpg-app/internal/domain"
	"github.com/JackRiiley/life-rpg-app/internal/event"
	"github.com/JackRiiley/life-rpg-app/internal/logger"
	"github.com/JackRiiley/life-rpg-app/internal/repository"
	"github.com/JackRiiley/life-rpg-app/internal/streak"
)

// GrantRequest describes one reward grant. Progress counters are added to
// the user's stored counters; TouchStreak credits the daily streak as part
// of the same write.
type GrantRequest struct {
	XP          int
	Coins       int
	Progress    map[string]int
	TouchStreak bool
}

// Service owns the user stats document and every mutation of it.
type Service interface {
	// EnsureStats returns the user's stats, creating the level-1 document on
	// first sight of the user.
	EnsureStats(ctx context.Context, userID, email string) (*domain.UserStats, error)
	GetStats(ctx context.Context, userID string) (*domain.UserStats, error)
	// GrantRewards applies XP, coins, progress counters and the streak in a
	// single transaction, resolving any level-ups the XP causes.
	GrantRewards(ctx context.Context, userID string, req GrantRequest) (*domain.RewardResult, error)
	// SpendAttributePoint converts one unspent point into a level of attr.
	SpendAttributePoint(ctx context.Context, userID string, attr domain.Attribute) (*domain.UserStats, error)
	// SelectTitle sets the displayed title, which must be an unlocked one.
	SelectTitle(ctx context.Context, userID, title string) error
	// SelectTheme sets the active UI theme, which must be owned or the default.
	SelectTheme(ctx context.Context, userID, theme string) error
}

type service struct {
	repo     repository.StatsRepository
	achRepo  repository.AchievementRepository
	shopRepo repository.ShopRepository
	bus      event.Bus
	loc      *time.Location
}

// NewService creates a new progression service
func NewService(repo repository.StatsRepository, achRepo repository.AchievementRepository, shopRepo repository.ShopRepository, bus event.Bus, loc *time.Location) Service {
	return &service{repo: repo, achRepo: achRepo, shopRepo: shopRepo, bus: bus, loc: loc}
}

func (s *service) EnsureStats(ctx context.Context, userID, email string) (*domain.UserStats, error) {
	stats, err := s.repo.GetStats(ctx, userID)
	if err == nil {
		return stats, nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	fresh := domain.NewUserStats(userID, email)
	now := time.Now()
	fresh.CreatedAt = now
	fresh.UpdatedAt = now
	if err := s.repo.CreateStats(ctx, fresh); err != nil {
		return nil, fmt.Errorf("create stats for %s: %w", userID, err)
	}

	logger.FromContext(ctx).Info("created stats document", "user_id", userID)

	// Re-read so a concurrent registration race resolves to the stored row.
	return s.repo.GetStats(ctx, userID)
}

func (s *service) GetStats(ctx context.Context, userID string) (*domain.UserStats, error) {
	return s.repo.GetStats(ctx, userID)
}

func (s *service) GrantRewards(ctx context.Context, userID string, req GrantRequest) (*domain.RewardResult, error) {
	if req.XP < 0 || req.Coins < 0 {
		return nil, fmt.Errorf("%w: reward amounts must be non-negative", domain.ErrInvalidInput)
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin reward grant: %w", err)
	}
	defer repository.SafeRollback(ctx, tx)

	stats, err := tx.GetStatsForUpdate(ctx, userID)
	if err != nil {
		return nil, err
	}

	oldLevel := stats.Level
	var leveled bool
	stats.Progression, leveled = ApplyXP(stats.Progression, req.XP)
	stats.Coins += req.Coins

	if stats.Progress == nil {
		stats.Progress = map[string]int{}
	}
	if req.Coins > 0 {
		stats.Progress[domain.StatTotalCoinsEarned] += req.Coins
	}
	for stat, amount := range req.Progress {
		stats.Progress[stat] += amount
	}

	result := &domain.RewardResult{
		XPGranted:    req.XP,
		CoinsGranted: req.Coins,
		OldLevel:     oldLevel,
		NewLevel:     stats.Level,
		LeveledUp:    leveled,
		NewRank:      stats.Rank,
		NewCoins:     stats.Coins,
	}

	if req.TouchStreak {
		today := streak.Today(s.loc)
		newStreak, advanced := streak.Advance(stats.CurrentStreak, stats.LastCompletedDate, today)
		stats.CurrentStreak = newStreak
		stats.LastCompletedDate = today
		result.StreakAdvanced = advanced
	}
	result.CurrentStreak = stats.CurrentStreak

	stats.UpdatedAt = time.Now()
	if err := tx.UpdateStats(ctx, stats); err != nil {
		return nil, fmt.Errorf("update stats: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit reward grant: %w", err)
	}

	s.publishGrantEvents(ctx, userID, result)
	return result, nil
}

// publishGrantEvents fans out after the transaction commits. Publish
// failures are logged, never surfaced: the rewards are already durable.
func (s *service) publishGrantEvents(ctx context.Context, userID string, result *domain.RewardResult) {
	log := logger.FromContext(ctx)

	if err := s.bus.Publish(ctx, event.NewRewardGrantedEvent(userID, *result)); err != nil {
		log.Warn("failed to publish reward granted event", "user_id", userID, "error", err)
	}
	if result.LeveledUp {
		if err := s.bus.Publish(ctx, event.NewLevelUpEvent(userID, result.OldLevel, result.NewLevel, result.NewRank)); err != nil {
			log.Warn("failed to publish level up event", "user_id", userID, "error", err)
		}
	}
	if result.StreakAdvanced {
		if err := s.bus.Publish(ctx, event.NewStreakEvent(domain.EventTypeStreakAdvanced, userID, result.CurrentStreak)); err != nil {
			log.Warn("failed to publish streak advanced event", "user_id", userID, "error", err)
		}
	}
}

func (s *service) SpendAttributePoint(ctx context.Context, userID string, attr domain.Attribute) (*domain.UserStats, error) {
	if !domain.ValidAttribute(attr) {
		return nil, fmt.Errorf("%w: unknown attribute %q", domain.ErrInvalidInput, attr)
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin attribute spend: %w", err)
	}
	defer repository.SafeRollback(ctx, tx)

	stats, err := tx.GetStatsForUpdate(ctx, userID)
	if err != nil {
		return nil, err
	}
	if stats.AttributePoints <= 0 {
		return nil, domain.ErrNoAttributePoints
	}

	stats.AttributePoints--
	switch attr {
	case domain.AttributeStrength:
		stats.Attributes.Strength = stats.Attributes.Level(attr) + 1
	case domain.AttributeIntellect:
		stats.Attributes.Intellect = stats.Attributes.Level(attr) + 1
	case domain.AttributeStamina:
		stats.Attributes.Stamina = stats.Attributes.Level(attr) + 1
	}

	stats.UpdatedAt = time.Now()
	if err := tx.UpdateStats(ctx, stats); err != nil {
		return nil, fmt.Errorf("update attributes: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit attribute spend: %w", err)
	}

	return stats, nil
}

func (s *service) SelectTitle(ctx context.Context, userID, title string) error {
	if title != "" {
		unlocked, err := s.achRepo.ListUnlocked(ctx, userID)
		if err != nil {
			return err
		}
		owned := false
		for _, u := range unlocked {
			if u.UnlockedTitle == title {
				owned = true
				break
			}
		}
		if !owned {
			return fmt.Errorf("%w: %s", domain.ErrTitleNotUnlocked, title)
		}
	}
	return s.repo.UpdateTitle(ctx, userID, title)
}

func (s *service) SelectTheme(ctx context.Context, userID, theme string) error {
	if theme != domain.DefaultTheme {
		owned, err := s.shopRepo.IsUnlocked(ctx, userID, theme)
		if err != nil {
			return err
		}
		if !owned {
			return fmt.Errorf("%w: theme %s", domain.ErrItemNotFound, theme)
		}
	}
	return s.repo.UpdateTheme(ctx, userID, theme)
}
