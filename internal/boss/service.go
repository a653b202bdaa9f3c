package boss

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/JackRiiley/life-rpg-app/internal/domain"
	"github.com/JackRiiley/life-rpg-app/internal/event"
	"github.com/JackRiiley/life-rpg-app/internal/logger"
	"github.com/JackRiiley/life-rpg-app/internal/progression"
	"github.com/JackRiiley/life-rpg-app/internal/repository"
)

// Service owns boss projects and the attack execution flow.
type Service interface {
	// CreateBoss creates a boss whose HP pool scales with the owner's level
	// and the chosen difficulty. HP is fixed from then on.
	CreateBoss(ctx context.Context, ownerID, name string, difficulty domain.Difficulty) (*domain.Boss, error)
	GetBoss(ctx context.Context, userID, bossID string) (*domain.Boss, error)
	ListBosses(ctx context.Context, ownerID string) ([]domain.Boss, error)
	CreateAttack(ctx context.Context, userID string, attack NewAttack) (*domain.BossAttack, error)
	ListAttacks(ctx context.Context, userID, bossID string) ([]domain.BossAttack, error)
	// ExecuteAttack completes an attack, applies its damage and grants its
	// rewards. Defeating the boss grants the one-time defeat bonus on top.
	ExecuteAttack(ctx context.Context, userID, attackID string) (*domain.AttackResult, error)
}

// NewAttack carries the attack creation input. Zero XP or Coins are filled
// in from the damage-derived suggestion.
type NewAttack struct {
	BossID     string
	Title      string
	BaseDamage int
	Attribute  domain.Attribute
	XP         int
	Coins      int
}

type service struct {
	repo    repository.BossRepository
	rewards progression.Service
	bus     event.Bus
}

// NewService creates a new boss service
func NewService(repo repository.BossRepository, rewards progression.Service, bus event.Bus) Service {
	return &service{repo: repo, rewards: rewards, bus: bus}
}

func (s *service) CreateBoss(ctx context.Context, ownerID, name string, difficulty domain.Difficulty) (*domain.Boss, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	if !domain.ValidDifficulty(difficulty) {
		return nil, fmt.Errorf("%w: unknown difficulty %q", domain.ErrInvalidInput, difficulty)
	}

	stats, err := s.rewards.GetStats(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	totalHP := stats.Level * difficulty.HPMultiplier()
	boss := &domain.Boss{
		ID:         uuid.NewString(),
		OwnerID:    ownerID,
		Name:       name,
		TotalHP:    totalHP,
		CurrentHP:  totalHP,
		Difficulty: difficulty,
		CreatedAt:  time.Now(),
	}
	if err := s.repo.CreateBoss(ctx, boss); err != nil {
		return nil, fmt.Errorf("create boss: %w", err)
	}
	return boss, nil
}

func (s *service) GetBoss(ctx context.Context, userID, bossID string) (*domain.Boss, error) {
	return s.ownedBoss(ctx, userID, bossID)
}

func (s *service) ListBosses(ctx context.Context, ownerID string) ([]domain.Boss, error) {
	return s.repo.ListBosses(ctx, ownerID)
}

func (s *service) CreateAttack(ctx context.Context, userID string, in NewAttack) (*domain.BossAttack, error) {
	if in.Title == "" {
		return nil, fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}
	if !domain.ValidAttribute(in.Attribute) {
		return nil, fmt.Errorf("%w: unknown attribute %q", domain.ErrInvalidInput, in.Attribute)
	}
	if in.BaseDamage < 0 || in.XP < 0 || in.Coins < 0 {
		return nil, fmt.Errorf("%w: amounts must be non-negative", domain.ErrInvalidInput)
	}
	if _, err := s.ownedBoss(ctx, userID, in.BossID); err != nil {
		return nil, err
	}

	attack := &domain.BossAttack{
		ID:         uuid.NewString(),
		BossID:     in.BossID,
		Title:      in.Title,
		BaseDamage: in.BaseDamage,
		Attribute:  in.Attribute,
		XP:         in.XP,
		Coins:      in.Coins,
		CreatedAt:  time.Now(),
	}
	if attack.XP == 0 {
		attack.XP = domain.SuggestedAttackXP(attack.Damage())
	}
	if attack.Coins == 0 {
		attack.Coins = domain.SuggestedAttackCoins(attack.Damage())
	}

	if err := s.repo.CreateAttack(ctx, attack); err != nil {
		return nil, fmt.Errorf("create attack: %w", err)
	}
	return attack, nil
}

func (s *service) ListAttacks(ctx context.Context, userID, bossID string) ([]domain.BossAttack, error) {
	if _, err := s.ownedBoss(ctx, userID, bossID); err != nil {
		return nil, err
	}
	return s.repo.ListAttacks(ctx, bossID)
}

func (s *service) ExecuteAttack(ctx context.Context, userID, attackID string) (*domain.AttackResult, error) {
	stats, err := s.rewards.GetStats(ctx, userID)
	if err != nil {
		return nil, err
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin attack: %w", err)
	}
	defer repository.SafeRollback(ctx, tx)

	// Locking the attack first, then its boss, keeps the lock order fixed
	// for every concurrent attack on the same boss.
	attack, err := tx.GetAttackForUpdate(ctx, attackID)
	if err != nil {
		return nil, err
	}
	if attack.IsComplete {
		return nil, fmt.Errorf("%w: attack %s", domain.ErrAlreadyComplete, attackID)
	}

	boss, err := tx.GetBossForUpdate(ctx, attack.BossID)
	if err != nil {
		return nil, err
	}
	if boss.OwnerID != userID {
		return nil, fmt.Errorf("%w: %s", domain.ErrAttackNotFound, attackID)
	}
	if boss.IsComplete {
		return nil, fmt.Errorf("%w: boss %s", domain.ErrAlreadyComplete, boss.ID)
	}

	base := attack.Damage()
	bonus := stats.Attributes.Level(attack.Attribute) * domain.BonusDamagePerAttributeLevel
	total := base + bonus

	newHP := boss.CurrentHP - total
	if newHP < 0 {
		newHP = 0
	}
	defeated := newHP == 0

	if err := tx.MarkAttackComplete(ctx, attackID); err != nil {
		return nil, err
	}
	if err := tx.UpdateBossHP(ctx, boss.ID, newHP, defeated); err != nil {
		return nil, fmt.Errorf("update boss hp: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit attack: %w", err)
	}

	result := &domain.AttackResult{
		BaseDamage:   base,
		BonusDamage:  bonus,
		TotalDamage:  total,
		BossHP:       newHP,
		BossDefeated: defeated,
	}

	// Rewards are granted after the damage commits. The attack can no longer
	// be re-executed, so each reward is granted at most once.
	reward, err := s.rewards.GrantRewards(ctx, userID, progression.GrantRequest{
		XP:          attack.RewardXP(),
		Coins:       attack.RewardCoins(),
		Progress:    map[string]int{domain.StatTasksCompleted: 1},
		TouchStreak: true,
	})
	if err != nil {
		return nil, fmt.Errorf("grant attack rewards: %w", err)
	}
	result.Reward = reward

	log := logger.FromContext(ctx)
	if defeated {
		bonusReward, err := s.rewards.GrantRewards(ctx, userID, progression.GrantRequest{
			XP:    domain.BossDefeatBonusXP,
			Coins: domain.BossDefeatBonusCoins,
		})
		if err != nil {
			return nil, fmt.Errorf("grant defeat bonus: %w", err)
		}
		result.DefeatBonus = bonusReward

		log.Info("boss defeated", "user_id", userID, "boss_id", boss.ID, "boss_name", boss.Name)
		if err := s.bus.Publish(ctx, event.NewBossDefeatedEvent(userID, boss.ID, boss.Name)); err != nil {
			log.Warn("failed to publish boss defeated event", "boss_id", boss.ID, "error", err)
		}
	} else {
		if err := s.bus.Publish(ctx, event.NewBossDamagedEvent(userID, boss.ID, attackID, total, newHP)); err != nil {
			log.Warn("failed to publish boss damaged event", "boss_id", boss.ID, "error", err)
		}
	}

	return result, nil
}

func (s *service) ownedBoss(ctx context.Context, userID, bossID string) (*domain.Boss, error) {
	boss, err := s.repo.GetBoss(ctx, bossID)
	if err != nil {
		return nil, err
	}
	if boss.OwnerID != userID {
		return nil, fmt.Errorf("%w: %s", domain.ErrBossNotFound, bossID)
	}
	return boss, nil
}
