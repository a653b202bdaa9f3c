package achievement

import (
	"context"
	"fmt"
	"time"

	"github.com/JackRiiley/life-rpg-app/internal/domain"
	"github.com/JackRiiley/life-rpg-app/internal/event"
	"github.com/JackRiiley/life-rpg-app/internal/logger"
	"github.com/JackRiiley/life-rpg-app/internal/repository"
)

// DefaultCatalogTTL bounds how long a deploy-time catalog change can go
// unseen by running evaluations.
const DefaultCatalogTTL = 5 * time.Minute

// Service evaluates the achievement catalog against user stats and grants
// unlocks. Evaluation runs after any stats change, driven by bus events.
type Service interface {
	ListAchievements(ctx context.Context) ([]domain.Achievement, error)
	ListUnlocked(ctx context.Context, userID string) ([]domain.UnlockedAchievement, error)
	// EvaluateForUser grants every catalog entry the user now qualifies for
	// but does not yet hold. It returns the newly unlocked achievements.
	EvaluateForUser(ctx context.Context, userID string) ([]domain.Achievement, error)
	// RegisterHandlers subscribes evaluation to every stats-changing event.
	RegisterHandlers(bus event.Bus)
}

type service struct {
	repo      repository.AchievementRepository
	statsRepo repository.StatsRepository
	bus       event.Bus
	cache     *catalogCache
}

// NewService creates a new achievement service
func NewService(repo repository.AchievementRepository, statsRepo repository.StatsRepository, bus event.Bus) Service {
	return &service{
		repo:      repo,
		statsRepo: statsRepo,
		bus:       bus,
		cache:     newCatalogCache(DefaultCatalogTTL),
	}
}

func (s *service) ListAchievements(ctx context.Context) ([]domain.Achievement, error) {
	if catalog, ok := s.cache.Get(); ok {
		return catalog, nil
	}
	catalog, err := s.repo.ListAchievements(ctx)
	if err != nil {
		return nil, fmt.Errorf("list achievements: %w", err)
	}
	s.cache.Set(catalog)
	return catalog, nil
}

func (s *service) ListUnlocked(ctx context.Context, userID string) ([]domain.UnlockedAchievement, error) {
	return s.repo.ListUnlocked(ctx, userID)
}

func (s *service) EvaluateForUser(ctx context.Context, userID string) ([]domain.Achievement, error) {
	stats, err := s.statsRepo.GetStats(ctx, userID)
	if err != nil {
		return nil, err
	}

	catalog, err := s.ListAchievements(ctx)
	if err != nil {
		return nil, err
	}

	held, err := s.repo.ListUnlocked(ctx, userID)
	if err != nil {
		return nil, err
	}
	heldSet := make(map[string]bool, len(held))
	for _, u := range held {
		heldSet[u.AchievementID] = true
	}

	log := logger.FromContext(ctx)
	var unlocked []domain.Achievement
	for _, ach := range catalog {
		if heldSet[ach.ID] || !ach.Qualifies(stats) {
			continue
		}

		// UnlockAchievement re-checks under lock, so a concurrent evaluation
		// of the same user grants each achievement exactly once.
		isNew, titleGranted, err := s.repo.UnlockAchievement(ctx, userID, ach)
		if err != nil {
			return unlocked, fmt.Errorf("unlock achievement %s: %w", ach.ID, err)
		}
		if !isNew {
			continue
		}

		unlocked = append(unlocked, ach)
		log.Info("achievement unlocked",
			"user_id", userID,
			"achievement_id", ach.ID,
			"title_granted", titleGranted)

		if err := s.bus.Publish(ctx, event.NewAchievementUnlockedEvent(userID, ach, titleGranted)); err != nil {
			log.Warn("failed to publish achievement unlocked event", "achievement_id", ach.ID, "error", err)
		}
	}

	return unlocked, nil
}

func (s *service) RegisterHandlers(bus event.Bus) {
	// Every stats mutation publishes a reward-granted event, so this single
	// subscription re-evaluates after each grant exactly once.
	bus.Subscribe(event.Type(domain.EventTypeRewardGranted), s.handleEvent)
}

// handleEvent re-evaluates the affected user. Errors are logged, not
// returned: a failed evaluation must never fail the publishing operation,
// and the next stats change retries naturally.
func (s *service) handleEvent(ctx context.Context, evt event.Event) error {
	userID := userIDFromPayload(evt.Payload)
	if userID == "" {
		return nil
	}
	if _, err := s.EvaluateForUser(ctx, userID); err != nil {
		logger.FromContext(ctx).Error("achievement evaluation failed",
			"user_id", userID, "event_type", evt.Type, "error", err)
	}
	return nil
}

func userIDFromPayload(payload interface{}) string {
	if p, ok := payload.(domain.RewardGrantedPayload); ok {
		return p.UserID
	}
	return ""
}
