package worker

import (
	"context"
	"sync"
	"time"

	"github.com/JackRiiley/life-rpg-app/internal/dailyquest"
	"github.com/JackRiiley/life-rpg-app/internal/logger"
	"github.com/JackRiiley/life-rpg-app/internal/repository"
)

// DailyResetWorker sweeps every known user just after local midnight so
// dailies reopen and quests re-roll even for users who never log in that
// day. The per-user rollover is idempotent, so sweeping a user who already
// rolled over on their own is harmless.
type DailyResetWorker struct {
	quests    dailyquest.Service
	statsRepo repository.StatsRepository
	loc       *time.Location
	timer     *time.Timer
	shutdown  chan struct{}
	wg        sync.WaitGroup
	mu        sync.Mutex
}

// NewDailyResetWorker creates a new DailyResetWorker
func NewDailyResetWorker(quests dailyquest.Service, statsRepo repository.StatsRepository, loc *time.Location) *DailyResetWorker {
	return &DailyResetWorker{
		quests:    quests,
		statsRepo: statsRepo,
		loc:       loc,
		shutdown:  make(chan struct{}),
	}
}

// Start initializes the worker and schedules the first sweep
func (w *DailyResetWorker) Start() {
	w.scheduleNext()
}

// timeUntilNextReset returns the duration until the next local midnight
func (w *DailyResetWorker) timeUntilNextReset() time.Duration {
	now := time.Now().In(w.loc)
	next := time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, w.loc)
	return next.Sub(now)
}

// scheduleNext calculates the time until the next local midnight and
// schedules the sweep
func (w *DailyResetWorker) scheduleNext() {
	duration := w.timeUntilNextReset()
	log := logger.FromContext(context.Background())

	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}

	// Two-stage scheduling to prevent tight-loop rescheduling caused by
	// early timer triggers
	if duration > 1*time.Hour {
		// Stage 1: long-range standby. Wake up 45 minutes before the reset.
		waitDuration := duration - 45*time.Minute
		w.timer = time.AfterFunc(waitDuration, func() {
			w.scheduleNext()
		})
		w.mu.Unlock()

		log.Info(LogMsgDailyResetStandby, "next_check_at", time.Now().In(w.loc).Add(waitDuration))
		return
	}

	// Stage 2: final approach. Schedule the actual sweep.
	w.timer = time.AfterFunc(duration, func() {
		select {
		case <-w.shutdown:
			return
		default:
		}

		// Jitter protection: if the timer fired early, reschedule for the
		// remaining time. A remainder above 23h means we are on time or
		// slightly late.
		rem := w.timeUntilNextReset()
		if rem > 10*time.Second && rem < 23*time.Hour {
			w.scheduleNext()
			return
		}

		w.executeSweep()
		w.scheduleNext()
	})
	w.mu.Unlock()

	log.Info(LogMsgDailyResetApproach, "next_reset_at", time.Now().In(w.loc).Add(duration))
}

// executeSweep performs the sweep in a tracked goroutine
func (w *DailyResetWorker) executeSweep() {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		w.SweepAll(context.Background())
	}()
}

// SweepAll rolls over every known user. A failure for one user does not
// stop the sweep.
func (w *DailyResetWorker) SweepAll(ctx context.Context) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgDailyResetStarting)

	userIDs, err := w.statsRepo.ListUserIDs(ctx)
	if err != nil {
		log.Error(LogMsgDailyResetFailed, "error", err)
		return
	}

	resets := 0
	for _, userID := range userIDs {
		result, err := w.quests.EnsureDailyState(ctx, userID)
		if err != nil {
			log.Error(LogMsgUserResetFailed, "error", err, "user_id", userID)
			continue
		}
		if result.DidReset {
			resets++
		}
	}

	log.Info(LogMsgDailyResetCompleted, "users_swept", len(userIDs), "resets", resets)
}

// Shutdown gracefully shuts down the worker. It cancels the pending timer
// and waits for an in-flight sweep to complete.
func (w *DailyResetWorker) Shutdown(ctx context.Context) error {
	log := logger.FromContext(ctx)
	log.Info("Shutting down daily reset worker")

	select {
	case <-w.shutdown:
	default:
		close(w.shutdown)
	}

	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Info("Daily reset worker shutdown complete")
		return nil
	case <-ctx.Done():
		log.Warn("Daily reset worker shutdown timeout")
		return ctx.Err()
	}
}
