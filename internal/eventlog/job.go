package eventlog

import (
	"context"
	"sync"
	"time"

	"github.com/JackRiiley/life-rpg-app/internal/logger"
)

// CleanupInterval is how often the retention sweep runs.
const CleanupInterval = 24 * time.Hour

// CleanupJob periodically deletes audit rows past the retention window
type CleanupJob struct {
	service       Service
	retentionDays int

	shutdownOnce sync.Once
	shutdown     chan struct{}
	wg           sync.WaitGroup
}

// NewCleanupJob creates a new cleanup job
func NewCleanupJob(service Service, retentionDays int) *CleanupJob {
	return &CleanupJob{
		service:       service,
		retentionDays: retentionDays,
		shutdown:      make(chan struct{}),
	}
}

// Start launches the periodic sweep. The first pass runs one full
// interval after startup.
func (j *CleanupJob) Start() {
	j.wg.Add(1)
	go func() {
		defer j.wg.Done()

		ticker := time.NewTicker(CleanupInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				// Process logs its own failures; the loop keeps going.
				_ = j.Process(context.Background())
			case <-j.shutdown:
				return
			}
		}
	}()
}

// Process executes one cleanup pass
func (j *CleanupJob) Process(ctx context.Context) error {
	log := logger.FromContext(ctx)
	log.Info(LogMsgCleanupJobStarting, LogFieldRetentionDays, j.retentionDays)

	start := time.Now()
	count, err := j.service.CleanupOldEvents(ctx, j.retentionDays)
	duration := time.Since(start)

	if err != nil {
		log.Error(LogMsgCleanupJobFailed, LogFieldError, err, LogFieldDuration, duration)
		return err
	}

	log.Info(LogMsgCleanupJobCompleted, LogFieldDeletedCount, count, LogFieldDuration, duration)
	return nil
}

// Stop halts the periodic sweep and waits for an in-flight pass to
// finish. Safe to call more than once.
func (j *CleanupJob) Stop() {
	j.shutdownOnce.Do(func() {
		close(j.shutdown)
	})
	j.wg.Wait()

	logger.FromContext(context.Background()).Info(LogMsgCleanupJobStopped)
}
