package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/JackRiiley/life-rpg-app/internal/achievement"
	"github.com/JackRiiley/life-rpg-app/internal/boss"
	"github.com/JackRiiley/life-rpg-app/internal/config"
	"github.com/JackRiiley/life-rpg-app/internal/dailyquest"
	"github.com/JackRiiley/life-rpg-app/internal/database"
	"github.com/JackRiiley/life-rpg-app/internal/database/postgres"
	"github.com/JackRiiley/life-rpg-app/internal/event"
	"github.com/JackRiiley/life-rpg-app/internal/eventlog"
	"github.com/JackRiiley/life-rpg-app/internal/handler"
	"github.com/JackRiiley/life-rpg-app/internal/metrics"
	"github.com/JackRiiley/life-rpg-app/internal/progression"
	"github.com/JackRiiley/life-rpg-app/internal/server"
	"github.com/JackRiiley/life-rpg-app/internal/shop"
	"github.com/JackRiiley/life-rpg-app/internal/sse"
	"github.com/JackRiiley/life-rpg-app/internal/streak"
	"github.com/JackRiiley/life-rpg-app/internal/task"
	"github.com/JackRiiley/life-rpg-app/internal/worker"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	initLogger(cfg)

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		log.Fatalf("Invalid TIMEZONE %q: %v", cfg.Timezone, err)
	}

	pool, err := database.NewPool(context.Background(), cfg.GetDBConnString(), 10, 30*time.Minute, time.Hour)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	// Repositories
	statsRepo := postgres.NewStatsRepository(pool)
	taskRepo := postgres.NewTaskRepository(pool)
	questRepo := postgres.NewQuestRepository(pool)
	bossRepo := postgres.NewBossRepository(pool)
	achievementRepo := postgres.NewAchievementRepository(pool)
	shopRepo := postgres.NewShopRepository(pool)
	eventLogRepo := postgres.NewEventLogRepository(pool)

	// Event bus and subscribers. Services publish through the resilient
	// wrapper so a flaky subscriber never fails a user operation.
	bus := event.NewMemoryBus()
	publisher := event.NewResilientPublisher(bus, event.ResilientConfig{
		MaxRetries:     event.DefaultMaxRetries,
		RetryDelay:     event.DefaultRetryDelay,
		DeadLetterPath: event.DefaultDeadLetterPath,
	})

	metricsCollector := metrics.NewEventMetricsCollector()
	metricsCollector.Register(bus)

	sseHub := sse.NewHub()
	sseHub.Start()
	defer sseHub.Stop()
	sse.NewSubscriber(sseHub, bus).Subscribe()

	// Services
	progressionSvc := progression.NewService(statsRepo, achievementRepo, shopRepo, publisher, loc)
	streakSvc := streak.NewService(statsRepo, publisher, loc)
	taskSvc := task.NewService(taskRepo, progressionSvc, publisher)
	questSvc := dailyquest.NewService(questRepo, progressionSvc, publisher, loc)
	bossSvc := boss.NewService(bossRepo, progressionSvc, publisher)
	achievementSvc := achievement.NewService(achievementRepo, statsRepo, publisher)
	achievementSvc.RegisterHandlers(bus)
	shopSvc := shop.NewService(shopRepo, publisher)

	eventLogSvc := eventlog.NewService(eventLogRepo)
	if err := eventLogSvc.Subscribe(bus); err != nil {
		log.Fatalf("Failed to register event audit log: %v", err)
	}

	cleanupJob := eventlog.NewCleanupJob(eventLogSvc, eventlog.DefaultRetentionDays)
	cleanupJob.Start()
	defer cleanupJob.Stop()

	handler.InitValidator()

	// Overnight sweep so dailies reopen for users who never log in that day
	resetWorker := worker.NewDailyResetWorker(questSvc, statsRepo, loc)
	resetWorker.Start()

	srv := server.NewServer(cfg.Port, cfg.APIKey, nil, pool, server.Services{
		Progression: progressionSvc,
		Streak:      streakSvc,
		Task:        taskSvc,
		DailyQuest:  questSvc,
		Boss:        bossSvc,
		Achievement: achievementSvc,
		Shop:        shopSvc,
		EventLog:    eventLogSvc,
	}, sseHub)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		log.Fatalf("Server failed: %v", err)
	case sig := <-stop:
		slog.Info("Shutdown signal received", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := resetWorker.Shutdown(ctx); err != nil {
		slog.Error("Daily reset worker shutdown failed", "error", err)
	}
	if err := srv.Stop(ctx); err != nil {
		slog.Error("Server shutdown failed", "error", err)
	}

	slog.Info("Shutdown complete")
}
