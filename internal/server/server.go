package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/JackRiiley/life-rpg-app/internal/achievement"
	"github.com/JackRiiley/life-rpg-app/internal/boss"
	"github.com/JackRiiley/life-rpg-app/internal/dailyquest"
	"github.com/JackRiiley/life-rpg-app/internal/database"
	"github.com/JackRiiley/life-rpg-app/internal/eventlog"
	"github.com/JackRiiley/life-rpg-app/internal/handler"
	"github.com/JackRiiley/life-rpg-app/internal/logger"
	"github.com/JackRiiley/life-rpg-app/internal/metrics"
	"github.com/JackRiiley/life-rpg-app/internal/progression"
	"github.com/JackRiiley/life-rpg-app/internal/shop"
	"github.com/JackRiiley/life-rpg-app/internal/sse"
	"github.com/JackRiiley/life-rpg-app/internal/streak"
	"github.com/JackRiiley/life-rpg-app/internal/task"
)

// Services bundles everything the router needs
type Services struct {
	Progression progression.Service
	Streak      streak.Service
	Task        task.Service
	DailyQuest  dailyquest.Service
	Boss        boss.Service
	Achievement achievement.Service
	Shop        shop.Service
	EventLog    eventlog.Service
}

type Server struct {
	httpServer *http.Server
	dbPool     database.Pool
	services   Services
}

// NewServer creates a new Server instance
func NewServer(port int, apiKey string, trustedProxies []string, dbPool database.Pool, services Services, sseHub *sse.Hub) *Server {
	r := chi.NewRouter()

	// Middleware stack
	// Chi middleware executes in order defined (outermost to innermost)
	detector := NewSuspiciousActivityDetector()

	r.Use(SecurityHeadersMiddleware())
	r.Use(AuthMiddleware(apiKey, trustedProxies, detector))
	r.Use(SecurityLoggingMiddleware(trustedProxies, detector))
	r.Use(RequestSizeLimitMiddleware(1 << 20)) // 1MB limit
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(dbPool))

	// Metrics endpoint (public, for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Stats and progression routes
		r.Route("/stats", func(r chi.Router) {
			r.Get("/", handler.HandleGetStats(services.Progression))
			r.Post("/register", handler.HandleRegisterStats(services.Progression))
			r.Post("/attribute", handler.HandleSpendAttribute(services.Progression))
			r.Post("/title", handler.HandleSelectTitle(services.Progression))
			r.Post("/theme", handler.HandleSelectTheme(services.Progression))
			r.Get("/streak", handler.HandleGetStreak(services.Streak))
		})

		// Task routes
		r.Route("/tasks", func(r chi.Router) {
			r.Get("/", handler.HandleListTasks(services.Task))
			r.Post("/", handler.HandleCreateTask(services.Task))
			r.Post("/complete", handler.HandleCompleteTask(services.Task))
			r.Post("/uncomplete", handler.HandleUncompleteTask(services.Task))
			r.Post("/delete", handler.HandleDeleteTask(services.Task))
		})

		// Daily quest routes
		r.Route("/quests", func(r chi.Router) {
			r.Get("/", handler.HandleListQuests(services.DailyQuest))
			r.Post("/reset", handler.HandleDailyReset(services.DailyQuest))
			r.Post("/complete", handler.HandleCompleteQuest(services.DailyQuest))
		})

		// Boss routes
		r.Route("/bosses", func(r chi.Router) {
			r.Get("/", handler.HandleListBosses(services.Boss))
			r.Post("/", handler.HandleCreateBoss(services.Boss))
			r.Get("/get", handler.HandleGetBoss(services.Boss))
			r.Route("/attacks", func(r chi.Router) {
				r.Get("/", handler.HandleListAttacks(services.Boss))
				r.Post("/", handler.HandleCreateAttack(services.Boss))
				r.Post("/execute", handler.HandleExecuteAttack(services.Boss))
			})
		})

		// Achievement routes
		r.Route("/achievements", func(r chi.Router) {
			r.Get("/", handler.HandleListAchievements(services.Achievement))
			r.Get("/unlocked", handler.HandleListUnlockedAchievements(services.Achievement))
		})

		// Shop routes
		r.Route("/shop", func(r chi.Router) {
			r.Get("/", handler.HandleListShopItems(services.Shop))
			r.Get("/unlocked", handler.HandleListUnlockedItems(services.Shop))
			r.Post("/purchase", handler.HandlePurchase(services.Shop))
		})

		// Live event stream and audit history
		r.Get("/events", sse.Handler(sseHub))
		r.Get("/events/history", handler.HandleEventHistory(services.EventLog))
	})

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
		},
		dbPool:   dbPool,
		services: services,
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK, // default status
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

// Flush passes streaming support through to the underlying writer so the
// event stream endpoint keeps working behind the logging wrapper.
func (rw *responseWriter) Flush() {
	if f, ok := rw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Skip logging for health check endpoints and metrics
		// Use HasPrefix to catch potential variations (e.g. /healthz/)
		if strings.HasPrefix(r.URL.Path, "/healthz") ||
			strings.HasPrefix(r.URL.Path, "/readyz") ||
			strings.HasPrefix(r.URL.Path, "/metrics") {
			next.ServeHTTP(w, r)
			return
		}

		requestID := logger.GenerateRequestID()
		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)

		log := logger.FromContext(ctx)

		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		// Sanitize headers for logging
		sanitizedHeaders := make(http.Header)
		for k, v := range r.Header {
			if strings.EqualFold(k, HeaderAPIKey) || strings.EqualFold(k, HeaderAuthorization) {
				sanitizedHeaders[k] = []string{RedactedValue}
			} else {
				sanitizedHeaders[k] = v
			}
		}
		log.Debug(LogMsgRequestHeaders, "headers", sanitizedHeaders)

		rw := newResponseWriter(w)

		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds(),
			"duration", duration)
	})
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
