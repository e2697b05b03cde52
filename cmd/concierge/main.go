package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/chippyinn/concierge/internal/config"
	"github.com/chippyinn/concierge/internal/domain"
	logpkg "github.com/chippyinn/concierge/internal/logger"
	"github.com/chippyinn/concierge/internal/metrics"
	roomsrepo "github.com/chippyinn/concierge/internal/repository/rooms"
	"github.com/chippyinn/concierge/internal/schema"
	chiTransport "github.com/chippyinn/concierge/internal/transport/chi"
	"github.com/chippyinn/concierge/internal/transport/meili"
	"github.com/chippyinn/concierge/internal/transport/openrouter"
	bootstrapuc "github.com/chippyinn/concierge/internal/usecase/bootstrap"
	chatuc "github.com/chippyinn/concierge/internal/usecase/chat"
	extractuc "github.com/chippyinn/concierge/internal/usecase/extract"
	healthuc "github.com/chippyinn/concierge/internal/usecase/health"
	searchuc "github.com/chippyinn/concierge/internal/usecase/search"
	sessionuc "github.com/chippyinn/concierge/internal/usecase/session"
	"github.com/chippyinn/concierge/internal/version"
)

func main() {
	// .env is optional; deployment config comes from the environment.
	_ = godotenv.Load()

	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting concierge API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("engine_host", cfg.Search.Host),
		zap.String("index", cfg.Search.IndexUID),
		zap.String("model", cfg.LLM.Model),
	)

	metrics.RegisterConciergeMetrics()

	// Room source set: loaded once, then the index is the point of truth.
	rooms, err := roomsrepo.New(cfg.Storage.RoomsFile).Load()
	if err != nil {
		logger.Fatal("Failed to load rooms", zap.Error(err))
	}
	catalog := domain.BuildCatalog(rooms)
	logger.Info("Rooms loaded",
		zap.Int("rooms", len(rooms)),
		zap.Strings("cities", catalog.Cities),
	)

	registry := schema.New(cfg.Schema.Filterable, cfg.Schema.Sortable)

	engineClient := meili.NewClient(&meili.Config{
		Host:         cfg.Search.Host,
		APIKey:       cfg.Search.APIKey,
		Timeout:      time.Duration(cfg.Search.TimeoutSec) * time.Second,
		PollInterval: time.Duration(cfg.Search.PollIntervalMS) * time.Millisecond,
	})
	index := meili.NewRoomIndex(engineClient, cfg.Search.IndexUID,
		time.Duration(cfg.Search.TaskTimeoutSec)*time.Second)

	// Bootstrap is fatal on failure: no useful degraded mode without an index.
	bootCtx := logpkg.ContextWithLogger(context.Background(), logger)
	booter := bootstrapuc.New(index, rooms, registry,
		time.Duration(cfg.Search.ReadinessTimeoutSec)*time.Second)
	if err := booter.Run(bootCtx); err != nil {
		logger.Fatal("Index bootstrap failed", zap.Error(err))
	}

	completer := openrouter.NewCompleter(&openrouter.Config{
		APIKey:      cfg.LLM.APIKey,
		BaseURL:     cfg.LLM.BaseURL,
		Model:       cfg.LLM.Model,
		Temperature: float32(cfg.LLM.Temperature),
		Timeout:     time.Duration(cfg.LLM.TimeoutSec) * time.Second,
		Logger:      logger,
	})

	extractSvc := extractuc.New(completer, catalog)
	searchSvc := searchuc.New(index, registry)

	sessions := sessionuc.NewStore(time.Duration(cfg.Sessions.TTLMin) * time.Minute)
	sweepDone := make(chan struct{})
	go sweepSessions(sessions, time.Duration(cfg.Sessions.SweepIntervalSec)*time.Second, sweepDone, logger)

	chatSvc := chatuc.New(sessions, extractSvc, searchSvc)
	healthSvc := healthuc.New(engineClient, completer)

	server := chiTransport.NewServer(chatSvc, healthSvc, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(metrics.Middleware())
	server.Routes(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")
	close(sweepDone)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// sweepSessions periodically evicts expired conversation sessions.
func sweepSessions(store *sessionuc.Store, interval time.Duration, done <-chan struct{}, logger *zap.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if n := store.Sweep(); n > 0 {
				logger.Debug("sessions evicted", zap.Int("count", n), zap.Int("live", store.Len()))
			}
		}
	}
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]string{
						"code":    "internal_error",
						"message": "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())

			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			// Per-request logger with request_id
			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line — one line per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
