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
	"go.uber.org/zap"

	"github.com/Rafath-b/Customer-Care-Copilot/internal/config"
	"github.com/Rafath-b/Customer-Care-Copilot/internal/index"
	"github.com/Rafath-b/Customer-Care-Copilot/internal/knowledge"
	logpkg "github.com/Rafath-b/Customer-Care-Copilot/internal/logger"
	"github.com/Rafath-b/Customer-Care-Copilot/internal/metrics"
	chiTransport "github.com/Rafath-b/Customer-Care-Copilot/internal/transport/chi"
	"github.com/Rafath-b/Customer-Care-Copilot/internal/transport/genai"
	chatuc "github.com/Rafath-b/Customer-Care-Copilot/internal/usecase/chat"
	healthuc "github.com/Rafath-b/Customer-Care-Copilot/internal/usecase/health"
	responduc "github.com/Rafath-b/Customer-Care-Copilot/internal/usecase/respond"
	routeuc "github.com/Rafath-b/Customer-Care-Copilot/internal/usecase/route"
	"github.com/Rafath-b/Customer-Care-Copilot/internal/version"
)

func main() {
	// Load configuration based on ENV
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

	logger.Info("Starting copilot API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("model", cfg.GenAI.Model),
	)

	// Register metrics explicitly (no init())
	metrics.RegisterHTTPMetrics()
	metrics.RegisterPipelineMetrics()

	// Build the similarity index once; it is read-only afterwards.
	idx := index.Build(knowledge.All())
	logger.Info("Knowledge index built",
		zap.Int("snippets", idx.Len()),
		zap.Int("vocabulary", idx.Vocabulary().Size()),
	)

	// Model client — composition root
	client := genai.NewClient(&genai.Config{
		APIKey:      cfg.GenAI.APIKey,
		BaseURL:     cfg.GenAI.BaseURL,
		Model:       cfg.GenAI.Model,
		CallTimeout: time.Duration(cfg.GenAI.CallTimeoutSec) * time.Second,
		Logger:      logger,
	})

	var model genai.ModelClient = client
	if cfg.Breaker.Enabled {
		model = genai.NewBreaker(client, genai.BreakerConfig{
			MaxHalfOpenCalls: uint32(cfg.Breaker.HalfOpenMaxCalls),
			MinRequests:      uint32(cfg.Breaker.MinRequests),
			FailureRatio:     cfg.Breaker.FailureRatio,
			OpenTimeout:      time.Duration(cfg.Breaker.OpenTimeoutSec) * time.Second,
		}, logger)
		logger.Info("Circuit breaker enabled",
			zap.Int("min_requests", cfg.Breaker.MinRequests),
			zap.Float64("failure_ratio", cfg.Breaker.FailureRatio),
		)
	}

	// Create use case services
	routeSvc := routeuc.New(model, logger)
	respondSvc := responduc.New(model)
	chatSvc := chatuc.New(routeSvc, idx, respondSvc, logger).
		WithRetrieval(cfg.Retrieval.TopK, cfg.Retrieval.Threshold)

	// Health service
	healthSvc := healthuc.New(model, idx)

	// Create chi server
	server := chiTransport.NewServer(chatSvc, healthSvc, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
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
						"error": "Failed to process your request.",
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

			// Set X-Request-ID in response header
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
				zap.Int64("content_length", r.ContentLength),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
