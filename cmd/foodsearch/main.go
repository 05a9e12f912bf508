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

	"github.com/forkful/foodsearch/internal/backend/weaviate"
	"github.com/forkful/foodsearch/internal/config"
	dbRedis "github.com/forkful/foodsearch/internal/db/redis"
	"github.com/forkful/foodsearch/internal/imaging"
	logpkg "github.com/forkful/foodsearch/internal/logger"
	"github.com/forkful/foodsearch/internal/metrics"
	"github.com/forkful/foodsearch/internal/repository/cache"
	chiTransport "github.com/forkful/foodsearch/internal/transport/chi"
	healthuc "github.com/forkful/foodsearch/internal/usecase/health"
	searchuc "github.com/forkful/foodsearch/internal/usecase/search"
	"github.com/forkful/foodsearch/internal/version"
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

	logger.Info("Starting foodsearch gateway",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("backend_host", cfg.Backend.Host),
		zap.String("collection", cfg.Backend.Collection),
	)

	metrics.RegisterSearchMetrics()

	// The backend connection is lazy: it is created and verified on the
	// first search, not at startup, and reused for the process lifetime.
	conn := weaviate.NewConn(weaviate.Config{
		Host:         cfg.Backend.Host,
		Port:         cfg.Backend.Port,
		GRPCPort:     cfg.Backend.GRPCPort,
		Scheme:       cfg.Backend.Scheme,
		CohereAPIKey: cfg.Embedding.CohereAPIKey,
	}, logger)

	var backend searchuc.Backend = weaviate.NewRepo(conn, cfg.Backend.Collection, logger)

	// Optional result cache — wraps the backend only when configured.
	var cachePinger healthuc.CachePinger
	if cfg.Cache.Enabled() {
		store, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Cache.Addrs,
			Password: cfg.Cache.Password,
		})
		if err != nil {
			logger.Fatal("Failed to create cache store", zap.Error(err))
		}
		defer store.Close()

		if err := store.WaitForReady(context.Background(), 10*time.Second); err != nil {
			logger.Fatal("Cache store not ready", zap.Error(err))
		}
		logger.Info("Result cache enabled", zap.Strings("addrs", cfg.Cache.Addrs))

		backend = cache.New(
			backend, store, cfg.Cache.KeyPrefix,
			time.Duration(cfg.Cache.TTLSec)*time.Second,
			metrics.ResultCacheTotal, logger,
		)
		cachePinger = store
	}

	codec := imaging.New(imaging.Config{
		TargetWidth:   cfg.Image.TargetWidth,
		TargetHeight:  cfg.Image.TargetHeight,
		JPEGQuality:   cfg.Image.JPEGQuality,
		OversizeLimit: cfg.Image.OversizePx,
	})

	searchSvc := searchuc.New(backend, logger)
	healthSvc := healthuc.New(conn, cachePinger)

	server := chiTransport.NewServer(searchSvc, healthSvc, codec, chiTransport.Options{
		TopResults:     cfg.Search.TopResults,
		RowSize:        cfg.Search.RowSize,
		DefaultLimit:   cfg.Search.DefaultLimit,
		MaxLimit:       cfg.Search.MaxLimit,
		MaxUploadBytes: cfg.Image.MaxUploadBytes,
	})

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
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
