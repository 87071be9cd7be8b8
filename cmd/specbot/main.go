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

	"specbot/internal/config"
	dbRedis "specbot/internal/db/redis"
	"specbot/internal/domain"
	"specbot/internal/keyword"
	logpkg "specbot/internal/logger"
	"specbot/internal/metrics"
	budgetrepo "specbot/internal/repository/budget"
	"specbot/internal/repository/searchcache"
	chiTransport "specbot/internal/transport/chi"
	"specbot/internal/transport/confluence"
	openaiSum "specbot/internal/transport/openai"
	askuc "specbot/internal/usecase/ask"
	healthuc "specbot/internal/usecase/health"
	searchuc "specbot/internal/usecase/search"
	usageuc "specbot/internal/usecase/usage"
	"specbot/internal/version"
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

	logger.Info("Starting specbot API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("confluence", cfg.Confluence.BaseURL),
		zap.String("space", cfg.Confluence.Space),
	)

	// Register search and summarizer metrics explicitly (no init())
	metrics.RegisterSearchMetrics()
	metrics.RegisterSummaryMetrics()

	ctx := context.Background()

	// Optional Redis/Valkey store for the result cache and budget counters
	var store *dbRedis.Store
	if cfg.Cache.Enabled {
		store, err = dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Cache.Addrs,
			Password: cfg.Cache.Password,
		})
		if err != nil {
			logger.Fatal("Failed to create cache store", zap.Error(err))
		}
		defer store.Close()

		readiness := time.Duration(cfg.Cache.ReadinessTimeout) * time.Second
		if err := store.WaitForReady(ctx, readiness); err != nil {
			logger.Fatal("Cache store not ready", zap.Error(err))
		}
		logger.Info("Connected to cache store", zap.Strings("addrs", cfg.Cache.Addrs))
	}

	// Confluence client, optionally behind the result cache
	confluenceClient := confluence.NewClient(&confluence.Config{
		BaseURL:  cfg.Confluence.BaseURL,
		Email:    cfg.Confluence.Email,
		APIToken: cfg.Confluence.APIToken,
		Timeout:  time.Duration(cfg.Confluence.TimeoutSec) * time.Second,
		Logger:   logger,
	})

	var searcher searchuc.Searcher = confluenceClient
	if store != nil {
		searcher = searchcache.New(
			confluenceClient, store, cfg.Cache.KeyPrefix,
			time.Duration(cfg.Cache.TTLMin)*time.Minute,
			metrics.SearchCacheTotal, logger,
		)
	}

	// Search pipeline
	vocab := buildVocabulary(cfg.Search)
	searchSvc := searchuc.New(searcher, vocab, cfg.Confluence.Space, logger)

	// Summarizer
	sumCfg := domain.DefaultSummaryConfig()
	if cfg.LLM.Model != "" {
		sumCfg.Model = cfg.LLM.Model
	}
	if cfg.LLM.Temperature > 0 {
		sumCfg.Temperature = cfg.LLM.Temperature
	}
	if cfg.LLM.MaxAnswerTokens > 0 {
		sumCfg.MaxAnswerTokens = cfg.LLM.MaxAnswerTokens
	}

	summarizer := openaiSum.NewSummarizer(&openaiSum.Config{
		APIKey:      cfg.LLM.APIKey,
		BaseURL:     cfg.LLM.BaseURL,
		Model:       sumCfg.Model,
		Temperature: sumCfg.Temperature,
		MaxTokens:   sumCfg.MaxAnswerTokens,
		Provider:    "openai",
		Logger:      logger,
	})

	// Single BudgetTracker shared between the ask flow and the usage service.
	var budget *askuc.BudgetTracker
	budgetCfg := cfg.LLM.Budget
	if budgetCfg.DailyTokenLimit > 0 || budgetCfg.MonthlyTokenLimit > 0 {
		action := askuc.BudgetActionWarn
		if budgetCfg.Action == "reject" {
			action = askuc.BudgetActionReject
		}
		budget = askuc.NewBudgetTracker(
			"openai", cfg.Cache.KeyPrefix,
			budgetCfg.DailyTokenLimit, budgetCfg.MonthlyTokenLimit, action, logger,
		)
		// Connect persistence — loads current counters from the store.
		if store != nil {
			budget.WithStore(ctx, budgetrepo.New(store, 48*time.Hour, 62*24*time.Hour))
		}
	}

	// Pass nil interface (not typed nil pointer!) if budget is not configured.
	// Go gotcha: (*BudgetTracker)(nil) wrapped in BudgetChecker != nil.
	var budgetChecker askuc.BudgetChecker
	var budgetReader usageuc.BudgetReader
	if budget != nil {
		budgetChecker = budget
		budgetReader = budget
	}

	askSvc := askuc.New(searchSvc, summarizer, budgetChecker, sumCfg, logger)
	usageSvc := usageuc.New(budgetReader, sumCfg.Model, budgetCfg.CostPerMillionTokens)

	// Health service — cache check only when the store is configured
	var cachePinger healthuc.CachePinger
	if store != nil {
		cachePinger = store
	}
	healthSvc := healthuc.New(confluenceClient, summarizer, cachePinger)

	// HTTP server
	server := chiTransport.NewServer(searchSvc, askSvc, usageSvc, healthSvc, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.Register(r)

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

// buildVocabulary returns the built-in vocabulary unless the config overrides
// any word list, in which case the overrides replace it entirely.
func buildVocabulary(cfg config.SearchConfig) keyword.Vocabulary {
	if len(cfg.StopWords) == 0 && len(cfg.CompoundSuffixes) == 0 && len(cfg.Synonyms) == 0 {
		return keyword.Default()
	}
	return keyword.NewVocabulary(cfg.StopWords, cfg.CompoundSuffixes, cfg.Synonyms)
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
