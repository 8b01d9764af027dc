package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"mercury/internal/edi/builder"
	"mercury/internal/edi/handler"
	"mercury/internal/edi/metrics"
	"mercury/internal/edi/service"
	"mercury/internal/edi/store"
	"mercury/internal/edi/structure"
	"mercury/internal/extraction"
	"mercury/internal/platform/config"
	"mercury/internal/platform/httpserver"
	"mercury/internal/platform/logger"
	"mercury/internal/platform/middleware"
	"mercury/internal/platform/postgres"
	"mercury/internal/platform/redis"
)

// main wires dependencies and keeps the server lifecycle small. Business
// logic lives in the internal packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()
	ctx := context.Background()

	var (
		source    structure.Source
		documents store.Documents
		admin     *handler.Admin
	)
	if cfg.DatabaseURL != "" {
		db, err := postgres.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Error("database connection failed", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		source = structure.NewPostgres(db)
		documents = store.NewPostgres(db)
	} else {
		// No database configured: run on in-memory stores with the stock
		// definitions, writable through the admin seed endpoints.
		memSource := structure.NewInMemory()
		structure.Seed(memSource, cfg.DefaultAgency, cfg.DefaultVersion)
		memDocs := store.NewInMemory()
		source = memSource
		documents = memDocs
		admin = handler.NewAdmin(memDocs, memSource, log, cfg.DefaultAgency, cfg.DefaultVersion)
		log.Warn("DATABASE_URL not set, using in-memory stores")
	}

	var cache structure.Cache
	rdb, err := redis.New(cfg.Redis)
	if err != nil {
		log.Error("redis connection failed", "error", err)
		os.Exit(1)
	}
	if rdb != nil {
		defer rdb.Close()
		cache = structure.NewRedisCache(rdb, cfg.Redis.TTL)
	}

	if cfg.Gemini.APIKey == "" {
		log.Error("GEMINI_API_KEY is required")
		os.Exit(1)
	}
	extractor, err := extraction.NewGemini(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model, log)
	if err != nil {
		log.Error("extractor initialization failed", "error", err)
		os.Exit(1)
	}

	resolver := structure.NewResolver(source, cache)
	m := metrics.New()

	svc, err := service.New(service.Config{
		Documents:      documents,
		Extractor:      extractor,
		Builder:        builder.New(resolver, builder.DefaultPolicy()),
		Resolver:       resolver,
		Metrics:        m,
		Logger:         log,
		DefaultAgency:  cfg.DefaultAgency,
		DefaultVersion: cfg.DefaultVersion,
		ExtractTimeout: cfg.ExtractTimeout,
	})
	if err != nil {
		log.Error("service initialization failed", "error", err)
		os.Exit(1)
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	router.Method(http.MethodGet, "/metrics", promhttp.Handler())
	handler.New(svc, log).Register(router)
	if admin != nil {
		router.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdminToken(cfg.AdminToken, log))
			admin.Register(r)
		})
	}

	srv := httpserver.New(cfg.Addr, router)

	log.Info("starting mercury", "addr", cfg.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
	log.Info("mercury stopped")
}
