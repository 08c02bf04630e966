package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	_ "github.com/comitanigiacomo/kanso-tracker/docs"
	"github.com/comitanigiacomo/kanso-tracker/internal/adapters/cache"
	adapterHTTP "github.com/comitanigiacomo/kanso-tracker/internal/adapters/handler/http"
	"github.com/comitanigiacomo/kanso-tracker/internal/adapters/repository"
	"github.com/comitanigiacomo/kanso-tracker/internal/config"
	"github.com/comitanigiacomo/kanso-tracker/internal/core/domain"
	"github.com/comitanigiacomo/kanso-tracker/internal/core/services"
)

type repositories struct {
	users       domain.UserRepository
	habits      domain.HabitRepository
	completions domain.CompletionRepository
	settings    domain.SettingsRepository
}

// @title                      Kanso Tracker API
// @version                    1.0
// @description                Daily habit tracking with per-day scores and day, week and month completion charts.
// @BasePath                   /api/v1
// @securityDefinitions.apikey BearerAuth
// @in                         header
// @name                       Authorization
func main() {
	startTime := time.Now()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Critical: invalid configuration: %v", err)
	}

	ctx := context.Background()

	var db *sqlx.DB
	if cfg.Storage == config.StoragePostgres {
		db, err = openDatabase(ctx, cfg)
		if err != nil {
			log.Fatalf("Critical: %v", err)
		}
		defer db.Close()
	}

	var rdb *redis.Client
	if cfg.RedisEnabled() {
		rdb, err = cache.NewRedisClient(ctx, cfg)
		if err != nil {
			log.Printf("Warning: %v. Continuing without cache and rate limiting.", err)
			rdb = nil
		} else {
			defer rdb.Close()
			log.Println("Redis connected successfully.")
		}
	}

	repos := buildRepositories(db, rdb)

	router := buildRouter(cfg, repos, db, rdb, startTime)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("Kanso Tracker running on http://localhost:%s (storage: %s)", cfg.Port, cfg.Storage)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Critical server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Stop signal received. Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Forced shutdown error:", err)
	}

	log.Println("Server stopped gracefully.")
}

func openDatabase(ctx context.Context, cfg *config.Config) (*sqlx.DB, error) {
	log.Println("Connecting to database...")

	db, err := sqlx.Connect("pgx", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	schemaCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := repository.EnsureSchema(schemaCtx, db); err != nil {
		db.Close()
		return nil, err
	}

	log.Println("Database connected successfully.")
	return db, nil
}

func buildRouter(cfg *config.Config, repos repositories, db *sqlx.DB, rdb *redis.Client, startTime time.Time) *gin.Engine {
	tokenService := services.NewTokenService(cfg.JWTSecret, cfg.JWTIssuer, cfg.TokenTTL, repos.users)
	settingsService := services.NewSettingsService(repos.settings)

	return adapterHTTP.NewRouter(adapterHTTP.RouterDependencies{
		AuthHandler:       adapterHTTP.NewAuthHandler(services.NewAuthService(repos.users, tokenService)),
		HabitHandler:      adapterHTTP.NewHabitHandler(services.NewHabitService(repos.habits)),
		CompletionHandler: adapterHTTP.NewCompletionHandler(services.NewCompletionService(repos.completions, repos.habits)),
		StatsHandler:      adapterHTTP.NewStatsHandler(services.NewStatsService(repos.habits, repos.completions, settingsService)),
		SettingsHandler:   adapterHTTP.NewSettingsHandler(settingsService),
		TokenService:      tokenService,
		DB:                db,
		Redis:             rdb,
		RateLimit:         cfg.RateLimit,
		RateWindow:        cfg.RateWindow,
		CORSOrigin:        cfg.CORSOrigin,
		StartTime:         startTime,
	})
}

// buildRepositories picks Postgres when db is set and the in-memory stores otherwise.
// The habit list is cached in Redis when a client is available.
func buildRepositories(db *sqlx.DB, rdb *redis.Client) repositories {
	var repos repositories

	if db != nil {
		repos = repositories{
			users:       repository.NewPostgresUserRepository(db),
			habits:      repository.NewPostgresHabitRepository(db),
			completions: repository.NewPostgresCompletionRepository(db),
			settings:    repository.NewPostgresSettingsRepository(db),
		}
	} else {
		log.Println("Using in-memory storage: data is lost on restart.")
		repos = repositories{
			users:       repository.NewInMemoryUserRepository(),
			habits:      repository.NewInMemoryHabitRepository(),
			completions: repository.NewInMemoryCompletionRepository(),
			settings:    repository.NewInMemorySettingsRepository(),
		}
	}

	if rdb != nil {
		repos.habits = repository.NewCachedHabitRepository(repos.habits, rdb)
	}
	return repos
}
