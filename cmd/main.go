package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/golang-migrate/migrate/v4"
	pgmigrate "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/oksasatya/civic-reports/config"
	"github.com/oksasatya/civic-reports/internal/container"
	"github.com/oksasatya/civic-reports/internal/infrastructure"
	pginfra "github.com/oksasatya/civic-reports/internal/infrastructure/postgres"
	"github.com/oksasatya/civic-reports/internal/router"
	"github.com/oksasatya/civic-reports/pkg/geo"
	"github.com/oksasatya/civic-reports/pkg/helpers"
)

func main() {
	_ = godotenv.Load() // load .env if present

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	logger := helpers.NewLogger(cfg.AppName, cfg.Env, cfg.LogLevel)
	gin.SetMode(cfg.GinMode)

	ctx := context.Background()

	// Redis backs the redis KV store and the rate limiter
	var rdb *redis.Client
	if cfg.KVBackend == config.BackendRedis || cfg.RateLimitEnabled {
		rdb = helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		defer func() { _ = rdb.Close() }()
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			helpers.LogError(logger, "redis ping failed", err, logrus.Fields{"addr": cfg.RedisAddr})
		}
		cancel()
	}

	var db *sql.DB
	if cfg.KVBackend == config.BackendPostgres {
		var err error
		db, err = pginfra.NewDB(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
		if err != nil {
			log.Fatalf("failed to connect to postgres: %v", err)
		}
		defer func() { _ = db.Close() }()

		if err := runMigrations(db, cfg.MigrationsDir, logger); err != nil {
			log.Fatalf("migration failed: %v", err)
		}
	}

	kv, err := infrastructure.NewKVStore(cfg.KVBackend, rdb, db)
	if err != nil {
		log.Fatalf("failed to init kv store: %v", err)
	}

	// GCS is only needed for media uploads
	if cfg.GCSBucket != "" {
		gcsClient, err := helpers.NewGCSClient(ctx, cfg.GCSCredentialsJSONPath)
		if err != nil {
			log.Fatalf("failed to init GCS client: %v", err)
		}
		defer func() { _ = gcsClient.Close() }()
		container.SetGCS(gcsClient)
	}

	if cfg.MailSendEnabled && cfg.RabbitMQURL != "" {
		pub, err := helpers.NewRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitMQEmailQueue)
		if err != nil {
			helpers.LogError(logger, "rabbitmq unavailable, welcome emails disabled", err, nil)
		} else {
			defer pub.Close()
			container.SetRabbitPub(pub)
		}
	}

	container.SetConfig(cfg)
	container.SetLogger(logger)
	container.SetDB(db)
	container.SetRedis(rdb)
	container.SetKVStore(kv)
	container.SetAnonKeys(helpers.NewAnonKeyManager(cfg.AnonKeySecret, cfg.AppName))
	container.SetGeocoder(geo.NewNominatimClient(cfg.NominatimURL, cfg.GeocodeUserAgent, cfg.GeocodeTimeout))

	r, err := router.NewEngine()
	if err != nil {
		log.Fatalf("failed to build router: %v", err)
	}

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		helpers.LogInfo(logger, "server starting", logrus.Fields{
			"port":       cfg.Port,
			"kv_backend": cfg.KVBackend,
			"base_path":  cfg.APIBasePath,
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("listen: %s\n", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.Fatalf("server forced to shutdown: %v", err)
	}
	logger.Info("server exited properly")
}

// runMigrations applies db/migrations on the already opened pool. The
// driver is not closed here since that would close db.
func runMigrations(db *sql.DB, migrationsDir string, logger *logrus.Logger) error {
	driver, err := pgmigrate.WithInstance(db, &pgmigrate.Config{})
	if err != nil {
		return err
	}
	m, err := migrate.NewWithDatabaseInstance(fmt.Sprintf("file://%s", migrationsDir), "postgres", driver)
	if err != nil {
		return err
	}
	logger.Info("running migrations...")
	err = m.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info("no migrations to run")
		return nil
	}
	return err
}
