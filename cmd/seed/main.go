package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/civic-reports/config"
	"github.com/oksasatya/civic-reports/internal/application"
	"github.com/oksasatya/civic-reports/internal/infrastructure"
	"github.com/oksasatya/civic-reports/internal/infrastructure/kvrepo"
	pginfra "github.com/oksasatya/civic-reports/internal/infrastructure/postgres"
	"github.com/oksasatya/civic-reports/pkg/helpers"
	mailtpl "github.com/oksasatya/civic-reports/pkg/mailer/templates"
)

var demoReports = []application.CreateReportInput{
	{
		Title:       "Pothole on Main Street",
		Description: "Large pothole in the right lane near the library.",
		Category:    "roadways",
		Location:    "Main St & 3rd Ave",
		ReportedBy:  "demoUser",
	},
	{
		Title:       "Streetlight out",
		Description: "The streetlight has been dark for a week.",
		Category:    "utility",
		Location:    "Oak Park entrance",
	},
	{
		Title:       "Overflowing bins",
		Description: "Public bins have not been emptied since Monday.",
		Category:    "sanitation",
		Location:    "Riverside Walk",
		ReportedBy:  "demoUser",
	},
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env, cfg.LogLevel)
	ctx := context.Background()

	var rdb *redis.Client
	var db *sql.DB
	switch cfg.KVBackend {
	case config.BackendRedis:
		rdb = helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		defer func() { _ = rdb.Close() }()
	case config.BackendPostgres:
		var err error
		db, err = pginfra.NewDB(ctx, cfg.PostgresDSN(), 2, 1, cfg.DBMaxConnLife)
		if err != nil {
			log.Fatalf("failed to open db: %v", err)
		}
		defer func() { _ = db.Close() }()
	default:
		log.Fatalf("nothing to seed for KV_BACKEND=%s", cfg.KVBackend)
	}

	kv, err := infrastructure.NewKVStore(cfg.KVBackend, rdb, db)
	if err != nil {
		log.Fatalf("failed to init kv store: %v", err)
	}

	ids, err := application.NewIDGenerator(cfg.ReportIDStrategy)
	if err != nil {
		log.Fatalf("id strategy: %v", err)
	}
	passwords, err := application.NewPasswordPolicy(cfg.PasswordMode)
	if err != nil {
		log.Fatalf("password mode: %v", err)
	}
	brand := mailtpl.Brand{AppName: cfg.AppName, CompanyName: cfg.CompanyName, SupportURL: cfg.SupportURL}
	accounts := application.NewAccountService(kvrepo.NewAccountRepository(kv), passwords, nil, brand, logger)
	reports := application.NewReportService(kvrepo.NewReportRepository(kv), ids, cfg.PlaceholderImageURL, logger)

	email, password := "demo@civic.local", "password123"
	_, err = accounts.SignUp(ctx, application.SignUpInput{Name: "demoUser", Email: email, Password: password})
	switch {
	case errors.Is(err, application.ErrAccountExists):
		helpers.LogInfo(logger, "demo account already present", logrus.Fields{"email": email})
	case err != nil:
		log.Fatalf("failed to seed account: %v", err)
	default:
		helpers.LogInfo(logger, "seeded account", logrus.Fields{"email": email, "password": password})
	}

	for _, in := range demoReports {
		r, err := reports.Create(ctx, in)
		if err != nil {
			log.Fatalf("failed to seed report %q: %v", in.Title, err)
		}
		helpers.LogInfo(logger, "seeded report", logrus.Fields{"id": r.ID, "category": r.Category})
		// millisecond ids collide within the same tick
		time.Sleep(2 * time.Millisecond)
	}
}
