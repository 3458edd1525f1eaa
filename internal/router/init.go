package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/civic-reports/config"
	"github.com/oksasatya/civic-reports/internal/application"
	"github.com/oksasatya/civic-reports/internal/container"
	"github.com/oksasatya/civic-reports/internal/infrastructure/kvrepo"
	handlers "github.com/oksasatya/civic-reports/internal/interface/http"
	"github.com/oksasatya/civic-reports/internal/interface/middleware"
	"github.com/oksasatya/civic-reports/internal/router/modules"
	"github.com/oksasatya/civic-reports/pkg/helpers"
	mailtpl "github.com/oksasatya/civic-reports/pkg/mailer/templates"
	"github.com/oksasatya/civic-reports/pkg/validation"
)

// Services groups the application services built from the container.
type Services struct {
	Reports  *application.ReportService
	Accounts *application.AccountService
	Media    *application.MediaService
	Geocode  *application.GeocodeService
}

// BuildServices wires repositories and services from the container singletons.
func BuildServices() (*Services, error) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	kv := container.GetKVStore()

	ids, err := application.NewIDGenerator(cfg.ReportIDStrategy)
	if err != nil {
		return nil, err
	}
	passwords, err := application.NewPasswordPolicy(cfg.PasswordMode)
	if err != nil {
		return nil, err
	}

	var queue application.EmailQueue
	if pub := container.GetRabbitPub(); pub != nil && cfg.MailSendEnabled {
		queue = pub
	}
	var store application.ObjectStore
	if gcs := container.GetGCS(); gcs != nil && cfg.GCSBucket != "" {
		store = helpers.NewGCSStore(gcs, cfg.GCSBucket)
	}
	brand := mailtpl.Brand{AppName: cfg.AppName, CompanyName: cfg.CompanyName, SupportURL: cfg.SupportURL}

	return &Services{
		Reports:  application.NewReportService(kvrepo.NewReportRepository(kv), ids, cfg.PlaceholderImageURL, logger),
		Accounts: application.NewAccountService(kvrepo.NewAccountRepository(kv), passwords, queue, brand, logger),
		Media:    application.NewMediaService(store, cfg.MaxImageBytes, cfg.MaxVideoBytes, logger),
		Geocode:  application.NewGeocodeService(container.GetGeocoder(), cfg.GeocodeTimeout, logger),
	}, nil
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) error {
	svcs, err := BuildServices()
	if err != nil {
		return err
	}
	cfg := container.GetConfig()
	logger := container.GetLogger()

	r.AddPublic(modules.NewHealthModule())
	if cfg.DebugMetricsEnabled {
		r.AddPublic(modules.NewDebugModule())
	}

	r.Use(middleware.AnonKey(container.GetAnonKeys(), cfg.RequireAnonKey))
	r.Add(modules.NewAccountModule(handlers.NewAccountHandler(svcs.Accounts, logger)))
	r.Add(modules.NewProblemModule(handlers.NewProblemHandler(svcs.Reports, logger)))
	r.Add(modules.NewMediaModule(handlers.NewMediaHandler(svcs.Media, logger)))
	r.Add(modules.NewGeocodeModule(handlers.NewGeocodeHandler(svcs.Geocode)))
	return nil
}

// NewEngine builds the Gin engine with global middleware and every module.
func NewEngine() (*gin.Engine, error) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	validation.Init()

	r := gin.New()
	// Only the socket address is trusted for ClientIP; RealIP reads proxy headers.
	_ = r.SetTrustedProxies(nil)
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.RealIP())
	if cfg.DebugMetricsEnabled {
		r.Use(middleware.Metrics())
	}
	r.Use(cors.New(corsConfig(cfg)))
	if cfg.HTTPLogEnabled && logger != nil {
		r.Use(middleware.AccessLog(logger))
	}

	reg := NewRegistry(r, cfg.APIBasePath)
	if err := InitModules(reg); err != nil {
		return nil, err
	}
	reg.RegisterAll()
	return r, nil
}

func corsConfig(cfg *config.Config) cors.Config {
	c := cors.Config{
		AllowMethods:  []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.HeaderRequestID},
		ExposeHeaders: []string{"Content-Length", middleware.HeaderRequestID},
		MaxAge:        12 * time.Hour,
	}
	origins := cfg.CORSOrigins()
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		// gin-contrib/cors refuses wildcard origins with credentials
		c.AllowAllOrigins = true
		return c
	}
	c.AllowOrigins = origins
	c.AllowCredentials = true
	return c
}
