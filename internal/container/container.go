package container

import (
	"database/sql"

	"cloud.google.com/go/storage"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/civic-reports/config"
	"github.com/oksasatya/civic-reports/internal/domain/repository"
	"github.com/oksasatya/civic-reports/pkg/geo"
	"github.com/oksasatya/civic-reports/pkg/helpers"
)

// app-level container to share constructed components across packages
// Router can auto-wire modules from these singletons.

var (
	cfg         *config.Config
	logger      *logrus.Logger
	sqlDB       *sql.DB
	redisClient *redis.Client
	kvStore     repository.KVStore
	gcsClient   *storage.Client

	anonKeys *helpers.AnonKeyManager

	rabbitPub *helpers.RabbitPublisher
	geocoder  geo.ReverseGeocoder
)

func SetConfig(c *config.Config)              { cfg = c }
func GetConfig() *config.Config               { return cfg }
func SetLogger(l *logrus.Logger)              { logger = l }
func GetLogger() *logrus.Logger               { return logger }
func SetDB(db *sql.DB)                        { sqlDB = db }
func GetDB() *sql.DB                          { return sqlDB }
func SetRedis(r *redis.Client)                { redisClient = r }
func GetRedis() *redis.Client                 { return redisClient }
func SetKVStore(s repository.KVStore)         { kvStore = s }
func GetKVStore() repository.KVStore          { return kvStore }
func SetGCS(s *storage.Client)                { gcsClient = s }
func GetGCS() *storage.Client                 { return gcsClient }
func SetAnonKeys(m *helpers.AnonKeyManager)   { anonKeys = m }
func GetAnonKeys() *helpers.AnonKeyManager    { return anonKeys }
func SetRabbitPub(p *helpers.RabbitPublisher) { rabbitPub = p }
func GetRabbitPub() *helpers.RabbitPublisher  { return rabbitPub }
func SetGeocoder(g geo.ReverseGeocoder)       { geocoder = g }
func GetGeocoder() geo.ReverseGeocoder        { return geocoder }

// Reset clears every singleton. Tests use it between router builds.
func Reset() {
	cfg, logger, sqlDB, redisClient, kvStore, gcsClient = nil, nil, nil, nil, nil, nil
	anonKeys, rabbitPub, geocoder = nil, nil, nil
}
