package main

import (
	"context"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/federation-of-frogs/backend/config"
	"github.com/federation-of-frogs/backend/internal/domain"
	"github.com/federation-of-frogs/backend/internal/entity"
	"github.com/federation-of-frogs/backend/internal/repository"
	"github.com/federation-of-frogs/backend/pkg/blockchain/eth"
	"github.com/federation-of-frogs/backend/pkg/blockchain/interface"
	"github.com/federation-of-frogs/backend/pkg/logger"
	"github.com/federation-of-frogs/backend/pkg/router"
	"github.com/federation-of-frogs/backend/pkg/xcontext"
	"github.com/federation-of-frogs/backend/pkg/xredis"
	"github.com/urfave/cli/v2"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type srv struct {
	ctx context.Context
	app *cli.App

	frogRepo   repository.FrogRepository
	periodRepo repository.FotdPeriodRepository
	payoutRepo repository.FotdPayoutRepository

	fotdDomain domain.FotdDomain
	frogDomain domain.FrogDomain

	redisClient xredis.Client
	paymentRail interfaze.PaymentRail

	router *router.Router
	server *http.Server
}

func (s *srv) loadConfig() {
	cfg := config.Configs{
		Env: getEnv("ENV", "local"),
		Database: config.DatabaseConfigs{
			Host:     getEnv("MYSQL_HOST", "localhost"),
			Port:     getEnv("MYSQL_PORT", "3306"),
			Database: getEnv("MYSQL_DATABASE", "frogs"),
			User:     getEnv("MYSQL_USER", "frogs"),
			Password: getEnv("MYSQL_PASSWORD", "frogs"),
			LogLevel: getEnv("DATABASE_LOG_LEVEL", "error"),
		},
		ApiServer: config.ServerConfigs{
			Host: getEnv("API_HOST", ""),
			Port: getEnv("API_PORT", "8080"),
			Cert: os.Getenv("API_CERT"),
			Key:  os.Getenv("API_KEY"),
		},
		Redis: config.RedisConfigs{
			Addr: os.Getenv("REDIS_ADDR"),
		},
		Fotd: config.FotdConfigs{
			PeriodDuration:    getDuration("FOTD_PERIOD_DURATION", 24*time.Hour),
			TickInterval:      getDuration("FOTD_TICK_INTERVAL", time.Minute),
			PayoutPercent:     getInt64("FOTD_PAYOUT_PERCENT", 25),
			SettlementTimeout: getDuration("FOTD_SETTLEMENT_TIMEOUT", 2*time.Minute),
			TickLeaseTTL:      getDuration("FOTD_TICK_LEASE_TTL", 3*time.Minute),
			StandingCacheTTL:  getDuration("FOTD_STANDING_CACHE_TTL", 5*time.Second),
			CronSecret:        os.Getenv("FOTD_CRON_SECRET"),
		},
		Eth: loadEthConfigs(),
	}

	s.ctx = xcontext.WithConfigs(s.ctx, cfg)
}

// loadEthConfigs reads the chain description from a toml file. The treasury
// key never lives in that file, it always comes from the environment.
func loadEthConfigs() config.EthConfigs {
	var cfg config.EthConfigs
	path := getEnv("ETH_CONFIG_PATH", "eth.toml")
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		panic(err)
	}

	cfg.TreasuryPrivateKey = os.Getenv("ETH_TREASURY_PRIVATE_KEY")

	return cfg
}

func (s *srv) loadLogger() {
	s.ctx = xcontext.WithLogger(s.ctx, logger.NewLogger(logger.INFO))
}

func (s *srv) newDatabase() *gorm.DB {
	cfg := xcontext.Configs(s.ctx)
	db, err := gorm.Open(mysql.Open(cfg.Database.ConnectionString()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(databaseLogLevel(cfg.Database.LogLevel)),
	})
	if err != nil {
		panic(err)
	}

	return db
}

func databaseLogLevel(level string) gormlogger.LogLevel {
	switch level {
	case "silent":
		return gormlogger.Silent
	case "warn":
		return gormlogger.Warn
	case "info":
		return gormlogger.Info
	default:
		return gormlogger.Error
	}
}

func (s *srv) migrateDB() {
	if err := entity.MigrateTable(s.ctx); err != nil {
		panic(err)
	}
}

func (s *srv) loadRedisClient() {
	if xcontext.Configs(s.ctx).Redis.Addr == "" {
		xcontext.Logger(s.ctx).Warnf("No redis address, running without tick lease and cache")
		return
	}

	redisClient, err := xredis.NewClient(s.ctx)
	if err != nil {
		panic(err)
	}

	s.redisClient = redisClient
}

func (s *srv) loadPaymentRail() {
	s.paymentRail = eth.NewTreasuryClient(xcontext.Configs(s.ctx).Eth)
}

func (s *srv) loadRepos() {
	s.frogRepo = repository.NewFrogRepository()
	s.periodRepo = repository.NewFotdPeriodRepository()
	s.payoutRepo = repository.NewFotdPayoutRepository()
}

func (s *srv) loadDomains() {
	s.fotdDomain = domain.NewFotdDomain(
		s.frogRepo, s.periodRepo, s.payoutRepo, s.paymentRail, s.redisClient)
	s.frogDomain = domain.NewFrogDomain(s.frogRepo, s.payoutRepo)
}

func getEnv(key, def string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return def
}

func getDuration(key string, def time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return def
	}

	d, err := time.ParseDuration(value)
	if err != nil {
		panic(err)
	}

	return d
}

func getInt64(key string, def int64) int64 {
	value := os.Getenv(key)
	if value == "" {
		return def
	}

	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		panic(err)
	}

	return n
}
