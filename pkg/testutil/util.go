package testutil

import (
	"context"
	"time"

	"github.com/federation-of-frogs/backend/config"
	"github.com/federation-of-frogs/backend/internal/entity"
	"github.com/federation-of-frogs/backend/pkg/logger"
	"github.com/federation-of-frogs/backend/pkg/xcontext"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func MockContext() context.Context {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		panic(err)
	}

	cfg := config.Configs{
		Env: "test",
		Fotd: config.FotdConfigs{
			PeriodDuration:    24 * time.Hour,
			TickInterval:      time.Minute,
			PayoutPercent:     25,
			SettlementTimeout: time.Minute,
			TickLeaseTTL:      2 * time.Minute,
			StandingCacheTTL:  0,
			CronSecret:        "cron-secret",
		},
		Eth: config.EthConfigs{
			Chain: config.ChainConfig{
				Chain: "testchain",
				ID:    1337,
			},
			TreasuryAddress: "0x00000000000000000000000000000000000f406d",
		},
	}

	ctx := context.Background()
	ctx = xcontext.WithConfigs(ctx, cfg)
	ctx = xcontext.WithLogger(ctx, logger.NewLogger(logger.SILENCE))
	ctx = xcontext.WithDB(ctx, db)

	if err := entity.MigrateTable(ctx); err != nil {
		panic(err)
	}

	return ctx
}
