package main

import (
	"github.com/federation-of-frogs/backend/internal/domain/cron"
	"github.com/federation-of-frogs/backend/pkg/xcontext"
	"github.com/urfave/cli/v2"
)

func (s *srv) startCron(*cli.Context) error {
	s.ctx = xcontext.WithDB(s.ctx, s.newDatabase())
	s.migrateDB()
	s.loadRedisClient()
	s.loadPaymentRail()
	s.loadRepos()
	s.loadDomains()

	cronJobManager := cron.NewCronJobManager()
	cronJobManager.Register(
		cron.NewFotdTickCronJob(s.fotdDomain, xcontext.Configs(s.ctx).Fotd.TickInterval))
	cronJobManager.Start(s.ctx)

	return nil
}
