package main

import (
	"fmt"
	"net/http"

	"github.com/federation-of-frogs/backend/internal/middleware"
	"github.com/federation-of-frogs/backend/pkg/router"
	"github.com/federation-of-frogs/backend/pkg/xcontext"
	"github.com/urfave/cli/v2"
)

func (s *srv) startApi(*cli.Context) error {
	s.ctx = xcontext.WithDB(s.ctx, s.newDatabase())
	s.migrateDB()
	s.loadRedisClient()
	s.loadPaymentRail()
	s.loadRepos()
	s.loadDomains()
	s.loadRouter()

	cfg := xcontext.Configs(s.ctx)
	s.server = &http.Server{
		Addr:    fmt.Sprintf("%s:%s", cfg.ApiServer.Host, cfg.ApiServer.Port),
		Handler: s.router.Handler(),
	}

	xcontext.Logger(s.ctx).Infof("Starting server on port: %s", cfg.ApiServer.Port)
	if err := s.server.ListenAndServe(); err != nil {
		return err
	}

	xcontext.Logger(s.ctx).Infof("Server stop")
	return nil
}

func (s *srv) loadRouter() {
	s.router = router.New(xcontext.DB(s.ctx), xcontext.Configs(s.ctx), xcontext.Logger(s.ctx))
	s.router.Before(middleware.Logger)

	// Public API.
	router.GET(s.router, "/getFOTD", s.fotdDomain.GetFOTD)
	router.GET(s.router, "/getHallOfFame", s.frogDomain.GetHallOfFame)
	router.GET(s.router, "/listFrogs", s.frogDomain.ListFrogs)
	router.POST(s.router, "/saveFrog", s.frogDomain.SaveFrog)

	// Scheduler API. These endpoints need the shared scheduler secret.
	schedulerRouter := s.router.Branch()
	schedulerRouter.Before(middleware.AuthenticateScheduler)
	{
		router.GET(schedulerRouter, "/processFOTDWinner", s.fotdDomain.Tick)
		router.POST(schedulerRouter, "/bootstrapFOTD", s.fotdDomain.Bootstrap)
	}
}
