package main

import "github.com/urfave/cli/v2"

// loadApp creates an app with sane defaults.
func (s *srv) loadApp() {
	app := cli.NewApp()
	app.Action = cli.ShowAppHelp
	app.Name = "Federation of Frogs"
	app.Usage = ""
	app.Commands = []*cli.Command{
		{
			Action:      s.startApi,
			Name:        "api",
			Usage:       "Start service api",
			Flags:       []cli.Flag{},
			Category:    "Api",
			Description: `Serves the public frog APIs and the scheduler trigger endpoints.`,
		},
		{
			Action:      s.startCron,
			Name:        "cron",
			Usage:       "Start service cron",
			Flags:       []cli.Flag{},
			Category:    "Worker",
			Description: `Runs the Frog-of-the-Day period lifecycle tick on a fixed interval.`,
		},
		{
			Action:      s.startMigrate,
			Name:        "migrate",
			Usage:       "Migrate the database schema",
			Flags:       []cli.Flag{},
			Category:    "Database",
			Description: `Applies the gorm auto migration and exits.`,
		},
	}

	s.app = app
}
