package main

import (
	"context"
	"os"

	"github.com/federation-of-frogs/backend/pkg/xcontext"
)

var server srv

func main() {
	server.ctx = context.Background()
	server.loadConfig()
	server.loadLogger()
	server.loadApp()

	if err := server.app.Run(os.Args); err != nil {
		xcontext.Logger(server.ctx).Errorf("Cannot run server: %v", err)
		os.Exit(1)
	}
}
