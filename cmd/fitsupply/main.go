package main

import (
	"context"
	"log"
	"log/slog"

	"github.com/pandonyx/fitsupply-cli/internal/client/cli"
	"github.com/pandonyx/fitsupply-cli/internal/client/config"
	"github.com/pandonyx/fitsupply-cli/internal/logging"
)

func main() {
	ctx := context.Background()

	cfg := config.LoadConfig()
	logger := logging.NewDefault(slog.LevelWarn)

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer app.Close()

	app.Run(ctx)
}
