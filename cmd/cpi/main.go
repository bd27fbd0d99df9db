package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/ougirez/cpi/internal/config"
	"github.com/ougirez/cpi/internal/pkg/constants"
	"github.com/ougirez/cpi/internal/pkg/logger"
	"github.com/spf13/viper"
)

var cli struct {
	Config string `short:"c" help:"Path to config file." env:"CPI_CONFIG"`

	Serve    ServeCmd    `cmd:"" default:"1" help:"Serve the CPI HTTP API."`
	Backfill BackfillCmd `cmd:"" help:"Download CPI files from BLS and store them."`
	Migrate  MigrateCmd  `cmd:"" help:"Create database tables."`
}

func main() {
	ctx := kong.Parse(&cli, kong.ShortUsageOnError())

	ctx.FatalIfErrorf(config.Load(cli.Config))
	ctx.FatalIfErrorf(logger.Init(viper.GetString(constants.ViperLogLevel)))
	defer logger.Sync()

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctx.FatalIfErrorf(ctx.Run(&appContext{ctx: sigCtx}))
}
