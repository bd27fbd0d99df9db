package main

import (
	"context"
	"fmt"
	"time"

	"github.com/ougirez/cpi/internal/api"
	"github.com/ougirez/cpi/internal/config"
	"github.com/ougirez/cpi/internal/pkg/bls"
	"github.com/ougirez/cpi/internal/pkg/constants"
	"github.com/ougirez/cpi/internal/pkg/logger"
	"github.com/ougirez/cpi/internal/pkg/store"
	"github.com/ougirez/cpi/internal/pkg/store/xpgx"
	"github.com/ougirez/cpi/internal/service/cpi"
	"github.com/spf13/viper"
)

const shutdownTimeout = 10 * time.Second

type appContext struct {
	ctx context.Context
}

func (a *appContext) openStore() (store.Store, func(), error) {
	pool, err := xpgx.NewPool(a.ctx, viper.GetString(constants.ViperDBDSN))
	if err != nil {
		return nil, nil, fmt.Errorf("xpgx.NewPool: %w", err)
	}

	st := store.NewStore(pool)
	if err = st.Migrate(a.ctx); err != nil {
		pool.Close()
		return nil, nil, err
	}

	return st, pool.Close, nil
}

type MigrateCmd struct{}

func (c *MigrateCmd) Run(a *appContext) error {
	_, closeFn, err := a.openStore()
	if err != nil {
		return err
	}
	defer closeFn()

	logger.Info(a.ctx, "migrated")
	return nil
}

type BackfillCmd struct {
	DataPrefix string `help:"Only load data files with this prefix, overrides bls.data_prefix."`
}

func (c *BackfillCmd) Run(a *appContext) error {
	st, closeFn, err := a.openStore()
	if err != nil {
		return err
	}
	defer closeFn()

	client, err := bls.NewClient(config.BLS(viper.GetViper()))
	if err != nil {
		return fmt.Errorf("bls.NewClient: %w", err)
	}

	prefix := c.DataPrefix
	if prefix == "" {
		prefix = viper.GetString(constants.ViperBLSDataPrefix)
	}

	res, err := cpi.NewCPIService(st, client, prefix).Backfill(a.ctx)
	if err != nil {
		return err
	}

	logger.Infof(a.ctx, "run %s: %d areas, %d items, %d series, %d indexes",
		res.RunID, res.Areas, res.Items, res.Series, res.Indexes)
	return nil
}

type ServeCmd struct {
	Addr string `help:"Listen address, overrides server.addr."`
}

func (c *ServeCmd) Run(a *appContext) error {
	st, closeFn, err := a.openStore()
	if err != nil {
		return err
	}
	defer closeFn()

	client, err := bls.NewClient(config.BLS(viper.GetViper()))
	if err != nil {
		return fmt.Errorf("bls.NewClient: %w", err)
	}

	svc, err := api.NewAPIService(st, client, api.Options{
		DataPrefix:   viper.GetString(constants.ViperBLSDataPrefix),
		AllowOrigins: viper.GetStringSlice(constants.ViperServerAllowOrigin),
	})
	if err != nil {
		return fmt.Errorf("api.NewAPIService: %w", err)
	}

	addr := c.Addr
	if addr == "" {
		addr = viper.GetString(constants.ViperServerAddr)
	}
	go svc.Serve(addr)

	<-a.ctx.Done()
	logger.Info(context.Background(), "shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return svc.Shutdown(shutdownCtx)
}
