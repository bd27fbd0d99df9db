package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/ougirez/cpi/internal/api/controller"
	"github.com/ougirez/cpi/internal/pkg/logger"
	"github.com/ougirez/cpi/internal/pkg/store"
	"github.com/ougirez/cpi/internal/service/cpi"
)

type Options struct {
	DataPrefix   string
	AllowOrigins []string
}

type APIService struct {
	router     *echo.Echo
	cpiService *cpi.Service
}

func (svc *APIService) Serve(addr string) {
	if err := svc.router.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal(context.Background(), err)
	}
}

func (svc *APIService) Shutdown(ctx context.Context) error {
	return svc.router.Shutdown(ctx)
}

func NewAPIService(store store.Store, source cpi.Source, opts Options) (*APIService, error) {
	svc := &APIService{router: echo.New()}

	svc.router.HideBanner = true
	svc.router.Logger.SetLevel(log.INFO)
	svc.router.Validator = NewValidator()
	svc.router.Binder = NewBinder()
	svc.router.JSONSerializer = NewJSONSerializer()
	svc.router.Use(middleware.Recover())
	svc.router.Use(RequestIDMiddleware)
	svc.router.Use(middleware.Logger())
	svc.router.HTTPErrorHandler = httpErrorHandler
	svc.router.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: opts.AllowOrigins,
		AllowMethods: []string{echo.GET, echo.POST},
		AllowHeaders: []string{"Content-Type", "Authorization"},
	}))

	svc.cpiService = cpi.NewCPIService(store, source, opts.DataPrefix)

	api := svc.router.Group("/api/v1")
	cntrl := controller.NewController(svc.cpiService)

	backfill := api.Group("/cpi", svc.AdminMiddleware)
	backfill.POST("/backfill", cntrl.Backfill)

	api.GET("/areas", cntrl.ListAreas)
	api.GET("/items", cntrl.ListItems)
	api.GET("/periods", cntrl.ListPeriods)
	api.GET("/periodicities", cntrl.ListPeriodicities)

	series := api.Group("/series")
	series.GET("/:id", cntrl.GetSeries)
	series.GET("/:id/indexes", cntrl.ListIndexes)

	return svc, nil
}
