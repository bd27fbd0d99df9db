package controller

import (
	"context"

	"github.com/ougirez/cpi/internal/domain"
	"github.com/ougirez/cpi/internal/pkg/store"
	"github.com/ougirez/cpi/internal/service/cpi"
)

// Service то, что хендлеры берут из cpi.Service.
type Service interface {
	Backfill(ctx context.Context) (*cpi.BackfillResult, error)
	ListAreas(ctx context.Context) (domain.ObjectList[*domain.Area], error)
	ListItems(ctx context.Context) (domain.ObjectList[*domain.Item], error)
	ListPeriods(ctx context.Context) (domain.ObjectList[*domain.Period], error)
	ListPeriodicities(ctx context.Context) (domain.ObjectList[*domain.Periodicity], error)
	GetSeries(ctx context.Context, id string) (*domain.SeriesView, error)
	ListIndexes(ctx context.Context, opts store.ListIndexesOpts) ([]*domain.Index, error)
}

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}
