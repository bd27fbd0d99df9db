package store

import (
	"context"

	"github.com/ougirez/cpi/internal/domain"
	"github.com/ougirez/cpi/internal/pkg/store/xpgx"
)

type Pool = xpgx.Pool

type Store interface {
	Migrate(ctx context.Context) error

	InsertAreas(ctx context.Context, areas []*domain.Area) error
	InsertItems(ctx context.Context, items []*domain.Item) error
	InsertPeriods(ctx context.Context, periods []*domain.Period) error
	InsertPeriodicities(ctx context.Context, periodicities []*domain.Periodicity) error
	InsertSeries(ctx context.Context, series []*domain.Series) error
	InsertIndexes(ctx context.Context, indexes []*domain.Index) error

	ListAreas(ctx context.Context) (domain.ObjectList[*domain.Area], error)
	ListItems(ctx context.Context) (domain.ObjectList[*domain.Item], error)
	ListPeriods(ctx context.Context) (domain.ObjectList[*domain.Period], error)
	ListPeriodicities(ctx context.Context) (domain.ObjectList[*domain.Periodicity], error)
	GetSeries(ctx context.Context, id string) (*domain.Series, error)
	ListIndexes(ctx context.Context, opts ListIndexesOpts) ([]*domain.Index, error)
}

type store struct {
	pool Pool
}

func NewStore(pool Pool) Store {
	return &store{pool}
}
