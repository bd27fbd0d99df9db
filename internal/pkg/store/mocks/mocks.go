package mocks

import (
	"context"

	"github.com/ougirez/cpi/internal/domain"
	"github.com/ougirez/cpi/internal/pkg/store"
	"github.com/stretchr/testify/mock"
)

// Store is a mock for store.Store.
type Store struct {
	mock.Mock
}

var _ store.Store = (*Store)(nil)

func (m *Store) Migrate(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *Store) InsertAreas(ctx context.Context, areas []*domain.Area) error {
	args := m.Called(ctx, areas)
	return args.Error(0)
}

func (m *Store) InsertItems(ctx context.Context, items []*domain.Item) error {
	args := m.Called(ctx, items)
	return args.Error(0)
}

func (m *Store) InsertPeriods(ctx context.Context, periods []*domain.Period) error {
	args := m.Called(ctx, periods)
	return args.Error(0)
}

func (m *Store) InsertPeriodicities(ctx context.Context, periodicities []*domain.Periodicity) error {
	args := m.Called(ctx, periodicities)
	return args.Error(0)
}

func (m *Store) InsertSeries(ctx context.Context, series []*domain.Series) error {
	args := m.Called(ctx, series)
	return args.Error(0)
}

func (m *Store) InsertIndexes(ctx context.Context, indexes []*domain.Index) error {
	args := m.Called(ctx, indexes)
	return args.Error(0)
}

func (m *Store) ListAreas(ctx context.Context) (domain.ObjectList[*domain.Area], error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).(domain.ObjectList[*domain.Area]); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Store) ListItems(ctx context.Context) (domain.ObjectList[*domain.Item], error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).(domain.ObjectList[*domain.Item]); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Store) ListPeriods(ctx context.Context) (domain.ObjectList[*domain.Period], error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).(domain.ObjectList[*domain.Period]); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Store) ListPeriodicities(ctx context.Context) (domain.ObjectList[*domain.Periodicity], error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).(domain.ObjectList[*domain.Periodicity]); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Store) GetSeries(ctx context.Context, id string) (*domain.Series, error) {
	args := m.Called(ctx, id)
	if s, ok := args.Get(0).(*domain.Series); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Store) ListIndexes(ctx context.Context, opts store.ListIndexesOpts) ([]*domain.Index, error) {
	args := m.Called(ctx, opts)
	if list, ok := args.Get(0).([]*domain.Index); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}
