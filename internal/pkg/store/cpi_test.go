package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/ougirez/cpi/internal/domain"
	"github.com/ougirez/cpi/internal/pkg/constants"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type query struct {
	sql  string
	args []interface{}
}

// fakePool запоминает запросы; get и sel заполняют dest.
type fakePool struct {
	execs   []query
	selects []query
	get     func(dest any) error
	sel     func(dest any) error
}

func (p *fakePool) record(to *[]query, sqlizer squirrel.Sqlizer) error {
	sql, args, err := sqlizer.ToSql()
	if err != nil {
		return err
	}
	*to = append(*to, query{sql: sql, args: args})
	return nil
}

func (p *fakePool) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	p.execs = append(p.execs, query{sql: sql, args: args})
	return pgconn.CommandTag{}, nil
}

func (p *fakePool) Execx(_ context.Context, sqlizer squirrel.Sqlizer) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, p.record(&p.execs, sqlizer)
}

func (p *fakePool) Getx(_ context.Context, dest any, sqlizer squirrel.Sqlizer) error {
	if err := p.record(&p.selects, sqlizer); err != nil {
		return err
	}
	return p.get(dest)
}

func (p *fakePool) Selectx(_ context.Context, dest any, sqlizer squirrel.Sqlizer) error {
	if err := p.record(&p.selects, sqlizer); err != nil {
		return err
	}
	return p.sel(dest)
}

func (p *fakePool) Close() {}

func TestStore_InsertAreasBatches(t *testing.T) {
	pool := &fakePool{}
	s := NewStore(pool)

	areas := make([]*domain.Area, batchSize+1)
	for i := range areas {
		areas[i] = domain.NewArea("A", "name")
	}

	require.NoError(t, s.InsertAreas(context.Background(), areas))
	require.Len(t, pool.execs, 2)
	assert.Len(t, pool.execs[0].args, 2*batchSize)
	assert.Len(t, pool.execs[1].args, 2)
	assert.Contains(t, pool.execs[1].sql, "INSERT INTO areas (code,name) VALUES ($1,$2)")
	assert.Contains(t, pool.execs[1].sql, "on conflict (code) do update set updated_at=now(), name=excluded.name")
}

func TestStore_InsertEmpty(t *testing.T) {
	pool := &fakePool{}
	require.NoError(t, NewStore(pool).InsertItems(context.Background(), nil))
	assert.Empty(t, pool.execs)
}

func TestStore_InsertIndexes(t *testing.T) {
	pool := &fakePool{}
	s := NewStore(pool)

	series := domain.NewSeries("CUUR0000SA0")
	date := time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)
	value := decimal.RequireFromString("257.971")

	err := s.InsertIndexes(context.Background(), []*domain.Index{
		domain.NewIndex(series, date, 2020, domain.PeriodTypeMonthly, value),
	})
	require.NoError(t, err)
	require.Len(t, pool.execs, 1)
	assert.Equal(t, []interface{}{"CUUR0000SA0", date, 2020, "monthly", value}, pool.execs[0].args)
	assert.Contains(t, pool.execs[0].sql, "on conflict (series_id, date, period_type)")
}

func TestStore_GetSeriesNotFound(t *testing.T) {
	pool := &fakePool{get: func(any) error { return pgx.ErrNoRows }}

	_, err := NewStore(pool).GetSeries(context.Background(), "CUUR9999SA0")
	require.Error(t, err)
	assert.True(t, errors.Is(err, constants.ErrDBNotFound))
	assert.True(t, errors.Is(err, constants.ErrNotFound))
}

func TestStore_ListIndexes(t *testing.T) {
	date := time.Date(2020, time.July, 1, 0, 0, 0, 0, time.UTC)
	pool := &fakePool{
		get: func(dest any) error {
			*dest.(*domain.Series) = domain.Series{SeriesID: "CUUS0000SA0", Title: "All items"}
			return nil
		},
		sel: func(dest any) error {
			*dest.(*[]indexRow) = []indexRow{{
				SeriesID:   "CUUS0000SA0",
				Date:       date,
				Year:       2020,
				PeriodType: domain.PeriodTypeSemiannual,
				Value:      decimal.RequireFromString("259.0"),
			}}
			return nil
		},
	}

	from, to := 2019, 2021
	periodType := domain.PeriodTypeSemiannual
	indexes, err := NewStore(pool).ListIndexes(context.Background(), ListIndexesOpts{
		SeriesID:   "CUUS0000SA0",
		FromYear:   &from,
		ToYear:     &to,
		PeriodType: &periodType,
	})
	require.NoError(t, err)
	require.Len(t, indexes, 1)
	assert.Equal(t, "All items", indexes[0].Series.Title)
	assert.Equal(t, date, indexes[0].Date)
	assert.Equal(t, "2020-07-01 (semiannual): 259", indexes[0].String())

	require.Len(t, pool.selects, 2)
	assert.Equal(t,
		"SELECT series_id, date, year, period_type, value FROM indexes WHERE series_id = $1 AND year >= $2 AND year <= $3 AND period_type = $4 ORDER BY date, period_type",
		pool.selects[1].sql)
	assert.Equal(t, []interface{}{"CUUS0000SA0", 2019, 2021, "semiannual"}, pool.selects[1].args)
}

func TestStore_Migrate(t *testing.T) {
	pool := &fakePool{}
	require.NoError(t, NewStore(pool).Migrate(context.Background()))
	require.Len(t, pool.execs, 1)
	assert.Contains(t, pool.execs[0].sql, "create table if not exists indexes")
}
