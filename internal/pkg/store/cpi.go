package store

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/ougirez/cpi/internal/domain"
	"github.com/ougirez/cpi/internal/pkg/logger"
	"github.com/shopspring/decimal"
)

type ListIndexesOpts struct {
	SeriesID   string
	FromYear   *domain.Year
	ToYear     *domain.Year
	PeriodType *domain.PeriodType
}

var (
	areasColumns         = []string{"code", "name"}
	itemsColumns         = []string{"code", "name"}
	periodsColumns       = []string{"code", "abbreviation", "name"}
	periodicitiesColumns = []string{"code", "name"}
	seriesColumns        = []string{"id", "title", "base_code", "base_period", "begin_year", "begin_period", "end_year", "end_period"}
	indexesColumns       = []string{"series_id", "date", "year", "period_type", "value"}
)

type indexRow struct {
	SeriesID   string            `db:"series_id"`
	Date       time.Time         `db:"date"`
	Year       domain.Year       `db:"year"`
	PeriodType domain.PeriodType `db:"period_type"`
	Value      decimal.Decimal   `db:"value"`
}

// upsertSuffix обновляет все колонки кроме ключа.
func upsertSuffix(key string, columns []string) string {
	suffix := fmt.Sprintf("on conflict (%s) do update set updated_at=now()", key)
	for _, c := range columns {
		suffix += fmt.Sprintf(", %s=excluded.%s", c, c)
	}
	return suffix
}

// insertBatches вставляет n строк пачками по batchSize, values(i) отдаёт значения i-й строки.
func (s *store) insertBatches(
	ctx context.Context,
	table string,
	columns []string,
	suffix string,
	n int,
	values func(i int) []interface{},
) error {
	for from := 0; from < n; from += batchSize {
		to := from + batchSize
		if to > n {
			to = n
		}

		query := builder().Insert(table).Columns(columns...)
		for i := from; i < to; i++ {
			query = query.Values(values(i)...)
		}
		query = query.Suffix(suffix)

		if _, err := s.pool.Execx(ctx, query); err != nil {
			logger.Errorf(ctx, "insert into %s: %s", table, err.Error())
			return fmt.Errorf("insert into %s, rows %d-%d: %w", table, from, to, err)
		}
	}

	return nil
}

func (s *store) InsertAreas(ctx context.Context, areas []*domain.Area) error {
	return s.insertBatches(ctx, tableAreas, areasColumns, upsertSuffix("code", areasColumns[1:]), len(areas),
		func(i int) []interface{} {
			return []interface{}{areas[i].Code, areas[i].Name}
		})
}

func (s *store) InsertItems(ctx context.Context, items []*domain.Item) error {
	return s.insertBatches(ctx, tableItems, itemsColumns, upsertSuffix("code", itemsColumns[1:]), len(items),
		func(i int) []interface{} {
			return []interface{}{items[i].Code, items[i].Name}
		})
}

func (s *store) InsertPeriods(ctx context.Context, periods []*domain.Period) error {
	return s.insertBatches(ctx, tablePeriods, periodsColumns, upsertSuffix("code", periodsColumns[1:]), len(periods),
		func(i int) []interface{} {
			return []interface{}{periods[i].Code, periods[i].Abbreviation, periods[i].Name}
		})
}

func (s *store) InsertPeriodicities(ctx context.Context, periodicities []*domain.Periodicity) error {
	return s.insertBatches(ctx, tablePeriodicities, periodicitiesColumns, upsertSuffix("code", periodicitiesColumns[1:]), len(periodicities),
		func(i int) []interface{} {
			return []interface{}{periodicities[i].Code, periodicities[i].Name}
		})
}

func (s *store) InsertSeries(ctx context.Context, series []*domain.Series) error {
	return s.insertBatches(ctx, tableSeries, seriesColumns, upsertSuffix("id", seriesColumns[1:]), len(series),
		func(i int) []interface{} {
			sr := series[i]
			return []interface{}{sr.SeriesID, sr.Title, sr.BaseCode, sr.BasePeriod, sr.BeginYear, sr.BeginPeriod, sr.EndYear, sr.EndPeriod}
		})
}

func (s *store) InsertIndexes(ctx context.Context, indexes []*domain.Index) error {
	return s.insertBatches(ctx, tableIndexes, indexesColumns, upsertSuffix("series_id, date, period_type", []string{"year", "value"}), len(indexes),
		func(i int) []interface{} {
			idx := indexes[i]
			return []interface{}{idx.Series.ID(), idx.Date, idx.Year, string(idx.PeriodType), idx.Value}
		})
}

func (s *store) ListAreas(ctx context.Context) (domain.ObjectList[*domain.Area], error) {
	var selected []*domain.Area
	if err := s.pool.Selectx(ctx, &selected, builder().Select(areasColumns...).From(tableAreas).OrderBy("code")); err != nil {
		return nil, err
	}
	return selected, nil
}

func (s *store) ListItems(ctx context.Context) (domain.ObjectList[*domain.Item], error) {
	var selected []*domain.Item
	if err := s.pool.Selectx(ctx, &selected, builder().Select(itemsColumns...).From(tableItems).OrderBy("code")); err != nil {
		return nil, err
	}
	return selected, nil
}

func (s *store) ListPeriods(ctx context.Context) (domain.ObjectList[*domain.Period], error) {
	var selected []*domain.Period
	if err := s.pool.Selectx(ctx, &selected, builder().Select(periodsColumns...).From(tablePeriods).OrderBy("code")); err != nil {
		return nil, err
	}
	return selected, nil
}

func (s *store) ListPeriodicities(ctx context.Context) (domain.ObjectList[*domain.Periodicity], error) {
	var selected []*domain.Periodicity
	if err := s.pool.Selectx(ctx, &selected, builder().Select(periodicitiesColumns...).From(tablePeriodicities).OrderBy("code")); err != nil {
		return nil, err
	}
	return selected, nil
}

func (s *store) GetSeries(ctx context.Context, id string) (*domain.Series, error) {
	query := builder().Select(seriesColumns...).
		From(tableSeries).
		Where(sq.Eq{"id": id})

	var selected domain.Series
	if err := s.pool.Getx(ctx, &selected, query); err != nil {
		return nil, fmt.Errorf("series %s: %w", id, wrapErr(err))
	}

	return &selected, nil
}

func (s *store) ListIndexes(ctx context.Context, opts ListIndexesOpts) ([]*domain.Index, error) {
	series, err := s.GetSeries(ctx, opts.SeriesID)
	if err != nil {
		return nil, err
	}

	query := builder().Select(indexesColumns...).
		From(tableIndexes).
		Where(sq.Eq{"series_id": opts.SeriesID}).
		OrderBy("date", "period_type")

	if opts.FromYear != nil {
		query = query.Where(sq.GtOrEq{"year": *opts.FromYear})
	}
	if opts.ToYear != nil {
		query = query.Where(sq.LtOrEq{"year": *opts.ToYear})
	}
	if opts.PeriodType != nil {
		query = query.Where(sq.Eq{"period_type": string(*opts.PeriodType)})
	}

	var rows []indexRow
	if err = s.pool.Selectx(ctx, &rows, query); err != nil {
		logger.Error(ctx, err.Error())
		return nil, err
	}

	res := make([]*domain.Index, 0, len(rows))
	for _, r := range rows {
		res = append(res, domain.NewIndex(series, r.Date, r.Year, r.PeriodType, r.Value))
	}

	return res, nil
}
