package dto

import (
	"fmt"
	"sync"
	"time"

	"github.com/ougirez/cpi/internal/domain"
	"github.com/shopspring/decimal"
)

// Observation хранит строку из cu.data.* до привязки к серии и периоду.
type Observation struct {
	SeriesID string
	Year     domain.Year
	Period   string
	Value    decimal.Decimal
}

// Catalog собирает справочники, которые параллельно скачиваются при бэкфилле.
type Catalog struct {
	Areas         domain.ObjectList[*domain.Area]
	Items         domain.ObjectList[*domain.Item]
	Periods       domain.ObjectList[*domain.Period]
	Periodicities domain.ObjectList[*domain.Periodicity]
	Series        domain.ObjectList[*domain.Series]
	mx            sync.Mutex
}

func NewCatalog() *Catalog {
	return &Catalog{}
}

func (c *Catalog) PutAreas(areas []*domain.Area) {
	c.mx.Lock()
	defer c.mx.Unlock()
	c.Areas = append(c.Areas, areas...)
}

func (c *Catalog) PutItems(items []*domain.Item) {
	c.mx.Lock()
	defer c.mx.Unlock()
	c.Items = append(c.Items, items...)
}

func (c *Catalog) PutPeriods(periods []*domain.Period) {
	c.mx.Lock()
	defer c.mx.Unlock()
	c.Periods = append(c.Periods, periods...)
}

func (c *Catalog) PutPeriodicities(periodicities []*domain.Periodicity) {
	c.mx.Lock()
	defer c.mx.Unlock()
	c.Periodicities = append(c.Periodicities, periodicities...)
}

func (c *Catalog) PutSeries(series []*domain.Series) {
	c.mx.Lock()
	defer c.mx.Unlock()
	c.Series = append(c.Series, series...)
}

type indexKey struct {
	seriesID   string
	date       time.Time
	periodType domain.PeriodType
}

// Indexes привязывает наблюдения к сериям и периодам каталога.
// Файлы данных пересекаются, поэтому повторы по (серия, дата, тип периода)
// отбрасываются, остаётся первое наблюдение.
// Вызывать после того, как все справочники загружены.
func (c *Catalog) Indexes(observations []Observation) ([]*domain.Index, error) {
	c.mx.Lock()
	seriesByID := c.Series.ByID()
	periodsByID := c.Periods.ByID()
	c.mx.Unlock()

	res := make([]*domain.Index, 0, len(observations))
	seen := make(map[indexKey]struct{}, len(observations))
	for _, o := range observations {
		series, ok := seriesByID[o.SeriesID]
		if !ok {
			return nil, fmt.Errorf("series: %w", &domain.NotFoundError{Key: o.SeriesID})
		}

		period, ok := periodsByID[o.Period]
		if !ok {
			return nil, fmt.Errorf("period: %w", &domain.NotFoundError{Key: o.Period})
		}

		date, err := domain.PeriodDate(o.Year, period)
		if err != nil {
			return nil, fmt.Errorf("series %s, year %d: %w", o.SeriesID, o.Year, err)
		}

		key := indexKey{seriesID: series.ID(), date: date, periodType: period.Type()}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}

		res = append(res, domain.NewIndex(series, date, o.Year, period.Type(), o.Value))
	}

	return res, nil
}
