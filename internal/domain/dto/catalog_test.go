package dto

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/ougirez/cpi/internal/domain"
	"github.com/ougirez/cpi/internal/pkg/constants"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCatalog() *Catalog {
	c := NewCatalog()
	c.PutSeries([]*domain.Series{domain.NewSeries("CUUR0000SA0")})
	c.PutPeriods([]*domain.Period{
		domain.NewPeriod("M01", "JAN", "January"),
		domain.NewPeriod("M13", "AN AV", "Annual"),
	})
	return c
}

func TestCatalog_ConcurrentPut(t *testing.T) {
	c := NewCatalog()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.PutAreas([]*domain.Area{domain.NewArea("0000", "U.S. city average")})
			c.PutItems([]*domain.Item{domain.NewItem("SA0", "All items")})
			c.PutPeriodicities([]*domain.Periodicity{domain.NewPeriodicity("R", "Monthly")})
		}()
	}
	wg.Wait()

	assert.Len(t, c.Areas, 10)
	assert.Len(t, c.Items, 10)
	assert.Len(t, c.Periodicities, 10)
}

func TestCatalog_Indexes(t *testing.T) {
	c := newTestCatalog()

	indexes, err := c.Indexes([]Observation{
		{SeriesID: "CUUR0000SA0", Year: 2020, Period: "M01", Value: decimal.RequireFromString("257.971")},
		{SeriesID: "CUUR0000SA0", Year: 2020, Period: "M13", Value: decimal.RequireFromString("258.811")},
	})
	require.NoError(t, err)
	require.Len(t, indexes, 2)

	assert.Same(t, c.Series[0], indexes[0].Series)
	assert.Same(t, indexes[0].Series, indexes[1].Series)
	assert.Equal(t, time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC), indexes[0].Date)
	assert.Equal(t, domain.PeriodTypeMonthly, indexes[0].PeriodType)
	assert.Equal(t, domain.PeriodTypeAnnual, indexes[1].PeriodType)
	assert.Equal(t, "258.811", indexes[1].Value.String())
}

func TestCatalog_IndexesUnknown(t *testing.T) {
	c := newTestCatalog()

	_, err := c.Indexes([]Observation{{SeriesID: "CUUR9999SA0", Year: 2020, Period: "M01"}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, constants.ErrNotFound))

	_, err = c.Indexes([]Observation{{SeriesID: "CUUR0000SA0", Year: 2020, Period: "M14"}})
	require.Error(t, err)

	var nf *domain.NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "M14", nf.Key)
}

func TestCatalog_IndexesDuplicates(t *testing.T) {
	c := newTestCatalog()

	indexes, err := c.Indexes([]Observation{
		{SeriesID: "CUUR0000SA0", Year: 2020, Period: "M01", Value: decimal.RequireFromString("257.971")},
		{SeriesID: "CUUR0000SA0", Year: 2020, Period: "M01", Value: decimal.RequireFromString("257.971")},
		{SeriesID: "CUUR0000SA0", Year: 2020, Period: "M01", Value: decimal.RequireFromString("999.000")},
		{SeriesID: "CUUR0000SA0", Year: 2020, Period: "M13", Value: decimal.RequireFromString("258.811")},
		{SeriesID: "CUUR0000SA0", Year: 2021, Period: "M01", Value: decimal.RequireFromString("261.582")},
	})
	require.NoError(t, err)
	require.Len(t, indexes, 3)

	// M01 и M13 дают одну дату, но разный тип периода
	assert.Equal(t, indexes[0].Date, indexes[1].Date)
	assert.Equal(t, "257.971", indexes[0].Value.String())
	assert.Equal(t, domain.PeriodTypeAnnual, indexes[1].PeriodType)
	assert.Equal(t, 2021, indexes[2].Year)
}
