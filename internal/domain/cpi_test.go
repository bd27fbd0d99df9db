package domain

import (
	"errors"
	"fmt"
	"strconv"
	"testing"
	"time"

	"github.com/ougirez/cpi/internal/pkg/constants"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReferenceEntities(t *testing.T) {
	area := NewArea("0000", "U.S. city average")
	assert.Equal(t, "0000", area.ID())
	assert.Equal(t, "0000", area.Code)
	assert.Equal(t, "U.S. city average", area.String())
	assert.Equal(t, "<Area: U.S. city average>", fmt.Sprintf("%#v", area))

	item := NewItem("SA0", "All items")
	assert.Equal(t, "SA0", item.ID())
	assert.Equal(t, "All items", item.String())
	assert.Equal(t, "<Item: All items>", item.GoString())

	periodicity := NewPeriodicity("R", "Monthly")
	assert.Equal(t, "R", periodicity.ID())
	assert.Equal(t, "Monthly", periodicity.String())
	assert.Equal(t, "<Periodicity: Monthly>", periodicity.GoString())

	period := NewPeriod("M01", "JAN", "January")
	assert.Equal(t, "M01", period.ID())
	assert.Equal(t, "JAN", period.Abbreviation)
	assert.Equal(t, "January", period.String())
	assert.Equal(t, "<Period: January>", period.GoString())
}

func TestPeriod_Month(t *testing.T) {
	tests := []struct {
		code  string
		month int
		typ   PeriodType
	}{
		{"M13", 1, PeriodTypeAnnual},
		{"S01", 1, PeriodTypeSemiannual},
		{"S03", 1, PeriodTypeAnnual},
		{"S02", 7, PeriodTypeSemiannual},
	}
	for m := 1; m <= 12; m++ {
		tests = append(tests, struct {
			code  string
			month int
			typ   PeriodType
		}{fmt.Sprintf("M%02d", m), m, PeriodTypeMonthly})
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			p := NewPeriod(tt.code, "", "")
			month, err := p.Month()
			require.NoError(t, err)
			assert.Equal(t, tt.month, month)
			assert.Equal(t, tt.typ, p.Type())
		})
	}
}

func TestPeriod_MonthMalformed(t *testing.T) {
	_, err := NewPeriod("X99", "", "").Month()
	require.Error(t, err)

	var numErr *strconv.NumError
	assert.True(t, errors.As(err, &numErr))
}

func TestPeriodDate(t *testing.T) {
	date, err := PeriodDate(2020, NewPeriod("S02", "HALF2", "2nd Half"))
	require.NoError(t, err)
	assert.Equal(t, time.Date(2020, time.July, 1, 0, 0, 0, 0, time.UTC), date)

	_, err = PeriodDate(2020, NewPeriod("X99", "", ""))
	assert.Error(t, err)
}

func TestSeries_Codes(t *testing.T) {
	s := NewSeries("CUUR0000SA0")
	assert.Equal(t, "CUUR0000SA0", s.ID())
	assert.Equal(t, "CUUR0000SA0", s.String())
	assert.Equal(t, "<Series: CUUR0000SA0>", s.GoString())
	assert.Equal(t, "CU", s.SurveyCode())
	assert.Equal(t, "U", s.SeasonalCode())
	assert.Equal(t, "R", s.PeriodicityCode())
	assert.Equal(t, "0000", s.AreaCode())
	assert.Equal(t, "SA0", s.ItemCode())
	assert.False(t, s.Seasonal())

	long := NewSeries("CUSR0000SEFV01")
	assert.Equal(t, "SEFV01", long.ItemCode())
	assert.True(t, long.Seasonal())
}

func TestSeries_ShortID(t *testing.T) {
	s := NewSeries("CUUR00")
	assert.Equal(t, "CU", s.SurveyCode())
	assert.Equal(t, "U", s.SeasonalCode())
	assert.Equal(t, "R", s.PeriodicityCode())
	assert.Equal(t, "00", s.AreaCode())
	assert.Equal(t, "", s.ItemCode())

	empty := NewSeries("")
	assert.Equal(t, "", empty.SurveyCode())
	assert.Equal(t, "", empty.AreaCode())
}

func TestIndex(t *testing.T) {
	series := NewSeries("CUUR0000SA0")
	date := time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)
	value := decimal.RequireFromString("258.682")

	idx := NewIndex(series, date, 2020, PeriodTypeMonthly, value)
	assert.Same(t, series, idx.Series)
	assert.Equal(t, date, idx.Date)
	assert.Equal(t, 2020, idx.Year)
	assert.Equal(t, PeriodTypeMonthly, idx.PeriodType)
	assert.True(t, value.Equal(idx.Value))
	assert.Equal(t, "2020-01-01 (monthly): 258.682", idx.String())
	assert.Equal(t, "<Index: 2020-01-01 (monthly): 258.682>", idx.GoString())
}

func TestObjectList_Get(t *testing.T) {
	first := NewArea("0000", "U.S. city average")
	dup := NewArea("0000", "duplicate")
	list := ObjectList[*Area]{first, NewArea("0100", "Northeast"), dup}

	got, err := list.Get("0100")
	require.NoError(t, err)
	assert.Equal(t, "Northeast", got.Name)

	got, err = list.Get("0000")
	require.NoError(t, err)
	assert.Same(t, first, got)

	_, err = list.Get("9999")
	require.Error(t, err)
	assert.True(t, errors.Is(err, constants.ErrNotFound))
	assert.EqualError(t, err, "object with id 9999 could not be found")

	var nf *NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "9999", nf.Key)
}

func TestObjectList_ByID(t *testing.T) {
	first := NewItem("SA0", "All items")
	list := ObjectList[*Item]{first, NewItem("SAF", "Food"), NewItem("SA0", "dup")}

	byID := list.ByID()
	assert.Len(t, byID, 2)
	assert.Same(t, first, byID["SA0"])
}
