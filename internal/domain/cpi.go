package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Year = int

type PeriodType string

const (
	PeriodTypeMonthly    PeriodType = "monthly"
	PeriodTypeSemiannual PeriodType = "semiannual"
	PeriodTypeAnnual     PeriodType = "annual"
)

// Area это географическая область, где ежемесячно собираются цены.
type Area struct {
	Code string `db:"code" json:"code"`
	Name string `db:"name" json:"name"`
}

func NewArea(code, name string) *Area {
	return &Area{Code: code, Name: name}
}

func (a *Area) ID() string       { return a.Code }
func (a *Area) String() string   { return a.Name }
func (a *Area) GoString() string { return fmt.Sprintf("<Area: %s>", a) }

// Item это товар или услуга, цена которой отслеживается.
type Item struct {
	Code string `db:"code" json:"code"`
	Name string `db:"name" json:"name"`
}

func NewItem(code, name string) *Item {
	return &Item{Code: code, Name: name}
}

func (i *Item) ID() string       { return i.Code }
func (i *Item) String() string   { return i.Name }
func (i *Item) GoString() string { return fmt.Sprintf("<Item: %s>", i) }

// Periodicity задаёт интервал публикации серии.
type Periodicity struct {
	Code string `db:"code" json:"code"`
	Name string `db:"name" json:"name"`
}

func NewPeriodicity(code, name string) *Periodicity {
	return &Periodicity{Code: code, Name: name}
}

func (p *Periodicity) ID() string       { return p.Code }
func (p *Periodicity) String() string   { return p.Name }
func (p *Periodicity) GoString() string { return fmt.Sprintf("<Periodicity: %s>", p) }

// Period: месяц, полугодие или среднее за год.
type Period struct {
	Code         string `db:"code" json:"code"`
	Abbreviation string `db:"abbreviation" json:"abbreviation"`
	Name         string `db:"name" json:"name"`
}

func NewPeriod(code, abbreviation, name string) *Period {
	return &Period{Code: code, Abbreviation: abbreviation, Name: name}
}

func (p *Period) ID() string       { return p.Code }
func (p *Period) String() string   { return p.Name }
func (p *Period) GoString() string { return fmt.Sprintf("<Period: %s>", p) }

// Month возвращает номер календарного месяца периода.
// M13 (среднее за год), S01 и S03 относятся к январю, S02 к июлю.
func (p *Period) Month() (int, error) {
	switch p.Code {
	case "M13", "S01", "S03":
		return 1, nil
	case "S02":
		return 7, nil
	}

	month, err := strconv.Atoi(strings.ReplaceAll(p.Code, "M", ""))
	if err != nil {
		return 0, fmt.Errorf("period %s: %w", p.Code, err)
	}
	return month, nil
}

func (p *Period) Type() PeriodType {
	switch p.Code {
	case "M13", "S03":
		return PeriodTypeAnnual
	case "S01", "S02":
		return PeriodTypeSemiannual
	default:
		return PeriodTypeMonthly
	}
}

// PeriodDate возвращает дату, которой помечается наблюдение за year/period.
func PeriodDate(year Year, period *Period) (time.Time, error) {
	month, err := period.Month()
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC), nil
}

// Series хранит составной идентификатор вида CUUR0000SA0:
// survey(2) seasonal(1) periodicity(1) area(4) item(остаток).
type Series struct {
	SeriesID    string `db:"id" json:"id"`
	Title       string `db:"title" json:"title,omitempty"`
	BaseCode    string `db:"base_code" json:"base_code,omitempty"`
	BasePeriod  string `db:"base_period" json:"base_period,omitempty"`
	BeginYear   Year   `db:"begin_year" json:"begin_year,omitempty"`
	BeginPeriod string `db:"begin_period" json:"begin_period,omitempty"`
	EndYear     Year   `db:"end_year" json:"end_year,omitempty"`
	EndPeriod   string `db:"end_period" json:"end_period,omitempty"`
}

func NewSeries(id string) *Series {
	return &Series{SeriesID: id}
}

func (s *Series) ID() string       { return s.SeriesID }
func (s *Series) String() string   { return s.SeriesID }
func (s *Series) GoString() string { return fmt.Sprintf("<Series: %s>", s) }

func (s *Series) SurveyCode() string      { return slice(s.SeriesID, 0, 2) }
func (s *Series) SeasonalCode() string    { return slice(s.SeriesID, 2, 3) }
func (s *Series) PeriodicityCode() string { return slice(s.SeriesID, 3, 4) }
func (s *Series) AreaCode() string        { return slice(s.SeriesID, 4, 8) }
func (s *Series) ItemCode() string        { return slice(s.SeriesID, 8, len(s.SeriesID)) }

func (s *Series) Seasonal() bool {
	return s.SeasonalCode() == "S"
}

// slice не паникует на коротких строках: отдаёт пустую или неполную подстроку.
func slice(s string, from, to int) string {
	if from > len(s) {
		return ""
	}
	if to > len(s) {
		to = len(s)
	}
	return s[from:to]
}

// Index хранит опубликованное значение индекса для серии за период.
type Index struct {
	Series     *Series         `json:"series"`
	Date       time.Time       `json:"date"`
	Year       Year            `json:"year"`
	PeriodType PeriodType      `json:"period_type"`
	Value      decimal.Decimal `json:"value"`
}

func NewIndex(series *Series, date time.Time, year Year, periodType PeriodType, value decimal.Decimal) *Index {
	return &Index{
		Series:     series,
		Date:       date,
		Year:       year,
		PeriodType: periodType,
		Value:      value,
	}
}

func (i *Index) String() string {
	return fmt.Sprintf("%s (%s): %s", i.Date.Format(time.DateOnly), i.PeriodType, i.Value)
}

func (i *Index) GoString() string { return fmt.Sprintf("<Index: %s>", i) }
