package bls

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ougirez/cpi/internal/domain"
	"github.com/ougirez/cpi/internal/domain/dto"
	"github.com/shopspring/decimal"
)

// table читает tab-separated файл BLS с заголовком в первой строке.
type table struct {
	r       *csv.Reader
	columns map[string]int
	line    int
}

func newTable(r io.Reader, required ...string) (*table, error) {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(name)] = i
	}
	for _, name := range required {
		if _, ok := columns[name]; !ok {
			return nil, fmt.Errorf("missing column %q", name)
		}
	}

	return &table{r: cr, columns: columns}, nil
}

// next возвращает следующую строку, io.EOF в конце файла.
func (t *table) next() (row, error) {
	rec, err := t.r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return row{}, io.EOF
		}
		return row{}, err
	}
	t.line, _ = t.r.FieldPos(0)
	return row{t: t, rec: rec}, nil
}

type row struct {
	t   *table
	rec []string
}

func (r row) get(column string) string {
	i, ok := r.t.columns[column]
	if !ok || i >= len(r.rec) {
		return ""
	}
	return strings.TrimSpace(r.rec[i])
}

func (r row) atoi(column string) (int, error) {
	v := r.get(column)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("line %d, column %s: %w", r.t.line, column, err)
	}
	return n, nil
}

func each(r io.Reader, required []string, fn func(row) error) error {
	t, err := newTable(r, required...)
	if err != nil {
		return err
	}

	for {
		rw, err := t.next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if err = fn(rw); err != nil {
			return err
		}
	}
}

func ParseAreas(r io.Reader) ([]*domain.Area, error) {
	var res []*domain.Area
	err := each(r, []string{"area_code", "area_name"}, func(rw row) error {
		res = append(res, domain.NewArea(rw.get("area_code"), rw.get("area_name")))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse areas: %w", err)
	}
	return res, nil
}

func ParseItems(r io.Reader) ([]*domain.Item, error) {
	var res []*domain.Item
	err := each(r, []string{"item_code", "item_name"}, func(rw row) error {
		res = append(res, domain.NewItem(rw.get("item_code"), rw.get("item_name")))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse items: %w", err)
	}
	return res, nil
}

func ParsePeriods(r io.Reader) ([]*domain.Period, error) {
	var res []*domain.Period
	err := each(r, []string{"period", "period_abbr", "period_name"}, func(rw row) error {
		res = append(res, domain.NewPeriod(rw.get("period"), rw.get("period_abbr"), rw.get("period_name")))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse periods: %w", err)
	}
	return res, nil
}

func ParsePeriodicities(r io.Reader) ([]*domain.Periodicity, error) {
	var res []*domain.Periodicity
	err := each(r, []string{"periodicity_code", "periodicity_name"}, func(rw row) error {
		res = append(res, domain.NewPeriodicity(rw.get("periodicity_code"), rw.get("periodicity_name")))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse periodicities: %w", err)
	}
	return res, nil
}

func ParseSeries(r io.Reader) ([]*domain.Series, error) {
	var res []*domain.Series
	err := each(r, []string{"series_id"}, func(rw row) error {
		s := domain.NewSeries(rw.get("series_id"))
		s.Title = rw.get("series_title")
		s.BaseCode = rw.get("base_code")
		s.BasePeriod = rw.get("base_period")
		s.BeginPeriod = rw.get("begin_period")
		s.EndPeriod = rw.get("end_period")

		var err error
		if s.BeginYear, err = rw.atoi("begin_year"); err != nil {
			return err
		}
		if s.EndYear, err = rw.atoi("end_year"); err != nil {
			return err
		}

		res = append(res, s)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse series: %w", err)
	}
	return res, nil
}

func ParseObservations(r io.Reader) ([]dto.Observation, error) {
	var res []dto.Observation
	err := each(r, []string{"series_id", "year", "period", "value"}, func(rw row) error {
		year, err := rw.atoi("year")
		if err != nil {
			return err
		}

		value, err := decimal.NewFromString(rw.get("value"))
		if err != nil {
			return fmt.Errorf("line %d, column value: %w", rw.t.line, err)
		}

		res = append(res, dto.Observation{
			SeriesID: rw.get("series_id"),
			Year:     year,
			Period:   rw.get("period"),
			Value:    value,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse observations: %w", err)
	}
	return res, nil
}
