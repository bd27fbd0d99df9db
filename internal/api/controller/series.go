package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/ougirez/cpi/internal/domain"
	"github.com/ougirez/cpi/internal/pkg/constants"
	"github.com/ougirez/cpi/internal/pkg/store"
)

type getSeriesRequest struct {
	ID string `param:"id" validate:"required"`
}

func (c *Controller) GetSeries(ctx echo.Context) error {
	var req getSeriesRequest
	if err := ctx.Bind(&req); err != nil {
		return err
	}

	series, err := c.service.GetSeries(ctx.Request().Context(), req.ID)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, series)
}

type listIndexesRequest struct {
	ID         string `param:"id" validate:"required"`
	FromYear   int    `query:"from_year" validate:"omitempty,gte=1900"`
	ToYear     int    `query:"to_year" validate:"omitempty,gte=1900"`
	PeriodType string `query:"period_type" validate:"omitempty,oneof=monthly semiannual annual"`
}

func (r *listIndexesRequest) opts() (store.ListIndexesOpts, error) {
	opts := store.ListIndexesOpts{SeriesID: r.ID}
	if r.FromYear != 0 {
		opts.FromYear = &r.FromYear
	}
	if r.ToYear != 0 {
		opts.ToYear = &r.ToYear
	}
	if opts.FromYear != nil && opts.ToYear != nil && r.FromYear > r.ToYear {
		return opts, constants.NewCodedError("from_year is after to_year", http.StatusBadRequest)
	}
	if r.PeriodType != "" {
		periodType := domain.PeriodType(r.PeriodType)
		opts.PeriodType = &periodType
	}
	return opts, nil
}

func (c *Controller) ListIndexes(ctx echo.Context) error {
	var req listIndexesRequest
	if err := ctx.Bind(&req); err != nil {
		return err
	}

	opts, err := req.opts()
	if err != nil {
		return err
	}

	indexes, err := c.service.ListIndexes(ctx.Request().Context(), opts)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, indexes)
}
