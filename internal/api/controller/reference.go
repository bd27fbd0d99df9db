package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func (c *Controller) ListAreas(ctx echo.Context) error {
	areas, err := c.service.ListAreas(ctx.Request().Context())
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, areas)
}

func (c *Controller) ListItems(ctx echo.Context) error {
	items, err := c.service.ListItems(ctx.Request().Context())
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, items)
}

func (c *Controller) ListPeriods(ctx echo.Context) error {
	periods, err := c.service.ListPeriods(ctx.Request().Context())
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, periods)
}

func (c *Controller) ListPeriodicities(ctx echo.Context) error {
	periodicities, err := c.service.ListPeriodicities(ctx.Request().Context())
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, periodicities)
}
