package store

import (
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/ougirez/cpi/internal/pkg/constants"
)

const (
	tableAreas         = "areas"
	tableItems         = "items"
	tablePeriods       = "periods"
	tablePeriodicities = "periodicities"
	tableSeries        = "series"
	tableIndexes       = "indexes"

	// postgres ограничивает число параметров в запросе 65535
	batchSize = 1000
)

var mapping = map[error]error{pgx.ErrNoRows: constants.ErrDBNotFound}

func wrapErr(err error) error {
	for k, v := range mapping {
		if errors.Is(err, k) {
			return v
		}
	}
	return err
}

// builder возвращает squirrel SQL Builder обьект.
func builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}
