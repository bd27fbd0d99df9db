package cpi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/ougirez/cpi/internal/domain"
	"github.com/ougirez/cpi/internal/domain/dto"
	"github.com/ougirez/cpi/internal/pkg/bls"
	"github.com/ougirez/cpi/internal/pkg/constants"
	"github.com/ougirez/cpi/internal/pkg/logger"
	"github.com/ougirez/cpi/internal/pkg/store"
	"golang.org/x/sync/errgroup"
)

// Source отдаёт файлы BLS, в проде это *bls.Client.
type Source interface {
	Open(ctx context.Context, name string) (io.Reader, error)
	ListFiles(ctx context.Context) ([]string, error)
}

type Service struct {
	store      store.Store
	source     Source
	dataPrefix string
}

func NewCPIService(store store.Store, source Source, dataPrefix string) *Service {
	return &Service{store: store, source: source, dataPrefix: dataPrefix}
}

type BackfillResult struct {
	RunID         uuid.UUID `json:"run_id"`
	DataFiles     []string  `json:"data_files"`
	Areas         int       `json:"areas"`
	Items         int       `json:"items"`
	Periods       int       `json:"periods"`
	Periodicities int       `json:"periodicities"`
	Series        int       `json:"series"`
	Indexes       int       `json:"indexes"`
}

// Backfill скачивает справочники и файлы данных, прописывает всё в базу.
func (s *Service) Backfill(ctx context.Context) (*BackfillResult, error) {
	res := &BackfillResult{RunID: uuid.New()}
	ctx = logger.WithFields(ctx, "run_id", res.RunID.String())

	catalog, err := s.loadCatalog(ctx)
	if err != nil {
		return nil, fmt.Errorf("loadCatalog: %w", err)
	}

	res.DataFiles, err = s.dataFiles(ctx)
	if err != nil {
		return nil, fmt.Errorf("dataFiles: %w", err)
	}

	observations, err := s.loadObservations(ctx, res.DataFiles)
	if err != nil {
		return nil, fmt.Errorf("loadObservations: %w", err)
	}

	indexes, err := catalog.Indexes(observations)
	if err != nil {
		return nil, fmt.Errorf("catalog.Indexes: %w", err)
	}

	// series раньше indexes из-за внешнего ключа
	steps := []struct {
		name   string
		insert func() error
	}{
		{"areas", func() error { return s.store.InsertAreas(ctx, catalog.Areas) }},
		{"items", func() error { return s.store.InsertItems(ctx, catalog.Items) }},
		{"periods", func() error { return s.store.InsertPeriods(ctx, catalog.Periods) }},
		{"periodicities", func() error { return s.store.InsertPeriodicities(ctx, catalog.Periodicities) }},
		{"series", func() error { return s.store.InsertSeries(ctx, catalog.Series) }},
		{"indexes", func() error { return s.store.InsertIndexes(ctx, indexes) }},
	}
	for _, step := range steps {
		if err = step.insert(); err != nil {
			logger.Errorf(ctx, "insert %s: %s", step.name, err.Error())
			return nil, fmt.Errorf("insert %s: %w", step.name, err)
		}
	}

	res.Areas = len(catalog.Areas)
	res.Items = len(catalog.Items)
	res.Periods = len(catalog.Periods)
	res.Periodicities = len(catalog.Periodicities)
	res.Series = len(catalog.Series)
	res.Indexes = len(indexes)

	logger.Infof(ctx, "backfill done: %d series, %d indexes from %d files", res.Series, res.Indexes, len(res.DataFiles))
	return res, nil
}

func (s *Service) loadCatalog(ctx context.Context) (*dto.Catalog, error) {
	catalog := dto.NewCatalog()
	eg, egCtx := errgroup.WithContext(ctx)

	load := func(name string, put func(r io.Reader) error) {
		eg.Go(func() error {
			r, err := s.source.Open(egCtx, name)
			if err != nil {
				return err
			}
			if err = put(r); err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			logger.Debugf(egCtx, "parsed %s", name)
			return nil
		})
	}

	load(bls.FileAreas, func(r io.Reader) error {
		areas, err := bls.ParseAreas(r)
		catalog.PutAreas(areas)
		return err
	})
	load(bls.FileItems, func(r io.Reader) error {
		items, err := bls.ParseItems(r)
		catalog.PutItems(items)
		return err
	})
	load(bls.FilePeriods, func(r io.Reader) error {
		periods, err := bls.ParsePeriods(r)
		catalog.PutPeriods(periods)
		return err
	})
	load(bls.FilePeriodicities, func(r io.Reader) error {
		periodicities, err := bls.ParsePeriodicities(r)
		catalog.PutPeriodicities(periodicities)
		return err
	})
	load(bls.FileSeries, func(r io.Reader) error {
		series, err := bls.ParseSeries(r)
		catalog.PutSeries(series)
		return err
	})

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return catalog, nil
}

func (s *Service) dataFiles(ctx context.Context) ([]string, error) {
	files, err := s.source.ListFiles(ctx)
	if err != nil {
		return nil, err
	}

	res := make([]string, 0, len(files))
	for _, f := range files {
		if strings.HasPrefix(f, s.dataPrefix) {
			res = append(res, f)
		}
	}
	if len(res) == 0 {
		return nil, fmt.Errorf("no data files with prefix %q", s.dataPrefix)
	}
	return res, nil
}

func (s *Service) loadObservations(ctx context.Context, files []string) ([]dto.Observation, error) {
	var (
		res   []dto.Observation
		resMx sync.Mutex
	)

	eg, egCtx := errgroup.WithContext(ctx)
	for _, name := range files {
		name := name
		eg.Go(func() error {
			r, err := s.source.Open(egCtx, name)
			if err != nil {
				return err
			}

			observations, err := bls.ParseObservations(r)
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}

			logger.Infof(egCtx, "parsed %d observations from %s", len(observations), name)

			resMx.Lock()
			defer resMx.Unlock()
			res = append(res, observations...)
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *Service) ListAreas(ctx context.Context) (domain.ObjectList[*domain.Area], error) {
	areas, err := s.store.ListAreas(ctx)
	if err != nil {
		return nil, fmt.Errorf("store.ListAreas: %w", err)
	}
	return areas, nil
}

func (s *Service) ListItems(ctx context.Context) (domain.ObjectList[*domain.Item], error) {
	items, err := s.store.ListItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("store.ListItems: %w", err)
	}
	return items, nil
}

func (s *Service) ListPeriods(ctx context.Context) (domain.ObjectList[*domain.Period], error) {
	periods, err := s.store.ListPeriods(ctx)
	if err != nil {
		return nil, fmt.Errorf("store.ListPeriods: %w", err)
	}
	return periods, nil
}

func (s *Service) ListPeriodicities(ctx context.Context) (domain.ObjectList[*domain.Periodicity], error) {
	periodicities, err := s.store.ListPeriodicities(ctx)
	if err != nil {
		return nil, fmt.Errorf("store.ListPeriodicities: %w", err)
	}
	return periodicities, nil
}

// GetSeries возвращает серию с разобранными кодами и привязанными area, item и periodicity.
// Если справочника для кода нет, соответствующее поле остаётся пустым.
func (s *Service) GetSeries(ctx context.Context, id string) (*domain.SeriesView, error) {
	series, err := s.store.GetSeries(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("store.GetSeries: %w", err)
	}

	view := domain.NewSeriesView(series)

	// справочника для кода может не быть, тогда поле view остаётся nil

	areas, err := s.ListAreas(ctx)
	if err != nil {
		return nil, err
	}
	if view.Area, err = lookup(areas, series.AreaCode()); err != nil {
		return nil, err
	}

	items, err := s.ListItems(ctx)
	if err != nil {
		return nil, err
	}
	if view.Item, err = lookup(items, series.ItemCode()); err != nil {
		return nil, err
	}

	periodicities, err := s.ListPeriodicities(ctx)
	if err != nil {
		return nil, err
	}
	if view.Periodicity, err = lookup(periodicities, series.PeriodicityCode()); err != nil {
		return nil, err
	}

	return view, nil
}

func lookup[T domain.Identified](list domain.ObjectList[T], key string) (T, error) {
	obj, err := list.Get(key)
	if errors.Is(err, constants.ErrNotFound) {
		var zero T
		return zero, nil
	}
	return obj, err
}

func (s *Service) ListIndexes(ctx context.Context, opts store.ListIndexesOpts) ([]*domain.Index, error) {
	indexes, err := s.store.ListIndexes(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("store.ListIndexes: %w", err)
	}
	return indexes, nil
}
