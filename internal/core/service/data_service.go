package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/99minutos/catalog-api/internal/core/domain"
	"github.com/99minutos/catalog-api/internal/core/ports"
	"github.com/99minutos/catalog-api/internal/core/query"
	"github.com/99minutos/catalog-api/internal/core/validation"
)

type dataService struct {
	repo   ports.DataRepository
	schema *validation.DataSchema
	log    zerolog.Logger
}

// NewDataService returns a DataService implementation.
func NewDataService(repo ports.DataRepository, log zerolog.Logger) ports.DataService {
	return &dataService{repo: repo, schema: validation.NewDataSchema(), log: log}
}

func (s *dataService) Create(ctx context.Context, in validation.Input) (*domain.Data, error) {
	d, err := s.schema.Validate(in)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, &d)
	if err != nil {
		return nil, err
	}

	s.log.Info().Int64("data_id", created.ID).Msg("data created")
	return created, nil
}

func (s *dataService) Get(ctx context.Context, id int64) (*domain.Data, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *dataService) List(ctx context.Context, params query.ListParams) (*query.Page[*domain.Data], error) {
	filter, req, err := params.Parse()
	if err != nil {
		return nil, err
	}

	items, total, err := s.repo.List(ctx, filter, req)
	if err != nil {
		return nil, err
	}
	return query.NewPage(req, total, items), nil
}

func (s *dataService) Export(ctx context.Context, search string) ([]*domain.Data, error) {
	items, err := s.repo.Export(ctx, query.NewDataFilter(search))
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []*domain.Data{}
	}
	return items, nil
}

// Update applies the fields present in in. Absent fields keep their value.
func (s *dataService) Update(ctx context.Context, id int64, in validation.Input) (*domain.Data, error) {
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	patch, err := s.schema.Partial(in)
	if err != nil {
		return nil, err
	}
	if patch.Empty() {
		return current, nil
	}

	next := patch.Apply(*current)
	updated, err := s.repo.Update(ctx, &next)
	if err != nil {
		return nil, err
	}

	s.log.Info().Int64("data_id", id).Msg("data updated")
	return updated, nil
}

func (s *dataService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Int64("data_id", id).Msg("data deleted")
	return nil
}
