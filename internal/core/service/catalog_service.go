package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/99minutos/catalog-api/internal/core/domain"
	"github.com/99minutos/catalog-api/internal/core/ports"
	"github.com/99minutos/catalog-api/internal/core/validation"
)

type catalogService struct {
	repo     ports.ServiceRepository
	schema   *validation.ServiceSchema
	uploader *ImageUploader
	log      zerolog.Logger
}

// NewCatalogService returns a CatalogService implementation.
func NewCatalogService(
	repo ports.ServiceRepository,
	lookup validation.UniquenessLookup,
	uploader *ImageUploader,
	log zerolog.Logger,
) ports.CatalogService {
	return &catalogService{
		repo:     repo,
		schema:   validation.NewServiceSchema(lookup),
		uploader: uploader,
		log:      log,
	}
}

// Create validates in, stores the optional image and persists the service.
// Nothing is written when validation fails.
func (s *catalogService) Create(ctx context.Context, in validation.Input, image *ports.ImageUpload) (*domain.Service, error) {
	draft, err := s.schema.Validate(ctx, in, 0)
	if err != nil {
		return nil, err
	}

	svc := &domain.Service{Name: draft.Name, Price: draft.Price}
	if image != nil {
		name, err := s.uploader.Store(ctx, image)
		if err != nil {
			return nil, err
		}
		svc.Image = &name
	}

	created, err := s.repo.Create(ctx, svc)
	if err != nil {
		return nil, err
	}

	s.log.Info().Int64("service_id", created.ID).Str("service", created.Name).Msg("service created")
	return created, nil
}

func (s *catalogService) Get(ctx context.Context, id int64) (*domain.Service, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *catalogService) List(ctx context.Context) ([]*domain.Service, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []*domain.Service{}
	}
	return items, nil
}

// Update applies the fields present in in and replaces the image when one is
// uploaded. The previous image file is left in place.
func (s *catalogService) Update(ctx context.Context, id int64, in validation.Input, image *ports.ImageUpload) (*domain.Service, error) {
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	patch, err := s.schema.Partial(ctx, in, id)
	if err != nil {
		return nil, err
	}

	if image != nil {
		name, err := s.uploader.Store(ctx, image)
		if err != nil {
			return nil, err
		}
		patch.Image = &name
	}

	next := patch.Apply(*current)
	updated, err := s.repo.Update(ctx, &next)
	if err != nil {
		return nil, err
	}

	s.log.Info().Int64("service_id", id).Msg("service updated")
	return updated, nil
}

// Delete removes the service and returns the removed record.
func (s *catalogService) Delete(ctx context.Context, id int64) (*domain.Service, error) {
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, err
	}

	s.log.Info().Int64("service_id", id).Msg("service deleted")
	return current, nil
}
