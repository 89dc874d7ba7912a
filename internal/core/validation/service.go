package validation

import (
	"context"
	"fmt"

	"github.com/99minutos/catalog-api/internal/core/domain"
)

var (
	serviceName  = field{name: "service", required: "Enter user-friendly service name.", invalid: "Invalid service format."}
	servicePrice = field{name: "price", required: "Please enter your service charge.", invalid: "Price must be a number."}
	serviceImage = field{name: "image", invalid: imageExtsMessage}
)

// ServiceSchema validates Service records. The name must be unique
// case-insensitively among other services.
type ServiceSchema struct {
	lookup UniquenessLookup
	check  *checker
}

func NewServiceSchema(lookup UniquenessLookup) *ServiceSchema {
	return &ServiceSchema{lookup: lookup, check: newChecker()}
}

// Validate checks a full record. currentID is the id of the record being
// replaced, or zero on create, and is excluded from the uniqueness check.
func (s *ServiceSchema) Validate(ctx context.Context, in Input, currentID int64) (domain.ServiceDraft, error) {
	patch, err := s.validate(ctx, in, currentID, true)
	if err != nil {
		return domain.ServiceDraft{}, err
	}
	return domain.ServiceDraft{Name: *patch.Name, Price: *patch.Price}, nil
}

// Partial validates only the fields present in in.
func (s *ServiceSchema) Partial(ctx context.Context, in Input, currentID int64) (domain.ServicePatch, error) {
	return s.validate(ctx, in, currentID, false)
}

func (s *ServiceSchema) validate(ctx context.Context, in Input, currentID int64, required bool) (domain.ServicePatch, error) {
	errs := Errors{}
	var patch domain.ServicePatch

	name, present, ok := in.str(serviceName, errs, required)
	if present && ok {
		s.check.apply(errs, serviceName.name, name, lengthRule(5, 200))
		if err := unique(ctx, s.lookup, errs, serviceName.name, domain.UniqueServiceName, name, currentID, false,
			fmt.Sprintf("Service '%s' already exists.", name)); err != nil {
			return domain.ServicePatch{}, err
		}
		patch.Name = &name
	}

	price, present, ok := in.float(servicePrice, errs, required)
	if present && ok {
		s.check.apply(errs, servicePrice.name, price, rangeRule(100, 5000))
		patch.Price = &price
	}

	// A raw filename is checked but never recorded; only uploads set the image.
	image, present, ok := in.str(serviceImage, errs, false)
	if present && ok && image != "" {
		s.check.apply(errs, serviceImage.name, image, imageRules...)
	}

	if err := errs.err(); err != nil {
		return domain.ServicePatch{}, err
	}
	return patch, nil
}
