package validation

import (
	"strings"

	"github.com/99minutos/catalog-api/internal/core/domain"
)

var (
	dataName = field{name: "name", required: "Name is required.", invalid: "Invalid name format."}
	dataAge  = field{name: "age", required: "Age is required.", invalid: "Age must be a number."}
)

// DataSchema validates Data records. Names are trimmed before the length
// check and stored trimmed.
type DataSchema struct {
	check *checker
}

func NewDataSchema() *DataSchema {
	return &DataSchema{check: newChecker()}
}

func (s *DataSchema) Validate(in Input) (domain.Data, error) {
	patch, err := s.validate(in, true)
	if err != nil {
		return domain.Data{}, err
	}
	return patch.Apply(domain.Data{}), nil
}

// Partial validates only the fields present in in.
func (s *DataSchema) Partial(in Input) (domain.DataPatch, error) {
	return s.validate(in, false)
}

func (s *DataSchema) validate(in Input, required bool) (domain.DataPatch, error) {
	errs := Errors{}
	var patch domain.DataPatch

	name, present, ok := in.str(dataName, errs, required)
	if present && ok {
		name = strings.TrimSpace(name)
		s.check.apply(errs, dataName.name, name, lengthRule(2, 30))
		patch.Name = &name
	}

	age, present, ok := in.integer(dataAge, errs, required)
	if present && ok {
		s.check.apply(errs, dataAge.name, age, rangeRule(0, 120))
		patch.Age = &age
	}

	if err := errs.err(); err != nil {
		return domain.DataPatch{}, err
	}
	return patch, nil
}
