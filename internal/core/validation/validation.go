// Package validation turns raw request fields into typed, validated values.
//
// Input arrives as a flat field-name to value mapping, from either a form body
// (string values) or a JSON body (scalars). Each schema either returns a fully
// validated value or Errors keyed by field name; nothing is partially applied.
//
// Uniqueness rules call a UniquenessLookup supplied at construction. Those
// checks are advisory: concurrent requests can pass them together, and the
// store's unique constraints decide at commit.
package validation

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/99minutos/catalog-api/internal/core/domain"
)

// Input is one request body, keyed by field name.
type Input map[string]any

// UniquenessLookup answers existence checks against the store.
type UniquenessLookup interface {
	// Exists reports whether a record other than excludeID holds value for field.
	// A zero excludeID excludes nothing.
	Exists(ctx context.Context, field domain.UniqueField, value string, excludeID int64) (bool, error)
}

// Errors maps a field name to its human-readable messages.
type Errors map[string][]string

func (e Errors) Add(field, msg string) {
	e[field] = append(e[field], msg)
}

func (e Errors) Has(field string) bool {
	return len(e[field]) > 0
}

func (e Errors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+strings.Join(e[f], " "))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// err returns e as an error, or nil when empty.
func (e Errors) err() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

// field describes the dedicated messages of one input field.
type field struct {
	name     string
	required string
	invalid  string
}

func (in Input) get(name string) (any, bool) {
	v, ok := in[name]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// str reads a string field. present is false when the field is absent;
// ok is false when a message was recorded.
func (in Input) str(f field, errs Errors, required bool) (value string, present, ok bool) {
	raw, found := in.get(f.name)
	if !found {
		if required {
			errs.Add(f.name, f.required)
		}
		return "", false, !required
	}
	s, isString := raw.(string)
	if !isString {
		errs.Add(f.name, f.invalid)
		return "", true, false
	}
	return s, true, true
}

func (in Input) integer(f field, errs Errors, required bool) (value int, present, ok bool) {
	raw, found := in.get(f.name)
	if !found {
		if required {
			errs.Add(f.name, f.required)
		}
		return 0, false, !required
	}
	n, valid := toInt(raw)
	if !valid {
		errs.Add(f.name, f.invalid)
		return 0, true, false
	}
	return n, true, true
}

func (in Input) float(f field, errs Errors, required bool) (value float64, present, ok bool) {
	raw, found := in.get(f.name)
	if !found {
		if required {
			errs.Add(f.name, f.required)
		}
		return 0, false, !required
	}
	n, valid := toFloat(raw)
	if !valid {
		errs.Add(f.name, f.invalid)
		return 0, true, false
	}
	return n, true, true
}

func toInt(raw any) (int, bool) {
	switch v := raw.(type) {
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		return n, err == nil
	case json.Number:
		if n, err := strconv.Atoi(v.String()); err == nil {
			return n, true
		}
		f, err := v.Float64()
		if err != nil {
			return 0, false
		}
		return wholeNumber(f)
	case float64:
		return wholeNumber(v)
	case int:
		return v, true
	case int64:
		return int(v), true
	}
	return 0, false
}

// wholeNumber accepts integral floats such as 30.0.
func wholeNumber(f float64) (int, bool) {
	if f != math.Trunc(f) || math.IsInf(f, 0) || f > math.MaxInt32 || f < math.MinInt32 {
		return 0, false
	}
	return int(f), true
}

func toFloat(raw any) (float64, bool) {
	var (
		n   float64
		err error
	)
	switch v := raw.(type) {
	case string:
		n, err = strconv.ParseFloat(strings.TrimSpace(v), 64)
	case json.Number:
		n, err = v.Float64()
	case float64:
		n = v
	case int:
		n = float64(v)
	case int64:
		n = float64(v)
	default:
		return 0, false
	}
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}

// unique records msg on name when the lookup result disagrees with wantExists.
// The lookup is skipped when the field already failed a format rule.
func unique(ctx context.Context, lookup UniquenessLookup, errs Errors, name string,
	uf domain.UniqueField, value string, excludeID int64, wantExists bool, msg string) error {
	if errs.Has(name) {
		return nil
	}
	exists, err := lookup.Exists(ctx, uf, value, excludeID)
	if err != nil {
		return fmt.Errorf("uniqueness check %s: %w", uf, err)
	}
	if exists != wantExists {
		errs.Add(name, msg)
	}
	return nil
}
