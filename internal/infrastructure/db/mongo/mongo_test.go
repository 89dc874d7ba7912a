package mongo

import (
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/99minutos/catalog-api/internal/core/domain"
	"github.com/99minutos/catalog-api/internal/core/query"
)

func TestDataFilter_Empty(t *testing.T) {
	if f := dataFilter(query.NewDataFilter("")); len(f) != 0 {
		t.Fatalf("expected empty filter, got %v", f)
	}
}

func TestDataFilter_QuotesSearch(t *testing.T) {
	f := dataFilter(query.NewDataFilter("a.b"))

	or, ok := f["$or"].(bson.A)
	if !ok || len(or) != 2 {
		t.Fatalf("expected two $or branches, got %v", f)
	}
	name := or[0].(bson.M)["name"].(primitive.Regex)
	if name.Pattern != `a\.b` || name.Options != "i" {
		t.Fatalf("unexpected name regex: %+v", name)
	}
}

func TestMapError_DuplicateKey(t *testing.T) {
	err := mongo.WriteException{WriteErrors: []mongo.WriteError{{
		Code:    11000,
		Message: `E11000 duplicate key error collection: catalog.users index: users_phone_key dup key: { phone: "555" }`,
	}}}

	mapped := mapError(err, domain.ResourceUser)
	var conflict *domain.ConflictError
	if !errors.As(mapped, &conflict) {
		t.Fatalf("expected *domain.ConflictError, got %v", mapped)
	}
	if conflict.Field != "phone" || conflict.Resource != domain.ResourceUser {
		t.Fatalf("unexpected conflict: %+v", conflict)
	}
}

func TestMapError_PassThrough(t *testing.T) {
	plain := errors.New("boom")
	if err := mapError(plain, domain.ResourceUser); err != plain {
		t.Fatalf("expected error unchanged, got %v", err)
	}
}

func TestLookupTarget(t *testing.T) {
	col, key, opts, err := lookupTarget(domain.UniqueServiceName)
	if err != nil || col != collectionServices || key != "service" {
		t.Fatalf("unexpected target: %s %s %v", col, key, err)
	}
	if opts.Collation == nil || opts.Collation.Strength != 2 {
		t.Fatalf("expected case-insensitive collation")
	}
	if _, _, _, err := lookupTarget("nope"); err == nil {
		t.Fatal("expected error for unknown field")
	}
}
