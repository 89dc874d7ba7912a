package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/99minutos/catalog-api/internal/core/domain"
)

// Lookup answers uniqueness pre-checks with indexed counts.
type Lookup struct {
	db *mongo.Database
}

func NewLookup(db *mongo.Database) *Lookup {
	return &Lookup{db: db}
}

func (l *Lookup) Exists(ctx context.Context, field domain.UniqueField, value string, excludeID int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	collection, key, opts, err := lookupTarget(field)
	if err != nil {
		return false, err
	}
	filter := bson.M{key: value, "_id": bson.M{"$ne": excludeID}}

	n, err := l.db.Collection(collection).CountDocuments(ctx, filter, opts.SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("exists %s: %w", field, err)
	}
	return n > 0, nil
}

func lookupTarget(field domain.UniqueField) (collection, key string, opts *options.CountOptions, err error) {
	opts = options.Count()
	switch field {
	case domain.UniqueUserEmail:
		return collectionUsers, "email", opts, nil
	case domain.UniqueUserPhone:
		return collectionUsers, "phone", opts, nil
	case domain.UniqueServiceName:
		return collectionServices, "service", opts.SetCollation(caseInsensitive), nil
	}
	return "", "", nil, fmt.Errorf("unknown unique field %q", field)
}
