package mongo

import (
	"context"
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/99minutos/catalog-api/internal/core/domain"
	"github.com/99minutos/catalog-api/internal/core/query"
)

type dataDoc struct {
	ID   int64  `bson:"_id"`
	Name string `bson:"name"`
	Age  int    `bson:"age"`
}

type DataRepository struct {
	col *mongo.Collection
	seq *sequence
}

func NewDataRepository(db *mongo.Database, seq *sequence) *DataRepository {
	return &DataRepository{col: db.Collection(collectionData), seq: seq}
}

// dataFilter matches the search text literally against the name, ignoring
// case, or against the decimal rendering of the age.
func dataFilter(f query.DataFilter) bson.M {
	if !f.Active() {
		return bson.M{}
	}
	pattern := regexp.QuoteMeta(f.Search)
	return bson.M{"$or": bson.A{
		bson.M{"name": primitive.Regex{Pattern: pattern, Options: "i"}},
		bson.M{"$expr": bson.M{"$regexMatch": bson.M{
			"input": bson.M{"$toString": "$age"},
			"regex": pattern,
		}}},
	}}
}

func (r *DataRepository) Create(ctx context.Context, d *domain.Data) (*domain.Data, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := r.seq.next(ctx, collectionData)
	if err != nil {
		return nil, err
	}
	if _, err := r.col.InsertOne(ctx, dataDoc{ID: id, Name: d.Name, Age: d.Age}); err != nil {
		return nil, fmt.Errorf("insert data: %w", mapError(err, domain.ResourceData))
	}
	created := *d
	created.ID = id
	return &created, nil
}

func (r *DataRepository) FindByID(ctx context.Context, id int64) (*domain.Data, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc dataDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if isNoDocuments(err) {
			return nil, domain.NewNotFound(domain.ResourceData, id)
		}
		return nil, fmt.Errorf("find data: %w", err)
	}
	return &domain.Data{ID: doc.ID, Name: doc.Name, Age: doc.Age}, nil
}

func (r *DataRepository) List(ctx context.Context, filter query.DataFilter, page query.PageRequest) ([]*domain.Data, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := dataFilter(filter)
	total, err := r.col.CountDocuments(ctx, doc)
	if err != nil {
		return nil, 0, fmt.Errorf("count data: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetSkip(int64(page.Offset())).
		SetLimit(int64(page.PerPage))
	items, err := r.find(ctx, doc, opts)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *DataRepository) Export(ctx context.Context, filter query.DataFilter) ([]*domain.Data, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return r.find(ctx, dataFilter(filter), options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
}

func (r *DataRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*domain.Data, error) {
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find data: %w", err)
	}
	var docs []dataDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode data: %w", err)
	}

	out := make([]*domain.Data, 0, len(docs))
	for _, d := range docs {
		out = append(out, &domain.Data{ID: d.ID, Name: d.Name, Age: d.Age})
	}
	return out, nil
}

func (r *DataRepository) Update(ctx context.Context, d *domain.Data) (*domain.Data, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateByID(ctx, d.ID, bson.M{"$set": bson.M{"name": d.Name, "age": d.Age}})
	if err != nil {
		return nil, fmt.Errorf("update data: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.NewNotFound(domain.ResourceData, d.ID)
	}
	updated := *d
	return &updated, nil
}

func (r *DataRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete data: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.NewNotFound(domain.ResourceData, id)
	}
	return nil
}
