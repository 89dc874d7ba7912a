package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/99minutos/catalog-api/internal/core/domain"
)

type serviceDoc struct {
	ID        int64     `bson:"_id"`
	Service   string    `bson:"service"`
	Price     float64   `bson:"price"`
	Image     *string   `bson:"image"`
	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

func (d serviceDoc) toDomain() *domain.Service {
	return &domain.Service{
		ID:        d.ID,
		Name:      d.Service,
		Price:     d.Price,
		Image:     d.Image,
		CreatedAt: d.CreatedAt.UTC(),
		UpdatedAt: d.UpdatedAt.UTC(),
	}
}

type ServiceRepository struct {
	col *mongo.Collection
	seq *sequence
}

func NewServiceRepository(db *mongo.Database, seq *sequence) *ServiceRepository {
	return &ServiceRepository{col: db.Collection(collectionServices), seq: seq}
}

func now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

func (r *ServiceRepository) Create(ctx context.Context, s *domain.Service) (*domain.Service, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := r.seq.next(ctx, collectionServices)
	if err != nil {
		return nil, err
	}
	ts := now()
	doc := serviceDoc{ID: id, Service: s.Name, Price: s.Price, Image: s.Image, CreatedAt: ts, UpdatedAt: ts}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert service: %w", mapError(err, domain.ResourceService))
	}
	return doc.toDomain(), nil
}

func (r *ServiceRepository) FindByID(ctx context.Context, id int64) (*domain.Service, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc serviceDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if isNoDocuments(err) {
			return nil, domain.NewNotFound(domain.ResourceService, id)
		}
		return nil, fmt.Errorf("find service: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *ServiceRepository) List(ctx context.Context) ([]*domain.Service, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	var docs []serviceDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode services: %w", err)
	}

	out := make([]*domain.Service, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

func (r *ServiceRepository) Update(ctx context.Context, s *domain.Service) (*domain.Service, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc serviceDoc
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": s.ID},
		bson.M{"$set": bson.M{"service": s.Name, "price": s.Price, "image": s.Image, "updated_at": now()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if isNoDocuments(err) {
		return nil, domain.NewNotFound(domain.ResourceService, s.ID)
	}
	if err != nil {
		return nil, fmt.Errorf("update service: %w", mapError(err, domain.ResourceService))
	}
	return doc.toDomain(), nil
}

func (r *ServiceRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete service: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.NewNotFound(domain.ResourceService, id)
	}
	return nil
}
