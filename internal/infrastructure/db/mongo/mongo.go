// Package mongo is the document Persistence Store. Records keep integer ids
// drawn from a counters collection so they are interchangeable with the
// relational store.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/99minutos/catalog-api/internal/core/domain"
	"github.com/99minutos/catalog-api/internal/core/ports"
)

const (
	defaultTimeout = 10 * time.Second

	collectionUsers    = "users"
	collectionData     = "data"
	collectionServices = "services"
	collectionCounters = "counters"
)

// caseInsensitive compares strings ignoring case, for the service name index.
var caseInsensitive = &options.Collation{Locale: "en", Strength: 2}

// Config captures the minimal settings required to establish a MongoDB connection.
type Config struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// Connect establishes a MongoDB client, verifies connectivity with a ping, and
// returns both the client and the selected database. A default timeout is
// applied when none is provided.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, *mongo.Database, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}

	db := client.Database(cfg.Database)
	return client, db, nil
}

// NewStore bundles the Mongo repositories. EnsureIndexes must have run for
// the unique constraints to hold.
func NewStore(db *mongo.Database, log zerolog.Logger) ports.Store {
	seq := &sequence{col: db.Collection(collectionCounters)}
	return ports.Store{
		Users:    NewUserRepository(db, seq),
		Data:     NewDataRepository(db, seq),
		Services: NewServiceRepository(db, seq),
		Lookup:   NewLookup(db),
		Ping: func(ctx context.Context) error {
			return db.Client().Ping(ctx, nil)
		},
		Close: func(ctx context.Context) error {
			log.Info().Msg("disconnecting from mongo")
			return db.Client().Disconnect(ctx)
		},
	}
}

// EnsureIndexes creates the unique indexes backing the uniqueness rules.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := db.Collection(collectionUsers).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true).SetName("users_email_key")},
		{Keys: bson.D{{Key: "phone", Value: 1}}, Options: options.Index().SetUnique(true).SetName("users_phone_key")},
	})
	if err != nil {
		return fmt.Errorf("users indexes: %w", err)
	}

	_, err = db.Collection(collectionServices).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "service", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("services_service_key").SetCollation(caseInsensitive),
	})
	if err != nil {
		return fmt.Errorf("services indexes: %w", err)
	}
	return nil
}

// sequence hands out increasing integer ids per collection.
type sequence struct {
	col *mongo.Collection
}

func (s *sequence) next(ctx context.Context, name string) (int64, error) {
	var doc struct {
		Seq int64 `bson:"seq"`
	}
	err := s.col.FindOneAndUpdate(ctx,
		bson.M{"_id": name},
		bson.M{"$inc": bson.M{"seq": 1}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return 0, fmt.Errorf("next %s id: %w", name, err)
	}
	return doc.Seq, nil
}

var duplicateIndex = regexp.MustCompile(`index: (\S+)`)

// mapError turns a duplicate key error into a *domain.ConflictError.
func mapError(err error, resource string) error {
	if !mongo.IsDuplicateKeyError(err) {
		return err
	}
	field := ""
	if m := duplicateIndex.FindStringSubmatch(err.Error()); len(m) == 2 {
		parts := strings.Split(m[1], "_")
		if len(parts) == 3 && parts[2] == "key" {
			field = parts[1]
		}
	}
	return domain.NewConflict(resource, field)
}

func isNoDocuments(err error) bool {
	return errors.Is(err, mongo.ErrNoDocuments)
}
