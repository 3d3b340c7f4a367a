// Package mongostore provides a MongoDB-backed implementation of store.Store.
//
// Each key is one document of the records collection:
//
//	{"_id": key, "value": "<json>", "updated_at": ISODate}
package mongostore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/etnz/wealth/store"
)

// CollectionName is the collection holding the records.
const CollectionName = "records"

var _ store.Store = (*Store)(nil)

// Collection is the subset of *mongo.Collection the store needs.
type Collection interface {
	FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) *mongo.SingleResult
	ReplaceOne(ctx context.Context, filter interface{}, replacement interface{}, opts ...*options.ReplaceOptions) (*mongo.UpdateResult, error)
	DeleteOne(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) (*mongo.DeleteResult, error)
}

type document struct {
	Key       string    `bson:"_id"`
	Value     string    `bson:"value"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// Store keeps values in a MongoDB collection.
type Store struct {
	coll   Collection
	client *mongo.Client // nil when built from a bare collection
}

// New returns a store over coll. Close and Ping are no-ops.
func New(coll Collection) *Store {
	return &Store{coll: coll}
}

// Connect dials uri and returns a store over the records collection of
// database.
func Connect(ctx context.Context, uri, database string) (*Store, error) {
	client, err := ConnectToMongoDB(ctx, uri)
	if err != nil {
		return nil, err
	}
	return &Store{
		coll:   client.Database(database).Collection(CollectionName),
		client: client,
	}, nil
}

// ConnectToMongoDB establishes a connection to MongoDB.
func ConnectToMongoDB(ctx context.Context, uri string) (*mongo.Client, error) {
	slog.DebugContext(ctx, "Attempting to connect to MongoDB", "uri", uri)

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	slog.InfoContext(ctx, "Successfully established connection to MongoDB")
	return client, nil
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	var doc document
	err := s.coll.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find %q: %w", key, err)
	}
	return []byte(doc.Value), nil
}

func (s *Store) Put(ctx context.Context, key string, value []byte) error {
	doc := document{Key: key, Value: string(value), UpdatedAt: time.Now().UTC()}
	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": key}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to upsert %q: %w", key, err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if _, err := s.coll.DeleteOne(ctx, bson.M{"_id": key}); err != nil {
		return fmt.Errorf("failed to delete %q: %w", key, err)
	}
	return nil
}

// Ping checks the connection to the server.
func (s *Store) Ping(ctx context.Context) error {
	if s.client == nil {
		return nil
	}
	return s.client.Ping(ctx, nil)
}

// Close disconnects from the server.
func (s *Store) Close() error {
	if s.client == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}
