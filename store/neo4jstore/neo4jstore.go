// Package neo4jstore keeps values as (:Record {key, value, updated_at}) nodes
// of a Neo4j graph.
package neo4jstore

import (
	"context"
	"fmt"
	"time"

	"github.com/etnz/wealth/store"
)

const (
	getCypher    = `MATCH (r:Record {key: $key}) RETURN r.value AS value LIMIT 1`
	putCypher    = `MERGE (r:Record {key: $key}) SET r.value = $value, r.updated_at = datetime()`
	deleteCypher = `MATCH (r:Record {key: $key}) DELETE r`
)

var _ store.Store = (*Store)(nil)

// Store implements store.Store over a graph Client.
type Store struct {
	client Client
}

// New returns a store over client. The store owns the client.
func New(client Client) *Store {
	return &Store{client: client}
}

// Connect opens a Bolt connection and returns a store over it.
func Connect(ctx context.Context, opts Options) (*Store, error) {
	client, err := NewClient(ctx, opts)
	if err != nil {
		return nil, err
	}
	return New(client), nil
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	res, err := s.client.ExecuteRead(ctx, getCypher, map[string]any{"key": key})
	if err != nil {
		return nil, fmt.Errorf("read record %q: %w", key, err)
	}
	if len(res.Records) == 0 {
		return nil, store.ErrNotFound
	}
	switch v := res.Records[0]["value"].(type) {
	case string:
		return []byte(v), nil
	case []byte:
		return v, nil
	default:
		return nil, fmt.Errorf("read record %q: unexpected value type %T", key, v)
	}
}

func (s *Store) Put(ctx context.Context, key string, value []byte) error {
	params := map[string]any{"key": key, "value": string(value)}
	if _, err := s.client.ExecuteWrite(ctx, putCypher, params); err != nil {
		return fmt.Errorf("write record %q: %w", key, err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if _, err := s.client.ExecuteWrite(ctx, deleteCypher, map[string]any{"key": key}); err != nil {
		return fmt.Errorf("delete record %q: %w", key, err)
	}
	return nil
}

// Ping verifies the connection to the graph.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.VerifyConnectivity(ctx)
}

// Close closes the underlying client.
func (s *Store) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Close(ctx)
}
