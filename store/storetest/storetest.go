// Package storetest checks store.Store implementations.
package storetest

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/etnz/wealth/store"
)

// Run exercises the store.Store contract against s. s must be empty.
func Run(t *testing.T, s store.Store) {
	t.Helper()
	ctx := context.Background()

	t.Run("get absent key", func(t *testing.T) {
		if _, err := s.Get(ctx, "absent"); !errors.Is(err, store.ErrNotFound) {
			t.Errorf("Get(absent) error = %v, want ErrNotFound", err)
		}
		v, err := store.Lookup(ctx, s, "absent")
		if err != nil || v != nil {
			t.Errorf("Lookup(absent) = %q, %v, want nil, nil", v, err)
		}
	})

	t.Run("put then get", func(t *testing.T) {
		want := []byte(`{"user_id":"u1","assets":{"epf_balance":10}}`)
		if err := s.Put(ctx, "financialData", want); err != nil {
			t.Fatalf("Put() error = %v", err)
		}
		got, err := s.Get(ctx, "financialData")
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if !bytes.Equal(got, want) {
			t.Errorf("Get() = %s, want %s", got, want)
		}
	})

	t.Run("put replaces", func(t *testing.T) {
		if err := s.Put(ctx, "k", []byte(`1`)); err != nil {
			t.Fatalf("Put() error = %v", err)
		}
		if err := s.Put(ctx, "k", []byte(`2`)); err != nil {
			t.Fatalf("Put() error = %v", err)
		}
		got, err := s.Get(ctx, "k")
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if string(got) != `2` {
			t.Errorf("Get() = %s, want 2", got)
		}
	})

	t.Run("keys are independent", func(t *testing.T) {
		if err := s.Put(ctx, "a", []byte(`"a"`)); err != nil {
			t.Fatalf("Put() error = %v", err)
		}
		if err := s.Put(ctx, "b", []byte(`"b"`)); err != nil {
			t.Fatalf("Put() error = %v", err)
		}
		got, err := s.Get(ctx, "a")
		if err != nil || string(got) != `"a"` {
			t.Errorf("Get(a) = %s, %v, want \"a\"", got, err)
		}
	})

	t.Run("delete", func(t *testing.T) {
		if err := s.Put(ctx, "gone", []byte(`{}`)); err != nil {
			t.Fatalf("Put() error = %v", err)
		}
		if err := s.Delete(ctx, "gone"); err != nil {
			t.Fatalf("Delete() error = %v", err)
		}
		if _, err := s.Get(ctx, "gone"); !errors.Is(err, store.ErrNotFound) {
			t.Errorf("Get() after Delete() error = %v, want ErrNotFound", err)
		}
		if err := s.Delete(ctx, "gone"); err != nil {
			t.Errorf("Delete(absent) error = %v, want nil", err)
		}
	})

	t.Run("ping", func(t *testing.T) {
		if err := store.Ping(ctx, s); err != nil {
			t.Errorf("Ping() error = %v", err)
		}
	})
}
