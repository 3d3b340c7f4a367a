// Package session owns the active record of one user of the application.
//
// A Session selects the active record from a store.Store when opened, hands
// out copies of it, and replaces it as a whole. Sessions sharing a store
// converge through Sync: the last write wins.
package session

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/etnz/wealth"
	"github.com/etnz/wealth/store"
)

// DefaultKey is the store key of the active record.
const DefaultKey = "financialData"

// ReasonStoreError is the selection reason when the store could not be read.
const ReasonStoreError = "store-error"

var (
	// ErrUnknownProfile is returned by UseProfile for an identifier that is
	// not a bundled profile.
	ErrUnknownProfile = errors.New("unknown profile")
	// ErrInvalidRecord is returned by Replace for a document that is not a
	// JSON object.
	ErrInvalidRecord = errors.New("record is not a JSON object")
)

// Change is sent to subscribers when the active record changes. Record is nil
// after Clear.
type Change struct {
	Record *wealth.Record
	Source wealth.Source
	Reason string
}

// Option configures a Session.
type Option func(*Session)

// WithKey sets the store key of the active record.
func WithKey(key string) Option { return func(s *Session) { s.key = key } }

// WithLogger sets the logger, slog.Default() otherwise.
func WithLogger(l *slog.Logger) Option { return func(s *Session) { s.logger = l } }

// WithMetrics sets the collectors to update.
func WithMetrics(m *Metrics) Option { return func(s *Session) { s.metrics = m } }

// WithIDGenerator sets the generator of user identifiers assigned by Replace.
func WithIDGenerator(f func() string) Option { return func(s *Session) { s.newID = f } }

// Session is the explicitly owned state container of the active record.
// It is safe for concurrent use.
type Session struct {
	store   store.Store
	bundle  wealth.Bundle
	key     string
	logger  *slog.Logger
	metrics *Metrics
	newID   func() string

	mu     sync.RWMutex
	active *wealth.Record // nil after Clear
	source wealth.Source
	stored []byte // last value read from or written to the store

	subMu   sync.Mutex
	subs    map[int]func(Change)
	nextSub int
}

// Open selects the active record from st and persists it when the selection
// requires it. Failing to read or write the store is logged, not returned:
// the session then runs on the sample record.
func Open(ctx context.Context, st store.Store, b wealth.Bundle, opts ...Option) (*Session, error) {
	s := &Session{
		store:   st,
		bundle:  b,
		key:     DefaultKey,
		logger:  slog.Default(),
		metrics: NewMetrics(nil),
		newID:   func() string { return uuid.New().String() },
		subs:    make(map[int]func(Change)),
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectLocked(ctx)
	return s, nil
}

// selectLocked runs the selection against the stored value.
func (s *Session) selectLocked(ctx context.Context) Change {
	raw, err := store.Lookup(ctx, s.store, s.key)
	var sel wealth.Selection
	if err != nil {
		s.storeError(ctx, "get", err)
		// never overwrite what could not be read
		sel = wealth.Selection{Record: s.bundle.Sample.Clone(), Source: wealth.FromSample, Reason: ReasonStoreError}
	} else {
		sel = wealth.SelectActiveRecord(raw, s.bundle)
	}

	s.stored = raw
	if sel.Persist {
		if data, err := s.put(ctx, sel.Record); err != nil {
			s.storeError(ctx, "put", err)
		} else {
			s.stored = data
		}
	}
	s.adoptLocked(sel.Record, sel.Source)
	s.metrics.Selections.WithLabelValues(string(sel.Source), sel.Reason).Inc()

	level := slog.LevelInfo
	if sel.Reason != "" {
		level = slog.LevelWarn
	}
	s.logger.Log(ctx, level, "active record selected",
		"user_id", sel.Record.UserID, "source", sel.Source, "reason", sel.Reason, "persisted", sel.Persist)
	return Change{Record: sel.Record.Clone(), Source: sel.Source, Reason: sel.Reason}
}

func (s *Session) adoptLocked(r *wealth.Record, source wealth.Source) {
	s.active = r
	s.source = source
	s.metrics.NetWorth.Set(wealth.NetWorth(r).InexactFloat64())
}

func (s *Session) put(ctx context.Context, r *wealth.Record) ([]byte, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("could not encode record: %w", err)
	}
	if err := s.store.Put(ctx, s.key, data); err != nil {
		return nil, err
	}
	return data, nil
}

func (s *Session) storeError(ctx context.Context, op string, err error) {
	s.metrics.StoreErrors.WithLabelValues(op).Inc()
	s.logger.WarnContext(ctx, "store operation failed", "op", op, "key", s.key, "error", err)
}

// Active returns a copy of the active record. After Clear, the record is
// selected again, which seeds the store with the sample.
func (s *Session) Active(ctx context.Context) (*wealth.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	if s.active != nil {
		defer s.mu.RUnlock()
		return s.active.Clone(), nil
	}
	s.mu.RUnlock()

	s.mu.Lock()
	var change Change
	reselected := s.active == nil
	if reselected {
		change = s.selectLocked(ctx)
	}
	r := s.active.Clone()
	s.mu.Unlock()

	if reselected {
		s.notify(change)
	}
	return r, nil
}

// Source tells where the active record came from.
func (s *Session) Source() wealth.Source {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.source
}

// Bundle returns the records the session selects from.
func (s *Session) Bundle() wealth.Bundle { return s.bundle }

// Replace reconciles incoming with the default record, makes it the active
// record and persists it. A record without a usable user_id gets a new one,
// so the placeholder is never persisted.
func (s *Session) Replace(ctx context.Context, incoming []byte) (*wealth.Record, error) {
	n, err := wealth.ParseNode(incoming)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}
	if n.Kind() != wealth.Composite {
		return nil, fmt.Errorf("%w: got %s", ErrInvalidRecord, n.Kind())
	}

	r := wealth.Reconcile(s.bundle.Default, incoming)
	if !r.IsUsable() {
		r.UserID = s.newID()
	}
	return s.write(ctx, r, wealth.FromStored)
}

// UseProfile makes the bundled profile id the active record and persists it.
func (s *Session) UseProfile(ctx context.Context, id string) (*wealth.Record, error) {
	p, ok := s.bundle.Profile(id)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownProfile, id)
	}
	return s.write(ctx, p, wealth.FromProfile)
}

func (s *Session) write(ctx context.Context, r *wealth.Record, source wealth.Source) (*wealth.Record, error) {
	s.mu.Lock()
	data, err := s.put(ctx, r)
	if err != nil {
		s.mu.Unlock()
		s.storeError(ctx, "put", err)
		return nil, fmt.Errorf("could not save record: %w", err)
	}
	s.stored = data
	s.adoptLocked(r, source)
	s.mu.Unlock()

	s.metrics.Replacements.Inc()
	s.logger.InfoContext(ctx, "active record replaced", "user_id", r.UserID, "source", source)
	s.notify(Change{Record: r.Clone(), Source: source})
	return r.Clone(), nil
}

// Clear deletes the stored record. The next call to Active selects the
// sample record again.
func (s *Session) Clear(ctx context.Context) error {
	s.mu.Lock()
	if err := s.store.Delete(ctx, s.key); err != nil {
		s.mu.Unlock()
		s.storeError(ctx, "delete", err)
		return fmt.Errorf("could not clear record: %w", err)
	}
	s.active = nil
	s.stored = nil
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "active record cleared", "key", s.key)
	s.notify(Change{})
	return nil
}

// Sync re-reads the store and adopts a record written by another session.
// It reports whether the active record changed.
func (s *Session) Sync(ctx context.Context) (bool, error) {
	raw, err := store.Lookup(ctx, s.store, s.key)
	if err != nil {
		s.storeError(ctx, "get", err)
		return false, fmt.Errorf("could not read record: %w", err)
	}

	s.mu.Lock()
	if s.active != nil && bytes.Equal(raw, s.stored) {
		s.mu.Unlock()
		return false, nil
	}
	change := s.selectLocked(ctx)
	s.mu.Unlock()

	s.notify(change)
	return true, nil
}

// Watch calls Sync every interval until ctx is done. A non positive interval
// returns immediately.
func (s *Session) Watch(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if changed, err := s.Sync(ctx); err == nil && changed {
				s.logger.DebugContext(ctx, "adopted record from store")
			}
		}
	}
}

// Subscribe registers fn to be called after every change of the active
// record. Calls happen outside of the session lock, in the goroutine that made
// the change. The returned function unregisters fn.
func (s *Session) Subscribe(fn func(Change)) (cancel func()) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		delete(s.subs, id)
	}
}

func (s *Session) notify(c Change) {
	s.subMu.Lock()
	fns := make([]func(Change), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()
	for _, fn := range fns {
		fn(c)
	}
}
