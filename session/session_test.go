package session

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/etnz/wealth"
	"github.com/etnz/wealth/store"
	"github.com/etnz/wealth/store/memstore"
)

// flakyStore fails the operations named in fail.
type flakyStore struct {
	*memstore.Store
	mu   sync.Mutex
	fail map[string]error
}

func newFlakyStore() *flakyStore {
	return &flakyStore{Store: memstore.New(), fail: make(map[string]error)}
}

func (f *flakyStore) failing(op string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fail[op] = err
}

func (f *flakyStore) errFor(op string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fail[op]
}

func (f *flakyStore) Get(ctx context.Context, key string) ([]byte, error) {
	if err := f.errFor("get"); err != nil {
		return nil, err
	}
	return f.Store.Get(ctx, key)
}

func (f *flakyStore) Put(ctx context.Context, key string, value []byte) error {
	if err := f.errFor("put"); err != nil {
		return err
	}
	return f.Store.Put(ctx, key, value)
}

func (f *flakyStore) Delete(ctx context.Context, key string) error {
	if err := f.errFor("delete"); err != nil {
		return err
	}
	return f.Store.Delete(ctx, key)
}

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

func open(t *testing.T, st store.Store, opts ...Option) *Session {
	t.Helper()
	opts = append([]Option{WithLogger(quiet)}, opts...)
	s, err := Open(context.Background(), st, wealth.DefaultBundle(), opts...)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	return s
}

func active(t *testing.T, s *Session) *wealth.Record {
	t.Helper()
	r, err := s.Active(context.Background())
	if err != nil {
		t.Fatalf("Active() error = %v", err)
	}
	return r
}

func storedRecord(t *testing.T, st store.Store) *wealth.Record {
	t.Helper()
	raw, err := st.Get(context.Background(), DefaultKey)
	if err != nil {
		t.Fatalf("Get(%s) error = %v", DefaultKey, err)
	}
	var r wealth.Record
	if err := r.UnmarshalJSON(raw); err != nil {
		t.Fatalf("stored record is not JSON: %v", err)
	}
	return &r
}

func metricValue(t *testing.T, reg *prometheus.Registry, name string, labels map[string]string) float64 {
	t.Helper()
	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}
	for _, mf := range mfs {
		if mf.GetName() != name {
			continue
		}
	metrics:
		for _, m := range mf.GetMetric() {
			for _, lp := range m.GetLabel() {
				if v, ok := labels[lp.GetName()]; ok && v != lp.GetValue() {
					continue metrics
				}
			}
			return m.GetCounter().GetValue() + m.GetGauge().GetValue()
		}
	}
	return 0
}

func TestOpen_EmptyStoreSeedsSample(t *testing.T) {
	st := memstore.New()
	reg := prometheus.NewRegistry()
	s := open(t, st, WithMetrics(NewMetrics(reg)))

	if got := active(t, s); got.UserID != "sample_user_001" {
		t.Errorf("Active().UserID = %q, want sample_user_001", got.UserID)
	}
	if s.Source() != wealth.FromSample {
		t.Errorf("Source() = %s, want sample", s.Source())
	}
	if got := storedRecord(t, st); got.UserID != "sample_user_001" {
		t.Errorf("stored UserID = %q, want the sample persisted", got.UserID)
	}
	if v := metricValue(t, reg, "wealth_record_selections_total", map[string]string{"source": "sample", "reason": "absent"}); v != 1 {
		t.Errorf("selections{sample,absent} = %v, want 1", v)
	}
	if v := metricValue(t, reg, "wealth_net_worth", nil); v != 1582500 {
		t.Errorf("net worth gauge = %v, want 1582500", v)
	}
}

func TestOpen_StoredRecord(t *testing.T) {
	ctx := context.Background()
	st := memstore.New()
	stored := []byte(`{"user_id":"u42","assets":{"epf_balance":1000}}`)
	if err := st.Put(ctx, DefaultKey, stored); err != nil {
		t.Fatal(err)
	}

	s := open(t, st)
	got := active(t, s)
	if got.UserID != "u42" || !wealth.NetWorth(got).Equal(wealth.A(1000)) {
		t.Errorf("Active() = %s with net worth %v, want u42 with 1000", got.UserID, wealth.NetWorth(got))
	}
	// a genuine stored record is not rewritten
	raw, _ := st.Get(ctx, DefaultKey)
	if string(raw) != string(stored) {
		t.Errorf("stored value changed to %s", raw)
	}
}

func TestOpen_PlaceholderIsReplaced(t *testing.T) {
	ctx := context.Background()
	st := memstore.New()
	if err := st.Put(ctx, DefaultKey, []byte(`{"user_id":"default_user"}`)); err != nil {
		t.Fatal(err)
	}
	open(t, st)
	if got := storedRecord(t, st); got.UserID != "sample_user_001" {
		t.Errorf("stored UserID = %q, want the sample", got.UserID)
	}
}

func TestOpen_UnreadableStore(t *testing.T) {
	ctx := context.Background()
	st := newFlakyStore()
	if err := st.Store.Put(ctx, DefaultKey, []byte(`{"user_id":"u42"}`)); err != nil {
		t.Fatal(err)
	}
	st.failing("get", errors.New("disk on fire"))
	reg := prometheus.NewRegistry()

	s := open(t, st, WithMetrics(NewMetrics(reg)))
	if got := active(t, s); got.UserID != "sample_user_001" {
		t.Errorf("Active().UserID = %q, want the sample", got.UserID)
	}
	raw, _ := st.Store.Get(ctx, DefaultKey)
	if string(raw) != `{"user_id":"u42"}` {
		t.Errorf("stored value = %s, want it left untouched", raw)
	}
	if v := metricValue(t, reg, "wealth_store_errors_total", map[string]string{"op": "get"}); v != 1 {
		t.Errorf("store errors{get} = %v, want 1", v)
	}
}

func TestOpen_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Open(ctx, memstore.New(), wealth.DefaultBundle()); !errors.Is(err, context.Canceled) {
		t.Errorf("Open() error = %v, want context.Canceled", err)
	}
}

func TestActive_ReturnsCopies(t *testing.T) {
	s := open(t, memstore.New())
	r := active(t, s)
	r.UserID = "changed"
	r.Assets.BankAccounts[0].Balance = wealth.A(0)
	if again := active(t, s); again.UserID != "sample_user_001" || !again.Assets.BankAccounts[0].Balance.Equal(wealth.A(550000)) {
		t.Errorf("modifying a returned record changed the active record")
	}
}

func TestReplace(t *testing.T) {
	ctx := context.Background()
	st := memstore.New()
	s := open(t, st)

	got, err := s.Replace(ctx, []byte(`{"user_id":"u7","profile_currency":"EUR","liabilities":{"loans":[{"type":"car","amount":100}]}}`))
	if err != nil {
		t.Fatalf("Replace() error = %v", err)
	}
	if got.UserID != "u7" || got.Currency != "EUR" || !wealth.NetWorth(got).Equal(wealth.A(-100)) {
		t.Errorf("Replace() = %+v", got)
	}
	if got.Assets.BankAccounts == nil {
		t.Errorf("Replace() should keep the default shape")
	}
	if r := storedRecord(t, st); r.UserID != "u7" {
		t.Errorf("stored UserID = %q, want u7", r.UserID)
	}
	if s.Source() != wealth.FromStored {
		t.Errorf("Source() = %s, want stored", s.Source())
	}
}

func TestReplace_AssignsIdentifier(t *testing.T) {
	ctx := context.Background()
	st := memstore.New()
	s := open(t, st, WithIDGenerator(func() string { return "generated" }))

	for _, doc := range []string{`{"monthly_income":10}`, `{"user_id":"default_user"}`, `{"user_id":" "}`} {
		got, err := s.Replace(ctx, []byte(doc))
		if err != nil {
			t.Fatalf("Replace(%s) error = %v", doc, err)
		}
		if got.UserID != "generated" {
			t.Errorf("Replace(%s).UserID = %q, want generated", doc, got.UserID)
		}
		if r := storedRecord(t, st); r.UserID == wealth.PlaceholderUserID {
			t.Errorf("Replace(%s) persisted the placeholder", doc)
		}
	}
}

func TestReplace_DefaultIdentifierIsUUID(t *testing.T) {
	s := open(t, memstore.New())
	got, err := s.Replace(context.Background(), []byte(`{}`))
	if err != nil {
		t.Fatalf("Replace() error = %v", err)
	}
	if len(got.UserID) != 36 {
		t.Errorf("UserID = %q, want a UUID", got.UserID)
	}
}

func TestReplace_Invalid(t *testing.T) {
	ctx := context.Background()
	st := memstore.New()
	s := open(t, st)
	for _, doc := range []string{`{not json`, `[1]`, `"text"`, `null`} {
		if _, err := s.Replace(ctx, []byte(doc)); !errors.Is(err, ErrInvalidRecord) {
			t.Errorf("Replace(%s) error = %v, want ErrInvalidRecord", doc, err)
		}
	}
	if got := active(t, s); got.UserID != "sample_user_001" {
		t.Errorf("a rejected document changed the active record to %q", got.UserID)
	}
}

func TestReplace_StoreFailure(t *testing.T) {
	st := newFlakyStore()
	s := open(t, st)
	st.failing("put", errors.New("read-only"))
	if _, err := s.Replace(context.Background(), []byte(`{"user_id":"u1"}`)); err == nil {
		t.Fatalf("Replace() error = nil, want an error")
	}
	if got := active(t, s); got.UserID != "sample_user_001" {
		t.Errorf("a failed write changed the active record to %q", got.UserID)
	}
}

func TestUseProfile(t *testing.T) {
	ctx := context.Background()
	st := memstore.New()
	s := open(t, st)

	got, err := s.UseProfile(ctx, "demo_james")
	if err != nil {
		t.Fatalf("UseProfile() error = %v", err)
	}
	if got.UserID != "demo_james" || got.Currency != "USD" {
		t.Errorf("UseProfile() = %s %s", got.UserID, got.Currency)
	}
	if r := storedRecord(t, st); r.UserID != "demo_james" {
		t.Errorf("stored UserID = %q, want demo_james", r.UserID)
	}

	// reopening selects the profile
	again := open(t, st)
	if again.Source() != wealth.FromProfile {
		t.Errorf("Source() after reopen = %s, want profile", again.Source())
	}

	if _, err := s.UseProfile(ctx, "nobody"); !errors.Is(err, ErrUnknownProfile) {
		t.Errorf("UseProfile(nobody) error = %v, want ErrUnknownProfile", err)
	}
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	st := memstore.New()
	s := open(t, st)
	if _, err := s.Replace(ctx, []byte(`{"user_id":"u1"}`)); err != nil {
		t.Fatal(err)
	}

	if err := s.Clear(ctx); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if _, err := st.Get(ctx, DefaultKey); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Get() after Clear() error = %v, want ErrNotFound", err)
	}
	if got := active(t, s); got.UserID != "sample_user_001" {
		t.Errorf("Active() after Clear() = %q, want the sample", got.UserID)
	}
	if got := storedRecord(t, st); got.UserID != "sample_user_001" {
		t.Errorf("stored after Active() = %q, want the sample re-seeded", got.UserID)
	}
}

func TestClear_StoreFailure(t *testing.T) {
	st := newFlakyStore()
	s := open(t, st)
	st.failing("delete", errors.New("locked"))
	if err := s.Clear(context.Background()); err == nil {
		t.Errorf("Clear() error = nil, want an error")
	}
}

func TestSubscribe(t *testing.T) {
	ctx := context.Background()
	s := open(t, memstore.New())

	var changes []Change
	cancel := s.Subscribe(func(c Change) { changes = append(changes, c) })

	if _, err := s.Replace(ctx, []byte(`{"user_id":"u1"}`)); err != nil {
		t.Fatal(err)
	}
	if err := s.Clear(ctx); err != nil {
		t.Fatal(err)
	}
	active(t, s)
	cancel()
	if _, err := s.UseProfile(ctx, "demo_priya"); err != nil {
		t.Fatal(err)
	}

	if len(changes) != 3 {
		t.Fatalf("got %d changes, want 3", len(changes))
	}
	if changes[0].Record.UserID != "u1" || changes[0].Source != wealth.FromStored {
		t.Errorf("changes[0] = %+v", changes[0])
	}
	if changes[1].Record != nil {
		t.Errorf("changes[1].Record = %v, want nil after Clear", changes[1].Record)
	}
	if changes[2].Record.UserID != "sample_user_001" || changes[2].Reason != wealth.ReasonAbsent {
		t.Errorf("changes[2] = %+v", changes[2])
	}
}

func TestSync(t *testing.T) {
	ctx := context.Background()
	st := memstore.New()
	a := open(t, st)
	b := open(t, st)

	changed, err := b.Sync(ctx)
	if err != nil || changed {
		t.Errorf("Sync() without writes = %v, %v, want false, nil", changed, err)
	}

	if _, err := a.Replace(ctx, []byte(`{"user_id":"u9"}`)); err != nil {
		t.Fatal(err)
	}
	changed, err = b.Sync(ctx)
	if err != nil || !changed {
		t.Fatalf("Sync() after a write = %v, %v, want true, nil", changed, err)
	}
	if got := active(t, b); got.UserID != "u9" {
		t.Errorf("b.Active().UserID = %q, want u9", got.UserID)
	}

	// the other session clears: b re-seeds the sample
	if err := a.Clear(ctx); err != nil {
		t.Fatal(err)
	}
	if changed, _ := b.Sync(ctx); !changed {
		t.Errorf("Sync() after Clear() reported no change")
	}
	if got := active(t, b); got.UserID != "sample_user_001" {
		t.Errorf("b.Active().UserID = %q, want the sample", got.UserID)
	}
}

func TestSync_StoreFailure(t *testing.T) {
	st := newFlakyStore()
	s := open(t, st)
	st.failing("get", errors.New("timeout"))
	if _, err := s.Sync(context.Background()); err == nil {
		t.Errorf("Sync() error = nil, want an error")
	}
}

func TestWatch(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	st := memstore.New()
	a := open(t, st)
	b := open(t, st)

	adopted := make(chan string, 1)
	b.Subscribe(func(c Change) {
		if c.Record != nil {
			select {
			case adopted <- c.Record.UserID:
			default:
			}
		}
	})
	done := make(chan struct{})
	go func() {
		b.Watch(ctx, 5*time.Millisecond)
		close(done)
	}()

	if _, err := a.Replace(ctx, []byte(`{"user_id":"watched"}`)); err != nil {
		t.Fatal(err)
	}
	select {
	case id := <-adopted:
		if id != "watched" {
			t.Errorf("adopted %q, want watched", id)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("Watch() did not adopt the new record")
	}
	cancel()
	<-done
}

func TestWatch_Disabled(t *testing.T) {
	s := open(t, memstore.New())
	s.Watch(context.Background(), 0) // returns immediately
}
