package wealth

import (
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
)

func TestDefaultBundle(t *testing.T) {
	b := DefaultBundle()
	if b.Default.UserID != PlaceholderUserID || b.Default.IsUsable() {
		t.Errorf("Default.UserID = %q, want the placeholder", b.Default.UserID)
	}
	if !b.Sample.IsUsable() {
		t.Errorf("Sample is not usable")
	}
	if !NetWorth(b.Sample).Equal(A(1582500)) {
		t.Errorf("NetWorth(sample) = %v, want 1582500", NetWorth(b.Sample))
	}
	if diff := cmp.Diff([]string{"demo_james", "demo_priya"}, b.ProfileIDs()); diff != "" {
		t.Errorf("ProfileIDs() mismatch (-want +got):\n%s", diff)
	}
	if issues := Check(b.Sample); len(issues) != 0 {
		t.Errorf("Check(sample) = %v, want no issue", issues)
	}
}

func TestBundle_Profile(t *testing.T) {
	b := DefaultBundle()

	james, ok := b.Profile("demo_james")
	if !ok {
		t.Fatalf("Profile(demo_james) not found")
	}
	if james.Currency != "USD" {
		t.Errorf("Currency = %q, want USD", james.Currency)
	}
	if !TotalAssets(james).Equal(A(902730)) || !TotalLiabilities(james).Equal(A(287400)) {
		t.Errorf("totals = %v, %v, want 902730, 287400", TotalAssets(james), TotalLiabilities(james))
	}
	// lists the profile leaves out come from the default shape
	if james.Assets.MutualFunds == nil || james.SIPs == nil || james.Transactions == nil {
		t.Errorf("missing lists should be empty, got %+v", james)
	}

	if _, ok := b.Profile("nobody"); ok {
		t.Errorf("Profile(nobody) found")
	}
}

func TestLoadBundle(t *testing.T) {
	def := &fstest.MapFile{Data: []byte(`{"user_id":"default_user","assets":{}}`)}
	sample := &fstest.MapFile{Data: []byte(`{"user_id":"s1"}`)}

	t.Run("ok", func(t *testing.T) {
		fsys := fstest.MapFS{
			"d/default.json":    def,
			"d/sample.json":     sample,
			"d/profiles/a.json": {Data: []byte(`{"user_id":"p1"}`)},
		}
		b, err := LoadBundle(fsys, "d")
		if err != nil {
			t.Fatalf("LoadBundle() error = %v", err)
		}
		if diff := cmp.Diff([]string{"p1"}, b.ProfileIDs()); diff != "" {
			t.Errorf("ProfileIDs() mismatch (-want +got):\n%s", diff)
		}
	})

	testCases := []struct {
		name string
		fsys fstest.MapFS
	}{
		{"no default", fstest.MapFS{"d/sample.json": sample}},
		{"no sample", fstest.MapFS{"d/default.json": def}},
		{"malformed sample", fstest.MapFS{"d/default.json": def, "d/sample.json": {Data: []byte(`{`)}}},
		{"placeholder sample", fstest.MapFS{"d/default.json": def, "d/sample.json": def}},
		{"profile without id", fstest.MapFS{"d/default.json": def, "d/sample.json": sample, "d/profiles/a.json": {Data: []byte(`{}`)}}},
		{"duplicate profile", fstest.MapFS{
			"d/default.json":    def,
			"d/sample.json":     sample,
			"d/profiles/a.json": {Data: []byte(`{"user_id":"p1"}`)},
			"d/profiles/b.json": {Data: []byte(`{"user_id":"p1"}`)},
		}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := LoadBundle(tc.fsys, "d"); err == nil {
				t.Errorf("LoadBundle() error = nil, want an error")
			}
		})
	}
}
