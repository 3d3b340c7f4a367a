package wealth

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"sort"
)

//go:embed data/*.json data/profiles/*.json
var bundled embed.FS

// Bundle holds the records shipped with the application: the default shape
// every record is merged into, the sample record used on first run or
// recovery, and the alternate demo profiles keyed by user identifier.
type Bundle struct {
	Default  *Record
	Sample   *Record
	Profiles map[string]json.RawMessage
}

// DefaultBundle returns the bundled records. It panics if the embedded data is
// broken, which can only be a build mistake.
func DefaultBundle() Bundle {
	b, err := LoadBundle(bundled, "data")
	if err != nil {
		panic(err)
	}
	return b
}

// LoadBundle reads default.json, sample.json and profiles/*.json from dir in
// fsys.
func LoadBundle(fsys fs.FS, dir string) (Bundle, error) {
	def, err := readRecord(fsys, dir+"/default.json")
	if err != nil {
		return Bundle{}, err
	}
	sample, err := readRecord(fsys, dir+"/sample.json")
	if err != nil {
		return Bundle{}, err
	}
	if !sample.IsUsable() {
		return Bundle{}, fmt.Errorf("sample record has no usable user_id: %q", sample.UserID)
	}

	b := Bundle{Default: def, Sample: sample, Profiles: make(map[string]json.RawMessage)}
	files, err := fs.Glob(fsys, dir+"/profiles/*.json")
	if err != nil {
		return Bundle{}, err
	}
	for _, file := range files {
		raw, err := fs.ReadFile(fsys, file)
		if err != nil {
			return Bundle{}, fmt.Errorf("could not read profile %q: %w", file, err)
		}
		n, err := ParseNode(raw)
		if err != nil {
			return Bundle{}, fmt.Errorf("could not parse profile %q: %w", file, err)
		}
		id := n.Get("user_id").Text()
		if !usableID(id) {
			return Bundle{}, fmt.Errorf("profile %q has no usable user_id", file)
		}
		if _, dup := b.Profiles[id]; dup {
			return Bundle{}, fmt.Errorf("duplicate profile %q in %q", id, file)
		}
		b.Profiles[id] = raw
	}
	return b, nil
}

func readRecord(fsys fs.FS, file string) (*Record, error) {
	raw, err := fs.ReadFile(fsys, file)
	if err != nil {
		return nil, fmt.Errorf("could not read %q: %w", file, err)
	}
	n, err := ParseNode(raw)
	if err != nil {
		return nil, fmt.Errorf("could not parse %q: %w", file, err)
	}
	return decodeRecord(n), nil
}

// ProfileIDs returns the identifiers of the alternate profiles, sorted.
func (b Bundle) ProfileIDs() []string {
	ids := make([]string, 0, len(b.Profiles))
	for id := range b.Profiles {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Profile returns the alternate profile id reconciled with the default shape.
func (b Bundle) Profile(id string) (*Record, bool) {
	raw, ok := b.Profiles[id]
	if !ok {
		return nil, false
	}
	return Reconcile(b.Default, raw), true
}
