package wealth

import "strings"

// Source tells where the active record came from.
type Source string

const (
	FromSample  Source = "sample"
	FromProfile Source = "profile"
	FromStored  Source = "stored"
)

// Reasons for falling back to the sample record.
const (
	ReasonAbsent      = "absent"
	ReasonMalformed   = "malformed"
	ReasonEmpty       = "empty"
	ReasonMissingID   = "missing-id"
	ReasonPlaceholder = "placeholder"
)

// Selection is the outcome of SelectActiveRecord.
type Selection struct {
	Record *Record
	Source Source
	// Reason explains a fallback to the sample, empty otherwise.
	Reason string
	// Persist is set when the caller must write Record back to the store.
	Persist bool
}

// SelectActiveRecord decides which record becomes the active record of a
// session, given the raw stored value (nil when nothing is stored).
//
//  1. nothing stored: the sample, to be persisted.
//  2. malformed JSON: the sample, to be persisted.
//  3. not an object, an empty object, or a missing or placeholder user_id:
//     the sample, to be persisted.
//  4. a user_id matching a bundled profile: that profile merged into the
//     default shape.
//  5. otherwise the stored record merged into the default shape.
//
// It is total: every input yields a usable record.
func SelectActiveRecord(stored []byte, b Bundle) Selection {
	sample := func(reason string) Selection {
		return Selection{Record: b.Sample.Clone(), Source: FromSample, Reason: reason, Persist: true}
	}

	if stored == nil {
		return sample(ReasonAbsent)
	}
	n, err := ParseNode(stored)
	if err != nil {
		return sample(ReasonMalformed)
	}
	if n.Kind() != Composite || len(n.Keys()) == 0 {
		return sample(ReasonEmpty)
	}
	id := strings.TrimSpace(n.Get("user_id").Text())
	switch id {
	case "":
		return sample(ReasonMissingID)
	case PlaceholderUserID:
		return sample(ReasonPlaceholder)
	}

	if p, ok := b.Profile(id); ok {
		return Selection{Record: p, Source: FromProfile}
	}
	return Selection{Record: Reconcile(b.Default, stored), Source: FromStored}
}
