package wealth

// Merge deep merges in into def and returns the result. Neither argument is
// modified.
//
// For every key of in: when both sides hold a composite under that key they
// are merged recursively, otherwise in's value replaces def's wholesale
// (lists included), an explicit null too. Keys only def defines are kept.
//
// A non composite in has no keys to contribute and the result is def. A non
// composite def is replaced by a composite in.
func Merge(def, in Node) Node {
	if in.kind != Composite {
		return def
	}
	if def.kind != Composite {
		return in
	}

	out := Node{kind: Composite, fields: make(map[string]Node, len(def.fields)+len(in.fields))}
	for _, k := range def.keys {
		out.set(k, def.fields[k])
	}
	for _, k := range in.keys {
		v := in.fields[k]
		d, ok := def.fields[k]
		switch {
		case v.kind == Composite && ok && d.kind == Composite:
			out.set(k, Merge(d, v))
		default:
			out.set(k, v)
		}
	}
	return out
}

// Reconcile merges the incoming JSON document into the default record and
// returns the resulting record. It never fails: malformed or non object input
// contributes nothing and the result is a copy of def.
//
// When the merged document carries no usable net_worth, it is computed from
// the line items. A net_worth supplied by the incoming document is kept as is.
func Reconcile(def *Record, incoming []byte) *Record {
	base, err := NodeOf(def)
	if err != nil {
		// Record always marshals.
		panic(err)
	}
	// net_worth is derived and never inherited from the default.
	base = base.without("net_worth")
	in, err := ParseNode(incoming)
	if err != nil {
		in = Node{}
	}
	return decodeRecord(Merge(base, in))
}
