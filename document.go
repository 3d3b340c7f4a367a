package wealth

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Kind tags the shape of a Node.
type Kind uint8

const (
	Absent    Kind = iota // the key does not exist
	Null                  // an explicit JSON null
	Scalar                // string, number or boolean
	List                  // JSON array
	Composite             // JSON object
)

func (k Kind) String() string {
	switch k {
	case Absent:
		return "absent"
	case Null:
		return "null"
	case Scalar:
		return "scalar"
	case List:
		return "list"
	case Composite:
		return "composite"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Node is a loosely typed JSON document, tagged by Kind.
//
// Composites keep the order in which their keys were first seen, so that a
// merged document reads like the default it was merged into.
type Node struct {
	kind   Kind
	raw    json.RawMessage // scalar token, JSON encoded
	items  []Node
	keys   []string
	fields map[string]Node
}

// Kind returns the tag of n.
func (n Node) Kind() Kind { return n.kind }

// ParseNode parses a JSON document. Trailing data after the first value is an
// error.
func ParseNode(data []byte) (Node, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	n, err := parseNode(dec)
	if err != nil {
		return Node{}, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return Node{}, errors.New("unexpected data after top-level value")
	}
	return n, nil
}

func parseNode(dec *json.Decoder) (Node, error) {
	token, err := dec.Token()
	if err != nil {
		return Node{}, err
	}
	switch t := token.(type) {
	case json.Delim:
		switch t {
		case '{':
			n := Node{kind: Composite, fields: make(map[string]Node)}
			for dec.More() {
				kt, err := dec.Token()
				if err != nil {
					return Node{}, err
				}
				key, ok := kt.(string)
				if !ok {
					return Node{}, fmt.Errorf("invalid object key %v", kt)
				}
				v, err := parseNode(dec)
				if err != nil {
					return Node{}, err
				}
				n.set(key, v)
			}
			if _, err := dec.Token(); err != nil { // '}'
				return Node{}, err
			}
			return n, nil
		case '[':
			n := Node{kind: List, items: []Node{}}
			for dec.More() {
				v, err := parseNode(dec)
				if err != nil {
					return Node{}, err
				}
				n.items = append(n.items, v)
			}
			if _, err := dec.Token(); err != nil { // ']'
				return Node{}, err
			}
			return n, nil
		default:
			return Node{}, fmt.Errorf("unexpected delimiter %v", t)
		}
	case nil:
		return Node{kind: Null}, nil
	case json.Number:
		return Node{kind: Scalar, raw: json.RawMessage(t.String())}, nil
	default: // string or bool
		raw, _ := json.Marshal(t)
		return Node{kind: Scalar, raw: raw}, nil
	}
}

// NodeOf converts any JSON serializable value into a Node.
func NodeOf(v any) (Node, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return Node{}, err
	}
	return ParseNode(data)
}

// set adds or replaces a field, keeping the first position of the key.
func (n *Node) set(key string, v Node) {
	if _, exists := n.fields[key]; !exists {
		n.keys = append(n.keys, key)
	}
	n.fields[key] = v
}

// without returns a copy of the composite n without key.
func (n Node) without(key string) Node {
	if n.kind != Composite {
		return n
	}
	out := Node{kind: Composite, fields: make(map[string]Node, len(n.fields))}
	for _, k := range n.keys {
		if k != key {
			out.set(k, n.fields[k])
		}
	}
	return out
}

// Keys returns the keys of a composite, in order.
func (n Node) Keys() []string { return append([]string(nil), n.keys...) }

// Has reports whether a composite defines key, with any value including null.
func (n Node) Has(key string) bool {
	_, ok := n.fields[key]
	return ok
}

// Get returns the field key of a composite, or an Absent node.
func (n Node) Get(key string) Node {
	if n.kind != Composite {
		return Node{}
	}
	return n.fields[key]
}

// Items returns the elements of a list, nil for anything else.
func (n Node) Items() []Node {
	if n.kind != List {
		return nil
	}
	return n.items
}

// Text returns a scalar as text: strings unquoted, numbers and booleans as
// written. Anything else is "".
func (n Node) Text() string {
	if n.kind != Scalar {
		return ""
	}
	var s string
	if err := json.Unmarshal(n.raw, &s); err == nil {
		return s
	}
	return string(n.raw)
}

// Numbers read from a document are bounded: longer text or a larger exponent
// is not a number.
const (
	maxNumberLen = 64
	maxExponent  = 64
)

var (
	numberCleaner  = strings.NewReplacer(",", "", " ", "", "_", "")
	minInt, maxInt = decimal.NewFromInt(math.MinInt), decimal.NewFromInt(math.MaxInt)
)

// number reads a numeric scalar. Numeric strings are accepted, ignoring
// spaces, underscores and grouping commas.
func (n Node) number() (decimal.Decimal, bool) {
	if n.kind != Scalar {
		return decimal.Zero, false
	}
	text := numberCleaner.Replace(strings.TrimSpace(n.Text()))
	if len(text) > maxNumberLen {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(text)
	if err != nil {
		return decimal.Zero, false
	}
	if e := d.Exponent(); e > maxExponent || e < -maxExponent {
		return decimal.Zero, false
	}
	return d, true
}

// integer reads the integer part of a number that fits an int.
func (n Node) integer() (int, bool) {
	d, ok := n.number()
	if !ok {
		return 0, false
	}
	d = d.Truncate(0)
	if d.LessThan(minInt) || d.GreaterThan(maxInt) {
		return 0, false
	}
	return int(d.IntPart()), true
}

// Decimal returns a numeric scalar as a decimal. Anything else is zero.
func (n Node) Decimal() decimal.Decimal {
	d, _ := n.number()
	return d
}

// Int returns the integer part of Decimal, or zero when it does not fit an int.
func (n Node) Int() int {
	i, _ := n.integer()
	return i
}

// IsNumber reports whether n holds something Decimal can read.
func (n Node) IsNumber() bool {
	_, ok := n.number()
	return ok
}

// MarshalJSON encodes the node back to JSON. Absent nodes encode as null.
func (n Node) MarshalJSON() ([]byte, error) {
	switch n.kind {
	case Scalar:
		return n.raw, nil
	case List:
		var b bytes.Buffer
		b.WriteByte('[')
		for i, it := range n.items {
			if i > 0 {
				b.WriteByte(',')
			}
			raw, err := it.MarshalJSON()
			if err != nil {
				return nil, err
			}
			b.Write(raw)
		}
		b.WriteByte(']')
		return b.Bytes(), nil
	case Composite:
		var w jsonObjectWriter
		for _, k := range n.keys {
			raw, err := n.fields[k].MarshalJSON()
			if err != nil {
				return nil, err
			}
			w.AppendRaw(k, raw)
		}
		return w.MarshalJSON()
	default:
		return []byte("null"), nil
	}
}

// Equal reports whether two nodes hold the same document. Key order is not
// significant, numbers are compared by value.
func (n Node) Equal(m Node) bool {
	if n.kind != m.kind {
		return false
	}
	switch n.kind {
	case Scalar:
		if n.IsNumber() && m.IsNumber() && n.raw[0] != '"' && m.raw[0] != '"' {
			return n.Decimal().Equal(m.Decimal())
		}
		return bytes.Equal(n.raw, m.raw)
	case List:
		if len(n.items) != len(m.items) {
			return false
		}
		for i := range n.items {
			if !n.items[i].Equal(m.items[i]) {
				return false
			}
		}
		return true
	case Composite:
		if len(n.fields) != len(m.fields) {
			return false
		}
		for k, v := range n.fields {
			w, ok := m.fields[k]
			if !ok || !v.Equal(w) {
				return false
			}
		}
		return true
	default:
		return true
	}
}

func (n Node) String() string {
	raw, err := n.MarshalJSON()
	if err != nil {
		return fmt.Sprintf("!(%v)", err)
	}
	return string(raw)
}
