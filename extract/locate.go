package extract

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/PaesslerAG/jsonpath"
)

// Locate selects the record object at path inside doc, and returns it as
// JSON. Numbers are kept as written. An empty path or "$" returns doc itself,
// when it is an object.
func Locate(doc []byte, path string) ([]byte, error) {
	dec := json.NewDecoder(bytes.NewReader(doc))
	dec.UseNumber()
	var jobj any
	if err := dec.Decode(&jobj); err != nil {
		return nil, fmt.Errorf("could not parse document: %w", err)
	}

	jval := jobj
	if path != "" && path != "$" {
		var err error
		jval, err = jsonpath.Get(path, jobj)
		if err != nil {
			return nil, fmt.Errorf("could not evaluate %q: %w", path, err)
		}
		// jsonpath returns a list for wildcards and filters: keep the first match
		if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
			jval = jlist[0]
		}
	}

	if _, ok := jval.(map[string]any); !ok {
		return nil, fmt.Errorf("%q does not select an object, got %T", path, jval)
	}
	return json.Marshal(jval)
}
