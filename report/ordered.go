package report

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/rustyeddy/dashboard/format"
)

// Entry is one key/value pair of a decoded JSON object.
type Entry[V any] struct {
	Key   string
	Value V
}

// Ordered is a JSON object decoded into its entries in document order.
// The backend keys most reports by instrument or date and the dashboard
// renders rows in the order the backend sent them.
type Ordered[V any] []Entry[V]

// Get returns the value stored under key.
func (o Ordered[V]) Get(key string) (V, bool) {
	for _, e := range o {
		if e.Key == key {
			return e.Value, true
		}
	}
	var zero V
	return zero, false
}

// Keys returns the keys in document order.
func (o Ordered[V]) Keys() []string {
	keys := make([]string, len(o))
	for i, e := range o {
		keys[i] = e.Key
	}
	return keys
}

func (o *Ordered[V]) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*o = nil
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("expected JSON object, got %v", tok)
	}

	out := Ordered[V]{}
	for dec.More() {
		kt, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := kt.(string)
		if !ok {
			return fmt.Errorf("expected object key, got %v", kt)
		}
		var v V
		if err := dec.Decode(&v); err != nil {
			return fmt.Errorf("key %q: %w", key, err)
		}
		out = append(out, Entry[V]{Key: key, Value: v})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	*o = out
	return nil
}

// Text is a JSON scalar kept as the text the dashboard displays for it:
// strings verbatim, numbers as plain literals, booleans and null by name.
type Text string

func (t *Text) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		*t = ""
		return nil
	}
	switch b[0] {
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = Text(s)
	case '{', '[':
		*t = Text(b)
	case 't', 'f', 'n':
		*t = Text(b)
	default:
		var f float64
		if err := json.Unmarshal(b, &f); err != nil {
			return err
		}
		*t = Text(format.Number(f))
	}
	return nil
}

func (t Text) String() string { return string(t) }

// OrEmpty renders a missing value as an empty cell.
func (t *Text) OrEmpty() string {
	if t == nil {
		return ""
	}
	return string(*t)
}
