package cashbook

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// objectWriter builds a JSON object whose keys keep the order they were put
// in, so that journal lines read "command" and "id" first.
// The first error sticks and is returned by finish.
type objectWriter struct {
	buf bytes.Buffer
	n   int
	err error
}

// put writes key and the JSON encoding of v.
func (w *objectWriter) put(key string, v any) *objectWriter {
	if w.err != nil {
		return w
	}
	data, err := json.Marshal(v)
	if err != nil {
		w.err = fmt.Errorf("cannot encode %q: %w", key, err)
		return w
	}
	if w.n == 0 {
		w.buf.WriteByte('{')
	} else {
		w.buf.WriteByte(',')
	}
	w.n++
	k, _ := json.Marshal(key)
	w.buf.Write(k)
	w.buf.WriteByte(':')
	w.buf.Write(data)
	return w
}

// text puts s unless it is empty.
func (w *objectWriter) text(key, s string) *objectWriter {
	if s == "" {
		return w
	}
	return w.put(key, s)
}

// amount puts the exact value of m. Journal lines never lose digits.
func (w *objectWriter) amount(key string, m Money) *objectWriter { return w.put(key, m.value) }

// extra is like amount but skips zero.
func (w *objectWriter) extra(key string, m Money) *objectWriter {
	if m.IsZero() {
		return w
	}
	return w.amount(key, m)
}

func (w *objectWriter) finish() ([]byte, error) {
	if w.err != nil {
		return nil, w.err
	}
	if w.n == 0 {
		return []byte("{}"), nil
	}
	w.buf.WriteByte('}')
	return w.buf.Bytes(), nil
}
