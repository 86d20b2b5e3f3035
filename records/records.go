package records

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
)

// ErrInvalidFormat is returned when a payload is not a JSON array.
var ErrInvalidFormat = errors.New("no data found or invalid format")

// Record is a single account entry. The contents are opaque and are forwarded verbatim.
type Record = json.RawMessage

// Records is an ordered collection of account entries.
type Records []Record

// Parse decodes a JSON array of arbitrary values. Anything else (object, null, scalar,
// malformed JSON) is ErrInvalidFormat.
func Parse(b []byte) (Records, error) {
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, ErrInvalidFormat
	}

	list := Records{}
	if err := json.Unmarshal(trimmed, &list); err != nil {
		return nil, errors.Join(ErrInvalidFormat, err)
	}

	return list, nil
}

// Batches splits the collection into consecutive batches of at most size records. A
// size of 0 (or less) returns the whole collection as a single batch.
func (rs Records) Batches(size int) []Records {
	if size <= 0 || len(rs) <= size {
		return []Records{rs}
	}

	batches := []Records{}
	for start := 0; start < len(rs); start += size {
		end := min(start+size, len(rs))
		batches = append(batches, rs[start:end])
	}

	return batches
}

// MarshalJSON encodes an empty or nil collection as [] rather than null. String contents
// are not HTML escaped.
func (rs Records) MarshalJSON() ([]byte, error) {
	if len(rs) == 0 {
		return []byte("[]"), nil
	}

	var b bytes.Buffer
	encoder := json.NewEncoder(&b)
	encoder.SetEscapeHTML(false)

	if err := encoder.Encode([]json.RawMessage(rs)); err != nil {
		return nil, err
	}

	return bytes.TrimSuffix(b.Bytes(), []byte("\n")), nil
}

// WriteJSON writes the collection indented by two spaces, followed by a newline.
func WriteJSON(w io.Writer, rs Records) error {
	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")

	return encoder.Encode(rs)
}
