package jsonvalue

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// maxNestingDepth bounds recursion while decoding untrusted documents.
const maxNestingDepth = 10000

// ErrTooDeep is returned when a document nests deeper than the decoder allows.
var ErrTooDeep = errors.New("document nesting too deep")

// Decode reads exactly one JSON value from r.
// Member order and duplicate keys are preserved.
func Decode(r io.Reader) (Value, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	v, err := decodeValue(dec, 0)
	if err != nil {
		return Value{}, fmt.Errorf("decode json: %w", err)
	}
	if tok, err := dec.Token(); !errors.Is(err, io.EOF) {
		if err != nil {
			return Value{}, fmt.Errorf("decode json: %w", err)
		}
		return Value{}, fmt.Errorf("decode json: unexpected %v after top-level value", tok)
	}
	return v, nil
}

// DecodeBytes is Decode over a byte slice.
func DecodeBytes(data []byte) (Value, error) {
	return Decode(bytes.NewReader(data))
}

func decodeValue(dec *json.Decoder, depth int) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return Value{}, io.ErrUnexpectedEOF
		}
		return Value{}, err
	}
	return decodeToken(dec, tok, depth)
}

func decodeToken(dec *json.Decoder, tok json.Token, depth int) (Value, error) {
	switch t := tok.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(t), nil
	case string:
		return String(t), nil
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return Value{}, fmt.Errorf("number %s: %w", t, err)
		}
		return Number(f), nil
	case json.Delim:
		if depth >= maxNestingDepth {
			return Value{}, ErrTooDeep
		}
		switch t {
		case '[':
			return decodeArray(dec, depth+1)
		case '{':
			return decodeObject(dec, depth+1)
		}
		return Value{}, fmt.Errorf("unexpected delimiter %q", rune(t))
	default:
		return Value{}, fmt.Errorf("unexpected token %v", tok)
	}
}

func decodeArray(dec *json.Decoder, depth int) (Value, error) {
	items := make([]Value, 0)
	for dec.More() {
		item, err := decodeValue(dec, depth)
		if err != nil {
			return Value{}, err
		}
		items = append(items, item)
	}
	if _, err := dec.Token(); err != nil {
		return Value{}, err
	}
	return Array(items...), nil
}

func decodeObject(dec *json.Decoder, depth int) (Value, error) {
	members := make([]Member, 0)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return Value{}, err
		}
		key, ok := tok.(string)
		if !ok {
			return Value{}, fmt.Errorf("object key %v is not a string", tok)
		}
		item, err := decodeValue(dec, depth)
		if err != nil {
			return Value{}, fmt.Errorf("member %q: %w", key, err)
		}
		members = append(members, Member{Key: key, Value: item})
	}
	if _, err := dec.Token(); err != nil {
		return Value{}, err
	}
	return Object(members...), nil
}
