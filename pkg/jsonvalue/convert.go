package jsonvalue

import (
	"encoding/json"
	"fmt"
	"maps"
	"math"
	"slices"
)

// FromAny converts a Go value shaped like the output of encoding/json
// into a Value. Map members are ordered by key.
func FromAny(x any) (Value, error) {
	return fromAny(x, 0)
}

// MustFromAny is FromAny for literals known to be convertible.
func MustFromAny(x any) Value {
	v, err := FromAny(x)
	if err != nil {
		panic(err)
	}
	return v
}

func fromAny(x any, depth int) (Value, error) {
	if depth >= maxNestingDepth {
		return Value{}, ErrTooDeep
	}
	switch t := x.(type) {
	case nil:
		return Null(), nil
	case Value:
		return t, nil
	case bool:
		return Bool(t), nil
	case string:
		return String(t), nil
	case float64:
		return finite(t)
	case float32:
		return finite(float64(t))
	case int:
		return Number(float64(t)), nil
	case int8:
		return Number(float64(t)), nil
	case int16:
		return Number(float64(t)), nil
	case int32:
		return Number(float64(t)), nil
	case int64:
		return Number(float64(t)), nil
	case uint:
		return Number(float64(t)), nil
	case uint8:
		return Number(float64(t)), nil
	case uint16:
		return Number(float64(t)), nil
	case uint32:
		return Number(float64(t)), nil
	case uint64:
		return Number(float64(t)), nil
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return Value{}, fmt.Errorf("number %s: %w", t, err)
		}
		return Number(f), nil
	case []any:
		items := make([]Value, 0, len(t))
		for i, e := range t {
			item, err := fromAny(e, depth+1)
			if err != nil {
				return Value{}, fmt.Errorf("index %d: %w", i, err)
			}
			items = append(items, item)
		}
		return Array(items...), nil
	case []Value:
		return Array(t...), nil
	case map[string]any:
		members := make([]Member, 0, len(t))
		for _, key := range slices.Sorted(maps.Keys(t)) {
			item, err := fromAny(t[key], depth+1)
			if err != nil {
				return Value{}, fmt.Errorf("key %q: %w", key, err)
			}
			members = append(members, Member{Key: key, Value: item})
		}
		return Object(members...), nil
	default:
		return Value{}, fmt.Errorf("unsupported value of type %T", x)
	}
}

func finite(f float64) (Value, error) {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return Value{}, fmt.Errorf("non-finite number %v", f)
	}
	return Number(f), nil
}
