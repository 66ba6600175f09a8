package jsonvalue

import (
	"encoding/binary"
	"hash/maphash"
	"math"
	"slices"
	"strings"
)

// Equal reports whether a and b are structurally equal.
// Numbers compare by value, arrays element-wise in order, and objects by
// key set regardless of member order (duplicate keys resolve to the last one).
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindNull:
		return true
	case KindBool:
		return a.b == b.b
	case KindNumber:
		return a.num == b.num
	case KindString:
		return a.str == b.str
	case KindArray:
		if len(a.items) != len(b.items) {
			return false
		}
		for i := range a.items {
			if !Equal(a.items[i], b.items[i]) {
				return false
			}
		}
		return true
	case KindObject:
		ak := distinctKeys(a)
		bk := distinctKeys(b)
		if len(ak) != len(bk) {
			return false
		}
		for _, key := range ak {
			bv, ok := b.Lookup(key)
			if !ok {
				return false
			}
			av, _ := a.Lookup(key)
			if !Equal(av, bv) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Hash writes a digest of v to h that is consistent with Equal.
func Hash(h *maphash.Hash, v Value) {
	var buf [8]byte
	_ = h.WriteByte(byte(v.kind))
	switch v.kind {
	case KindBool:
		if v.b {
			_ = h.WriteByte(1)
		} else {
			_ = h.WriteByte(0)
		}
	case KindNumber:
		n := v.num
		if n == 0 {
			n = 0 // fold -0 into +0
		}
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(n))
		_, _ = h.Write(buf[:])
	case KindString:
		_, _ = h.WriteString(v.str)
	case KindArray:
		binary.LittleEndian.PutUint64(buf[:], uint64(len(v.items)))
		_, _ = h.Write(buf[:])
		for _, item := range v.items {
			Hash(h, item)
		}
	case KindObject:
		// Member order is irrelevant to Equal, so hash keys in sorted order.
		keys := distinctKeys(v)
		binary.LittleEndian.PutUint64(buf[:], uint64(len(keys)))
		_, _ = h.Write(buf[:])
		for _, key := range keys {
			_, _ = h.WriteString(key)
			_ = h.WriteByte(0)
			member, _ := v.Lookup(key)
			Hash(h, member)
		}
	}
}

func distinctKeys(v Value) []string {
	keys := make([]string, 0, len(v.members))
	for _, m := range v.members {
		keys = append(keys, m.Key)
	}
	slices.SortFunc(keys, strings.Compare)
	return slices.Compact(keys)
}
