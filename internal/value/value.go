package value

import (
	"slices"
	"unicode/utf16"
)

// Value is a sealed interface over the dynamic value types.
// Only Null, Bool, Int, String, List and Object implement it.
type Value interface {
	value() // Sealed
}

// Null is the absent value, generated for empty options.
type Null struct{}

func (Null) value() {}

// Bool is a boolean value.
type Bool bool

func (Bool) value() {}

// Int is an integer value. There is no float type.
type Int int64

func (Int) value() {}

// String is a string value.
type String string

func (String) value() {}

// List is an ordered list of values.
type List []Value

func (List) value() {}

// Object maps field names to values.
// Use SortedKeys() for deterministic iteration.
type Object map[string]Value

func (Object) value() {}

// SortedKeys returns keys in canonical order (UTF-16 code units).
// Go's string comparison orders by UTF-8 bytes, which differs for
// supplementary-plane characters.
func (obj Object) SortedKeys() []string {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, compareKeys)
	return keys
}

func compareKeys(a, b string) int {
	a16 := utf16.Encode([]rune(a))
	b16 := utf16.Encode([]rune(b))

	n := min(len(a16), len(b16))
	for i := 0; i < n; i++ {
		if a16[i] != b16[i] {
			if a16[i] < b16[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(a16) < len(b16):
		return -1
	case len(a16) > len(b16):
		return 1
	}
	return 0
}

// SortedUnique orders vs by canonical form and drops duplicates. It is used
// to render sets and maps independently of insertion order.
func SortedUnique(vs []Value) (List, error) {
	type keyed struct {
		key string
		v   Value
	}
	items := make([]keyed, 0, len(vs))
	for _, v := range vs {
		b, err := MarshalCanonical(v)
		if err != nil {
			return nil, err
		}
		items = append(items, keyed{key: string(b), v: v})
	}
	slices.SortStableFunc(items, func(a, b keyed) int { return compareKeys(a.key, b.key) })
	items = slices.CompactFunc(items, func(a, b keyed) bool { return a.key == b.key })

	out := make(List, len(items))
	for i, it := range items {
		out[i] = it.v
	}
	return out, nil
}
