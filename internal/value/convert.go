package value

import "fmt"

// FromAny converts a decoded YAML or JSON value into a Value.
//
// Integral floats become Int; other floats are rejected.
func FromAny(v any) (Value, error) {
	switch x := v.(type) {
	case nil:
		return Null{}, nil
	case Value:
		return x, nil
	case bool:
		return Bool(x), nil
	case int:
		return Int(x), nil
	case int64:
		return Int(x), nil
	case uint64:
		if x > 1<<63-1 {
			return nil, fmt.Errorf("integer %d overflows int64", x)
		}
		return Int(x), nil
	case float64:
		// JSON decodes every number as float64
		if x != float64(int64(x)) {
			return nil, fmt.Errorf("floats are not supported: %v", x)
		}
		return Int(int64(x)), nil
	case string:
		return String(x), nil
	case []any:
		out := make(List, len(x))
		for i, elem := range x {
			ev, err := FromAny(elem)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			out[i] = ev
		}
		return out, nil
	case map[string]any:
		out := make(Object, len(x))
		for k, elem := range x {
			ev, err := FromAny(elem)
			if err != nil {
				return nil, fmt.Errorf("field %q: %w", k, err)
			}
			out[k] = ev
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported type %T", v)
	}
}
