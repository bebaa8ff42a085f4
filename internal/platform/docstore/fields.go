package docstore

import (
	"encoding/json"
	"math"
)

// Fields is a document body. Values follow JSON typing once they have been
// through a store: numbers arrive as float64 and arrays as []any.
type Fields map[string]any

func (f Fields) String(key string) string {
	v, _ := f[key].(string)
	return v
}

func (f Fields) Float(key string) float64 {
	switch v := f[key].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case json.Number:
		n, _ := v.Float64()
		return n
	default:
		return 0
	}
}

func (f Fields) Int(key string) int {
	return int(math.Round(f.Float(key)))
}

func (f Fields) Strings(key string) []string {
	switch v := f[key].(type) {
	case []string:
		return append([]string(nil), v...)
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

func (f Fields) Ints(key string) []int {
	switch v := f[key].(type) {
	case []int:
		return append([]int(nil), v...)
	case []any:
		out := make([]int, 0, len(v))
		for _, item := range v {
			if n, ok := item.(float64); ok {
				out = append(out, int(math.Round(n)))
			}
		}
		return out
	default:
		return nil
	}
}

// Object returns a nested object, or nil when absent or not an object.
func (f Fields) Object(key string) Fields {
	switch v := f[key].(type) {
	case map[string]any:
		return Fields(v)
	case Fields:
		return v
	default:
		return nil
	}
}

func (f Fields) Has(key string) bool {
	v, ok := f[key]
	return ok && v != nil
}

// Clone deep-copies f through its JSON form so stored state never aliases
// caller maps.
func (f Fields) Clone() (Fields, error) {
	if f == nil {
		return Fields{}, nil
	}
	b, err := json.Marshal(f)
	if err != nil {
		return nil, err
	}
	out := Fields{}
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}
