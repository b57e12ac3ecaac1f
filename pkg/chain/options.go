package chain

// Options are loader or plugin options as the bundler receives them
type Options map[string]interface{}

// Clone returns a deep copy of o. Nested maps and slices are copied, other
// values are shared.
func (o Options) Clone() Options {
	if o == nil {
		return nil
	}
	return cloneMap(o)
}

func cloneMap(m map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v interface{}) interface{} {
	switch val := v.(type) {
	case Options:
		return cloneMap(val)
	case map[string]interface{}:
		return cloneMap(val)
	case []interface{}:
		out := make([]interface{}, len(val))
		for i, item := range val {
			out[i] = cloneValue(item)
		}
		return out
	case []string:
		return append([]string(nil), val...)
	}
	return v
}
