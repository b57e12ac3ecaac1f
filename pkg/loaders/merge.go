package loaders

import (
	"dario.cat/mergo"
	"github.com/arthur-debert/bundlechain/pkg/config"
	"github.com/arthur-debert/bundlechain/pkg/errors"
)

// MergeChainedOptions applies user overrides to defaults. Values are
// assigned key by key over a copy of defaults, then Modify receives the
// result; a nil return from Modify keeps what it was given.
func MergeChainedOptions(defaults map[string]interface{}, chained config.ChainedOptions) map[string]interface{} {
	merged := copyMap(defaults)
	for k, v := range chained.Values {
		merged[k] = copyValue(v)
	}
	return applyModify(merged, chained)
}

// DeepMergeChainedOptions is MergeChainedOptions with a recursive merge of
// Values: nested tables are merged, lists are appended.
func DeepMergeChainedOptions(defaults map[string]interface{}, chained config.ChainedOptions) (map[string]interface{}, error) {
	merged := copyMap(defaults)
	if len(chained.Values) > 0 {
		if err := mergo.Merge(&merged, copyMap(chained.Values), mergo.WithOverride, mergo.WithAppendSlice); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigInvalid, "failed to merge loader options")
		}
	}
	return applyModify(merged, chained), nil
}

func applyModify(opts map[string]interface{}, chained config.ChainedOptions) map[string]interface{} {
	if chained.Modify == nil {
		return opts
	}
	if out := chained.Modify(copyMap(opts)); out != nil {
		return out
	}
	return opts
}

// copyMap deep copies nested maps and lists so merges never write into
// configuration owned maps
func copyMap(m map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(m))
	for k, v := range m {
		out[k] = copyValue(v)
	}
	return out
}

func copyValue(v interface{}) interface{} {
	switch val := v.(type) {
	case map[string]interface{}:
		return copyMap(val)
	case []interface{}:
		out := make([]interface{}, len(val))
		for i, item := range val {
			out[i] = copyValue(item)
		}
		return out
	case []string:
		return append([]string(nil), val...)
	}
	return v
}
