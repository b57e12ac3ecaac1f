package config

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/arthur-debert/bundlechain/pkg/types"
	"github.com/go-viper/mapstructure/v2"
)

var (
	cssExtractType     = reflect.TypeOf(CSSExtract{})
	chainedOptionsType = reflect.TypeOf(ChainedOptions{})
	sourceMapType      = reflect.TypeOf(SourceMapToggle{})
	copyConfigType     = reflect.TypeOf(CopyConfig{})
	browserslistType   = reflect.TypeOf(BrowserslistOverride{})
)

// unionHookFunc decodes the settings that accept more than one shape in
// the config file (boolean or table, list or table).
func unionHookFunc() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data interface{}) (interface{}, error) {
		switch t {
		case cssExtractType:
			return decodeCSSExtract(data)
		case chainedOptionsType:
			return decodeChainedOptions(data)
		case sourceMapType:
			switch v := data.(type) {
			case bool:
				return SourceMapToggle{JS: v, CSS: v}, nil
			case string:
				b, err := parseBool(v)
				if err != nil {
					return nil, fmt.Errorf("output.disable_source_map: %w", err)
				}
				return SourceMapToggle{JS: b, CSS: b}, nil
			}
		case copyConfigType:
			return decodeCopy(data)
		case browserslistType:
			return decodeBrowserslist(data)
		}
		return data, nil
	}
}

func decodeCSSExtract(data interface{}) (interface{}, error) {
	switch v := data.(type) {
	case CSSExtract:
		return v, nil
	case bool:
		return CSSExtract{Enabled: v}, nil
	case string:
		b, err := parseBool(v)
		if err != nil {
			return nil, fmt.Errorf("tools.css_extract: %w", err)
		}
		return CSSExtract{Enabled: b}, nil
	}

	m, ok := toStringMap(data)
	if !ok {
		return nil, fmt.Errorf("tools.css_extract: expected boolean or table, got %T", data)
	}
	extract := CSSExtract{
		Enabled:       true,
		Structured:    true,
		LoaderOptions: map[string]interface{}{},
		PluginOptions: map[string]interface{}{},
	}
	for _, key := range []string{"loaderOptions", "loader_options"} {
		if lo, ok := toStringMap(m[key]); ok {
			extract.LoaderOptions = lo
		}
	}
	for _, key := range []string{"pluginOptions", "plugin_options"} {
		if po, ok := toStringMap(m[key]); ok {
			extract.PluginOptions = po
		}
	}
	return extract, nil
}

func decodeChainedOptions(data interface{}) (interface{}, error) {
	if c, ok := data.(ChainedOptions); ok {
		return c, nil
	}
	if data == nil {
		return ChainedOptions{}, nil
	}
	m, ok := toStringMap(data)
	if !ok {
		return nil, fmt.Errorf("expected a table of loader options, got %T", data)
	}
	return ChainedOptions{Values: m}, nil
}

func decodeCopy(data interface{}) (interface{}, error) {
	if c, ok := data.(CopyConfig); ok {
		return c, nil
	}

	if list, ok := toSlice(data); ok {
		patterns, err := decodePatterns(list)
		if err != nil {
			return nil, err
		}
		return CopyConfig{Patterns: patterns}, nil
	}

	m, ok := toStringMap(data)
	if !ok {
		return nil, fmt.Errorf("output.copy: expected list or table, got %T", data)
	}

	cfg := CopyConfig{Patterns: []CopyPattern{}}
	if raw, present := m["patterns"]; present {
		list, ok := toSlice(raw)
		if !ok {
			return nil, fmt.Errorf("output.copy.patterns: expected list, got %T", raw)
		}
		patterns, err := decodePatterns(list)
		if err != nil {
			return nil, err
		}
		cfg.Patterns = patterns
	}
	if opts, ok := toStringMap(m["options"]); ok {
		cfg.Options = opts
	}
	return cfg, nil
}

func decodePatterns(list []interface{}) ([]CopyPattern, error) {
	patterns := make([]CopyPattern, 0, len(list))
	for i, item := range list {
		if s, ok := item.(string); ok {
			patterns = append(patterns, CopyPattern{From: s, Bare: true})
			continue
		}
		m, ok := toStringMap(item)
		if !ok {
			return nil, fmt.Errorf("output.copy pattern %d: expected string or table, got %T", i, item)
		}
		pattern := CopyPattern{Extra: map[string]interface{}{}}
		for k, v := range m {
			var err error
			switch k {
			case "from":
				pattern.From, err = patternString(i, k, v)
			case "to":
				pattern.To, err = patternString(i, k, v)
			case "context":
				pattern.Context, err = patternString(i, k, v)
			default:
				pattern.Extra[k] = v
			}
			if err != nil {
				return nil, err
			}
		}
		patterns = append(patterns, pattern)
	}
	return patterns, nil
}

// patternString reads a path-like pattern key. A null value is the same as
// leaving the key out.
func patternString(i int, key string, v interface{}) (string, error) {
	switch s := v.(type) {
	case nil:
		return "", nil
	case string:
		return s, nil
	}
	return "", fmt.Errorf("output.copy pattern %d: %s must be a string, got %T", i, key, v)
}

func decodeBrowserslist(data interface{}) (interface{}, error) {
	if o, ok := data.(BrowserslistOverride); ok {
		return o, nil
	}

	if list, ok := toSlice(data); ok {
		queries, err := toStrings(list)
		if err != nil {
			return nil, fmt.Errorf("output.override_browserslist: %w", err)
		}
		return BrowserslistOverride{List: queries}, nil
	}

	m, ok := toStringMap(data)
	if !ok {
		return nil, fmt.Errorf("output.override_browserslist: expected list or table, got %T", data)
	}
	byTarget := make(map[types.Target][]string, len(m))
	for k, v := range m {
		list, ok := toSlice(v)
		if !ok {
			return nil, fmt.Errorf("output.override_browserslist.%s: expected list, got %T", k, v)
		}
		queries, err := toStrings(list)
		if err != nil {
			return nil, fmt.Errorf("output.override_browserslist.%s: %w", k, err)
		}
		byTarget[types.Target(k)] = queries
	}
	return BrowserslistOverride{ByTarget: byTarget}, nil
}

func toStringMap(v interface{}) (map[string]interface{}, bool) {
	if v == nil {
		return nil, false
	}
	if m, ok := v.(map[string]interface{}); ok {
		return m, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map {
		return nil, false
	}
	out := make(map[string]interface{}, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		out[fmt.Sprint(iter.Key().Interface())] = iter.Value().Interface()
	}
	return out, true
}

func toSlice(v interface{}) ([]interface{}, bool) {
	if v == nil {
		return nil, false
	}
	if s, ok := v.([]interface{}); ok {
		return s, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]interface{}, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

func toStrings(list []interface{}) ([]string, error) {
	out := make([]string, 0, len(list))
	for _, item := range list {
		s, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("expected string query, got %T", item)
		}
		out = append(out, s)
	}
	return out, nil
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes", "on":
		return true, nil
	case "false", "0", "no", "off":
		return false, nil
	}
	return false, fmt.Errorf("invalid boolean %q", s)
}
