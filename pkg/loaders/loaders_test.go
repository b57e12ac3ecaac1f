package loaders_test

import (
	"testing"

	"github.com/arthur-debert/bundlechain/pkg/config"
	"github.com/arthur-debert/bundlechain/pkg/loaders"
	"github.com/arthur-debert/bundlechain/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsUseCSSExtract(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*config.NormalizedConfig)
		target  types.Target
		enabled bool
	}{
		{"web_default", nil, types.TargetWeb, true},
		{"node_never", nil, types.TargetNode, false},
		{"web_worker_never", nil, types.TargetWebWorker, false},
		{"service_worker_never", nil, types.TargetServiceWorker, false},
		{
			name:   "disable_css_extract",
			modify: func(c *config.NormalizedConfig) { c.Output.DisableCSSExtract = true },
			target: types.TargetWeb,
		},
		{
			name:   "tools_css_extract_false",
			modify: func(c *config.NormalizedConfig) { c.Tools.CSSExtract = config.CSSExtract{} },
			target: types.TargetWeb,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			if tt.modify != nil {
				tt.modify(cfg)
			}
			assert.Equal(t, tt.enabled, loaders.IsUseCSSExtract(cfg, tt.target))
		})
	}
}

func TestCSSModuleLocalIdentName(t *testing.T) {
	cfg := config.Default()
	assert.Equal(t, "[local]-[hash:base64:6]", loaders.CSSModuleLocalIdentName(cfg, true))
	assert.Equal(t, "[path][name]__[local]-[hash:base64:6]", loaders.CSSModuleLocalIdentName(cfg, false))

	cfg.Output.CSSModules.LocalIdentName = "[hash:base64:4]"
	assert.Equal(t, "[hash:base64:4]", loaders.CSSModuleLocalIdentName(cfg, true))
	assert.Equal(t, "[hash:base64:4]", loaders.CSSModuleLocalIdentName(cfg, false))
}

func TestMergeChainedOptions(t *testing.T) {
	defaults := map[string]interface{}{"a": 1, "nested": map[string]interface{}{"x": 1}}

	t.Run("no_override_returns_copy", func(t *testing.T) {
		got := loaders.MergeChainedOptions(defaults, config.ChainedOptions{})
		assert.Equal(t, defaults, got)
		got["a"] = 2
		assert.Equal(t, 1, defaults["a"])
	})

	t.Run("values_replace_top_level_keys", func(t *testing.T) {
		got := loaders.MergeChainedOptions(defaults, config.ChainedOptions{
			Values: map[string]interface{}{"nested": map[string]interface{}{"y": 2}, "b": true},
		})
		assert.Equal(t, map[string]interface{}{
			"a":      1,
			"b":      true,
			"nested": map[string]interface{}{"y": 2},
		}, got)
	})

	t.Run("modify_receives_merged_values", func(t *testing.T) {
		got := loaders.MergeChainedOptions(defaults, config.ChainedOptions{
			Values: map[string]interface{}{"b": true},
			Modify: func(o map[string]interface{}) map[string]interface{} {
				assert.Equal(t, true, o["b"])
				o["c"] = "set"
				return o
			},
		})
		assert.Equal(t, "set", got["c"])
		_, touched := defaults["c"]
		assert.False(t, touched)
	})

	t.Run("modify_returning_nil_keeps_defaults", func(t *testing.T) {
		got := loaders.MergeChainedOptions(defaults, config.ChainedOptions{
			Modify: func(map[string]interface{}) map[string]interface{} { return nil },
		})
		assert.Equal(t, defaults, got)
	})
}

func TestDeepMergeChainedOptions(t *testing.T) {
	defaults := map[string]interface{}{
		"importLoaders": 1,
		"modules": map[string]interface{}{
			"auto":           true,
			"localIdentName": "[local]",
		},
	}

	got, err := loaders.DeepMergeChainedOptions(defaults, config.ChainedOptions{
		Values: map[string]interface{}{
			"modules": map[string]interface{}{"auto": false, "namedExport": true},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{
		"importLoaders": 1,
		"modules": map[string]interface{}{
			"auto":           false,
			"localIdentName": "[local]",
			"namedExport":    true,
		},
	}, got)
	assert.Equal(t, true, defaults["modules"].(map[string]interface{})["auto"])
}

func TestCSSLoaderOptions(t *testing.T) {
	params := func(cfg *config.NormalizedConfig) loaders.CSSLoaderParams {
		return loaders.CSSLoaderParams{
			Config:         cfg,
			ImportLoaders:  1,
			LocalIdentName: loaders.ProdLocalIdentName,
		}
	}

	t.Run("client_defaults", func(t *testing.T) {
		got, err := loaders.CSSLoaderOptions(params(config.Default()))
		require.NoError(t, err)
		assert.Equal(t, map[string]interface{}{
			"importLoaders": 1,
			"modules": map[string]interface{}{
				"auto":                   true,
				"exportLocalsConvention": "camelCase",
				"localIdentName":         "[local]-[hash:base64:6]",
			},
			"sourceMap": false,
		}, got)
		assert.True(t, loaders.ModulesEnabled(got))
	})

	t.Run("server_exports_only_locals", func(t *testing.T) {
		p := params(config.Default())
		p.IsServer = true
		got, err := loaders.CSSLoaderOptions(p)
		require.NoError(t, err)
		modules := got["modules"].(map[string]interface{})
		assert.Equal(t, true, modules["exportOnlyLocals"])
		assert.Equal(t, true, modules["auto"])
	})

	t.Run("worker_with_boolean_modules", func(t *testing.T) {
		cfg := config.Default()
		cfg.Tools.CSSLoader = config.ChainedOptions{Values: map[string]interface{}{"modules": true}}
		p := params(cfg)
		p.IsWebWorker = true

		got, err := loaders.CSSLoaderOptions(p)
		require.NoError(t, err)
		assert.Equal(t, map[string]interface{}{"exportOnlyLocals": true}, got["modules"])
	})

	t.Run("server_with_mode_string", func(t *testing.T) {
		cfg := config.Default()
		cfg.Tools.CSSLoader = config.ChainedOptions{Values: map[string]interface{}{"modules": "global"}}
		p := params(cfg)
		p.IsServer = true

		got, err := loaders.CSSLoaderOptions(p)
		require.NoError(t, err)
		assert.Equal(t, map[string]interface{}{"mode": "global", "exportOnlyLocals": true}, got["modules"])
	})

	t.Run("modules_disabled", func(t *testing.T) {
		cfg := config.Default()
		cfg.Tools.CSSLoader = config.ChainedOptions{Values: map[string]interface{}{"modules": false}}
		p := params(cfg)
		p.IsServer = true

		got, err := loaders.CSSLoaderOptions(p)
		require.NoError(t, err)
		assert.Equal(t, false, got["modules"])
		assert.False(t, loaders.ModulesEnabled(got))
	})

	t.Run("source_map_enabled", func(t *testing.T) {
		cfg := config.Default()
		cfg.Output.DisableSourceMap.CSS = false
		got, err := loaders.CSSLoaderOptions(params(cfg))
		require.NoError(t, err)
		assert.Equal(t, true, got["sourceMap"])
	})
}

func TestCSSExtractOptions(t *testing.T) {
	cfg := config.Default()
	assert.Empty(t, loaders.CSSExtractLoaderOptions(cfg))
	assert.Empty(t, loaders.CSSExtractPluginOptions(cfg))

	cfg.Tools.CSSExtract = config.CSSExtract{
		Enabled:       true,
		Structured:    true,
		LoaderOptions: map[string]interface{}{"esModule": false},
		PluginOptions: map[string]interface{}{"ignoreOrder": true},
	}
	assert.Equal(t, map[string]interface{}{"esModule": false}, loaders.CSSExtractLoaderOptions(cfg))
	assert.Equal(t, map[string]interface{}{"ignoreOrder": true}, loaders.CSSExtractPluginOptions(cfg))
}
