// Test Type: Unit Test
// Description: Tests for the copy plugin - registration and pruning of missing contexts

package copy_test

import (
	"context"
	"io/fs"
	"testing"

	"github.com/arthur-debert/bundlechain/pkg/chain"
	"github.com/arthur-debert/bundlechain/pkg/config"
	"github.com/arthur-debert/bundlechain/pkg/plugins"
	copyplugin "github.com/arthur-debert/bundlechain/pkg/plugins/copy"
	"github.com/arthur-debert/bundlechain/pkg/testutil"
	"github.com/arthur-debert/bundlechain/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const root = "/app"

func configWithCopy(t *testing.T, copyValue interface{}) *config.NormalizedConfig {
	t.Helper()
	cfg, err := config.FromMap(map[string]interface{}{
		"output": map[string]interface{}{"copy": copyValue},
	})
	require.NoError(t, err)
	return cfg
}

func materialize(t *testing.T, cfg *config.NormalizedConfig) *chain.BundlerConfig {
	t.Helper()
	c := chain.New()
	copyplugin.Register(c.Plugins(), cfg)
	bc, err := c.Materialize()
	require.NoError(t, err)
	return bc
}

func memFS(t *testing.T, dirs ...string) types.FS {
	t.Helper()
	return testutil.NewProjectFS(t, root, nil, dirs...)
}

func TestRegister(t *testing.T) {
	t.Run("absent_copy_config", func(t *testing.T) {
		c := chain.New()
		copyplugin.Register(c.Plugins(), config.Default())
		assert.Equal(t, 0, c.Plugins().Len())
	})

	t.Run("bare_list_is_wrapped", func(t *testing.T) {
		c := chain.New()
		copyplugin.Register(c.Plugins(), configWithCopy(t, []interface{}{"public"}))

		p, ok := c.Plugins().FindKind(chain.KindCopy)
		require.True(t, ok)
		assert.Equal(t, chain.PluginCopy, p.ID)
		assert.Equal(t, chain.Options{"patterns": []interface{}{"public"}}, p.Options)
	})

	t.Run("structured_object_passes_through", func(t *testing.T) {
		c := chain.New()
		copyplugin.Register(c.Plugins(), configWithCopy(t, map[string]interface{}{
			"patterns": []interface{}{
				map[string]interface{}{"from": "static", "to": "assets", "globOptions": map[string]interface{}{"dot": true}},
			},
			"options": map[string]interface{}{"concurrency": 50},
		}))

		p, ok := c.Plugins().FindKind(chain.KindCopy)
		require.True(t, ok)
		assert.Equal(t, chain.Options{
			"patterns": []interface{}{
				map[string]interface{}{"from": "static", "to": "assets", "globOptions": map[string]interface{}{"dot": true}},
			},
			"options": chain.Options{"concurrency": 50},
		}, p.Options)
	})
}

func TestPrune(t *testing.T) {
	tests := []struct {
		name       string
		copyValue  interface{}
		dirs       []string
		wantPruned bool
	}{
		{
			name: "single_missing_context",
			copyValue: map[string]interface{}{"patterns": []interface{}{
				map[string]interface{}{"context": "/does/not/exist"},
			}},
			wantPruned: true,
		},
		{
			name: "all_contexts_missing",
			copyValue: map[string]interface{}{"patterns": []interface{}{
				map[string]interface{}{"from": "**/*", "context": "/missing/a"},
				map[string]interface{}{"from": "**/*", "context": "missing-b"},
			}},
			wantPruned: true,
		},
		{
			name:       "bare_string_is_kept",
			copyValue:  []interface{}{"public"},
			wantPruned: false,
		},
		{
			name: "pattern_without_context_is_kept",
			copyValue: map[string]interface{}{"patterns": []interface{}{
				map[string]interface{}{"from": "static"},
			}},
			wantPruned: false,
		},
		{
			name: "null_context_is_kept",
			copyValue: map[string]interface{}{"patterns": []interface{}{
				map[string]interface{}{"from": "x", "context": nil},
			}},
			wantPruned: false,
		},
		{
			name: "one_existing_context_keeps_all",
			copyValue: map[string]interface{}{"patterns": []interface{}{
				map[string]interface{}{"context": "/does/not/exist"},
				map[string]interface{}{"context": "/app/static"},
			}},
			dirs:       []string{"/app/static"},
			wantPruned: false,
		},
		{
			name: "relative_context_resolved_against_root",
			copyValue: map[string]interface{}{"patterns": []interface{}{
				map[string]interface{}{"context": "public"},
			}},
			dirs:       []string{"/app/public"},
			wantPruned: false,
		},
		{
			name: "mixed_bare_and_missing_is_kept",
			copyValue: []interface{}{
				"public",
				map[string]interface{}{"context": "/does/not/exist"},
			},
			wantPruned: false,
		},
		{
			name:       "empty_pattern_list",
			copyValue:  map[string]interface{}{"patterns": []interface{}{}},
			wantPruned: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := configWithCopy(t, tt.copyValue)
			bc := materialize(t, cfg)
			before, ok := bc.FindPlugin(chain.KindCopy)
			require.True(t, ok)
			original := before.Options.Clone()

			pruned := copyplugin.Prune(bc, memFS(t, tt.dirs...), root)
			assert.Equal(t, tt.wantPruned, pruned)

			after, found := bc.FindPlugin(chain.KindCopy)
			if tt.wantPruned {
				assert.False(t, found)
				assert.Empty(t, bc.Plugins)
				return
			}
			require.True(t, found)
			assert.Len(t, bc.Plugins, 1)
			assert.Equal(t, original, after.Options, "kept plugin is not filtered")
		})
	}
}

func TestPrune_Idempotent(t *testing.T) {
	cfg := configWithCopy(t, map[string]interface{}{"patterns": []interface{}{
		map[string]interface{}{"context": "/does/not/exist"},
	}})
	bc := materialize(t, cfg)
	fsys := memFS(t)

	assert.True(t, copyplugin.Prune(bc, fsys, root))
	assert.False(t, copyplugin.Prune(bc, fsys, root))
	assert.Empty(t, bc.Plugins)
}

func TestPrune_LeavesOtherPlugins(t *testing.T) {
	cfg := configWithCopy(t, map[string]interface{}{"patterns": []interface{}{
		map[string]interface{}{"context": "/does/not/exist"},
	}})
	c := chain.New()
	c.Plugins().Use(chain.Plugin{ID: chain.PluginMiniCSSExtract, Kind: chain.KindCSSExtract})
	copyplugin.Register(c.Plugins(), cfg)
	bc, err := c.Materialize()
	require.NoError(t, err)

	assert.True(t, copyplugin.Prune(bc, memFS(t), root))
	require.Len(t, bc.Plugins, 1)
	assert.Equal(t, chain.KindCSSExtract, bc.Plugins[0].Kind)
}

func TestPrune_FilesystemFailuresCountAsMissing(t *testing.T) {
	faulty := []types.FS{
		testutil.NewFaultFS(memFS(t, "/app/static")).FailAll(fs.ErrPermission),
		testutil.NewFaultFS(memFS(t, "/app/static")).PanicOn("/app/static"),
	}
	for _, fsys := range faulty {
		cfg := configWithCopy(t, map[string]interface{}{"patterns": []interface{}{
			map[string]interface{}{"context": "/app/static"},
		}})
		bc := materialize(t, cfg)

		assert.NotPanics(t, func() {
			assert.True(t, copyplugin.Prune(bc, fsys, root))
		})
	}
}

func TestPlugin(t *testing.T) {
	p, err := plugins.Get(copyplugin.Name)
	require.NoError(t, err)

	api := &plugins.API{
		Config: configWithCopy(t, map[string]interface{}{"patterns": []interface{}{
			map[string]interface{}{"context": "/does/not/exist"},
		}}),
		Context: types.NewBuildContext(types.TargetWeb, true, root),
		FS:      memFS(t),
	}

	c := chain.New()
	require.NoError(t, p.(plugins.ChainModifier).ModifyChain(context.Background(), api, c))
	assert.Equal(t, 1, c.Plugins().Len())

	bc, err := c.Materialize()
	require.NoError(t, err)
	require.NoError(t, p.(plugins.ConfigModifier).ModifyBundlerConfig(context.Background(), api, bc))
	assert.Empty(t, bc.Plugins)
	assert.Equal(t, 1, c.Plugins().Len(), "pruning works on the materialized config only")
}
