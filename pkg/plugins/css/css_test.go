// Test Type: Unit Test
// Description: Tests for the css plugin - stage order per target and mode

package css_test

import (
	"context"
	"testing"

	"github.com/arthur-debert/bundlechain/pkg/chain"
	"github.com/arthur-debert/bundlechain/pkg/config"
	"github.com/arthur-debert/bundlechain/pkg/errors"
	"github.com/arthur-debert/bundlechain/pkg/loaders"
	"github.com/arthur-debert/bundlechain/pkg/plugins"
	"github.com/arthur-debert/bundlechain/pkg/plugins/css"
	"github.com/arthur-debert/bundlechain/pkg/testutil"
	"github.com/arthur-debert/bundlechain/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const root = "/app"

func newFS(t *testing.T, files map[string]string) types.FS {
	t.Helper()
	testutil.ClearBrowserslistEnv(t)
	return testutil.NewProjectFS(t, root, files)
}

func compose(t *testing.T, cfg *config.NormalizedConfig, target types.Target, isProd bool) *chain.Rule {
	t.Helper()
	rule := chain.New().Rule(chain.RuleCSS).Test(css.CSSPattern)
	bctx := types.NewBuildContext(target, isProd, root)
	require.NoError(t, css.ApplyBaseCSSRule(context.Background(), rule, cfg, bctx, css.Options{FS: newFS(t, nil)}))
	return rule
}

func TestApplyBaseCSSRule_StageOrder(t *testing.T) {
	withoutExtract := func(c *config.NormalizedConfig) { c.Output.DisableCSSExtract = true }
	withModuleTypes := func(c *config.NormalizedConfig) { c.Output.EnableCSSModuleTSDeclaration = true }

	tests := []struct {
		name   string
		target types.Target
		modify []func(*config.NormalizedConfig)
		want   []string
	}{
		{
			name:   "web_extract",
			target: types.TargetWeb,
			want:   []string{"mini-css-extract", "css", "postcss"},
		},
		{
			name:   "web_style",
			target: types.TargetWeb,
			modify: []func(*config.NormalizedConfig){withoutExtract},
			want:   []string{"style", "css", "postcss"},
		},
		{
			name:   "web_extract_with_module_types",
			target: types.TargetWeb,
			modify: []func(*config.NormalizedConfig){withModuleTypes},
			want:   []string{"mini-css-extract", "css-modules-ts", "css", "postcss"},
		},
		{
			name:   "web_style_with_module_types",
			target: types.TargetWeb,
			modify: []func(*config.NormalizedConfig){withoutExtract, withModuleTypes},
			want:   []string{"style", "css-modules-ts", "css", "postcss"},
		},
		{
			name:   "node",
			target: types.TargetNode,
			modify: []func(*config.NormalizedConfig){withModuleTypes},
			want:   []string{"ignore-css", "css"},
		},
		{
			name:   "web_worker",
			target: types.TargetWebWorker,
			want:   []string{"ignore-css", "css"},
		},
		{
			name:   "service_worker",
			target: types.TargetServiceWorker,
			modify: []func(*config.NormalizedConfig){withoutExtract},
			want:   []string{"ignore-css", "css"},
		},
	}

	for _, tt := range tests {
		for _, isProd := range []bool{true, false} {
			name := tt.name + "_dev"
			if isProd {
				name = tt.name + "_prod"
			}
			t.Run(name, func(t *testing.T) {
				cfg := config.Default()
				for _, m := range tt.modify {
					m(cfg)
				}
				rule := compose(t, cfg, tt.target, isProd)
				assert.Equal(t, tt.want, rule.UseIDs())
			})
		}
	}
}

func TestApplyBaseCSSRule_ExecutionOrder(t *testing.T) {
	cfg := config.Default()
	cfg.Output.DisableCSSExtract = true

	rule := compose(t, cfg, types.TargetWeb, true)

	assert.Equal(t, []string{"style", "css", "postcss"}, rule.UseIDs())
	assert.Equal(t, []string{"postcss", "css", "style"}, rule.ExecutionOrder())
}

func TestApplyBaseCSSRule_RuleFlags(t *testing.T) {
	for _, target := range types.AllTargets {
		t.Run(target.String(), func(t *testing.T) {
			c := chain.New()
			rule := c.Rule(chain.RuleCSS).Test(css.CSSPattern)
			bctx := types.NewBuildContext(target, true, root)
			require.NoError(t, css.ApplyBaseCSSRule(context.Background(), rule, config.Default(), bctx, css.Options{FS: newFS(t, nil)}))

			bc, err := c.Materialize()
			require.NoError(t, err)
			rc, ok := bc.Rule(chain.RuleCSS)
			require.True(t, ok)
			require.NotNil(t, rc.SideEffects)
			assert.True(t, *rc.SideEffects)
			require.NotNil(t, rc.Resolve)
			assert.True(t, *rc.Resolve.PreferRelative)
			assert.Empty(t, bc.Plugins, "the composer never registers plugins")
		})
	}
}

func TestApplyBaseCSSRule_Loaders(t *testing.T) {
	t.Run("client", func(t *testing.T) {
		cfg := config.Default()
		cfg.Tools.CSSExtract = config.CSSExtract{
			Enabled:       true,
			Structured:    true,
			LoaderOptions: map[string]interface{}{"esModule": false},
		}
		rule := compose(t, cfg, types.TargetWeb, true)

		extract, ok := rule.GetUse(chain.UseMiniCSSExtract)
		require.True(t, ok)
		assert.Equal(t, loaders.CSSExtractLoader, extract.Loader())
		assert.Equal(t, chain.Options{"esModule": false}, extract.Options())

		cssUse, _ := rule.GetUse(chain.UseCSS)
		assert.Equal(t, loaders.CSSLoader, cssUse.Loader())
		assert.Equal(t, 1, cssUse.Options()["importLoaders"])
		modules := cssUse.Options()["modules"].(map[string]interface{})
		assert.Equal(t, "[local]-[hash:base64:6]", modules["localIdentName"])
		_, exportOnly := modules["exportOnlyLocals"]
		assert.False(t, exportOnly)

		postcss, _ := rule.GetUse(chain.UsePostCSS)
		assert.Equal(t, loaders.PostCSSLoader, postcss.Loader())
		plugins := postcss.Options()["postcssOptions"].(map[string]interface{})["plugins"].([]interface{})
		autoprefixer := plugins[1].([]interface{})[1].(map[string]interface{})
		assert.Equal(t, []string{"> 0.01%", "not dead", "not op_mini all"}, autoprefixer["overrideBrowserslist"])
	})

	t.Run("style_loader_options", func(t *testing.T) {
		cfg := config.Default()
		cfg.Output.DisableCSSExtract = true
		cfg.Tools.StyleLoader = config.ChainedOptions{Values: map[string]interface{}{"injectType": "singletonStyleTag"}}
		rule := compose(t, cfg, types.TargetWeb, false)

		style, ok := rule.GetUse(chain.UseStyle)
		require.True(t, ok)
		assert.Equal(t, loaders.StyleLoader, style.Loader())
		assert.Equal(t, chain.Options{"injectType": "singletonStyleTag"}, style.Options())
	})

	t.Run("module_types_share_modules_options", func(t *testing.T) {
		cfg := config.Default()
		cfg.Output.EnableCSSModuleTSDeclaration = true
		rule := compose(t, cfg, types.TargetWeb, false)

		typesUse, ok := rule.GetUse(chain.UseCSSModulesTS)
		require.True(t, ok)
		cssUse, _ := rule.GetUse(chain.UseCSS)
		assert.Equal(t, cssUse.Options()["modules"], typesUse.Options()["modules"])
		assert.Equal(t, "[path][name]__[local]-[hash:base64:6]",
			typesUse.Options()["modules"].(map[string]interface{})["localIdentName"])
	})

	t.Run("module_types_skipped_when_modules_off", func(t *testing.T) {
		cfg := config.Default()
		cfg.Output.EnableCSSModuleTSDeclaration = true
		cfg.Tools.CSSLoader = config.ChainedOptions{Values: map[string]interface{}{"modules": false}}
		rule := compose(t, cfg, types.TargetWeb, true)

		assert.False(t, rule.HasUse(chain.UseCSSModulesTS))
	})

	t.Run("server", func(t *testing.T) {
		rule := compose(t, config.Default(), types.TargetNode, true)

		ignore, ok := rule.GetUse(chain.UseIgnoreCSS)
		require.True(t, ok)
		assert.Equal(t, loaders.IgnoreCSSLoader, ignore.Loader())

		cssUse, _ := rule.GetUse(chain.UseCSS)
		modules := cssUse.Options()["modules"].(map[string]interface{})
		assert.Equal(t, true, modules["exportOnlyLocals"])
	})

	t.Run("import_loaders_option", func(t *testing.T) {
		rule := chain.New().Rule(chain.RuleCSS)
		bctx := types.NewBuildContext(types.TargetWeb, true, root)
		require.NoError(t, css.ApplyBaseCSSRule(context.Background(), rule, config.Default(), bctx,
			css.Options{ImportLoaders: 2, FS: newFS(t, nil)}))

		cssUse, _ := rule.GetUse(chain.UseCSS)
		assert.Equal(t, 2, cssUse.Options()["importLoaders"])
	})
}

func TestApplyBaseCSSRule_BrowserslistFromProject(t *testing.T) {
	fsys := newFS(t, map[string]string{".browserslistrc": "[production]\nchrome >= 100\n[development]\nlast 1 chrome version\n"})

	rule := chain.New().Rule(chain.RuleCSS)
	bctx := types.NewBuildContext(types.TargetWeb, false, root)
	require.NoError(t, css.ApplyBaseCSSRule(context.Background(), rule, config.Default(), bctx, css.Options{FS: fsys}))

	postcss, _ := rule.GetUse(chain.UsePostCSS)
	plugins := postcss.Options()["postcssOptions"].(map[string]interface{})["plugins"].([]interface{})
	autoprefixer := plugins[1].([]interface{})[1].(map[string]interface{})
	assert.Equal(t, []string{"last 1 chrome version"}, autoprefixer["overrideBrowserslist"])
}

func TestApplyBaseCSSRule_Errors(t *testing.T) {
	t.Run("browserslist", func(t *testing.T) {
		fsys := newFS(t, map[string]string{"package.json": `{"browserslist": 1}`})
		rule := chain.New().Rule(chain.RuleCSS)
		bctx := types.NewBuildContext(types.TargetWeb, true, root)

		err := css.ApplyBaseCSSRule(context.Background(), rule, config.Default(), bctx, css.Options{FS: fsys})
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigInvalid))
		assert.Equal(t, "web", errors.GetErrorDetails(err)["target"])
		assert.Empty(t, rule.UseIDs(), "nothing is appended when targets cannot be resolved")
	})

	t.Run("postcss_config", func(t *testing.T) {
		fsys := newFS(t, map[string]string{".postcssrc.json": `{"plugins": `})
		rule := chain.New().Rule(chain.RuleCSS)
		bctx := types.NewBuildContext(types.TargetWeb, true, root)

		err := css.ApplyBaseCSSRule(context.Background(), rule, config.Default(), bctx, css.Options{FS: fsys})
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigInvalid))
	})

	t.Run("server_ignores_postcss_config", func(t *testing.T) {
		fsys := newFS(t, map[string]string{".postcssrc.json": `{"plugins": `})
		rule := chain.New().Rule(chain.RuleCSS)
		bctx := types.NewBuildContext(types.TargetNode, true, root)

		require.NoError(t, css.ApplyBaseCSSRule(context.Background(), rule, config.Default(), bctx, css.Options{FS: fsys}))
	})
}

func TestPlugin(t *testing.T) {
	p, err := plugins.Get(css.Name)
	require.NoError(t, err)
	assert.Equal(t, "css", p.Name())

	api := &plugins.API{
		Config:  config.Default(),
		Context: types.NewBuildContext(types.TargetWeb, true, root),
		FS:      newFS(t, nil),
	}
	c := chain.New()
	require.NoError(t, p.(plugins.ChainModifier).ModifyChain(context.Background(), api, c))

	rule, ok := c.GetRule(chain.RuleCSS)
	require.True(t, ok)
	assert.Equal(t, css.CSSPattern, rule.TestPattern())
	assert.True(t, rule.Matches("src/index.css"))
	assert.False(t, rule.Matches("src/index.ts"))

	bc, err := c.Materialize()
	require.NoError(t, err)
	require.NoError(t, p.(plugins.ConfigModifier).ModifyBundlerConfig(context.Background(), api, bc))
	require.NotNil(t, bc.Experiments.CSS)
	assert.False(t, *bc.Experiments.CSS)
	require.NotNil(t, bc.Experiments.Future)
	require.NotNil(t, bc.Experiments.Future.NewTreeshaking)
	assert.True(t, *bc.Experiments.Future.NewTreeshaking)
}

func TestPlugin_KeepsFutureExperiments(t *testing.T) {
	p, err := plugins.Get(css.Name)
	require.NoError(t, err)

	future := &chain.FutureExperiments{NewTreeshaking: chain.Bool(false)}
	bc := &chain.BundlerConfig{Experiments: chain.Experiments{Future: future}}
	api := &plugins.API{
		Config:  config.Default(),
		Context: types.NewBuildContext(types.TargetWeb, true, root),
		FS:      newFS(t, nil),
	}
	require.NoError(t, p.(plugins.ConfigModifier).ModifyBundlerConfig(context.Background(), api, bc))

	assert.Same(t, future, bc.Experiments.Future)
	assert.True(t, *future.NewTreeshaking)
}
