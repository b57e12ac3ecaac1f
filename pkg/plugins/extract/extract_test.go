package extract_test

import (
	"context"
	"testing"

	"github.com/arthur-debert/bundlechain/pkg/chain"
	"github.com/arthur-debert/bundlechain/pkg/config"
	"github.com/arthur-debert/bundlechain/pkg/plugins"
	"github.com/arthur-debert/bundlechain/pkg/plugins/extract"
	"github.com/arthur-debert/bundlechain/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModifyChain(t *testing.T) {
	structured := func(c *config.NormalizedConfig) {
		c.Tools.CSSExtract = config.CSSExtract{
			Enabled:       true,
			Structured:    true,
			PluginOptions: map[string]interface{}{"ignoreOrder": true},
		}
	}

	tests := []struct {
		name        string
		target      types.Target
		modify      func(*config.NormalizedConfig)
		wantPlugin  bool
		wantOptions chain.Options
	}{
		{name: "web", target: types.TargetWeb, wantPlugin: true, wantOptions: chain.Options{}},
		{name: "web_structured", target: types.TargetWeb, modify: structured, wantPlugin: true, wantOptions: chain.Options{"ignoreOrder": true}},
		{name: "node", target: types.TargetNode},
		{name: "web_worker", target: types.TargetWebWorker},
		{
			name:   "disabled",
			target: types.TargetWeb,
			modify: func(c *config.NormalizedConfig) { c.Output.DisableCSSExtract = true },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			if tt.modify != nil {
				tt.modify(cfg)
			}
			api := &plugins.API{Config: cfg, Context: types.NewBuildContext(tt.target, true, "/app")}
			c := chain.New()

			require.NoError(t, extract.New().ModifyChain(context.Background(), api, c))

			p, ok := c.Plugins().FindKind(chain.KindCSSExtract)
			assert.Equal(t, tt.wantPlugin, ok)
			if tt.wantPlugin {
				assert.Equal(t, chain.PluginMiniCSSExtract, p.ID)
				assert.Equal(t, tt.wantOptions, p.Options)
			}
		})
	}
}

func TestRegistered(t *testing.T) {
	p, err := plugins.Get(extract.Name)
	require.NoError(t, err)
	assert.Equal(t, extract.Name, p.Name())
	_, isConfigModifier := p.(plugins.ConfigModifier)
	assert.False(t, isConfigModifier)
}
