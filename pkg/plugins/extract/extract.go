package extract

import (
	"context"

	"github.com/arthur-debert/bundlechain/pkg/chain"
	"github.com/arthur-debert/bundlechain/pkg/loaders"
	"github.com/arthur-debert/bundlechain/pkg/logging"
	"github.com/arthur-debert/bundlechain/pkg/plugins"
)

// Name is the catalog name of the plugin
const Name = "css-extract"

// Plugin registers the CSS extraction plugin whose loader the CSS rule uses
// when extraction is on
type Plugin struct{}

// New creates the extract plugin
func New() *Plugin {
	return &Plugin{}
}

func (p *Plugin) Name() string {
	return Name
}

// ModifyChain registers the extraction plugin with tools.css_extract
// plugin options, unless extraction is off for this build
func (p *Plugin) ModifyChain(ctx context.Context, api *plugins.API, c *chain.Chain) error {
	if !loaders.IsUseCSSExtract(api.Config, api.Context.Target) {
		return nil
	}

	c.Plugins().Use(chain.Plugin{
		ID:      chain.PluginMiniCSSExtract,
		Kind:    chain.KindCSSExtract,
		Options: loaders.CSSExtractPluginOptions(api.Config),
	})

	logger := logging.GetLogger("extract")
	logger.Debug().
		Str("target", api.Context.Target.String()).
		Msg("Registered CSS extract plugin")
	return nil
}

func init() {
	plugins.MustRegister(Name, func() plugins.Plugin { return New() })
}
