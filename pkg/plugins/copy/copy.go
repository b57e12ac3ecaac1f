package copy

import (
	"context"

	"github.com/arthur-debert/bundlechain/pkg/chain"
	"github.com/arthur-debert/bundlechain/pkg/config"
	"github.com/arthur-debert/bundlechain/pkg/filesystem"
	"github.com/arthur-debert/bundlechain/pkg/logging"
	"github.com/arthur-debert/bundlechain/pkg/plugins"
	"github.com/arthur-debert/bundlechain/pkg/types"
)

// Name is the catalog name of the plugin
const Name = "copy"

// Options builds the copy plugin options from output.copy. A bare pattern
// list is wrapped into {"patterns": [...]}.
func Options(cfg *config.CopyConfig) chain.Options {
	patterns := make([]interface{}, 0, len(cfg.Patterns))
	for _, p := range cfg.Patterns {
		patterns = append(patterns, p.Value())
	}
	opts := chain.Options{"patterns": patterns}
	if len(cfg.Options) > 0 {
		opts["options"] = chain.Options(cfg.Options).Clone()
	}
	return opts
}

// Register adds the copy plugin when output.copy is set
func Register(list *chain.Plugins, cfg *config.NormalizedConfig) {
	if cfg.Output.Copy == nil {
		return
	}
	list.Use(chain.Plugin{
		ID:      chain.PluginCopy,
		Kind:    chain.KindCopy,
		Options: Options(cfg.Output.Copy),
	})
}

// Prune removes every copy plugin from bc when all of its patterns point at
// a context directory that does not exist. A watched copy source that is
// missing makes the bundler rebuild in a loop. Relative contexts are
// resolved against root. Returns whether plugins were removed.
func Prune(bc *chain.BundlerConfig, fsys types.FS, root string) bool {
	logger := logging.GetLogger("copy")

	plugin, ok := bc.FindPlugin(chain.KindCopy)
	if !ok {
		return false
	}

	patterns, _ := plugin.Options["patterns"].([]interface{})
	for _, pattern := range patterns {
		structured, ok := pattern.(map[string]interface{})
		if !ok {
			return false
		}
		dir, _ := structured["context"].(string)
		if dir == "" {
			return false
		}
		if filesystem.Exists(fsys, filesystem.Join(root, dir)) {
			return false
		}
	}

	removed := bc.RemovePlugins(chain.KindCopy)
	logger.Info().
		Int("patterns", len(patterns)).
		Int("removed", removed).
		Msg("Removed copy plugin, no pattern context exists")
	return removed > 0
}

// Plugin registers the copy plugin and prunes it once the configuration is
// materialized
type Plugin struct{}

// New creates the copy plugin
func New() *Plugin {
	return &Plugin{}
}

func (p *Plugin) Name() string {
	return Name
}

func (p *Plugin) ModifyChain(ctx context.Context, api *plugins.API, c *chain.Chain) error {
	Register(c.Plugins(), api.Config)
	return nil
}

func (p *Plugin) ModifyBundlerConfig(ctx context.Context, api *plugins.API, bc *chain.BundlerConfig) error {
	Prune(bc, api.FS, api.Context.RootPath)
	return nil
}

func init() {
	plugins.MustRegister(Name, func() plugins.Plugin { return New() })
}
