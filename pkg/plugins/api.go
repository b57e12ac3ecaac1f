package plugins

import (
	"context"

	"github.com/arthur-debert/bundlechain/pkg/chain"
	"github.com/arthur-debert/bundlechain/pkg/config"
	"github.com/arthur-debert/bundlechain/pkg/errors"
	"github.com/arthur-debert/bundlechain/pkg/registry"
	"github.com/arthur-debert/bundlechain/pkg/types"
)

// Plugin is the base interface every plugin implements
type Plugin interface {
	// Name returns the unique name of this plugin
	Name() string
}

// ChainModifier is implemented by plugins that contribute rules or plugins
// to the chain. ModifyChain runs in the first phase, in plugin order.
type ChainModifier interface {
	Plugin

	ModifyChain(ctx context.Context, api *API, c *chain.Chain) error
}

// ConfigModifier is implemented by plugins that post-process the
// materialized configuration. ModifyBundlerConfig runs in the second phase,
// after every ModifyChain hook returned.
type ConfigModifier interface {
	Plugin

	ModifyBundlerConfig(ctx context.Context, api *API, bc *chain.BundlerConfig) error
}

// API is what hooks receive. Config and Context are read-only.
type API struct {
	Config  *config.NormalizedConfig
	Context types.BuildContext
	FS      types.FS
}

// Factory creates a plugin instance
type Factory func() Plugin

var catalog = registry.New[Factory]("plugin")

// Register adds a plugin factory to the catalog
func Register(name string, factory Factory) error {
	return catalog.Register(name, factory)
}

// MustRegister registers a factory and panics if registration fails.
// Plugin packages call it from init().
func MustRegister(name string, factory Factory) {
	registry.MustRegister(catalog, name, factory)
}

// Get instantiates the plugin registered under name
func Get(name string) (Plugin, error) {
	factory, err := catalog.Get(name)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrPluginNotFound, "plugin %q is not registered", name).
			WithDetail("plugin", name)
	}
	return factory(), nil
}

// Names returns the registered plugin names in sorted order
func Names() []string {
	return catalog.Sorted()
}
