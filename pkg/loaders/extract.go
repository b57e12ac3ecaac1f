package loaders

import (
	"github.com/arthur-debert/bundlechain/pkg/config"
	"github.com/arthur-debert/bundlechain/pkg/types"
)

// IsUseCSSExtract reports whether CSS is extracted into files for target.
// Server and worker bundles never extract.
func IsUseCSSExtract(cfg *config.NormalizedConfig, target types.Target) bool {
	if cfg.Output.DisableCSSExtract || !cfg.Tools.CSSExtract.Enabled {
		return false
	}
	switch target {
	case types.TargetNode, types.TargetWebWorker, types.TargetServiceWorker:
		return false
	}
	return true
}

// CSSExtractLoaderOptions returns the options of the extraction loader stage
func CSSExtractLoaderOptions(cfg *config.NormalizedConfig) map[string]interface{} {
	return copyMap(cfg.Tools.CSSExtract.LoaderOptions)
}

// CSSExtractPluginOptions returns the options of the extraction plugin
func CSSExtractPluginOptions(cfg *config.NormalizedConfig) map[string]interface{} {
	return copyMap(cfg.Tools.CSSExtract.PluginOptions)
}
