package loaders

import (
	"github.com/arthur-debert/bundlechain/pkg/config"
)

// CSSLoaderParams are the inputs of CSSLoaderOptions
type CSSLoaderParams struct {
	Config         *config.NormalizedConfig
	ImportLoaders  int
	IsServer       bool
	IsWebWorker    bool
	LocalIdentName string
}

// CSSLoaderOptions builds css-loader options: import loader count, CSS
// Modules scoping and source maps, with tools.css_loader deep merged over
// them. Server and worker bundles only export class name mappings.
func CSSLoaderOptions(p CSSLoaderParams) (map[string]interface{}, error) {
	modules := p.Config.Output.CSSModules
	defaults := map[string]interface{}{
		"importLoaders": p.ImportLoaders,
		"modules": map[string]interface{}{
			"auto":                  modules.Auto,
			"exportLocalsConvention": modules.ExportLocalsConvention,
			"localIdentName":         p.LocalIdentName,
		},
		"sourceMap": UseCSSSourceMap(p.Config),
	}

	merged, err := DeepMergeChainedOptions(defaults, p.Config.Tools.CSSLoader)
	if err != nil {
		return nil, err
	}
	return normalizeCSSLoaderOptions(merged, p.IsServer || p.IsWebWorker), nil
}

// normalizeCSSLoaderOptions forces exportOnlyLocals whichever form the
// modules option takes
func normalizeCSSLoaderOptions(opts map[string]interface{}, exportOnlyLocals bool) map[string]interface{} {
	if !exportOnlyLocals || !ModulesEnabled(opts) {
		return opts
	}

	switch m := opts["modules"].(type) {
	case bool:
		opts["modules"] = map[string]interface{}{"exportOnlyLocals": true}
	case string:
		opts["modules"] = map[string]interface{}{"mode": m, "exportOnlyLocals": true}
	case map[string]interface{}:
		normalized := copyMap(m)
		normalized["exportOnlyLocals"] = true
		opts["modules"] = normalized
	}
	return opts
}

// ModulesEnabled reports whether css-loader options enable CSS Modules
func ModulesEnabled(opts map[string]interface{}) bool {
	switch m := opts["modules"].(type) {
	case nil:
		return false
	case bool:
		return m
	case string:
		return m != ""
	}
	return true
}

// UseCSSSourceMap reports whether CSS source maps are generated
func UseCSSSourceMap(cfg *config.NormalizedConfig) bool {
	return !cfg.Output.DisableSourceMap.CSS
}
