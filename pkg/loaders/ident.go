package loaders

import "github.com/arthur-debert/bundlechain/pkg/config"

const (
	ProdLocalIdentName = "[local]-[hash:base64:6]"
	DevLocalIdentName  = "[path][name]__[local]-[hash:base64:6]"
)

// CSSModuleLocalIdentName returns the configured local ident name, or the
// mode default when none is set
func CSSModuleLocalIdentName(cfg *config.NormalizedConfig, isProd bool) string {
	if name := cfg.Output.CSSModules.LocalIdentName; name != "" {
		return name
	}
	if isProd {
		return ProdLocalIdentName
	}
	return DevLocalIdentName
}
