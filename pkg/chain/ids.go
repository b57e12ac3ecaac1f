package chain

// Rule identifiers
const (
	RuleCSS = "css"
)

// Use identifiers of the CSS rule, listed in the order they are appended.
// The bundler runs them bottom to top.
const (
	UseMiniCSSExtract = "mini-css-extract"
	UseStyle          = "style"
	UseCSSModulesTS   = "css-modules-ts"
	UseIgnoreCSS      = "ignore-css"
	UseCSS            = "css"
	UsePostCSS        = "postcss"
)

// Plugin identifiers
const (
	PluginCopy           = "copy"
	PluginMiniCSSExtract = "mini-css-extract"
)

// PluginKind tags a registered plugin so later phases can find or remove
// it without knowing how it was constructed.
type PluginKind string

const (
	KindCopy       PluginKind = "copy"
	KindCSSExtract PluginKind = "css-extract"
)

func (k PluginKind) String() string {
	return string(k)
}
