package loaders

// Loader references emitted into the bundler configuration
const (
	StyleLoader          = "style-loader"
	CSSLoader            = "css-loader"
	PostCSSLoader        = "postcss-loader"
	CSSModulesTSLoader   = "css-modules-typescript-loader"
	IgnoreCSSLoader      = "ignore-css-loader"
	CSSExtractLoader     = "mini-css-extract-plugin/loader"
	CSSExtractPluginName = "mini-css-extract-plugin"
)

// PostCSS plugins applied ahead of any user plugins
const (
	PostCSSFlexbugsFixes = "postcss-flexbugs-fixes"
	Autoprefixer         = "autoprefixer"
)
