// Package loaders derives the options of the loaders the CSS rule chains:
// style-loader, the extraction loader, css-loader and postcss-loader.
//
// Each helper starts from built-in defaults and applies the matching
// tools.* override from the configuration. css-loader overrides are deep
// merged (see DeepMergeChainedOptions); every other override replaces
// top-level keys.
package loaders
