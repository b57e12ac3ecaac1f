// Package config loads and normalizes bundlechain configuration.
//
// Sources are merged in order with koanf:
//
//  1. embedded defaults (embedded/defaults.toml)
//  2. the project config file (bundlechain.toml, .bundlechain.toml,
//     bundlechain.yaml or bundlechain.yml in the project root)
//  3. BUNDLECHAIN_ environment variables, with "__" separating levels
//
// Several settings accept more than one shape, mirroring the JavaScript
// tooling they configure:
//
//	[tools]
//	css_extract = false                      # or a table with loaderOptions / pluginOptions
//
//	[output]
//	copy = ["public"]                        # or { patterns = [...], options = {...} }
//	override_browserslist = ["chrome >= 87"] # or one list per target
//
// Decode hooks turn each shape into a single Go type; see decode.go.
package config
