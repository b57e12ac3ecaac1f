package config

import (
	"github.com/arthur-debert/bundlechain/pkg/types"
)

// NormalizedConfig is the validated, defaulted configuration plugins read.
// It is never mutated once Load or FromMap returns it.
type NormalizedConfig struct {
	Output Output `koanf:"output"`
	Tools  Tools  `koanf:"tools"`
}

// Output holds output-related settings
type Output struct {
	CSSModules                   CSSModules            `koanf:"css_modules"`
	EnableCSSModuleTSDeclaration bool                  `koanf:"enable_css_module_ts_declaration"`
	DisableCSSExtract            bool                  `koanf:"disable_css_extract"`
	DisableSourceMap             SourceMapToggle       `koanf:"disable_source_map"`
	OverrideBrowserslist         *BrowserslistOverride `koanf:"override_browserslist"`
	// Copy is nil when no copy patterns are configured
	Copy *CopyConfig `koanf:"copy"`
}

// CSSModules configures CSS Modules scoping for css-loader
type CSSModules struct {
	Auto                   bool   `koanf:"auto"`
	ExportLocalsConvention string `koanf:"export_locals_convention"`
	// LocalIdentName overrides the mode-dependent default when set
	LocalIdentName string `koanf:"local_ident_name"`
}

// SourceMapToggle disables source maps per language.
// A bare boolean in the config file sets both fields.
type SourceMapToggle struct {
	JS  bool `koanf:"js"`
	CSS bool `koanf:"css"`
}

// BrowserslistOverride replaces the on-disk browserslist sources. Either
// List applies to every target, or ByTarget holds one list per target.
type BrowserslistOverride struct {
	List     []string
	ByTarget map[types.Target][]string
}

// For returns the override queries for target, if any
func (o *BrowserslistOverride) For(target types.Target) ([]string, bool) {
	if o == nil {
		return nil, false
	}
	if o.List != nil {
		return o.List, true
	}
	queries, ok := o.ByTarget[target]
	return queries, ok && len(queries) > 0
}

// CopyConfig is the structured form of output.copy. A bare list in the
// config file is wrapped into Patterns.
type CopyConfig struct {
	Patterns []CopyPattern
	Options  map[string]interface{}
}

// CopyPattern describes one copy source. Bare patterns come from plain
// strings and only carry From.
type CopyPattern struct {
	From    string
	To      string
	Context string
	Bare    bool
	// Extra keeps every other key of a structured pattern untouched
	Extra map[string]interface{}
}

// Value returns the pattern in the shape the copy plugin receives
func (p CopyPattern) Value() interface{} {
	if p.Bare {
		return p.From
	}
	out := make(map[string]interface{}, len(p.Extra)+3)
	for k, v := range p.Extra {
		out[k] = v
	}
	if p.From != "" {
		out["from"] = p.From
	}
	if p.To != "" {
		out["to"] = p.To
	}
	if p.Context != "" {
		out["context"] = p.Context
	}
	return out
}

// Tools holds per-tool option overrides
type Tools struct {
	CSSExtract   CSSExtract     `koanf:"css_extract"`
	StyleLoader  ChainedOptions `koanf:"style_loader"`
	CSSLoader    ChainedOptions `koanf:"css_loader"`
	PostCSS      ChainedOptions `koanf:"postcss"`
	Autoprefixer ChainedOptions `koanf:"autoprefixer"`
}

// CSSExtract is tools.css_extract: a boolean toggle or structured options.
type CSSExtract struct {
	Enabled       bool
	Structured    bool
	LoaderOptions map[string]interface{}
	PluginOptions map[string]interface{}
}

// ChainedOptions overrides a loader's default options. Values are merged
// over the defaults, then Modify (if set) receives the result and returns
// the final options. Modify is only available to programmatic callers.
type ChainedOptions struct {
	Values map[string]interface{}
	Modify func(map[string]interface{}) map[string]interface{}
}

// IsZero reports whether no override is configured
func (c ChainedOptions) IsZero() bool {
	return c.Values == nil && c.Modify == nil
}
