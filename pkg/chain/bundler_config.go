package chain

// BundlerConfig is the materialized configuration handed to the bundler.
// Post-processing hooks mutate it directly.
type BundlerConfig struct {
	Module      Module         `json:"module" yaml:"module" toml:"module"`
	Plugins     []PluginConfig `json:"plugins" yaml:"plugins" toml:"plugins"`
	Experiments Experiments    `json:"experiments" yaml:"experiments" toml:"experiments"`
}

// Module holds the module rules
type Module struct {
	Rules []RuleConfig `json:"rules" yaml:"rules" toml:"rules"`
}

// RuleConfig is a materialized rule. Use lists stages in insertion order;
// the bundler applies them from last to first.
type RuleConfig struct {
	Name        string         `json:"name" yaml:"name" toml:"name"`
	Test        string         `json:"test,omitempty" yaml:"test,omitempty" toml:"test,omitempty"`
	Use         []UseConfig    `json:"use" yaml:"use" toml:"use"`
	SideEffects *bool          `json:"sideEffects,omitempty" yaml:"sideEffects,omitempty" toml:"sideEffects,omitempty"`
	Resolve     *ResolveConfig `json:"resolve,omitempty" yaml:"resolve,omitempty" toml:"resolve,omitempty"`
}

// UseConfig is a materialized stage
type UseConfig struct {
	Name    string  `json:"name" yaml:"name" toml:"name"`
	Loader  string  `json:"loader" yaml:"loader" toml:"loader"`
	Options Options `json:"options,omitempty" yaml:"options,omitempty" toml:"options,omitempty"`
}

// ResolveConfig holds per-rule resolution flags
type ResolveConfig struct {
	PreferRelative *bool `json:"preferRelative,omitempty" yaml:"preferRelative,omitempty" toml:"preferRelative,omitempty"`
}

// PluginConfig is a materialized plugin
type PluginConfig struct {
	Name    string     `json:"name" yaml:"name" toml:"name"`
	Kind    PluginKind `json:"kind" yaml:"kind" toml:"kind"`
	Options Options    `json:"options,omitempty" yaml:"options,omitempty" toml:"options,omitempty"`
}

// Experiments toggles bundler features. A nil field keeps the bundler default.
type Experiments struct {
	CSS    *bool              `json:"css,omitempty" yaml:"css,omitempty" toml:"css,omitempty"`
	Future *FutureExperiments `json:"rspackFuture,omitempty" yaml:"rspackFuture,omitempty" toml:"rspackFuture,omitempty"`
}

// FutureExperiments opts into behavior the bundler plans to make default
type FutureExperiments struct {
	NewTreeshaking *bool `json:"newTreeshaking,omitempty" yaml:"newTreeshaking,omitempty" toml:"newTreeshaking,omitempty"`
}

// FindPlugin returns the first plugin of the given kind
func (bc *BundlerConfig) FindPlugin(kind PluginKind) (*PluginConfig, bool) {
	for i := range bc.Plugins {
		if bc.Plugins[i].Kind == kind {
			return &bc.Plugins[i], true
		}
	}
	return nil, false
}

// RemovePlugins drops every plugin of the given kind and returns how many
// were removed
func (bc *BundlerConfig) RemovePlugins(kind PluginKind) int {
	kept := bc.Plugins[:0]
	removed := 0
	for _, p := range bc.Plugins {
		if p.Kind == kind {
			removed++
			continue
		}
		kept = append(kept, p)
	}
	bc.Plugins = kept
	return removed
}

// Rule returns the materialized rule with the given name
func (bc *BundlerConfig) Rule(name string) (*RuleConfig, bool) {
	for i := range bc.Module.Rules {
		if bc.Module.Rules[i].Name == name {
			return &bc.Module.Rules[i], true
		}
	}
	return nil, false
}

// Loaders returns the loader references of the rule in insertion order
func (rc *RuleConfig) Loaders() []string {
	out := make([]string, len(rc.Use))
	for i, u := range rc.Use {
		out[i] = u.Loader
	}
	return out
}

// UseNames returns the stage names of the rule in insertion order
func (rc *RuleConfig) UseNames() []string {
	out := make([]string, len(rc.Use))
	for i, u := range rc.Use {
		out[i] = u.Name
	}
	return out
}

// Bool returns a pointer to v for the optional flags above
func Bool(v bool) *bool {
	return &v
}
