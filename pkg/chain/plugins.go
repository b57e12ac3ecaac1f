package chain

// Plugin is a bundler plugin registered on the chain
type Plugin struct {
	ID      string
	Kind    PluginKind
	Options Options
}

// Plugins is the ordered plugin list of a chain
type Plugins struct {
	entries []Plugin
}

// Use registers p. A plugin with the same ID is replaced in place, otherwise
// p is appended.
func (p *Plugins) Use(plugin Plugin) {
	for i := range p.entries {
		if p.entries[i].ID == plugin.ID {
			p.entries[i] = plugin
			return
		}
	}
	p.entries = append(p.entries, plugin)
}

// Get returns the plugin with the given id
func (p *Plugins) Get(id string) (Plugin, bool) {
	for _, e := range p.entries {
		if e.ID == id {
			return e, true
		}
	}
	return Plugin{}, false
}

// FindKind returns the first plugin of the given kind
func (p *Plugins) FindKind(kind PluginKind) (Plugin, bool) {
	for _, e := range p.entries {
		if e.Kind == kind {
			return e, true
		}
	}
	return Plugin{}, false
}

// Delete removes the plugin with the given id and reports whether it existed
func (p *Plugins) Delete(id string) bool {
	for i, e := range p.entries {
		if e.ID == id {
			p.entries = append(p.entries[:i], p.entries[i+1:]...)
			return true
		}
	}
	return false
}

// Len returns the number of registered plugins
func (p *Plugins) Len() int {
	return len(p.entries)
}

// All returns the plugins in registration order
func (p *Plugins) All() []Plugin {
	out := make([]Plugin, len(p.entries))
	copy(out, p.entries)
	return out
}
