// Package chain provides the mutable rule chain plugins compose, and the
// BundlerConfig it materializes into.
//
// Stages behave like webpack-chain uses: Rule.Use(id) returns the existing
// stage or appends a new one, so stage ids are unique per rule and appending
// is the only way to change order. The bundler applies stages from the last
// one appended to the first.
//
// Plugins carry a PluginKind so post-processing can find and remove them by
// kind:
//
//	bc, _ := c.Materialize()
//	if p, ok := bc.FindPlugin(chain.KindCopy); ok {
//	    ...
//	}
package chain
