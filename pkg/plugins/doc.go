// Package plugins defines the plugin hooks and the catalog plugins register
// into.
//
// A build runs in two phases. During the first, every ChainModifier adds
// rules, stages and plugins to a fresh chain.Chain. The chain is then
// materialized, and during the second phase every ConfigModifier edits the
// resulting chain.BundlerConfig. Plugin packages register a Factory from
// init(); importing pkg/plugins/builtin registers the bundled ones.
package plugins
