// Package registry provides a generic, type-safe registry. The plugin
// catalog in pkg/plugins is built on it; plugins register their factories
// from init() functions.
package registry
