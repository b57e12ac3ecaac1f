// Package types holds the small set of types shared by every bundlechain
// package: the build context and the filesystem interface.
package types
