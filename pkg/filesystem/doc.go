// Package filesystem provides filesystem implementations for bundlechain.
//
// Every implementation of types.FS here is backed by afero: the host
// filesystem (read-write or read-only) and an in-memory one used by tests.
// Exists is the non-failing existence probe the copy plugin guard relies on.
package filesystem
