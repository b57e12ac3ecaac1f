// Package testutil provides fixtures shared by package tests.
//
// Project filesystems are in-memory and rooted at an absolute path so tests
// never touch the disk. FaultFS injects errors and panics per path, and
// ClearBrowserslistEnv isolates a test from the caller's BROWSERSLIST
// variables.
package testutil
